package client

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/rdsr/webhdfsctl/pkg/client/auth"
	"github.com/rdsr/webhdfsctl/pkg/client/auth/exec"
	"github.com/rdsr/webhdfsctl/pkg/client/auth/kerberos"
	"github.com/rdsr/webhdfsctl/pkg/client/webhdfs"
)

const defaultExpectContinueTimeout = time.Second

type ApiConnectionDetails struct {
	WebHdfsUrl   string
	BasicAuth    auth.LoginCredentials
	KerberosAuth kerberos.ClientConfig
	// Program printing the username and password. Takes precedence over BasicAuth.
	ExecAuth exec.Config
	// Skip verification of the namenode TLS certificate.
	Insecure bool
	// Overall limit for a request including redirects and authentication legs. Zero means no limit.
	Timeout time.Duration
	// How long to wait for 100 Continue before sending an upload body anyway.
	ExpectContinueTimeout time.Duration
}

type HttpClientOptions struct {
	// WrapTransport wraps the transport that sends every individual leg of a request.
	WrapTransport func(http.RoundTripper) http.RoundTripper
	// OnChallenge is called with the scheme used to answer an authentication challenge.
	OnChallenge func(scheme string)
}

// CreateHttpClient builds a client that answers Negotiate and Basic challenges from the
// namenode with the configured credentials.
func CreateHttpClient(config *ApiConnectionDetails, options HttpClientOptions) (*http.Client, error) {
	if config.WebHdfsUrl == "" {
		return nil, webhdfs.ErrEmptyUrl
	}

	credentials, err := loginCredentials(config)
	if err != nil {
		return nil, err
	}
	authorizers, err := configuredAuthorizers(config, credentials)
	if err != nil {
		return nil, err
	}

	var transport http.RoundTripper = baseTransport(config)
	if options.WrapTransport != nil {
		transport = options.WrapTransport(transport)
	}

	return &http.Client{
		Timeout: config.Timeout,
		Transport: &auth.ChallengeTransport{
			Base:        transport,
			Credentials: credentials,
			Authorizers: authorizers,
			OnChallenge: options.OnChallenge,
		},
	}, nil
}

func loginCredentials(config *ApiConnectionDetails) (*auth.LoginCredentials, error) {
	if config.ExecAuth.Cmd == "" {
		return &config.BasicAuth, nil
	}
	return exec.NewAuthenticator(config.ExecAuth).Credentials()
}

func configuredAuthorizers(config *ApiConnectionDetails, credentials *auth.LoginCredentials) ([]auth.Authorizer, error) {
	var authorizers []auth.Authorizer
	if config.KerberosAuth.Enabled {
		spnegoAuthorizer, err := kerberos.NewSPNEGOAuthorizer(config.WebHdfsUrl, config.KerberosAuth)
		if err != nil {
			return nil, err
		}
		authorizers = append(authorizers, spnegoAuthorizer)
	}
	if credentials.Username != "" {
		authorizers = append(authorizers, auth.BasicAuthorizer{})
	}
	return authorizers, nil
}

func baseTransport(config *ApiConnectionDetails) *http.Transport {
	expectContinueTimeout := config.ExpectContinueTimeout
	if expectContinueTimeout <= 0 {
		expectContinueTimeout = defaultExpectContinueTimeout
	}
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: expectContinueTimeout,
		DisableKeepAlives:     true,
		TLSClientConfig:       &tls.Config{InsecureSkipVerify: config.Insecure},
	}
}
