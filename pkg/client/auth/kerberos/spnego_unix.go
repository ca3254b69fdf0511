//go:build !windows
// +build !windows

package kerberos

import (
	"net/http"
	"os"
	"os/user"
	"strings"
	"sync"

	"github.com/jcmturner/gokrb5/v8/client"
	"github.com/jcmturner/gokrb5/v8/config"
	"github.com/jcmturner/gokrb5/v8/credentials"
	"github.com/jcmturner/gokrb5/v8/spnego"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/rdsr/webhdfsctl/pkg/client/auth"
)

type spnegoAuthorizer struct {
	spn                  string
	realm                string
	krb5Config           *config.Config
	credentialsCachePath string

	kerberosClient *client.Client
	loggedInAs     string
	mux            sync.Mutex
}

// NewSPNEGOAuthorizer returns an authorizer answering Negotiate challenges with a Kerberos
// SPNEGO token. A password login is used when the credential provider supplies a password,
// otherwise tickets are read from the credentials cache.
func NewSPNEGOAuthorizer(serverUrl string, clientConfig ClientConfig) (auth.Authorizer, error) {
	spn := clientConfig.ServicePrincipal
	if spn == "" {
		var e error
		spn, e = urlToSpn(serverUrl)
		if e != nil {
			return nil, e
		}
	}

	configPath := krb5ConfigPath(clientConfig)
	krb5Config, err := config.Load(configPath)
	if err != nil {
		return nil, errors.Wrapf(err, "error loading kerberos config %s", configPath)
	}

	return &spnegoAuthorizer{
		spn:                  spn,
		realm:                firstNonEmpty(clientConfig.Realm, krb5Config.LibDefaults.DefaultRealm),
		krb5Config:           krb5Config,
		credentialsCachePath: strings.TrimPrefix(firstNonEmpty(clientConfig.CredentialsCachePath, os.Getenv("KRB5CCNAME")), "FILE:"),
	}, nil
}

func (s *spnegoAuthorizer) Scheme() string {
	return auth.SchemeNegotiate
}

func (s *spnegoAuthorizer) Authorize(req *http.Request, username string, password string) error {
	kerberosClient, err := s.renewClient(username, password)
	if err != nil {
		return err
	}
	log.WithField("spn", s.spn).Debug("generating SPNEGO token")
	if err := spnego.SetSPNEGOHeader(kerberosClient, req, s.spn); err != nil {
		return errors.Wrapf(err, "error generating SPNEGO token for %s", s.spn)
	}
	return nil
}

func (s *spnegoAuthorizer) renewClient(username string, password string) (*client.Client, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	if s.kerberosClient != nil &&
		s.kerberosClient.Credentials != nil &&
		!s.kerberosClient.Credentials.Expired() &&
		s.loggedInAs == username {
		return s.kerberosClient, nil
	}

	var kerberosClient *client.Client
	if password != "" {
		name, realm := splitPrincipal(username, s.realm)
		kerberosClient = client.NewWithPassword(name, realm, password, s.krb5Config, client.DisablePAFXFAST(true))
		if err := kerberosClient.Login(); err != nil {
			return nil, errors.Wrapf(err, "error logging in to kerberos realm %s as %s", realm, name)
		}
	} else {
		cachePath, err := s.cachePath()
		if err != nil {
			return nil, err
		}
		credentialsCache, err := credentials.LoadCCache(cachePath)
		if err != nil {
			return nil, errors.Wrapf(err, "error loading kerberos credentials cache %s", cachePath)
		}
		kerberosClient, err = client.NewFromCCache(credentialsCache, s.krb5Config, client.DisablePAFXFAST(true))
		if err != nil {
			return nil, errors.Wrapf(err, "error creating kerberos client from credentials cache %s", cachePath)
		}
	}

	s.kerberosClient = kerberosClient
	s.loggedInAs = username
	return kerberosClient, nil
}

func (s *spnegoAuthorizer) cachePath() (string, error) {
	if s.credentialsCachePath != "" {
		return s.credentialsCachePath, nil
	}
	currentUser, err := user.Current()
	if err != nil {
		return "", errors.WithStack(err)
	}
	return defaultCredentialsCache + currentUser.Uid, nil
}
