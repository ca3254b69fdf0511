package kerberos

import (
	"net/http"

	"github.com/alexbrainman/sspi/negotiate"
	"github.com/jcmturner/gokrb5/v8/spnego"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/rdsr/webhdfsctl/internal/common/logging"
	"github.com/rdsr/webhdfsctl/pkg/client/auth"
)

type sspiAuthorizer struct {
	spn string
}

// NewSPNEGOAuthorizer returns an authorizer answering Negotiate challenges through SSPI
// with the credentials of the logged on user.
func NewSPNEGOAuthorizer(serverUrl string, clientConfig ClientConfig) (auth.Authorizer, error) {
	spn := clientConfig.ServicePrincipal
	if spn == "" {
		var e error
		spn, e = urlToSpn(serverUrl)
		if e != nil {
			return nil, e
		}
	}
	return &sspiAuthorizer{spn: spn}, nil
}

func (s *sspiAuthorizer) Scheme() string {
	return auth.SchemeNegotiate
}

func (s *sspiAuthorizer) Authorize(req *http.Request, username string, password string) error {
	entry := log.WithField("spn", s.spn)
	if password != "" {
		entry.Debug("SSPI negotiates as the logged on user, supplied password is not used")
	}

	cred, err := negotiate.AcquireCurrentUserCredentials()
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		if err := cred.Release(); err != nil {
			logging.WithStacktrace(entry, errors.WithStack(err)).Error("failed to release cred")
		}
	}()

	securityCtx, token, err := negotiate.NewClientContext(cred, s.spn)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		if err := securityCtx.Release(); err != nil {
			logging.WithStacktrace(entry, errors.WithStack(err)).Error("failed to release security context")
		}
	}()

	req.Header.Set(spnego.HTTPHeaderAuthRequest, negotiateHeader(token))
	return nil
}
