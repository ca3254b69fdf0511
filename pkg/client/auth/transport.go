package auth

import (
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var ErrUnsupportedScheme = errors.New("no supported authentication scheme offered")

// Authorizer adds credentials for a single authentication scheme to a request.
type Authorizer interface {
	Scheme() string
	Authorize(req *http.Request, username string, password string) error
}

// ChallengeTransport sends a request and, when the server answers with a 401 challenge,
// asks Credentials for a username and password, authorizes a copy of the request with the
// first of Authorizers whose scheme the server offered, and sends it once more. A second
// challenge is returned to the caller as is.
type ChallengeTransport struct {
	Base        http.RoundTripper
	Credentials CredentialProvider
	// Authorizers in order of preference.
	Authorizers []Authorizer
	// OnChallenge, if set, is called with the scheme chosen to answer a challenge.
	OnChallenge func(scheme string)
}

func (t *ChallengeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base().RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	offered := ParseChallenges(resp.Header)
	authorizer, err := t.selectAuthorizer(offered)
	if err != nil {
		log.WithField("offered", strings.Join(offered, ",")).Warn(err.Error())
		return resp, nil
	}
	if t.Credentials == nil {
		log.WithField("scheme", authorizer.Scheme()).Warn("challenged but no credentials are configured")
		return resp, nil
	}
	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
		log.WithField("url", req.URL.Redacted()).Warn("challenged but the request body cannot be replayed")
		return resp, nil
	}

	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			discard(resp)
			return nil, errors.Wrap(err, "error reopening request body")
		}
		retry.Body = body
	}

	scheme := authorizer.Scheme()
	if t.OnChallenge != nil {
		t.OnChallenge(scheme)
	}
	username, password := t.Credentials.ProvideCredentials(scheme)
	if err := authorizer.Authorize(retry, username, password); err != nil {
		discard(resp)
		if retry.Body != nil {
			retry.Body.Close()
		}
		return nil, errors.WithMessagef(err, "error authorizing request with %s", scheme)
	}
	discard(resp)

	return t.base().RoundTrip(retry)
}

func (t *ChallengeTransport) selectAuthorizer(offered []string) (Authorizer, error) {
	for _, authorizer := range t.Authorizers {
		for _, scheme := range offered {
			if strings.EqualFold(authorizer.Scheme(), scheme) {
				return authorizer, nil
			}
		}
	}
	return nil, ErrUnsupportedScheme
}

func (t *ChallengeTransport) base() http.RoundTripper {
	if t.Base == nil {
		return http.DefaultTransport
	}
	return t.Base
}

func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
