package auth

import "net/http"

// BasicAuthorizer answers Basic challenges with HTTP basic authentication.
type BasicAuthorizer struct{}

func (BasicAuthorizer) Scheme() string {
	return SchemeBasic
}

func (BasicAuthorizer) Authorize(req *http.Request, username string, password string) error {
	req.SetBasicAuth(username, password)
	return nil
}
