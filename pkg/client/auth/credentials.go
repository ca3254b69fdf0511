package auth

import (
	log "github.com/sirupsen/logrus"
)

// CredentialProvider is asked for a username and password whenever the server challenges a
// request. scheme is the authentication scheme the credentials will be used for.
type CredentialProvider interface {
	ProvideCredentials(scheme string) (username string, password string)
}

// LoginCredentials is a fixed username/password pair. The same pair is handed out for every
// scheme and realm; NTLM, Negotiate and Basic all take the account name and password.
type LoginCredentials struct {
	Username string
	Password string
}

func (c *LoginCredentials) ProvideCredentials(scheme string) (string, string) {
	log.WithField("scheme", scheme).Infof("Feeding username and password for %s", scheme)
	return c.Username, c.Password
}
