package kerberos

import (
	"encoding/base64"
	"net/url"
	"os"
	"strings"

	"github.com/pkg/errors"
)

const (
	defaultKrb5ConfigPath   = "/etc/krb5.conf"
	defaultCredentialsCache = "/tmp/krb5cc_"
)

type ClientConfig struct {
	Enabled bool
	// krb5.conf location. Falls back to $KRB5_CONFIG, then /etc/krb5.conf.
	Krb5ConfigPath string
	// Realm used when the username has no @REALM suffix. Falls back to the krb5.conf default realm.
	Realm string
	// Credentials cache used when no password is supplied. Falls back to $KRB5CCNAME, then /tmp/krb5cc_<uid>.
	CredentialsCachePath string
	// Service principal of the namenode. Derived from the WebHDFS url as HTTP/<host> when empty.
	ServicePrincipal string
}

func urlToSpn(apiUrl string) (string, error) {
	parsedUrl, e := url.Parse(apiUrl)
	if e != nil {
		return "", e
	}
	host := parsedUrl.Hostname()
	if host == "" {
		return "", errors.Errorf("cannot derive service principal from url %s", apiUrl)
	}
	return "HTTP/" + host, nil
}

// splitPrincipal splits user@REALM into its parts, using defaultRealm when no realm is given.
func splitPrincipal(username string, defaultRealm string) (string, string) {
	if i := strings.LastIndex(username, "@"); i > -1 {
		return username[:i], username[i+1:]
	}
	return username, defaultRealm
}

func negotiateHeader(token []byte) string {
	return "Negotiate " + base64.StdEncoding.EncodeToString(token)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func krb5ConfigPath(clientConfig ClientConfig) string {
	return firstNonEmpty(clientConfig.Krb5ConfigPath, os.Getenv("KRB5_CONFIG"), defaultKrb5ConfigPath)
}
