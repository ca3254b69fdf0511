package auth

import (
	"net/http"
	"strings"

	"github.com/jcmturner/gokrb5/v8/spnego"
)

const (
	SchemeNegotiate = "Negotiate"
	SchemeNTLM      = "NTLM"
	SchemeBasic     = "Basic"
)

var knownSchemes = []string{SchemeNegotiate, SchemeNTLM, SchemeBasic}

// ParseChallenges returns the authentication schemes offered in the WWW-Authenticate values
// of header, in the order the server listed them. Scheme names are canonicalised. Challenge
// parameters and token68 data are dropped.
func ParseChallenges(header http.Header) []string {
	var schemes []string
	seen := map[string]bool{}
	for _, value := range header.Values(spnego.HTTPHeaderAuthResponse) {
		for _, element := range splitOutsideQuotes(value) {
			element = strings.TrimSpace(element)
			if element == "" {
				continue
			}
			name := element
			if i := strings.IndexAny(element, " \t="); i >= 0 {
				if element[i] == '=' {
					// auth-param belonging to the previous challenge
					continue
				}
				name = element[:i]
			}
			name = canonicalScheme(name)
			if !seen[name] {
				seen[name] = true
				schemes = append(schemes, name)
			}
		}
	}
	return schemes
}

func canonicalScheme(name string) string {
	for _, known := range knownSchemes {
		if strings.EqualFold(name, known) {
			return known
		}
	}
	return name
}

func splitOutsideQuotes(value string) []string {
	var parts []string
	quoted, escaped := false, false
	start := 0
	for i, r := range value {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && quoted:
			escaped = true
		case r == '"':
			quoted = !quoted
		case r == ',' && !quoted:
			parts = append(parts, value[start:i])
			start = i + 1
		}
	}
	return append(parts, value[start:])
}
