package auth

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginCredentials_SamePairForEveryScheme(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	credentials := &LoginCredentials{Username: "alice", Password: "secret"}
	schemes := []string{SchemeNegotiate, SchemeNTLM, SchemeBasic, "Digest", ""}
	for _, scheme := range schemes {
		username, password := credentials.ProvideCredentials(scheme)
		assert.Equal(t, "alice", username)
		assert.Equal(t, "secret", password)
	}

	entries := hook.AllEntries()
	require.Len(t, entries, len(schemes))
	for i, entry := range entries {
		assert.Equal(t, logrus.InfoLevel, entry.Level)
		assert.Equal(t, schemes[i], entry.Data["scheme"])
		assert.Equal(t, "Feeding username and password for "+schemes[i], entry.Message)
	}
}
