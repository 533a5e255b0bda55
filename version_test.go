package vault_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iov-one/vault"
)

func TestVersion(t *testing.T) {
	vault.GitCommit = ""
	assert.Equal(t, "v0.1.0-dev", vault.Version())

	vault.GitCommit = "12345678"
	assert.Equal(t, "v0.1.0-dev 12345678", vault.Version())
	vault.GitCommit = ""
}
