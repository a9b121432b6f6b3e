package keygen

import (
	"encoding/pem"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRSAKeyPair(t *testing.T) {
	t.Parallel()
	kp, err := GenerateRSAKeyPair(2048)
	require.NoError(t, err)

	block, rest := pem.Decode(kp.PrivateKey)
	require.NotNil(t, block, "private key must be PEM encoded")
	assert.Equal(t, "RSA PRIVATE KEY", block.Type)
	assert.Empty(t, rest)

	assert.True(t, strings.HasPrefix(string(kp.PublicKey), "ssh-rsa "),
		"public key must be in authorized_keys format")
}

func TestGenerateRSAKeyPair_InvalidBits(t *testing.T) {
	t.Parallel()
	_, err := GenerateRSAKeyPair(4)
	assert.Error(t, err)
}
