// Package workspace provides the run-scoped identity for one test
// environment.
//
// A workspace owns the name every provider resource derives its Name tag
// from, plus the SSH key pair imported as the environment's keypair. Two
// workspaces never share a name, so concurrent test runs cannot collide.
package workspace

import (
	"fmt"

	"github.com/rigcheck/rigcheck/internal/util/keygen"
	"github.com/rigcheck/rigcheck/internal/util/naming"
)

const keyBits = 2048

// Workspace identifies one test run and carries its SSH key material.
type Workspace struct {
	// Name is the unique prefix for every resource of this run.
	Name string

	keys *keygen.KeyPair
}

// New creates a workspace named {prefix}-{5 random lowercase} with a fresh
// RSA key pair.
func New(prefix string) (*Workspace, error) {
	if prefix == "" {
		return nil, fmt.Errorf("workspace prefix must not be empty")
	}

	keys, err := keygen.GenerateRSAKeyPair(keyBits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate workspace key pair: %w", err)
	}

	return &Workspace{
		Name: fmt.Sprintf("%s-%s", prefix, naming.RandomSuffix(5)),
		keys: keys,
	}, nil
}

// PublicKey returns the OpenSSH authorized_keys form of the workspace key,
// suitable for importing as a provider keypair.
func (w *Workspace) PublicKey() []byte {
	return w.keys.PublicKey
}

// PrivateKey returns the PEM-encoded private key for SSH access to nodes.
func (w *Workspace) PrivateKey() []byte {
	return w.keys.PrivateKey
}
