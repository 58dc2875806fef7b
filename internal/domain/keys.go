package domain

import "context"

const (
	// DefaultKeySize is used when a caller does not ask for a specific modulus size
	DefaultKeySize = 2048
	// MinKeySize is the smallest modulus accepted from callers
	MinKeySize = 1024
	// MaxKeySize is the largest modulus accepted from callers
	MaxKeySize = 4096
)

// GeneratedKeyPair describes a freshly written key pair
type GeneratedKeyPair struct {
	Message        string `json:"message"`
	PrivateKeyPath string `json:"privateKeyPath"`
	PublicKeyPath  string `json:"publicKeyPath"`
	PublicKey      string `json:"publicKey"`
}

// KeyStatus reports whether a key pair is present on disk
type KeyStatus struct {
	Exists  bool   `json:"exists"`
	Message string `json:"message"`
}

// KeyStore owns the durable representation of a single RSA key pair.
// Implementations never cache key material: every read goes to storage.
type KeyStore interface {
	// Generate creates a new key pair of the given size, replacing any existing pair
	Generate(ctx context.Context, bits int) (*GeneratedKeyPair, error)
	// Exists reports whether both halves of the pair are present
	Exists(ctx context.Context) bool
	// PrivateKey returns the PEM encoded private key
	PrivateKey(ctx context.Context) (string, error)
	// PublicKey returns the PEM encoded public key
	PublicKey(ctx context.Context) (string, error)
	// Delete removes whichever halves of the pair exist
	Delete(ctx context.Context) (string, error)
}

// KeyService is the caller facing view of key management
type KeyService interface {
	GenerateKeys(ctx context.Context, bits int) (*GeneratedKeyPair, error)
	Status(ctx context.Context) *KeyStatus
	PublicKey(ctx context.Context) (string, error)
	DeleteKeys(ctx context.Context) (string, error)
}
