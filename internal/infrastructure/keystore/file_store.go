package keystore

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ermis/jwt-rsa256-api/internal/domain"
	"go.uber.org/zap"
)

const (
	privateKeyPerm = 0600
	publicKeyPerm  = 0644
	keyDirPerm     = 0700
)

// fileStore implements domain.KeyStore with two PEM files on local disk
type fileStore struct {
	privateKeyPath string
	publicKeyPath  string
	logger         *zap.Logger
}

// NewFileStore creates a key store persisting the pair at the given paths
func NewFileStore(privateKeyPath, publicKeyPath string, logger *zap.Logger) domain.KeyStore {
	return &fileStore{
		privateKeyPath: privateKeyPath,
		publicKeyPath:  publicKeyPath,
		logger:         logger,
	}
}

// Generate creates a new RSA key pair and replaces the stored one
func (s *fileStore) Generate(ctx context.Context, bits int) (*domain.GeneratedKeyPair, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.ErrKeyStorage.Wrap(err)
	}

	if bits <= 0 {
		return nil, domain.ErrKeyGeneration.Wrapf("invalid key size %d", bits)
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		s.logger.Error("Failed to generate RSA key", zap.Int("bits", bits), zap.Error(err))
		return nil, domain.ErrKeyGeneration.Wrap(err)
	}

	privateDER, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return nil, domain.ErrKeyGeneration.Wrap(err)
	}
	publicDER, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, domain.ErrKeyGeneration.Wrap(err)
	}

	privatePEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privateDER})
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})

	if err := s.ensureDirs(); err != nil {
		s.logger.Error("Failed to create key directory", zap.Error(err))
		return nil, domain.ErrKeyStorage.Wrap(err)
	}

	if err := writeFileAtomic(s.privateKeyPath, privatePEM, privateKeyPerm); err != nil {
		s.logger.Error("Failed to write private key",
			zap.String("path", s.privateKeyPath),
			zap.Error(err))
		return nil, domain.ErrKeyStorage.Wrap(err)
	}
	if err := writeFileAtomic(s.publicKeyPath, publicPEM, publicKeyPerm); err != nil {
		s.logger.Error("Failed to write public key",
			zap.String("path", s.publicKeyPath),
			zap.Error(err))
		return nil, domain.ErrKeyStorage.Wrap(err)
	}

	s.logger.Info("Generated RSA key pair",
		zap.Int("bits", bits),
		zap.String("private_key_path", s.privateKeyPath),
		zap.String("public_key_path", s.publicKeyPath))

	return &domain.GeneratedKeyPair{
		Message:        fmt.Sprintf("Successfully generated RSA key pair (%d bits)", bits),
		PrivateKeyPath: s.privateKeyPath,
		PublicKeyPath:  s.publicKeyPath,
		PublicKey:      string(publicPEM),
	}, nil
}

// Exists reports whether both key files are present
func (s *fileStore) Exists(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	return isFile(s.privateKeyPath) && isFile(s.publicKeyPath)
}

// PrivateKey returns the PEM encoded private key
func (s *fileStore) PrivateKey(ctx context.Context) (string, error) {
	return s.read(ctx, s.privateKeyPath)
}

// PublicKey returns the PEM encoded public key
func (s *fileStore) PublicKey(ctx context.Context) (string, error) {
	return s.read(ctx, s.publicKeyPath)
}

func (s *fileStore) read(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", domain.ErrKeyStorage.Wrap(err)
	}

	if !s.Exists(ctx) {
		return "", domain.ErrKeysNotFound
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// Deleted between the existence check and the read.
		if errors.Is(err, fs.ErrNotExist) {
			return "", domain.ErrKeysNotFound
		}
		s.logger.Error("Failed to read key file", zap.String("path", path), zap.Error(err))
		return "", domain.ErrKeyStorage.Wrap(err)
	}
	return string(data), nil
}

// Delete removes both key files. Missing files are not an error.
func (s *fileStore) Delete(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", domain.ErrKeyStorage.Wrap(err)
	}

	for _, path := range []string{s.privateKeyPath, s.publicKeyPath} {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.logger.Error("Failed to delete key file", zap.String("path", path), zap.Error(err))
			return "", domain.ErrKeyStorage.Wrap(err)
		}
	}

	s.logger.Info("Deleted RSA key pair",
		zap.String("private_key_path", s.privateKeyPath),
		zap.String("public_key_path", s.publicKeyPath))

	return "Successfully deleted RSA key pair", nil
}

func (s *fileStore) ensureDirs() error {
	for _, path := range []string{s.privateKeyPath, s.publicKeyPath} {
		if err := os.MkdirAll(filepath.Dir(path), keyDirPerm); err != nil {
			return err
		}
	}
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place, so readers see either the old or the new content.
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Chmod(perm); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
