package application

import (
	"context"

	"github.com/ermis/jwt-rsa256-api/internal/domain"
	"go.uber.org/zap"
)

// keyServiceImpl implements the KeyService interface
type keyServiceImpl struct {
	store  domain.KeyStore
	logger *zap.Logger
}

// NewKeyService creates a new key service
func NewKeyService(store domain.KeyStore, logger *zap.Logger) domain.KeyService {
	return &keyServiceImpl{
		store:  store,
		logger: logger,
	}
}

// GenerateKeys validates the requested size and replaces the stored key pair
func (s *keyServiceImpl) GenerateKeys(ctx context.Context, bits int) (*domain.GeneratedKeyPair, error) {
	if bits < domain.MinKeySize || bits > domain.MaxKeySize {
		s.logger.Warn("Rejected key size", zap.Int("bits", bits))
		return nil, domain.ErrInvalidKeySize
	}

	result, err := s.store.Generate(ctx, bits)
	if err != nil {
		s.logger.Error("Failed to generate keys",
			zap.Int("bits", bits),
			zap.Error(err))
		return nil, err
	}
	return result, nil
}

// Status reports whether a key pair has been generated
func (s *keyServiceImpl) Status(ctx context.Context) *domain.KeyStatus {
	if s.store.Exists(ctx) {
		return &domain.KeyStatus{Exists: true, Message: "Keys exist"}
	}
	return &domain.KeyStatus{Exists: false, Message: "Keys have not been generated"}
}

// PublicKey returns the PEM encoded public key
func (s *keyServiceImpl) PublicKey(ctx context.Context) (string, error) {
	return s.store.PublicKey(ctx)
}

// DeleteKeys removes the stored key pair
func (s *keyServiceImpl) DeleteKeys(ctx context.Context) (string, error) {
	msg, err := s.store.Delete(ctx)
	if err != nil {
		s.logger.Error("Failed to delete keys", zap.Error(err))
		return "", err
	}
	return msg, nil
}
