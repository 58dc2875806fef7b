package jwt

import (
	"context"
	"crypto"
	"encoding/base64"
	"encoding/json"

	"github.com/ermis/jwt-rsa256-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"go.uber.org/zap"
)

// JWKS publishes the stored public key as a JSON Web Key Set. The key ID is
// the RFC 7638 SHA-256 thumbprint, so it changes whenever keys are regenerated.
func (j *jwtService) JWKS(ctx context.Context) (map[string]interface{}, error) {
	publicPEM, err := j.keys.PublicKey(ctx)
	if err != nil {
		return nil, err
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicPEM))
	if err != nil {
		j.logger.Error("Failed to parse public key", zap.Error(err))
		return nil, domain.ErrKeyStorage.Wrap(err)
	}

	key, err := jwk.FromRaw(publicKey)
	if err != nil {
		return nil, domain.ErrInternal.Wrap(err)
	}

	thumbprint, err := key.Thumbprint(crypto.SHA256)
	if err != nil {
		return nil, domain.ErrInternal.Wrap(err)
	}

	if err := key.Set(jwk.KeyIDKey, base64.RawURLEncoding.EncodeToString(thumbprint)); err != nil {
		return nil, domain.ErrInternal.Wrap(err)
	}
	if err := key.Set(jwk.AlgorithmKey, jwa.RS256); err != nil {
		return nil, domain.ErrInternal.Wrap(err)
	}
	if err := key.Set(jwk.KeyUsageKey, jwk.ForSignature); err != nil {
		return nil, domain.ErrInternal.Wrap(err)
	}

	set := jwk.NewSet()
	if err := set.AddKey(key); err != nil {
		return nil, domain.ErrInternal.Wrap(err)
	}

	raw, err := json.Marshal(set)
	if err != nil {
		return nil, domain.ErrInternal.Wrap(err)
	}

	var keys map[string]interface{}
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, domain.ErrInternal.Wrap(err)
	}
	return keys, nil
}
