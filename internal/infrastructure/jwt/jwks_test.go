package jwt

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"testing"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_JWKS(t *testing.T) {
	svc, store := newTestService(t, 1024)
	ctx := context.Background()

	keys, err := svc.JWKS(ctx)
	require.NoError(t, err)

	list, ok := keys["keys"].([]interface{})
	require.True(t, ok)
	require.Len(t, list, 1)

	entry := list[0].(map[string]interface{})
	assert.Equal(t, "RSA", entry["kty"])
	assert.Equal(t, "RS256", entry["alg"])
	assert.Equal(t, "sig", entry["use"])
	assert.NotEmpty(t, entry["kid"])

	raw, err := json.Marshal(keys)
	require.NoError(t, err)
	set, err := jwk.Parse(raw)
	require.NoError(t, err)
	key, ok := set.Key(0)
	require.True(t, ok)

	var published rsa.PublicKey
	require.NoError(t, key.Raw(&published))

	created, err := svc.CreateToken(ctx, map[string]interface{}{}, nil)
	require.NoError(t, err)
	assert.True(t, svc.VerifyToken(ctx, created.Token, nil).Valid)

	// kid follows the key material
	_, err = store.Generate(ctx, 1024)
	require.NoError(t, err)
	rotated, err := svc.JWKS(ctx)
	require.NoError(t, err)
	rotatedEntry := rotated["keys"].([]interface{})[0].(map[string]interface{})
	assert.NotEqual(t, entry["kid"], rotatedEntry["kid"])
	assert.NotEqual(t, entry["n"], rotatedEntry["n"])
	assert.Equal(t, 1024, published.N.BitLen())
}
