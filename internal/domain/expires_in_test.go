package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpiresIn_Duration(t *testing.T) {
	tests := []struct {
		in      ExpiresIn
		want    time.Duration
		wantErr bool
	}{
		{in: "24h", want: 24 * time.Hour},
		{in: "1h30m", want: 90 * time.Minute},
		{in: "3600", want: time.Hour},
		{in: "1.5", want: 1500 * time.Millisecond},
		{in: "7d", want: 7 * 24 * time.Hour},
		{in: "2 days", want: 48 * time.Hour},
		{in: "1 hour", want: time.Hour},
		{in: "1w", want: 7 * 24 * time.Hour},
		{in: "1y", want: 8766 * time.Hour},
		{in: "10 MINUTES", want: 10 * time.Minute},
		{in: "", wantErr: true},
		{in: "soon", wantErr: true},
		{in: "5 fortnights", wantErr: true},
		{in: "0", wantErr: true},
		{in: "-1h", wantErr: true},
		{in: "NaN", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			got, err := tt.in.Duration()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpiresIn_JSON(t *testing.T) {
	var opts TokenOverrides

	require.NoError(t, json.Unmarshal([]byte(`{"expiresIn": 3600}`), &opts))
	require.NotNil(t, opts.ExpiresIn)
	assert.Equal(t, ExpiresIn("3600"), *opts.ExpiresIn)

	require.NoError(t, json.Unmarshal([]byte(`{"expiresIn": "1h"}`), &opts))
	assert.Equal(t, ExpiresIn("1h"), *opts.ExpiresIn)

	assert.Error(t, json.Unmarshal([]byte(`{"expiresIn": true}`), &opts))

	out, err := json.Marshal(TokenOptions{Algorithm: AlgorithmRS256, ExpiresIn: "3600", Issuer: DefaultIssuer})
	require.NoError(t, err)
	assert.JSONEq(t, `{"algorithm":"RS256","expiresIn":3600,"issuer":"jwt-rsa256-api"}`, string(out))

	out, err = json.Marshal(DefaultTokenOptions())
	require.NoError(t, err)
	assert.JSONEq(t, `{"algorithm":"RS256","expiresIn":"24h","issuer":"jwt-rsa256-api"}`, string(out))
}
