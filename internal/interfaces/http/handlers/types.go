package handlers

import "github.com/ermis/jwt-rsa256-api/internal/domain"

// GenerateKeysRequest represents the key generation request structure
type GenerateKeysRequest struct {
	KeySize *int `json:"keySize,omitempty" example:"2048"`
}

// GenerateKeysResponse represents the key generation response structure
type GenerateKeysResponse struct {
	Success bool `json:"success"`
	domain.GeneratedKeyPair
}

// PublicKeyResponse represents the public key response structure
type PublicKeyResponse struct {
	Success   bool   `json:"success"`
	PublicKey string `json:"publicKey"`
}

// MessageResponse represents a plain acknowledgement
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CreateTokenRequest represents the token creation request structure
type CreateTokenRequest struct {
	Payload map[string]interface{} `json:"payload" validate:"required"`
	Options *domain.TokenOverrides `json:"options,omitempty"`
}

// CreateTokenResponse represents the token creation response structure
type CreateTokenResponse struct {
	Success bool `json:"success"`
	domain.CreatedToken
}

// VerifyTokenRequest represents the token verification request structure
type VerifyTokenRequest struct {
	Token   string                  `json:"token" validate:"required"`
	Options *domain.VerifyOverrides `json:"options,omitempty"`
}

// TokenRequest carries a bare token for decoding or expiration checks
type TokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// DecodeTokenResponse represents the decode response structure
type DecodeTokenResponse struct {
	Success bool `json:"success"`
	domain.DecodedToken
}

// ExpirationResponse represents the expiration check response structure
type ExpirationResponse struct {
	Success bool `json:"success"`
	domain.ExpirationStatus
}
