package domain

import "context"

const (
	// AlgorithmRS256 is the only signing algorithm issued by this service
	AlgorithmRS256 = "RS256"
	// DefaultExpiresIn is the token lifetime used when none is requested
	DefaultExpiresIn ExpiresIn = "24h"
	// DefaultIssuer is stamped into every token unless overridden
	DefaultIssuer = "jwt-rsa256-api"
)

// TokenOptions are the effective options used to sign a token
type TokenOptions struct {
	Algorithm string    `json:"algorithm"`
	ExpiresIn ExpiresIn `json:"expiresIn"`
	Issuer    string    `json:"issuer"`
	Subject   string    `json:"subject,omitempty"`
	Audience  string    `json:"audience,omitempty"`
}

// DefaultTokenOptions returns the built-in signing defaults
func DefaultTokenOptions() TokenOptions {
	return TokenOptions{
		Algorithm: AlgorithmRS256,
		ExpiresIn: DefaultExpiresIn,
		Issuer:    DefaultIssuer,
	}
}

// TokenOverrides are caller supplied signing options. Nil fields keep the default.
type TokenOverrides struct {
	Algorithm *string    `json:"algorithm,omitempty"`
	ExpiresIn *ExpiresIn `json:"expiresIn,omitempty"`
	Issuer    *string    `json:"issuer,omitempty"`
	Subject   *string    `json:"subject,omitempty"`
	Audience  *string    `json:"audience,omitempty"`
}

// Merge applies overrides field by field over o
func (o TokenOptions) Merge(over *TokenOverrides) TokenOptions {
	if over == nil {
		return o
	}
	if over.Algorithm != nil {
		o.Algorithm = *over.Algorithm
	}
	if over.ExpiresIn != nil {
		o.ExpiresIn = *over.ExpiresIn
	}
	if over.Issuer != nil {
		o.Issuer = *over.Issuer
	}
	if over.Subject != nil {
		o.Subject = *over.Subject
	}
	if over.Audience != nil {
		o.Audience = *over.Audience
	}
	return o
}

// VerifyOptions are the effective options used to verify a token.
// An empty Issuer or Audience disables that check.
type VerifyOptions struct {
	Algorithms       []string `json:"algorithms"`
	Issuer           string   `json:"issuer"`
	Audience         string   `json:"audience,omitempty"`
	IgnoreExpiration bool     `json:"ignoreExpiration"`
}

// DefaultVerifyOptions returns the built-in verification defaults
func DefaultVerifyOptions() VerifyOptions {
	return VerifyOptions{
		Algorithms: []string{AlgorithmRS256},
		Issuer:     DefaultIssuer,
	}
}

// VerifyOverrides are caller supplied verification options
type VerifyOverrides struct {
	Algorithms       []string `json:"algorithms,omitempty"`
	Issuer           *string  `json:"issuer,omitempty"`
	Audience         *string  `json:"audience,omitempty"`
	IgnoreExpiration *bool    `json:"ignoreExpiration,omitempty"`
}

// Merge applies overrides field by field over o
func (o VerifyOptions) Merge(over *VerifyOverrides) VerifyOptions {
	o.Algorithms = append([]string(nil), o.Algorithms...)
	if over == nil {
		return o
	}
	if len(over.Algorithms) > 0 {
		o.Algorithms = append([]string(nil), over.Algorithms...)
	}
	if over.Issuer != nil {
		o.Issuer = *over.Issuer
	}
	if over.Audience != nil {
		o.Audience = *over.Audience
	}
	if over.IgnoreExpiration != nil {
		o.IgnoreExpiration = *over.IgnoreExpiration
	}
	return o
}

// CreatedToken is the outcome of signing a payload
type CreatedToken struct {
	Token   string                 `json:"token"`
	Payload map[string]interface{} `json:"payload"`
	Options TokenOptions           `json:"options"`
}

// VerificationKind classifies why a token failed verification
type VerificationKind string

const (
	KindKeysNotFound        VerificationKind = "KeysNotFoundError"
	KindKeyStorage          VerificationKind = "KeyStorageError"
	KindMalformedToken      VerificationKind = "MalformedTokenError"
	KindAlgorithmNotAllowed VerificationKind = "AlgorithmNotAllowedError"
	KindInvalidSignature    VerificationKind = "InvalidSignatureError"
	KindTokenExpired        VerificationKind = "TokenExpiredError"
	KindTokenNotActive      VerificationKind = "TokenNotActiveError"
	KindIssuerMismatch      VerificationKind = "IssuerMismatchError"
	KindAudienceMismatch    VerificationKind = "AudienceMismatchError"
)

// VerificationResult is returned for every verification, valid or not.
// Failed verification is an expected outcome and is reported here rather
// than as an error.
type VerificationResult struct {
	Success bool                   `json:"success"`
	Valid   bool                   `json:"valid"`
	Decoded map[string]interface{} `json:"decoded,omitempty"`
	Header  map[string]interface{} `json:"header,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Name    VerificationKind       `json:"name,omitempty"`
}

// NewVerificationFailure builds a failed verification result
func NewVerificationFailure(kind VerificationKind, message string) *VerificationResult {
	return &VerificationResult{
		Success: false,
		Valid:   false,
		Error:   message,
		Name:    kind,
	}
}

// DecodedToken is a token split into its parts without verification
type DecodedToken struct {
	Header    map[string]interface{} `json:"header"`
	Payload   map[string]interface{} `json:"payload"`
	Signature string                 `json:"signature"`
}

// ExpirationStatus describes where a token stands relative to its exp claim
type ExpirationStatus struct {
	IsExpired              bool   `json:"isExpired"`
	ExpirationTime         string `json:"expirationTime"`
	TimeRemaining          int64  `json:"timeRemaining"`
	TimeRemainingFormatted string `json:"timeRemainingFormatted"`
}

// TokenService signs, verifies and inspects tokens with the stored key pair
type TokenService interface {
	CreateToken(ctx context.Context, payload map[string]interface{}, opts *TokenOverrides) (*CreatedToken, error)
	VerifyToken(ctx context.Context, token string, opts *VerifyOverrides) *VerificationResult
	DecodeToken(token string) (*DecodedToken, error)
	CheckTokenExpiration(token string) (*ExpirationStatus, error)
	JWKS(ctx context.Context) (map[string]interface{}, error)
}
