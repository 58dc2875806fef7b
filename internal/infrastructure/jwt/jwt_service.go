package jwt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ermis/jwt-rsa256-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var errAlgorithmNotAllowed = errors.New("invalid algorithm")

// optionClaims maps signing options to the registered claim they set
var optionClaims = []struct {
	option string
	claim  string
}{
	{"expiresIn", "exp"},
	{"issuer", "iss"},
	{"subject", "sub"},
	{"audience", "aud"},
}

type jwtService struct {
	keys           domain.KeyStore
	defaults       domain.TokenOptions
	verifyDefaults domain.VerifyOptions
	logger         *zap.Logger
	now            func() time.Time
}

// NewJWTService creates a token service that reads key material from keys on
// every call. defaults are the signing defaults; the verifier expects the same
// issuer by default.
func NewJWTService(keys domain.KeyStore, defaults domain.TokenOptions, logger *zap.Logger) domain.TokenService {
	verifyDefaults := domain.DefaultVerifyOptions()
	verifyDefaults.Issuer = defaults.Issuer

	return &jwtService{
		keys:           keys,
		defaults:       defaults,
		verifyDefaults: verifyDefaults,
		logger:         logger,
		now:            time.Now,
	}
}

// CreateToken signs payload with the stored private key
func (j *jwtService) CreateToken(ctx context.Context, payload map[string]interface{}, over *domain.TokenOverrides) (*domain.CreatedToken, error) {
	if payload == nil {
		return nil, domain.ErrTokenCreation.Wrapf("payload is required")
	}

	privatePEM, err := j.keys.PrivateKey(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrKeysNotFound) {
			return nil, err
		}
		return nil, domain.ErrTokenCreation.Wrap(err)
	}

	opts := j.defaults.Merge(over)
	if opts.Algorithm != domain.AlgorithmRS256 {
		return nil, domain.ErrTokenCreation.Wrapf("\"algorithm\" must be %s, got %q", domain.AlgorithmRS256, opts.Algorithm)
	}

	lifetime, err := opts.ExpiresIn.Duration()
	if err != nil {
		return nil, domain.ErrTokenCreation.Wrap(err)
	}

	claims, err := j.buildClaims(payload, opts, lifetime)
	if err != nil {
		return nil, domain.ErrTokenCreation.Wrap(err)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privatePEM))
	if err != nil {
		j.logger.Error("Failed to parse private key", zap.Error(err))
		return nil, domain.ErrTokenCreation.Wrap(err)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(privateKey)
	if err != nil {
		j.logger.Error("Failed to sign token", zap.Error(err))
		return nil, domain.ErrTokenCreation.Wrap(err)
	}

	j.logger.Debug("Created token",
		zap.String("issuer", opts.Issuer),
		zap.String("expires_in", string(opts.ExpiresIn)),
		zap.Any("exp", claims["exp"]))

	echo := make(map[string]interface{}, len(payload))
	for k, v := range payload {
		echo[k] = v
	}

	return &domain.CreatedToken{
		Token:   signed,
		Payload: echo,
		Options: opts,
	}, nil
}

func (j *jwtService) buildClaims(payload map[string]interface{}, opts domain.TokenOptions, lifetime time.Duration) (jwt.MapClaims, error) {
	set := map[string]bool{
		"exp": true,
		"iss": opts.Issuer != "",
		"sub": opts.Subject != "",
		"aud": opts.Audience != "",
	}
	for _, oc := range optionClaims {
		if _, exists := payload[oc.claim]; exists && set[oc.claim] {
			return nil, fmt.Errorf("bad \"options.%s\" option: the payload already has an %q property", oc.option, oc.claim)
		}
	}

	issuedAt := j.now().Unix()
	if raw, ok := payload["iat"]; ok {
		iat, ok := numericClaim(raw)
		if !ok {
			return nil, fmt.Errorf("\"iat\" should be a number of seconds")
		}
		issuedAt = int64(iat)
	}

	claims := make(jwt.MapClaims, len(payload)+5)
	for k, v := range payload {
		claims[k] = v
	}
	claims["iat"] = issuedAt
	claims["exp"] = int64(math.Floor(float64(issuedAt) + lifetime.Seconds()))
	if opts.Issuer != "" {
		claims["iss"] = opts.Issuer
	}
	if opts.Subject != "" {
		claims["sub"] = opts.Subject
	}
	if opts.Audience != "" {
		claims["aud"] = opts.Audience
	}
	return claims, nil
}

// VerifyToken checks the token against the stored public key. Every outcome,
// including a missing key pair, is reported in the result.
func (j *jwtService) VerifyToken(ctx context.Context, tokenString string, over *domain.VerifyOverrides) *domain.VerificationResult {
	publicPEM, err := j.keys.PublicKey(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrKeysNotFound) {
			return domain.NewVerificationFailure(domain.KindKeysNotFound, domain.ErrKeysNotFound.GetMessage())
		}
		return domain.NewVerificationFailure(domain.KindKeyStorage, err.Error())
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicPEM))
	if err != nil {
		j.logger.Error("Failed to parse public key", zap.Error(err))
		return domain.NewVerificationFailure(domain.KindKeyStorage, fmt.Sprintf("invalid public key: %v", err))
	}

	opts := j.verifyDefaults.Merge(over)

	if strings.TrimSpace(tokenString) == "" {
		return domain.NewVerificationFailure(domain.KindMalformedToken, "jwt must be provided")
	}

	// Header and payload are checked up front so that a later decoding
	// failure can only come from the signature segment.
	if _, err := splitToken(strictParser, tokenString); err != nil {
		return j.fail(domain.KindMalformedToken, "jwt malformed", err)
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation(), jwt.WithStrictDecoding())
	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errAlgorithmNotAllowed
		}
		if !containsString(opts.Algorithms, t.Method.Alg()) {
			return nil, errAlgorithmNotAllowed
		}
		return publicKey, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, errAlgorithmNotAllowed), errors.Is(err, jwt.ErrTokenUnverifiable):
			return j.fail(domain.KindAlgorithmNotAllowed, "invalid algorithm", err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenMalformed):
			return j.fail(domain.KindInvalidSignature, "invalid signature", err)
		default:
			return j.fail(domain.KindMalformedToken, err.Error(), err)
		}
	}

	if result := j.validateClaims(claims, opts); result != nil {
		return result
	}

	return &domain.VerificationResult{
		Success: true,
		Valid:   true,
		Decoded: map[string]interface{}(claims),
		Header:  token.Header,
	}
}

func (j *jwtService) validateClaims(claims jwt.MapClaims, opts domain.VerifyOptions) *domain.VerificationResult {
	now := j.now().Unix()

	nbf, err := claims.GetNotBefore()
	if err != nil {
		return j.fail(domain.KindMalformedToken, "invalid nbf value", err)
	}
	if nbf != nil && now < nbf.Unix() {
		return j.fail(domain.KindTokenNotActive, "jwt not active", nil)
	}

	if !opts.IgnoreExpiration {
		exp, err := claims.GetExpirationTime()
		if err != nil {
			return j.fail(domain.KindMalformedToken, "invalid exp value", err)
		}
		if exp != nil && now >= exp.Unix() {
			return j.fail(domain.KindTokenExpired, "jwt expired", nil)
		}
	}

	if opts.Audience != "" {
		aud, err := claims.GetAudience()
		if err != nil || !containsString(aud, opts.Audience) {
			return j.fail(domain.KindAudienceMismatch, fmt.Sprintf("jwt audience invalid. expected: %s", opts.Audience), err)
		}
	}

	if opts.Issuer != "" {
		iss, err := claims.GetIssuer()
		if err != nil || iss != opts.Issuer {
			return j.fail(domain.KindIssuerMismatch, fmt.Sprintf("jwt issuer invalid. expected: %s", opts.Issuer), err)
		}
	}

	return nil
}

func (j *jwtService) fail(kind domain.VerificationKind, message string, cause error) *domain.VerificationResult {
	j.logger.Debug("Token verification failed",
		zap.String("kind", string(kind)),
		zap.String("message", message),
		zap.Error(cause))
	return domain.NewVerificationFailure(kind, message)
}

// DecodeToken splits the token into header, payload and signature without
// checking the signature
func (j *jwtService) DecodeToken(tokenString string) (*domain.DecodedToken, error) {
	decoded, err := splitToken(lenientParser, tokenString)
	if err != nil {
		return nil, domain.ErrTokenDecode.Wrap(err)
	}
	return decoded, nil
}

var (
	strictParser  = jwt.NewParser(jwt.WithStrictDecoding())
	lenientParser = jwt.NewParser()
)

func splitToken(parser *jwt.Parser, tokenString string) (*domain.DecodedToken, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil, errors.New("token contains an invalid number of segments")
	}

	header, err := decodeJSONSegment(parser, parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid header: %w", err)
	}
	payload, err := decodeJSONSegment(parser, parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid payload: %w", err)
	}

	return &domain.DecodedToken{
		Header:    header,
		Payload:   payload,
		Signature: parts[2],
	}, nil
}

func decodeJSONSegment(parser *jwt.Parser, segment string) (map[string]interface{}, error) {
	raw, err := parser.DecodeSegment(segment)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errors.New("segment is not a JSON object")
	}
	return out, nil
}

func numericClaim(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
