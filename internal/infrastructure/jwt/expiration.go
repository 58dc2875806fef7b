package jwt

import (
	"fmt"
	"strings"

	"github.com/ermis/jwt-rsa256-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

const expirationTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// CheckTokenExpiration inspects the exp claim of an unverified token
func (j *jwtService) CheckTokenExpiration(tokenString string) (*domain.ExpirationStatus, error) {
	decoded, err := splitToken(lenientParser, tokenString)
	if err != nil {
		return nil, domain.ErrTokenDecode.Wrap(err)
	}

	exp, err := jwt.MapClaims(decoded.Payload).GetExpirationTime()
	if err != nil {
		return nil, domain.ErrTokenDecode.Wrap(err)
	}
	if exp == nil {
		return nil, domain.ErrMissingExpiration
	}

	now := j.now().Unix()
	expiresAt := exp.Unix()

	isExpired := now >= expiresAt
	var remaining int64
	if !isExpired {
		remaining = expiresAt - now
	}

	return &domain.ExpirationStatus{
		IsExpired:              isExpired,
		ExpirationTime:         exp.Time.UTC().Format(expirationTimeLayout),
		TimeRemaining:          remaining,
		TimeRemainingFormatted: formatTimeRemaining(remaining),
	}, nil
}

// formatTimeRemaining renders seconds as "1 day, 2 hours, 5 seconds",
// leaving out zero components
func formatTimeRemaining(seconds int64) string {
	if seconds <= 0 {
		return "expired"
	}

	units := []struct {
		name string
		size int64
	}{
		{"day", 86400},
		{"hour", 3600},
		{"minute", 60},
		{"second", 1},
	}

	parts := make([]string, 0, len(units))
	for _, u := range units {
		n := seconds / u.size
		seconds %= u.size
		if n == 0 {
			continue
		}
		if n == 1 {
			parts = append(parts, fmt.Sprintf("1 %s", u.name))
		} else {
			parts = append(parts, fmt.Sprintf("%d %ss", n, u.name))
		}
	}
	return strings.Join(parts, ", ")
}
