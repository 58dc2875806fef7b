package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ExpiresIn is a token lifetime as supplied by callers. It keeps the
// caller's textual form so effective options echo back what was sent.
//
// Accepted forms: a JSON number or numeric string (seconds), a Go duration
// ("1h30m"), or a number followed by a long unit ("7d", "2 days", "1w").
type ExpiresIn string

var lifetimePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([a-zA-Z]+)$`)

const day = 24 * time.Hour

var lifetimeUnits = map[string]time.Duration{
	"ms": time.Millisecond, "msec": time.Millisecond, "msecs": time.Millisecond,
	"millisecond": time.Millisecond, "milliseconds": time.Millisecond,
	"s": time.Second, "sec": time.Second, "secs": time.Second,
	"second": time.Second, "seconds": time.Second,
	"m": time.Minute, "min": time.Minute, "mins": time.Minute,
	"minute": time.Minute, "minutes": time.Minute,
	"h": time.Hour, "hr": time.Hour, "hrs": time.Hour,
	"hour": time.Hour, "hours": time.Hour,
	"d": day, "day": day, "days": day,
	"w": 7 * day, "week": 7 * day, "weeks": 7 * day,
	"y": 8766 * time.Hour, "yr": 8766 * time.Hour, "yrs": 8766 * time.Hour,
	"year": 8766 * time.Hour, "years": 8766 * time.Hour,
}

// Duration parses the lifetime. Zero, negative and unparseable values are errors.
func (e ExpiresIn) Duration() (time.Duration, error) {
	s := strings.TrimSpace(string(e))
	if s == "" {
		return 0, fmt.Errorf("expiresIn is empty")
	}

	var d time.Duration
	if seconds, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
			return 0, fmt.Errorf("expiresIn %q is not a finite number", s)
		}
		d = time.Duration(seconds * float64(time.Second))
	} else if parsed, err := time.ParseDuration(s); err == nil {
		d = parsed
	} else {
		m := lifetimePattern.FindStringSubmatch(s)
		if m == nil {
			return 0, fmt.Errorf("expiresIn %q should be a number of seconds or a duration string", s)
		}
		unit, ok := lifetimeUnits[strings.ToLower(m[2])]
		if !ok {
			return 0, fmt.Errorf("expiresIn %q has an unknown unit %q", s, m[2])
		}
		value, _ := strconv.ParseFloat(m[1], 64)
		d = time.Duration(value * float64(unit))
	}

	if d <= 0 {
		return 0, fmt.Errorf("expiresIn %q must be positive", s)
	}
	return d, nil
}

// UnmarshalJSON accepts either a string or a number
func (e *ExpiresIn) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return err
	}

	switch value := v.(type) {
	case string:
		*e = ExpiresIn(value)
	case json.Number:
		*e = ExpiresIn(value.String())
	default:
		return fmt.Errorf("expiresIn should be a number of seconds or a duration string")
	}
	return nil
}

// MarshalJSON writes numeric lifetimes back as numbers
func (e ExpiresIn) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseFloat(string(e), 64); err == nil && json.Valid([]byte(e)) {
		return []byte(e), nil
	}
	return json.Marshal(string(e))
}
