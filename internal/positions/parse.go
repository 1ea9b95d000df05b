package positions

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrEmpty         = errors.New("empty list")
	ErrInvalidValue  = errors.New("illegal list value")
	ErrNonPositive   = errors.New("list values must be positive")
	ErrInvertedRange = errors.New("invalid decreasing range")
)

// ParseError reports the list token that could not be accepted.
type ParseError struct {
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err == ErrEmpty {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Token)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads a comma-separated list of positions and ranges such as
// "1,3,5-7".
//
// Every token is either a positive integer or an inclusive range "a-b" with
// a <= b. Whitespace around tokens and range bounds is ignored, leading zeros
// are accepted. Duplicates collapse and the result is sorted, so "3,2,2,1"
// and "1-3" produce the same List.
func Parse(spec string) (List, error) {
	if strings.TrimSpace(spec) == "" {
		return List{}, &ParseError{Token: spec, Err: ErrEmpty}
	}

	tokens := strings.Split(spec, ",")
	spans := make([]span, 0, len(tokens))
	for _, raw := range tokens {
		s, err := parseToken(strings.TrimSpace(raw))
		if err != nil {
			return List{}, err
		}
		spans = append(spans, s)
	}
	return normalize(spans), nil
}

// MustParse is Parse for lists known to be valid at compile time.
func MustParse(spec string) List {
	l, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return l
}

func parseToken(token string) (span, error) {
	if token == "" {
		return span{}, &ParseError{Token: token, Err: ErrInvalidValue}
	}
	// "-3" reads as a negative number rather than a range with no start.
	if strings.HasPrefix(token, "-") && isDigits(token[1:]) {
		return span{}, &ParseError{Token: token, Err: ErrNonPositive}
	}

	first, second, isRange := strings.Cut(token, "-")
	lo, err := parseNumber(strings.TrimSpace(first), token)
	if err != nil {
		return span{}, err
	}
	if !isRange {
		return span{lo: lo, hi: lo}, nil
	}

	hi, err := parseNumber(strings.TrimSpace(second), token)
	if err != nil {
		return span{}, err
	}
	if lo > hi {
		return span{}, &ParseError{Token: token, Err: ErrInvertedRange}
	}
	return span{lo: lo, hi: hi}, nil
}

func parseNumber(s string, token string) (int, error) {
	if !isDigits(s) {
		return 0, &ParseError{Token: token, Err: ErrInvalidValue}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ParseError{Token: token, Err: ErrInvalidValue}
	}
	if n == 0 {
		return 0, &ParseError{Token: token, Err: ErrNonPositive}
	}
	return n, nil
}

// isDigits rejects signs, which strconv.Atoi would otherwise accept.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
