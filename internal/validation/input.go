package validation

import (
	"fmt"
	"math"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	MaxEmailLength = 320
	MaxPhoneLength = 20
	MaxJSONPayload = 1048576
	MaxURLLength   = 2048
)

// ValidateEmail checks length and format. Empty values pass; callers enforce
// required fields.
func ValidateEmail(email string) error {
	if email == "" {
		return nil
	}
	if n := utf8.RuneCountInString(email); n > MaxEmailLength {
		return fmt.Errorf("email exceeds maximum length of %d characters (got %d)", MaxEmailLength, n)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email format: %w", err)
	}
	return nil
}

// ValidatePhone accepts digits with spaces, dashes, parentheses and a
// leading +.
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if n := utf8.RuneCountInString(phone); n > MaxPhoneLength {
		return fmt.Errorf("phone number exceeds maximum length of %d characters (got %d)", MaxPhoneLength, n)
	}
	for i, r := range phone {
		switch {
		case r == '+' && i == 0:
		case r >= '0' && r <= '9':
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return fmt.Errorf("invalid phone format: contains invalid character '%c'", r)
		}
	}
	return nil
}

// ValidateJSONPayload bounds the size of a raw request body.
func ValidateJSONPayload(payload string) error {
	if payload == "" {
		return fmt.Errorf("JSON payload cannot be empty")
	}
	if len(payload) > MaxJSONPayload {
		return fmt.Errorf("JSON payload exceeds maximum size of %d bytes (got %d)", MaxJSONPayload, len(payload))
	}
	return nil
}

// ParseID parses a positive numeric resource ID.
func ParseID(s string, fieldName string) (int64, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", fieldName, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", fieldName)
	}
	return id, nil
}

// ParseAmount converts a major-unit amount such as "150.50" into subunits
// (15050). At most two decimal places are accepted.
func ParseAmount(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, fmt.Errorf("amount is required")
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if hasFrac && (len(frac) == 0 || len(frac) > 2) {
		return 0, fmt.Errorf("invalid amount %q: use at most two decimal places", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	if whole == "" {
		whole = "0"
	}
	if strings.HasPrefix(whole, "-") || strings.HasPrefix(whole, "+") {
		return 0, fmt.Errorf("invalid amount %q: must be positive", s)
	}
	if !isDigits(whole) || !isDigits(frac) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	major, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || major > maxMajorAmount {
		return 0, fmt.Errorf("invalid amount %q: too large", s)
	}
	minor, _ := strconv.ParseInt(frac, 10, 64)
	total := major*100 + minor
	if total <= 0 {
		return 0, fmt.Errorf("invalid amount %q: must be greater than zero", s)
	}
	return total, nil
}

// maxMajorAmount keeps major*100+99 within int64.
const maxMajorAmount = (math.MaxInt64 - 99) / 100

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
