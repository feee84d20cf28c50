package cnpj

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// CNPJ is a validated company registration number.
//
// Invariants:
//   - Exactly 14 ASCII digits
//   - Check digits match the modulo-11 checksum
//   - Not a reserved repeated-digit number
//
// The zero value is not a valid CNPJ; use IsZero to detect it.
type CNPJ struct {
	digits string
}

var (
	barePattern   = regexp.MustCompile(`^[0-9]{14}$`)
	maskedPattern = regexp.MustCompile(`^[0-9]{2}\.[0-9]{3}\.[0-9]{3}/[0-9]{4}-[0-9]{2}$`)
)

// ErrInvalidCNPJ wraps every error returned by Parse.
var ErrInvalidCNPJ = errors.New("invalid cnpj")

// ErrShape indicates the input is neither the bare nor the masked form.
var ErrShape = errors.New("cnpj must be 14 digits or DD.DDD.DDD/DDDD-DD")

// Parse builds a CNPJ from its bare ("46843485000186") or masked
// ("46.843.485/0001-86") form. Surrounding whitespace is ignored.
// The returned error matches ErrInvalidCNPJ and the specific cause.
func Parse(s string) (CNPJ, error) {
	s = strings.TrimSpace(s)
	if !barePattern.MatchString(s) && !maskedPattern.MatchString(s) {
		return CNPJ{}, fmt.Errorf("%w: %w", ErrInvalidCNPJ, ErrShape)
	}

	digits := Digits(s)
	if err := Check(digits); err != nil {
		return CNPJ{}, fmt.Errorf("%w: %w", ErrInvalidCNPJ, err)
	}
	return CNPJ{digits: digits}, nil
}

// MustParse is like Parse but panics on error.
// Use only in tests or when the value is known to be valid.
func MustParse(s string) CNPJ {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the bare 14 digits.
func (c CNPJ) String() string {
	return c.digits
}

// Masked returns the DD.DDD.DDD/DDDD-DD form.
func (c CNPJ) Masked() string {
	return Format(c.digits)
}

// Base returns the 8-digit root shared by every branch of the company.
func (c CNPJ) Base() string {
	if c.IsZero() {
		return ""
	}
	return c.digits[:8]
}

// Branch returns the 4-digit branch number.
func (c CNPJ) Branch() string {
	if c.IsZero() {
		return ""
	}
	return c.digits[8:12]
}

// IsHeadOffice reports whether this is the head office (branch 0001).
func (c CNPJ) IsHeadOffice() bool {
	return c.Branch() == "0001"
}

// IsZero returns true if this is the zero value.
func (c CNPJ) IsZero() bool {
	return c.digits == ""
}

// MarshalText implements encoding.TextMarshaler using the bare form.
func (c CNPJ) MarshalText() ([]byte, error) {
	return []byte(c.digits), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via Parse.
func (c *CNPJ) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
