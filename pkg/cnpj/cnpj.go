package cnpj

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Length is the number of digits in a CNPJ.
const Length = 14

// baseLength is the number of digits that precede the check digits.
const baseLength = 12

var (
	firstWeights  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	secondWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// Rejection reasons returned by Check. Callers match them with errors.Is.
var (
	ErrLength      = errors.New("cnpj must be exactly 14 characters")
	ErrEmpty       = errors.New("cnpj contains no digits")
	ErrNonDigit    = errors.New("cnpj contains non-digit characters")
	ErrReserved    = errors.New("cnpj is a reserved number")
	ErrCheckDigit  = errors.New("cnpj check digits do not match")
	ErrInvalidBase = errors.New("cnpj base must have exactly 12 digits")
)

// reserved holds the ten repeated-digit sentinels. Built once, never mutated.
var reserved = func() []string {
	out := make([]string, 0, 10)
	for d := '0'; d <= '9'; d++ {
		out = append(out, strings.Repeat(string(d), Length))
	}
	return out
}()

// Digits returns the ASCII decimal digits of s in their original order.
// Every other character is discarded.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// Format applies the DD.DDD.DDD/DDDD-DD mask to the digits of s.
// Digits past the fourteenth are dropped; a short input yields a partial mask
// with no trailing separator.
//
//	Format("46843485000186")            // "46.843.485/0001-86"
//	Format("4684348")                   // "46.843.48"
//	Format("46.?ABC843.485/0001-86abc") // "46.843.485/0001-86"
func Format(s string) string {
	digits := Digits(s)
	n := min(len(digits), Length)

	var b strings.Builder
	b.Grow(n + 4)
	for x := 0; x < n; x++ {
		b.WriteString(separator(x))
		b.WriteByte(digits[x])
	}
	return b.String()
}

func separator(x int) string {
	switch x {
	case 2, 5:
		return "."
	case 8:
		return "/"
	case 12:
		return "-"
	default:
		return ""
	}
}

// ReservedNumbers returns the ten reserved identifiers, "00000000000000"
// through "99999999999999". The returned slice is a copy.
func ReservedNumbers() []string {
	out := make([]string, len(reserved))
	copy(out, reserved)
	return out
}

// IsReserved reports whether digits exactly matches one of the reserved
// numbers. The input must already be reduced to digits.
func IsReserved(digits string) bool {
	for _, r := range reserved {
		if digits == r {
			return true
		}
	}
	return false
}

// IsValid reports whether s is a valid CNPJ.
//
// The length gate counts the raw characters of s before any digit extraction,
// so only the bare 14-digit form can pass; masked values are rejected. Use
// Parse to accept the masked form.
func IsValid(s string) bool {
	return Check(s) == nil
}

// Check validates s with the same gates as IsValid and returns nil when s is
// valid, or one of ErrLength, ErrEmpty, ErrReserved, ErrNonDigit or
// ErrCheckDigit describing the first gate that failed.
func Check(s string) error {
	if utf8.RuneCountInString(s) != Length {
		return ErrLength
	}

	digits := Digits(s)
	if digits == "" {
		return ErrEmpty
	}
	if IsReserved(digits) {
		return ErrReserved
	}
	// 14 characters with fewer than 14 digits among them: reject rather than
	// reading past the extracted digits.
	if len(digits) != Length {
		return ErrNonDigit
	}

	values := toInts(digits)
	dv1 := checkSum(values[:baseLength], firstWeights)
	dv2 := checkSum(values[:baseLength+1], secondWeights)
	if dv1 != values[baseLength] || dv2 != values[baseLength+1] {
		return ErrCheckDigit
	}
	return nil
}

// CheckDigits computes the two check digits for a 12-digit base. Non-digit
// characters in base are ignored; the remaining digits must number exactly 12.
//
//	CheckDigits("468434850001") // "86", nil
func CheckDigits(base string) (string, error) {
	digits := Digits(base)
	if len(digits) != baseLength {
		return "", ErrInvalidBase
	}

	values := toInts(digits)
	dv1 := checkSum(values, firstWeights)
	dv2 := checkSum(append(values, dv1), secondWeights)
	return string([]byte{byte('0' + dv1), byte('0' + dv2)}), nil
}

// checkSum is the modulo-11 check digit over digits weighted by weights.
// Callers guarantee len(digits) == len(weights).
func checkSum(digits, weights []int) int {
	sum := 0
	for i, d := range digits {
		sum += d * weights[i]
	}
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}

func toInts(digits string) []int {
	out := make([]int, len(digits), len(digits)+1)
	for i := 0; i < len(digits); i++ {
		out[i] = int(digits[i] - '0')
	}
	return out
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
