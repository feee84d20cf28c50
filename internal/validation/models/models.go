package models

import (
	"errors"
	"time"

	"cadastro/pkg/cnpj"
)

// Reason is a stable code for why an identifier was rejected.
type Reason string

const (
	ReasonNone       Reason = ""
	ReasonLength     Reason = "length"
	ReasonEmpty      Reason = "empty"
	ReasonNonDigit   Reason = "non_digit"
	ReasonReserved   Reason = "reserved"
	ReasonCheckDigit Reason = "check_digit"
)

// ReasonFor maps a cnpj.Check error to its Reason. Unknown errors map to
// ReasonNone and should not happen.
func ReasonFor(err error) Reason {
	switch {
	case err == nil:
		return ReasonNone
	case errors.Is(err, cnpj.ErrLength):
		return ReasonLength
	case errors.Is(err, cnpj.ErrEmpty):
		return ReasonEmpty
	case errors.Is(err, cnpj.ErrNonDigit):
		return ReasonNonDigit
	case errors.Is(err, cnpj.ErrReserved):
		return ReasonReserved
	case errors.Is(err, cnpj.ErrCheckDigit):
		return ReasonCheckDigit
	default:
		return ReasonNone
	}
}

// Outcome is the metrics label for a verdict.
func (r Reason) Outcome() string {
	if r == ReasonNone {
		return "valid"
	}
	return string(r)
}

// Result is the verdict for a single input.
type Result struct {
	Input     string    `json:"input"`
	Digits    string    `json:"digits"`
	Masked    string    `json:"masked"`
	Valid     bool      `json:"valid"`
	Reason    Reason    `json:"reason,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// FormatResult is the masked rendering of an input.
type FormatResult struct {
	Input  string `json:"input"`
	Masked string `json:"masked"`
}
