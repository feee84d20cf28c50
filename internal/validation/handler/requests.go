package handler

import (
	"unicode/utf8"

	dErrors "cadastro/pkg/domain-errors"
)

// maxInputLength bounds a single identifier in a request. Anything longer
// cannot be a CNPJ in any notation.
const maxInputLength = 256

// ValidateRequest is the body for POST /cnpj/validate and POST /cnpj/format.
//
// The value is passed through untrimmed: validation counts the raw characters
// of the input, so surrounding whitespace is significant. An empty value is a
// legitimate input: it formats to "" and is never a valid CNPJ.
type ValidateRequest struct {
	CNPJ string `json:"cnpj"`
}

// Validate implements httputil.Validatable.
func (r *ValidateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if utf8.RuneCountInString(r.CNPJ) > maxInputLength {
		return dErrors.New(dErrors.CodeValidation, "cnpj must be at most 256 characters")
	}
	return nil
}

// BatchRequest is the body for POST /cnpj/validate/batch.
type BatchRequest struct {
	CNPJs []string `json:"cnpjs"`
}

// Validate implements httputil.Validatable. The upper bound on batch size is
// enforced by the service, which owns the configured limit.
func (r *BatchRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.CNPJs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "cnpjs must contain at least one value")
	}
	for _, c := range r.CNPJs {
		if utf8.RuneCountInString(c) > maxInputLength {
			return dErrors.New(dErrors.CodeValidation, "each cnpj must be at most 256 characters")
		}
	}
	return nil
}
