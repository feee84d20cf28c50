// Package cnpj formats and validates CNPJ numbers, the 14-digit registration
// identifiers Brazil assigns to legal entities.
//
// A CNPJ is laid out as eight root digits, four branch digits and two check
// digits. The canonical display mask is:
//
//	DD.DDD.DDD/DDDD-DD
//	46.843.485/0001-86
//
// The two trailing check digits are each derived from the digits before them
// with a weighted modulo-11 checksum. Values made of one repeated digit
// ("00000000000000" through "99999999999999") pass the checksum but are
// reserved and never valid.
//
// # Entry points
//
//   - Format applies the display mask to whatever digits the input contains.
//   - IsValid reports whether a bare 14-character input is a valid CNPJ.
//   - Check runs the same gates as IsValid and returns the reason for rejection.
//   - Parse builds a CNPJ value object from either the bare or the masked form.
//
// # Purity
//
// Everything in this package is a pure function of its input: no I/O, no
// shared mutable state. All functions are safe for concurrent use.
package cnpj
