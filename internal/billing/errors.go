package billing

import (
	"errors"
	"fmt"
)

// ErrDuplicateNumber is returned by the ledger when a generated bill or
// exchange number collides with an existing record. The caller retries once
// with a fresh sequence before falling back to a timestamp-suffixed number.
var ErrDuplicateNumber = errors.New("duplicate number")

// RateNotFoundError aborts an entire bill or exchange calculation when a
// requested metal type has no active rate. Partial bills are never produced.
type RateNotFoundError struct {
	MetalType string
}

func (e *RateNotFoundError) Error() string {
	return fmt.Sprintf("no active rate for metal type %q", e.MetalType)
}

// InvalidPurityError aborts an entire calculation when a purity is not
// listed on the active rate record for a metal that prices per purity.
type InvalidPurityError struct {
	MetalType string
	Purity    string
}

func (e *InvalidPurityError) Error() string {
	return fmt.Sprintf("purity %q is not valid for metal type %q", e.Purity, e.MetalType)
}

// IsRateError reports whether err is a calculation-aborting rate or purity
// error, which handlers surface as a client error rather than a server fault.
func IsRateError(err error) bool {
	var rnf *RateNotFoundError
	var ip *InvalidPurityError
	return errors.As(err, &rnf) || errors.As(err, &ip)
}
