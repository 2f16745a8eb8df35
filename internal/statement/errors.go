package statement

import (
	"errors"
	"fmt"

	"github.com/SscSPs/fintrack/internal/apperrors"
)

var (
	// ErrMalformedLine indicates a transaction line without enough positional fields.
	ErrMalformedLine = errors.New("malformed transaction line")
	// ErrInvalidDate indicates a DD/MM field that is not a calendar date.
	ErrInvalidDate = errors.New("invalid transaction date")
	// ErrInvalidNumber indicates a numeric field that does not parse as a decimal.
	ErrInvalidNumber = errors.New("invalid number")
	// ErrNegativeAmount indicates an amount below zero; direction carries the sign.
	ErrNegativeAmount = errors.New("negative amount")
	// ErrYearOutOfRange indicates a declared statement year outside MinYear..MaxYear.
	ErrYearOutOfRange = fmt.Errorf("%w: statement year out of range", apperrors.ErrValidation)
)

// FormatError reports a transaction line that could not be tokenized.
type FormatError struct {
	Line int // 1-based position within the transaction block
	Text string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("transaction line %d: %v", e.Line, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
