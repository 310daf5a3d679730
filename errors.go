package kiln

import (
	"errors"

	"github.com/kiln-di/kiln/internal/errs"
)

// ErrorCode classifies the failures the engine can raise.
type ErrorCode = errs.Code

const (
	ErrCodeUnknownCapability     = errs.CodeUnknownCapability
	ErrCodeCardinality           = errs.CodeCardinality
	ErrCodeCyclicDependency      = errs.CodeCyclicDependency
	ErrCodeIncompleteComposition = errs.CodeIncompleteComposition
	ErrCodeEngineDisposed        = errs.CodeEngineDisposed
	ErrCodeReentrantRead         = errs.CodeReentrantRead
	ErrCodeActivationFailed      = errs.CodeActivationFailed
	ErrCodeDisposeFailed         = errs.CodeDisposeFailed
	ErrCodeTransactionFinalized  = errs.CodeTransactionFinalized
	ErrCodeInvalidRecipe         = errs.CodeInvalidRecipe
	ErrCodeValidationFailed      = errs.CodeValidationFailed
)

// Error is the typed error every engine failure unwraps to.
type Error = errs.Error

func is(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

func IsUnknownCapability(err error) bool {
	return is(err, ErrCodeUnknownCapability)
}

func IsCardinality(err error) bool {
	return is(err, ErrCodeCardinality)
}

func IsCyclicDependency(err error) bool {
	return is(err, ErrCodeCyclicDependency)
}

func IsIncompleteComposition(err error) bool {
	return is(err, ErrCodeIncompleteComposition)
}

func IsEngineDisposed(err error) bool {
	return is(err, ErrCodeEngineDisposed)
}

func IsReentrantRead(err error) bool {
	return is(err, ErrCodeReentrantRead)
}

func IsActivationFailed(err error) bool {
	return is(err, ErrCodeActivationFailed)
}

func IsDisposeFailed(err error) bool {
	return is(err, ErrCodeDisposeFailed)
}

func IsInvalidRecipe(err error) bool {
	return is(err, ErrCodeInvalidRecipe)
}

func IsValidationFailed(err error) bool {
	return is(err, ErrCodeValidationFailed)
}
