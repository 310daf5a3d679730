package errs

import (
	"errors"
	"fmt"
	"strings"
)

type Code uint16

const (
	CodeUnknown Code = iota
	CodeUnknownCapability
	CodeCardinality
	CodeCyclicDependency
	CodeIncompleteComposition
	CodeEngineDisposed
	CodeReentrantRead
	CodeActivationFailed
	CodeDisposeFailed
	CodeTransactionFinalized
	CodeInvalidRecipe
	CodeValidationFailed
)

var codeNames = map[Code]string{
	CodeUnknown:               "UNKNOWN",
	CodeUnknownCapability:     "UNKNOWN_CAPABILITY",
	CodeCardinality:           "CARDINALITY_VIOLATION",
	CodeCyclicDependency:      "CYCLIC_DEPENDENCY",
	CodeIncompleteComposition: "INCOMPLETE_COMPOSITION",
	CodeEngineDisposed:        "ENGINE_DISPOSED",
	CodeReentrantRead:         "REENTRANT_READ",
	CodeActivationFailed:      "ACTIVATION_FAILED",
	CodeDisposeFailed:         "DISPOSE_FAILED",
	CodeTransactionFinalized:  "TRANSACTION_FINALIZED",
	CodeInvalidRecipe:         "INVALID_RECIPE",
	CodeValidationFailed:      "VALIDATION_FAILED",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", c)
}

// Error is the taxonomy root for every failure the engine can raise.
// Capability names the capability involved, Recipe the composing recipe
// when known, and Chain carries a dependency path for cycle reports.
type Error struct {
	Code       Code
	Message    string
	Capability string
	Recipe     string
	Cause      error
	Chain      []string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s]", e.Code))

	if e.Capability != "" {
		b.WriteString(fmt.Sprintf(" capability=%q:", e.Capability))
	}

	b.WriteString(" ")
	b.WriteString(e.Message)

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func (e *Error) WithCapability(capability string) *Error {
	e.Capability = capability
	return e
}

func (e *Error) WithRecipe(recipe string) *Error {
	e.Recipe = recipe
	return e
}

func (e *Error) WithChain(chain []string) *Error {
	e.Chain = chain
	return e
}

func New(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func UnknownCapability(capability string) *Error {
	return New(
		CodeUnknownCapability,
		fmt.Sprintf("no recipe registered for capability %s", capability),
		nil,
	).WithCapability(capability)
}

func Cardinality(capability, recipe, want string, got int) *Error {
	msg := fmt.Sprintf("capability %s requires %s match, found %d", capability, want, got)
	if recipe != "" {
		msg += fmt.Sprintf(" while composing %s", recipe)
	}
	return New(CodeCardinality, msg, nil).WithCapability(capability).WithRecipe(recipe)
}

func Cyclic(chain []string) *Error {
	return New(
		CodeCyclicDependency,
		fmt.Sprintf("constructor cycle detected: %s", strings.Join(chain, " -> ")),
		nil,
	).WithChain(chain)
}

func Stalled(remaining []string) *Error {
	return New(
		CodeCyclicDependency,
		fmt.Sprintf("instantiation stalled, unresolvable remainder: %s", strings.Join(remaining, ", ")),
		nil,
	).WithChain(remaining)
}

func Incomplete(message string) *Error {
	return New(CodeIncompleteComposition, message, nil)
}

func Disposed(scope string) *Error {
	return New(
		CodeEngineDisposed,
		fmt.Sprintf("engine %s has been disposed", scope),
		nil,
	)
}

func Reentrant(capability string) *Error {
	return New(
		CodeReentrantRead,
		fmt.Sprintf("capability %s is still being instantiated", capability),
		nil,
	).WithCapability(capability)
}

func Activation(capability string, cause error) *Error {
	return New(
		CodeActivationFailed,
		fmt.Sprintf("constructor for %s failed", capability),
		cause,
	).WithCapability(capability)
}

func DisposeFailed(scope string, cause error) *Error {
	return New(
		CodeDisposeFailed,
		fmt.Sprintf("disposal of engine %s failed", scope),
		cause,
	)
}

func TransactionFinalized() *Error {
	return New(CodeTransactionFinalized, "resolution transaction already finalized", nil)
}

func InvalidRecipe(message string) *Error {
	return New(CodeInvalidRecipe, message, nil)
}
