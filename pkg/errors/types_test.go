package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestExitErrorMessage tests message selection of ExitError.
//
// It verifies:
//   - An explicit message wins
//   - The underlying error's message is used otherwise
//   - A bare code still produces a message
func TestExitErrorMessage(t *testing.T) {
	err := &ExitError{Code: ExitFailure, Message: "explicit", Err: stderrors.New("wrapped")}
	assert.Equal(t, "explicit", err.Error())

	err = NewExitError(ExitFailure, stderrors.New("wrapped"))
	assert.Equal(t, "wrapped", err.Error())

	err = &ExitError{Code: ExitTimeout}
	assert.Equal(t, "exit code 3", err.Error())

	err = NewExitErrorf(ExitConfigError, "bad value %q", "x")
	assert.Equal(t, `bad value "x"`, err.Error())
}

// TestExitErrorUnwrap tests errors.Is support through the wrapper.
func TestExitErrorUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := NewExitError(ExitFailure, cause)
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("context: %w", err)
	var exitErr *ExitError
	assert.ErrorAs(t, wrapped, &exitErr)
	assert.Equal(t, ExitFailure, exitErr.Code)
}

// TestGetExitCode tests exit code extraction.
//
// It verifies:
//   - nil maps to success
//   - ExitError codes survive wrapping
//   - Any other error maps to the generic failure code
func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitTimeout, GetExitCode(NewExitError(ExitTimeout, nil)))
	assert.Equal(t, ExitConfigError, GetExitCode(fmt.Errorf("wrapped: %w", NewExitError(ExitConfigError, nil))))
	assert.Equal(t, ExitFailure, GetExitCode(stderrors.New("plain")))
}
