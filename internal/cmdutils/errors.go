package cmdutils

import (
	"fmt"
	"io"
	"os/exec"

	"github.com/pkg/errors"
)

// ErrSilent indicates that the error was already printed and the root
// command must not print it again, only set a non-zero exit code.
var ErrSilent = errors.New("SilentError")

type SilentError struct {
	err error
}

func (e *SilentError) Error() string {
	return e.err.Error()
}

func (e *SilentError) Format(s fmt.State, verb rune) {
	if formatter, ok := e.err.(fmt.Formatter); ok {
		formatter.Format(s, verb)
	} else {
		_, _ = io.WriteString(s, e.err.Error())
	}
}

func (e *SilentError) Unwrap() error {
	return e.err
}

func (e *SilentError) Is(target error) bool {
	return target == ErrSilent
}

func WrapSilentError(err error) error {
	return &SilentError{err}
}

// ErrIncorrectUsage indicates that the command usage message should be
// printed along with the error.
var ErrIncorrectUsage = errors.New("IncorrectUsageError")

type IncorrectUsageError struct {
	err error
}

func (e *IncorrectUsageError) Error() string {
	return e.err.Error()
}

func (e *IncorrectUsageError) Unwrap() error {
	return e.err
}

func (e *IncorrectUsageError) Is(target error) bool {
	return target == ErrIncorrectUsage
}

func WrapIncorrectUsageError(err error) error {
	return &IncorrectUsageError{err}
}

// ExecError is used for failures of external commands, which are often
// caused by the user's environment rather than a bug, so the stack
// trace is not of interest.
type ExecError struct {
	err error
	cmd string
}

func (e *ExecError) Error() string {
	return e.err.Error()
}

func (e *ExecError) Unwrap() error {
	return e.err
}

func (e *ExecError) Cmd() string {
	return e.cmd
}

func WrapExecError(err error, cmd *exec.Cmd) error {
	return &ExecError{err, cmd.String()}
}
