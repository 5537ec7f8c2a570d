package unitmenu

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors returned by unitmenu operations
var (
	// ErrCancelled indicates the user dismissed a picker without choosing
	ErrCancelled = errors.New("unitmenu: selection cancelled")

	// ErrUnknownScope indicates a scope selection outside System and User
	ErrUnknownScope = errors.New("unitmenu: unsupported service scope")

	// ErrNoTerminal indicates no usable terminal emulator was found
	ErrNoTerminal = errors.New("unitmenu: no terminal emulator found")

	// ErrNoShell indicates no POSIX shell was found for pager pipelines
	ErrNoShell = errors.New("unitmenu: no POSIX shell found")
)

// Process exit statuses produced by ExitCode
const (
	// ExitOK is returned after a successfully dispatched command
	ExitOK = 0
	// ExitFailure covers cancellation and every failure except an unknown action
	ExitFailure = 1
	// ExitUnknownAction is returned when the action selection is not in the action set
	ExitUnknownAction = 2
)

// ExitCode maps an error returned by Session.Run to a process exit status.
// Cancellation, infrastructure failures and command failures all collapse to
// ExitFailure; only an unknown action is distinguished.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var unknown *UnknownActionError
	if errors.As(err, &unknown) {
		return ExitUnknownAction
	}
	return ExitFailure
}

// PickerError represents a picker process that failed to produce a selection
type PickerError struct {
	// Cmd is the picker argv that was invoked
	Cmd []string
	// Status is the picker's exit status, or -1 if it never ran
	Status int
	// Stderr is the picker's captured error output, trimmed
	Stderr string
	// Err is the underlying exec error
	Err error
}

// Error returns a formatted error message
func (e *PickerError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("unitmenu picker %q: exit status %d: %s", strings.Join(e.Cmd, " "), e.Status, e.Stderr)
	}
	return fmt.Sprintf("unitmenu picker %q: exit status %d: %v", strings.Join(e.Cmd, " "), e.Status, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *PickerError) Unwrap() error {
	return e.Err
}

// CommandError represents a dispatched management command that exited
// non-zero or could not be started
type CommandError struct {
	// Cmd is the full argv that was invoked, including any terminal wrapper
	Cmd []string
	// Status is the command's exit status, or -1 if it never ran
	Status int
	// Stderr is the command's captured error output, trimmed
	Stderr string
	// Terminal marks failures of terminal-wrapped invocations
	Terminal bool
	// Err is the underlying exec error
	Err error
}

// Error returns a formatted error message
func (e *CommandError) Error() string {
	kind := "command"
	if e.Terminal {
		kind = "terminal command"
	}
	if e.Stderr != "" {
		return fmt.Sprintf("unitmenu %s %q: exit status %d: %s", kind, strings.Join(e.Cmd, " "), e.Status, e.Stderr)
	}
	return fmt.Sprintf("unitmenu %s %q: exit status %d: %v", kind, strings.Join(e.Cmd, " "), e.Status, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *CommandError) Unwrap() error {
	return e.Err
}

// UnknownActionError represents an action selection outside the fixed action set
type UnknownActionError struct {
	// Name is the rejected selection as the picker returned it
	Name string
}

// Error returns a formatted error message
func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unitmenu: unknown action %q", e.Name)
}
