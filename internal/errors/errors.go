// Package errors provides sentinel errors and custom error types for jjdiverge.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrUserCancelled indicates that the operator declined a confirmation
	ErrUserCancelled = errors.New("command execution cancelled by user")

	// ErrStaleSelection indicates that a change no longer has two or more revisions
	ErrStaleSelection = errors.New("stale divergence selection")

	// ErrEmptyRevisionSet indicates that a rebase matched no revisions
	ErrEmptyRevisionSet = errors.New("empty revision set")

	// ErrUnattendedLogic indicates that an automatic action did not end the pass
	ErrUnattendedLogic = errors.New("unattended action did not restart")

	// ErrMutationFailed indicates that a rebase, abandon or squash failed
	ErrMutationFailed = errors.New("mutation failed")
)

// StaleSelectionError represents a change that resolved to fewer than two revisions
type StaleSelectionError struct {
	ChangeIDs []string
	Found     int
}

func (e *StaleSelectionError) Error() string {
	if len(e.ChangeIDs) == 1 {
		return fmt.Sprintf("selected change ID %s has %d commit(s), need at least 2", e.ChangeIDs[0], e.Found)
	}
	return fmt.Sprintf("divergent change IDs [%s] resolved to %d commit(s), need at least 2",
		strings.Join(e.ChangeIDs, ", "), e.Found)
}

// Is returns true if the target error is ErrStaleSelection
func (e *StaleSelectionError) Is(target error) bool {
	return target == ErrStaleSelection
}

// NewStaleSelectionError creates a new StaleSelectionError
func NewStaleSelectionError(changeIDs []string, found int) *StaleSelectionError {
	return &StaleSelectionError{ChangeIDs: changeIDs, Found: found}
}

// MutationError wraps a failed repository mutation
type MutationError struct {
	Op  string
	Err error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrMutationFailed
func (e *MutationError) Is(target error) bool {
	return target == ErrMutationFailed
}

// NewMutationError creates a new MutationError
func NewMutationError(op string, err error) *MutationError {
	return &MutationError{Op: op, Err: err}
}

// UnattendedLogicError reports an automatic action that did not produce a restart
type UnattendedLogicError struct {
	Action     string
	Transition string
}

func (e *UnattendedLogicError) Error() string {
	return fmt.Sprintf("unexpected: auto action %s ended with %s instead of a restart", e.Action, e.Transition)
}

// Is returns true if the target error is ErrUnattendedLogic
func (e *UnattendedLogicError) Is(target error) bool {
	return target == ErrUnattendedLogic
}

// NewUnattendedLogicError creates a new UnattendedLogicError
func NewUnattendedLogicError(action, transition string) *UnattendedLogicError {
	return &UnattendedLogicError{Action: action, Transition: transition}
}

// JJCommandError represents an error from a jj command execution
type JJCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *JJCommandError) Error() string {
	msg := fmt.Sprintf("jj command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *JJCommandError) Unwrap() error {
	return e.Err
}

// NewJJCommandError creates a new JJCommandError
func NewJJCommandError(command string, args []string, stdout, stderr string, err error) *JJCommandError {
	return &JJCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
