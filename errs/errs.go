// Copyright 2025 The AXL Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errs classifies failures raised by the IR core.
//
// An internal error signals a violated invariant inside the compiler
// (a malformed node reaching a factory, a missing dispatch handler).
// It is a bug in the compiler or in a pass, never in user input, and
// is unrecoverable at the point it is raised: the core panics and the
// panic carries the classified error up to the compilation driver.
//
// A user error signals malformed input to whatever built the IR. The
// validating factories are frequently the first point such input is
// caught. User errors carry the same payload but must be presented
// without implying a compiler bug.
package errs

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

type class int

const (
	internal class = iota
	user
)

// Error is a classified failure. It wraps the underlying cause so
// that callers can chain through it with errors.Cause or Unwrap.
type Error struct {
	class class
	err   error
}

// Error returns the message of the underlying cause.
func (e *Error) Error() string {
	if e.class == internal {
		return "internal error: " + e.err.Error() + " (this is a bug in the compiler, please report it)"
	}
	return e.err.Error()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.err }

// Internal wraps an error, marking it as a compiler bug.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	return &Error{class: internal, err: err}
}

// Internalf builds an internal error. The message records a violated
// invariant of the compiler, not a problem with user input.
func Internalf(format string, args ...any) error {
	return Internal(errors.Errorf(format, args...))
}

// User wraps an error, marking it as caused by malformed user input.
func User(err error) error {
	if err == nil {
		return nil
	}
	return &Error{class: user, err: err}
}

// Userf builds a user error.
func Userf(format string, args ...any) error {
	return User(errors.Errorf(format, args...))
}

// IsInternal returns true if err is classified as a compiler bug.
func IsInternal(err error) bool {
	classified := &Error{}
	return errors.As(err, &classified) && classified.class == internal
}

// IsUser returns true if err is classified as a user error.
func IsUser(err error) bool {
	classified := &Error{}
	return errors.As(err, &classified) && classified.class == user
}

// Join combines a set of violations into a single error. Nil entries
// are dropped; Join returns nil when nothing is left.
func Join(errs ...error) error {
	return multierr.Combine(errs...)
}

// ThrowInternalf panics with an internal error. Factories and dispatch
// tables use it when an invariant has been violated: the failure
// aborts the current compilation unit instead of being returned.
func ThrowInternalf(format string, args ...any) {
	panic(Internalf(format, args...))
}

// ThrowInternal panics with err marked as an internal error.
func ThrowInternal(err error) {
	panic(Internal(err))
}

// ThrowUserf panics with a user error raised while building IR.
func ThrowUserf(format string, args ...any) {
	panic(Userf(format, args...))
}

// AssertInternal panics with an internal error unless cond holds.
func AssertInternal(cond bool, format string, args ...any) {
	if !cond {
		ThrowInternalf(format, args...)
	}
}

// Catch runs f and converts a classified panic back into an error.
// Panics that do not carry a classified error are re-raised. It is
// the boundary a compilation driver uses around a whole pass.
func Catch(f func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		classified, ok := r.(*Error)
		if !ok {
			panic(r)
		}
		err = classified
	}()
	f()
	return nil
}
