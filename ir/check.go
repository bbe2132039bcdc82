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

package ir

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/axl-org/axl/errs"
)

// throwInvalid panics with an internal error: a factory received
// operands that violate a node kind invariant. A violated invariant
// is a bug in whatever built the operands, never something the
// factory can recover from.
func throwInvalid(kind, name, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if name != "" {
		errs.ThrowInternalf("invalid %s %s: %s", kind, name, msg)
	}
	errs.ThrowInternalf("invalid %s: %s", kind, msg)
}

func checkDefined[T Node](kind, field string, n T) {
	if !Defined(n) {
		throwInvalid(kind, "", "%s is undefined", field)
	}
}

// invalidf builds one operand violation for factories that validate
// several operands at once and report every violation together.
func invalidf(format string, args ...any) error {
	return errors.Errorf(format, args...)
}

// throwAll panics with an internal error combining every collected
// operand violation. It is a no-op when all checks passed.
func throwAll(kind string, violations []error) {
	err := errs.Join(violations...)
	if err == nil {
		return
	}
	errs.ThrowInternal(errors.Wrapf(err, "invalid %s", kind))
}
