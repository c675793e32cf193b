// Copyright 2025 The Rivaas Authors
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

package urljs

import "errors"

var (
	// ErrNoReverseMatch indicates that the oracle could not produce a path
	// for the given name and arguments. The reverser treats it (and any
	// other oracle error) as "this candidate combination is structurally
	// invalid" and moves on to the next combination.
	ErrNoReverseMatch = errors.New("no reverse match")

	// ErrGenerationFailed indicates that no placeholder combination
	// produced a reversible path for a pattern. It is fatal to the run: a
	// partially generated script could silently mis-link at runtime.
	ErrGenerationFailed = errors.New("unable to generate url")

	// ErrReversalLimitHit indicates that the candidate space for one
	// pattern exceeded the configured ceiling. It is fatal and not
	// retried; remediation is registering more specific placeholders.
	ErrReversalLimitHit = errors.New("reversal attempt limit hit")

	// ErrMissingArgument indicates that a template was rendered without a
	// value for one of its parameters.
	ErrMissingArgument = errors.New("missing required argument")

	// ErrReversalLimitInvalid indicates a non-positive reversal ceiling.
	ErrReversalLimitInvalid = errors.New("reversal limit must be positive")

	// ErrUnknownStrategy indicates an unrecognized emission strategy.
	ErrUnknownStrategy = errors.New("unknown emission strategy")
)
