/*
 * Vela - A statically-typed programming language
 *
 * Copyright Vela Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package types

import (
	"fmt"

	"github.com/vela-lang/vela/errors"
)

// MissingSubstitutionError is returned by substitution when a generic
// parameter or archetype has no replacement in the substitution map
// and missing replacements were not ignored.
type MissingSubstitutionError struct {
	Type Type
}

var _ errors.UserError = MissingSubstitutionError{}

func (e MissingSubstitutionError) IsUserError() {}

func (e MissingSubstitutionError) Error() string {
	return fmt.Sprintf(
		"no substitution for type: %s",
		e.Type,
	)
}

// MemberNotFoundError is returned by substitution when a dependent
// member type's base was replaced by a concrete type which has no
// member with the required name.
type MemberNotFoundError struct {
	Base Type
	Name string
}

var _ errors.UserError = MemberNotFoundError{}

func (e MemberNotFoundError) IsUserError() {}

func (e MemberNotFoundError) Error() string {
	return fmt.Sprintf(
		"type %s has no member type %s",
		e.Base,
		e.Name,
	)
}
