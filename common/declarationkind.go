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

package common

import (
	"github.com/vela-lang/vela/errors"
)

// DeclarationKind identifies the kind of a named declaration
// that a type may refer to.
type DeclarationKind uint

const (
	DeclarationKindUnknown DeclarationKind = iota
	DeclarationKindStructure
	DeclarationKindEnum
	DeclarationKindClass
	DeclarationKindProtocol
	DeclarationKindTypeAlias
	DeclarationKindModule
	DeclarationKindGenericParameter
	DeclarationKindAssociatedType
)

// IsNominal returns true if declarations of this kind introduce a nominal type.
func (k DeclarationKind) IsNominal() bool {
	switch k {
	case DeclarationKindStructure,
		DeclarationKindEnum,
		DeclarationKindClass,
		DeclarationKindProtocol:

		return true

	default:
		return false
	}
}

func (k DeclarationKind) Name() string {
	switch k {
	case DeclarationKindUnknown:
		return "unknown"
	case DeclarationKindStructure:
		return "structure"
	case DeclarationKindEnum:
		return "enum"
	case DeclarationKindClass:
		return "class"
	case DeclarationKindProtocol:
		return "protocol"
	case DeclarationKindTypeAlias:
		return "type alias"
	case DeclarationKindModule:
		return "module"
	case DeclarationKindGenericParameter:
		return "generic parameter"
	case DeclarationKindAssociatedType:
		return "associated type"
	}

	panic(errors.NewUnreachableError())
}

func (k DeclarationKind) String() string {
	return k.Name()
}
