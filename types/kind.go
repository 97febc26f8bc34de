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
	"github.com/vela-lang/vela/errors"
)

// TypeKind is the discriminant of a type node.
// The set of kinds is closed: every node has exactly one kind,
// fixed at construction.
type TypeKind uint8

const (
	TypeKindUnknown TypeKind = iota
	TypeKindError
	TypeKindBuiltinInteger
	TypeKindBuiltinFloat
	TypeKindBuiltinRawPointer
	TypeKindBuiltinObjectPointer
	TypeKindBuiltinObjCPointer
	TypeKindBuiltinVector
	TypeKindTuple
	TypeKindParen
	TypeKindNameAlias
	TypeKindNominal
	TypeKindUnboundGeneric
	TypeKindBoundGeneric
	TypeKindModule
	TypeKindDynamicSelf
	TypeKindFunction
	TypeKindPolymorphicFunction
	TypeKindGenericFunction
	TypeKindLoweredFunction
	TypeKindProtocolComposition
	TypeKindMetatype
	TypeKindExistentialMetatype
	TypeKindArray
	TypeKindArraySlice
	TypeKindOptional
	TypeKindUncheckedOptional
	TypeKindLValue
	TypeKindInOut
	TypeKindSubstituted
	TypeKindDependentMember
	TypeKindReferenceStorage
	TypeKindArchetype
	TypeKindGenericParam
	TypeKindAssociatedType
	TypeKindTypeVariable
)

// IsSugar returns true for kinds that are transparent wrappers:
// they desugar to a differently-shaped type without changing meaning,
// and are never canonical.
func (k TypeKind) IsSugar() bool {
	switch k {
	case TypeKindParen,
		TypeKindNameAlias,
		TypeKindSubstituted,
		TypeKindArraySlice,
		TypeKindOptional,
		TypeKindUncheckedOptional:

		return true

	default:
		return false
	}
}

func (k TypeKind) Name() string {
	switch k {
	case TypeKindUnknown:
		return "unknown"
	case TypeKindError:
		return "error"
	case TypeKindBuiltinInteger:
		return "builtin integer"
	case TypeKindBuiltinFloat:
		return "builtin float"
	case TypeKindBuiltinRawPointer:
		return "builtin raw pointer"
	case TypeKindBuiltinObjectPointer:
		return "builtin object pointer"
	case TypeKindBuiltinObjCPointer:
		return "builtin ObjC pointer"
	case TypeKindBuiltinVector:
		return "builtin vector"
	case TypeKindTuple:
		return "tuple"
	case TypeKindParen:
		return "paren"
	case TypeKindNameAlias:
		return "name alias"
	case TypeKindNominal:
		return "nominal"
	case TypeKindUnboundGeneric:
		return "unbound generic"
	case TypeKindBoundGeneric:
		return "bound generic"
	case TypeKindModule:
		return "module"
	case TypeKindDynamicSelf:
		return "dynamic Self"
	case TypeKindFunction:
		return "function"
	case TypeKindPolymorphicFunction:
		return "polymorphic function"
	case TypeKindGenericFunction:
		return "generic function"
	case TypeKindLoweredFunction:
		return "lowered function"
	case TypeKindProtocolComposition:
		return "protocol composition"
	case TypeKindMetatype:
		return "metatype"
	case TypeKindExistentialMetatype:
		return "existential metatype"
	case TypeKindArray:
		return "array"
	case TypeKindArraySlice:
		return "array slice"
	case TypeKindOptional:
		return "optional"
	case TypeKindUncheckedOptional:
		return "unchecked optional"
	case TypeKindLValue:
		return "lvalue"
	case TypeKindInOut:
		return "inout"
	case TypeKindSubstituted:
		return "substituted"
	case TypeKindDependentMember:
		return "dependent member"
	case TypeKindReferenceStorage:
		return "reference storage"
	case TypeKindArchetype:
		return "archetype"
	case TypeKindGenericParam:
		return "generic parameter"
	case TypeKindAssociatedType:
		return "associated type"
	case TypeKindTypeVariable:
		return "type variable"
	}

	panic(errors.NewUnreachableError())
}

func (k TypeKind) String() string {
	return k.Name()
}
