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

// Type is a reference to a type node owned by a Context.
//
// Type values are handles: copying one never copies the node.
// For canonical types, equality of handles is identity of meaning.
// Non-canonical (sugared) types must be compared through their
// canonical forms.
type Type interface {
	isType()

	// Kind returns the discriminant of the node. Immutable.
	Kind() TypeKind

	// RecursiveProperties returns the structural properties of the type,
	// computed at construction.
	RecursiveProperties() RecursiveProperties

	// HasTypeVariable returns true if the type contains
	// an unresolved type variable.
	HasTypeVariable() bool

	// IsDependentType returns true if the type depends on
	// a generic parameter or associated type.
	IsDependentType() bool

	// IsMaterializable returns true if a value of the type can be
	// treated as a plain value, i.e. the type carries no address-of
	// marker outside of function input position.
	IsMaterializable() bool

	// IsCanonical returns true if the node is the unique canonical
	// representative of its meaning within its Context.
	IsCanonical() bool

	// CanonicalType returns the canonical form of the type.
	// The result is memoized: repeated calls return the same handle.
	CanonicalType() Type

	String() string

	base() *typeBase
}

// SugaredType is a type which is a transparent wrapper over another type:
// a name alias, parenthesization, substitution record, or syntax sugar
// for a library type. Sugared types are never canonical.
type SugaredType interface {
	Type

	// DesugaredType removes exactly one layer of sugar.
	DesugaredType() Type
}

// typeBase is the common header of every type node:
// the kind tag, the property set, and the lazily-filled canonical slot.
// Nodes are immutable after construction, except for the canonical slot.
type typeBase struct {
	self       Type
	ctx        *Context
	canonical  Type
	serial     uint64
	kind       TypeKind
	properties RecursiveProperties
}

func (b *typeBase) isType() {}

func (b *typeBase) Kind() TypeKind {
	return b.kind
}

func (b *typeBase) RecursiveProperties() RecursiveProperties {
	return b.properties
}

func (b *typeBase) HasTypeVariable() bool {
	return b.properties.Has(PropertyHasTypeVariable)
}

func (b *typeBase) IsDependentType() bool {
	return b.properties.Has(PropertyIsDependent)
}

func (b *typeBase) IsMaterializable() bool {
	return !b.properties.Has(PropertyNotMaterializable)
}

func (b *typeBase) IsCanonical() bool {
	return b.canonical == b.self
}

func (b *typeBase) CanonicalType() Type {
	if b.canonical != nil {
		return b.canonical
	}
	return b.ctx.canonicalType(b.self)
}

func (b *typeBase) String() string {
	return NewPrinter(PrintOptions{PreserveSugar: true}).Print(b.self)
}

func (b *typeBase) base() *typeBase {
	return b
}

// StripSugar removes all outer layers of sugar from the given type.
// The result is not necessarily canonical: its children may still
// be sugared.
func StripSugar(t Type) Type {
	for {
		sugared, ok := t.(SugaredType)
		if !ok {
			return t
		}
		t = sugared.DesugaredType()
	}
}

// As returns the given type as shape T, after stripping sugar.
// The second result reports whether the stripped type has that shape.
func As[T Type](t Type) (T, bool) {
	result, ok := StripSugar(t).(T)
	return result, ok
}

// Is returns true if the given type, after stripping sugar, has shape T.
func Is[T Type](t Type) bool {
	_, ok := StripSugar(t).(T)
	return ok
}

// Expect returns the given type as shape T, after stripping sugar.
// The caller must have already proven the shape: a mismatch is an
// invariant violation.
func Expect[T Type](t Type) T {
	result, ok := StripSugar(t).(T)
	if !ok {
		panic(errors.NewUnexpectedError(
			"expected type of kind %T, got %s type: %s",
			result,
			t.Kind(),
			t,
		))
	}
	return result
}

// ErrorType

// ErrorType is the single placeholder type recording an already-failed
// type check. It participates inertly in all later construction,
// canonicalization, and substitution.
type ErrorType struct {
	typeBase
}

var _ Type = &ErrorType{}

// TypeVariableType

// TypeVariableType is an unresolved type variable of the constraint solver.
// The engine represents it and propagates PropertyHasTypeVariable through
// composites; everything else about it belongs to the solver.
type TypeVariableType struct {
	typeBase
	id          uint64
	solverState any
}

var _ Type = &TypeVariableType{}

func (t *TypeVariableType) ID() uint64 {
	return t.id
}

// SolverState returns the opaque per-variable state owned by
// the constraint solver.
func (t *TypeVariableType) SolverState() any {
	return t.solverState
}
