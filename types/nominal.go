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
	"github.com/vela-lang/vela/common"
	"github.com/vela-lang/vela/decl"
)

// NameAliasType is sugar: a reference to a type through
// a type alias declaration.
type NameAliasType struct {
	typeBase
	declaration    decl.TypeAliasDeclaration
	underlyingType Type
}

var _ SugaredType = &NameAliasType{}

func (t *NameAliasType) Declaration() decl.TypeAliasDeclaration {
	return t.declaration
}

func (t *NameAliasType) UnderlyingType() Type {
	return t.underlyingType
}

func (t *NameAliasType) DesugaredType() Type {
	return t.underlyingType
}

// NominalType is a reference to a non-generic nominal type declaration:
// a structure, enum, class, or protocol. For nested declarations,
// the parent type is the type of the enclosing context.
type NominalType struct {
	typeBase
	declaration decl.NominalDeclaration
	parent      Type
}

var _ Type = &NominalType{}

func (t *NominalType) Declaration() decl.NominalDeclaration {
	return t.declaration
}

// Parent returns the type of the enclosing context,
// or nil for a top-level declaration.
func (t *NominalType) Parent() Type {
	return t.parent
}

// IsProtocolType returns true if the referenced declaration is a protocol.
func (t *NominalType) IsProtocolType() bool {
	return t.declaration.DeclarationKind() == common.DeclarationKindProtocol
}

// ProtocolDeclaration returns the referenced protocol declaration.
// Calling it on a non-protocol nominal type is an invariant violation.
func (t *NominalType) ProtocolDeclaration() decl.ProtocolDeclaration {
	return expectProtocolDeclaration(t.declaration)
}

// UnboundGenericType is a reference to a generic nominal type declaration
// with its generic arguments not yet applied, e.g. a bare `Dictionary`.
type UnboundGenericType struct {
	typeBase
	declaration decl.NominalDeclaration
	parent      Type
}

var _ Type = &UnboundGenericType{}

func (t *UnboundGenericType) Declaration() decl.NominalDeclaration {
	return t.declaration
}

func (t *UnboundGenericType) Parent() Type {
	return t.parent
}

// BoundGenericType is a reference to a generic nominal type declaration
// with an ordered list of generic arguments applied.
type BoundGenericType struct {
	typeBase
	declaration decl.NominalDeclaration
	parent      Type
	arguments   []Type
}

var _ Type = &BoundGenericType{}

func (t *BoundGenericType) Declaration() decl.NominalDeclaration {
	return t.declaration
}

func (t *BoundGenericType) Parent() Type {
	return t.parent
}

func (t *BoundGenericType) Arguments() []Type {
	return t.arguments
}

// ModuleType is the type of a module reference.
type ModuleType struct {
	typeBase
	module decl.ModuleDeclaration
}

var _ Type = &ModuleType{}

func (t *ModuleType) Module() decl.ModuleDeclaration {
	return t.module
}

// DynamicSelfType is the dynamic `Self` type of a class method:
// the runtime class of the value the method was invoked on,
// bounded by the given class type.
type DynamicSelfType struct {
	typeBase
	selfType Type
}

var _ Type = &DynamicSelfType{}

func (t *DynamicSelfType) SelfType() Type {
	return t.selfType
}

// ProtocolCompositionType is an existential type composed of
// zero or more protocols: a value of the type is guaranteed to
// satisfy every member protocol.
//
// The canonical form has its members minimized (protocols implied
// by inheritance removed) and sorted; a single-member composition
// canonicalizes to that protocol's nominal type, and the empty
// composition is the unconstrained existential.
type ProtocolCompositionType struct {
	typeBase
	members []Type
}

var _ Type = &ProtocolCompositionType{}

func (t *ProtocolCompositionType) Members() []Type {
	return t.members
}

// ProtocolDeclarations returns the protocol declarations of all members,
// flattening nested compositions.
func (t *ProtocolCompositionType) ProtocolDeclarations() []decl.ProtocolDeclaration {
	var declarations []decl.ProtocolDeclaration
	collectProtocolDeclarations(t, &declarations)
	return declarations
}
