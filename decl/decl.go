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

// Package decl declares the interfaces through which the type engine
// refers to named declarations.
//
// Declarations are owned by the declaration / type-checking layer.
// The engine treats them as opaque keys: it never constructs, mutates,
// or resolves them, beyond the queries below.
package decl

import (
	"github.com/vela-lang/vela/common"
)

// An ID uniquely identifies a declaration within a compilation.
type ID uint64

// Declaration is an opaque reference to a named declaration.
type Declaration interface {
	DeclarationID() ID
	Name() string
	ModuleName() string
	DeclarationKind() common.DeclarationKind
}

// ModuleDeclaration is a reference to a module.
type ModuleDeclaration interface {
	Declaration
	IsModuleDeclaration()
}

// NominalDeclaration is a reference to a nominal type declaration:
// a structure, enum, class, or protocol.
type NominalDeclaration interface {
	Declaration

	// IsGeneric returns true if the declaration has its own
	// generic parameter list.
	IsGeneric() bool
}

// ProtocolDeclaration is a reference to a protocol declaration.
type ProtocolDeclaration interface {
	NominalDeclaration

	// InheritedProtocols returns the protocols the protocol
	// directly inherits from.
	InheritedProtocols() []ProtocolDeclaration
}

// TypeAliasDeclaration is a reference to a type alias declaration.
type TypeAliasDeclaration interface {
	Declaration
	IsTypeAliasDeclaration()
}

// GenericParameterDeclaration is a reference to the declaration of
// a generic parameter, identified by its depth (the nesting level of
// the generic context that declares it) and index within that context.
type GenericParameterDeclaration interface {
	Declaration
	Depth() uint32
	Index() uint32
}

// AssociatedTypeDeclaration is a reference to an associated type
// requirement of a protocol.
type AssociatedTypeDeclaration interface {
	Declaration
	Protocol() ProtocolDeclaration
}
