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

// Package decltest provides in-memory declaration fixtures
// for tests of the type engine.
package decltest

import (
	"github.com/vela-lang/vela/common"
	"github.com/vela-lang/vela/decl"
)

// A Registry issues declaration IDs and allows declarations
// to be looked up by ID, e.g. when decoding types.
type Registry struct {
	nextID       decl.ID
	declarations map[decl.ID]decl.Declaration
}

func NewRegistry() *Registry {
	return &Registry{
		nextID:       1,
		declarations: map[decl.ID]decl.Declaration{},
	}
}

func (r *Registry) register(d decl.Declaration) {
	r.declarations[d.DeclarationID()] = d
}

func (r *Registry) issueID() decl.ID {
	id := r.nextID
	r.nextID++
	return id
}

// Lookup returns the declaration with the given ID, if any.
func (r *Registry) Lookup(id decl.ID) (decl.Declaration, bool) {
	d, ok := r.declarations[id]
	return d, ok
}

type baseDeclaration struct {
	id         decl.ID
	name       string
	moduleName string
	kind       common.DeclarationKind
}

func (d baseDeclaration) DeclarationID() decl.ID {
	return d.id
}

func (d baseDeclaration) Name() string {
	return d.name
}

func (d baseDeclaration) ModuleName() string {
	return d.moduleName
}

func (d baseDeclaration) DeclarationKind() common.DeclarationKind {
	return d.kind
}

// Module

type Module struct {
	baseDeclaration
}

var _ decl.ModuleDeclaration = &Module{}

func (r *Registry) NewModule(name string) *Module {
	d := &Module{
		baseDeclaration{
			id:         r.issueID(),
			name:       name,
			moduleName: name,
			kind:       common.DeclarationKindModule,
		},
	}
	r.register(d)
	return d
}

func (*Module) IsModuleDeclaration() {}

// Nominal

type Nominal struct {
	baseDeclaration
	generic bool
}

var _ decl.NominalDeclaration = &Nominal{}

func (r *Registry) NewNominal(
	kind common.DeclarationKind,
	moduleName string,
	name string,
	generic bool,
) *Nominal {
	d := &Nominal{
		baseDeclaration: baseDeclaration{
			id:         r.issueID(),
			name:       name,
			moduleName: moduleName,
			kind:       kind,
		},
		generic: generic,
	}
	r.register(d)
	return d
}

func (d *Nominal) IsGeneric() bool {
	return d.generic
}

// Protocol

type Protocol struct {
	baseDeclaration
	inherited []decl.ProtocolDeclaration
}

var _ decl.ProtocolDeclaration = &Protocol{}

func (r *Registry) NewProtocol(
	moduleName string,
	name string,
	inherited ...decl.ProtocolDeclaration,
) *Protocol {
	d := &Protocol{
		baseDeclaration: baseDeclaration{
			id:         r.issueID(),
			name:       name,
			moduleName: moduleName,
			kind:       common.DeclarationKindProtocol,
		},
		inherited: inherited,
	}
	r.register(d)
	return d
}

func (*Protocol) IsGeneric() bool {
	return false
}

func (d *Protocol) InheritedProtocols() []decl.ProtocolDeclaration {
	return d.inherited
}

// TypeAlias

type TypeAlias struct {
	baseDeclaration
}

var _ decl.TypeAliasDeclaration = &TypeAlias{}

func (r *Registry) NewTypeAlias(moduleName string, name string) *TypeAlias {
	d := &TypeAlias{
		baseDeclaration{
			id:         r.issueID(),
			name:       name,
			moduleName: moduleName,
			kind:       common.DeclarationKindTypeAlias,
		},
	}
	r.register(d)
	return d
}

func (*TypeAlias) IsTypeAliasDeclaration() {}

// GenericParameter

type GenericParameter struct {
	baseDeclaration
	depth uint32
	index uint32
}

var _ decl.GenericParameterDeclaration = &GenericParameter{}

func (r *Registry) NewGenericParameter(
	moduleName string,
	name string,
	depth uint32,
	index uint32,
) *GenericParameter {
	d := &GenericParameter{
		baseDeclaration: baseDeclaration{
			id:         r.issueID(),
			name:       name,
			moduleName: moduleName,
			kind:       common.DeclarationKindGenericParameter,
		},
		depth: depth,
		index: index,
	}
	r.register(d)
	return d
}

func (d *GenericParameter) Depth() uint32 {
	return d.depth
}

func (d *GenericParameter) Index() uint32 {
	return d.index
}

// AssociatedType

type AssociatedType struct {
	baseDeclaration
	protocol decl.ProtocolDeclaration
}

var _ decl.AssociatedTypeDeclaration = &AssociatedType{}

func (r *Registry) NewAssociatedType(
	protocol decl.ProtocolDeclaration,
	name string,
) *AssociatedType {
	d := &AssociatedType{
		baseDeclaration: baseDeclaration{
			id:         r.issueID(),
			name:       name,
			moduleName: protocol.ModuleName(),
			kind:       common.DeclarationKindAssociatedType,
		},
		protocol: protocol,
	}
	r.register(d)
	return d
}

func (d *AssociatedType) Protocol() decl.ProtocolDeclaration {
	return d.protocol
}
