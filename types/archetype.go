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
	"sort"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/vela-lang/vela/common"
	"github.com/vela-lang/vela/decl"
	"github.com/vela-lang/vela/errors"
)

// NestedTypeEntry is one nested type of an archetype: a dependent
// nested archetype, or a concrete type (which may be a bound archetype
// from an outer context).
type NestedTypeEntry struct {
	Name string
	Type Type
}

// ArchetypeType is a placeholder for an unknown-but-constrained type.
// An archetype is one of:
//
//   - primary: a generic parameter within its generic context,
//     identified by a zero-based index,
//   - nested: an associated type of a parent archetype, identified by
//     the parent, the associated-type-or-self-protocol link, and a name,
//   - opened: the concrete-but-unknown type of an existential value
//     opened for access, identified by a Context-unique numeric ID and
//     the existential type it was opened from.
//
// Each archetype carries a minimized, sorted conformance list and an
// optional superclass bound.
type ArchetypeType struct {
	typeBase
	parent      *ArchetypeType
	opened      Type
	associated  decl.AssociatedTypeDeclaration
	selfProto   decl.ProtocolDeclaration
	name        string
	indexOrID   uint64
	conformsTo  []decl.ProtocolDeclaration
	superclass  Type
	nested      []NestedTypeEntry
	nestedReady bool
}

var _ Type = &ArchetypeType{}

func (t *ArchetypeType) Name() string {
	return t.name
}

// FullName returns the dotted name of the archetype,
// walking the parent chain.
func (t *ArchetypeType) FullName() string {
	var names []string
	for a := t; a != nil; a = a.parent {
		names = append(names, a.name)
	}
	var sb strings.Builder
	for i := len(names) - 1; i >= 0; i-- {
		sb.WriteString(names[i])
		if i > 0 {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// Parent returns the parent archetype, or nil if the archetype
// is primary or opened.
func (t *ArchetypeType) Parent() *ArchetypeType {
	return t.parent
}

// OpenedExistentialType returns the existential type the archetype
// was opened from, or nil if the archetype is not opened.
func (t *ArchetypeType) OpenedExistentialType() Type {
	return t.opened
}

func (t *ArchetypeType) IsOpened() bool {
	return t.opened != nil
}

// AssociatedTypeDeclaration returns the associated type a nested
// archetype corresponds to, or nil.
func (t *ArchetypeType) AssociatedTypeDeclaration() decl.AssociatedTypeDeclaration {
	return t.associated
}

// SelfProtocol returns the protocol for which the archetype describes
// the `Self` parameter, or nil.
func (t *ArchetypeType) SelfProtocol() decl.ProtocolDeclaration {
	return t.selfProto
}

// IsSelfDerived returns true if the archetype is the `Self` parameter
// of a protocol, or an associated type derived from one.
func (t *ArchetypeType) IsSelfDerived() bool {
	for a := t; a != nil; a = a.parent {
		if a.selfProto != nil {
			return true
		}
	}
	return false
}

func (t *ArchetypeType) IsPrimary() bool {
	return t.parent == nil && t.opened == nil
}

// PrimaryIndex returns the zero-based index of a primary archetype
// within its generic context. Calling it on a non-primary archetype
// is an invariant violation.
func (t *ArchetypeType) PrimaryIndex() uint32 {
	if !t.IsPrimary() {
		panic(errors.NewUnexpectedError(
			"non-primary archetype has no index: %s",
			t.FullName(),
		))
	}
	return uint32(t.indexOrID)
}

// OpenedExistentialID returns the Context-unique ID of an opened
// archetype. Calling it on a non-opened archetype is an invariant
// violation.
func (t *ArchetypeType) OpenedExistentialID() uint64 {
	if t.opened == nil {
		panic(errors.NewUnexpectedError(
			"archetype is not an opened existential: %s",
			t.FullName(),
		))
	}
	return t.indexOrID
}

// ConformsTo returns the minimized, sorted conformance list.
func (t *ArchetypeType) ConformsTo() []decl.ProtocolDeclaration {
	return t.conformsTo
}

// Superclass returns the superclass bound, or nil.
func (t *ArchetypeType) Superclass() Type {
	return t.superclass
}

// HasRequirements returns true if the archetype has any conformance
// or superclass requirement.
func (t *ArchetypeType) HasRequirements() bool {
	return len(t.conformsTo) > 0 || t.superclass != nil
}

// SetNestedTypes sets the nested types of the archetype.
// The entries are sorted by name. The table may be set only once;
// setting it again is an invariant violation.
func (t *ArchetypeType) SetNestedTypes(nested []NestedTypeEntry) {
	if t.nestedReady {
		panic(errors.NewUnexpectedError(
			"nested types of archetype %s are already set",
			t.FullName(),
		))
	}
	sortNestedTypes(nested)
	t.nested = nested
	t.nestedReady = true
}

// NestedTypes returns all nested types of the archetype, sorted by
// name, resolving them through the Context's lazy resolver on first
// access.
func (t *ArchetypeType) NestedTypes() []NestedTypeEntry {
	if !t.nestedReady {
		resolver := t.ctx.resolver
		if resolver == nil {
			panic(errors.NewUnexpectedError(
				"nested types of archetype %s requested without a resolver",
				t.FullName(),
			))
		}
		nested := resolver.ResolveArchetypeNestedTypes(t)
		sortNestedTypes(nested)
		t.nested = nested
		t.nestedReady = true
	}
	return t.nested
}

// GetNestedType returns the nested type with the given name,
// or false if the archetype has no nested type with that name.
func (t *ArchetypeType) GetNestedType(name string) (Type, bool) {
	nested := t.NestedTypes()
	i := sort.Search(len(nested), func(i int) bool {
		return nested[i].Name >= name
	})
	if i < len(nested) && nested[i].Name == name {
		return nested[i].Type, true
	}
	return nil, false
}

func (t *ArchetypeType) HasNestedType(name string) bool {
	_, ok := t.GetNestedType(name)
	return ok
}

// AsDependentType converts the archetype to a dependent type,
// using the given mapping of primary archetypes to generic parameter
// types: a primary archetype maps directly, and a nested archetype
// becomes a dependent member over its parent's conversion.
func (t *ArchetypeType) AsDependentType(
	archetypeToParam map[*ArchetypeType]Type,
) Type {
	if mapped, ok := archetypeToParam[t]; ok {
		return mapped
	}
	if t.parent == nil {
		return t.self
	}
	base := t.parent.AsDependentType(archetypeToParam)
	return t.ctx.NewDependentMemberTypeWithDeclaration(base, t.name, t.associated)
}

func sortNestedTypes(nested []NestedTypeEntry) {
	sort.Slice(nested, func(i, j int) bool {
		return nested[i].Name < nested[j].Name
	})
}

// Conformance list canonicalization

func expectProtocolDeclaration(d decl.NominalDeclaration) decl.ProtocolDeclaration {
	protocol, ok := d.(decl.ProtocolDeclaration)
	if !ok || d.DeclarationKind() != common.DeclarationKindProtocol {
		panic(errors.NewUnexpectedError(
			"expected protocol declaration, got %s declaration %s",
			d.DeclarationKind(),
			d.Name(),
		))
	}
	return protocol
}

func collectProtocolDeclarations(t Type, declarations *[]decl.ProtocolDeclaration) {
	switch t := StripSugar(t).(type) {
	case *NominalType:
		*declarations = append(*declarations, t.ProtocolDeclaration())

	case *ProtocolCompositionType:
		for _, member := range t.members {
			collectProtocolDeclarations(member, declarations)
		}

	case *ErrorType:
		// The error type contributes no conformances.

	default:
		panic(errors.NewUnexpectedError(
			"expected protocol or protocol composition type, got %s type: %s",
			t.Kind(),
			t,
		))
	}
}

// protocolIndex assigns a Context-local index to each protocol
// declaration, backing the inheritance-closure bitsets.
func (ctx *Context) protocolIndex(protocol decl.ProtocolDeclaration) uint {
	id := protocol.DeclarationID()
	if index, ok := ctx.protocolIndices[id]; ok {
		return index
	}
	index := uint(len(ctx.protocolIndices))
	ctx.protocolIndices[id] = index
	return index
}

// protocolInheritanceClosure returns the set of protocols the given
// protocol transitively inherits from, as a bitset over the Context's
// protocol indices. The protocol itself is not a member. Memoized.
//
// Protocol inheritance is acyclic; the declaration layer rejects
// cyclic inheritance before types are built.
func (ctx *Context) protocolInheritanceClosure(
	protocol decl.ProtocolDeclaration,
) *bitset.BitSet {
	id := protocol.DeclarationID()
	if closure, ok := ctx.protocolClosures[id]; ok {
		return closure
	}

	closure := bitset.New(uint(len(ctx.protocolIndices) + 1))
	for _, inherited := range protocol.InheritedProtocols() {
		closure.Set(ctx.protocolIndex(inherited))
		closure.InPlaceUnion(ctx.protocolInheritanceClosure(inherited))
	}

	ctx.protocolClosures[id] = closure
	return closure
}

// minimizeConformances removes duplicate protocols and protocols
// implied by the inheritance of another member, and sorts the result
// into the canonical order: by module name, then declaration name,
// then declaration ID.
func (ctx *Context) minimizeConformances(
	protocols []decl.ProtocolDeclaration,
) []decl.ProtocolDeclaration {

	unique := make([]decl.ProtocolDeclaration, 0, len(protocols))
	seen := map[decl.ID]struct{}{}
	for _, protocol := range protocols {
		id := protocol.DeclarationID()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, protocol)
	}

	minimized := make([]decl.ProtocolDeclaration, 0, len(unique))
	for _, candidate := range unique {
		candidateIndex := ctx.protocolIndex(candidate)
		implied := false
		for _, other := range unique {
			if other == candidate {
				continue
			}
			if ctx.protocolInheritanceClosure(other).Test(candidateIndex) {
				implied = true
				break
			}
		}
		if !implied {
			minimized = append(minimized, candidate)
		}
	}

	sort.Slice(minimized, func(i, j int) bool {
		a := minimized[i]
		b := minimized[j]
		if a.ModuleName() != b.ModuleName() {
			return a.ModuleName() < b.ModuleName()
		}
		if a.Name() != b.Name() {
			return a.Name() < b.Name()
		}
		return a.DeclarationID() < b.DeclarationID()
	})

	return minimized
}
