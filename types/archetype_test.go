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

package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vela-lang/vela/decl"
	"github.com/vela-lang/vela/types"
)

func TestArchetype_identity(t *testing.T) {

	t.Parallel()

	env := newTestEnv()
	ctx := env.ctx

	t.Run("primary", func(t *testing.T) {
		archetype := ctx.NewPrimaryArchetype(2, "T", nil, nil)

		assert.True(t, archetype.IsPrimary())
		assert.False(t, archetype.IsOpened())
		assert.Equal(t, uint32(2), archetype.PrimaryIndex())
		assert.Equal(t, "T", archetype.Name())
		assert.Equal(t, "T", archetype.FullName())
		assert.True(t, archetype.IsCanonical())

		require.Panics(t, func() {
			archetype.OpenedExistentialID()
		})
	})

	t.Run("archetypes are never uniqued", func(t *testing.T) {
		first := ctx.NewPrimaryArchetype(0, "T", nil, nil)
		second := ctx.NewPrimaryArchetype(0, "T", nil, nil)
		require.NotSame(t, first, second)
	})

	t.Run("nested", func(t *testing.T) {
		parent := ctx.NewPrimaryArchetype(0, "T", nil, nil)
		nested := ctx.NewNestedArchetype(parent, nil, "Element", nil, nil)

		assert.False(t, nested.IsPrimary())
		assert.Same(t, parent, nested.Parent())
		assert.Equal(t, "T.Element", nested.FullName())

		require.Panics(t, func() {
			nested.PrimaryIndex()
		})
	})

	t.Run("nested requires a parent", func(t *testing.T) {
		require.Panics(t, func() {
			ctx.NewNestedArchetype(nil, nil, "Element", nil, nil)
		})
	})

	t.Run("self", func(t *testing.T) {
		protocol := env.newProtocol("Sequence")
		self := ctx.NewSelfArchetype(protocol, nil)

		assert.Equal(t, "Self", self.Name())
		assert.Same(t, protocol, self.SelfProtocol())
		assert.True(t, self.IsSelfDerived())

		nested := ctx.NewNestedArchetype(self, nil, "Element", nil, nil)
		assert.True(t, nested.IsSelfDerived())

		plain := ctx.NewPrimaryArchetype(0, "T", nil, nil)
		assert.False(t, plain.IsSelfDerived())
	})
}

func TestArchetype_opened(t *testing.T) {

	t.Parallel()

	env := newTestEnv()
	ctx := env.ctx

	base := env.newProtocol("Base")
	derived := env.newProtocol("Derived", base)

	existential := ctx.NewProtocolCompositionType([]types.Type{
		ctx.NewProtocolType(derived),
		ctx.NewProtocolType(base),
	})

	t.Run("conformances come from the existential", func(t *testing.T) {
		opened := ctx.NewOpenedArchetype(existential, nil)

		assert.True(t, opened.IsOpened())
		assert.False(t, opened.IsPrimary())
		assert.Same(t, types.Type(existential), opened.OpenedExistentialType())

		conformsTo := opened.ConformsTo()
		require.Len(t, conformsTo, 1)
		assert.Same(t, derived, conformsTo[0])

		require.Panics(t, func() {
			opened.PrimaryIndex()
		})
	})

	t.Run("fresh IDs", func(t *testing.T) {
		first := ctx.NewOpenedArchetype(existential, nil)
		second := ctx.NewOpenedArchetype(existential, nil)
		assert.NotEqual(t, first.OpenedExistentialID(), second.OpenedExistentialID())
	})

	t.Run("known ID is kept", func(t *testing.T) {
		id := uint64(1000)
		opened := ctx.NewOpenedArchetype(existential, &id)
		assert.Equal(t, id, opened.OpenedExistentialID())

		// Later fresh IDs do not collide with it.
		fresh := ctx.NewOpenedArchetype(existential, nil)
		assert.Greater(t, fresh.OpenedExistentialID(), id)
	})

	t.Run("error member makes the opened archetype unconstrained", func(t *testing.T) {
		erroneous := ctx.NewProtocolCompositionType([]types.Type{
			ctx.NewProtocolType(base),
			ctx.ErrorType(),
		})

		var opened *types.ArchetypeType
		require.NotPanics(t, func() {
			opened = ctx.NewOpenedArchetype(erroneous, nil)
		})
		assert.True(t, opened.IsOpened())
		assert.Empty(t, opened.ConformsTo())
	})
}

func TestArchetype_conformances(t *testing.T) {

	t.Parallel()

	env := newTestEnv()
	ctx := env.ctx

	base := env.newProtocol("Base")
	derived := env.newProtocol("Derived", base)
	other := env.newProtocol("Aaa")

	archetype := ctx.NewPrimaryArchetype(
		0,
		"T",
		[]decl.ProtocolDeclaration{derived, base, derived, other},
		nil,
	)

	conformsTo := archetype.ConformsTo()
	require.Len(t, conformsTo, 2)
	assert.Same(t, other, conformsTo[0])
	assert.Same(t, derived, conformsTo[1])

	assert.True(t, archetype.HasRequirements())
	assert.False(t, ctx.NewPrimaryArchetype(0, "U", nil, nil).HasRequirements())
}

func TestArchetype_nestedTypes(t *testing.T) {

	t.Parallel()

	t.Run("set once, sorted, frozen", func(t *testing.T) {
		env := newTestEnv()
		ctx := env.ctx

		archetype := ctx.NewPrimaryArchetype(0, "T", nil, nil)
		archetype.SetNestedTypes([]types.NestedTypeEntry{
			{Name: "Index", Type: env.intType()},
			{Name: "Element", Type: env.boolType()},
		})

		nested := archetype.NestedTypes()
		require.Len(t, nested, 2)
		assert.Equal(t, "Element", nested[0].Name)
		assert.Equal(t, "Index", nested[1].Name)

		element, ok := archetype.GetNestedType("Element")
		require.True(t, ok)
		assert.Same(t, types.Type(env.boolType()), element)

		_, ok = archetype.GetNestedType("Missing")
		assert.False(t, ok)
		assert.True(t, archetype.HasNestedType("Index"))

		require.Panics(t, func() {
			archetype.SetNestedTypes(nil)
		})
	})

	t.Run("lazily resolved once", func(t *testing.T) {
		var env *testEnv
		resolutions := 0
		resolver := &testResolver{
			nestedTypes: func(archetype *types.ArchetypeType) []types.NestedTypeEntry {
				resolutions++
				return []types.NestedTypeEntry{
					{Name: "Element", Type: env.intType()},
				}
			},
		}
		env = newTestEnvWithResolver(resolver)

		archetype := env.ctx.NewPrimaryArchetype(0, "T", nil, nil)

		require.True(t, archetype.HasNestedType("Element"))
		require.True(t, archetype.HasNestedType("Element"))
		assert.Equal(t, 1, resolutions)
	})

	t.Run("no resolver", func(t *testing.T) {
		env := newTestEnv()
		archetype := env.ctx.NewPrimaryArchetype(0, "T", nil, nil)

		require.Panics(t, func() {
			archetype.NestedTypes()
		})
	})
}

func TestArchetype_asDependentType(t *testing.T) {

	t.Parallel()

	env := newTestEnv()
	ctx := env.ctx

	parent := ctx.NewPrimaryArchetype(0, "T", nil, nil)
	nested := ctx.NewNestedArchetype(parent, nil, "Element", nil, nil)

	parameter := ctx.NewGenericParamType(0, 0)
	mapping := map[*types.ArchetypeType]types.Type{
		parent: parameter,
	}

	t.Run("primary maps directly", func(t *testing.T) {
		require.Same(t, types.Type(parameter), parent.AsDependentType(mapping))
	})

	t.Run("nested becomes a dependent member", func(t *testing.T) {
		dependent := nested.AsDependentType(mapping)

		member, ok := dependent.(*types.DependentMemberType)
		require.True(t, ok)
		assert.Equal(t, "Element", member.Name())
		require.Same(t, types.Type(parameter), member.BaseType())
	})

	t.Run("unmapped primary stays an archetype", func(t *testing.T) {
		other := ctx.NewPrimaryArchetype(1, "U", nil, nil)
		require.Same(t, types.Type(other), other.AsDependentType(mapping))
	})
}
