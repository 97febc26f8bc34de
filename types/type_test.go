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

	"github.com/vela-lang/vela/types"
)

func TestStripSugar(t *testing.T) {

	t.Parallel()

	env := newTestEnv()
	ctx := env.ctx
	intType := env.intType()

	alias := ctx.NewNameAliasType(
		env.registry.NewTypeAlias("Vela", "MyInt"),
		ctx.NewParenType(intType),
	)

	require.Same(t, types.Type(intType), types.StripSugar(alias))
	require.Same(t, types.Type(intType), types.StripSugar(intType))
}

func TestShapeChecks(t *testing.T) {

	t.Parallel()

	env := newTestEnv()
	ctx := env.ctx
	intType := env.intType()

	paren := ctx.NewParenType(intType)

	t.Run("As", func(t *testing.T) {
		nominal, ok := types.As[*types.NominalType](paren)
		require.True(t, ok)
		assert.Same(t, intType, nominal)

		_, ok = types.As[*types.TupleType](paren)
		assert.False(t, ok)
	})

	t.Run("Is", func(t *testing.T) {
		assert.True(t, types.Is[*types.NominalType](paren))
		assert.False(t, types.Is[*types.FunctionType](paren))
	})

	t.Run("Expect", func(t *testing.T) {
		require.Same(t, intType, types.Expect[*types.NominalType](paren))

		require.Panics(t, func() {
			types.Expect[*types.FunctionType](paren)
		})
	})
}

func TestBuiltinIntegerWidth(t *testing.T) {

	t.Parallel()

	t.Run("fixed", func(t *testing.T) {
		width := types.FixedWidth(64)

		assert.True(t, width.IsFixedWidth())
		assert.False(t, width.IsPointerWidth())
		assert.Equal(t, uint32(64), width.GetFixedWidth())
		assert.Equal(t, uint32(64), width.LeastWidth())
		assert.Equal(t, uint32(64), width.GreatestWidth())
	})

	t.Run("pointer", func(t *testing.T) {
		width := types.PointerWidth()

		assert.False(t, width.IsFixedWidth())
		assert.True(t, width.IsPointerWidth())
		assert.Equal(t, uint32(32), width.LeastWidth())
		assert.Equal(t, uint32(64), width.GreatestWidth())

		require.Panics(t, func() {
			width.GetFixedWidth()
		})
	})
}

func TestTupleType_fields(t *testing.T) {

	t.Parallel()

	env := newTestEnv()
	ctx := env.ctx
	intType := env.intType()
	boolType := env.boolType()

	tuple := ctx.NewTupleType([]types.TupleTypeField{
		{Type: intType, Label: "a"},
		{Type: boolType},
	}).(*types.TupleType)

	assert.Equal(t, 2, tuple.NumFields())
	assert.Equal(t, "a", tuple.Field(0).Label)
	assert.Equal(t, 0, tuple.FieldIndex("a"))
	assert.Equal(t, -1, tuple.FieldIndex("missing"))
	assert.Equal(t, -1, tuple.FieldIndex(""))
}

func TestMetatype_representation(t *testing.T) {

	t.Parallel()

	env := newTestEnv()
	ctx := env.ctx

	unspecified := ctx.NewMetatypeType(
		env.intType(),
		types.MetatypeRepresentationUnspecified,
	)
	assert.False(t, unspecified.HasRepresentation())
	require.Panics(t, func() {
		unspecified.Representation()
	})

	thick := ctx.NewMetatypeType(
		env.intType(),
		types.MetatypeRepresentationThick,
	)
	require.True(t, thick.HasRepresentation())
	assert.Equal(t, types.MetatypeRepresentationThick, thick.Representation())

	require.NotSame(t, unspecified, thick)
}
