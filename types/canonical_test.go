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
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vela-lang/vela/types"
)

func TestCanonicalType_sugar(t *testing.T) {

	t.Parallel()

	env := newTestEnv()
	ctx := env.ctx
	intType := env.intType()

	t.Run("optional desugars to the library type", func(t *testing.T) {
		optional := ctx.NewOptionalType(intType)
		assert.False(t, optional.IsCanonical())

		canonical := optional.CanonicalType()
		bound := types.Expect[*types.BoundGenericType](canonical)
		assert.Same(t, env.optionalDecl, bound.Declaration())
		require.Len(t, bound.Arguments(), 1)
		assert.Same(t, types.Type(intType), bound.Arguments()[0])

		direct := ctx.NewBoundGenericType(
			env.optionalDecl,
			nil,
			[]types.Type{intType},
		)
		require.Same(t, types.Type(direct), canonical)
	})

	t.Run("slice desugars to the library type", func(t *testing.T) {
		slice := ctx.NewArraySliceType(intType)
		bound := types.Expect[*types.BoundGenericType](slice.CanonicalType())
		assert.Same(t, env.sliceDecl, bound.Declaration())
	})

	t.Run("paren is transparent", func(t *testing.T) {
		paren := ctx.NewParenType(intType)
		require.Same(t, types.Type(intType), paren.CanonicalType())
	})

	t.Run("name alias is transparent", func(t *testing.T) {
		alias := ctx.NewNameAliasType(
			env.registry.NewTypeAlias("Vela", "MyInt"),
			intType,
		)
		require.Same(t, types.Type(intType), alias.CanonicalType())
	})

	t.Run("nested sugar", func(t *testing.T) {
		// (Int?)? as written
		inner := ctx.NewOptionalType(intType)
		outer := ctx.NewOptionalType(ctx.NewParenType(inner))

		canonical := types.Expect[*types.BoundGenericType](outer.CanonicalType())
		argument := types.Expect[*types.BoundGenericType](canonical.Arguments()[0])
		assert.Same(t, env.optionalDecl, argument.Declaration())
	})

	t.Run("shape checks strip sugar", func(t *testing.T) {
		optional := ctx.NewOptionalType(intType)

		assert.True(t, types.Is[*types.BoundGenericType](optional))
		bound, ok := types.As[*types.BoundGenericType](optional)
		require.True(t, ok)
		assert.Same(t, env.optionalDecl, bound.Declaration())
	})
}

func TestCanonicalType_genericParam(t *testing.T) {

	t.Parallel()

	env := newTestEnv()
	ctx := env.ctx

	declared := ctx.NewGenericParamTypeForDeclaration(
		env.registry.NewGenericParameter("Vela", "T", 1, 2),
	)
	assert.False(t, declared.IsCanonical())
	assert.Equal(t, "T", declared.Name())

	canonical := declared.CanonicalType()
	positional := types.Expect[*types.GenericParamType](canonical)
	assert.True(t, positional.IsCanonical())
	assert.Nil(t, positional.Declaration())
	assert.Equal(t, uint32(1), positional.Depth())
	assert.Equal(t, uint32(2), positional.Index())
	assert.Equal(t, "τ_1_2", positional.Name())

	require.Same(t, types.Type(ctx.NewGenericParamType(1, 2)), canonical)
}

func TestCanonicalType_composition(t *testing.T) {

	t.Parallel()

	env := newTestEnv()
	ctx := env.ctx

	base := env.newProtocol("Base")
	derived := env.newProtocol("Derived", base)
	other := env.newProtocol("Aaa")

	t.Run("duplicates and implied members are removed", func(t *testing.T) {
		composition := ctx.NewProtocolCompositionType([]types.Type{
			ctx.NewProtocolType(derived),
			ctx.NewProtocolType(base),
			ctx.NewProtocolType(derived),
			ctx.NewProtocolType(other),
		})
		assert.False(t, composition.IsCanonical())

		canonical := types.Expect[*types.ProtocolCompositionType](
			composition.CanonicalType(),
		)
		declarations := canonical.ProtocolDeclarations()
		require.Len(t, declarations, 2)

		// Sorted by module name, then declaration name.
		assert.Same(t, other, declarations[0])
		assert.Same(t, derived, declarations[1])
	})

	t.Run("single member collapses to the protocol", func(t *testing.T) {
		composition := ctx.NewProtocolCompositionType([]types.Type{
			ctx.NewProtocolType(derived),
			ctx.NewProtocolType(base),
		})

		canonical := composition.CanonicalType()
		nominal := types.Expect[*types.NominalType](canonical)
		assert.Same(t, derived, nominal.Declaration())
	})

	t.Run("nested compositions flatten", func(t *testing.T) {
		inner := ctx.NewProtocolCompositionType([]types.Type{
			ctx.NewProtocolType(base),
			ctx.NewProtocolType(other),
		})
		outer := ctx.NewProtocolCompositionType([]types.Type{
			inner,
			ctx.NewProtocolType(derived),
		})

		canonical := types.Expect[*types.ProtocolCompositionType](
			outer.CanonicalType(),
		)
		require.Len(t, canonical.Members(), 2)
	})

	t.Run("empty composition is canonical", func(t *testing.T) {
		empty := ctx.NewProtocolCompositionType(nil)
		assert.True(t, empty.IsCanonical())
		require.Same(t, types.Type(empty), empty.CanonicalType())
	})

	t.Run("error member poisons the composition", func(t *testing.T) {
		composition := ctx.NewProtocolCompositionType([]types.Type{
			ctx.NewProtocolType(base),
			ctx.ErrorType(),
		})
		assert.False(t, composition.IsCanonical())

		var canonical types.Type
		require.NotPanics(t, func() {
			canonical = composition.CanonicalType()
		})
		require.Same(t, types.Type(ctx.ErrorType()), canonical)
	})

	t.Run("error member of a nested composition poisons the outer", func(t *testing.T) {
		inner := ctx.NewProtocolCompositionType([]types.Type{
			ctx.NewProtocolType(other),
			ctx.ErrorType(),
		})
		outer := ctx.NewProtocolCompositionType([]types.Type{
			ctx.NewProtocolType(derived),
			inner,
		})

		require.Same(t, types.Type(ctx.ErrorType()), outer.CanonicalType())
	})
}

func TestCanonicalType_memoization(t *testing.T) {

	t.Parallel()

	env := newTestEnv()
	ctx := env.ctx

	optional := ctx.NewOptionalType(env.intType())

	first := optional.CanonicalType()
	second := optional.CanonicalType()
	require.Same(t, first, second)
}

// randomType builds an arbitrary, possibly deeply sugared type.
func randomType(env *testEnv, rng *rand.Rand, depth int) types.Type {
	ctx := env.ctx

	if depth <= 0 {
		switch rng.Intn(4) {
		case 0:
			return env.intType()
		case 1:
			return ctx.NewBuiltinIntegerType(types.FixedWidth(64))
		case 2:
			return ctx.NewGenericParamType(0, uint32(rng.Intn(3)))
		default:
			return env.boolType()
		}
	}

	switch rng.Intn(9) {
	case 0:
		return ctx.NewOptionalType(randomType(env, rng, depth-1))
	case 1:
		return ctx.NewParenType(randomType(env, rng, depth-1))
	case 2:
		return ctx.NewArraySliceType(randomType(env, rng, depth-1))
	case 3:
		count := 2 + rng.Intn(3)
		labels := []string{"a", "b", "c", "d", "e"}
		fields := make([]types.TupleTypeField, count)
		for i := range fields {
			fields[i] = types.TupleTypeField{
				Type:  randomType(env, rng, depth-1),
				Label: labels[i],
			}
		}
		return ctx.NewTupleType(fields)
	case 4:
		return ctx.NewFunctionType(
			ctx.NewParenType(randomType(env, rng, depth-1)),
			randomType(env, rng, depth-1),
			types.DefaultExtInfo(),
		)
	case 5:
		return ctx.NewMetatypeType(
			randomType(env, rng, depth-1),
			types.MetatypeRepresentationUnspecified,
		)
	case 6:
		return ctx.NewBoundGenericType(
			env.sliceDecl,
			nil,
			[]types.Type{randomType(env, rng, depth-1)},
		)
	case 7:
		return ctx.NewArrayType(randomType(env, rng, depth-1), 1+uint64(rng.Intn(8)))
	default:
		return ctx.NewInOutType(randomType(env, rng, depth-1))
	}
}

func TestCanonicalType_properties(t *testing.T) {

	t.Parallel()

	env := newTestEnv()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property(
		"canonicalization is idempotent and uniquing",
		prop.ForAll(
			func(seed int64) bool {
				rng := rand.New(rand.NewSource(seed))
				typ := randomType(env, rng, 1+rng.Intn(4))

				canonical := typ.CanonicalType()
				if !canonical.IsCanonical() {
					return false
				}
				if canonical.CanonicalType() != canonical {
					return false
				}

				// A second build from the same seed reaches the same handle.
				rng = rand.New(rand.NewSource(seed))
				again := randomType(env, rng, 1+rng.Intn(4))
				return again.CanonicalType() == canonical
			},
			gen.Int64(),
		),
	)

	properties.Property(
		"canonicalization preserves recursive properties",
		prop.ForAll(
			func(seed int64) bool {
				rng := rand.New(rand.NewSource(seed))
				typ := randomType(env, rng, 1+rng.Intn(4))

				canonical := typ.CanonicalType()
				return canonical.RecursiveProperties() == typ.RecursiveProperties()
			},
			gen.Int64(),
		),
	)

	properties.TestingRun(t)
}
