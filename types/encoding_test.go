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

// roundtrip encodes the type and decodes it again in the same
// environment, expecting the canonical handle back.
func roundtrip(t *testing.T, env *testEnv, typ types.Type) {
	t.Helper()

	encoded, err := types.EncodeType(typ)
	require.NoError(t, err)

	decoded, err := env.ctx.DecodeType(encoded, env.registry.Lookup)
	require.NoError(t, err)

	require.Same(t, typ.CanonicalType(), decoded.CanonicalType())
}

func TestTypeEncoding_roundtrip(t *testing.T) {

	t.Parallel()

	env := newTestEnv()
	ctx := env.ctx
	intType := env.intType()
	boolType := env.boolType()

	t.Run("builtins", func(t *testing.T) {
		roundtrip(t, env, ctx.NewBuiltinIntegerType(types.FixedWidth(64)))
		roundtrip(t, env, ctx.NewBuiltinWordType())
		roundtrip(t, env, ctx.NewBuiltinFloatType(types.BuiltinFloatIEEE80))
		roundtrip(t, env, ctx.BuiltinRawPointerType())
		roundtrip(t, env, ctx.NewBuiltinVectorType(
			ctx.NewBuiltinIntegerType(types.FixedWidth(32)),
			4,
		))
	})

	t.Run("tuples", func(t *testing.T) {
		roundtrip(t, env, ctx.EmptyTupleType())
		roundtrip(t, env, ctx.NewTupleType([]types.TupleTypeField{
			{Type: intType, Label: "a"},
			{Type: boolType, Vararg: true},
			{Type: intType, Label: "c", Default: types.DefaultArgumentNormal},
		}))
	})

	t.Run("nominals", func(t *testing.T) {
		roundtrip(t, env, intType)
		roundtrip(t, env, ctx.NewBoundGenericType(
			env.optionalDecl,
			nil,
			[]types.Type{intType},
		))
		roundtrip(t, env, ctx.NewUnboundGenericType(env.sliceDecl, nil))

		nestedDecl := env.registry.NewNominal(
			env.intDecl.DeclarationKind(), "Vela", "Nested", false,
		)
		roundtrip(t, env, ctx.NewNominalType(nestedDecl, intType))
	})

	t.Run("functions", func(t *testing.T) {
		roundtrip(t, env, ctx.NewFunctionType(
			ctx.NewParenType(intType),
			boolType,
			types.NewExtInfo(
				types.CallingConventionC,
				types.FunctionRepresentationThin,
				false,
				false,
			),
		))
	})

	t.Run("generic function with signature", func(t *testing.T) {
		protocol := env.newProtocol("Comparable")
		parameter := ctx.NewGenericParamType(0, 0)

		signature := types.NewGenericSignature(
			[]*types.GenericParamType{parameter},
			[]types.Requirement{
				{
					Kind:       types.RequirementConformance,
					Subject:    parameter,
					Constraint: ctx.NewProtocolType(protocol),
				},
				{
					Kind:       types.RequirementSameType,
					Subject:    ctx.NewDependentMemberType(parameter, "Element"),
					Constraint: intType,
				},
			},
		)

		roundtrip(t, env, ctx.NewGenericFunctionType(
			signature,
			ctx.NewParenType(parameter),
			parameter,
			types.DefaultExtInfo(),
		))
	})

	t.Run("compositions and metatypes", func(t *testing.T) {
		first := env.newProtocol("P")
		second := env.newProtocol("Q")

		composition := ctx.NewProtocolCompositionType([]types.Type{
			ctx.NewProtocolType(first),
			ctx.NewProtocolType(second),
		})
		roundtrip(t, env, composition)

		roundtrip(t, env, ctx.NewMetatypeType(
			intType,
			types.MetatypeRepresentationThick,
		))
		roundtrip(t, env, ctx.NewExistentialMetatypeType(
			composition,
			types.MetatypeRepresentationUnspecified,
		))
	})

	t.Run("miscellaneous shapes", func(t *testing.T) {
		roundtrip(t, env, ctx.NewArrayType(intType, 8))
		roundtrip(t, env, ctx.NewLValueType(intType))
		roundtrip(t, env, ctx.NewInOutType(intType))
		roundtrip(t, env, ctx.NewReferenceStorageType(intType, types.OwnershipUnowned))
		roundtrip(t, env, ctx.NewDynamicSelfType(intType))
		roundtrip(t, env, ctx.NewGenericParamType(3, 1))
		roundtrip(t, env, ctx.NewDependentMemberType(
			ctx.NewGenericParamType(0, 0),
			"Element",
		))
		roundtrip(t, env, ctx.NewModuleType(env.registry.NewModule("Core")))
		roundtrip(t, env, ctx.ErrorType())
	})

	t.Run("sugar encodes its canonical form", func(t *testing.T) {
		optional := ctx.NewOptionalType(intType)

		encoded, err := types.EncodeType(optional)
		require.NoError(t, err)

		decoded, err := ctx.DecodeType(encoded, env.registry.Lookup)
		require.NoError(t, err)

		bound := types.Expect[*types.BoundGenericType](decoded)
		assert.Same(t, env.optionalDecl, bound.Declaration())
	})
}

func TestTypeEncoding_unsupported(t *testing.T) {

	t.Parallel()

	env := newTestEnv()
	ctx := env.ctx

	test := func(t *testing.T, typ types.Type) {
		t.Helper()

		_, err := types.EncodeType(typ)
		var unsupportedErr types.UnsupportedTypeEncodingError
		require.ErrorAs(t, err, &unsupportedErr)
	}

	t.Run("archetype", func(t *testing.T) {
		test(t, ctx.NewPrimaryArchetype(0, "T", nil, nil))
	})

	t.Run("type variable", func(t *testing.T) {
		test(t, ctx.NewTypeVariable(1, nil))
	})

	t.Run("polymorphic function", func(t *testing.T) {
		archetype := ctx.NewPrimaryArchetype(0, "T", nil, nil)
		test(t, ctx.NewPolymorphicFunctionType(
			[]*types.ArchetypeType{archetype},
			ctx.NewParenType(archetype),
			archetype,
			types.DefaultExtInfo(),
		))
	})

	t.Run("lowered function", func(t *testing.T) {
		test(t, ctx.NewLoweredFunctionType(
			nil,
			types.DefaultExtInfo(),
			types.ParameterConventionDirectGuaranteed,
			nil,
			types.NewLoweredResult(
				types.ResultConventionOwned,
				env.intType(),
			),
		))
	})
}

func TestTypeEncoding_decodeErrors(t *testing.T) {

	t.Parallel()

	env := newTestEnv()
	ctx := env.ctx

	t.Run("unknown declaration", func(t *testing.T) {
		encoded, err := types.EncodeType(env.intType())
		require.NoError(t, err)

		unknowing := func(id decl.ID) (decl.Declaration, bool) {
			return nil, false
		}

		_, err = ctx.DecodeType(encoded, unknowing)

		var unknownErr types.UnknownDeclarationError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, env.intDecl.DeclarationID(), unknownErr.ID)
	})

	t.Run("declaration of the wrong kind", func(t *testing.T) {
		encoded, err := types.EncodeType(
			ctx.NewModuleType(env.registry.NewModule("Core")),
		)
		require.NoError(t, err)

		lookup := func(id decl.ID) (decl.Declaration, bool) {
			// Resolve everything to a non-module declaration.
			return env.intDecl, true
		}

		_, err = ctx.DecodeType(encoded, lookup)

		var invalidErr types.InvalidTypeEncodingError
		require.ErrorAs(t, err, &invalidErr)
	})

	t.Run("malformed data", func(t *testing.T) {
		_, err := ctx.DecodeType([]byte{0xFF, 0x00}, env.registry.Lookup)

		var invalidErr types.InvalidTypeEncodingError
		require.ErrorAs(t, err, &invalidErr)
	})

	t.Run("decoding across contexts", func(t *testing.T) {
		// Types decode into whichever context performs the decoding,
		// against the same declarations.
		other := types.NewContext(types.Config{})

		typ := ctx.NewBoundGenericType(
			env.optionalDecl,
			nil,
			[]types.Type{env.intType()},
		)

		encoded, err := types.EncodeType(typ)
		require.NoError(t, err)

		decoded, err := other.DecodeType(encoded, env.registry.Lookup)
		require.NoError(t, err)

		require.NotSame(t, types.Type(typ), decoded)
		bound := types.Expect[*types.BoundGenericType](decoded)
		assert.Same(t, env.optionalDecl, bound.Declaration())
	})
}
