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

	"go.uber.org/goleak"

	"github.com/vela-lang/vela/common"
	"github.com/vela-lang/vela/decl"
	"github.com/vela-lang/vela/decl/decltest"
	"github.com/vela-lang/vela/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// testEnv bundles a declaration registry, a type context configured
// with library declarations, and a handful of common declarations.
type testEnv struct {
	registry *decltest.Registry
	ctx      *types.Context

	optionalDecl          *decltest.Nominal
	uncheckedOptionalDecl *decltest.Nominal
	sliceDecl             *decltest.Nominal

	intDecl    *decltest.Nominal
	boolDecl   *decltest.Nominal
	stringDecl *decltest.Nominal
}

type testResolver struct {
	memberTypes func(base types.Type, name string) (types.Type, bool)
	nestedTypes func(archetype *types.ArchetypeType) []types.NestedTypeEntry
}

var _ types.Resolver = &testResolver{}

func (r *testResolver) ResolveMemberType(base types.Type, name string) (types.Type, bool) {
	if r.memberTypes == nil {
		return nil, false
	}
	return r.memberTypes(base, name)
}

func (r *testResolver) ResolveArchetypeNestedTypes(
	archetype *types.ArchetypeType,
) []types.NestedTypeEntry {
	if r.nestedTypes == nil {
		return nil
	}
	return r.nestedTypes(archetype)
}

func newTestEnv() *testEnv {
	return newTestEnvWithResolver(nil)
}

func newTestEnvWithResolver(resolver types.Resolver) *testEnv {
	registry := decltest.NewRegistry()

	optionalDecl := registry.NewNominal(
		common.DeclarationKindEnum, "Vela", "Optional", true,
	)
	uncheckedOptionalDecl := registry.NewNominal(
		common.DeclarationKindEnum, "Vela", "UncheckedOptional", true,
	)
	sliceDecl := registry.NewNominal(
		common.DeclarationKindStructure, "Vela", "Slice", true,
	)

	ctx := types.NewContext(types.Config{
		Resolver: resolver,
		LibraryDeclarations: types.LibraryDeclarations{
			Optional:          optionalDecl,
			UncheckedOptional: uncheckedOptionalDecl,
			ArraySlice:        sliceDecl,
		},
	})

	return &testEnv{
		registry:              registry,
		ctx:                   ctx,
		optionalDecl:          optionalDecl,
		uncheckedOptionalDecl: uncheckedOptionalDecl,
		sliceDecl:             sliceDecl,
		intDecl: registry.NewNominal(
			common.DeclarationKindStructure, "Vela", "Int", false,
		),
		boolDecl: registry.NewNominal(
			common.DeclarationKindStructure, "Vela", "Bool", false,
		),
		stringDecl: registry.NewNominal(
			common.DeclarationKindStructure, "Vela", "String", false,
		),
	}
}

func (env *testEnv) intType() *types.NominalType {
	return env.ctx.NewNominalType(env.intDecl, nil)
}

func (env *testEnv) boolType() *types.NominalType {
	return env.ctx.NewNominalType(env.boolDecl, nil)
}

func (env *testEnv) stringType() *types.NominalType {
	return env.ctx.NewNominalType(env.stringDecl, nil)
}

func (env *testEnv) newProtocol(
	name string,
	inherited ...decl.ProtocolDeclaration,
) *decltest.Protocol {
	return env.registry.NewProtocol("Vela", name, inherited...)
}
