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
	"fmt"

	"github.com/vela-lang/vela/decl"
)

// GenericParamType is a reference to a generic parameter, either
// through its declaration or abstractly as a (depth, index) pair.
// The declaration-free form is the canonical one.
type GenericParamType struct {
	typeBase
	declaration decl.GenericParameterDeclaration
	depth       uint32
	index       uint32
}

var _ Type = &GenericParamType{}

// Declaration returns the referenced generic parameter declaration,
// or nil for the abstract (depth, index) form.
func (t *GenericParamType) Declaration() decl.GenericParameterDeclaration {
	return t.declaration
}

func (t *GenericParamType) Depth() uint32 {
	return t.depth
}

func (t *GenericParamType) Index() uint32 {
	return t.index
}

// Name returns the declared name of the parameter, or a positional
// placeholder of the form `τ_depth_index` for the abstract form.
func (t *GenericParamType) Name() string {
	if t.declaration != nil {
		return t.declaration.Name()
	}
	return fmt.Sprintf("τ_%d_%d", t.depth, t.index)
}

// AssociatedTypeType is a reference to an associated type requirement
// of a protocol, outside of any particular conformance.
type AssociatedTypeType struct {
	typeBase
	declaration decl.AssociatedTypeDeclaration
}

var _ Type = &AssociatedTypeType{}

func (t *AssociatedTypeType) Declaration() decl.AssociatedTypeDeclaration {
	return t.declaration
}

func (t *AssociatedTypeType) Name() string {
	return t.declaration.Name()
}

// DependentMemberType is a member type of a dependent base type,
// e.g. `T.Element` where `T` is a generic parameter. It resolves to
// a concrete type only after its base is substituted.
type DependentMemberType struct {
	typeBase
	baseType    Type
	name        string
	declaration decl.AssociatedTypeDeclaration
}

var _ Type = &DependentMemberType{}

func (t *DependentMemberType) BaseType() Type {
	return t.baseType
}

func (t *DependentMemberType) Name() string {
	return t.name
}

// Declaration returns the associated type declaration the member
// resolves through, if known.
func (t *DependentMemberType) Declaration() decl.AssociatedTypeDeclaration {
	return t.declaration
}
