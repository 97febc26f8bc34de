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

// functionTypeBase is the common payload of the surface function shapes:
// a single input type, a single output type, and the packed ExtInfo bits.
// The input is often a tuple or paren type, but may be any type.
type functionTypeBase struct {
	typeBase
	input   Type
	output  Type
	extInfo ExtInfo
}

func (t *functionTypeBase) Input() Type {
	return t.input
}

func (t *functionTypeBase) Result() Type {
	return t.output
}

func (t *functionTypeBase) ExtInfo() ExtInfo {
	return t.extInfo
}

func (t *functionTypeBase) CallingConvention() CallingConvention {
	return t.extInfo.CallingConvention()
}

func (t *functionTypeBase) Representation() FunctionRepresentation {
	return t.extInfo.Representation()
}

func (t *functionTypeBase) IsNoReturn() bool {
	return t.extInfo.IsNoReturn()
}

func (t *functionTypeBase) IsAutoClosure() bool {
	return t.extInfo.IsAutoClosure()
}

// AnyFunctionType is implemented by the three surface function shapes:
// FunctionType, PolymorphicFunctionType, and GenericFunctionType.
type AnyFunctionType interface {
	Type
	Input() Type
	Result() Type
	ExtInfo() ExtInfo
}

// FunctionType is a monomorphic function type.
type FunctionType struct {
	functionTypeBase
}

var _ AnyFunctionType = &FunctionType{}

// PolymorphicFunctionType is a generic function type whose parameters
// are represented as archetypes, ordered by primary index.
type PolymorphicFunctionType struct {
	functionTypeBase
	parameters []*ArchetypeType
}

var _ AnyFunctionType = &PolymorphicFunctionType{}

func (t *PolymorphicFunctionType) Parameters() []*ArchetypeType {
	return t.parameters
}

// GenericFunctionType is a generic function type whose parameters
// are represented abstractly, through a generic signature.
type GenericFunctionType struct {
	functionTypeBase
	signature *GenericSignature
}

var _ AnyFunctionType = &GenericFunctionType{}

func (t *GenericFunctionType) Signature() *GenericSignature {
	return t.signature
}
