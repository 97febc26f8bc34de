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
	"github.com/vela-lang/vela/errors"
)

// LoweredParameter is a parameter of a lowered function:
// a canonical type and the rules for passing it.
// The descriptor is one small tagged integer plus a type handle;
// IsIndirect and IsConsumed are derived from the convention.
type LoweredParameter struct {
	typ        Type
	convention ParameterConvention
}

// NewLoweredParameter pairs a parameter convention with a type.
// The type is canonicalized. A type that fails the lowering legality
// predicate is an invariant violation.
func NewLoweredParameter(convention ParameterConvention, t Type) LoweredParameter {
	t = t.CanonicalType()
	if !IsLegalLoweredType(t) {
		panic(errors.NewUnexpectedError(
			"lowered parameter has illegal type: %s",
			t,
		))
	}
	return LoweredParameter{
		typ:        t,
		convention: convention,
	}
}

func (p LoweredParameter) Type() Type {
	return p.typ
}

func (p LoweredParameter) Convention() ParameterConvention {
	return p.convention
}

func (p LoweredParameter) IsIndirect() bool {
	return p.convention.IsIndirect()
}

func (p LoweredParameter) IsIndirectInOut() bool {
	return p.convention == ParameterConventionIndirectInOut
}

// IsIndirectResult returns true if the parameter is the implicit
// address parameter of an indirect result.
func (p LoweredParameter) IsIndirectResult() bool {
	return p.convention == ParameterConventionIndirectOut
}

// IsConsumed returns true if the parameter is consumed by the callee,
// either indirectly or directly.
func (p LoweredParameter) IsConsumed() bool {
	return p.convention.IsConsumed()
}

// LoweredResult is the direct result of a lowered function:
// a canonical type and the rules for returning it.
//
// Indirect results require an implicit address parameter and are
// therefore represented as a LoweredParameter; a function with an
// indirect result has an empty tuple as its LoweredResult type.
type LoweredResult struct {
	typ        Type
	convention ResultConvention
}

// NewLoweredResult pairs a result convention with a type.
// The type is canonicalized. A type that fails the lowering legality
// predicate is an invariant violation.
func NewLoweredResult(convention ResultConvention, t Type) LoweredResult {
	t = t.CanonicalType()
	if !IsLegalLoweredType(t) {
		panic(errors.NewUnexpectedError(
			"lowered result has illegal type: %s",
			t,
		))
	}
	return LoweredResult{
		typ:        t,
		convention: convention,
	}
}

func (r LoweredResult) Type() Type {
	return r.typ
}

func (r LoweredResult) Convention() ResultConvention {
	return r.convention
}

// LoweredFunctionType is the calling-convention-annotated function type
// used at the code-generation boundary. It is the only function shape
// permitted past that boundary, and is always canonical.
type LoweredFunctionType struct {
	typeBase
	signature        *GenericSignature
	extInfo          ExtInfo
	calleeConvention ParameterConvention
	parameters       []LoweredParameter
	result           LoweredResult
}

var _ Type = &LoweredFunctionType{}

// Signature returns the generic signature, or nil if the function
// is not polymorphic.
func (t *LoweredFunctionType) Signature() *GenericSignature {
	return t.signature
}

func (t *LoweredFunctionType) IsPolymorphic() bool {
	return t.signature != nil
}

func (t *LoweredFunctionType) ExtInfo() ExtInfo {
	return t.extInfo
}

// CalleeConvention returns the convention under which the callee
// value itself is passed.
func (t *LoweredFunctionType) CalleeConvention() ParameterConvention {
	return t.calleeConvention
}

func (t *LoweredFunctionType) IsCalleeConsumed() bool {
	return t.calleeConvention == ParameterConventionDirectOwned
}

func (t *LoweredFunctionType) Parameters() []LoweredParameter {
	return t.parameters
}

func (t *LoweredFunctionType) Result() LoweredResult {
	return t.result
}

// HasIndirectResult returns true if the first parameter is the
// implicit address parameter of an indirect result.
func (t *LoweredFunctionType) HasIndirectResult() bool {
	return len(t.parameters) > 0 &&
		t.parameters[0].IsIndirectResult()
}

// IndirectResult returns the implicit address parameter of the
// indirect result. Calling it on a function without an indirect
// result is an invariant violation.
func (t *LoweredFunctionType) IndirectResult() LoweredParameter {
	if !t.HasIndirectResult() {
		panic(errors.NewUnexpectedError(
			"function type has no indirect result: %s",
			t,
		))
	}
	return t.parameters[0]
}

// ParametersWithoutIndirectResult returns the parameters, ignoring
// any indirect-result parameter.
func (t *LoweredFunctionType) ParametersWithoutIndirectResult() []LoweredParameter {
	if t.HasIndirectResult() {
		return t.parameters[1:]
	}
	return t.parameters
}
