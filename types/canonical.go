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

// canonicalType computes the canonical form of the given type
// and memoizes it in the node's canonical slot.
//
// Canonicalization strips sugar, canonicalizes all children, and
// re-interns the rebuilt node, so structurally equal canonical types
// are the same handle. It also normalizes the shapes with a preferred
// form: declaration-backed generic parameters become (depth, index)
// pairs, and protocol compositions are minimized, sorted, and
// collapsed when single-membered.
func (ctx *Context) canonicalType(t Type) Type {
	b := t.base()
	if b.canonical != nil {
		return b.canonical
	}

	canonical := ctx.computeCanonicalType(t)
	b.canonical = canonical
	return canonical
}

func (ctx *Context) computeCanonicalType(t Type) Type {
	if sugared, ok := t.(SugaredType); ok {
		return sugared.DesugaredType().CanonicalType()
	}

	switch t := t.(type) {
	case *BuiltinVectorType:
		return ctx.NewBuiltinVectorType(
			t.elementType.CanonicalType(),
			t.count,
		)

	case *TupleType:
		fields := make([]TupleTypeField, len(t.fields))
		for i, field := range t.fields {
			field.Type = field.Type.CanonicalType()
			fields[i] = field
		}
		return ctx.NewTupleType(fields)

	case *NominalType:
		return ctx.NewNominalType(
			t.declaration,
			canonicalOrNil(t.parent),
		)

	case *UnboundGenericType:
		return ctx.NewUnboundGenericType(
			t.declaration,
			canonicalOrNil(t.parent),
		)

	case *BoundGenericType:
		arguments := make([]Type, len(t.arguments))
		for i, argument := range t.arguments {
			arguments[i] = argument.CanonicalType()
		}
		return ctx.NewBoundGenericType(
			t.declaration,
			canonicalOrNil(t.parent),
			arguments,
		)

	case *DynamicSelfType:
		return ctx.NewDynamicSelfType(t.selfType.CanonicalType())

	case *FunctionType:
		return ctx.NewFunctionType(
			t.input.CanonicalType(),
			t.output.CanonicalType(),
			t.extInfo,
		)

	case *PolymorphicFunctionType:
		return ctx.NewPolymorphicFunctionType(
			t.parameters,
			t.input.CanonicalType(),
			t.output.CanonicalType(),
			t.extInfo,
		)

	case *GenericFunctionType:
		return ctx.NewGenericFunctionType(
			ctx.canonicalSignature(t.signature),
			t.input.CanonicalType(),
			t.output.CanonicalType(),
			t.extInfo,
		)

	case *ProtocolCompositionType:
		return ctx.canonicalComposition(t)

	case *MetatypeType:
		return ctx.NewMetatypeType(
			t.instanceType.CanonicalType(),
			t.representation,
		)

	case *ExistentialMetatypeType:
		return ctx.NewExistentialMetatypeType(
			t.instanceType.CanonicalType(),
			t.representation,
		)

	case *ArrayType:
		return ctx.NewArrayType(t.baseType.CanonicalType(), t.size)

	case *LValueType:
		return ctx.NewLValueType(t.objectType.CanonicalType())

	case *InOutType:
		return ctx.NewInOutType(t.objectType.CanonicalType())

	case *ReferenceStorageType:
		return ctx.NewReferenceStorageType(
			t.referentType.CanonicalType(),
			t.ownership,
		)

	case *GenericParamType:
		// The declaration-backed form canonicalizes to the abstract
		// positional form.
		return ctx.NewGenericParamType(t.depth, t.index)

	case *DependentMemberType:
		return ctx.NewDependentMemberTypeWithDeclaration(
			t.baseType.CanonicalType(),
			t.name,
			t.declaration,
		)
	}

	// The remaining shapes are canonical at construction and never
	// reach the computation.
	panic(errors.NewUnexpectedError(
		"cannot canonicalize %s type: %s",
		t.Kind(),
		t,
	))
}

func canonicalOrNil(t Type) Type {
	if t == nil {
		return nil
	}
	return t.CanonicalType()
}

// canonicalComposition minimizes and sorts the composition's member
// protocols. A single remaining member collapses to the protocol's
// nominal type. The empty composition, the unconstrained existential,
// stays a composition.
//
// A member which resolved to the error type poisons the whole
// existential: the composition canonicalizes to the error type.
func (ctx *Context) canonicalComposition(t *ProtocolCompositionType) Type {
	for _, member := range t.members {
		if Is[*ErrorType](member.CanonicalType()) {
			return ctx.ErrorType()
		}
	}

	declarations := ctx.minimizeConformances(t.ProtocolDeclarations())

	if len(declarations) == 1 {
		return ctx.NewProtocolType(declarations[0])
	}

	members := make([]Type, len(declarations))
	for i, declaration := range declarations {
		members[i] = ctx.NewProtocolType(declaration)
	}
	return ctx.NewProtocolCompositionType(members)
}

// canonicalSignature canonicalizes a generic signature: parameters
// become abstract positional parameters, and requirement types are
// canonicalized. The requirement order is preserved.
func (ctx *Context) canonicalSignature(signature *GenericSignature) *GenericSignature {
	if signature == nil {
		return nil
	}

	parameters := make([]*GenericParamType, len(signature.parameters))
	for i, parameter := range signature.parameters {
		parameters[i] = Expect[*GenericParamType](parameter.CanonicalType())
	}

	requirements := make([]Requirement, len(signature.requirements))
	for i, requirement := range signature.requirements {
		requirement.Subject = requirement.Subject.CanonicalType()
		requirement.Constraint = canonicalOrNil(requirement.Constraint)
		requirements[i] = requirement
	}

	return NewGenericSignature(parameters, requirements)
}
