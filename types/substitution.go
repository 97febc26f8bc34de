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

// SubstitutionMap maps generic parameter types, associated types, and
// archetypes to their replacement types. Keys are canonicalized, so
// sugared spellings of the same parameter share one entry.
type SubstitutionMap struct {
	replacements map[Type]Type
}

func NewSubstitutionMap() *SubstitutionMap {
	return &SubstitutionMap{
		replacements: map[Type]Type{},
	}
}

func (m *SubstitutionMap) Set(original, replacement Type) {
	m.replacements[original.CanonicalType()] = replacement
}

// Lookup returns the replacement for the given type, keyed by its
// canonical form.
func (m *SubstitutionMap) Lookup(t Type) (Type, bool) {
	replacement, ok := m.replacements[t.CanonicalType()]
	return replacement, ok
}

func (m *SubstitutionMap) Len() int {
	return len(m.replacements)
}

// SubstitutionOptions control substitution behavior.
type SubstitutionOptions struct {
	// IgnoreMissing keeps a generic parameter or archetype without a
	// replacement as-is, instead of failing the substitution.
	// Partial application of a generic function's arguments uses this.
	IgnoreMissing bool
}

// Substitute replaces the dependent leaves of the given type according
// to the substitution map and rebuilds all composites above them.
// Replaced leaves are wrapped in SubstitutedType sugar, so the result
// remembers what was written; its canonical form is sugar-free.
//
// A generic or polymorphic function type whose parameters are all
// replaced is promoted to a plain monomorphic function type.
// A parameter of an enclosing signature that stays in the signature is
// never treated as missing inside that function type.
func (ctx *Context) Substitute(
	t Type,
	substitutions *SubstitutionMap,
	options SubstitutionOptions,
) (Type, error) {
	s := &substituter{
		ctx:           ctx,
		substitutions: substitutions,
		options:       options,
	}
	return s.substitute(t)
}

type substituter struct {
	ctx           *Context
	substitutions *SubstitutionMap
	options       SubstitutionOptions

	// bound holds the canonical parameter types of enclosing generic
	// function signatures which remain generic after substitution.
	// A lookup miss on a bound type is not an error.
	bound map[Type]struct{}
}

func (s *substituter) isBound(t Type) bool {
	if s.bound == nil {
		return false
	}
	_, ok := s.bound[t.CanonicalType()]
	return ok
}

func (s *substituter) withBound(bound map[Type]struct{}) *substituter {
	inner := *s
	inner.bound = bound
	return &inner
}

func (s *substituter) substitute(t Type) (Type, error) {
	if sugared, ok := t.(SugaredType); ok {
		return s.substitute(sugared.DesugaredType())
	}

	switch t := t.(type) {
	case *GenericParamType,
		*AssociatedTypeType:
		return s.substituteLeaf(t)

	case *ArchetypeType:
		return s.substituteArchetype(t)

	case *DependentMemberType:
		return s.substituteDependentMember(t)

	case *BuiltinVectorType:
		element, err := s.substitute(t.elementType)
		if err != nil {
			return nil, err
		}
		return s.ctx.NewBuiltinVectorType(element, t.count), nil

	case *TupleType:
		fields := make([]TupleTypeField, len(t.fields))
		for i, field := range t.fields {
			fieldType, err := s.substitute(field.Type)
			if err != nil {
				return nil, err
			}
			field.Type = fieldType
			fields[i] = field
		}
		return s.ctx.NewTupleType(fields), nil

	case *NominalType:
		parent, err := s.substituteOrNil(t.parent)
		if err != nil {
			return nil, err
		}
		return s.ctx.NewNominalType(t.declaration, parent), nil

	case *UnboundGenericType:
		parent, err := s.substituteOrNil(t.parent)
		if err != nil {
			return nil, err
		}
		return s.ctx.NewUnboundGenericType(t.declaration, parent), nil

	case *BoundGenericType:
		parent, err := s.substituteOrNil(t.parent)
		if err != nil {
			return nil, err
		}
		arguments := make([]Type, len(t.arguments))
		for i, argument := range t.arguments {
			arguments[i], err = s.substitute(argument)
			if err != nil {
				return nil, err
			}
		}
		return s.ctx.NewBoundGenericType(t.declaration, parent, arguments), nil

	case *DynamicSelfType:
		selfType, err := s.substitute(t.selfType)
		if err != nil {
			return nil, err
		}
		return s.ctx.NewDynamicSelfType(selfType), nil

	case *FunctionType:
		input, output, err := s.substituteFunctionBase(&t.functionTypeBase, nil)
		if err != nil {
			return nil, err
		}
		return s.ctx.NewFunctionType(input, output, t.extInfo), nil

	case *PolymorphicFunctionType:
		return s.substitutePolymorphicFunction(t)

	case *GenericFunctionType:
		return s.substituteGenericFunction(t)

	case *LoweredFunctionType:
		return s.substituteLoweredFunction(t)

	case *ProtocolCompositionType:
		members := make([]Type, len(t.members))
		for i, member := range t.members {
			substituted, err := s.substitute(member)
			if err != nil {
				return nil, err
			}
			members[i] = substituted
		}
		return s.ctx.NewProtocolCompositionType(members), nil

	case *MetatypeType:
		instance, err := s.substitute(t.instanceType)
		if err != nil {
			return nil, err
		}
		return s.ctx.NewMetatypeType(instance, t.representation), nil

	case *ExistentialMetatypeType:
		instance, err := s.substitute(t.instanceType)
		if err != nil {
			return nil, err
		}
		return s.ctx.NewExistentialMetatypeType(instance, t.representation), nil

	case *ArrayType:
		baseType, err := s.substitute(t.baseType)
		if err != nil {
			return nil, err
		}
		return s.ctx.NewArrayType(baseType, t.size), nil

	case *LValueType:
		objectType, err := s.substitute(t.objectType)
		if err != nil {
			return nil, err
		}
		return s.ctx.NewLValueType(objectType), nil

	case *InOutType:
		objectType, err := s.substitute(t.objectType)
		if err != nil {
			return nil, err
		}
		return s.ctx.NewInOutType(objectType), nil

	case *ReferenceStorageType:
		referent, err := s.substitute(t.referentType)
		if err != nil {
			return nil, err
		}
		return s.ctx.NewReferenceStorageType(referent, t.ownership), nil

	default:
		// Leaf shapes without dependent content:
		// builtins, modules, the error type, type variables.
		return t, nil
	}
}

func (s *substituter) substituteOrNil(t Type) (Type, error) {
	if t == nil {
		return nil, nil
	}
	return s.substitute(t)
}

// substituteLeaf handles the leaves a substitution map directly
// binds: generic parameter and associated types.
func (s *substituter) substituteLeaf(t Type) (Type, error) {
	if replacement, ok := s.substitutions.Lookup(t); ok {
		return s.ctx.NewSubstitutedType(t, replacement), nil
	}
	if s.isBound(t) || s.options.IgnoreMissing {
		return t, nil
	}
	return nil, MissingSubstitutionError{Type: t}
}

func (s *substituter) substituteArchetype(t *ArchetypeType) (Type, error) {
	if replacement, ok := s.substitutions.Lookup(t); ok {
		return s.ctx.NewSubstitutedType(t, replacement), nil
	}

	// A nested archetype without a direct replacement follows its
	// parent's replacement into the member with the same name.
	if t.parent != nil {
		parent, err := s.substitute(t.parent)
		if err != nil {
			return nil, err
		}
		if StripSugar(parent) != t.parent {
			return s.resolveMember(t.self, parent, t.name)
		}
	}

	if s.isBound(t) || s.options.IgnoreMissing {
		return t, nil
	}
	return nil, MissingSubstitutionError{Type: t}
}

func (s *substituter) substituteDependentMember(t *DependentMemberType) (Type, error) {
	if replacement, ok := s.substitutions.Lookup(t); ok {
		return s.ctx.NewSubstitutedType(t, replacement), nil
	}

	baseType, err := s.substitute(t.baseType)
	if err != nil {
		return nil, err
	}

	// A base that is still dependent cannot be projected yet:
	// the member type is re-formed over the new base.
	if baseType.IsDependentType() {
		return s.ctx.NewDependentMemberTypeWithDeclaration(
			baseType,
			t.name,
			t.declaration,
		), nil
	}

	return s.resolveMember(t.self, baseType, t.name)
}

// resolveMember projects the member with the given name out of the
// replaced base type: through the nested-type table if the base became
// an archetype, and through the resolver if it became concrete.
func (s *substituter) resolveMember(original, baseType Type, name string) (Type, error) {
	stripped := StripSugar(baseType)

	if archetype, ok := stripped.(*ArchetypeType); ok {
		nested, ok := archetype.GetNestedType(name)
		if !ok {
			return nil, MemberNotFoundError{Base: baseType, Name: name}
		}
		return s.ctx.NewSubstitutedType(original, nested), nil
	}

	if s.ctx.resolver != nil {
		if member, ok := s.ctx.resolver.ResolveMemberType(stripped, name); ok {
			return s.ctx.NewSubstitutedType(original, member), nil
		}
	}
	return nil, MemberNotFoundError{Base: baseType, Name: name}
}

func (s *substituter) substituteFunctionBase(
	base *functionTypeBase,
	bound map[Type]struct{},
) (input, output Type, err error) {
	inner := s
	if bound != nil {
		inner = s.withBound(bound)
	}
	input, err = inner.substitute(base.input)
	if err != nil {
		return nil, nil, err
	}
	output, err = inner.substitute(base.output)
	if err != nil {
		return nil, nil, err
	}
	return input, output, nil
}

func (s *substituter) substitutePolymorphicFunction(
	t *PolymorphicFunctionType,
) (Type, error) {
	var remaining []*ArchetypeType
	var bound map[Type]struct{}
	for _, parameter := range t.parameters {
		if _, ok := s.substitutions.Lookup(parameter); ok {
			continue
		}
		remaining = append(remaining, parameter)
		if bound == nil {
			bound = map[Type]struct{}{}
		}
		bound[parameter.CanonicalType()] = struct{}{}
	}

	input, output, err := s.substituteFunctionBase(&t.functionTypeBase, bound)
	if err != nil {
		return nil, err
	}

	// Full substitution discharges all parameters: the result is a
	// plain monomorphic function type.
	if len(remaining) == 0 {
		return s.ctx.NewFunctionType(input, output, t.extInfo), nil
	}

	return s.ctx.NewPolymorphicFunctionType(remaining, input, output, t.extInfo), nil
}

func (s *substituter) substituteGenericFunction(
	t *GenericFunctionType,
) (Type, error) {
	signature, bound, err := s.substituteSignature(t.signature)
	if err != nil {
		return nil, err
	}

	input, output, err := s.substituteFunctionBase(&t.functionTypeBase, bound)
	if err != nil {
		return nil, err
	}

	if signature == nil {
		return s.ctx.NewFunctionType(input, output, t.extInfo), nil
	}

	return s.ctx.NewGenericFunctionType(signature, input, output, t.extInfo), nil
}

func (s *substituter) substituteLoweredFunction(
	t *LoweredFunctionType,
) (Type, error) {
	signature, bound, err := s.substituteSignature(t.signature)
	if err != nil {
		return nil, err
	}

	inner := s
	if bound != nil {
		inner = s.withBound(bound)
	}

	parameters := make([]LoweredParameter, len(t.parameters))
	for i, parameter := range t.parameters {
		substituted, err := inner.substitute(parameter.typ)
		if err != nil {
			return nil, err
		}
		parameters[i] = NewLoweredParameter(parameter.convention, substituted)
	}

	resultType, err := inner.substitute(t.result.typ)
	if err != nil {
		return nil, err
	}
	result := NewLoweredResult(t.result.convention, resultType)

	return s.ctx.NewLoweredFunctionType(
		signature,
		t.extInfo,
		t.calleeConvention,
		parameters,
		result,
	), nil
}

// substituteSignature applies the substitution map to a generic
// signature. Parameters with a replacement leave the signature;
// requirements are rewritten over the remaining parameters, and
// requirements whose subject became concrete are discharged.
// The second result is the set of remaining canonical parameters,
// treated as bound inside the carrying function type. A nil signature
// result means every parameter was replaced.
func (s *substituter) substituteSignature(
	signature *GenericSignature,
) (*GenericSignature, map[Type]struct{}, error) {
	if signature == nil {
		return nil, nil, nil
	}

	var remaining []*GenericParamType
	var bound map[Type]struct{}
	for _, parameter := range signature.parameters {
		if _, ok := s.substitutions.Lookup(parameter); ok {
			continue
		}
		remaining = append(remaining, parameter)
		if bound == nil {
			bound = map[Type]struct{}{}
		}
		bound[parameter.CanonicalType()] = struct{}{}
	}

	if len(remaining) == 0 {
		return nil, nil, nil
	}

	inner := s.withBound(bound)

	var requirements []Requirement
	for _, requirement := range signature.requirements {
		subject, err := inner.substitute(requirement.Subject)
		if err != nil {
			return nil, nil, err
		}
		if !subject.IsDependentType() {
			continue
		}
		constraint, err := inner.substituteOrNil(requirement.Constraint)
		if err != nil {
			return nil, nil, err
		}
		requirements = append(requirements, Requirement{
			Kind:       requirement.Kind,
			Subject:    subject,
			Constraint: constraint,
		})
	}

	return NewGenericSignature(remaining, requirements), bound, nil
}
