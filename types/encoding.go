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

	"github.com/fxamacker/cbor/v2"

	"github.com/vela-lang/vela/decl"
	"github.com/vela-lang/vela/errors"
)

// Type encoding serializes canonical types to CBOR, for module
// interfaces and caches. Declarations are stored as their IDs and
// resolved through a DeclarationLookup on decoding.
//
// Context-local shapes are not encodable: archetypes, type variables,
// polymorphic function types, and lowered function types stay within
// the Context that created them. Sugar is not preserved: a type is
// canonicalized before encoding.

// DeclarationLookup resolves a declaration ID during type decoding.
type DeclarationLookup func(id decl.ID) (decl.Declaration, bool)

// UnsupportedTypeEncodingError is returned when encoding a type kind
// which has no stable encoded form.
type UnsupportedTypeEncodingError struct {
	Kind TypeKind
}

var _ error = UnsupportedTypeEncodingError{}

func (e UnsupportedTypeEncodingError) Error() string {
	return fmt.Sprintf("cannot encode %s type", e.Kind)
}

// UnknownDeclarationError is returned when decoding a type which refers
// to a declaration the lookup does not know.
type UnknownDeclarationError struct {
	ID decl.ID
}

var _ errors.UserError = UnknownDeclarationError{}

func (e UnknownDeclarationError) IsUserError() {}

func (e UnknownDeclarationError) Error() string {
	return fmt.Sprintf("unknown declaration: %d", e.ID)
}

// InvalidTypeEncodingError is returned when decoding malformed data.
type InvalidTypeEncodingError struct {
	Message string
}

var _ errors.UserError = InvalidTypeEncodingError{}

func (e InvalidTypeEncodingError) IsUserError() {}

func (e InvalidTypeEncodingError) Error() string {
	return fmt.Sprintf("invalid type encoding: %s", e.Message)
}

type encodedType struct {
	Kind        uint8                `cbor:"1,keyasint"`
	Declaration uint64               `cbor:"2,keyasint,omitempty"`
	Parent      *encodedType         `cbor:"3,keyasint,omitempty"`
	Children    []*encodedType       `cbor:"4,keyasint,omitempty"`
	Fields      []*encodedTupleField `cbor:"5,keyasint,omitempty"`
	Name        string               `cbor:"6,keyasint,omitempty"`
	Extra       uint64               `cbor:"7,keyasint,omitempty"`
	Signature   *encodedSignature    `cbor:"8,keyasint,omitempty"`
}

type encodedTupleField struct {
	Type    *encodedType `cbor:"1,keyasint"`
	Label   string       `cbor:"2,keyasint,omitempty"`
	Vararg  bool         `cbor:"3,keyasint,omitempty"`
	Default uint8        `cbor:"4,keyasint,omitempty"`
}

type encodedSignature struct {
	Parameters   []uint64              `cbor:"1,keyasint,omitempty"`
	Requirements []*encodedRequirement `cbor:"2,keyasint,omitempty"`
}

type encodedRequirement struct {
	Kind       uint8        `cbor:"1,keyasint"`
	Subject    *encodedType `cbor:"2,keyasint"`
	Constraint *encodedType `cbor:"3,keyasint,omitempty"`
}

var typeEncMode = func() cbor.EncMode {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(errors.NewUnexpectedErrorFromCause(err))
	}
	return encMode
}()

var typeDecMode = func() cbor.DecMode {
	decMode, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(errors.NewUnexpectedErrorFromCause(err))
	}
	return decMode
}()

// EncodeType encodes the canonical form of the given type.
func EncodeType(t Type) ([]byte, error) {
	encoded, err := encodeType(t.CanonicalType())
	if err != nil {
		return nil, err
	}
	return typeEncMode.Marshal(encoded)
}

func encodeType(t Type) (*encodedType, error) {
	if t == nil {
		return nil, nil
	}

	encoded := &encodedType{
		Kind: uint8(t.Kind()),
	}

	switch t := t.(type) {
	case *ErrorType,
		*BuiltinRawPointerType,
		*BuiltinObjectPointerType,
		*BuiltinObjCPointerType:
		return encoded, nil

	case *BuiltinIntegerType:
		encoded.Extra = uint64(t.width.rawValue)
		return encoded, nil

	case *BuiltinFloatType:
		encoded.Extra = uint64(t.floatKind)
		return encoded, nil

	case *BuiltinVectorType:
		element, err := encodeType(t.elementType)
		if err != nil {
			return nil, err
		}
		encoded.Children = []*encodedType{element}
		encoded.Extra = uint64(t.count)
		return encoded, nil

	case *TupleType:
		encoded.Fields = make([]*encodedTupleField, len(t.fields))
		for i, field := range t.fields {
			fieldType, err := encodeType(field.Type)
			if err != nil {
				return nil, err
			}
			encoded.Fields[i] = &encodedTupleField{
				Type:    fieldType,
				Label:   field.Label,
				Vararg:  field.Vararg,
				Default: uint8(field.Default),
			}
		}
		return encoded, nil

	case *NominalType:
		return encodeDeclarationReference(encoded, t.declaration, t.parent, nil)

	case *UnboundGenericType:
		return encodeDeclarationReference(encoded, t.declaration, t.parent, nil)

	case *BoundGenericType:
		return encodeDeclarationReference(encoded, t.declaration, t.parent, t.arguments)

	case *ModuleType:
		encoded.Declaration = uint64(t.module.DeclarationID())
		return encoded, nil

	case *DynamicSelfType:
		return encodeSingleChild(encoded, t.selfType)

	case *FunctionType:
		input, err := encodeType(t.input)
		if err != nil {
			return nil, err
		}
		output, err := encodeType(t.output)
		if err != nil {
			return nil, err
		}
		encoded.Children = []*encodedType{input, output}
		encoded.Extra = uint64(t.extInfo.Bits())
		return encoded, nil

	case *GenericFunctionType:
		input, err := encodeType(t.input)
		if err != nil {
			return nil, err
		}
		output, err := encodeType(t.output)
		if err != nil {
			return nil, err
		}
		signature, err := encodeSignature(t.signature)
		if err != nil {
			return nil, err
		}
		encoded.Children = []*encodedType{input, output}
		encoded.Extra = uint64(t.extInfo.Bits())
		encoded.Signature = signature
		return encoded, nil

	case *ProtocolCompositionType:
		encoded.Children = make([]*encodedType, len(t.members))
		for i, member := range t.members {
			child, err := encodeType(member)
			if err != nil {
				return nil, err
			}
			encoded.Children[i] = child
		}
		return encoded, nil

	case *MetatypeType:
		encoded.Extra = uint64(t.representation)
		return encodeSingleChild(encoded, t.instanceType)

	case *ExistentialMetatypeType:
		encoded.Extra = uint64(t.representation)
		return encodeSingleChild(encoded, t.instanceType)

	case *ArrayType:
		encoded.Extra = t.size
		return encodeSingleChild(encoded, t.baseType)

	case *LValueType:
		return encodeSingleChild(encoded, t.objectType)

	case *InOutType:
		return encodeSingleChild(encoded, t.objectType)

	case *ReferenceStorageType:
		encoded.Extra = uint64(t.ownership)
		return encodeSingleChild(encoded, t.referentType)

	case *GenericParamType:
		encoded.Extra = packDepthIndex(t.depth, t.index)
		return encoded, nil

	case *AssociatedTypeType:
		encoded.Declaration = uint64(t.declaration.DeclarationID())
		return encoded, nil

	case *DependentMemberType:
		encoded.Name = t.name
		if t.declaration != nil {
			encoded.Declaration = uint64(t.declaration.DeclarationID())
		}
		return encodeSingleChild(encoded, t.baseType)
	}

	return nil, UnsupportedTypeEncodingError{Kind: t.Kind()}
}

func encodeSingleChild(encoded *encodedType, child Type) (*encodedType, error) {
	encodedChild, err := encodeType(child)
	if err != nil {
		return nil, err
	}
	encoded.Children = []*encodedType{encodedChild}
	return encoded, nil
}

func encodeDeclarationReference(
	encoded *encodedType,
	declaration decl.NominalDeclaration,
	parent Type,
	arguments []Type,
) (*encodedType, error) {
	encoded.Declaration = uint64(declaration.DeclarationID())

	encodedParent, err := encodeType(parent)
	if err != nil {
		return nil, err
	}
	encoded.Parent = encodedParent

	if arguments != nil {
		encoded.Children = make([]*encodedType, len(arguments))
		for i, argument := range arguments {
			child, err := encodeType(argument)
			if err != nil {
				return nil, err
			}
			encoded.Children[i] = child
		}
	}

	return encoded, nil
}

func encodeSignature(signature *GenericSignature) (*encodedSignature, error) {
	if signature == nil {
		return nil, nil
	}

	encoded := &encodedSignature{
		Parameters: make([]uint64, len(signature.parameters)),
	}
	for i, parameter := range signature.parameters {
		encoded.Parameters[i] = packDepthIndex(parameter.depth, parameter.index)
	}

	for _, requirement := range signature.requirements {
		subject, err := encodeType(requirement.Subject)
		if err != nil {
			return nil, err
		}
		constraint, err := encodeType(requirement.Constraint)
		if err != nil {
			return nil, err
		}
		encoded.Requirements = append(
			encoded.Requirements,
			&encodedRequirement{
				Kind:       uint8(requirement.Kind),
				Subject:    subject,
				Constraint: constraint,
			},
		)
	}

	return encoded, nil
}

func packDepthIndex(depth, index uint32) uint64 {
	return uint64(depth)<<32 | uint64(index)
}

func unpackDepthIndex(packed uint64) (depth, index uint32) {
	return uint32(packed >> 32), uint32(packed)
}

// DecodeType decodes a type encoded by EncodeType, resolving
// declaration references through the given lookup. The result is
// canonical and interned in the Context.
func (ctx *Context) DecodeType(data []byte, lookup DeclarationLookup) (Type, error) {
	var encoded encodedType
	if err := typeDecMode.Unmarshal(data, &encoded); err != nil {
		return nil, InvalidTypeEncodingError{Message: err.Error()}
	}
	return ctx.decodeType(&encoded, lookup)
}

func (ctx *Context) decodeType(encoded *encodedType, lookup DeclarationLookup) (Type, error) {
	if encoded == nil {
		return nil, InvalidTypeEncodingError{Message: "missing type"}
	}

	kind := TypeKind(encoded.Kind)

	switch kind {
	case TypeKindError:
		return ctx.ErrorType(), nil

	case TypeKindBuiltinInteger:
		return ctx.NewBuiltinIntegerType(
			BuiltinIntegerWidth{rawValue: uint32(encoded.Extra)},
		), nil

	case TypeKindBuiltinFloat:
		return ctx.NewBuiltinFloatType(BuiltinFloatKind(encoded.Extra)), nil

	case TypeKindBuiltinRawPointer:
		return ctx.BuiltinRawPointerType(), nil

	case TypeKindBuiltinObjectPointer:
		return ctx.BuiltinObjectPointerType(), nil

	case TypeKindBuiltinObjCPointer:
		return ctx.BuiltinObjCPointerType(), nil

	case TypeKindBuiltinVector:
		element, err := ctx.decodeSingleChild(encoded, lookup)
		if err != nil {
			return nil, err
		}
		return ctx.NewBuiltinVectorType(element, uint32(encoded.Extra)), nil

	case TypeKindTuple:
		fields := make([]TupleTypeField, len(encoded.Fields))
		for i, encodedField := range encoded.Fields {
			fieldType, err := ctx.decodeType(encodedField.Type, lookup)
			if err != nil {
				return nil, err
			}
			fields[i] = TupleTypeField{
				Type:    fieldType,
				Label:   encodedField.Label,
				Vararg:  encodedField.Vararg,
				Default: DefaultArgumentKind(encodedField.Default),
			}
		}
		return ctx.NewTupleType(fields), nil

	case TypeKindNominal:
		declaration, parent, err := ctx.decodeDeclarationReference(encoded, lookup)
		if err != nil {
			return nil, err
		}
		return ctx.NewNominalType(declaration, parent), nil

	case TypeKindUnboundGeneric:
		declaration, parent, err := ctx.decodeDeclarationReference(encoded, lookup)
		if err != nil {
			return nil, err
		}
		return ctx.NewUnboundGenericType(declaration, parent), nil

	case TypeKindBoundGeneric:
		declaration, parent, err := ctx.decodeDeclarationReference(encoded, lookup)
		if err != nil {
			return nil, err
		}
		arguments := make([]Type, len(encoded.Children))
		for i, child := range encoded.Children {
			arguments[i], err = ctx.decodeType(child, lookup)
			if err != nil {
				return nil, err
			}
		}
		return ctx.NewBoundGenericType(declaration, parent, arguments), nil

	case TypeKindModule:
		declaration, err := lookupDeclaration[decl.ModuleDeclaration](
			encoded.Declaration,
			lookup,
		)
		if err != nil {
			return nil, err
		}
		return ctx.NewModuleType(declaration), nil

	case TypeKindDynamicSelf:
		selfType, err := ctx.decodeSingleChild(encoded, lookup)
		if err != nil {
			return nil, err
		}
		return ctx.NewDynamicSelfType(selfType), nil

	case TypeKindFunction:
		input, output, err := ctx.decodeFunctionChildren(encoded, lookup)
		if err != nil {
			return nil, err
		}
		return ctx.NewFunctionType(
			input,
			output,
			ExtInfoFromBits(uint16(encoded.Extra)),
		), nil

	case TypeKindGenericFunction:
		input, output, err := ctx.decodeFunctionChildren(encoded, lookup)
		if err != nil {
			return nil, err
		}
		signature, err := ctx.decodeSignature(encoded.Signature, lookup)
		if err != nil {
			return nil, err
		}
		return ctx.NewGenericFunctionType(
			signature,
			input,
			output,
			ExtInfoFromBits(uint16(encoded.Extra)),
		), nil

	case TypeKindProtocolComposition:
		members := make([]Type, len(encoded.Children))
		for i, child := range encoded.Children {
			member, err := ctx.decodeType(child, lookup)
			if err != nil {
				return nil, err
			}
			members[i] = member
		}
		return ctx.NewProtocolCompositionType(members), nil

	case TypeKindMetatype:
		instance, err := ctx.decodeSingleChild(encoded, lookup)
		if err != nil {
			return nil, err
		}
		return ctx.NewMetatypeType(
			instance,
			MetatypeRepresentation(encoded.Extra),
		), nil

	case TypeKindExistentialMetatype:
		instance, err := ctx.decodeSingleChild(encoded, lookup)
		if err != nil {
			return nil, err
		}
		return ctx.NewExistentialMetatypeType(
			instance,
			MetatypeRepresentation(encoded.Extra),
		), nil

	case TypeKindArray:
		baseType, err := ctx.decodeSingleChild(encoded, lookup)
		if err != nil {
			return nil, err
		}
		return ctx.NewArrayType(baseType, encoded.Extra), nil

	case TypeKindLValue:
		objectType, err := ctx.decodeSingleChild(encoded, lookup)
		if err != nil {
			return nil, err
		}
		return ctx.NewLValueType(objectType), nil

	case TypeKindInOut:
		objectType, err := ctx.decodeSingleChild(encoded, lookup)
		if err != nil {
			return nil, err
		}
		return ctx.NewInOutType(objectType), nil

	case TypeKindReferenceStorage:
		referent, err := ctx.decodeSingleChild(encoded, lookup)
		if err != nil {
			return nil, err
		}
		return ctx.NewReferenceStorageType(referent, Ownership(encoded.Extra)), nil

	case TypeKindGenericParam:
		depth, index := unpackDepthIndex(encoded.Extra)
		return ctx.NewGenericParamType(depth, index), nil

	case TypeKindAssociatedType:
		declaration, err := lookupDeclaration[decl.AssociatedTypeDeclaration](
			encoded.Declaration,
			lookup,
		)
		if err != nil {
			return nil, err
		}
		return ctx.NewAssociatedTypeType(declaration), nil

	case TypeKindDependentMember:
		baseType, err := ctx.decodeSingleChild(encoded, lookup)
		if err != nil {
			return nil, err
		}
		var declaration decl.AssociatedTypeDeclaration
		if encoded.Declaration != 0 {
			declaration, err = lookupDeclaration[decl.AssociatedTypeDeclaration](
				encoded.Declaration,
				lookup,
			)
			if err != nil {
				return nil, err
			}
		}
		return ctx.NewDependentMemberTypeWithDeclaration(
			baseType,
			encoded.Name,
			declaration,
		), nil
	}

	return nil, UnsupportedTypeEncodingError{Kind: kind}
}

func (ctx *Context) decodeSingleChild(
	encoded *encodedType,
	lookup DeclarationLookup,
) (Type, error) {
	if len(encoded.Children) != 1 {
		return nil, InvalidTypeEncodingError{
			Message: fmt.Sprintf(
				"%s type requires exactly one child, got %d",
				TypeKind(encoded.Kind),
				len(encoded.Children),
			),
		}
	}
	return ctx.decodeType(encoded.Children[0], lookup)
}

func (ctx *Context) decodeFunctionChildren(
	encoded *encodedType,
	lookup DeclarationLookup,
) (input, output Type, err error) {
	if len(encoded.Children) != 2 {
		return nil, nil, InvalidTypeEncodingError{
			Message: fmt.Sprintf(
				"%s type requires exactly two children, got %d",
				TypeKind(encoded.Kind),
				len(encoded.Children),
			),
		}
	}
	input, err = ctx.decodeType(encoded.Children[0], lookup)
	if err != nil {
		return nil, nil, err
	}
	output, err = ctx.decodeType(encoded.Children[1], lookup)
	if err != nil {
		return nil, nil, err
	}
	return input, output, nil
}

func (ctx *Context) decodeDeclarationReference(
	encoded *encodedType,
	lookup DeclarationLookup,
) (decl.NominalDeclaration, Type, error) {
	declaration, err := lookupDeclaration[decl.NominalDeclaration](
		encoded.Declaration,
		lookup,
	)
	if err != nil {
		return nil, nil, err
	}

	var parent Type
	if encoded.Parent != nil {
		parent, err = ctx.decodeType(encoded.Parent, lookup)
		if err != nil {
			return nil, nil, err
		}
	}

	return declaration, parent, nil
}

func (ctx *Context) decodeSignature(
	encoded *encodedSignature,
	lookup DeclarationLookup,
) (*GenericSignature, error) {
	if encoded == nil {
		return nil, nil
	}

	parameters := make([]*GenericParamType, len(encoded.Parameters))
	for i, packed := range encoded.Parameters {
		depth, index := unpackDepthIndex(packed)
		parameters[i] = ctx.NewGenericParamType(depth, index)
	}

	var requirements []Requirement
	for _, encodedRequirement := range encoded.Requirements {
		subject, err := ctx.decodeType(encodedRequirement.Subject, lookup)
		if err != nil {
			return nil, err
		}
		var constraint Type
		if encodedRequirement.Constraint != nil {
			constraint, err = ctx.decodeType(encodedRequirement.Constraint, lookup)
			if err != nil {
				return nil, err
			}
		}
		requirements = append(requirements, Requirement{
			Kind:       RequirementKind(encodedRequirement.Kind),
			Subject:    subject,
			Constraint: constraint,
		})
	}

	return NewGenericSignature(parameters, requirements), nil
}

func lookupDeclaration[T decl.Declaration](
	id uint64,
	lookup DeclarationLookup,
) (T, error) {
	var zero T

	declaration, ok := lookup(decl.ID(id))
	if !ok {
		return zero, UnknownDeclarationError{ID: decl.ID(id)}
	}

	typed, ok := declaration.(T)
	if !ok {
		return zero, InvalidTypeEncodingError{
			Message: fmt.Sprintf(
				"declaration %d has unexpected kind %s",
				id,
				declaration.DeclarationKind(),
			),
		}
	}

	return typed, nil
}
