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
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/rs/zerolog"

	"github.com/vela-lang/vela/decl"
	"github.com/vela-lang/vela/errors"
)

// Resolver resolves queries against incompletely-checked declarations.
// It is provided by the declaration / type-checking layer.
//
// The resolver may be absent once checking is complete; queries which
// would then still need it fail loudly.
type Resolver interface {
	// ResolveMemberType returns the type witness for the member with
	// the given name in the given concrete base type, e.g. the type
	// bound to an associated type requirement by a conformance.
	// The second result is false if the base type has no such member.
	ResolveMemberType(base Type, name string) (Type, bool)

	// ResolveArchetypeNestedTypes returns the nested types of the
	// given archetype, one entry per associated type visible through
	// the archetype's conformances.
	ResolveArchetypeNestedTypes(archetype *ArchetypeType) []NestedTypeEntry
}

// LibraryDeclarations are the standard library declarations which
// syntax sugar expands to.
type LibraryDeclarations struct {
	Optional          decl.NominalDeclaration
	UncheckedOptional decl.NominalDeclaration
	ArraySlice        decl.NominalDeclaration
}

// Config configures a Context.
type Config struct {
	// Logger receives debug events. Optional.
	Logger *zerolog.Logger

	// Resolver resolves member types and archetype nested types
	// from incompletely-checked declarations. Optional.
	Resolver Resolver

	// LibraryDeclarations are required to desugar syntax sugar types.
	LibraryDeclarations LibraryDeclarations
}

// A Context owns every type node of one compilation: all construction
// goes through its factories, which return an existing node for a
// structurally-equal request where the shape has a structural key,
// and allocate a fresh node otherwise.
//
// A Context is single-threaded. Concurrent compilation of independent
// scopes uses independent Contexts. The whole Context is discarded
// as a unit when compilation of its scope ends.
type Context struct {
	logger              zerolog.Logger
	resolver            Resolver
	libraryDeclarations LibraryDeclarations

	interned map[string]Type

	nextSerial   uint64
	nextOpenedID uint64

	errorType         *ErrorType
	rawPointerType    *BuiltinRawPointerType
	objectPointerType *BuiltinObjectPointerType
	objcPointerType   *BuiltinObjCPointerType

	protocolIndices  map[decl.ID]uint
	protocolClosures map[decl.ID]*bitset.BitSet

	stats ContextStats
}

// ContextStats are allocation and interning counters of a Context.
type ContextStats struct {
	AllocatedNodes uint64
	InternedTypes  uint64
	InternHits     uint64
}

func NewContext(config Config) *Context {
	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}

	ctx := &Context{
		logger:              logger,
		resolver:            config.Resolver,
		libraryDeclarations: config.LibraryDeclarations,
		interned:            map[string]Type{},
		protocolIndices:     map[decl.ID]uint{},
		protocolClosures:    map[decl.ID]*bitset.BitSet{},
	}

	ctx.errorType = &ErrorType{}
	ctx.initBase(&ctx.errorType.typeBase, ctx.errorType, TypeKindError, 0)
	markCanonical(ctx.errorType)

	ctx.rawPointerType = &BuiltinRawPointerType{}
	ctx.initBase(&ctx.rawPointerType.typeBase, ctx.rawPointerType, TypeKindBuiltinRawPointer, 0)
	markCanonical(ctx.rawPointerType)

	ctx.objectPointerType = &BuiltinObjectPointerType{}
	ctx.initBase(&ctx.objectPointerType.typeBase, ctx.objectPointerType, TypeKindBuiltinObjectPointer, 0)
	markCanonical(ctx.objectPointerType)

	ctx.objcPointerType = &BuiltinObjCPointerType{}
	ctx.initBase(&ctx.objcPointerType.typeBase, ctx.objcPointerType, TypeKindBuiltinObjCPointer, 0)
	markCanonical(ctx.objcPointerType)

	ctx.logger.Debug().Msg("type context created")

	return ctx
}

// Stats returns the allocation and interning counters, and logs them.
func (ctx *Context) Stats() ContextStats {
	stats := ctx.stats
	stats.InternedTypes = uint64(len(ctx.interned))
	ctx.logger.Debug().
		Uint64("allocated", stats.AllocatedNodes).
		Uint64("interned", stats.InternedTypes).
		Uint64("hits", stats.InternHits).
		Msg("type context stats")
	return stats
}

func (ctx *Context) initBase(
	b *typeBase,
	self Type,
	kind TypeKind,
	properties RecursiveProperties,
) {
	ctx.nextSerial++
	b.self = self
	b.ctx = ctx
	b.kind = kind
	b.properties = properties
	b.serial = ctx.nextSerial
	ctx.stats.AllocatedNodes++
}

func markCanonical(t Type) {
	t.base().canonical = t
}

func serialOf(t Type) uint64 {
	if t == nil {
		return 0
	}
	return t.base().serial
}

func isCanonicalOrNil(t Type) bool {
	return t == nil || t.IsCanonical()
}

func allCanonical(ts ...Type) bool {
	for _, t := range ts {
		if !isCanonicalOrNil(t) {
			return false
		}
	}
	return true
}

// internType probes the uniquing table with the given structural key.
// On a hit it returns the existing node; on a miss it allocates the
// node with build, inserts it, and returns it.
func internType[T Type](ctx *Context, key string, build func() T) T {
	if existing, ok := ctx.interned[key]; ok {
		ctx.stats.InternHits++
		return existing.(T)
	}
	t := build()
	ctx.interned[key] = t
	ctx.logger.Trace().Str("key", key).Msg("interned type")
	return t
}

// Fixed, structurally-childless types

// ErrorType returns the single placeholder type of an already-failed
// type check.
func (ctx *Context) ErrorType() *ErrorType {
	return ctx.errorType
}

func (ctx *Context) BuiltinRawPointerType() *BuiltinRawPointerType {
	return ctx.rawPointerType
}

func (ctx *Context) BuiltinObjectPointerType() *BuiltinObjectPointerType {
	return ctx.objectPointerType
}

func (ctx *Context) BuiltinObjCPointerType() *BuiltinObjCPointerType {
	return ctx.objcPointerType
}

// NewBuiltinIntegerType returns the builtin integer type of the
// given width.
func (ctx *Context) NewBuiltinIntegerType(width BuiltinIntegerWidth) *BuiltinIntegerType {
	key := "builtinint:" + strconv.FormatUint(uint64(width.rawValue), 10)
	return internType(ctx, key, func() *BuiltinIntegerType {
		t := &BuiltinIntegerType{width: width}
		ctx.initBase(&t.typeBase, t, TypeKindBuiltinInteger, 0)
		markCanonical(t)
		return t
	})
}

// NewBuiltinWordType returns the builtin integer type of the abstract
// target pointer width.
func (ctx *Context) NewBuiltinWordType() *BuiltinIntegerType {
	return ctx.NewBuiltinIntegerType(PointerWidth())
}

func (ctx *Context) NewBuiltinFloatType(floatKind BuiltinFloatKind) *BuiltinFloatType {
	key := "builtinfloat:" + strconv.Itoa(int(floatKind))
	return internType(ctx, key, func() *BuiltinFloatType {
		t := &BuiltinFloatType{floatKind: floatKind}
		ctx.initBase(&t.typeBase, t, TypeKindBuiltinFloat, 0)
		markCanonical(t)
		return t
	})
}

func (ctx *Context) NewBuiltinVectorType(elementType Type, count uint32) *BuiltinVectorType {
	var sb strings.Builder
	sb.WriteString("builtinvector:")
	sb.WriteString(strconv.FormatUint(serialOf(elementType), 10))
	sb.WriteByte(':')
	sb.WriteString(strconv.FormatUint(uint64(count), 10))

	return internType(ctx, sb.String(), func() *BuiltinVectorType {
		t := &BuiltinVectorType{
			elementType: elementType,
			count:       count,
		}
		ctx.initBase(&t.typeBase, t, TypeKindBuiltinVector, unionProperties(elementType))
		if elementType.IsCanonical() {
			markCanonical(t)
		}
		return t
	})
}

// Tuples

// NewTupleType returns the tuple type with the given fields.
//
// A degenerate tuple of exactly one unlabeled, non-vararg,
// non-defaulted field is returned as a ParenType over the field's
// type, never as a one-field tuple.
func (ctx *Context) NewTupleType(fields []TupleTypeField) Type {
	if len(fields) == 1 && fields[0].IsPlain() {
		return ctx.NewParenType(fields[0].Type)
	}

	var sb strings.Builder
	sb.WriteString("tuple:")
	for _, field := range fields {
		sb.WriteString(strconv.Quote(field.Label))
		sb.WriteByte(':')
		sb.WriteString(strconv.FormatUint(serialOf(field.Type), 10))
		if field.Vararg {
			sb.WriteString(":v")
		}
		if field.Default != DefaultArgumentNone {
			sb.WriteString(":d")
			sb.WriteString(strconv.Itoa(int(field.Default)))
		}
		sb.WriteByte(';')
	}

	return internType(ctx, sb.String(), func() *TupleType {
		var properties RecursiveProperties
		canonical := true
		for _, field := range fields {
			properties = properties.Union(field.Type.RecursiveProperties())
			canonical = canonical && field.Type.IsCanonical()
		}

		t := &TupleType{
			fields: append([]TupleTypeField(nil), fields...),
		}
		ctx.initBase(&t.typeBase, t, TypeKindTuple, properties)
		if canonical {
			markCanonical(t)
		}
		return t
	})
}

// EmptyTupleType returns the empty tuple type, the unit type.
func (ctx *Context) EmptyTupleType() *TupleType {
	return ctx.NewTupleType(nil).(*TupleType)
}

// NewParenType returns the parenthesized type over the given type.
// The node is uniqued when the inner type is canonical, so a written
// paren and a degenerate one-field tuple share a handle.
func (ctx *Context) NewParenType(innerType Type) *ParenType {
	build := func() *ParenType {
		t := &ParenType{innerType: innerType}
		ctx.initBase(&t.typeBase, t, TypeKindParen, innerType.RecursiveProperties())
		return t
	}

	if !innerType.IsCanonical() {
		return build()
	}
	key := "paren:" + strconv.FormatUint(serialOf(innerType), 10)
	return internType(ctx, key, build)
}

// Nominal types

// NewNameAliasType returns a fresh sugar type referring to the given
// underlying type through a type alias declaration.
func (ctx *Context) NewNameAliasType(
	declaration decl.TypeAliasDeclaration,
	underlyingType Type,
) *NameAliasType {
	t := &NameAliasType{
		declaration:    declaration,
		underlyingType: underlyingType,
	}
	ctx.initBase(&t.typeBase, t, TypeKindNameAlias, underlyingType.RecursiveProperties())
	return t
}

// NewNominalType returns the type of a reference to the given
// non-generic nominal declaration, nested in the given parent type
// (nil for a top-level declaration).
func (ctx *Context) NewNominalType(
	declaration decl.NominalDeclaration,
	parent Type,
) *NominalType {
	var sb strings.Builder
	sb.WriteString("nominal:")
	sb.WriteString(strconv.FormatUint(uint64(declaration.DeclarationID()), 10))
	sb.WriteByte(':')
	sb.WriteString(strconv.FormatUint(serialOf(parent), 10))

	return internType(ctx, sb.String(), func() *NominalType {
		t := &NominalType{
			declaration: declaration,
			parent:      parent,
		}
		ctx.initBase(&t.typeBase, t, TypeKindNominal, unionProperties(parent))
		if isCanonicalOrNil(parent) {
			markCanonical(t)
		}
		return t
	})
}

// NewProtocolType returns the nominal type of the given protocol
// declaration.
func (ctx *Context) NewProtocolType(declaration decl.ProtocolDeclaration) *NominalType {
	return ctx.NewNominalType(declaration, nil)
}

// NewUnboundGenericType returns the type of a reference to the given
// generic declaration without generic arguments applied.
func (ctx *Context) NewUnboundGenericType(
	declaration decl.NominalDeclaration,
	parent Type,
) *UnboundGenericType {
	var sb strings.Builder
	sb.WriteString("unbound:")
	sb.WriteString(strconv.FormatUint(uint64(declaration.DeclarationID()), 10))
	sb.WriteByte(':')
	sb.WriteString(strconv.FormatUint(serialOf(parent), 10))

	return internType(ctx, sb.String(), func() *UnboundGenericType {
		t := &UnboundGenericType{
			declaration: declaration,
			parent:      parent,
		}
		ctx.initBase(&t.typeBase, t, TypeKindUnboundGeneric, unionProperties(parent))
		if isCanonicalOrNil(parent) {
			markCanonical(t)
		}
		return t
	})
}

// NewBoundGenericType returns the type of a reference to the given
// generic declaration with the given ordered generic arguments applied.
func (ctx *Context) NewBoundGenericType(
	declaration decl.NominalDeclaration,
	parent Type,
	arguments []Type,
) *BoundGenericType {
	var sb strings.Builder
	sb.WriteString("bound:")
	sb.WriteString(strconv.FormatUint(uint64(declaration.DeclarationID()), 10))
	sb.WriteByte(':')
	sb.WriteString(strconv.FormatUint(serialOf(parent), 10))
	for _, argument := range arguments {
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatUint(serialOf(argument), 10))
	}

	return internType(ctx, sb.String(), func() *BoundGenericType {
		properties := unionProperties(parent)
		canonical := isCanonicalOrNil(parent)
		for _, argument := range arguments {
			properties = properties.Union(argument.RecursiveProperties())
			canonical = canonical && argument.IsCanonical()
		}

		t := &BoundGenericType{
			declaration: declaration,
			parent:      parent,
			arguments:   append([]Type(nil), arguments...),
		}
		ctx.initBase(&t.typeBase, t, TypeKindBoundGeneric, properties)
		if canonical {
			markCanonical(t)
		}
		return t
	})
}

func (ctx *Context) NewModuleType(module decl.ModuleDeclaration) *ModuleType {
	key := "module:" + strconv.FormatUint(uint64(module.DeclarationID()), 10)
	return internType(ctx, key, func() *ModuleType {
		t := &ModuleType{module: module}
		ctx.initBase(&t.typeBase, t, TypeKindModule, 0)
		markCanonical(t)
		return t
	})
}

// NewDynamicSelfType returns the dynamic `Self` type bounded by the
// given class type.
func (ctx *Context) NewDynamicSelfType(selfType Type) *DynamicSelfType {
	key := "dynself:" + strconv.FormatUint(serialOf(selfType), 10)
	return internType(ctx, key, func() *DynamicSelfType {
		t := &DynamicSelfType{selfType: selfType}
		ctx.initBase(&t.typeBase, t, TypeKindDynamicSelf, selfType.RecursiveProperties())
		if selfType.IsCanonical() {
			markCanonical(t)
		}
		return t
	})
}

// Function types

func functionTypeProperties(input, output Type) RecursiveProperties {
	// The input is the one position permitted to carry an address-of
	// marker without making the function type non-materializable.
	return input.RecursiveProperties().
		Without(PropertyNotMaterializable).
		Union(output.RecursiveProperties())
}

// NewFunctionType returns the monomorphic function type with the given
// input, result, and extended info.
func (ctx *Context) NewFunctionType(input, output Type, extInfo ExtInfo) *FunctionType {
	var sb strings.Builder
	sb.WriteString("func:")
	sb.WriteString(strconv.FormatUint(serialOf(input), 10))
	sb.WriteByte(':')
	sb.WriteString(strconv.FormatUint(serialOf(output), 10))
	sb.WriteByte(':')
	sb.WriteString(strconv.FormatUint(uint64(extInfo.Bits()), 10))

	return internType(ctx, sb.String(), func() *FunctionType {
		t := &FunctionType{
			functionTypeBase{
				input:   input,
				output:  output,
				extInfo: extInfo,
			},
		}
		ctx.initBase(&t.typeBase, t, TypeKindFunction, functionTypeProperties(input, output))
		if allCanonical(input, output) {
			markCanonical(t)
		}
		return t
	})
}

// NewPolymorphicFunctionType returns the generic function type over the
// given archetype parameters, ordered by primary index.
func (ctx *Context) NewPolymorphicFunctionType(
	parameters []*ArchetypeType,
	input, output Type,
	extInfo ExtInfo,
) *PolymorphicFunctionType {
	var sb strings.Builder
	sb.WriteString("polyfunc:")
	for _, parameter := range parameters {
		sb.WriteString(strconv.FormatUint(serialOf(parameter), 10))
		sb.WriteByte(',')
	}
	sb.WriteByte(':')
	sb.WriteString(strconv.FormatUint(serialOf(input), 10))
	sb.WriteByte(':')
	sb.WriteString(strconv.FormatUint(serialOf(output), 10))
	sb.WriteByte(':')
	sb.WriteString(strconv.FormatUint(uint64(extInfo.Bits()), 10))

	return internType(ctx, sb.String(), func() *PolymorphicFunctionType {
		t := &PolymorphicFunctionType{
			functionTypeBase: functionTypeBase{
				input:   input,
				output:  output,
				extInfo: extInfo,
			},
			parameters: append([]*ArchetypeType(nil), parameters...),
		}
		ctx.initBase(
			&t.typeBase,
			t,
			TypeKindPolymorphicFunction,
			functionTypeProperties(input, output),
		)
		if allCanonical(input, output) {
			markCanonical(t)
		}
		return t
	})
}

func signatureIsCanonical(signature *GenericSignature) bool {
	if signature == nil {
		return true
	}
	for _, parameter := range signature.Parameters() {
		if !parameter.IsCanonical() {
			return false
		}
	}
	for _, requirement := range signature.Requirements() {
		if !requirement.Subject.IsCanonical() {
			return false
		}
		if !isCanonicalOrNil(requirement.Constraint) {
			return false
		}
	}
	return true
}

// NewGenericFunctionType returns the generic function type over the
// given signature. The input and output refer to the signature's
// parameters abstractly, as generic parameter and dependent member
// types.
func (ctx *Context) NewGenericFunctionType(
	signature *GenericSignature,
	input, output Type,
	extInfo ExtInfo,
) *GenericFunctionType {
	if signature == nil {
		panic(errors.NewUnexpectedError("generic function type requires a generic signature"))
	}

	var sb strings.Builder
	sb.WriteString("genfunc:")
	sb.WriteString(signature.structuralKey())
	sb.WriteByte(':')
	sb.WriteString(strconv.FormatUint(serialOf(input), 10))
	sb.WriteByte(':')
	sb.WriteString(strconv.FormatUint(serialOf(output), 10))
	sb.WriteByte(':')
	sb.WriteString(strconv.FormatUint(uint64(extInfo.Bits()), 10))

	return internType(ctx, sb.String(), func() *GenericFunctionType {
		t := &GenericFunctionType{
			functionTypeBase: functionTypeBase{
				input:   input,
				output:  output,
				extInfo: extInfo,
			},
			signature: signature,
		}
		ctx.initBase(
			&t.typeBase,
			t,
			TypeKindGenericFunction,
			functionTypeProperties(input, output),
		)
		if allCanonical(input, output) && signatureIsCanonical(signature) {
			markCanonical(t)
		}
		return t
	})
}

// NewLoweredFunctionType returns the calling-convention-annotated
// function type with the given signature (nil if not polymorphic),
// extended info, callee convention, parameters, and single result.
//
// Lowered function types are always canonical: their parameter and
// result types are canonicalized at descriptor construction.
func (ctx *Context) NewLoweredFunctionType(
	signature *GenericSignature,
	extInfo ExtInfo,
	calleeConvention ParameterConvention,
	parameters []LoweredParameter,
	result LoweredResult,
) *LoweredFunctionType {
	var sb strings.Builder
	sb.WriteString("lowered:")
	sb.WriteString(signature.structuralKey())
	sb.WriteByte(':')
	sb.WriteString(strconv.FormatUint(uint64(extInfo.Bits()), 10))
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(int(calleeConvention)))
	for _, parameter := range parameters {
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatUint(serialOf(parameter.typ), 10))
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(int(parameter.convention)))
	}
	sb.WriteByte(';')
	sb.WriteString(strconv.FormatUint(serialOf(result.typ), 10))
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(int(result.convention)))

	return internType(ctx, sb.String(), func() *LoweredFunctionType {
		var properties RecursiveProperties
		for _, parameter := range parameters {
			properties = properties.Union(parameter.typ.RecursiveProperties())
		}
		properties = properties.Union(result.typ.RecursiveProperties())

		t := &LoweredFunctionType{
			signature:        signature,
			extInfo:          extInfo,
			calleeConvention: calleeConvention,
			parameters:       append([]LoweredParameter(nil), parameters...),
			result:           result,
		}
		ctx.initBase(&t.typeBase, t, TypeKindLoweredFunction, properties)
		markCanonical(t)
		return t
	})
}

// Metatypes

func (ctx *Context) NewMetatypeType(
	instanceType Type,
	representation MetatypeRepresentation,
) *MetatypeType {
	var sb strings.Builder
	sb.WriteString("metatype:")
	sb.WriteString(strconv.FormatUint(serialOf(instanceType), 10))
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(int(representation)))

	return internType(ctx, sb.String(), func() *MetatypeType {
		t := &MetatypeType{
			anyMetatypeBase{
				instanceType:   instanceType,
				representation: representation,
			},
		}
		ctx.initBase(&t.typeBase, t, TypeKindMetatype, instanceType.RecursiveProperties())
		if instanceType.IsCanonical() {
			markCanonical(t)
		}
		return t
	})
}

func (ctx *Context) NewExistentialMetatypeType(
	instanceType Type,
	representation MetatypeRepresentation,
) *ExistentialMetatypeType {
	var sb strings.Builder
	sb.WriteString("exmetatype:")
	sb.WriteString(strconv.FormatUint(serialOf(instanceType), 10))
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(int(representation)))

	return internType(ctx, sb.String(), func() *ExistentialMetatypeType {
		t := &ExistentialMetatypeType{
			anyMetatypeBase{
				instanceType:   instanceType,
				representation: representation,
			},
		}
		ctx.initBase(&t.typeBase, t, TypeKindExistentialMetatype, instanceType.RecursiveProperties())
		if instanceType.IsCanonical() {
			markCanonical(t)
		}
		return t
	})
}

// Protocol compositions

// NewProtocolCompositionType returns the existential type composed of
// the given members, which must be protocol or protocol composition
// types. The members are stored as written; minimization and ordering
// happen during canonicalization.
func (ctx *Context) NewProtocolCompositionType(members []Type) *ProtocolCompositionType {
	var sb strings.Builder
	sb.WriteString("composition:")
	for _, member := range members {
		sb.WriteString(strconv.FormatUint(serialOf(member), 10))
		sb.WriteByte(',')
	}

	return internType(ctx, sb.String(), func() *ProtocolCompositionType {
		t := &ProtocolCompositionType{
			members: append([]Type(nil), members...),
		}
		ctx.initBase(&t.typeBase, t, TypeKindProtocolComposition, unionProperties(members...))
		if ctx.compositionMembersAreCanonical(members) {
			markCanonical(t)
		}
		return t
	})
}

// compositionMembersAreCanonical returns true if the given composition
// member list is already in canonical form: every member a canonical
// protocol type, minimized, in canonical order, and not a
// single-member list (which canonicalizes to the protocol itself).
func (ctx *Context) compositionMembersAreCanonical(members []Type) bool {
	if len(members) == 1 {
		return false
	}

	declarations := make([]decl.ProtocolDeclaration, 0, len(members))
	for _, member := range members {
		nominal, ok := member.(*NominalType)
		if !ok || !nominal.IsCanonical() || !nominal.IsProtocolType() {
			return false
		}
		declarations = append(declarations, nominal.ProtocolDeclaration())
	}

	minimized := ctx.minimizeConformances(declarations)
	if len(minimized) != len(declarations) {
		return false
	}
	for i, declaration := range declarations {
		if minimized[i] != declaration {
			return false
		}
	}
	return true
}

// Arrays and sugar

// NewArrayType returns the fixed-size array type of the given base
// type and size. Array types cannot have size zero.
func (ctx *Context) NewArrayType(baseType Type, size uint64) *ArrayType {
	if size == 0 {
		panic(errors.NewUnexpectedError("array type cannot have size 0"))
	}

	var sb strings.Builder
	sb.WriteString("array:")
	sb.WriteString(strconv.FormatUint(serialOf(baseType), 10))
	sb.WriteByte(':')
	sb.WriteString(strconv.FormatUint(size, 10))

	return internType(ctx, sb.String(), func() *ArrayType {
		t := &ArrayType{
			baseType: baseType,
			size:     size,
		}
		ctx.initBase(&t.typeBase, t, TypeKindArray, baseType.RecursiveProperties())
		if baseType.IsCanonical() {
			markCanonical(t)
		}
		return t
	})
}

func (ctx *Context) NewArraySliceType(baseType Type) *ArraySliceType {
	t := &ArraySliceType{
		syntaxSugarBase{baseType: baseType},
	}
	ctx.initBase(&t.typeBase, t, TypeKindArraySlice, baseType.RecursiveProperties())
	return t
}

func (ctx *Context) NewOptionalType(baseType Type) *OptionalType {
	t := &OptionalType{
		syntaxSugarBase{baseType: baseType},
	}
	ctx.initBase(&t.typeBase, t, TypeKindOptional, baseType.RecursiveProperties())
	return t
}

func (ctx *Context) NewUncheckedOptionalType(baseType Type) *UncheckedOptionalType {
	t := &UncheckedOptionalType{
		syntaxSugarBase{baseType: baseType},
	}
	ctx.initBase(&t.typeBase, t, TypeKindUncheckedOptional, baseType.RecursiveProperties())
	return t
}

// NewSubstitutedType returns a fresh sugar type recording that
// original was replaced by replacement during substitution.
func (ctx *Context) NewSubstitutedType(original, replacement Type) *SubstitutedType {
	t := &SubstitutedType{
		originalType:    original,
		replacementType: replacement,
	}
	ctx.initBase(&t.typeBase, t, TypeKindSubstituted, replacement.RecursiveProperties())
	return t
}

// boundLibraryType expands syntax sugar to the library type it
// stands for. Sugar cannot be desugared before the corresponding
// library declaration is configured.
func (ctx *Context) boundLibraryType(
	declaration decl.NominalDeclaration,
	sugarName string,
	baseType Type,
) Type {
	if declaration == nil {
		panic(errors.NewUnexpectedError(
			"cannot desugar %s type: library declaration not configured",
			sugarName,
		))
	}
	return ctx.NewBoundGenericType(declaration, nil, []Type{baseType})
}

// LValue / InOut

// NewLValueType returns the lvalue type over the given object type.
// The node is uniqued when the object type is canonical, so that
// canonical lvalue types are identity-unique.
func (ctx *Context) NewLValueType(objectType Type) *LValueType {
	build := func() *LValueType {
		t := &LValueType{objectType: objectType}
		ctx.initBase(
			&t.typeBase,
			t,
			TypeKindLValue,
			objectType.RecursiveProperties().Union(PropertyNotMaterializable),
		)
		if objectType.IsCanonical() {
			markCanonical(t)
		}
		return t
	}

	if !objectType.IsCanonical() {
		return build()
	}
	key := "lvalue:" + strconv.FormatUint(serialOf(objectType), 10)
	return internType(ctx, key, build)
}

// NewInOutType returns the inout type over the given object type.
// Uniqued like lvalue types.
func (ctx *Context) NewInOutType(objectType Type) *InOutType {
	build := func() *InOutType {
		t := &InOutType{objectType: objectType}
		ctx.initBase(
			&t.typeBase,
			t,
			TypeKindInOut,
			objectType.RecursiveProperties().Union(PropertyNotMaterializable),
		)
		if objectType.IsCanonical() {
			markCanonical(t)
		}
		return t
	}

	if !objectType.IsCanonical() {
		return build()
	}
	key := "inout:" + strconv.FormatUint(serialOf(objectType), 10)
	return internType(ctx, key, build)
}

// Reference storage

func (ctx *Context) NewReferenceStorageType(
	referentType Type,
	ownership Ownership,
) *ReferenceStorageType {
	var sb strings.Builder
	sb.WriteString("refstorage:")
	sb.WriteString(strconv.FormatUint(serialOf(referentType), 10))
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(int(ownership)))

	return internType(ctx, sb.String(), func() *ReferenceStorageType {
		t := &ReferenceStorageType{
			referentType: referentType,
			ownership:    ownership,
		}
		ctx.initBase(&t.typeBase, t, TypeKindReferenceStorage, referentType.RecursiveProperties())
		if referentType.IsCanonical() {
			markCanonical(t)
		}
		return t
	})
}

// Generic parameters, associated types, dependent members

// NewGenericParamType returns the canonical generic parameter type
// with the given depth and index.
func (ctx *Context) NewGenericParamType(depth, index uint32) *GenericParamType {
	var sb strings.Builder
	sb.WriteString("genericparam:")
	sb.WriteString(strconv.FormatUint(uint64(depth), 10))
	sb.WriteByte(':')
	sb.WriteString(strconv.FormatUint(uint64(index), 10))

	return internType(ctx, sb.String(), func() *GenericParamType {
		t := &GenericParamType{
			depth: depth,
			index: index,
		}
		ctx.initBase(&t.typeBase, t, TypeKindGenericParam, PropertyIsDependent)
		markCanonical(t)
		return t
	})
}

// NewGenericParamTypeForDeclaration returns the generic parameter type
// referring to the given declaration. The declaration-backed form is
// not canonical: it canonicalizes to the (depth, index) form.
func (ctx *Context) NewGenericParamTypeForDeclaration(
	declaration decl.GenericParameterDeclaration,
) *GenericParamType {
	key := "genericparamdecl:" +
		strconv.FormatUint(uint64(declaration.DeclarationID()), 10)

	return internType(ctx, key, func() *GenericParamType {
		t := &GenericParamType{
			declaration: declaration,
			depth:       declaration.Depth(),
			index:       declaration.Index(),
		}
		ctx.initBase(&t.typeBase, t, TypeKindGenericParam, PropertyIsDependent)
		return t
	})
}

func (ctx *Context) NewAssociatedTypeType(
	declaration decl.AssociatedTypeDeclaration,
) *AssociatedTypeType {
	key := "assoctype:" +
		strconv.FormatUint(uint64(declaration.DeclarationID()), 10)

	return internType(ctx, key, func() *AssociatedTypeType {
		t := &AssociatedTypeType{declaration: declaration}
		ctx.initBase(&t.typeBase, t, TypeKindAssociatedType, PropertyIsDependent)
		markCanonical(t)
		return t
	})
}

// NewDependentMemberType returns the member type of the given dependent
// base type with the given name.
func (ctx *Context) NewDependentMemberType(baseType Type, name string) *DependentMemberType {
	return ctx.NewDependentMemberTypeWithDeclaration(baseType, name, nil)
}

// NewDependentMemberTypeWithDeclaration is NewDependentMemberType with
// the associated type declaration the member resolves through, if known.
func (ctx *Context) NewDependentMemberTypeWithDeclaration(
	baseType Type,
	name string,
	declaration decl.AssociatedTypeDeclaration,
) *DependentMemberType {
	var declarationID uint64
	if declaration != nil {
		declarationID = uint64(declaration.DeclarationID())
	}

	var sb strings.Builder
	sb.WriteString("depmember:")
	sb.WriteString(strconv.FormatUint(serialOf(baseType), 10))
	sb.WriteByte(':')
	sb.WriteString(strconv.Quote(name))
	sb.WriteByte(':')
	sb.WriteString(strconv.FormatUint(declarationID, 10))

	return internType(ctx, sb.String(), func() *DependentMemberType {
		t := &DependentMemberType{
			baseType:    baseType,
			name:        name,
			declaration: declaration,
		}
		ctx.initBase(
			&t.typeBase,
			t,
			TypeKindDependentMember,
			baseType.RecursiveProperties().Union(PropertyIsDependent),
		)
		if baseType.IsCanonical() {
			markCanonical(t)
		}
		return t
	})
}

// Type variables

// NewTypeVariable returns a fresh type variable with the given solver
// identity and opaque solver state. Type variables are never uniqued:
// the solver owns their identity.
func (ctx *Context) NewTypeVariable(id uint64, solverState any) *TypeVariableType {
	t := &TypeVariableType{
		id:          id,
		solverState: solverState,
	}
	ctx.initBase(&t.typeBase, t, TypeKindTypeVariable, PropertyHasTypeVariable)
	markCanonical(t)
	return t
}

// Archetypes

func (ctx *Context) newArchetype(a *ArchetypeType) *ArchetypeType {
	ctx.initBase(&a.typeBase, a, TypeKindArchetype, 0)
	markCanonical(a)
	return a
}

// NewPrimaryArchetype returns a fresh primary archetype for the generic
// parameter with the given zero-based index within its generic context.
// The conformance list is minimized and sorted.
func (ctx *Context) NewPrimaryArchetype(
	index uint32,
	name string,
	conformsTo []decl.ProtocolDeclaration,
	superclass Type,
) *ArchetypeType {
	return ctx.newArchetype(&ArchetypeType{
		name:       name,
		indexOrID:  uint64(index),
		conformsTo: ctx.minimizeConformances(conformsTo),
		superclass: superclass,
	})
}

// NewSelfArchetype returns a fresh archetype describing the `Self`
// parameter of the given protocol.
func (ctx *Context) NewSelfArchetype(
	protocol decl.ProtocolDeclaration,
	superclass Type,
) *ArchetypeType {
	return ctx.newArchetype(&ArchetypeType{
		name:       "Self",
		selfProto:  protocol,
		conformsTo: ctx.minimizeConformances([]decl.ProtocolDeclaration{protocol}),
		superclass: superclass,
	})
}

// NewNestedArchetype returns a fresh archetype for an associated type
// of the given parent archetype. The conformance list is minimized
// and sorted.
func (ctx *Context) NewNestedArchetype(
	parent *ArchetypeType,
	associated decl.AssociatedTypeDeclaration,
	name string,
	conformsTo []decl.ProtocolDeclaration,
	superclass Type,
) *ArchetypeType {
	if parent == nil {
		panic(errors.NewUnexpectedError("nested archetype requires a parent"))
	}
	return ctx.newArchetype(&ArchetypeType{
		parent:     parent,
		associated: associated,
		name:       name,
		conformsTo: ctx.minimizeConformances(conformsTo),
		superclass: superclass,
	})
}

// NewOpenedArchetype returns a fresh archetype representing the opened
// type of an existential value. When knownID is nil, a Context-unique
// ID is assigned. The archetype's conformances are the existential's.
func (ctx *Context) NewOpenedArchetype(existential Type, knownID *uint64) *ArchetypeType {
	var declarations []decl.ProtocolDeclaration
	collectProtocolDeclarations(existential.CanonicalType(), &declarations)

	var id uint64
	if knownID != nil {
		id = *knownID
		if id >= ctx.nextOpenedID {
			ctx.nextOpenedID = id + 1
		}
	} else {
		id = ctx.nextOpenedID
		ctx.nextOpenedID++
	}

	return ctx.newArchetype(&ArchetypeType{
		opened:     existential,
		indexOrID:  id,
		conformsTo: ctx.minimizeConformances(declarations),
		superclass: nil,
	})
}
