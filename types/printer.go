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

	"github.com/turbolent/prettier"

	"github.com/vela-lang/vela/errors"
)

// PrintOptions control type printing.
type PrintOptions struct {
	// PreserveSugar prints sugared types as written, e.g. `Int?`
	// instead of the library optional type. When false, the canonical
	// form is printed.
	PreserveSugar bool

	// FullyQualified prefixes nominal type names with their module name.
	FullyQualified bool
}

// Printer renders types as source-level type expressions.
type Printer struct {
	options PrintOptions
}

func NewPrinter(options PrintOptions) *Printer {
	return &Printer{options: options}
}

const printerMaxLineWidth = 80

// Print renders the given type to a string.
func (p *Printer) Print(t Type) string {
	var sb strings.Builder
	prettier.Prettier(&sb, p.Doc(t), printerMaxLineWidth, "    ")
	return sb.String()
}

var arrowDoc prettier.Doc = prettier.Text(" -> ")
var typeSeparatorDoc prettier.Doc = prettier.Concat{
	prettier.Text(","),
	prettier.Line{},
}

// Doc returns the prettier document of the given type.
func (p *Printer) Doc(t Type) prettier.Doc {
	if !p.options.PreserveSugar {
		t = t.CanonicalType()
	}

	switch t := t.(type) {
	case *ErrorType:
		return prettier.Text("<<error type>>")

	case *TypeVariableType:
		return prettier.Text("$T" + strconv.FormatUint(t.id, 10))

	case *BuiltinIntegerType:
		if t.width.IsPointerWidth() {
			return prettier.Text("Builtin.Word")
		}
		return prettier.Text(
			"Builtin.Int" +
				strconv.FormatUint(uint64(t.width.GetFixedWidth()), 10),
		)

	case *BuiltinFloatType:
		return prettier.Text(
			"Builtin.Float" +
				strconv.FormatUint(uint64(t.floatKind.BitWidth()), 10),
		)

	case *BuiltinRawPointerType:
		return prettier.Text("Builtin.RawPointer")

	case *BuiltinObjectPointerType:
		return prettier.Text("Builtin.ObjectPointer")

	case *BuiltinObjCPointerType:
		return prettier.Text("Builtin.ObjCPointer")

	case *BuiltinVectorType:
		return prettier.Concat{
			prettier.Text(
				"Builtin.Vec" +
					strconv.FormatUint(uint64(t.count), 10) +
					"x",
			),
			p.Doc(t.elementType),
		}

	case *TupleType:
		return p.tupleDoc(t)

	case *ParenType:
		return prettier.Concat{
			prettier.Text("("),
			p.Doc(t.innerType),
			prettier.Text(")"),
		}

	case *NameAliasType:
		return prettier.Text(p.qualifiedName(
			t.declaration.ModuleName(),
			t.declaration.Name(),
		))

	case *NominalType:
		return p.declarationReferenceDoc(
			t.parent,
			t.declaration.ModuleName(),
			t.declaration.Name(),
		)

	case *UnboundGenericType:
		return p.declarationReferenceDoc(
			t.parent,
			t.declaration.ModuleName(),
			t.declaration.Name(),
		)

	case *BoundGenericType:
		return prettier.Concat{
			p.declarationReferenceDoc(
				t.parent,
				t.declaration.ModuleName(),
				t.declaration.Name(),
			),
			p.typeListDoc("<", ">", t.arguments),
		}

	case *ModuleType:
		return prettier.Text("module<" + t.module.Name() + ">")

	case *DynamicSelfType:
		return prettier.Text("Self")

	case *FunctionType:
		return p.functionDoc(&t.functionTypeBase, nil, nil)

	case *PolymorphicFunctionType:
		return p.functionDoc(&t.functionTypeBase, t.parameters, nil)

	case *GenericFunctionType:
		return p.functionDoc(&t.functionTypeBase, nil, t.signature)

	case *LoweredFunctionType:
		return p.loweredFunctionDoc(t)

	case *ProtocolCompositionType:
		return p.typeListDoc("protocol<", ">", t.members)

	case *MetatypeType:
		if Is[*NominalType](t.instanceType) &&
			Expect[*NominalType](t.instanceType).IsProtocolType() ||
			Is[*ProtocolCompositionType](t.instanceType) {

			return prettier.Concat{
				p.parenthesizedDoc(t.instanceType),
				prettier.Text(".Protocol"),
			}
		}
		return prettier.Concat{
			p.parenthesizedDoc(t.instanceType),
			prettier.Text(".Type"),
		}

	case *ExistentialMetatypeType:
		return prettier.Concat{
			p.parenthesizedDoc(t.instanceType),
			prettier.Text(".Type"),
		}

	case *ArrayType:
		return prettier.Concat{
			p.parenthesizedDoc(t.baseType),
			prettier.Text("[" + strconv.FormatUint(t.size, 10) + "]"),
		}

	case *ArraySliceType:
		return prettier.Concat{
			p.parenthesizedDoc(t.baseType),
			prettier.Text("[]"),
		}

	case *OptionalType:
		return prettier.Concat{
			p.parenthesizedDoc(t.baseType),
			prettier.Text("?"),
		}

	case *UncheckedOptionalType:
		return prettier.Concat{
			p.parenthesizedDoc(t.baseType),
			prettier.Text("!"),
		}

	case *SubstitutedType:
		return p.Doc(t.replacementType)

	case *LValueType:
		return prettier.Concat{
			prettier.Text("@lvalue "),
			p.Doc(t.objectType),
		}

	case *InOutType:
		return prettier.Concat{
			prettier.Text("inout "),
			p.Doc(t.objectType),
		}

	case *ReferenceStorageType:
		return prettier.Concat{
			prettier.Text(t.ownership.Name() + " "),
			p.Doc(t.referentType),
		}

	case *GenericParamType:
		return prettier.Text(t.Name())

	case *AssociatedTypeType:
		return prettier.Text(t.Name())

	case *DependentMemberType:
		return prettier.Concat{
			p.Doc(t.baseType),
			prettier.Text("." + t.name),
		}

	case *ArchetypeType:
		return prettier.Text(t.FullName())
	}

	panic(errors.NewUnexpectedError("cannot print %s type", t.Kind()))
}

// parenthesizedDoc wraps the types whose suffix spellings bind tighter
// than the type's own syntax, e.g. a function type under `?` or `.Type`.
func (p *Printer) parenthesizedDoc(t Type) prettier.Doc {
	doc := p.Doc(t)

	switch StripSugar(t).(type) {
	case *FunctionType,
		*PolymorphicFunctionType,
		*GenericFunctionType,
		*LoweredFunctionType:

		return prettier.Concat{
			prettier.Text("("),
			doc,
			prettier.Text(")"),
		}
	}
	return doc
}

func (p *Printer) qualifiedName(moduleName, name string) string {
	if p.options.FullyQualified && moduleName != "" {
		return moduleName + "." + name
	}
	return name
}

func (p *Printer) declarationReferenceDoc(
	parent Type,
	moduleName string,
	name string,
) prettier.Doc {
	if parent != nil {
		return prettier.Concat{
			p.Doc(parent),
			prettier.Text("." + name),
		}
	}
	return prettier.Text(p.qualifiedName(moduleName, name))
}

func (p *Printer) typeListDoc(opening, closing string, ts []Type) prettier.Doc {
	elements := make([]prettier.Doc, 0, len(ts)*2)
	for i, t := range ts {
		if i > 0 {
			elements = append(elements, typeSeparatorDoc)
		}
		elements = append(elements, p.Doc(t))
	}

	return prettier.Group{
		Doc: prettier.Concat{
			prettier.Text(opening),
			prettier.Indent{
				Doc: prettier.Concat{
					prettier.SoftLine{},
					prettier.Concat(elements),
				},
			},
			prettier.SoftLine{},
			prettier.Text(closing),
		},
	}
}

func (p *Printer) tupleDoc(t *TupleType) prettier.Doc {
	elements := make([]prettier.Doc, 0, len(t.fields)*2)
	for i, field := range t.fields {
		if i > 0 {
			elements = append(elements, typeSeparatorDoc)
		}
		var fieldDoc prettier.Concat
		if field.Label != "" {
			fieldDoc = append(fieldDoc, prettier.Text(field.Label+": "))
		}
		fieldDoc = append(fieldDoc, p.Doc(field.Type))
		if field.Vararg {
			fieldDoc = append(fieldDoc, prettier.Text("..."))
		}
		elements = append(elements, fieldDoc)
	}

	return prettier.Group{
		Doc: prettier.Concat{
			prettier.Text("("),
			prettier.Indent{
				Doc: prettier.Concat{
					prettier.SoftLine{},
					prettier.Concat(elements),
				},
			},
			prettier.SoftLine{},
			prettier.Text(")"),
		},
	}
}

func extInfoAttributesDoc(extInfo ExtInfo) prettier.Concat {
	var doc prettier.Concat
	if convention := extInfo.CallingConvention(); convention != CallingConventionFreestanding {
		doc = append(doc, prettier.Text("@"+convention.Name()+" "))
	}
	if representation := extInfo.Representation(); representation != FunctionRepresentationThick {
		doc = append(doc, prettier.Text("@"+representation.Name()+" "))
	}
	if extInfo.IsAutoClosure() {
		doc = append(doc, prettier.Text("@autoclosure "))
	}
	if extInfo.IsNoReturn() {
		doc = append(doc, prettier.Text("@noreturn "))
	}
	return doc
}

func (p *Printer) functionDoc(
	base *functionTypeBase,
	archetypes []*ArchetypeType,
	signature *GenericSignature,
) prettier.Doc {
	doc := extInfoAttributesDoc(base.extInfo)

	switch {
	case archetypes != nil:
		parameters := make([]prettier.Doc, 0, len(archetypes)*2)
		for i, archetype := range archetypes {
			if i > 0 {
				parameters = append(parameters, typeSeparatorDoc)
			}
			parameters = append(parameters, p.archetypeParameterDoc(archetype))
		}
		doc = append(doc,
			prettier.Text("<"),
			prettier.Concat(parameters),
			prettier.Text("> "),
		)

	case signature != nil:
		doc = append(doc, p.signatureDoc(signature))
	}

	return append(doc,
		p.Doc(base.input),
		arrowDoc,
		p.Doc(base.output),
	)
}

func (p *Printer) archetypeParameterDoc(archetype *ArchetypeType) prettier.Doc {
	doc := prettier.Concat{
		prettier.Text(archetype.Name()),
	}

	if archetype.HasRequirements() {
		doc = append(doc, prettier.Text(" : "))
		first := true
		if superclass := archetype.Superclass(); superclass != nil {
			doc = append(doc, p.Doc(superclass))
			first = false
		}
		for _, protocol := range archetype.ConformsTo() {
			if !first {
				doc = append(doc, prettier.Text(" & "))
			}
			doc = append(doc, prettier.Text(protocol.Name()))
			first = false
		}
	}

	return doc
}

func (p *Printer) signatureDoc(signature *GenericSignature) prettier.Doc {
	var doc prettier.Concat

	doc = append(doc, prettier.Text("<"))
	for i, parameter := range signature.parameters {
		if i > 0 {
			doc = append(doc, typeSeparatorDoc)
		}
		doc = append(doc, p.Doc(parameter))
	}

	if len(signature.requirements) > 0 {
		doc = append(doc, prettier.Text(" where "))
		for i, requirement := range signature.requirements {
			if i > 0 {
				doc = append(doc, typeSeparatorDoc)
			}
			doc = append(doc, p.requirementDoc(requirement))
		}
	}

	return append(doc, prettier.Text("> "))
}

func (p *Printer) requirementDoc(requirement Requirement) prettier.Doc {
	var separator string
	switch requirement.Kind {
	case RequirementConformance,
		RequirementSuperclass:
		separator = " : "
	case RequirementSameType:
		separator = " == "
	default:
		panic(errors.NewUnreachableError())
	}

	return prettier.Concat{
		p.Doc(requirement.Subject),
		prettier.Text(separator),
		p.Doc(requirement.Constraint),
	}
}

func (p *Printer) loweredFunctionDoc(t *LoweredFunctionType) prettier.Doc {
	doc := extInfoAttributesDoc(t.extInfo)

	doc = append(doc, prettier.Text("@callee_"+strings.TrimPrefix(
		t.calleeConvention.Name(), "@",
	)+" "))

	if t.signature != nil {
		doc = append(doc, p.signatureDoc(t.signature))
	}

	parameters := make([]prettier.Doc, 0, len(t.parameters)*2)
	for i, parameter := range t.parameters {
		if i > 0 {
			parameters = append(parameters, typeSeparatorDoc)
		}
		parameters = append(parameters, prettier.Concat{
			prettier.Text(parameter.convention.Name() + " "),
			p.Doc(parameter.typ),
		})
	}

	return append(doc,
		prettier.Group{
			Doc: prettier.Concat{
				prettier.Text("("),
				prettier.Indent{
					Doc: prettier.Concat{
						prettier.SoftLine{},
						prettier.Concat(parameters),
					},
				},
				prettier.SoftLine{},
				prettier.Text(")"),
			},
		},
		arrowDoc,
		prettier.Text(t.result.convention.Name()+" "),
		p.Doc(t.result.typ),
	)
}
