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

// DefaultArgumentKind records whether a tuple field has
// a default argument.
type DefaultArgumentKind uint8

const (
	DefaultArgumentNone DefaultArgumentKind = iota
	DefaultArgumentNormal
)

// TupleTypeField is one element of a tuple type.
type TupleTypeField struct {
	Type    Type
	Label   string
	Vararg  bool
	Default DefaultArgumentKind
}

// IsPlain returns true if the field has no label, is not variadic,
// and has no default argument. A one-field tuple of a plain field
// is degenerate: it is represented as a ParenType instead.
func (f TupleTypeField) IsPlain() bool {
	return f.Label == "" &&
		!f.Vararg &&
		f.Default == DefaultArgumentNone
}

// TupleType is an ordered sequence of fields,
// each with an optional label, vararg flag, and default-argument kind.
//
// A tuple of exactly one plain field is never constructed:
// the factory returns a ParenType over the field's type instead.
type TupleType struct {
	typeBase
	fields []TupleTypeField
}

var _ Type = &TupleType{}

func (t *TupleType) Fields() []TupleTypeField {
	return t.fields
}

func (t *TupleType) NumFields() int {
	return len(t.fields)
}

func (t *TupleType) Field(index int) TupleTypeField {
	return t.fields[index]
}

// FieldIndex returns the index of the field with the given label,
// or -1 if there is none.
func (t *TupleType) FieldIndex(label string) int {
	if label == "" {
		return -1
	}
	for i, field := range t.fields {
		if field.Label == label {
			return i
		}
	}
	return -1
}

// ParenType is a parenthesized type. It is sugar for its inner type,
// and exists to keep one-element tuple types unambiguous.
type ParenType struct {
	typeBase
	innerType Type
}

var _ SugaredType = &ParenType{}

func (t *ParenType) InnerType() Type {
	return t.innerType
}

func (t *ParenType) DesugaredType() Type {
	return t.innerType
}
