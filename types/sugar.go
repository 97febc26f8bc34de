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

// ArrayType is a fixed-size array type, e.g. `Int[4]`.
// The size is never zero.
type ArrayType struct {
	typeBase
	baseType Type
	size     uint64
}

var _ Type = &ArrayType{}

func (t *ArrayType) BaseType() Type {
	return t.baseType
}

func (t *ArrayType) Size() uint64 {
	return t.size
}

// syntaxSugarBase is the common payload of the library-type sugar shapes:
// the written base type, and the lazily-computed expansion into the
// library type the sugar stands for.
type syntaxSugarBase struct {
	typeBase
	baseType Type
	implType Type
}

func (t *syntaxSugarBase) BaseType() Type {
	return t.baseType
}

// ArraySliceType is sugar for the library slice type, e.g. `Int[]`.
type ArraySliceType struct {
	syntaxSugarBase
}

var _ SugaredType = &ArraySliceType{}

func (t *ArraySliceType) DesugaredType() Type {
	if t.implType == nil {
		t.implType = t.ctx.boundLibraryType(
			t.ctx.libraryDeclarations.ArraySlice,
			"array slice",
			t.baseType,
		)
	}
	return t.implType
}

// OptionalType is sugar for the library optional type, e.g. `Int?`.
type OptionalType struct {
	syntaxSugarBase
}

var _ SugaredType = &OptionalType{}

func (t *OptionalType) DesugaredType() Type {
	if t.implType == nil {
		t.implType = t.ctx.boundLibraryType(
			t.ctx.libraryDeclarations.Optional,
			"optional",
			t.baseType,
		)
	}
	return t.implType
}

// UncheckedOptionalType is sugar for the library implicitly-unwrapped
// optional type, e.g. `Int!`.
type UncheckedOptionalType struct {
	syntaxSugarBase
}

var _ SugaredType = &UncheckedOptionalType{}

func (t *UncheckedOptionalType) DesugaredType() Type {
	if t.implType == nil {
		t.implType = t.ctx.boundLibraryType(
			t.ctx.libraryDeclarations.UncheckedOptional,
			"unchecked optional",
			t.baseType,
		)
	}
	return t.implType
}

// SubstitutedType is sugar recording that a type was produced by
// substitution: it remembers the original type and the replacement.
type SubstitutedType struct {
	typeBase
	originalType    Type
	replacementType Type
}

var _ SugaredType = &SubstitutedType{}

func (t *SubstitutedType) OriginalType() Type {
	return t.originalType
}

func (t *SubstitutedType) ReplacementType() Type {
	return t.replacementType
}

func (t *SubstitutedType) DesugaredType() Type {
	return t.replacementType
}
