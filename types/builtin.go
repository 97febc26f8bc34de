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

// BuiltinIntegerWidth is the width of a builtin integer type:
// either a fixed number of bits, or the abstract width of a pointer
// on the target.
type BuiltinIntegerWidth struct {
	rawValue uint32
}

const pointerWidthRawValue = ^uint32(0)

// FixedWidth returns a fixed integer width of the given number of bits.
func FixedWidth(bitWidth uint32) BuiltinIntegerWidth {
	if bitWidth == pointerWidthRawValue {
		panic(errors.NewUnexpectedError("invalid bit width: %d", bitWidth))
	}
	return BuiltinIntegerWidth{rawValue: bitWidth}
}

// PointerWidth returns the abstract target pointer width.
func PointerWidth() BuiltinIntegerWidth {
	return BuiltinIntegerWidth{rawValue: pointerWidthRawValue}
}

func (w BuiltinIntegerWidth) IsFixedWidth() bool {
	return w.rawValue != pointerWidthRawValue
}

func (w BuiltinIntegerWidth) IsPointerWidth() bool {
	return w.rawValue == pointerWidthRawValue
}

// GetFixedWidth returns the fixed width value.
// Calling it on an abstract width is an invariant violation.
func (w BuiltinIntegerWidth) GetFixedWidth() uint32 {
	if !w.IsFixedWidth() {
		panic(errors.NewUnexpectedError(
			"requested fixed bit width of abstract-width integer",
		))
	}
	return w.rawValue
}

// LeastWidth returns the least number of bits the width can have
// on any supported target.
func (w BuiltinIntegerWidth) LeastWidth() uint32 {
	if w.IsFixedWidth() {
		return w.rawValue
	}
	return 32
}

// GreatestWidth returns the greatest number of bits the width can have
// on any supported target.
func (w BuiltinIntegerWidth) GreatestWidth() uint32 {
	if w.IsFixedWidth() {
		return w.rawValue
	}
	return 64
}

// BuiltinFloatKind identifies a builtin floating-point format.
type BuiltinFloatKind uint8

const (
	BuiltinFloatIEEE16 BuiltinFloatKind = iota
	BuiltinFloatIEEE32
	BuiltinFloatIEEE64
	BuiltinFloatIEEE80
	BuiltinFloatIEEE128
)

// BitWidth returns the size of the format in bits.
func (k BuiltinFloatKind) BitWidth() uint32 {
	switch k {
	case BuiltinFloatIEEE16:
		return 16
	case BuiltinFloatIEEE32:
		return 32
	case BuiltinFloatIEEE64:
		return 64
	case BuiltinFloatIEEE80:
		return 80
	case BuiltinFloatIEEE128:
		return 128
	}

	panic(errors.NewUnreachableError())
}

// BuiltinIntegerType is an integer type of the lowest level of the
// language: a bit width without signedness.
type BuiltinIntegerType struct {
	typeBase
	width BuiltinIntegerWidth
}

var _ Type = &BuiltinIntegerType{}

func (t *BuiltinIntegerType) Width() BuiltinIntegerWidth {
	return t.width
}

// BuiltinFloatType is a floating-point type of the lowest level
// of the language.
type BuiltinFloatType struct {
	typeBase
	floatKind BuiltinFloatKind
}

var _ Type = &BuiltinFloatType{}

func (t *BuiltinFloatType) FloatKind() BuiltinFloatKind {
	return t.floatKind
}

// BuiltinRawPointerType is the builtin opaque pointer type.
type BuiltinRawPointerType struct {
	typeBase
}

var _ Type = &BuiltinRawPointerType{}

// BuiltinObjectPointerType is the builtin reference-counted
// object pointer type.
type BuiltinObjectPointerType struct {
	typeBase
}

var _ Type = &BuiltinObjectPointerType{}

// BuiltinObjCPointerType is the builtin Objective-C object pointer type.
type BuiltinObjCPointerType struct {
	typeBase
}

var _ Type = &BuiltinObjCPointerType{}

// BuiltinVectorType is a fixed-length SIMD vector of a builtin
// element type.
type BuiltinVectorType struct {
	typeBase
	elementType Type
	count       uint32
}

var _ Type = &BuiltinVectorType{}

func (t *BuiltinVectorType) ElementType() Type {
	return t.elementType
}

func (t *BuiltinVectorType) Count() uint32 {
	return t.count
}
