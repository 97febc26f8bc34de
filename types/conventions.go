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

// CallingConvention is the abstract calling convention of a function.
type CallingConvention uint8

const (
	// CallingConventionFreestanding is the convention used for calling
	// a normal function.
	CallingConventionFreestanding CallingConvention = iota

	// CallingConventionC is the C freestanding convention.
	CallingConventionC

	// CallingConventionObjCMethod is the Objective-C method convention.
	CallingConventionObjCMethod

	// CallingConventionMethod is the convention used for calling
	// an instance method.
	CallingConventionMethod

	// CallingConventionWitnessMethod is the convention used for calling
	// opaque protocol witnesses. Methods of class-constrained protocols
	// use the normal method convention.
	CallingConventionWitnessMethod
)

func (c CallingConvention) Name() string {
	switch c {
	case CallingConventionFreestanding:
		return "freestanding"
	case CallingConventionC:
		return "cc(c)"
	case CallingConventionObjCMethod:
		return "cc(objc_method)"
	case CallingConventionMethod:
		return "cc(method)"
	case CallingConventionWitnessMethod:
		return "cc(witness_method)"
	}

	panic(errors.NewUnreachableError())
}

// FunctionRepresentation is the representation form of a function value.
type FunctionRepresentation uint8

const (
	// FunctionRepresentationThick is a function that carries a context
	// pointer to reference captured state. The default.
	FunctionRepresentationThick FunctionRepresentation = iota

	// FunctionRepresentationBlock is a thick function represented
	// as an Objective-C block.
	FunctionRepresentationBlock

	// FunctionRepresentationThin is a function that needs no context.
	FunctionRepresentationThin
)

func (r FunctionRepresentation) Name() string {
	switch r {
	case FunctionRepresentationThick:
		return "thick"
	case FunctionRepresentationBlock:
		return "block"
	case FunctionRepresentationThin:
		return "thin"
	}

	panic(errors.NewUnreachableError())
}

// ExtInfo packs the orthogonal properties of a function type into
// a single dense bitfield:
//
//	| convention | representation | auto-closure | no-return |
//	|   0 .. 3   |     4 .. 5     |      6       |     7     |
//
// ExtInfo values are immutable. Use the With* accessors to derive
// modified copies.
type ExtInfo struct {
	bits uint16
}

const (
	extInfoCallingConventionMask uint16 = 0xF
	extInfoRepresentationMask    uint16 = 0x30
	extInfoRepresentationShift          = 4
	extInfoAutoClosureMask       uint16 = 0x40
	extInfoNoReturnMask          uint16 = 0x80
)

// NewExtInfo returns an ExtInfo with the given properties.
func NewExtInfo(
	convention CallingConvention,
	representation FunctionRepresentation,
	isNoReturn bool,
	isAutoClosure bool,
) ExtInfo {
	var bits uint16
	bits = uint16(convention) |
		uint16(representation)<<extInfoRepresentationShift
	if isNoReturn {
		bits |= extInfoNoReturnMask
	}
	if isAutoClosure {
		bits |= extInfoAutoClosureMask
	}
	return ExtInfo{bits: bits}
}

// DefaultExtInfo returns the ExtInfo of a plain function:
// freestanding convention, thick representation, returning,
// not an auto-closure.
func DefaultExtInfo() ExtInfo {
	return ExtInfo{}
}

func (e ExtInfo) CallingConvention() CallingConvention {
	return CallingConvention(e.bits & extInfoCallingConventionMask)
}

func (e ExtInfo) Representation() FunctionRepresentation {
	return FunctionRepresentation(
		(e.bits & extInfoRepresentationMask) >> extInfoRepresentationShift,
	)
}

func (e ExtInfo) IsNoReturn() bool {
	return e.bits&extInfoNoReturnMask != 0
}

func (e ExtInfo) IsAutoClosure() bool {
	return e.bits&extInfoAutoClosureMask != 0
}

// HasContext returns true if the function representation carries
// a context pointer.
func (e ExtInfo) HasContext() bool {
	switch e.Representation() {
	case FunctionRepresentationThick,
		FunctionRepresentationBlock:
		return true
	case FunctionRepresentationThin:
		return false
	}

	panic(errors.NewUnreachableError())
}

func (e ExtInfo) WithCallingConvention(convention CallingConvention) ExtInfo {
	return ExtInfo{
		bits: e.bits&^extInfoCallingConventionMask | uint16(convention),
	}
}

func (e ExtInfo) WithRepresentation(representation FunctionRepresentation) ExtInfo {
	return ExtInfo{
		bits: e.bits&^extInfoRepresentationMask |
			uint16(representation)<<extInfoRepresentationShift,
	}
}

func (e ExtInfo) WithIsNoReturn(isNoReturn bool) ExtInfo {
	if isNoReturn {
		return ExtInfo{bits: e.bits | extInfoNoReturnMask}
	}
	return ExtInfo{bits: e.bits &^ extInfoNoReturnMask}
}

func (e ExtInfo) WithIsAutoClosure(isAutoClosure bool) ExtInfo {
	if isAutoClosure {
		return ExtInfo{bits: e.bits | extInfoAutoClosureMask}
	}
	return ExtInfo{bits: e.bits &^ extInfoAutoClosureMask}
}

// Bits returns the packed bitfield value.
func (e ExtInfo) Bits() uint16 {
	return e.bits
}

// ExtInfoFromBits reconstructs an ExtInfo from a packed bitfield value,
// e.g. one read back from an encoded type.
func ExtInfoFromBits(bits uint16) ExtInfo {
	return ExtInfo{bits: bits}
}

// ParameterConvention is the rule for passing one parameter
// of a lowered function.
type ParameterConvention uint8

const (
	// ParameterConventionIndirectIn passes the address of an object.
	// The callee is responsible for destroying the object.
	ParameterConventionIndirectIn ParameterConvention = iota

	// ParameterConventionIndirectInOut passes the address of an object
	// which is valid on entry and must be valid on exit.
	ParameterConventionIndirectInOut

	// ParameterConventionIndirectOut passes the address of an
	// uninitialized object. The callee is responsible for leaving
	// an initialized object at the address.
	ParameterConventionIndirectOut

	// ParameterConventionDirectOwned passes the value directly.
	// The callee is responsible for destroying it.
	ParameterConventionDirectOwned

	// ParameterConventionDirectUnowned passes the value directly.
	// Its validity is guaranteed only at the instant the call begins.
	ParameterConventionDirectUnowned

	// ParameterConventionDirectGuaranteed passes the value directly.
	// The caller guarantees its validity for the entirety of the call.
	ParameterConventionDirectGuaranteed
)

// IsIndirect returns true if a parameter with the convention
// is passed by address. Derived from the convention value, not stored.
func (c ParameterConvention) IsIndirect() bool {
	return c <= ParameterConventionIndirectOut
}

// IsConsumed returns true if a parameter with the convention
// is consumed by the callee.
func (c ParameterConvention) IsConsumed() bool {
	switch c {
	case ParameterConventionIndirectIn,
		ParameterConventionDirectOwned:
		return true

	case ParameterConventionIndirectInOut,
		ParameterConventionIndirectOut,
		ParameterConventionDirectUnowned,
		ParameterConventionDirectGuaranteed:
		return false
	}

	panic(errors.NewUnreachableError())
}

func (c ParameterConvention) Name() string {
	switch c {
	case ParameterConventionIndirectIn:
		return "@in"
	case ParameterConventionIndirectInOut:
		return "@inout"
	case ParameterConventionIndirectOut:
		return "@out"
	case ParameterConventionDirectOwned:
		return "@owned"
	case ParameterConventionDirectUnowned:
		return "@unowned"
	case ParameterConventionDirectGuaranteed:
		return "@guaranteed"
	}

	panic(errors.NewUnreachableError())
}

// ResultConvention is the rule for returning the direct result
// of a lowered function.
type ResultConvention uint8

const (
	// ResultConventionOwned: the caller is responsible for destroying
	// the returned value.
	ResultConventionOwned ResultConvention = iota

	// ResultConventionUnowned: the returned value is valid at the
	// instant of the return, but further operations may invalidate it.
	ResultConventionUnowned

	// ResultConventionAutoreleased: the returned value has been
	// (or may have been) returned autoreleased.
	ResultConventionAutoreleased
)

func (c ResultConvention) Name() string {
	switch c {
	case ResultConventionOwned:
		return "@owned"
	case ResultConventionUnowned:
		return "@unowned"
	case ResultConventionAutoreleased:
		return "@autoreleased"
	}

	panic(errors.NewUnreachableError())
}

// IsLegalLoweredType returns true if the given type may appear
// in a lowered function's parameter or result list: it must be
// materializable, and any function shape in it must itself be lowered.
func IsLegalLoweredType(t Type) bool {
	t = t.CanonicalType()

	if !t.IsMaterializable() {
		return false
	}

	switch t := t.(type) {
	case *FunctionType,
		*PolymorphicFunctionType,
		*GenericFunctionType:
		return false

	case *TupleType:
		for _, field := range t.Fields() {
			if !IsLegalLoweredType(field.Type) {
				return false
			}
		}
		return true
	}

	return true
}
