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

// MetatypeRepresentation is the lowered representation of a metatype
// value, assigned during lowering. Surface metatypes have no
// representation.
type MetatypeRepresentation uint8

const (
	// MetatypeRepresentationUnspecified: the representation has not
	// been assigned yet.
	MetatypeRepresentationUnspecified MetatypeRepresentation = iota

	// MetatypeRepresentationThin: the type has a singleton metatype
	// and the value needs no storage.
	MetatypeRepresentationThin

	// MetatypeRepresentationThick: the value is a type object pointer.
	MetatypeRepresentationThick

	// MetatypeRepresentationObjC: the value is an Objective-C
	// class object.
	MetatypeRepresentationObjC
)

func (r MetatypeRepresentation) Name() string {
	switch r {
	case MetatypeRepresentationUnspecified:
		return "unspecified"
	case MetatypeRepresentationThin:
		return "thin"
	case MetatypeRepresentationThick:
		return "thick"
	case MetatypeRepresentationObjC:
		return "objc"
	}

	panic(errors.NewUnreachableError())
}

// anyMetatypeBase is the common payload of the two metatype shapes.
type anyMetatypeBase struct {
	typeBase
	instanceType   Type
	representation MetatypeRepresentation
}

func (t *anyMetatypeBase) InstanceType() Type {
	return t.instanceType
}

func (t *anyMetatypeBase) HasRepresentation() bool {
	return t.representation != MetatypeRepresentationUnspecified
}

// Representation returns the assigned lowered representation.
// Calling it on a metatype without one is an invariant violation.
func (t *anyMetatypeBase) Representation() MetatypeRepresentation {
	if t.representation == MetatypeRepresentationUnspecified {
		panic(errors.NewUnexpectedError("metatype has no representation"))
	}
	return t.representation
}

// AnyMetatypeType is implemented by MetatypeType and
// ExistentialMetatypeType.
type AnyMetatypeType interface {
	Type
	InstanceType() Type
	HasRepresentation() bool
	Representation() MetatypeRepresentation
}

// MetatypeType is the type of a reference to a specific type:
// the instance type is exactly the referenced type.
type MetatypeType struct {
	anyMetatypeBase
}

var _ AnyMetatypeType = &MetatypeType{}

// ExistentialMetatypeType is the type of an existential's metatype:
// the value is the metatype of some type satisfying the existential's
// constraints, not of the existential itself.
type ExistentialMetatypeType struct {
	anyMetatypeBase
}

var _ AnyMetatypeType = &ExistentialMetatypeType{}
