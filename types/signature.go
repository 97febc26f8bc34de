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

	"github.com/vela-lang/vela/errors"
)

// RequirementKind is the kind of a generic requirement.
type RequirementKind uint8

const (
	// RequirementConformance requires the subject to conform
	// to the constraint protocol (or protocol composition).
	RequirementConformance RequirementKind = iota

	// RequirementSuperclass requires the subject to be a subclass
	// of the constraint class.
	RequirementSuperclass

	// RequirementSameType requires the subject and constraint
	// to be the same type.
	RequirementSameType
)

func (k RequirementKind) Name() string {
	switch k {
	case RequirementConformance:
		return "conformance"
	case RequirementSuperclass:
		return "superclass"
	case RequirementSameType:
		return "same type"
	}

	panic(errors.NewUnreachableError())
}

// Requirement is one constraint of a generic signature.
type Requirement struct {
	Kind       RequirementKind
	Subject    Type
	Constraint Type
}

// GenericSignature is an ordered list of generic parameters
// together with the requirements on them.
//
// Signatures are constructed by the declaration layer and passed
// opaquely into generic and lowered function types.
type GenericSignature struct {
	parameters   []*GenericParamType
	requirements []Requirement
}

func NewGenericSignature(
	parameters []*GenericParamType,
	requirements []Requirement,
) *GenericSignature {
	return &GenericSignature{
		parameters:   parameters,
		requirements: requirements,
	}
}

func (s *GenericSignature) Parameters() []*GenericParamType {
	return s.parameters
}

func (s *GenericSignature) Requirements() []Requirement {
	return s.requirements
}

// structuralKey returns a deterministic key for the signature's content,
// used when interning function types that carry it.
func (s *GenericSignature) structuralKey() string {
	if s == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteByte('<')
	for i, parameter := range s.parameters {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(parameter.base().serial, 10))
	}
	sb.WriteByte(';')
	for i, requirement := range s.requirements {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(requirement.Kind)))
		sb.WriteByte(':')
		sb.WriteString(strconv.FormatUint(requirement.Subject.base().serial, 10))
		sb.WriteByte(':')
		if requirement.Constraint != nil {
			sb.WriteString(strconv.FormatUint(requirement.Constraint.base().serial, 10))
		}
	}
	sb.WriteByte('>')
	return sb.String()
}
