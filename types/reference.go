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

// Ownership is the ownership attribute of a reference storage type.
type Ownership uint8

const (
	// OwnershipWeak references do not keep the referent alive,
	// and become nil when the referent is destroyed.
	OwnershipWeak Ownership = iota

	// OwnershipUnowned references do not keep the referent alive,
	// and must not outlive it.
	OwnershipUnowned
)

func (o Ownership) Name() string {
	switch o {
	case OwnershipWeak:
		return "weak"
	case OwnershipUnowned:
		return "unowned"
	}

	panic(errors.NewUnreachableError())
}

// ReferenceStorageType is the storage type of a variable with
// a weak or unowned ownership attribute.
type ReferenceStorageType struct {
	typeBase
	referentType Type
	ownership    Ownership
}

var _ Type = &ReferenceStorageType{}

func (t *ReferenceStorageType) ReferentType() Type {
	return t.referentType
}

func (t *ReferenceStorageType) Ownership() Ownership {
	return t.ownership
}

// LValueType marks a type as an address: the object type is usable
// in-place. An lvalue is not materializable outside of function
// input position.
type LValueType struct {
	typeBase
	objectType Type
}

var _ Type = &LValueType{}

func (t *LValueType) ObjectType() Type {
	return t.objectType
}

// InOutType marks a function parameter as passed by address:
// the argument is written back on return.
type InOutType struct {
	typeBase
	objectType Type
}

var _ Type = &InOutType{}

func (t *InOutType) ObjectType() Type {
	return t.objectType
}
