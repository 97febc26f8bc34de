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

// RecursiveProperties is the set of structural properties of a type
// that propagate from children to parents.
//
// The properties of a node are computed once, at construction,
// as the union of the properties of its structural children,
// plus the properties the node introduces itself.
type RecursiveProperties uint8

const (
	// PropertyHasTypeVariable is set if the type contains
	// an unresolved type variable of the constraint solver.
	PropertyHasTypeVariable RecursiveProperties = 1 << iota

	// PropertyIsDependent is set if the type depends on
	// a generic parameter or associated type.
	PropertyIsDependent

	// PropertyNotMaterializable is set if the type contains
	// an address-of marker (lvalue or inout) outside of
	// function input position.
	PropertyNotMaterializable
)

// Union returns the union of the two property sets.
func (p RecursiveProperties) Union(other RecursiveProperties) RecursiveProperties {
	return p | other
}

// Without returns the property set with the given properties removed.
func (p RecursiveProperties) Without(other RecursiveProperties) RecursiveProperties {
	return p &^ other
}

// Has returns true if any of the given properties is set.
func (p RecursiveProperties) Has(other RecursiveProperties) bool {
	return p&other != 0
}

func unionProperties(ts ...Type) RecursiveProperties {
	var properties RecursiveProperties
	for _, t := range ts {
		if t == nil {
			continue
		}
		properties = properties.Union(t.RecursiveProperties())
	}
	return properties
}
