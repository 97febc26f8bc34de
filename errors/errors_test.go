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

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnreachableError(t *testing.T) {

	t.Parallel()

	err := NewUnreachableError()
	require.NotEmpty(t, err.Stack)
	assert.Contains(t, err.Error(), "unreachable")
}

func TestIsInternalError(t *testing.T) {

	t.Parallel()

	t.Run("direct", func(t *testing.T) {
		assert.True(t, IsInternalError(NewUnexpectedError("test")))
		assert.True(t, IsInternalError(NewUnreachableError()))
	})

	t.Run("wrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("outer: %w", NewUnexpectedError("inner"))
		assert.True(t, IsInternalError(wrapped))
	})

	t.Run("not internal", func(t *testing.T) {
		assert.False(t, IsInternalError(fmt.Errorf("plain")))
		assert.False(t, IsInternalError(NewDefaultUserError("user")))
	})
}

func TestIsUserError(t *testing.T) {

	t.Parallel()

	t.Run("direct", func(t *testing.T) {
		assert.True(t, IsUserError(NewDefaultUserError("test")))
	})

	t.Run("wrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("outer: %w", NewDefaultUserError("inner"))
		assert.True(t, IsUserError(wrapped))
	})

	t.Run("not user", func(t *testing.T) {
		assert.False(t, IsUserError(fmt.Errorf("plain")))
		assert.False(t, IsUserError(NewUnexpectedError("internal")))
	})
}

func TestUnexpectedError_cause(t *testing.T) {

	t.Parallel()

	cause := fmt.Errorf("cause")
	err := NewUnexpectedErrorFromCause(cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "cause", err.Error())
}
