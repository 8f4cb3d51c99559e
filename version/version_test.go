/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	v1 := NewVersion(1, 9, 2)
	require.Equal(t, "v1.9.2", v1.String())

	v2 := NewVersion(1, 10, 0)
	require.True(t, v1.IsLess(v2))
	require.True(t, v2.IsGreater(v1))
	require.False(t, v1.IsEqual(v2))

	v3 := NewVersion(1, 9, 2)
	require.True(t, v1.IsEqual(v3))
	require.False(t, v1.IsLess(v3))
	require.False(t, v1.IsGreater(v3))
	require.True(t, v1.IsEqual(v1))
}
