package webdav

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"", ""},
		{"/", ""},
		{"a.txt", "a.txt"},
		{"/a.txt", "a.txt"},
		{"//a//b.txt", "a/b.txt"},
		{"a/b/", "a/b/"},
		{"///", ""},
		{"a/./b", "a/./b"},
	}
	for _, test := range tests {
		key, err := normalizeKey(test.raw)
		require.Nil(t, err, test.raw)
		require.Equal(t, test.expected, key, test.raw)
	}
}

func TestNormalizeKey_withTraversal(t *testing.T) {
	for _, raw := range []string{"..", "../a", "a/../b", "a/.."} {
		_, err := normalizeKey(raw)
		require.NotNil(t, err, raw)
	}
}

func TestIsTreeKey(t *testing.T) {
	require.True(t, isTreeKey(""))
	require.True(t, isTreeKey("a/"))
	require.True(t, isTreeKey("a/b/"))
	require.False(t, isTreeKey("a"))
	require.False(t, isTreeKey("a/b"))
}

func TestTreeKey(t *testing.T) {
	require.Equal(t, "", treeKey(""))
	require.Equal(t, "a/", treeKey("a"))
	require.Equal(t, "a/", treeKey("a/"))
}
