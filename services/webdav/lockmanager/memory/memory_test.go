package memory

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLock(t *testing.T) {
	m := New(time.Minute)
	lock, err := m.Lock("a/b.txt")
	require.Nil(t, err)
	require.True(t, strings.HasPrefix(lock.Token, "opaquelocktoken:"))
	require.Equal(t, "a/b.txt", lock.Path)
	require.Equal(t, time.Minute, lock.Timeout)
}

func TestLock_relockReturnsSameToken(t *testing.T) {
	m := New(time.Minute)
	first, err := m.Lock("a/b.txt")
	require.Nil(t, err)
	second, err := m.Lock("a/b.txt")
	require.Nil(t, err)
	require.Equal(t, first.Token, second.Token)
}

func TestLock_distinctPathsGetDistinctTokens(t *testing.T) {
	m := New(time.Minute)
	first, err := m.Lock("a.txt")
	require.Nil(t, err)
	second, err := m.Lock("b.txt")
	require.Nil(t, err)
	require.NotEqual(t, first.Token, second.Token)
}

func TestRefresh(t *testing.T) {
	m := New(time.Minute)
	lock, err := m.Lock("a.txt")
	require.Nil(t, err)

	refreshed, err := m.Refresh("a.txt", lock.Token)
	require.Nil(t, err)
	require.Equal(t, lock.Token, refreshed.Token)
}

func TestRefresh_withUnknownToken(t *testing.T) {
	m := New(time.Minute)
	_, err := m.Lock("a.txt")
	require.Nil(t, err)

	// a mismatched token is granted a fresh lock instead of failing
	refreshed, err := m.Refresh("a.txt", "opaquelocktoken:other")
	require.Nil(t, err)
	require.NotNil(t, refreshed)
}

func TestUnlock(t *testing.T) {
	m := New(time.Minute)
	first, err := m.Lock("a.txt")
	require.Nil(t, err)

	require.Nil(t, m.Unlock("a.txt", first.Token))

	// the path is free again so a new token is minted
	second, err := m.Lock("a.txt")
	require.Nil(t, err)
	require.NotEqual(t, first.Token, second.Token)
}

func TestUnlock_withBogusToken(t *testing.T) {
	m := New(time.Minute)
	_, err := m.Lock("a.txt")
	require.Nil(t, err)
	require.Nil(t, m.Unlock("a.txt", "bogus"))
}
