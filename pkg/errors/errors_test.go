package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapAndCode(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap("upstream_unavailable", "leetcode request failed", cause)

	require.EqualError(t, err, "leetcode request failed: boom")
	require.True(t, IsCode(err, "upstream_unavailable"))
	require.False(t, IsCode(err, "user_not_found"))
	require.ErrorIs(t, err, cause)
	require.Equal(t, "leetcode request failed", MessageOf(err))
}

func TestCodeOfWrappedChain(t *testing.T) {
	err := fmt.Errorf("resolve: %w", Wrap("user_not_found", "no such user", nil))
	require.Equal(t, "user_not_found", CodeOf(err))
	require.Equal(t, "no such user", MessageOf(err))
}

func TestCodeOfForeignError(t *testing.T) {
	err := errors.New("plain")
	require.Empty(t, CodeOf(err))
	require.False(t, IsCode(err, ""))
	require.Equal(t, "plain", MessageOf(err))
	require.Empty(t, MessageOf(nil))
}
