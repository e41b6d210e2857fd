package identifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Café  Table!!", "caf-table"},
		{"Red Mug", "red-mug"},
		{"  --Hello__World--  ", "helloworld"},
		{"snake_case name", "snakecase-name"},
		{"Linen Table Runner", "linen-table-runner"},
		{"100% Organic Cotton", "100-organic-cotton"},
		{"a - b", "a-b"},
		{"!!!", ""},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}

func TestSlugify_OutputShape(t *testing.T) {
	for _, in := range []string{"Café  Table!!", "  Mixed CASE, punctuation; here ", "tabs\tand\nnewlines"} {
		got := Slugify(in)
		assert.Regexp(t, `^[a-z0-9]+(-[a-z0-9]+)*$`, got)
		assert.Equal(t, got, Slugify(in))
	}
}

func TestSlugCandidate(t *testing.T) {
	assert.Equal(t, "red-mug", SlugCandidate("red-mug", 0))
	assert.Equal(t, "red-mug-1", SlugCandidate("red-mug", 1))
	assert.Equal(t, "red-mug-12", SlugCandidate("red-mug", 12))
}

func TestResolveSlug_ProbesSequentially(t *testing.T) {
	taken := map[string]bool{"red-mug": true, "red-mug-1": true}
	var probed []string

	got, err := ResolveSlug(context.Background(), "red-mug", func(_ context.Context, s string) (bool, error) {
		probed = append(probed, s)
		return taken[s], nil
	})

	require.NoError(t, err)
	assert.Equal(t, "red-mug-2", got)
	assert.Equal(t, []string{"red-mug", "red-mug-1", "red-mug-2"}, probed)
}

func TestResolveSlug_PropagatesStoreError(t *testing.T) {
	boom := errors.New("db down")
	_, err := ResolveSlug(context.Background(), "x", func(context.Context, string) (bool, error) {
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestResolveSlug_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ResolveSlug(ctx, "x", func(context.Context, string) (bool, error) {
		return true, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
