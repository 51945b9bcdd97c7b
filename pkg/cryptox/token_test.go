package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomString(t *testing.T) {
	tests := []struct {
		name   string
		length int
	}{
		{"default length", DefaultStringLength},
		{"single char", 1},
		{"long", 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := RandomString(tt.length)
			require.NoError(t, err)
			require.Len(t, s, tt.length)

			for _, c := range s {
				valid := (c >= 'a' && c <= 'z') ||
					(c >= 'A' && c <= 'Z') ||
					(c >= '0' && c <= '9')
				require.True(t, valid, "unexpected character %q", c)
			}
		})
	}
}

func TestRandomString_InvalidLength(t *testing.T) {
	for _, n := range []int{0, -1} {
		s, err := RandomString(n)
		require.Error(t, err)
		require.Empty(t, s)
	}
}

func TestRandomString_Uniqueness(t *testing.T) {
	const count = 200
	seen := make(map[string]struct{}, count)

	for range count {
		s := MustRandomString(DefaultStringLength)
		require.NotContains(t, seen, s, "duplicate value generated")
		seen[s] = struct{}{}
	}
}

func TestMustRandomString_Panics(t *testing.T) {
	require.Panics(t, func() {
		MustRandomString(0)
	})
}
