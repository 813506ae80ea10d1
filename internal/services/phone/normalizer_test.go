package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	n := New("US")

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"international format", "+1 650-253-0000", "+16502530000"},
		{"national format", "(650) 253-0000", "+16502530000"},
		{"already E.164", "+16502530000", "+16502530000"},
		{"other region", "+44 20 7031 3000", "+442070313000"},
		{"surrounding space", "  +1 650 253 0000 ", "+16502530000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.Normalize(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeRejects(t *testing.T) {
	n := New("US")

	for _, raw := range []string{"", "   ", "not a phone", "123", "+1 000-000-0000"} {
		_, err := n.Normalize(raw)
		assert.ErrorIs(t, err, ErrInvalidPhone, raw)
	}
}

func TestNormalizeUsesRegion(t *testing.T) {
	got, err := New("gb").Normalize("020 7031 3000")
	require.NoError(t, err)
	assert.Equal(t, "+442070313000", got)

	got, err = New("").Normalize("(650) 253-0000")
	require.NoError(t, err)
	assert.Equal(t, "+16502530000", got)
}
