package property

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Sunny Loft in Austin", want: "sunny-loft-in-austin"},
		{in: "  Café Déjà Vu!  ", want: "cafe-deja-vu"},
		{in: "3BR / 2BA -- Pool", want: "3br-2ba-pool"},
		{in: "!!!", want: "property"},
		{in: "", want: "property"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestSlugify_Truncates(t *testing.T) {
	slug := Slugify(strings.Repeat("word ", 40))
	require.LessOrEqual(t, len(slug), maxSlugLength)
	require.False(t, strings.HasSuffix(slug, "-"))
}

func TestSlugCandidate(t *testing.T) {
	require.Equal(t, "villa", SlugCandidate("villa", 1))
	require.Equal(t, "villa-2", SlugCandidate("villa", 2))
	require.Equal(t, "villa-10", SlugCandidate("villa", 10))
}

func TestCanEdit(t *testing.T) {
	p := &Property{ID: 1, UserID: 42}
	require.True(t, CanEdit(42, p))
	require.False(t, CanEdit(7, p))
	require.False(t, CanEdit(0, &Property{}))
	require.False(t, CanEdit(42, nil))
}
