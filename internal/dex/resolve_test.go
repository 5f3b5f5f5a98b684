package dex

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		token string
		want  Locator
	}{
		{token: "25", want: Locator{Key: "25", Numeric: true}},
		{token: "  25  ", want: Locator{Key: "25", Numeric: true}},
		{token: "007", want: Locator{Key: "007", Numeric: true}},
		{token: "Pikachu", want: Locator{Key: "pikachu"}},
		{token: " MR-MIME ", want: Locator{Key: "mr-mime"}},
		{token: "nan", want: Locator{Key: "nan"}},
		{token: "Inf", want: Locator{Key: "inf"}},
		{token: "25abc", want: Locator{Key: "25abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := Resolve(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveEmpty(t *testing.T) {
	for _, token := range []string{"", " ", "\t\n"} {
		_, err := Resolve(token)
		assert.ErrorIs(t, err, ErrEmptyToken, "token %q", token)
	}
}

func TestLocatorForID(t *testing.T) {
	assert.Equal(t, Locator{Key: "649", Numeric: true}, LocatorForID(649))
	assert.Equal(t, "649", LocatorForID(649).String())
}

// Property-based tests

func TestPropertyNumericTokensResolveVerbatim(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		token := strconv.Itoa(rapid.IntRange(0, 100000).Draw(t, "id"))
		loc, err := Resolve(token)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", token, err)
		}
		if !loc.Numeric || loc.Key != token {
			t.Fatalf("Resolve(%q) = %+v, want verbatim numeric", token, loc)
		}
	})
}

func TestPropertyNameTokensResolveLowercase(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		token := rapid.StringMatching(`[A-Za-z][A-Za-z\-]{0,15}`).Draw(t, "name")
		loc, err := Resolve(token)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", token, err)
		}
		if loc.Numeric || loc.Key != strings.ToLower(token) {
			t.Fatalf("Resolve(%q) = %+v, want lowercase name", token, loc)
		}
	})
}
