package river

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		cmap   string
		window *Window
		want   string
	}{
		{"no window", "TIC123", "Blues_r", nil, "TIC123_river_Blues_r.png"},
		{"window", "TIC123", "Blues_r", &Window{Min: 10, Max: 50}, "TIC123_river_Blues_r_10_50.png"},
		{"negative window", "star", "heat", &Window{Min: -3, Max: 4}, "star_river_heat_-3_4.png"},
		// decomposed e + combining acute becomes a single precomposed rune
		{"nfc title", "Cafe\u0301", "Greys", nil, "Caf\u00e9_river_Greys.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OutputPath("out", tt.title, tt.cmap, tt.window)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join("out", tt.want), got)
		})
	}
}

func TestOutputPathMissingTitle(t *testing.T) {
	_, err := OutputPath("out", "", "Blues_r", nil)
	assert.ErrorIs(t, err, ErrMissingTitle)
}

func TestParseWindow(t *testing.T) {
	w, err := ParseWindow("10,50")
	require.NoError(t, err)
	assert.Equal(t, &Window{Min: 10, Max: 50}, w)

	w, err = ParseWindow(" 3 : 7 ")
	require.NoError(t, err)
	assert.Equal(t, &Window{Min: 3, Max: 7}, w)

	for _, bad := range []string{"", "10", "a,b", "5,5", "9,1", "1,2,3"} {
		_, err := ParseWindow(bad)
		assert.ErrorIs(t, err, ErrInvalidWindow, bad)
	}
}

func TestWindowContains(t *testing.T) {
	var none *Window
	assert.True(t, none.Contains(100))
	assert.Equal(t, "", none.Suffix())

	w := &Window{Min: 2, Max: 4}
	assert.True(t, w.Contains(2))
	assert.True(t, w.Contains(4))
	assert.False(t, w.Contains(5))
}

func TestClassify(t *testing.T) {
	const s = 20
	tests := []struct {
		n    int
		want FillPolicy
	}{
		{0, PolicyEmpty},
		{s - 6, PolicyEmpty},
		{s - 5, PolicyPadded},
		{s - 1, PolicyPadded},
		{s, PolicyTruncated},
		{s + 4, PolicyTruncated},
	}
	for _, tt := range tests {
		got, err := Classify(tt.n, s)
		require.NoError(t, err, "n=%d", tt.n)
		assert.Equal(t, tt.want, got, "n=%d", tt.n)
	}

	for _, n := range []int{s + 5, s + 10} {
		_, err := Classify(n, s)
		assert.ErrorIs(t, err, ErrOversizedCycle, "n=%d", n)
	}
}

func TestFillPolicyString(t *testing.T) {
	assert.Equal(t, "empty", PolicyEmpty.String())
	assert.Equal(t, "padded", PolicyPadded.String())
	assert.Equal(t, "truncated", PolicyTruncated.String())
	assert.Equal(t, "unknown", FillPolicy(9).String())
}

func TestWindowString(t *testing.T) {
	var none *Window
	assert.Equal(t, "", none.String())

	w := &Window{Min: 10, Max: 50}
	back, err := ParseWindow(w.String())
	require.NoError(t, err)
	assert.Equal(t, w, back)
}
