package scroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	darkGreen   = RGB{29, 103, 103}
	darkerGreen = RGB{11, 52, 52}
)

func TestFactor(t *testing.T) {
	assert.Equal(t, 0.0, Factor(0, 3000, 1000))
	assert.Equal(t, 0.5, Factor(1000, 3000, 1000))
	assert.Equal(t, 1.0, Factor(2000, 3000, 1000))
	assert.Equal(t, 1.0, Factor(2500, 3000, 1000), "overscroll is clamped")
	assert.Equal(t, 0.0, Factor(-40, 3000, 1000), "rubber band is clamped")
	assert.Equal(t, 0.0, Factor(10, 800, 1000), "page shorter than viewport")
}

func TestColorAt(t *testing.T) {
	assert.Equal(t, darkGreen, ColorAt(darkGreen, darkerGreen, 0))
	assert.Equal(t, darkerGreen, ColorAt(darkGreen, darkerGreen, 1))
	// 29 + (11-29)*0.5 = 20, 103 + (52-103)*0.5 = 77.5 -> 78
	assert.Equal(t, RGB{20, 78, 78}, ColorAt(darkGreen, darkerGreen, 0.5))
	assert.Equal(t, darkerGreen, ColorAt(darkGreen, darkerGreen, 3))
}

func TestRoundHalfUpMatchesMathRound(t *testing.T) {
	assert.Equal(t, 78, roundHalfUp(77.5))
	assert.Equal(t, -2, roundHalfUp(-2.5))
	assert.Equal(t, 3, roundHalfUp(2.5))
	assert.Equal(t, 2, roundHalfUp(2.49))
}

func TestGradient(t *testing.T) {
	stops := Gradient(darkGreen, darkerGreen, 3)
	require.Len(t, stops, 3)
	assert.Equal(t, darkGreen, stops[0])
	assert.Equal(t, RGB{20, 78, 78}, stops[1])
	assert.Equal(t, darkerGreen, stops[2])

	assert.Equal(t, []RGB{darkGreen}, Gradient(darkGreen, darkerGreen, 1))
	assert.Equal(t,
		"linear-gradient(to bottom,rgb(29,103,103),rgb(11,52,52))",
		LinearGradientCSS(Gradient(darkGreen, darkerGreen, 2)))
}

func TestParseCSS(t *testing.T) {
	c, err := ParseCSS("rgb(29, 103, 103)")
	require.NoError(t, err)
	assert.Equal(t, darkGreen, c)

	c, err = ParseCSS("#1d6767")
	require.NoError(t, err)
	assert.Equal(t, darkGreen, c)

	for _, bad := range []string{"", "red", "rgb(1,2)", "rgb(1,2,300)", "#12345g", "rgb(a,b,c)"} {
		_, err := ParseCSS(bad)
		assert.Error(t, err, bad)
	}

	assert.Equal(t, "rgb(29,103,103)", darkGreen.CSS())
}

func TestNavAndReveal(t *testing.T) {
	assert.False(t, NavScrolled(50))
	assert.True(t, NavScrolled(51))

	assert.Equal(t, time.Duration(0), RevealDelay(0))
	assert.Equal(t, 600*time.Millisecond, RevealDelay(3))
	assert.Equal(t, time.Duration(0), RevealDelay(-1))

	assert.True(t, InViewport(100, 200, 800))
	assert.True(t, InViewport(-100, 0, 800))
	assert.False(t, InViewport(800, 900, 800))
	assert.False(t, InViewport(-300, -1, 800))
}

func TestAnchorTarget(t *testing.T) {
	assert.Equal(t, 1436.0, AnchorTarget(500, 1000, 64))
}
