// Package scroll computes the scroll-driven page effects: the background
// color blend, the navigation bar state and the staggered reveal timing.
// The browser script applies the same formulas with the values rendered here.
package scroll

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// NavScrollThreshold is the scroll offset after which the nav bar turns solid
	NavScrollThreshold = 50
	// RevealStagger is the delay between consecutive reveal items
	RevealStagger = 200 * time.Millisecond
)

// RGB is an 8-bit color
type RGB [3]int

// CSS renders the color as rgb(r,g,b)
func (c RGB) CSS() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c[0], c[1], c[2])
}

// Valid reports whether every channel is within 0..255
func (c RGB) Valid() bool {
	for _, ch := range c {
		if ch < 0 || ch > 255 {
			return false
		}
	}
	return true
}

// ParseCSS reads a color in rgb(r,g,b) or #rrggbb notation
func ParseCSS(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		var c RGB
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseUint(s[1+2*i:3+2*i], 16, 8)
			if err != nil {
				return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
			}
			c[i] = int(v)
		}
		return c, nil
	}

	inner, ok := strings.CutPrefix(s, "rgb(")
	if !ok || !strings.HasSuffix(inner, ")") {
		return RGB{}, fmt.Errorf("unsupported color %q", s)
	}
	parts := strings.Split(strings.TrimSuffix(inner, ")"), ",")
	if len(parts) != 3 {
		return RGB{}, fmt.Errorf("unsupported color %q", s)
	}
	var c RGB
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return RGB{}, fmt.Errorf("invalid channel in %q: %w", s, err)
		}
		c[i] = v
	}
	if !c.Valid() {
		return RGB{}, fmt.Errorf("channel out of range in %q", s)
	}
	return c, nil
}

// Factor returns how far the page is scrolled, from 0 at the top to 1 at the bottom
func Factor(scrollY, scrollHeight, viewportHeight float64) float64 {
	total := scrollHeight - viewportHeight
	if total <= 0 {
		return 0
	}
	return clamp01(scrollY / total)
}

// Lerp interpolates linearly between start and end
func Lerp(start, end, t float64) float64 {
	return start + (end-start)*t
}

// ColorAt blends start into end by t, rounding each channel like Math.round
func ColorAt(start, end RGB, t float64) RGB {
	t = clamp01(t)
	var out RGB
	for i := range out {
		out[i] = roundHalfUp(Lerp(float64(start[i]), float64(end[i]), t))
	}
	return out
}

// Gradient returns steps evenly spaced colors from start to end inclusive
func Gradient(start, end RGB, steps int) []RGB {
	if steps < 2 {
		return []RGB{start}
	}
	out := make([]RGB, steps)
	for i := range out {
		out[i] = ColorAt(start, end, float64(i)/float64(steps-1))
	}
	return out
}

// LinearGradientCSS renders the stops as a vertical CSS gradient
func LinearGradientCSS(stops []RGB) string {
	parts := make([]string, len(stops))
	for i, s := range stops {
		parts[i] = s.CSS()
	}
	return "linear-gradient(to bottom," + strings.Join(parts, ",") + ")"
}

// NavScrolled reports whether the nav bar should switch to its scrolled style
func NavScrolled(scrollY float64) bool {
	return scrollY > NavScrollThreshold
}

// RevealDelay is the delay before the index-th reveal item becomes visible
func RevealDelay(index int) time.Duration {
	if index < 0 {
		return 0
	}
	return time.Duration(index) * RevealStagger
}

// InViewport reports whether an element's box intersects the viewport
func InViewport(top, bottom, viewportHeight float64) bool {
	return top < viewportHeight && bottom >= 0
}

// AnchorTarget returns the scroll position that puts an element just below the fixed nav bar
func AnchorTarget(elementTop, pageYOffset, navbarHeight float64) float64 {
	return elementTop + pageYOffset - navbarHeight
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// roundHalfUp matches JavaScript Math.round, which rounds .5 toward +Inf
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
