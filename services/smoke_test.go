package services

import (
	"testing"

	"color_robotics_site/services/scroll"

	"github.com/stretchr/testify/assert"
)

func TestSmokeResult_OK(t *testing.T) {
	green := scroll.RGB{20, 78, 78}
	result := &SmokeResult{
		BackgroundColor:  green,
		ExpectedColor:    green,
		AnchorExpected:   640,
		AnchorScrollY:    641,
		InlineErrorShown: true,
		PostedTo:         []string{"http://localhost:8080/contact/color-robotics"},
		Succeeded:        true,
	}
	assert.True(t, result.OK())

	result.BackgroundColor = scroll.RGB{29, 103, 103}
	assert.False(t, result.OK())

	result.BackgroundColor = green
	result.AnchorScrollY = 0
	assert.False(t, result.OK())

	result.AnchorScrollY = 640
	result.PostedTo = nil
	assert.False(t, result.OK())
}

func TestExpectedAnchorScroll(t *testing.T) {
	tests := []struct {
		name string
		m    anchorMetrics
		want float64
	}{
		{"below navbar", anchorMetrics{TargetTop: 900, ScrollY: 0, NavbarHeight: 72, MaxScroll: 3000}, 828},
		{"already scrolled", anchorMetrics{TargetTop: 100, ScrollY: 500, NavbarHeight: 72, MaxScroll: 3000}, 528},
		{"clamped to page end", anchorMetrics{TargetTop: 2900, ScrollY: 0, NavbarHeight: 72, MaxScroll: 2400}, 2400},
		{"clamped to top", anchorMetrics{TargetTop: 20, ScrollY: 0, NavbarHeight: 72, MaxScroll: 2400}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expectedAnchorScroll(tt.m))
		})
	}
}
