package partials

import (
	"fmt"
	"time"

	"color_robotics_site/services/contactform"
)

// fieldClass returns the input classes, highlighting fields with an error
func fieldClass(hasErr bool) string {
	if hasErr {
		return "form-input form-input--error"
	}
	return "form-input"
}

// errorID links an input to its inline error for screen readers
func errorID(f contactform.Field) string {
	return string(f) + "-error"
}

// pollTrigger builds the hx-trigger that fires once after d
func pollTrigger(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("load delay:%dms", ms)
}
