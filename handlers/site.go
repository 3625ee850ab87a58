package handlers

import (
	"color_robotics_site/services"
	"color_robotics_site/services/contactform"
	"color_robotics_site/services/variants"
)

// SiteDeps is the shared state of the public handlers, set once at startup
type SiteDeps struct {
	Registry *variants.Registry
	Tracker  *contactform.Tracker
	Relay    *services.FormRelay
	// Clock drives the success delay, the real clock when nil
	Clock contactform.Clock
}

var site SiteDeps

// Configure installs the handler dependencies
func Configure(deps SiteDeps) {
	site = deps
}
