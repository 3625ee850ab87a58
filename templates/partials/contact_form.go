package partials

import (
	"context"
	"io"
	"time"

	"color_robotics_site/middleware"
	"color_robotics_site/services/contactform"
	"color_robotics_site/services/variants"
	"color_robotics_site/templates/components"

	"github.com/a-h/templ"
)

// ContactPanelID is the element the contact form partials are swapped into
const ContactPanelID = "contact-panel"

// ContactFormData is everything the contact form partials render from
type ContactFormData struct {
	Variant *variants.Variant
	// Action is the third-party endpoint the form posts to without JavaScript
	Action string
	// PostURL receives the htmx submission
	PostURL          string
	StatusURL        string
	CSRFToken        string
	TurnstileSiteKey string
	Snapshot         contactform.Snapshot
	// SubmissionID is set for a failed submission so a retry reuses it
	SubmissionID string
	PollDelay    time.Duration
	Notice       string
}

// ContactForm renders the form with the snapshot's values and inline errors
func ContactForm(data ContactFormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := components.NewWriter(out)
		renderForm(w, data, false)
		return w.Err()
	})
}

// ContactSubmitting renders the disabled form and polls the submission status after the delay
func ContactSubmitting(data ContactFormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := components.NewWriter(out)
		renderForm(w, data, true)

		w.Raw(`<div class="visually-hidden" aria-live="polite"`)
		w.Attr("hx-get", data.StatusURL)
		w.Attr("hx-trigger", pollTrigger(data.PollDelay))
		w.Attr("hx-target", "#"+ContactPanelID)
		w.Attr("hx-swap", "innerHTML")
		w.Raw(">")
		w.Text(data.Variant.Form.SubmittingLabel)
		w.Raw("</div>")
		return w.Err()
	})
}

// ContactSuccess is the acknowledgement shown until the page is reloaded
func ContactSuccess(v *variants.Variant) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := components.NewWriter(out)
		w.Raw(`<div class="contact-success" data-contact-success role="status">`)
		w.Raw(`<svg class="contact-success__icon" width="48" height="48" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" aria-hidden="true"><circle cx="12" cy="12" r="10"></circle><path d="m9 12 2 2 4-4"></path></svg>`)
		w.Raw(`<h3 class="contact-success__title">`)
		w.Text(v.Form.SuccessTitle)
		w.Raw(`</h3><p class="contact-success__body">`)
		w.Text(v.Form.SuccessBody)
		w.Raw(`</p>`)
		if v.SchedulingURL != "" {
			w.Raw(`<a class="button button--ghost" target="_blank" rel="noopener"`)
			w.URLAttr("href", v.SchedulingURL)
			w.Raw(`>Book a 15 minute call</a>`)
		}
		w.Raw(`</div>`)
		return w.Err()
	})
}

func renderForm(w *components.Writer, data ContactFormData, submitting bool) {
	v := data.Variant
	snap := data.Snapshot

	if data.Notice != "" {
		w.Raw(`<div class="form-alert form-alert--error" role="alert">`)
		w.Text(data.Notice)
		w.Raw(`</div>`)
	}

	// Native fallback target, never shown
	w.Raw(`<iframe name="hidden-iframe" title="Hidden form target" class="visually-hidden" tabindex="-1" aria-hidden="true"></iframe>`)

	w.Raw(`<form id="contact-form" class="contact-form" method="POST" target="hidden-iframe" novalidate`)
	w.URLAttr("action", data.Action)
	w.Attr("hx-post", data.PostURL)
	w.Attr("hx-target", "#"+ContactPanelID)
	w.Attr("hx-swap", "innerHTML")
	w.Attr("hx-disabled-elt", "#contact-submit")
	if data.CSRFToken != "" {
		w.Attr("hx-headers", components.JSON(map[string]string{middleware.CSRFHeader: data.CSRFToken}))
	}
	w.Raw(">")

	if data.SubmissionID != "" {
		w.Raw(`<input type="hidden" name="submission"`)
		w.Attr("value", data.SubmissionID)
		w.Raw(">")
	}

	for _, spec := range v.Form.Fields {
		renderField(w, spec, snap)
	}

	if data.TurnstileSiteKey != "" {
		w.Raw(`<div class="cf-turnstile"`)
		w.Attr("data-sitekey", data.TurnstileSiteKey)
		if v.Theme.Dark {
			w.Attr("data-theme", "dark")
		}
		w.Raw(`></div>`)
	}

	label := v.Form.SubmitLabel
	if submitting {
		label = v.Form.SubmittingLabel
	} else if snap.Status == contactform.StatusFailed {
		label = "Try again"
	}

	w.Raw(`<div class="form-actions"><button type="submit" id="contact-submit" class="button button--primary"`)
	w.BoolAttr("disabled", submitting)
	w.Raw(`>`)
	w.Raw(`<svg width="18" height="18" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" aria-hidden="true"><path d="m22 2-7 20-4-9-9-4Z"></path><path d="M22 2 11 13"></path></svg>`)
	w.Text(label)
	w.Raw(`</button>`)
	if v.SchedulingURL != "" {
		w.Raw(`<a class="form-actions__alt" target="_blank" rel="noopener"`)
		w.URLAttr("href", v.SchedulingURL)
		w.Raw(`>Prefer to talk? Book a call</a>`)
	}
	w.Raw(`</div></form>`)
}

func renderField(w *components.Writer, spec variants.FieldSpec, snap contactform.Snapshot) {
	field := spec.Field()
	value := snap.Form.Get(field)
	msg, hasErr := snap.Errors[field]

	w.Raw(`<div class="form-field"><label class="form-label"`)
	w.Attr("for", spec.Name)
	w.Raw(">")
	w.Text(spec.Label)
	if spec.Required {
		w.Raw(` <span class="form-label__required" aria-hidden="true">*</span>`)
	}
	w.Raw(`</label>`)

	if spec.Kind == variants.KindTextarea {
		w.Raw(`<textarea rows="5"`)
	} else {
		w.Raw(`<input`)
		w.Attr("type", spec.Kind)
	}
	w.Attr("id", spec.Name)
	w.Attr("name", spec.Name)
	w.Attr("class", fieldClass(hasErr))
	w.Attr("placeholder", spec.Placeholder)
	w.Attr("data-field", spec.Name)
	if hasErr {
		w.Attr("aria-invalid", "true")
		w.Attr("aria-describedby", errorID(field))
	}
	if spec.Kind == variants.KindTextarea {
		w.Raw(">")
		w.Text(value)
		w.Raw(`</textarea>`)
	} else {
		w.Attr("value", value)
		w.Raw(">")
	}

	if hasErr {
		w.Raw(`<p class="field-error"`)
		w.Attr("id", errorID(field))
		w.Attr("data-error-for", spec.Name)
		w.Raw(">")
		w.Text(msg)
		w.Raw(`</p>`)
	}
	w.Raw(`</div>`)
}

// Notice renders a standalone alert in place of the form
func Notice(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := components.NewWriter(out)
		w.Raw(`<div class="form-alert form-alert--error" role="alert">`)
		w.Text(message)
		w.Raw(`</div>`)
		return w.Err()
	})
}
