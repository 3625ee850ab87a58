package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"color_robotics_site/config"
	"color_robotics_site/db"
	"color_robotics_site/middleware"
	"color_robotics_site/services"
	"color_robotics_site/services/contactform"
	"color_robotics_site/services/variants"
	"color_robotics_site/templates/partials"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	turnstileFailedNotice = "Please complete the verification and try again."
	relayFailedNotice     = "We could not send your message. Please try again."
	expiredNotice         = "This submission has expired. Please reload the page."
	// responsePollInterval is how often a submission still waiting for the
	// form endpoint is polled again
	responsePollInterval = 500 * time.Millisecond
)

func contactPostURL(v *variants.Variant) string {
	return "/contact/" + url.PathEscape(v.Key)
}

func contactStatusURL(id string) string {
	return "/contact/status/" + url.PathEscape(id)
}

func newFormData(c echo.Context, cfg *config.Config, v *variants.Variant) partials.ContactFormData {
	return partials.ContactFormData{
		Variant:          v,
		Action:           cfg.FormEndpoint(v.Form.Token),
		PostURL:          contactPostURL(v),
		CSRFToken:        middleware.GetCSRFToken(c),
		TurnstileSiteKey: cfg.TurnstileSiteKey,
	}
}

func successMode(cfg *config.Config) contactform.Mode {
	if cfg.FormSuccessMode == config.SuccessModeResponse {
		return contactform.ModeResponse
	}
	return contactform.ModeTimer
}

// firstPollDelay is when the submitting partial asks for the outcome
func firstPollDelay(cfg *config.Config) time.Duration {
	if successMode(cfg) == contactform.ModeResponse {
		return responsePollInterval
	}
	if cfg.FormSuccessDelay <= 0 {
		return contactform.DefaultSuccessDelay
	}
	return cfg.FormSuccessDelay
}

func newContactController(c echo.Context, cfg *config.Config, v *variants.Variant) *contactform.Controller {
	relay := site.Relay
	if relay == nil {
		relay = services.NewFormRelay(cfg.RelayTimeout)
	}
	fields := v.FieldSet()

	return contactform.New(contactform.Options{
		Fields: fields,
		Mode:   successMode(cfg),
		Delay:  cfg.FormSuccessDelay,
		Clock:  site.Clock,
		Dispatcher: &services.LeadDispatcher{
			DB:       db.DB,
			Relay:    relay,
			Endpoint: cfg.FormEndpoint(v.Form.Token),
			Fields:   fields,
			Meta: services.LeadMeta{
				Variant:   v.Key,
				IPHash:    services.HashIP(c.RealIP(), cfg.IPHashSecret),
				UserAgent: c.Request().UserAgent(),
			},
			Config: cfg,
		},
	})
}

// retryController returns a failed or in-flight submission of this variant so
// a repeated post resolves to the same submission
func retryController(id string, v *variants.Variant) *contactform.Controller {
	if id == "" || site.Tracker == nil {
		return nil
	}
	ctrl, owner, ok := site.Tracker.Lookup(id)
	if !ok || owner != v.Key {
		return nil
	}
	switch ctrl.Status() {
	case contactform.StatusFailed, contactform.StatusSubmitting:
		return ctrl
	}
	return nil
}

// requestForm reads the submitted values of the variant's fields
func requestForm(c echo.Context, fields contactform.FieldSet) contactform.FormState {
	ctrl := contactform.New(contactform.Options{Fields: fields})
	for _, f := range fields.Fields() {
		_ = ctrl.UpdateField(f, c.FormValue(string(f)))
	}
	return ctrl.Form()
}

func firstError(fields contactform.FieldSet, errs contactform.ValidationErrors) string {
	for _, f := range fields.Fields() {
		if msg, ok := errs[f]; ok {
			return msg
		}
	}
	return "Invalid submission"
}

// SubmitContactHandler validates and submits the contact form of a variant.
// htmx requests get the submitting partial that polls for the outcome.
func SubmitContactHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)
	v := middleware.GetVariant(c)
	if v == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Page not found")
	}
	if site.Tracker == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Contact form unavailable")
	}
	data := newFormData(c, cfg, v)

	if cfg.TurnstileSecretKey != "" {
		token := c.FormValue("cf-turnstile-response")
		if ok, err := services.VerifyTurnstileToken(c.Request().Context(), token, cfg.TurnstileSecretKey, c.RealIP()); !ok {
			c.Logger().Warnf("Turnstile verification failed for contact form (variant %s): %v", v.Key, err)
			if isHTMX(c) {
				data.Snapshot = contactform.Snapshot{Form: requestForm(c, v.FieldSet())}
				data.Notice = turnstileFailedNotice
				return renderPartial(c, http.StatusBadRequest, partials.ContactForm(data))
			}
			return echo.NewHTTPError(http.StatusBadRequest, turnstileFailedNotice)
		}
	}

	id := c.FormValue("submission")
	ctrl := retryController(id, v)
	if ctrl == nil {
		id = uuid.New().String()
		ctrl = newContactController(c, cfg, v)
	}

	if ctrl.Status() == contactform.StatusSubmitting {
		return respondSubmitting(c, cfg, data, id, ctrl)
	}

	for _, f := range ctrl.Fields().Fields() {
		if err := ctrl.UpdateField(f, c.FormValue(string(f))); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read form")
		}
	}

	if err := ctrl.Submit(c.Request().Context()); err != nil {
		if errors.Is(err, contactform.ErrAlreadySubmitted) {
			// a concurrent retry won the race
			return respondSubmitting(c, cfg, data, id, ctrl)
		}
		if errors.Is(err, contactform.ErrValidation) {
			snap := ctrl.Snapshot()
			if isHTMX(c) {
				data.Snapshot = snap
				return renderPartial(c, http.StatusUnprocessableEntity, partials.ContactForm(data))
			}
			return echo.NewHTTPError(http.StatusUnprocessableEntity, firstError(ctrl.Fields(), snap.Errors))
		}
		c.Logger().Errorf("Failed to submit contact form (variant %s): %v", v.Key, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to submit form")
	}

	site.Tracker.Put(id, v.Key, ctrl)
	return respondSubmitting(c, cfg, data, id, ctrl)
}

// respondSubmitting acknowledges a submission that is in flight
func respondSubmitting(c echo.Context, cfg *config.Config, data partials.ContactFormData, id string, ctrl *contactform.Controller) error {
	if !isHTMX(c) {
		return c.JSON(http.StatusAccepted, map[string]string{
			"id":         id,
			"status":     ctrl.Status().String(),
			"status_url": contactStatusURL(id),
		})
	}

	data.Snapshot = ctrl.Snapshot()
	data.StatusURL = contactStatusURL(id)
	data.PollDelay = firstPollDelay(cfg)
	return renderPartial(c, http.StatusOK, partials.ContactSubmitting(data))
}

// ContactStatusHandler reports the outcome of a tracked submission
func ContactStatusHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)
	id := c.Param("id")

	var (
		ctrl  *contactform.Controller
		owner string
		ok    bool
	)
	if site.Tracker != nil {
		ctrl, owner, ok = site.Tracker.Lookup(id)
	}
	if !ok {
		if isHTMX(c) {
			return renderPartial(c, http.StatusNotFound, partials.Notice(expiredNotice))
		}
		return echo.NewHTTPError(http.StatusNotFound, "Submission not found")
	}

	snap := ctrl.Snapshot()
	if !isHTMX(c) {
		resp := map[string]string{"id": id, "status": snap.Status.String()}
		if snap.Err != nil {
			resp["error"] = relayFailedNotice
		}
		return c.JSON(http.StatusOK, resp)
	}

	v, err := site.Registry.Get(owner)
	if err != nil {
		v = site.Registry.Default()
	}
	data := newFormData(c, cfg, v)
	data.Snapshot = snap

	switch snap.Status {
	case contactform.StatusSucceeded:
		return renderPartial(c, http.StatusOK, partials.ContactSuccess(v))
	case contactform.StatusFailed:
		data.SubmissionID = id
		data.Notice = relayFailedNotice
		return renderPartial(c, http.StatusOK, partials.ContactForm(data))
	default:
		data.StatusURL = contactStatusURL(id)
		data.PollDelay = responsePollInterval
		return renderPartial(c, http.StatusOK, partials.ContactSubmitting(data))
	}
}
