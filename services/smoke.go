package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"color_robotics_site/services/contactform"
	"color_robotics_site/services/scroll"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// SmokeOptions configures a browser walk-through of one landing page variant
type SmokeOptions struct {
	BaseURL    string
	Variant    string
	ChromePath string
	Timeout    time.Duration
	// Theme colors the page background must blend between while scrolling
	ScrollStart scroll.RGB
	ScrollEnd   scroll.RGB
	// Sample submission, must pass validation for the variant
	Form   contactform.FormState
	Fields contactform.FieldSet
}

// SmokeResult reports what the browser observed
type SmokeResult struct {
	PageURL          string
	ScrollFactor     float64
	BackgroundColor  scroll.RGB
	ExpectedColor    scroll.RGB
	AnchorExpected   float64
	AnchorScrollY    float64
	InlineErrorShown bool
	PostedTo         []string
	Succeeded        bool
	Elapsed          time.Duration
}

// OK reports whether every check passed
func (r *SmokeResult) OK() bool {
	return r.BackgroundColor == r.ExpectedColor && r.AnchorLanded() && r.InlineErrorShown && len(r.PostedTo) > 0 && r.Succeeded
}

// anchorTolerance absorbs sub-pixel layout rounding
const anchorTolerance = 2

// AnchorLanded reports whether the contact anchor scrolled where expected
func (r *SmokeResult) AnchorLanded() bool {
	return math.Abs(r.AnchorScrollY-r.AnchorExpected) <= anchorTolerance
}

type anchorMetrics struct {
	TargetTop    float64 `json:"targetTop"`
	ScrollY      float64 `json:"scrollY"`
	NavbarHeight float64 `json:"navbarHeight"`
	MaxScroll    float64 `json:"maxScroll"`
}

// expectedAnchorScroll is where the browser can actually scroll for an anchor
func expectedAnchorScroll(m anchorMetrics) float64 {
	target := scroll.AnchorTarget(m.TargetTop, m.ScrollY, m.NavbarHeight)
	return math.Max(0, math.Min(target, m.MaxScroll))
}

type pageMetrics struct {
	ScrollY      float64 `json:"scrollY"`
	ScrollHeight float64 `json:"scrollHeight"`
	InnerHeight  float64 `json:"innerHeight"`
	Background   string  `json:"background"`
}

// RunSmokeCheck loads the variant in headless Chrome, scrolls halfway and
// compares the page background with the interpolated theme color, submits an
// empty form to see inline errors, then submits opts.Form and waits for the
// success acknowledgement.
func RunSmokeCheck(ctx context.Context, opts SmokeOptions) (*SmokeResult, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 45 * time.Second
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.WindowSize(1280, 800),
	)
	// Check for custom Chrome path (for headless-shell in Docker)
	if opts.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ChromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, timeoutCancel := context.WithTimeout(browserCtx, opts.Timeout)
	defer timeoutCancel()

	result := &SmokeResult{
		PageURL: strings.TrimRight(opts.BaseURL, "/") + "/v/" + opts.Variant,
	}

	var mu sync.Mutex
	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		if e, ok := ev.(*network.EventRequestWillBeSent); ok && e.Request.Method == "POST" {
			mu.Lock()
			result.PostedTo = append(result.PostedTo, e.Request.URL)
			mu.Unlock()
		}
	})

	start := time.Now()

	// Page load and scroll blend
	var metrics pageMetrics
	err := chromedp.Run(browserCtx,
		network.Enable(),
		chromedp.Navigate(result.PageURL),
		chromedp.WaitVisible("#contact-form", chromedp.ByQuery),
		chromedp.Evaluate(`window.scrollTo(0, (document.body.scrollHeight - window.innerHeight) / 2)`, nil),
		chromedp.Sleep(300*time.Millisecond),
		chromedp.Evaluate(`({
			scrollY: window.scrollY,
			scrollHeight: document.body.scrollHeight,
			innerHeight: window.innerHeight,
			background: document.body.style.backgroundColor || document.body.style.background
		})`, &metrics),
	)
	if err != nil {
		return result, fmt.Errorf("failed to load page: %w", err)
	}

	result.ScrollFactor = scroll.Factor(metrics.ScrollY, metrics.ScrollHeight, metrics.InnerHeight)
	result.ExpectedColor = scroll.ColorAt(opts.ScrollStart, opts.ScrollEnd, result.ScrollFactor)
	if result.BackgroundColor, err = scroll.ParseCSS(metrics.Background); err != nil {
		log.Printf("[WARNING] Smoke check could not read page background: %v", err)
	}

	// Nav link to the contact section lands below the fixed navbar
	var anchor anchorMetrics
	err = chromedp.Run(browserCtx,
		chromedp.Evaluate(`window.scrollTo(0, 0)`, nil),
		chromedp.Sleep(300*time.Millisecond),
		chromedp.Evaluate(`(function () {
			var nav = document.querySelector("[data-navbar]");
			return {
				targetTop: document.getElementById("contact").getBoundingClientRect().top,
				scrollY: window.scrollY,
				navbarHeight: nav ? nav.offsetHeight : 0,
				maxScroll: document.documentElement.scrollHeight - window.innerHeight
			};
		})()`, &anchor),
		chromedp.Click(`.navbar a[href="#contact"]`, chromedp.ByQuery),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.Evaluate(`window.scrollY`, &result.AnchorScrollY),
	)
	if err != nil {
		return result, fmt.Errorf("failed to follow contact anchor: %w", err)
	}
	result.AnchorExpected = expectedAnchorScroll(anchor)

	// Empty submit must show inline errors and send nothing
	err = chromedp.Run(browserCtx,
		chromedp.Click("#contact-submit", chromedp.ByQuery),
		chromedp.WaitVisible(`[data-error-for="name"]`, chromedp.ByQuery),
	)
	if err != nil {
		return result, fmt.Errorf("inline validation errors did not appear: %w", err)
	}
	result.InlineErrorShown = true

	// Valid submission
	actions := []chromedp.Action{}
	for _, f := range opts.Fields.Fields() {
		value := opts.Form.Get(f)
		if value == "" {
			continue
		}
		actions = append(actions, chromedp.SendKeys("#"+string(f), value, chromedp.ByQuery))
	}
	actions = append(actions,
		chromedp.Click("#contact-submit", chromedp.ByQuery),
		chromedp.WaitVisible("[data-contact-success]", chromedp.ByQuery),
	)
	if err := chromedp.Run(browserCtx, actions...); err != nil {
		return result, fmt.Errorf("success acknowledgement did not appear: %w", err)
	}
	result.Succeeded = true
	result.Elapsed = time.Since(start)

	return result, nil
}
