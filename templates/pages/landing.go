package pages

import (
	"context"
	"fmt"
	"io"

	"color_robotics_site/services/scroll"
	"color_robotics_site/services/variants"
	"color_robotics_site/templates/components"
	"color_robotics_site/templates/partials"

	"github.com/a-h/templ"
)

// LandingData is the landing page of one variant
type LandingData struct {
	Layout LayoutData
	Form   partials.ContactFormData
}

// Landing renders the full landing page
func Landing(data LandingData) templ.Component {
	return Layout(data.Layout, templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := components.NewWriter(out)
		v := data.Layout.Variant

		navbar(w, v)
		w.Raw(`<main>`)
		hero(w, v)
		features(w, v)
		if len(v.Industries) > 0 {
			if active, ok := v.DefaultIndustry(); ok {
				w.Raw(`<section id="industries" class="section industries"><div class="container"><h2 class="section__title">Built for your industry</h2>`)
				w.Raw(`<div`)
				w.Attr("id", partials.IndustriesID)
				w.Raw(`>`)
				w.Component(ctx, partials.IndustryTabs(v, active))
				w.Raw(`</div></div></section>`)
			}
		}
		contact(ctx, w, data.Form)
		w.Raw(`</main>`)
		footer(w, v)
		return w.Err()
	}))
}

func navbar(w *components.Writer, v *variants.Variant) {
	w.Raw(`<nav class="navbar" data-navbar><div class="container navbar__inner"><a class="navbar__brand" href="#top">`)
	w.Text(v.Brand)
	w.Raw(`</a><div class="navbar__links">`)
	if len(v.Features) > 0 {
		w.Raw(`<a href="#features">Platform</a>`)
	}
	if len(v.Industries) > 0 {
		w.Raw(`<a href="#industries">Industries</a>`)
	}
	w.Raw(`<a href="#contact">Contact</a>`)
	if v.SchedulingURL != "" {
		w.Raw(`<a class="button button--small" target="_blank" rel="noopener"`)
		w.URLAttr("href", v.SchedulingURL)
		w.Raw(`>Book a call</a>`)
	}
	w.Raw(`</div></div></nav>`)
}

func hero(w *components.Writer, v *variants.Variant) {
	w.Raw(`<section id="top" class="hero"><div class="container"><p class="eyebrow">`)
	w.Text(v.Hero.Eyebrow)
	w.Raw(`</p><h1 class="hero__headline">`)
	w.Text(v.Hero.Headline)
	w.Raw(`</h1><p class="hero__subhead">`)
	w.Text(v.Hero.Subhead)
	w.Raw(`</p><div class="hero__actions">`)
	if v.Hero.PrimaryCTA != "" {
		w.Raw(`<a class="button button--primary" href="#contact">`)
		w.Text(v.Hero.PrimaryCTA)
		w.Raw(`</a>`)
	}
	if v.Hero.SecondaryCTA != "" {
		target := "#contact"
		if len(v.Features) > 0 {
			target = "#features"
		}
		w.Raw(`<a class="button button--ghost"`)
		w.Attr("href", target)
		w.Raw(`>`)
		w.Text(v.Hero.SecondaryCTA)
		w.Raw(`</a>`)
	}
	w.Raw(`</div></div></section>`)
}

func features(w *components.Writer, v *variants.Variant) {
	if len(v.Features) == 0 && len(v.Points) == 0 {
		return
	}
	w.Raw(`<section id="features" class="section features"><div class="container">`)
	if len(v.Features) > 0 {
		w.Raw(`<div class="feature-grid">`)
		for _, f := range v.Features {
			w.Raw(`<article class="feature-card"><h3>`)
			w.Text(f.Title)
			w.Raw(`</h3><p>`)
			w.Text(f.Description)
			w.Raw(`</p></article>`)
		}
		w.Raw(`</div>`)
	}
	if len(v.Points) > 0 {
		w.Raw(`<div class="about-points">`)
		for i, p := range v.Points {
			w.Raw(`<p class="reveal"`)
			w.Attr("data-reveal-index", fmt.Sprint(i))
			w.Attr("style", fmt.Sprintf("transition-delay: %dms", scroll.RevealDelay(i).Milliseconds()))
			w.Raw(`>`)
			w.Text(p)
			w.Raw(`</p>`)
		}
		w.Raw(`</div>`)
	}
	w.Raw(`</div></section>`)
}

func contact(ctx context.Context, w *components.Writer, form partials.ContactFormData) {
	v := form.Variant
	w.Raw(`<section id="contact" class="section contact"><div class="container contact__card"><header class="contact__header"><p class="eyebrow">`)
	w.Text(v.Form.Eyebrow)
	w.Raw(`</p><h2 class="section__title">`)
	w.Text(v.Form.Heading)
	w.Raw(`</h2><p>`)
	w.Text(v.Form.Intro)
	w.Raw(`</p></header><div`)
	w.Attr("id", partials.ContactPanelID)
	w.Raw(`>`)
	w.Component(ctx, partials.ContactForm(form))
	w.Raw(`</div></div></section>`)
}

func footer(w *components.Writer, v *variants.Variant) {
	w.Raw(`<footer class="footer"><div class="container"><p>`)
	w.Text(v.Brand)
	w.Raw(`</p><p class="footer__tagline">`)
	w.Text(v.Description)
	w.Raw(`</p></div></footer>`)
}
