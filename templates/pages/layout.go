package pages

import (
	"context"
	"io"

	"color_robotics_site/middleware"
	"color_robotics_site/models"
	"color_robotics_site/services/scroll"
	"color_robotics_site/services/variants"
	"color_robotics_site/templates/components"

	"github.com/a-h/templ"
)

// noScriptGradientSteps is the number of stops in the static background
const noScriptGradientSteps = 5

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// LayoutData configures the document shell
type LayoutData struct {
	SEO              *models.SEO
	Variant          *variants.Variant
	TurnstileSiteKey string
}

// Layout renders the document around body. The body starts at the theme's
// start color and the theme JSON drives the scroll blend in site.js.
func Layout(data LayoutData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := components.NewWriter(out)
		v := data.Variant
		nonce := middleware.GetNonce(ctx)
		theme := v.Theme

		w.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.Component(ctx, components.SEOHead(data.SEO))

		w.Raw(`<link rel="icon" type="image/svg+xml"`)
		w.Attr("href", "/static/images/favicon.svg?v="+middleware.GetFaviconVersion(ctx))
		w.Raw(`><link rel="preconnect" href="https://fonts.googleapis.com"><link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>`)
		w.Raw(`<link rel="stylesheet" href="https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600&family=Space+Grotesk:wght@500;700&display=swap">`)
		w.Raw(`<link rel="stylesheet"`)
		w.Attr("href", "/static/css/site.css?v="+middleware.GetCSSVersion(ctx))
		w.Raw(`>`)

		// Static blend for visitors without JavaScript
		w.Raw(`<noscript><style>body{background:`)
		w.Text(scroll.LinearGradientCSS(scroll.Gradient(theme.Start(), theme.End(), noScriptGradientSteps)))
		w.Raw(` !important}.reveal{opacity:1;transform:none}</style></noscript>`)

		w.Raw(`<script id="theme-data" type="application/json">`)
		w.Raw(components.JSON(v.ThemePayload()))
		w.Raw(`</script>`)

		scriptTag(w, htmxSrc, nonce, false)
		if data.TurnstileSiteKey != "" {
			scriptTag(w, "https://challenges.cloudflare.com/turnstile/v0/api.js", nonce, true)
		}
		scriptTag(w, "/static/js/site.js?v="+middleware.GetSiteJSVersion(ctx), nonce, true)
		w.Raw(`</head>`)

		w.Raw(`<body class="`)
		if theme.Dark {
			w.Raw(`theme-dark`)
		} else {
			w.Raw(`theme-light`)
		}
		w.Raw(`"`)
		w.Attr("data-variant", v.Key)
		w.Attr("style", "background: "+theme.Start().CSS()+"; --accent: "+theme.Accent)
		w.Raw(`>`)
		w.Component(ctx, body)
		w.Raw(`</body></html>`)
		return w.Err()
	})
}

func scriptTag(w *components.Writer, src, nonce string, deferred bool) {
	w.Raw(`<script`)
	w.Attr("src", src)
	if nonce != "" {
		w.Attr("nonce", nonce)
	}
	w.BoolAttr("defer", deferred)
	w.Raw(`></script>`)
}
