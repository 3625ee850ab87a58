package partials

import (
	"context"
	"io"
	"net/url"

	"color_robotics_site/services/variants"
	"color_robotics_site/templates/components"

	"github.com/a-h/templ"
)

// IndustriesID is the element industry tab responses are swapped into
const IndustriesID = "industries-tabs"

// IndustryTabs renders the tab list and the active tab's panel
func IndustryTabs(v *variants.Variant, active variants.Industry) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := components.NewWriter(out)

		w.Raw(`<div class="industry-tabs" role="tablist">`)
		for _, ind := range v.Industries {
			selected := ind.Key == active.Key
			w.Raw(`<button type="button" role="tab" class="industry-tab`)
			if selected {
				w.Raw(` industry-tab--active`)
			}
			w.Raw(`"`)
			w.Attr("id", "tab-"+ind.Key)
			if selected {
				w.Attr("aria-selected", "true")
			} else {
				w.Attr("aria-selected", "false")
			}
			w.Attr("aria-controls", "industry-panel")
			w.Attr("hx-get", "/htmx/industries/"+url.PathEscape(v.Key)+"/"+url.PathEscape(ind.Key))
			w.Attr("hx-target", "#"+IndustriesID)
			w.Attr("hx-swap", "innerHTML")
			w.Raw(">")
			w.Text(ind.Label)
			w.Raw(`</button>`)
		}
		w.Raw(`</div>`)

		w.Component(ctx, IndustryPanel(active))
		return w.Err()
	})
}

// IndustryPanel renders one industry's copy, highlights and side panel
func IndustryPanel(ind variants.Industry) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := components.NewWriter(out)

		w.Raw(`<div id="industry-panel" class="industry-panel" role="tabpanel"`)
		w.Attr("aria-labelledby", "tab-"+ind.Key)
		w.Raw(`><div class="industry-panel__copy"><h3>`)
		w.Text(ind.Title)
		w.Raw(`</h3><p>`)
		w.Text(ind.Body)
		w.Raw(`</p>`)
		if len(ind.Highlights) > 0 {
			w.Raw(`<ul class="industry-panel__highlights">`)
			for _, h := range ind.Highlights {
				w.Raw(`<li>`)
				w.Text(h)
				w.Raw(`</li>`)
			}
			w.Raw(`</ul>`)
		}
		w.Raw(`</div>`)
		if ind.PanelTitle != "" || ind.PanelBody != "" {
			w.Raw(`<aside class="industry-panel__aside"><h4>`)
			w.Text(ind.PanelTitle)
			w.Raw(`</h4><p>`)
			w.Text(ind.PanelBody)
			w.Raw(`</p></aside>`)
		}
		w.Raw(`</div>`)
		return w.Err()
	})
}
