// Package variants loads the landing page variants. Each variant configures
// the one generic page and contact form: copy, color theme, field set and
// industry tabs.
package variants

import (
	_ "embed"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"

	"color_robotics_site/services/contactform"
	"color_robotics_site/services/scroll"

	"gopkg.in/yaml.v3"
)

//go:embed variants.yaml
var defaultVariants []byte

// Field kinds rendered by the contact form
const (
	KindText     = "text"
	KindEmail    = "email"
	KindTextarea = "textarea"
)

var ErrNotFound = errors.New("variant not found")

type Theme struct {
	ScrollStart string `yaml:"scroll_start"`
	ScrollEnd   string `yaml:"scroll_end"`
	Accent      string `yaml:"accent"`
	Dark        bool   `yaml:"dark"`

	start scroll.RGB
	end   scroll.RGB
}

// Start is the page background at the top of the page
func (t Theme) Start() scroll.RGB { return t.start }

// End is the page background fully scrolled
func (t Theme) End() scroll.RGB { return t.end }

type Hero struct {
	Eyebrow      string `yaml:"eyebrow"`
	Headline     string `yaml:"headline"`
	Subhead      string `yaml:"subhead"`
	PrimaryCTA   string `yaml:"primary_cta"`
	SecondaryCTA string `yaml:"secondary_cta"`
}

type Feature struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type Industry struct {
	Key        string   `yaml:"key"`
	Label      string   `yaml:"label"`
	Title      string   `yaml:"title"`
	Body       string   `yaml:"body"`
	Highlights []string `yaml:"highlights"`
	PanelTitle string   `yaml:"panel_title"`
	PanelBody  string   `yaml:"panel_body"`
}

type FieldSpec struct {
	Name        string `yaml:"name"`
	Label       string `yaml:"label"`
	Kind        string `yaml:"kind"`
	Placeholder string `yaml:"placeholder"`
	Required    bool   `yaml:"required"`
}

// Field returns the contact form field this spec configures
func (f FieldSpec) Field() contactform.Field {
	return contactform.Field(f.Name)
}

type Form struct {
	Token           string      `yaml:"token"`
	Eyebrow         string      `yaml:"eyebrow"`
	Heading         string      `yaml:"heading"`
	Intro           string      `yaml:"intro"`
	SubmitLabel     string      `yaml:"submit_label"`
	SubmittingLabel string      `yaml:"submitting_label"`
	SuccessTitle    string      `yaml:"success_title"`
	SuccessBody     string      `yaml:"success_body"`
	Fields          []FieldSpec `yaml:"fields"`
}

type Variant struct {
	Key           string     `yaml:"key"`
	Brand         string     `yaml:"brand"`
	Title         string     `yaml:"title"`
	Description   string     `yaml:"description"`
	SchedulingURL string     `yaml:"scheduling_url"`
	Theme         Theme      `yaml:"theme"`
	Hero          Hero       `yaml:"hero"`
	Features      []Feature  `yaml:"features"`
	Points        []string   `yaml:"points"`
	Industries    []Industry `yaml:"industries"`
	Form          Form       `yaml:"form"`
}

// FieldSet derives the contact form field set from the configured fields
func (v *Variant) FieldSet() contactform.FieldSet {
	var fs contactform.FieldSet
	for _, f := range v.Form.Fields {
		switch f.Field() {
		case contactform.FieldCompany:
			fs.Company = true
		case contactform.FieldMessage:
			fs.Message = true
			fs.MessageRequired = f.Required
		}
	}
	return fs
}

// Industry returns the tab with the given key
func (v *Variant) Industry(key string) (Industry, bool) {
	for _, ind := range v.Industries {
		if ind.Key == key {
			return ind, true
		}
	}
	return Industry{}, false
}

// DefaultIndustry is the tab shown before the visitor picks one
func (v *Variant) DefaultIndustry() (Industry, bool) {
	if len(v.Industries) == 0 {
		return Industry{}, false
	}
	return v.Industries[0], true
}

type file struct {
	Variants []*Variant `yaml:"variants"`
}

// Parse decodes and validates a variants document
func Parse(data []byte) ([]*Variant, error) {
	var doc file
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse variants: %w", err)
	}
	if len(doc.Variants) == 0 {
		return nil, fmt.Errorf("no variants defined")
	}

	seen := make(map[string]bool)
	for i, v := range doc.Variants {
		if err := validate(v); err != nil {
			return nil, fmt.Errorf("variant %d (%q): %w", i, v.Key, err)
		}
		if seen[v.Key] {
			return nil, fmt.Errorf("duplicate variant key %q", v.Key)
		}
		seen[v.Key] = true
	}
	return doc.Variants, nil
}

func validate(v *Variant) error {
	if v.Key == "" {
		return fmt.Errorf("key is required")
	}
	if v.Form.Token == "" {
		return fmt.Errorf("form token is required")
	}

	var err error
	if v.Theme.start, err = scroll.ParseCSS(v.Theme.ScrollStart); err != nil {
		return fmt.Errorf("theme scroll_start: %w", err)
	}
	if v.Theme.end, err = scroll.ParseCSS(v.Theme.ScrollEnd); err != nil {
		return fmt.Errorf("theme scroll_end: %w", err)
	}

	fields := make(map[contactform.Field]bool)
	for _, f := range v.Form.Fields {
		field, err := contactform.ParseField(f.Name)
		if err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
		if fields[field] {
			return fmt.Errorf("field %q listed twice", f.Name)
		}
		fields[field] = true

		switch f.Kind {
		case KindText, KindEmail, KindTextarea:
		default:
			return fmt.Errorf("field %q: unknown kind %q", f.Name, f.Kind)
		}
		if (field == contactform.FieldName || field == contactform.FieldEmail) && !f.Required {
			return fmt.Errorf("field %q must be required", f.Name)
		}
		if field == contactform.FieldCompany && f.Required {
			return fmt.Errorf("field %q is always optional", f.Name)
		}
	}
	if !fields[contactform.FieldName] || !fields[contactform.FieldEmail] {
		return fmt.Errorf("form must collect name and email")
	}

	tabs := make(map[string]bool)
	for _, ind := range v.Industries {
		if ind.Key == "" || tabs[ind.Key] {
			return fmt.Errorf("industry keys must be unique and non-empty")
		}
		tabs[ind.Key] = true
	}
	return nil
}

// Registry holds the loaded variants and swaps them atomically on reload
type Registry struct {
	path       string
	defaultKey string

	mu    sync.RWMutex
	byKey map[string]*Variant
	order []string
}

// NewRegistry loads variants from path, or the embedded defaults when path is empty
func NewRegistry(path, defaultKey string) (*Registry, error) {
	r := &Registry{path: path, defaultKey: defaultKey}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Path returns the file the registry reloads from, empty for embedded defaults
func (r *Registry) Path() string {
	return r.path
}

// Reload re-reads the variants source. On error the current variants are kept.
func (r *Registry) Reload() error {
	data := defaultVariants
	if r.path != "" {
		var err error
		data, err = os.ReadFile(r.path)
		if err != nil {
			return fmt.Errorf("failed to read variants file: %w", err)
		}
	}

	list, err := Parse(data)
	if err != nil {
		return err
	}

	byKey := make(map[string]*Variant, len(list))
	order := make([]string, 0, len(list))
	for _, v := range list {
		byKey[v.Key] = v
		order = append(order, v.Key)
	}

	r.mu.Lock()
	r.byKey = byKey
	r.order = order
	r.mu.Unlock()

	if _, ok := byKey[r.defaultKey]; !ok && r.defaultKey != "" {
		log.Printf("[WARNING] Default variant %q not defined, using %q", r.defaultKey, order[0])
	}
	return nil
}

// Get returns the variant with the given key
func (r *Registry) Get(key string) (*Variant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if v, ok := r.byKey[key]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
}

// Default returns the configured default variant, or the first one defined
func (r *Registry) Default() *Variant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if v, ok := r.byKey[r.defaultKey]; ok {
		return v
	}
	return r.byKey[r.order[0]]
}

// Keys returns the variant keys in file order
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// ThemePayload is the theme as the browser script consumes it
type ThemePayload struct {
	Variant         string `json:"variant"`
	Start           [3]int `json:"start"`
	End             [3]int `json:"end"`
	Accent          string `json:"accent"`
	Dark            bool   `json:"dark"`
	NavThreshold    int    `json:"navThreshold"`
	RevealStaggerMs int64  `json:"revealStaggerMs"`
}

// ThemePayload returns the scroll theme with the shared effect constants
func (v *Variant) ThemePayload() ThemePayload {
	return ThemePayload{
		Variant:         v.Key,
		Start:           v.Theme.Start(),
		End:             v.Theme.End(),
		Accent:          v.Theme.Accent,
		Dark:            v.Theme.Dark,
		NavThreshold:    scroll.NavScrollThreshold,
		RevealStaggerMs: scroll.RevealStagger.Milliseconds(),
	}
}
