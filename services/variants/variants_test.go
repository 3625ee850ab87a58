package variants

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"color_robotics_site/services/contactform"
	"color_robotics_site/services/scroll"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalVariant = `
variants:
  - key: %s
    theme:
      scroll_start: "rgb(0,0,0)"
      scroll_end: "#ffffff"
    form:
      token: abc123
      fields:
        - {name: name, kind: text, required: true}
        - {name: email, kind: email, required: true}
`

func writeVariants(t *testing.T, path, key string) {
	t.Helper()
	content := strings.Replace(minimalVariant, "%s", key, 1)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestEmbeddedDefaults(t *testing.T) {
	r, err := NewRegistry("", "color-robotics")
	require.NoError(t, err)

	assert.Equal(t, []string{"color-robotics", "command-center", "meeting-request"}, r.Keys())
	assert.Equal(t, "color-robotics", r.Default().Key)

	v, err := r.Get("color-robotics")
	require.NoError(t, err)
	assert.Equal(t, scroll.RGB{29, 103, 103}, v.Theme.Start())
	assert.Equal(t, scroll.RGB{11, 52, 52}, v.Theme.End())
	assert.Equal(t, contactform.FieldSet{Company: true, Message: true, MessageRequired: true}, v.FieldSet())

	cc, err := r.Get("command-center")
	require.NoError(t, err)
	ind, ok := cc.DefaultIndustry()
	require.True(t, ok)
	assert.Equal(t, "warehousing", ind.Key)
	food, ok := cc.Industry("food")
	require.True(t, ok)
	assert.Len(t, food.Highlights, 4)
	_, ok = cc.Industry("mining")
	assert.False(t, ok)

	meeting, err := r.Get("meeting-request")
	require.NoError(t, err)
	assert.Equal(t, contactform.FieldSet{Company: true}, meeting.FieldSet())
	_, ok = meeting.DefaultIndustry()
	assert.False(t, ok)
}

func TestRegistryUnknownVariant(t *testing.T) {
	r, err := NewRegistry("", "does-not-exist")
	require.NoError(t, err)

	_, err = r.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "color-robotics", r.Default().Key, "falls back to the first variant")
}

func TestParseRejectsInvalidDefinitions(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"empty", "variants: []", "no variants defined"},
		{"bad yaml", "variants: [", "failed to parse"},
		{"missing key", `
variants:
  - theme: {scroll_start: "#000000", scroll_end: "#000000"}
    form: {token: t, fields: [{name: name, kind: text, required: true}, {name: email, kind: email, required: true}]}
`, "key is required"},
		{"bad color", `
variants:
  - key: a
    theme: {scroll_start: "teal", scroll_end: "#000000"}
    form: {token: t, fields: [{name: name, kind: text, required: true}, {name: email, kind: email, required: true}]}
`, "scroll_start"},
		{"unknown field", `
variants:
  - key: a
    theme: {scroll_start: "#000000", scroll_end: "#000000"}
    form: {token: t, fields: [{name: phone, kind: text}]}
`, "unknown form field"},
		{"optional email", `
variants:
  - key: a
    theme: {scroll_start: "#000000", scroll_end: "#000000"}
    form: {token: t, fields: [{name: name, kind: text, required: true}, {name: email, kind: email}]}
`, "must be required"},
		{"required company", `
variants:
  - key: a
    theme: {scroll_start: "#000000", scroll_end: "#000000"}
    form: {token: t, fields: [{name: name, kind: text, required: true}, {name: email, kind: email, required: true}, {name: company, kind: text, required: true}]}
`, "always optional"},
		{"unknown kind", `
variants:
  - key: a
    theme: {scroll_start: "#000000", scroll_end: "#000000"}
    form: {token: t, fields: [{name: name, kind: select, required: true}]}
`, "unknown kind"},
		{"missing email", `
variants:
  - key: a
    theme: {scroll_start: "#000000", scroll_end: "#000000"}
    form: {token: t, fields: [{name: name, kind: text, required: true}]}
`, "must collect name and email"},
		{"duplicate key", `
variants:
  - key: a
    theme: {scroll_start: "#000000", scroll_end: "#000000"}
    form: {token: t, fields: [{name: name, kind: text, required: true}, {name: email, kind: email, required: true}]}
  - key: a
    theme: {scroll_start: "#000000", scroll_end: "#000000"}
    form: {token: t, fields: [{name: name, kind: text, required: true}, {name: email, kind: email, required: true}]}
`, "duplicate variant key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFieldSpecsKeepOrder(t *testing.T) {
	r, err := NewRegistry("", "")
	require.NoError(t, err)

	var names []string
	for _, f := range r.Default().Form.Fields {
		names = append(names, f.Name)
	}
	if diff := cmp.Diff([]string{"name", "email", "company", "message"}, names); diff != "" {
		t.Errorf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestReloadKeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "variants.yaml")
	writeVariants(t, path, "first")

	r, err := NewRegistry(path, "first")
	require.NoError(t, err)
	assert.Equal(t, path, r.Path())

	require.NoError(t, os.WriteFile(path, []byte("variants: ["), 0644))
	assert.Error(t, r.Reload())

	_, err = r.Get("first")
	assert.NoError(t, err)
}

func TestNewRegistryMissingFile(t *testing.T) {
	_, err := NewRegistry(filepath.Join(t.TempDir(), "missing.yaml"), "")
	assert.Error(t, err)
}

func TestWatchReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "variants.yaml")
	writeVariants(t, path, "first")

	r, err := NewRegistry(path, "first")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan error, 4)
	require.NoError(t, r.Watch(ctx, func(err error) { reloaded <- err }))

	writeVariants(t, path, "second")

	select {
	case err := <-reloaded:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("registry was not reloaded")
	}

	_, err = r.Get("second")
	assert.NoError(t, err)
	_, err = r.Get("first")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWatchEmbedded(t *testing.T) {
	r, err := NewRegistry("", "")
	require.NoError(t, err)
	assert.Error(t, r.Watch(context.Background(), nil))
}

func TestThemePayload(t *testing.T) {
	registry, err := NewRegistry("", "color-robotics")
	require.NoError(t, err)

	payload := registry.Default().ThemePayload()
	assert.Equal(t, "color-robotics", payload.Variant)
	assert.Equal(t, [3]int{29, 103, 103}, payload.Start)
	assert.Equal(t, [3]int{11, 52, 52}, payload.End)
	assert.Equal(t, 50, payload.NavThreshold)
	assert.Equal(t, int64(200), payload.RevealStaggerMs)
}
