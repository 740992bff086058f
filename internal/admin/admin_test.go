package admin

import (
	"bytes"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neboloop/socialshare/internal/license"
	"github.com/neboloop/socialshare/internal/logging"
	"github.com/neboloop/socialshare/internal/settings"
	"github.com/neboloop/socialshare/internal/sharing"
)

func testSchema(extra ...settings.Field) *settings.Schema {
	r := settings.NewRegistry(sharing.Fields()...)
	if err := r.Register(license.Field()); err != nil {
		panic(err)
	}
	if err := r.Register(extra...); err != nil {
		panic(err)
	}
	return r.Finalize()
}

func TestParseForm(t *testing.T) {
	form := url.Values{
		"tzss_settings[style]":              {"icons"},
		"tzss_settings[networks][facebook]": {"1"},
		"tzss_settings[networks][email]":    {"1"},
		"tzss_settings[locations][sidebar]": {"1"},
		"tzss_settings[a][b][c]":            {"too deep"},
		"tzss_settings[]":                   {"empty"},
		"other[style]":                      {"x"},
		NonceField:                          {"n"},
		"tzss_settings[license_key]":        {"first", "last"},
	}

	got := ParseForm(form)
	want := map[string]any{
		"style":       "icons",
		"networks":    map[string]any{"facebook": "1", "email": "1"},
		"locations":   map[string]any{"sidebar": "1"},
		"license_key": "last",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseForm mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFormThroughSanitize(t *testing.T) {
	schema := testSchema()
	raw := ParseForm(url.Values{"tzss_settings[networks][twitter]": {"1"}})
	values := schema.Sanitize(raw, nil, settings.SanitizeOptions{})

	assert.True(t, values.Checked(sharing.KeyNetworks, "twitter"))
	assert.False(t, values.Checked(sharing.KeyNetworks, "facebook"))
	assert.False(t, values.Checked(sharing.KeyLocations, "sidebar"))
}

func TestPressedLicenseAction(t *testing.T) {
	assert.Equal(t, ActivateLicense, PressedLicenseAction(url.Values{ActivateButton: {"Activate License"}}))
	assert.Equal(t, DeactivateLicense, PressedLicenseAction(url.Values{DeactivateButton: {"x"}}))
	assert.Equal(t, NoLicenseAction, PressedLicenseAction(url.Values{"submit": {"Save"}}))
}

func TestRenderFieldControls(t *testing.T) {
	schema := testSchema()
	values := schema.Resolve(settings.Values{
		sharing.KeyNetworks: map[string]any{"email": true},
		sharing.KeyStyle:    "labels",
	})

	style, _ := schema.Field(sharing.KeyStyle)
	out, err := RenderField(style, values, "", 0)
	require.NoError(t, err)
	assert.Contains(t, string(out), `id="tzss_settings[style][labels]" type="radio" value="labels" checked="checked"/>`)
	assert.NotContains(t, string(out), `value="icons" checked`)
	assert.Contains(t, string(out), "<strong>both</strong>")

	networks, _ := schema.Field(sharing.KeyNetworks)
	out, err = RenderField(networks, values, "", 0)
	require.NoError(t, err)
	assert.Contains(t, string(out), `name="tzss_settings[networks][email]" id="tzss_settings[networks][email]" type="checkbox" value="1" checked="checked"/>`)
	assert.Contains(t, string(out), `name="tzss_settings[networks][facebook]" id="tzss_settings[networks][facebook]" type="checkbox" value="1"/>`)
}

func TestRenderTextNoDoubleEscape(t *testing.T) {
	f := settings.Field{Key: "headline", Type: settings.TypeText}
	schema := settings.NewRegistry(f).Finalize()
	values := schema.Sanitize(map[string]any{"headline": `Tom & "Jerry"`}, nil, settings.SanitizeOptions{})

	out, err := RenderField(f, values, "", 0)
	require.NoError(t, err)
	assert.Contains(t, string(out), `value="Tom &amp; &#34;Jerry&#34;"`)
}

func TestRenderKeepsTypedEntities(t *testing.T) {
	text := settings.Field{Key: "headline", Type: settings.TypeText}
	area := settings.Field{Key: "notes", Type: settings.TypeTextarea}
	schema := settings.NewRegistry(text, area).Finalize()
	submitted := map[string]any{"headline": "&lt;b&gt;", "notes": "&lt;i&gt; & more"}
	values := schema.Sanitize(submitted, nil, settings.SanitizeOptions{})

	out, err := RenderField(text, values, "", 0)
	require.NoError(t, err)
	assert.Contains(t, string(out), `value="&amp;lt;b&amp;gt;"`)

	out, err = RenderField(area, values, "", 0)
	require.NoError(t, err)
	assert.Contains(t, string(out), `>&amp;lt;i&amp;gt; &amp; more</textarea>`)

	// Saving the page again posts the decoded field values.
	again := schema.Sanitize(map[string]any(values), values, settings.SanitizeOptions{})
	assert.Equal(t, "&lt;b&gt;", again.String("headline"))
	assert.Equal(t, "&lt;i&gt; & more", again.String("notes"))
}

func TestRenderNumberAndSelect(t *testing.T) {
	min, max := 1.0, 6.0
	num := settings.Field{Key: "columns", Type: settings.TypeNumber, Min: &min, Max: &max, Size: "small"}
	sel := settings.Field{Key: "layout", Type: settings.TypeSelect, Default: "grid", Options: []settings.Option{{Key: "grid", Label: "Grid"}, {Key: "list", Label: "List"}}}
	values := settings.Values{"columns": 3.5, "layout": "list"}

	out, err := RenderField(num, values, "", 0)
	require.NoError(t, err)
	assert.Contains(t, string(out), `step="1" max="6" min="1" class="small-text"`)
	assert.Contains(t, string(out), `value="3.5"`)

	out, err = RenderField(sel, values, "", 0)
	require.NoError(t, err)
	assert.Contains(t, string(out), `<option value="list" selected="selected">List</option>`)
}

func TestRenderLicenseStates(t *testing.T) {
	f := license.Field()
	withKey := settings.Values{license.KeyLicenseKey: "KEY-1"}

	tests := []struct {
		name   string
		values settings.Values
		status string
		want   []string
		absent []string
	}{
		{"no key", settings.Values{}, "valid", []string{ActivateButton}, []string{DeactivateButton, "valid!"}},
		{"valid", withKey, "valid", []string{DeactivateButton, "Your license is valid!"}, []string{ActivateButton}},
		{"expired", withKey, "expired", []string{"Renew Your License", "edd_license_key=KEY-1", "download_id=7"}, []string{ActivateButton}},
		{"invalid", withKey, "invalid", []string{ActivateButton, "Your license is invalid!"}, nil},
		{"inactive", withKey, "inactive", []string{ActivateButton}, []string{"invalid!"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := RenderField(f, tt.values, tt.status, 7)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, string(out), w)
			}
			for _, a := range tt.absent {
				assert.NotContains(t, string(out), a)
			}
		})
	}
}

func TestRenderFieldUnsupported(t *testing.T) {
	_, err := RenderField(settings.Field{Key: "logo", Type: "upload"}, settings.Values{}, "", 0)
	var unsupported *UnsupportedFieldError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "logo", unsupported.Key)
}

func TestPageRender(t *testing.T) {
	logging.Disable()
	defer logging.Enable()

	schema := testSchema(settings.Field{Key: "logo", Name: "Logo", Section: "extras", Type: "upload"})
	page := NewPage(schema, "Social Sharing", "1.0", 7)

	var buf bytes.Buffer
	err := page.Render(&buf, View{
		Values:  schema.Defaults(),
		Nonce:   "abc",
		Notices: []Notice{{Kind: "success", Message: "Settings saved."}},
	})
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, `<input type="hidden" name="_tzss_nonce" value="abc"/>`)
	assert.Contains(t, out, `<div class="notice notice-success"><p>Settings saved.</p></div>`)
	assert.Contains(t, out, "<h2>General</h2>")
	assert.Contains(t, out, "<h2>extras</h2>")
	assert.Contains(t, out, "The callback function used for the <strong>logo</strong> setting is missing.")
	assert.Less(t, strings.Index(out, "<h2>General</h2>"), strings.Index(out, "<h2>License</h2>"))
	assert.Less(t, strings.Index(out, "<h2>License</h2>"), strings.Index(out, "<h2>extras</h2>"))
	assert.Contains(t, out, `target="_blank"`)
}

func TestNonceStore(t *testing.T) {
	n := NewNonceStore(time.Hour)
	now := time.Unix(1_700_000_000, 0)
	n.now = func() time.Time { return now }

	a := n.Issue()
	assert.True(t, n.Consume(a))
	assert.False(t, n.Consume(a), "nonces are single use")
	assert.False(t, n.Consume("not-a-uuid"))

	b := n.Issue()
	now = now.Add(2 * time.Hour)
	assert.False(t, n.Consume(b), "expired nonce")
}
