package license

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neboloop/socialshare/internal/logging"
	"github.com/neboloop/socialshare/internal/settings"
)

func TestMain(m *testing.M) {
	logging.Disable()
	m.Run()
}

// storeServer fakes the vendor API and records every request form.
type storeServer struct {
	mu     sync.Mutex
	forms  []url.Values
	answer string
	status int
}

func (s *storeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	s.mu.Lock()
	s.forms = append(s.forms, r.PostForm)
	answer, status := s.answer, s.status
	s.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"success":true,"license":"` + answer + `"}`))
}

func (s *storeServer) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.forms)
}

func newClient(t *testing.T, srv *storeServer) *Client {
	t.Helper()
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return NewClient(ClientConfig{
		StoreURL: ts.URL,
		ItemName: "Social Sharing",
		ItemID:   7,
		SiteURL:  "https://x.test/",
		Timeout:  2 * time.Second,
	}, ts.Client())
}

func TestClientActivateForm(t *testing.T) {
	srv := &storeServer{answer: "valid"}
	c := newClient(t, srv)

	status, err := c.Activate(context.Background(), "  KEY-1 ")
	require.NoError(t, err)
	assert.Equal(t, StatusValid, status)

	require.Equal(t, 1, srv.calls())
	form := srv.forms[0]
	assert.Equal(t, "activate_license", form.Get("edd_action"))
	assert.Equal(t, "KEY-1", form.Get("license"))
	assert.Equal(t, "Social Sharing", form.Get("item_name"))
	assert.Equal(t, "7", form.Get("item_id"))
	assert.Equal(t, "https://x.test/", form.Get("url"))
}

func TestClientErrors(t *testing.T) {
	srv := &storeServer{status: http.StatusBadGateway}
	c := newClient(t, srv)

	_, err := c.Check(context.Background(), "KEY")
	assert.ErrorContains(t, err, "502")

	_, err = c.Check(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoLicenseKey)
}

func TestParseStatus(t *testing.T) {
	assert.Equal(t, StatusInactive, ParseStatus("site_inactive"))
	assert.Equal(t, StatusExpired, ParseStatus("EXPIRED"))
	assert.Equal(t, StatusInvalid, ParseStatus("item_name_mismatch"))
}

// fakeSettings is an in-memory SettingsStore. With a schema set, Patch
// sanitizes like the real store.
type fakeSettings struct {
	values settings.Values
	schema *settings.Schema
}

func (f *fakeSettings) Get() settings.Values { return f.values.Clone() }

func (f *fakeSettings) LicenseStatus() string { return f.values.String(settings.LicenseStatusKey) }

func (f *fakeSettings) SetLicenseStatus(_ context.Context, status string) error {
	f.values[settings.LicenseStatusKey] = status
	return nil
}

func (f *fakeSettings) Patch(_ context.Context, changes map[string]any, opts settings.SanitizeOptions) (settings.Values, error) {
	if f.schema != nil {
		f.values = f.schema.Patch(f.values, changes, opts)
		return f.values.Clone(), nil
	}
	for k, v := range changes {
		f.values[k] = v
	}
	return f.values.Clone(), nil
}

type fakeTransients struct {
	values map[string]string
}

func (f *fakeTransients) LoadTransient(_ context.Context, name string) (string, bool, error) {
	v, ok := f.values[name]
	return v, ok, nil
}

func (f *fakeTransients) SaveTransient(_ context.Context, name, value string, _ time.Duration) error {
	f.values[name] = value
	return nil
}

func (f *fakeTransients) RemoveTransient(_ context.Context, name string) error {
	delete(f.values, name)
	return nil
}

func newManager(t *testing.T, srv *storeServer, values settings.Values) (*Manager, *fakeSettings, *fakeTransients) {
	t.Helper()
	store := &fakeSettings{values: values}
	transients := &fakeTransients{values: map[string]string{}}
	return NewManager(newClient(t, srv), store, transients, "Social Sharing"), store, transients
}

func TestCheckCachedForADay(t *testing.T) {
	srv := &storeServer{answer: "expired"}
	m, store, transients := newManager(t, srv, settings.Values{KeyLicenseKey: "KEY"})
	ctx := context.Background()

	status, err := m.Check(ctx)
	require.NoError(t, err)
	assert.Equal(t, StatusExpired, status)
	assert.Equal(t, "expired", store.LicenseStatus())
	assert.Equal(t, "expired", transients.values[CheckTransient])

	_, err = m.Check(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, srv.calls(), "second check is served from the transient")
}

func TestCheckTransportErrorKeepsStatus(t *testing.T) {
	srv := &storeServer{status: http.StatusInternalServerError}
	m, store, transients := newManager(t, srv, settings.Values{KeyLicenseKey: "KEY", settings.LicenseStatusKey: "valid"})

	status, err := m.Check(context.Background())
	require.Error(t, err)
	assert.Equal(t, StatusValid, status)
	assert.Equal(t, "valid", store.LicenseStatus())
	assert.Empty(t, transients.values)
	assert.True(t, m.IsValid(context.Background()))
}

func TestActivateSkipsWhenValid(t *testing.T) {
	srv := &storeServer{answer: "invalid"}
	m, _, _ := newManager(t, srv, settings.Values{KeyLicenseKey: "KEY", settings.LicenseStatusKey: "valid"})

	status, err := m.Activate(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, StatusValid, status)
	assert.Zero(t, srv.calls())
}

func TestActivateStoresKeyAndClearsCache(t *testing.T) {
	srv := &storeServer{answer: "valid"}
	m, store, transients := newManager(t, srv, settings.Values{KeyLicenseKey: ""})
	transients.values[CheckTransient] = "invalid"

	status, err := m.Activate(context.Background(), "NEW-KEY")
	require.NoError(t, err)
	assert.Equal(t, StatusValid, status)
	assert.Equal(t, "NEW-KEY", store.values.String(KeyLicenseKey))
	assert.Equal(t, "valid", store.LicenseStatus())
	assert.NotContains(t, transients.values, CheckTransient)
}

func TestKeyWithMarkupCharactersSentVerbatim(t *testing.T) {
	srv := &storeServer{answer: "valid"}
	m, store, _ := newManager(t, srv, settings.Values{})
	store.schema = settings.NewRegistry(Field()).Finalize()
	ctx := context.Background()

	const key = `ab&c"d'e<1>`
	status, err := m.Activate(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, StatusValid, status)
	assert.Equal(t, key, m.Key())

	_, err = m.Check(ctx)
	require.NoError(t, err)

	require.Equal(t, 2, srv.calls())
	assert.Equal(t, key, srv.forms[0].Get("license"))
	assert.Equal(t, key, srv.forms[1].Get("license"))
}

func TestNewKeyReplacesValidStatus(t *testing.T) {
	srv := &storeServer{answer: "valid"}
	m, store, _ := newManager(t, srv, settings.Values{KeyLicenseKey: "OLD", settings.LicenseStatusKey: "valid"})

	status, err := m.Activate(context.Background(), "NEW")
	require.NoError(t, err)
	assert.Equal(t, StatusValid, status)
	require.Equal(t, 1, srv.calls(), "a new key is activated even though the old one was valid")
	assert.Equal(t, "NEW", srv.forms[0].Get("license"))
	assert.Equal(t, "NEW", store.values.String(KeyLicenseKey))
}

func TestSettingsChangedClearsStatusOnKeyChange(t *testing.T) {
	srv := &storeServer{answer: "valid"}
	m, store, transients := newManager(t, srv, settings.Values{KeyLicenseKey: "OLD", settings.LicenseStatusKey: "valid"})
	transients.values[CheckTransient] = "valid"

	m.SettingsChanged(settings.Values{KeyLicenseKey: " OLD "})
	assert.Equal(t, "valid", store.LicenseStatus(), "same key keeps the status")
	assert.Contains(t, transients.values, CheckTransient)

	store.values[KeyLicenseKey] = "NEW"
	m.SettingsChanged(store.Get())
	assert.Empty(t, store.LicenseStatus())
	assert.NotContains(t, transients.values, CheckTransient)
	assert.Empty(t, m.Status())

	status, err := m.Activate(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, StatusValid, status)
	assert.Equal(t, 1, srv.calls())
}

func TestDeactivate(t *testing.T) {
	srv := &storeServer{answer: "deactivated"}
	m, store, transients := newManager(t, srv, settings.Values{KeyLicenseKey: "KEY", settings.LicenseStatusKey: "valid"})
	transients.values[CheckTransient] = "valid"

	status, err := m.Deactivate(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, status)
	assert.Equal(t, "inactive", store.LicenseStatus())
	assert.Empty(t, transients.values)
}

func TestNoKey(t *testing.T) {
	srv := &storeServer{answer: "valid"}
	m, _, _ := newManager(t, srv, settings.Values{})

	_, err := m.Activate(context.Background(), " ")
	assert.True(t, errors.Is(err, ErrNoLicenseKey))
	_, err = m.Check(context.Background())
	assert.ErrorIs(t, err, ErrNoLicenseKey)
	assert.Zero(t, srv.calls())

	info := m.Info()
	assert.False(t, info.HasKey)
	assert.Contains(t, info.Notice, "Social Sharing")
}

func TestRenewalURL(t *testing.T) {
	assert.Equal(t, "https://themezee.com/checkout?download_id=7&edd_license_key=A+B", RenewalURL("A B", 7))
}
