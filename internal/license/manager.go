package license

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/neboloop/socialshare/internal/logging"
	"github.com/neboloop/socialshare/internal/settings"
)

const (
	// CheckTransient caches the last remote check result.
	CheckTransient = "tzss_license_check"
	// CheckInterval is how long a remote check result is trusted.
	CheckInterval = 24 * time.Hour
)

// Remote is the store API the manager drives.
type Remote interface {
	Activate(ctx context.Context, key string) (Status, error)
	Deactivate(ctx context.Context, key string) (Status, error)
	Check(ctx context.Context, key string) (Status, error)
}

// SettingsStore is the persisted settings the manager reads the key from and
// records the status in.
type SettingsStore interface {
	Get() settings.Values
	LicenseStatus() string
	SetLicenseStatus(ctx context.Context, status string) error
	Patch(ctx context.Context, changes map[string]any, opts settings.SanitizeOptions) (settings.Values, error)
}

// TransientStore caches values with an expiry.
type TransientStore interface {
	LoadTransient(ctx context.Context, name string) (string, bool, error)
	SaveTransient(ctx context.Context, name, value string, ttl time.Duration) error
	RemoveTransient(ctx context.Context, name string) error
}

// Info summarizes the license state for display.
type Info struct {
	HasKey bool   `json:"hasKey"`
	Status Status `json:"status,omitempty"`
	Notice string `json:"notice,omitempty"`
}

// Manager runs the activate, deactivate and check flows. Transport errors
// never change the stored status.
type Manager struct {
	remote      Remote
	settings    SettingsStore
	transients  TransientStore
	productName string

	mu  sync.Mutex
	key string // key the stored status belongs to
}

// NewManager creates a manager.
func NewManager(remote Remote, store SettingsStore, transients TransientStore, productName string) *Manager {
	m := &Manager{
		remote:      remote,
		settings:    store,
		transients:  transients,
		productName: productName,
	}
	m.key = m.Key()
	return m
}

// Key returns the stored license key.
func (m *Manager) Key() string {
	return strings.TrimSpace(m.settings.Get().String(KeyLicenseKey))
}

// Status returns the stored status without contacting the store.
func (m *Manager) Status() Status {
	s := m.settings.LicenseStatus()
	if s == "" {
		return ""
	}
	return ParseStatus(s)
}

// Info describes the stored state, including the missing-key notice.
func (m *Manager) Info() Info {
	info := Info{HasKey: m.Key() != "", Status: m.Status()}
	if !info.HasKey {
		info.Notice = Notice(m.productName)
	}
	return info
}

// Activate activates key, or the stored key when key is empty. A submitted
// key different from the stored one is saved first. Nothing is sent when the
// stored status is already valid.
func (m *Manager) Activate(ctx context.Context, key string) (Status, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		key = m.Key()
	}
	if key == "" {
		return m.Status(), ErrNoLicenseKey
	}

	if key != m.Key() {
		values, err := m.settings.Patch(ctx, map[string]any{KeyLicenseKey: key}, settings.SanitizeOptions{})
		if err != nil {
			return m.Status(), err
		}
		m.SettingsChanged(values)
		// Activate the key as stored so every later call sends the same string.
		if key = m.Key(); key == "" {
			return m.Status(), ErrNoLicenseKey
		}
	}

	if m.Status() == StatusValid {
		return StatusValid, nil
	}

	status, err := m.remote.Activate(ctx, key)
	if err != nil {
		logging.Warnw("license activation failed", "error", err)
		return m.Status(), err
	}

	if err := m.settings.SetLicenseStatus(ctx, string(status)); err != nil {
		return status, err
	}
	m.forgetCheck(ctx)
	logging.Infow("license activated", "status", status)
	return status, nil
}

// Deactivate releases the activation and marks the license inactive.
func (m *Manager) Deactivate(ctx context.Context, key string) (Status, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		key = m.Key()
	}
	if key == "" {
		return m.Status(), ErrNoLicenseKey
	}

	if _, err := m.remote.Deactivate(ctx, key); err != nil {
		logging.Warnw("license deactivation failed", "error", err)
		return m.Status(), err
	}

	if err := m.settings.SetLicenseStatus(ctx, string(StatusInactive)); err != nil {
		return StatusInactive, err
	}
	m.forgetCheck(ctx)
	logging.Infow("license deactivated")
	return StatusInactive, nil
}

// Check returns the license status, asking the store at most once per
// CheckInterval. On transport failure the stored status is returned along
// with the error.
func (m *Manager) Check(ctx context.Context) (Status, error) {
	key := m.Key()
	if key == "" {
		return m.Status(), ErrNoLicenseKey
	}

	if cached, ok, err := m.transients.LoadTransient(ctx, CheckTransient); err != nil {
		logging.Warnw("license check cache unavailable", "error", err)
	} else if ok {
		return ParseStatus(cached), nil
	}

	status, err := m.remote.Check(ctx, key)
	if err != nil {
		return m.Status(), err
	}

	if err := m.settings.SetLicenseStatus(ctx, string(status)); err != nil {
		return status, err
	}
	if err := m.transients.SaveTransient(ctx, CheckTransient, string(status), CheckInterval); err != nil {
		logging.Warnw("failed to cache license check", "error", err)
	}
	return status, nil
}

// IsValid reports whether the license is currently valid.
func (m *Manager) IsValid(ctx context.Context) bool {
	status, err := m.Check(ctx)
	if err != nil && !errors.Is(err, ErrNoLicenseKey) {
		logging.Warnw("license check failed, using stored status", "error", err)
	}
	return status == StatusValid
}

// SettingsChanged forgets the stored status when the license key differs
// from the one the status was recorded for. It is registered as a settings
// change callback so keys saved through the settings form are covered too.
func (m *Manager) SettingsChanged(values settings.Values) {
	key := strings.TrimSpace(values.String(KeyLicenseKey))

	m.mu.Lock()
	changed := key != m.key
	m.key = key
	m.mu.Unlock()

	if !changed || m.settings.LicenseStatus() == "" {
		return
	}

	ctx := context.Background()
	if err := m.settings.SetLicenseStatus(ctx, ""); err != nil {
		logging.Warnw("failed to clear license status", "error", err)
		return
	}
	m.forgetCheck(ctx)
	logging.Infow("license key changed, status cleared")
}

func (m *Manager) forgetCheck(ctx context.Context) {
	if err := m.transients.RemoveTransient(ctx, CheckTransient); err != nil {
		logging.Warnw("failed to clear license check cache", "error", err)
	}
}
