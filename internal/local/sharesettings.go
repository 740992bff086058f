package local

import (
	"context"
	"fmt"
	"sync"

	"github.com/neboloop/socialshare/internal/logging"
	"github.com/neboloop/socialshare/internal/settings"
)

// SettingsOption is the option row holding the persisted settings blob.
const SettingsOption = "tzss_settings"

// OptionStore is the host options table.
type OptionStore interface {
	LoadOption(ctx context.Context, name string) (string, bool, error)
	SaveOption(ctx context.Context, name, value string) error
	RemoveOption(ctx context.Context, name string) error
}

// SettingsChangeCallback is called with the resolved settings after every write.
type SettingsChangeCallback func(settings.Values)

// ShareSettingsStore persists the settings blob and serves resolved values
// from memory. Construct it explicitly and pass it where needed.
type ShareSettingsStore struct {
	options   OptionStore
	schema    *settings.Schema
	mu        sync.RWMutex
	persisted settings.Values
	resolved  settings.Values
	callbacks []SettingsChangeCallback
}

// NewShareSettingsStore creates a store over options. Call Load before use;
// until then Get returns the schema defaults.
func NewShareSettingsStore(options OptionStore, schema *settings.Schema) *ShareSettingsStore {
	return &ShareSettingsStore{
		options:   options,
		schema:    schema,
		persisted: settings.Values{},
		resolved:  schema.Defaults(),
	}
}

// Schema returns the finalized schema the store validates against.
func (s *ShareSettingsStore) Schema() *settings.Schema {
	return s.schema
}

// Load reads the persisted blob. A corrupt blob is logged and treated as empty
// so the site keeps rendering with defaults.
func (s *ShareSettingsStore) Load(ctx context.Context) error {
	raw, ok, err := s.options.LoadOption(ctx, SettingsOption)
	if err != nil {
		return fmt.Errorf("local: load settings: %w", err)
	}

	persisted := settings.Values{}
	if ok {
		decoded, err := settings.DecodeValues([]byte(raw))
		if err != nil {
			logging.Warnw("ignoring corrupt settings blob", "option", SettingsOption, "error", err)
		} else {
			persisted = decoded
		}
	}

	s.mu.Lock()
	s.persisted = persisted
	s.resolved = s.schema.Resolve(persisted)
	s.mu.Unlock()
	return nil
}

// Get returns a copy of the resolved settings.
func (s *ShareSettingsStore) Get() settings.Values {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolved.Clone()
}

// Save sanitizes a full form submission, persists it and returns the
// resolved result. Checkboxes absent from raw are stored as false.
func (s *ShareSettingsStore) Save(ctx context.Context, raw map[string]any, opts settings.SanitizeOptions) (settings.Values, error) {
	return s.write(ctx, func(previous settings.Values) settings.Values {
		return s.schema.Sanitize(raw, previous, opts)
	})
}

// Patch applies a partial update: keys absent from changes keep their value.
func (s *ShareSettingsStore) Patch(ctx context.Context, changes map[string]any, opts settings.SanitizeOptions) (settings.Values, error) {
	return s.write(ctx, func(previous settings.Values) settings.Values {
		return s.schema.Patch(s.schema.Resolve(previous), changes, opts)
	})
}

// Reset deletes the stored blob so every key falls back to its default.
func (s *ShareSettingsStore) Reset(ctx context.Context) (settings.Values, error) {
	if err := s.options.RemoveOption(ctx, SettingsOption); err != nil {
		return nil, fmt.Errorf("local: reset settings: %w", err)
	}

	s.mu.Lock()
	s.persisted = settings.Values{}
	s.resolved = s.schema.Defaults()
	resolved, cbs := s.snapshotLocked()
	s.mu.Unlock()

	notify(cbs, resolved)
	return resolved.Clone(), nil
}

// LicenseStatus returns the stored license status, "" when never checked.
func (s *ShareSettingsStore) LicenseStatus() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolved.String(settings.LicenseStatusKey)
}

// SetLicenseStatus records a license status without touching user settings.
func (s *ShareSettingsStore) SetLicenseStatus(ctx context.Context, status string) error {
	_, err := s.write(ctx, func(previous settings.Values) settings.Values {
		next := previous.Clone()
		next[settings.LicenseStatusKey] = status
		return next
	})
	return err
}

// OnChange registers a callback that fires whenever settings are updated.
func (s *ShareSettingsStore) OnChange(cb SettingsChangeCallback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks = append(s.callbacks, cb)
}

// write serializes read-modify-write cycles so concurrent saves within one
// process do not interleave. The last write wins.
func (s *ShareSettingsStore) write(ctx context.Context, next func(settings.Values) settings.Values) (settings.Values, error) {
	s.mu.Lock()

	persisted := next(s.persisted)
	data, err := persisted.Encode()
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := s.options.SaveOption(ctx, SettingsOption, string(data)); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("local: save settings: %w", err)
	}

	s.persisted = persisted
	s.resolved = s.schema.Resolve(persisted)
	resolved, cbs := s.snapshotLocked()
	s.mu.Unlock()

	notify(cbs, resolved)
	return resolved.Clone(), nil
}

func (s *ShareSettingsStore) snapshotLocked() (settings.Values, []SettingsChangeCallback) {
	cbs := make([]SettingsChangeCallback, len(s.callbacks))
	copy(cbs, s.callbacks)
	return s.resolved.Clone(), cbs
}

func notify(cbs []SettingsChangeCallback, values settings.Values) {
	for _, cb := range cbs {
		cb(values.Clone())
	}
}
