package svc

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/neboloop/socialshare/internal/admin"
	"github.com/neboloop/socialshare/internal/config"
	"github.com/neboloop/socialshare/internal/db"
	"github.com/neboloop/socialshare/internal/defaults"
	"github.com/neboloop/socialshare/internal/license"
	"github.com/neboloop/socialshare/internal/local"
	"github.com/neboloop/socialshare/internal/settings"
	"github.com/neboloop/socialshare/internal/sharing"
	"github.com/neboloop/socialshare/internal/updater"

	"github.com/neboloop/socialshare/internal/logging"
)

type ServiceContext struct {
	Config       config.Config
	DataDir      string // Root data directory holding the database and config overlay
	Version      string // Build version (e.g. "1.0.0" or "dev")
	AccessSecret string

	DB         *db.Store
	Schema     *settings.Schema
	Settings   *local.ShareSettingsStore
	License    *license.Manager
	AdminPage  *admin.Page
	Nonces     *admin.NonceStore
	HTTPClient *http.Client
}

// Options tweak construction; the zero value is fine for production.
type Options struct {
	// Extensions are extra settings fields appended after the built-in ones.
	Extensions []settings.Field
	// HTTPClient is used for store calls. Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// NewServiceContext wires every dependency explicitly. Close releases them.
func NewServiceContext(ctx context.Context, c config.Config, dataDir, version string, opts Options) (*ServiceContext, error) {
	schema, err := BuildSchema(opts.Extensions...)
	if err != nil {
		return nil, err
	}

	dbPath := c.Database.SQLitePath
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, defaults.DatabaseFile)
	}
	store, err := db.NewSQLite(dbPath)
	if err != nil {
		return nil, fmt.Errorf("svc: open database: %w", err)
	}

	secret := c.Auth.AccessSecret
	if secret == "" {
		secrets, err := local.LoadSecrets(dataDir)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("svc: load secrets: %w", err)
		}
		secret = secrets.AccessSecret
	}

	shareSettings := local.NewShareSettingsStore(store, schema)
	if err := shareSettings.Load(ctx); err != nil {
		store.Close()
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	client := license.NewClient(license.ClientConfig{
		StoreURL: c.License.StoreURL,
		ItemName: c.License.ItemName,
		ItemID:   c.License.ItemID,
		SiteURL:  c.Site.URL,
		Timeout:  c.LicenseTimeout(),
	}, httpClient)

	manager := license.NewManager(client, shareSettings, store, c.License.ItemName)
	shareSettings.OnChange(manager.SettingsChanged)

	logging.Debugw("service context ready", "dataDir", dataDir, "fields", schema.Len())

	return &ServiceContext{
		Config:       c,
		DataDir:      dataDir,
		Version:      version,
		AccessSecret: secret,
		DB:           store,
		Schema:       schema,
		Settings:     shareSettings,
		License:      manager,
		AdminPage:    admin.NewPage(schema, c.License.ItemName, version, c.License.ItemID),
		Nonces:       admin.NewNonceStore(admin.DefaultNonceTTL),
		HTTPClient:   httpClient,
	}, nil
}

// BuildSchema registers the built-in fields followed by extensions.
func BuildSchema(extensions ...settings.Field) (*settings.Schema, error) {
	registry := settings.NewRegistry(sharing.Fields()...)
	if err := registry.Register(license.Field()); err != nil {
		return nil, fmt.Errorf("svc: register license field: %w", err)
	}
	if err := registry.Register(extensions...); err != nil {
		return nil, fmt.Errorf("svc: register extension fields: %w", err)
	}
	return registry.Finalize(), nil
}

// SanitizeOptions is the host policy applied to every settings save.
func (s *ServiceContext) SanitizeOptions() settings.SanitizeOptions {
	return settings.SanitizeOptions{UnfilteredHTML: s.Config.IsUnfilteredHTML()}
}

// Site describes the host site for page contexts.
func (s *ServiceContext) Site() sharing.Site {
	return sharing.Site{URL: s.Config.Site.URL, Name: s.Config.Site.Name}
}

// UpdateSource identifies the product for update checks.
func (s *ServiceContext) UpdateSource() updater.Source {
	return updater.Source{
		StoreURL: s.Config.License.StoreURL,
		ItemName: s.Config.License.ItemName,
		ItemID:   s.Config.License.ItemID,
		SiteURL:  s.Config.Site.URL,
	}
}

// Close releases the database.
func (s *ServiceContext) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
