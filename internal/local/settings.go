package local

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Secrets holds machine-local values that must not live in the embedded yaml.
type Secrets struct {
	AccessSecret string `json:"accessSecret"`
}

// secretsPath returns the path to the local secrets file
func secretsPath(dataDir string) string {
	return filepath.Join(dataDir, "secrets.json")
}

// LoadSecrets loads local secrets from dataDir, generating and persisting an
// access secret on first use.
func LoadSecrets(dataDir string) (*Secrets, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := os.ReadFile(secretsPath(dataDir))
	if err == nil {
		var secrets Secrets
		if err := json.Unmarshal(data, &secrets); err == nil && secrets.AccessSecret != "" {
			return &secrets, nil
		}
	}

	secrets := Secrets{AccessSecret: generateSecret()}
	if err := SaveSecrets(dataDir, &secrets); err != nil {
		return nil, err
	}
	return &secrets, nil
}

// SaveSecrets persists secrets with owner-only permissions.
func SaveSecrets(dataDir string, secrets *Secrets) error {
	data, err := json.MarshalIndent(secrets, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(secretsPath(dataDir), data, 0600)
}

// generateSecret creates a cryptographically secure random secret
func generateSecret() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("socialshare-%d", os.Getpid())
	}
	return hex.EncodeToString(bytes)
}
