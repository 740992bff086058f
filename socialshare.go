package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	cli "github.com/neboloop/socialshare/cmd/socialshare"
	"github.com/neboloop/socialshare/internal/config"
	"github.com/neboloop/socialshare/internal/defaults"
)

//go:embed etc/socialshare.yaml
var embeddedConfig []byte

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	// Embedded defaults, overlaid by <data_dir>/config.yaml when present
	var overlay string
	if dataDir, err := defaults.DataDir(); err == nil {
		overlay = filepath.Join(dataDir, defaults.ConfigFile)
	}
	c, err := config.LoadFrom(embeddedConfig, overlay)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Pass config to CLI and execute
	if err := cli.SetupRootCmd(&c, embeddedConfig).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
