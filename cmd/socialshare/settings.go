package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/neboloop/socialshare/internal/settings"
)

func SettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the saved settings",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			svcCtx, err := openServiceContext(cmd.Context())
			if err != nil {
				return err
			}
			defer svcCtx.Close()
			return printValues(cmd.OutOrStdout(), svcCtx.Settings.Get())
		},
	}
	showCmd.Flags().BoolVar(&jsonOut, "json", false, "print JSON instead of YAML")

	setCmd := &cobra.Command{
		Use:   "set key=value...",
		Short: "Change individual settings",
		Long: `Change individual settings. Multicheck options are addressed as key.option;
settings that are not named keep their value.`,
		Example: `  socialshare settings set style=icons networks.twitter=1 networks.facebook=0`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changes, err := parseAssignments(args)
			if err != nil {
				return err
			}

			svcCtx, err := openServiceContext(cmd.Context())
			if err != nil {
				return err
			}
			defer svcCtx.Close()

			values, err := svcCtx.Settings.Patch(cmd.Context(), changes, svcCtx.SanitizeOptions())
			if err != nil {
				return err
			}
			return printValues(cmd.OutOrStdout(), values)
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore every setting to its default",
		RunE: func(cmd *cobra.Command, args []string) error {
			svcCtx, err := openServiceContext(cmd.Context())
			if err != nil {
				return err
			}
			defer svcCtx.Close()

			if _, err := svcCtx.Settings.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Settings reset to defaults.")
			return nil
		},
	}

	cmd.AddCommand(showCmd, setCmd, resetCmd)
	return cmd
}

// parseAssignments turns ["a=1", "b.c=2"] into {"a": "1", "b": {"c": "2"}}.
func parseAssignments(args []string) (map[string]any, error) {
	changes := make(map[string]any)
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid assignment %q, want key=value", arg)
		}

		key, sub, nested := strings.Cut(name, ".")
		if !nested {
			changes[key] = value
			continue
		}
		m, ok := changes[key].(map[string]any)
		if !ok {
			m = make(map[string]any)
			changes[key] = m
		}
		m[sub] = value
	}
	return changes, nil
}

func printValues(w io.Writer, values settings.Values) error {
	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(values)
	}
	return yaml.NewEncoder(w).Encode(map[string]any(values))
}
