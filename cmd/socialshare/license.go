package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func LicenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "license",
		Short: "Manage the license used for updates and support",
		RunE: func(cmd *cobra.Command, args []string) error {
			svcCtx, err := openServiceContext(cmd.Context())
			if err != nil {
				return err
			}
			defer svcCtx.Close()

			info := svcCtx.License.Info()
			if info.Notice != "" {
				fmt.Println(info.Notice)
				return nil
			}
			fmt.Printf("License status: %s\n", statusOrUnknown(string(info.Status)))
			return nil
		},
	}

	activateCmd := &cobra.Command{
		Use:   "activate [key]",
		Short: "Activate a license key for this site",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svcCtx, err := openServiceContext(cmd.Context())
			if err != nil {
				return err
			}
			defer svcCtx.Close()

			var key string
			if len(args) > 0 {
				key = args[0]
			}
			status, err := svcCtx.License.Activate(cmd.Context(), key)
			if err != nil {
				return err
			}
			fmt.Printf("License status: %s\n", status)
			return nil
		},
	}

	deactivateCmd := &cobra.Command{
		Use:   "deactivate",
		Short: "Release the license activation for this site",
		RunE: func(cmd *cobra.Command, args []string) error {
			svcCtx, err := openServiceContext(cmd.Context())
			if err != nil {
				return err
			}
			defer svcCtx.Close()

			status, err := svcCtx.License.Deactivate(cmd.Context(), "")
			if err != nil {
				return err
			}
			fmt.Printf("License status: %s\n", status)
			return nil
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Ask the store for the current license status",
		RunE: func(cmd *cobra.Command, args []string) error {
			svcCtx, err := openServiceContext(cmd.Context())
			if err != nil {
				return err
			}
			defer svcCtx.Close()

			status, err := svcCtx.License.Check(cmd.Context())
			if err != nil {
				fmt.Printf("License status: %s (stored, check failed: %v)\n", statusOrUnknown(string(status)), err)
				return nil
			}
			fmt.Printf("License status: %s\n", status)
			return nil
		},
	}

	cmd.AddCommand(activateCmd, deactivateCmd, checkCmd)
	return cmd
}

func statusOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
