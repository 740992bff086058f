package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neboloop/socialshare/internal/logging"
	"github.com/neboloop/socialshare/internal/sharing"
)

func RenderCmd() *cobra.Command {
	var (
		page      sharing.PageContext
		placement string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render share buttons for a page",
		Long: `Render the share buttons for a page using the saved settings.

Without --placement the enabled buttons are printed as JSON.`,
		Example: `  socialshare render --url https://example.com/post --title "Hello World"
  socialshare render --url https://example.com/post --title "Hello" --placement sidebar`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svcCtx, err := openServiceContext(cmd.Context())
			if err != nil {
				return err
			}
			defer svcCtx.Close()

			out := cmd.OutOrStdout()
			values := svcCtx.Settings.Get()
			buttons := sharing.BuildButtons(values, page)
			logging.Debugw("buttons built", "url", page.URL, "networks", buttons.Keys())

			if placement == "" {
				if buttons == nil {
					buttons = sharing.Buttons{}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(buttons)
			}

			p, ok := sharing.ParsePlacement(placement)
			if !ok {
				return fmt.Errorf("unknown placement %q (want one of above_content, below_content, sidebar)", placement)
			}
			fmt.Fprintln(out, sharing.RenderPlacement(buttons, p, values))
			return nil
		},
	}

	cmd.Flags().StringVar(&page.URL, "url", "", "page URL to share")
	cmd.Flags().StringVar(&page.Title, "title", "", "page title")
	cmd.Flags().StringVar(&page.ThumbnailURL, "thumbnail", "", "featured image URL (used by Pinterest)")
	cmd.Flags().StringVar(&placement, "placement", "", "render the markup for one placement")
	cmd.MarkFlagRequired("url")
	return cmd
}
