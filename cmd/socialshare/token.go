package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/neboloop/socialshare/internal/middleware"
)

func TokenCmd() *cobra.Command {
	var (
		userID string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for the settings API and page",
		Long: `Issue a signed access token. Send it as "Authorization: Bearer <token>"
or open /admin/login?token=<token> in a browser.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svcCtx, err := openServiceContext(cmd.Context())
			if err != nil {
				return err
			}
			defer svcCtx.Close()

			if ttl <= 0 {
				ttl = time.Duration(svcCtx.Config.Auth.AccessExpire) * time.Second
			}
			token, err := middleware.IssueToken(svcCtx.AccessSecret, userID, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "admin", "user the token is issued to")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default: auth.access_expire)")
	return cmd
}
