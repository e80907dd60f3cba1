package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	appModels "github.com/yigit/prereqplanner/internal/app/models"
	"github.com/yigit/prereqplanner/internal/config"
	"github.com/yigit/prereqplanner/internal/pkg/auth"
	"github.com/yigit/prereqplanner/internal/pkg/helpers"
)

func newTokenCmd(root *rootOptions) *cobra.Command {
	var subject, role string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed access token for the admin API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(root.configPath)
			if err != nil {
				return err
			}

			roleType := appModels.RoleType(strings.ToUpper(role))
			if roleType != appModels.RoleAdmin && roleType != appModels.RoleReader {
				return fmt.Errorf("unknown role %q (want %s or %s)", role, appModels.RoleAdmin, appModels.RoleReader)
			}

			svc := auth.NewJWTService(auth.JWTConfig{
				SecretKey:      cfg.JWT.Secret,
				AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
				TokenIssuer:    cfg.JWT.Issuer,
			})
			token, expires, err := svc.GenerateToken(subject, roleType)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expires.Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "token subject, e.g. the operator's name")
	cmd.Flags().StringVar(&role, "role", string(appModels.RoleAdmin), "role claim (ADMIN or READER)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
