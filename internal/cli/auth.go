package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/clients/acl"
	"github.com/jsamuelsen/askkodiak-gateway/internal/cli/credentials"
	"github.com/jsamuelsen/askkodiak-gateway/internal/cli/output"
)

// Environment keys read by "auth login". They match the gateway's
// configuration keys.
const (
	envGroupID = "APP_KODIAK_GROUP_ID"
	envAPIKey  = "APP_KODIAK_API_KEY"
)

func newAuthCmd(rt *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage Ask Kodiak credentials stored in the OS keychain",
	}

	cmd.AddCommand(newAuthLoginCmd(rt), newAuthStatusCmd(rt), newAuthLogoutCmd(rt))

	return cmd
}

func newAuthLoginCmd(rt *session) *cobra.Command {
	var (
		creds   acl.Credentials
		fromEnv string
		verify  bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Save a group ID and API key for the active profile",
		Long: strings.TrimSpace(`
Save Ask Kodiak credentials to the OS keychain under --profile.

Values come from --group-id and --api-key, then from --from-env-file, then
from the APP_KODIAK_GROUP_ID and APP_KODIAK_API_KEY environment variables.`),
		Example: strings.TrimSpace(`
  kodiak auth login --group-id GROUP --api-key KEY
  kodiak auth login --from-env-file kodiak.env --profile staging --verify`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if fromEnv != "" {
				vars, err := godotenv.Read(fromEnv)
				if err != nil {
					return fmt.Errorf("reading %s: %w", fromEnv, err)
				}

				creds.GroupID = firstNonBlank(creds.GroupID, vars[envGroupID])
				creds.APIKey = firstNonBlank(creds.APIKey, vars[envAPIKey])
			}

			creds.GroupID = firstNonBlank(creds.GroupID, os.Getenv(envGroupID))
			creds.APIKey = firstNonBlank(creds.APIKey, os.Getenv(envAPIKey))

			if creds.GroupID == "" || creds.APIKey == "" {
				return errors.New("both a group ID and an API key are required")
			}

			if verify {
				if err := rt.verify(cmd.Context(), creds); err != nil {
					return fmt.Errorf("credentials rejected: %w", err)
				}
			}

			if err := rt.opts.Store.Save(rt.flags.profile, creds); err != nil {
				return err
			}

			return rt.printer.Print(authStatus(rt.flags.profile, "keyring", creds), func(t *output.Text) {
				t.Heading("Saved credentials for profile %s", rt.flags.profile)
			})
		},
	}

	cmd.Flags().StringVar(&creds.GroupID, "group-id", "", "Ask Kodiak group ID")
	cmd.Flags().StringVar(&creds.APIKey, "api-key", "", "Ask Kodiak API key")
	cmd.Flags().StringVar(&fromEnv, "from-env-file", "", "read "+envGroupID+" and "+envAPIKey+" from a dotenv file")
	cmd.Flags().BoolVar(&verify, "verify", false, "call the API with the credentials before saving them")

	return cmd
}

func newAuthStatusCmd(rt *session) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which credentials requests will use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := rt.loadConfig()
			if err != nil {
				return err
			}

			source := "config"
			creds := acl.Credentials{GroupID: cfg.Kodiak.GroupID, APIKey: cfg.Kodiak.APIKey}

			if !cfg.Kodiak.HasCredentials() {
				source = "keyring"

				creds, err = rt.opts.Store.Load(rt.flags.profile)
				if errors.Is(err, credentials.ErrNotConfigured) {
					source = "none"
				} else if err != nil {
					return err
				}
			}

			status := authStatus(rt.flags.profile, source, creds)

			if verify && source != "none" {
				ok := rt.verify(cmd.Context(), creds) == nil
				status.Verified = &ok
			}

			return rt.printer.Print(status, func(t *output.Text) {
				t.Field("Profile", status.Profile)
				t.Field("Source", status.Source)
				t.Field("Group ID", status.GroupID)
				t.Field("API key", status.APIKey)

				if status.Verified != nil {
					t.Verdict("Verified", *status.Verified)
				}
			})
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "call the API with the credentials")

	return cmd
}

func newAuthLogoutCmd(rt *session) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the active profile's stored credentials",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := rt.opts.Store.Delete(rt.flags.profile); err != nil {
				return err
			}

			return rt.printer.Print(map[string]string{"profile": rt.flags.profile, "status": "removed"}, func(t *output.Text) {
				t.Heading("Removed credentials for profile %s", rt.flags.profile)
			})
		},
	}
}

type authStatusView struct {
	Profile  string `json:"profile"`
	Source   string `json:"source"`
	GroupID  string `json:"groupId,omitempty"`
	APIKey   string `json:"apiKey,omitempty"`
	Verified *bool  `json:"verified,omitempty"`
}

func authStatus(profile, source string, creds acl.Credentials) authStatusView {
	return authStatusView{
		Profile: profile,
		Source:  source,
		GroupID: creds.GroupID,
		APIKey:  maskSecret(creds.APIKey),
	}
}

// verify calls a cheap endpoint with creds.
func (rt *session) verify(ctx context.Context, creds acl.Credentials) error {
	cfg, err := rt.loadConfig()
	if err != nil {
		return err
	}

	client, err := acl.NewFromConfig(cfg, acl.Options{Credentials: &creds, Logger: rt.logger})
	if err != nil {
		return err
	}

	return client.Check(ctx)
}

// maskSecret keeps the last four characters of secrets longer than eight.
func maskSecret(s string) string {
	if len(s) <= 8 {
		return strings.Repeat("*", len(s))
	}

	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}

	return ""
}
