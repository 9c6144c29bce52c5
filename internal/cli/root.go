// Package cli implements the kodiak command line client: NAICS lookups,
// product eligibility and company queries against Ask Kodiak, using the same
// request pipeline as the gateway.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/clients/acl"
	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/clients/pipeline"
	"github.com/jsamuelsen/askkodiak-gateway/internal/app"
	"github.com/jsamuelsen/askkodiak-gateway/internal/app/memo"
	"github.com/jsamuelsen/askkodiak-gateway/internal/cli/credentials"
	"github.com/jsamuelsen/askkodiak-gateway/internal/cli/output"
	"github.com/jsamuelsen/askkodiak-gateway/internal/platform/config"
	"github.com/jsamuelsen/askkodiak-gateway/internal/platform/logging"
)

// Version is reported by "kodiak version" and sent in the User-Agent.
var Version = "dev"

type rootFlags struct {
	profile   string
	output    string
	jq        string
	edition   string
	baseURL   string
	configDir string
	envFile   string
	noColor   bool
	verbose   bool
}

// Options configures Execute.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer

	// Store defaults to the system keyring.
	Store *credentials.Store
}

type session struct {
	opts    Options
	flags   rootFlags
	printer *output.Printer
	logger  *slog.Logger
}

// Execute runs the command line in args and returns the process exit code.
func Execute(ctx context.Context, args []string, opts Options) int {
	if opts.Store == nil {
		opts.Store = credentials.NewStore()
	}

	rt := &session{opts: opts}
	root := newRootCmd(rt)
	root.SetArgs(args)
	root.SetOut(opts.Stdout)
	root.SetErr(opts.Stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		rt.reportError(err)
		return 1
	}

	return 0
}

func newRootCmd(rt *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "kodiak",
		Short:         "Query Ask Kodiak NAICS and product eligibility data",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.setup(cmd)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVarP(&rt.flags.profile, "profile", "p", credentials.DefaultProfile, "credentials profile")
	f.StringVarP(&rt.flags.output, "output", "o", output.FormatText, "output format: text or json")
	f.StringVar(&rt.flags.jq, "jq", "", "jq expression applied to the JSON output")
	f.StringVar(&rt.flags.edition, "edition", "", "NAICS edition year, e.g. 2022")
	f.StringVar(&rt.flags.baseURL, "base-url", "", "Ask Kodiak API base URL")
	f.StringVar(&rt.flags.configDir, "config-dir", "configs", "directory holding base.yaml and profile files")
	f.StringVar(&rt.flags.envFile, "env-file", ".env", "dotenv file loaded before configuration")
	f.BoolVar(&rt.flags.noColor, "no-color", false, "disable colored output")
	f.BoolVarP(&rt.flags.verbose, "verbose", "v", false, "log requests to stderr")

	cmd.AddCommand(
		newNaicsCmd(rt),
		newProductCmd(rt),
		newCompanyCmd(rt),
		newRefCmd(rt),
		newAuthCmd(rt),
		newVersionCmd(rt),
	)

	return cmd
}

func (rt *session) setup(cmd *cobra.Command) error {
	if rt.flags.envFile != "" {
		if err := godotenv.Load(rt.flags.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", rt.flags.envFile, err)
		}
	}

	rt.printer = &output.Printer{
		Out:     cmd.OutOrStdout(),
		Format:  rt.flags.output,
		Query:   rt.flags.jq,
		NoColor: rt.flags.noColor,
	}
	if err := rt.printer.Validate(); err != nil {
		return err
	}

	level := "error"
	if rt.flags.verbose {
		level = "debug"
	}

	rt.logger = logging.NewWithWriter(&logging.Config{
		Level:   level,
		Format:  "pretty",
		Service: "kodiak",
		Version: Version,
	}, cmd.ErrOrStderr())

	// One memo per invocation, as the gateway keeps one per request.
	cmd.SetContext(memo.WithContext(cmd.Context(), memo.New()))

	return nil
}

// loadConfig reads configuration the way the gateway does, then applies
// command line overrides.
func (rt *session) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFrom(rt.flags.configDir, "")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if rt.flags.baseURL != "" {
		cfg.Kodiak.BaseURL = strings.TrimSuffix(rt.flags.baseURL, "/")
	}

	if rt.flags.edition != "" {
		cfg.Kodiak.NaicsEdition = rt.flags.edition
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// storedCredentials returns stored credentials for the active profile, or nil
// when configuration already carries them or none are stored.
func (rt *session) storedCredentials(cfg *config.Config) *acl.Credentials {
	if cfg.Kodiak.HasCredentials() {
		return nil
	}

	creds, err := rt.opts.Store.Load(rt.flags.profile)
	if err != nil {
		if !errors.Is(err, credentials.ErrNotConfigured) {
			rt.logger.Warn("could not read stored credentials", slog.Any("error", err))
		}

		rt.logger.Debug("sending unauthenticated requests", slog.String("profile", rt.flags.profile))

		return nil
	}

	return &creds
}

func (rt *session) client() (*acl.KodiakClient, *config.Config, error) {
	cfg, err := rt.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	client, err := acl.NewFromConfig(cfg, acl.Options{
		Credentials: rt.storedCredentials(cfg),
		Steps:       []pipeline.Step{pipeline.Header("User-Agent", "kodiak-cli/"+Version)},
		Logger:      rt.logger,
	})
	if err != nil {
		return nil, nil, err
	}

	return client, cfg, nil
}

func (rt *session) service() (*app.ClassificationService, error) {
	client, cfg, err := rt.client()
	if err != nil {
		return nil, err
	}

	return app.NewClassificationService(app.ClassificationServiceConfig{
		Client:         client,
		Logger:         rt.logger,
		MaxConcurrency: cfg.Gateway.MaxConcurrency,
		MaxCodes:       cfg.Gateway.MaxCodes,
	}), nil
}

// run wraps a command body that needs the classification service.
func (rt *session) run(fn func(context.Context, *app.ClassificationService, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		svc, err := rt.service()
		if err != nil {
			return err
		}

		return fn(cmd.Context(), svc, args)
	}
}

func (rt *session) reportError(err error) {
	label := color.New(color.FgRed, color.Bold)
	if rt.flags.noColor {
		label.DisableColor()
	}

	var upstream *acl.NormalizedError
	if errors.As(err, &upstream) && upstream.Status > 0 {
		_, _ = label.Fprintf(rt.opts.Stderr, "error (HTTP %d):", upstream.Status)
		_, _ = fmt.Fprintf(rt.opts.Stderr, " %s\n", upstream.Message)

		return
	}

	_, _ = label.Fprint(rt.opts.Stderr, "error:")
	_, _ = fmt.Fprintf(rt.opts.Stderr, " %v\n", err)
}

func newVersionCmd(rt *session) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the client version",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return rt.printer.Print(map[string]string{"version": Version}, func(t *output.Text) {
				t.Field("kodiak", Version)
			})
		},
	}
}
