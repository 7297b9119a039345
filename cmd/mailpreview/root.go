package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailpreview/pkg/api"
	"github.com/dmitrymomot/mailpreview/pkg/config"
	"github.com/dmitrymomot/mailpreview/pkg/logger"
)

// app carries state shared by the subcommands.
type app struct {
	out     io.Writer
	errOut  io.Writer
	environ map[string]string

	envFiles     []string
	serverURL    string
	templatesDir string
	storage      string
	verbose      bool

	cfg    appConfig
	logger *slog.Logger
}

// newRootCmd builds the command tree. A nil environ reads the process environment
// and the configured .env files.
func newRootCmd(out, errOut io.Writer, environ map[string]string) *cobra.Command {
	a := &app{out: out, errOut: errOut, environ: environ}

	root := &cobra.Command{
		Use:           "mailpreview",
		Short:         "Preview and test-send email templates",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringSliceVar(&a.envFiles, "env-file", []string{".env"}, "dotenv files to load")
	flags.StringVar(&a.serverURL, "server", "", "mailpreview server URL; in-process when empty")
	flags.StringVar(&a.templatesDir, "templates", "", "templates directory (overrides TEMPLATES_DIR)")
	flags.StringVar(&a.storage, "storage", "", "template storage: local or s3 (overrides TEMPLATES_STORAGE)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		newServeCmd(a),
		newListCmd(a),
		newRenderCmd(a),
		newSendCmd(a),
	)

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w\n\n%s", err, cmd.UsageString())
	})
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	opts := []config.Option{config.WithEnvFiles(a.envFiles...)}
	if a.environ != nil {
		opts = append(opts, config.WithEnvironment(a.environ))
	}
	if err := config.Load(&a.cfg, opts...); err != nil {
		return err
	}

	if cmd.Flags().Changed("templates") {
		a.cfg.TemplatesDir = a.templatesDir
	}
	if cmd.Flags().Changed("storage") {
		a.cfg.Storage = a.storage
	}
	if a.serverURL == "" {
		a.serverURL = a.cfg.ServerURL
	}

	logOpts := []logger.Option{
		logger.WithOutput(a.errOut),
		logger.WithEnvironment(a.cfg.Env, "mailpreview"),
		logger.WithContextExtractors(api.RequestIDExtractor()),
	}
	if a.verbose {
		logOpts = append(logOpts, logger.WithLevel(slog.LevelDebug))
	} else if cmd.Name() != "serve" {
		logOpts = append(logOpts, logger.WithLevel(slog.LevelWarn))
	}
	a.logger = logger.New(logOpts...)
	return nil
}
