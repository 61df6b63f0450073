// Package root contains the root command for the application
package root

import (
	"context"
	"errors"
	"fmt"

	"fjacquet/biztrack/internal/config"
	"fjacquet/biztrack/internal/container"
	"fjacquet/biztrack/internal/logging"

	"github.com/spf13/cobra"
)

// GlobalFlags are the persistent flags every command accepts.
type GlobalFlags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
	DataDir    string
}

// ErrNoContainer is returned by ContainerFrom when no container was attached to the context.
var ErrNoContainer = errors.New("application container not initialized")

type contextKey struct{}

type session struct {
	container *container.Container
	// owned is set when the root hooks built the container and must close it.
	owned bool
}

var (
	// Flags holds the values of the persistent flags.
	Flags = GlobalFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "biztrack",
		Short: "A CLI ledger for small-business income and expenses.",
		Long: `biztrack records income and expense transactions in one or two currencies,
summarizes them over a date range and exports reports as CSV, XLSX or PDF.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
		PersistentPreRunE:  setup,
		PersistentPostRunE: teardown,
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVar(&Flags.ConfigFile, "config", "", "Config file (default searches $HOME/.biztrack, .biztrack and .)")
	Cmd.PersistentFlags().StringVar(&Flags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&Flags.LogFormat, "log-format", "", "Log format (text, json)")
	Cmd.PersistentFlags().StringVar(&Flags.DataDir, "data-dir", "", "Directory holding the ledger data")
}

// WithContainer attaches c to ctx. A container attached this way is not closed by the
// root command.
func WithContainer(ctx context.Context, c *container.Container) context.Context {
	return context.WithValue(ctx, contextKey{}, &session{container: c})
}

// ContainerFrom returns the container attached to ctx.
func ContainerFrom(ctx context.Context) (*container.Container, error) {
	if ctx == nil {
		return nil, ErrNoContainer
	}
	s, ok := ctx.Value(contextKey{}).(*session)
	if !ok || s.container == nil {
		return nil, ErrNoContainer
	}
	return s.container, nil
}

// LoadConfig reads the configuration and applies the persistent flag overrides.
func LoadConfig(flags GlobalFlags) (*config.Config, error) {
	cfg, err := config.InitializeConfig(flags.ConfigFile)
	if err != nil {
		return nil, err
	}
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	if flags.LogFormat != "" {
		cfg.Log.Format = flags.LogFormat
	}
	if flags.DataDir != "" {
		cfg.Data.Directory = flags.DataDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setup(cmd *cobra.Command, args []string) error {
	// Help-only commands never touch the data.
	if cmd.RunE == nil {
		return nil
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := ContainerFrom(ctx); err == nil {
		return nil
	}

	config.LoadEnv(logging.NewDiscardLogger())

	cfg, err := LoadConfig(Flags)
	if err != nil {
		return err
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return err
	}
	c.GetLogger().Debug("Command started", logging.F(logging.FieldOperation, cmd.CommandPath()))

	cmd.SetContext(context.WithValue(ctx, contextKey{}, &session{container: c, owned: true}))
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		return nil
	}
	s, ok := ctx.Value(contextKey{}).(*session)
	if !ok || !s.owned {
		return nil
	}
	return s.container.Close()
}
