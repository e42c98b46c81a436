package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/olivierh59500/neuralgraph/engine"
	"github.com/olivierh59500/neuralgraph/settings"
)

var version = "0.3.0"

// rootOptions are the flags shared by every command.
type rootOptions struct {
	configPath string
	preset     string
	seed       int64
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "neuralgraph",
		Short: "neuralgraph - animated particle networks",
		Long: Brand.Sprint("neuralgraph") + " - a drifting particle graph with pointer attraction,\n" +
			Subtle.Sprint("rendered in a window, a terminal, or to PNG frames"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			engine.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	cmd.SetVersionTemplate("neuralgraph {{ .Version }}\n")

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Settings file (default "+settings.Path()+")")
	pf.StringVar(&opts.preset, "preset", "", "Preset: neural or iceberg")
	pf.Int64Var(&opts.seed, "seed", 0, "Random seed, 0 for a clock seed")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging")

	window := windowCmd(opts)
	cmd.RunE = window.RunE
	cmd.Flags().AddFlagSet(window.Flags())

	cmd.AddCommand(
		window,
		renderCmd(opts),
		termCmd(opts),
		configCmd(opts),
	)
	return cmd
}

// Execute runs the root command.
func Execute() error {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, Bad.Sprint("neuralgraph: ")+err.Error())
	}
	return err
}

func (o *rootOptions) path() string {
	if o.configPath != "" {
		return o.configPath
	}
	return settings.Path()
}

// load reads the settings file and applies the shared flags over it.
func (o *rootOptions) load(cmd *cobra.Command) (*settings.Settings, engine.Config, error) {
	s, err := settings.Load(o.path())
	if err != nil {
		return nil, engine.Config{}, err
	}
	if cmd.Flags().Changed("preset") {
		s.Preset = o.preset
	}
	if cmd.Flags().Changed("seed") {
		s.Seed = o.seed
	}
	cfg, err := s.Config()
	if err != nil {
		return nil, engine.Config{}, err
	}
	return s, cfg, nil
}
