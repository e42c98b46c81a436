package cmd

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/olivierh59500/neuralgraph/settings"
)

func configCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create the settings file",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the settings file path",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), opts.path())
			},
		},
		configInitCmd(opts),
		&cobra.Command{
			Use:   "show",
			Short: "Print the resolved settings, preset values included",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, cfg, err := opts.load(cmd)
				if err != nil {
					return err
				}
				s.Capture(cfg)
				return toml.NewEncoder(cmd.OutOrStdout()).Encode(s)
			},
		},
	)
	return cmd
}

func configInitCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.path()
			if _, err := os.Stat(path); err == nil && !force {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s already exists (use --force)\n", Subtle.Sprint("skip"), path)
				return nil
			}

			s := settings.Default()
			if cmd.Flags().Changed("preset") {
				s.Preset = opts.preset
			}
			if _, err := s.Config(); err != nil {
				return err
			}
			if err := settings.Save(path, s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", Good.Sprint("created"), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}
