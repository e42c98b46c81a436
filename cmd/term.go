package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/olivierh59500/neuralgraph/engine"
	"github.com/olivierh59500/neuralgraph/termhost"
)

func termCmd(opts *rootOptions) *cobra.Command {
	var fps int

	cmd := &cobra.Command{
		Use:   "term",
		Short: "Run the animation in the terminal",
		Long: Brand.Sprint("neuralgraph term") + " - draws the graph with terminal cells\n" +
			Subtle.Sprint("q or esc quit, space pause, r regenerate, h contrast, f faces"),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if !opts.verbose {
				// log lines would tear the screen
				engine.SetLogger(nil)
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			if err := screen.Init(); err != nil {
				return err
			}
			defer screen.Fini()

			term, err := termhost.New(screen, cfg, termhost.Options{FPS: fps, Seed: s.Seed})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			err = term.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().IntVar(&fps, "fps", termhost.DefaultFPS, "Frames per second")

	return cmd
}
