package cmd

import (
	"github.com/spf13/cobra"

	"github.com/olivierh59500/neuralgraph/ebitenhost"
)

func windowCmd(opts *rootOptions) *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Open the animation in a desktop window (default)",
		Long: Brand.Sprint("neuralgraph window") + " - runs the engine at 60 ticks per second\n" +
			Subtle.Sprint("space pause, r regenerate, h contrast, f faces, s/l save/load settings, wheel scale"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			w, h := s.Window.Width, s.Window.Height
			if width > 0 {
				w = width
			}
			if height > 0 {
				h = height
			}

			host, err := ebitenhost.New(cfg, ebitenhost.Options{
				Width:        w,
				Height:       h,
				Title:        s.Window.Title,
				Preset:       s.Preset,
				SettingsPath: opts.path(),
				Seed:         s.Seed,
			})
			if err != nil {
				return err
			}
			return ebitenhost.Run(host)
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Window width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "Window height in pixels")

	return cmd
}
