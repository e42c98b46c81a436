package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/olivierh59500/neuralgraph/ggcanvas"
)

func renderCmd(opts *rootOptions) *cobra.Command {
	var (
		width, height int
		frames, every int
		out           string
		still         bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render frames to PNG files without a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}

			ro := ggcanvas.Options{
				Width:   s.Window.Width,
				Height:  s.Window.Height,
				Frames:  s.Render.Frames,
				Every:   s.Render.Every,
				Dir:     s.Render.Out,
				Seed:    s.Seed,
				Pointer: !still,
			}
			if width > 0 {
				ro.Width = width
			}
			if height > 0 {
				ro.Height = height
			}
			if cmd.Flags().Changed("frames") {
				ro.Frames = frames
			}
			if cmd.Flags().Changed("every") {
				ro.Every = every
			}
			if out != "" {
				ro.Dir = out
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s preset, %d frames at %dx%d\n",
				Info.Sprint("rendering"), s.Preset, ro.Frames, ro.Width, ro.Height)

			paths, err := ggcanvas.Render(ctx, cfg, ro)
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d frames to %s\n", Good.Sprint("wrote"), len(paths), ro.Dir)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Image width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "Image height in pixels")
	cmd.Flags().IntVar(&frames, "frames", 0, "Engine frames to run")
	cmd.Flags().IntVar(&every, "every", 0, "Save one PNG every N frames")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output directory")
	cmd.Flags().BoolVar(&still, "still", false, "Keep the pointer off the canvas")

	return cmd
}
