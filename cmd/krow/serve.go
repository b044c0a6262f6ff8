package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/krow/internal/errors"
	"github.com/vango-dev/krow/internal/preview"
)

func (c *cli) serveCmd() *cobra.Command {
	var (
		addr   string
		demo   string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demos live in the browser",
		Long: `Start the preview server. Each browser tab gets its own application
instance; surface writes are streamed over WebSocket and events flow back.

Examples:
  krow serve
  krow serve --addr=0.0.0.0:8080 --demo=counter
  krow serve --pretty`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				c.cfg.Preview.Addr = addr
			}
			if cmd.Flags().Changed("demo") {
				c.cfg.Preview.Demo = demo
			}
			if cmd.Flags().Changed("pretty") {
				c.cfg.Preview.Pretty = pretty
			}
			if err := c.cfg.Validate(); err != nil {
				return err
			}
			if _, err := lookupDemo(c.cfg.Preview.Demo); err != nil {
				return err
			}

			srv := preview.New(&preview.Config{
				Addr:           c.cfg.Preview.Addr,
				DefaultDemo:    c.cfg.Preview.Demo,
				Pretty:         c.cfg.Preview.Pretty,
				Namespace:      c.cfg.Metrics.Namespace,
				DisableMetrics: !c.cfg.Metrics.Enabled,
				Logger:         c.logger,
			})

			w := cmd.OutOrStdout()
			printBanner(w)
			info(w, "preview  http://%s", c.cfg.Preview.Addr)
			if c.cfg.Metrics.Enabled {
				info(w, "metrics  http://%s/metrics", c.cfg.Preview.Addr)
			}
			info(w, "")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.Run(ctx); err != nil {
				return errors.New("K401").WithDetail(c.cfg.Preview.Addr).Wrap(err)
			}
			success(w, "preview server stopped")
			return nil
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from krow.toml)")
	cmd.Flags().StringVar(&demo, "demo", "", "Demo served at / (default from krow.toml)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Stream JSON text frames instead of msgpack")

	return cmd
}
