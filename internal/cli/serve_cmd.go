package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ashlinalex1/mindstride/internal/cli/formatter"
	"github.com/ashlinalex1/mindstride/internal/httpapi"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var addr string
	var debug bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the activity data API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") && app.Config != nil && app.Config.ServerAddr != "" {
				addr = app.Config.ServerAddr
			}

			srv := httpapi.NewServer(httpapi.Options{
				Address:       addr,
				UserID:        app.userID(),
				Debug:         debug,
				Tracking:      app.Tracking,
				Summary:       app.Summary,
				Phone:         app.Phone,
				Logger:        app.logger(),
				OnServerError: app.OnServerError,
				Now:           app.now,
			})

			errc := make(chan error, 1)
			go func() { errc <- srv.Start() }()
			fmt.Fprintf(cmd.OutOrStdout(), "%s Serving on http://%s\n", formatter.StyleGreen.Render("●"), addr)

			select {
			case err := <-errc:
				return err
			case <-cmd.Context().Done():
			}

			ctx, cancel := context.WithTimeout(context.WithoutCancel(cmd.Context()), shutdownTimeout)
			defer cancel()
			if err := srv.Stop(ctx); err != nil {
				return fmt.Errorf("stopping server: %w", err)
			}
			return <-errc
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:5000", "Address to listen on")
	cmd.Flags().BoolVar(&debug, "debug", false, "Disable panic recovery and enable echo debug mode")

	return cmd
}
