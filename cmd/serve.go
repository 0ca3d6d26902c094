package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/macroview/creditgap/internal/server"
)

var (
	servePort  int
	serveGroup string
	serveWarm  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard server",
	Long:  "Serves the credit-to-GDP gap dashboard. With --group the server is pinned to a single data group and the selection page is disabled.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		client, groups, err := initBIS()
		if err != nil {
			return err
		}

		srv, err := server.New(cfg, groups, client, serveGroup)
		if err != nil {
			return err
		}

		if serveWarm {
			if err := srv.WarmUp(ctx); err != nil {
				return eris.Wrap(err, "warm up")
			}
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		httpSrv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           srv.Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			httpSrv.Shutdown(ctx)
		}()

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.String("pinned_group", serveGroup),
		)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().StringVar(&serveGroup, "group", "", "pin the server to a single data group")
	serveCmd.Flags().BoolVar(&serveWarm, "warm", true, "prefetch datasets before listening")
	rootCmd.AddCommand(serveCmd)
}
