package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mchmarny/navtree/pkg/logger"
	"github.com/mchmarny/navtree/pkg/nav"
	"github.com/mchmarny/navtree/pkg/server"
	"github.com/mchmarny/navtree/pkg/shell"
)

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the navigation tree and views",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			logger.SetDefaultLogger(appName, version, cfg.LogLevel, cfg.LogFormat)
			slog.Info("starting navtree", "commit", commit, "date", date)

			tree, err := loadTree(cfg.TreeFile)
			if err != nil {
				return fmt.Errorf("load navigation tree: %w", err)
			}

			s, err := shell.New(tree, placeholderViews(tree))
			if err != nil {
				return err
			}

			opts := []server.Option{
				server.WithPort(cfg.Port),
				server.WithShutdownTimeout(cfg.ShutdownTimeout),
				server.WithErrorLog(logger.NewLogLogger(slog.LevelError)),
			}
			if cfg.TLSEnabled() {
				opts = append(opts, server.WithTLS(server.TLSConfig{
					CertFile: cfg.TLSCertFile,
					KeyFile:  cfg.TLSKeyFile,
				}))
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return s.Run(ctx, opts...)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", server.DefaultPort, "port to listen on")

	return cmd
}

// placeholderViews binds every menu leaf to a view that describes itself.
// The screens behind the menu are served by their own services.
func placeholderViews(tree *nav.Tree) map[string]http.Handler {
	views := make(map[string]http.Handler, tree.Len())
	for _, leaf := range tree.Leaves() {
		views[leaf.ViewType] = placeholderView(leaf)
	}
	return views
}

func placeholderView(leaf nav.Node) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Info("handling",
			"view_type", leaf.ViewType,
			"method", r.Method,
			"url", r.URL.Path,
		)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(map[string]string{
			"viewType": leaf.ViewType,
			"title":    leaf.Text,
			"route":    leaf.Route(),
			"url":      r.URL.Path,
		}); err != nil {
			slog.Error("failed to write view response", "view_type", leaf.ViewType, "error", err)
		}
	})
}
