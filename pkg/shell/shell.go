// Package shell wires the navigation tree, the view router and the HTTP
// server into the running application shell.
package shell

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mchmarny/navtree/pkg/metric"
	"github.com/mchmarny/navtree/pkg/nav"
	"github.com/mchmarny/navtree/pkg/router"
	"github.com/mchmarny/navtree/pkg/server"
)

// Shell owns the loaded navigation tree for the lifetime of the process.
type Shell struct {
	tree     *nav.Tree
	router   *router.Router
	registry *prometheus.Registry
}

// New builds a shell over tree and registers views by view type.
// Menu leaves left without a view are logged once as warnings.
func New(tree *nav.Tree, views map[string]http.Handler) (*Shell, error) {
	if tree == nil {
		return nil, errors.New("navigation tree is required")
	}

	reg := prometheus.NewRegistry()

	rt := router.New(tree,
		router.WithDispatchCounter(metric.NewCounterWithRegistry(reg,
			metric.ViewDispatchTotal, "Number of view dispatches", "view_type", "outcome")),
		router.WithLookupCounter(metric.NewCounterWithRegistry(reg,
			metric.LookupTotal, "Number of navigation lookups", "kind", "outcome")),
	)

	viewTypes := make([]string, 0, len(views))
	for vt := range views {
		viewTypes = append(viewTypes, vt)
	}
	sort.Strings(viewTypes)

	for _, vt := range viewTypes {
		if err := rt.Register(vt, views[vt]); err != nil {
			return nil, fmt.Errorf("failed to register view: %w", err)
		}
	}

	for _, vt := range rt.Unbound() {
		slog.Warn("menu entry has no registered view", "view_type", vt)
	}

	return &Shell{tree: tree, router: rt, registry: reg}, nil
}

// Router returns the view router.
func (s *Shell) Router() *router.Router {
	return s.router
}

// Server returns an HTTP server exposing the navigation API, the views,
// /healthz and /metrics. opts are applied before the shell routes.
func (s *Shell) Server(opts ...server.Option) server.Server {
	opts = append(opts,
		server.WithSimpleHealth(),
		server.WithMetrics(s.registry),
		server.WithHandler("/", s.router.Handler()),
	)

	return server.New(opts...)
}

// Run serves the shell and blocks until ctx is canceled or an error occurs.
func (s *Shell) Run(ctx context.Context, opts ...server.Option) error {
	slog.Info("starting shell", "leaves", s.tree.Len())
	return s.Server(opts...).Serve(ctx)
}
