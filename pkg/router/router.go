// Package router dispatches view types selected in the navigation tree to
// the views registered for them, and serves the tree to the front end.
package router

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/mchmarny/navtree/pkg/metric"
	"github.com/mchmarny/navtree/pkg/nav"
)

// UnknownViewTypeError is returned when no view is registered for a view type.
// It is not fatal: other menu entries remain usable.
type UnknownViewTypeError struct {
	ViewType string
}

func (e *UnknownViewTypeError) Error() string {
	return fmt.Sprintf("unknown view type %q", e.ViewType)
}

// Outcome label values of the dispatch counter.
const (
	OutcomeMounted = "mounted"
	OutcomeUnknown = "unknown"
)

// Router maps view types to views.
type Router struct {
	tree *nav.Tree

	mu    sync.RWMutex
	views map[string]http.Handler

	dispatches metric.IncrementalCounter
	lookups    metric.IncrementalCounter
}

// Option configures a Router.
type Option func(*Router)

// WithDispatchCounter records view dispatches labeled by view_type and outcome.
func WithDispatchCounter(c metric.IncrementalCounter) Option {
	return func(r *Router) { r.dispatches = c }
}

// WithLookupCounter records tree lookups labeled by kind and outcome.
func WithLookupCounter(c metric.IncrementalCounter) Option {
	return func(r *Router) { r.lookups = c }
}

// New creates a router over tree with no views registered.
func New(tree *nav.Tree, opts ...Option) *Router {
	r := &Router{
		tree:       tree,
		views:      map[string]http.Handler{},
		dispatches: metric.Nop{},
		lookups:    metric.Nop{},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register binds view to viewType. View types registered without a menu
// entry are allowed; they are reachable by deep link only.
func (r *Router) Register(viewType string, view http.Handler) error {
	if viewType == "" {
		return errors.New("view type is required")
	}
	if view == nil {
		return fmt.Errorf("view for %q is nil", viewType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.views[viewType]; ok {
		return fmt.Errorf("view type %q already registered", viewType)
	}
	r.views[viewType] = view

	return nil
}

// Mount returns the view registered for viewType, or *UnknownViewTypeError.
func (r *Router) Mount(viewType string) (http.Handler, error) {
	r.mu.RLock()
	view, ok := r.views[viewType]
	r.mu.RUnlock()

	if !ok {
		r.dispatches.Increment(OutcomeUnknown, OutcomeUnknown)
		return nil, &UnknownViewTypeError{ViewType: viewType}
	}

	r.dispatches.Increment(viewType, OutcomeMounted)
	return view, nil
}

// Unbound returns the view types of menu leaves that have no registered view,
// sorted.
func (r *Router) Unbound() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var missing []string
	for _, leaf := range r.tree.Leaves() {
		if _, ok := r.views[leaf.ViewType]; !ok {
			missing = append(missing, leaf.ViewType)
		}
	}
	sort.Strings(missing)

	return missing
}

// Handler returns the HTTP routes of the navigation API and the views.
func (r *Router) Handler() http.Handler {
	mux := chi.NewRouter()

	mux.Route("/api/navigation", func(api chi.Router) {
		api.Get("/", r.handleTree)
		api.Get("/views/{viewType}", r.handleFindByViewType)
		api.Get("/routes/{routeID}", r.handleFindByRouteID)
	})

	mux.Handle("/views/{viewType}", http.HandlerFunc(r.handleView))
	mux.Handle("/views/{viewType}/*", http.HandlerFunc(r.handleView))

	return mux
}

func (r *Router) handleView(w http.ResponseWriter, req *http.Request) {
	viewType := chi.URLParam(req, "viewType")

	view, err := r.Mount(viewType)
	if err != nil {
		var unknown *UnknownViewTypeError
		if errors.As(err, &unknown) {
			slog.Warn("view not mounted", "view_type", viewType, "error", err)
			writeJSON(w, http.StatusNotFound, placeholder{
				Error:       err.Error(),
				ViewType:    viewType,
				Placeholder: true,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "error, see logs for details")
		return
	}

	slog.Debug("mounting view", "view_type", viewType, "url", req.URL.Path)
	view.ServeHTTP(w, req)
}
