package router

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mchmarny/navtree/pkg/nav"
)

// Lookup kinds of the lookup counter.
const (
	LookupViewType = "view_type"
	LookupRouteID  = "route_id"
)

// Entry is the lookup response: the matched leaf and the trail of nodes
// leading to it, which the front end expands and highlights.
type Entry struct {
	Node  nav.Node   `json:"node"`
	Trail []nav.Node `json:"trail"`
	Route string     `json:"route"`
}

type placeholder struct {
	Error       string `json:"error"`
	ViewType    string `json:"viewType"`
	Placeholder bool   `json:"placeholder"`
}

func (r *Router) handleTree(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, r.tree)
}

func (r *Router) handleFindByViewType(w http.ResponseWriter, req *http.Request) {
	r.lookup(w, LookupViewType, "view type", chi.URLParam(req, "viewType"), r.tree.FindByViewType)
}

func (r *Router) handleFindByRouteID(w http.ResponseWriter, req *http.Request) {
	r.lookup(w, LookupRouteID, "route", chi.URLParam(req, "routeID"), r.tree.FindByRouteID)
}

// lookup resolves id with find and answers the entry, or 404 when find
// reports no match. kind labels the lookup counter, noun the error message.
func (r *Router) lookup(w http.ResponseWriter, kind, noun, id string, find func(string) (nav.Node, bool)) {
	n, ok := find(id)
	if !ok {
		r.lookups.Increment(kind, "miss")
		writeError(w, http.StatusNotFound, "no navigation entry for "+noun+" "+id)
		return
	}

	r.lookups.Increment(kind, "hit")
	r.writeEntry(w, n)
}

func (r *Router) writeEntry(w http.ResponseWriter, n nav.Node) {
	trail, _ := r.tree.Trail(n.ViewType)
	writeJSON(w, http.StatusOK, Entry{Node: n, Trail: trail, Route: n.Route()})
}

func writeError(w http.ResponseWriter, status int, message string) {
	slog.Debug("handling error response",
		"status", status,
		"message", message,
	)
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}
