package server

import "net/http"

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()
	desk := s.app.DeskHandler

	// UI page routes (HTML templates)
	mux.HandleFunc("/{$}", s.app.PageHandler.ServePage("desk.html", "desk"))

	// Static files (CSS, JS, images)
	mux.HandleFunc("/static/", s.app.PageHandler.StaticFileHandler)

	// MCP endpoint (JSON-RPC over HTTP)
	if s.app.MCPHandler != nil {
		mux.Handle("/mcp", s.app.MCPHandler)
	}

	// API routes
	mux.HandleFunc("/api/health", s.app.HealthHandler.ServeHTTP)
	mux.HandleFunc("/api/version", s.app.VersionHandler.ServeHTTP)
	mux.HandleFunc("/api/server-health", s.app.ServerHealthHandler.ServeHTTP)

	// Desk routes
	mux.HandleFunc("/api/desk/selection", func(w http.ResponseWriter, r *http.Request) {
		RouteResourceItem(w, r, desk.GetSelection, desk.UpdateSelection, nil)
	})
	mux.HandleFunc("/api/desk/theme", func(w http.ResponseWriter, r *http.Request) {
		RouteResourceCollection(w, r, desk.GetTheme, desk.SetTheme)
	})
	mux.HandleFunc("/api/desk/portfolios", desk.HandlePortfolios)
	mux.HandleFunc("/api/desk/panels", desk.HandlePanels)
	mux.HandleFunc("/api/desk/panels/{name}", desk.HandlePanel)
	mux.HandleFunc("/api/desk/notes", desk.HandleNotes)
	mux.HandleFunc("/api/desk/explain", desk.HandleExplain)
	mux.Handle("/api/desk/stream", s.app.StreamHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched API routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not Found","message":"The requested endpoint does not exist"}`))
}
