package mcp

import (
	"net/http"

	"github.com/kartikm76/middleoffice-ibor/internal/common"
	"github.com/kartikm76/middleoffice-ibor/internal/config"
	"github.com/kartikm76/middleoffice-ibor/internal/interfaces"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	server     *mcpserver.MCPServer
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger
	catalog    []CatalogTool
}

// NewHandler creates an MCP handler exposing the desk catalog over gw.
// Omitted portfolio, benchmark and date parameters come from sel.
func NewHandler(gw interfaces.Gateway, sel SelectionSource, logger *common.Logger) *Handler {
	mcpSrv := mcpserver.NewMCPServer(
		"ibor-portal",
		config.GetVersion(),
		mcpserver.WithToolCapabilities(true),
	)

	catalog := ValidateCatalog(DeskCatalog(), logger)
	toolCount := RegisterTools(mcpSrv, gw, sel, catalog, logger)
	mcpSrv.AddTool(VersionTool(), VersionToolHandler(gw))

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	logger.Info().
		Int("tools", toolCount+1).
		Msg("MCP handler initialized")

	return &Handler{
		server:     mcpSrv,
		streamable: streamable,
		logger:     logger,
		catalog:    catalog,
	}
}

// Catalog returns a copy of the validated tool catalog.
func (h *Handler) Catalog() []CatalogTool {
	result := make([]CatalogTool, len(h.catalog))
	copy(result, h.catalog)
	return result
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}
