package mcp

import (
	"context"
	"time"

	"github.com/kartikm76/middleoffice-ibor/internal/config"
	"github.com/kartikm76/middleoffice-ibor/internal/handlers"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// versionInfo holds version fields for the portal plus the backend's health.
type versionInfo struct {
	Version string `json:"version"`
	Build   string `json:"build"`
	Commit  string `json:"commit"`
	Backend string `json:"backend"`
}

// VersionTool returns the mcp.Tool definition for the get_version tool.
func VersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the IBOR portal version and backend status. Use this to verify connectivity."),
	)
}

// VersionToolHandler returns a handler reporting the portal version and
// whether the IBOR backend answers its health check.
func VersionToolHandler(checker handlers.HealthChecker) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		info := versionInfo{
			Version: config.GetVersion(),
			Build:   config.GetBuild(),
			Commit:  config.GetGitCommit(),
			Backend: "unreachable",
		}

		ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if res, err := checker.Health(ctx); err == nil {
			info.Backend = res.Status
		}

		return jsonResult(info), nil
	}
}
