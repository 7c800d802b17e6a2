package mcp

import (
	"fmt"
	"strings"

	"github.com/kartikm76/middleoffice-ibor/internal/common"
	"github.com/kartikm76/middleoffice-ibor/internal/dates"
	"github.com/kartikm76/middleoffice-ibor/internal/desk"
	"github.com/kartikm76/middleoffice-ibor/internal/state"
	"github.com/mark3labs/mcp-go/mcp"
)

// Defaults a parameter can take from the desk's current selection.
const (
	DefaultFromPortfolio = "selection.portfolio"
	DefaultFromBenchmark = "selection.benchmark"
	DefaultFromStartDate = "selection.start_date"
	DefaultFromEndDate   = "selection.end_date"
)

// CatalogTool describes one MCP tool the portal exposes.
type CatalogTool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Params      []CatalogParam `json:"params"`
}

// CatalogParam describes one parameter for a catalog tool.
type CatalogParam struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // string, number, array, date
	Description string `json:"description"`
	Required    bool   `json:"required"`
	DefaultFrom string `json:"default_from"`
}

// ValidateCatalogTool validates a single catalog tool entry.
func ValidateCatalogTool(ct CatalogTool) error {
	if ct.Name == "" {
		return fmt.Errorf("tool has empty name")
	}
	if ct.Description == "" {
		return fmt.Errorf("tool %q has empty description", ct.Name)
	}
	for _, p := range ct.Params {
		if p.Name == "" {
			return fmt.Errorf("tool %q has a parameter with empty name", ct.Name)
		}
		switch p.Type {
		case "string", "number", "array", "date":
		default:
			return fmt.Errorf("tool %q parameter %q has unsupported type %q", ct.Name, p.Name, p.Type)
		}
		switch p.DefaultFrom {
		case "", DefaultFromPortfolio, DefaultFromBenchmark, DefaultFromStartDate, DefaultFromEndDate:
		default:
			return fmt.Errorf("tool %q parameter %q has unknown default %q", ct.Name, p.Name, p.DefaultFrom)
		}
	}
	return nil
}

// ValidateCatalog filters and validates catalog entries, logging warnings for invalid or duplicate tools.
func ValidateCatalog(catalog []CatalogTool, logger *common.Logger) []CatalogTool {
	seen := make(map[string]bool, len(catalog))
	valid := make([]CatalogTool, 0, len(catalog))
	for _, ct := range catalog {
		if err := ValidateCatalogTool(ct); err != nil {
			logger.Warn().Err(err).Msg("Skipping invalid catalog tool")
			continue
		}
		if seen[ct.Name] {
			logger.Warn().Str("name", ct.Name).Msg("Skipping duplicate catalog tool")
			continue
		}
		seen[ct.Name] = true
		valid = append(valid, ct)
	}
	return valid
}

// BuildMCPTool converts a CatalogTool into an mcp.Tool with the appropriate schema.
func BuildMCPTool(ct CatalogTool) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(ct.Description)}
	for _, p := range ct.Params {
		opts = append(opts, buildParamOption(p))
	}
	return mcp.NewTool(ct.Name, opts...)
}

// buildParamOption maps a CatalogParam to the appropriate mcp-go tool option.
// Parameters with a selection default are optional in the schema.
func buildParamOption(p CatalogParam) mcp.ToolOption {
	var opts []mcp.PropertyOption
	desc := p.Description
	if p.DefaultFrom != "" {
		desc += " Defaults to the desk's " + strings.TrimPrefix(p.DefaultFrom, "selection.") + "."
	}
	if desc != "" {
		opts = append(opts, mcp.Description(desc))
	}
	if p.Required && p.DefaultFrom == "" {
		opts = append(opts, mcp.Required())
	}

	switch p.Type {
	case "number":
		return mcp.WithNumber(p.Name, opts...)
	case "array":
		opts = append([]mcp.PropertyOption{mcp.WithStringItems()}, opts...)
		return mcp.WithArray(p.Name, opts...)
	default:
		return mcp.WithString(p.Name, opts...)
	}
}

// toolArgs are a call's arguments after defaults are applied.
type toolArgs map[string]interface{}

func (a toolArgs) str(name string) string {
	s, _ := a[name].(string)
	return s
}

func (a toolArgs) strs(name string) []string {
	switch v := a[name].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	case string:
		return desk.SplitList(v)
	}
	return []string{}
}

func (a toolArgs) num(name string) (int, bool) {
	switch v := a[name].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

// resolveArgs reads each parameter from the request, falls back to the
// selection default, and checks required and date parameters.
func resolveArgs(r mcp.CallToolRequest, params []CatalogParam, sel state.Selection) (toolArgs, error) {
	raw := r.GetArguments()
	args := toolArgs{}

	for _, p := range params {
		var val interface{}
		switch p.Type {
		case "number", "array":
			if v, ok := raw[p.Name]; ok && v != nil {
				val = v
			}
		default:
			if s := strings.TrimSpace(r.GetString(p.Name, "")); s != "" {
				val = s
			}
		}

		if val == nil && p.DefaultFrom != "" {
			if d := selectionDefault(sel, p.DefaultFrom); d != "" {
				val = d
			}
		}

		if val == nil {
			if p.Required {
				return nil, fmt.Errorf("%s parameter is required", p.Name)
			}
			continue
		}

		if p.Type == "date" {
			if _, err := dates.FromISODate(val.(string)); err != nil {
				return nil, fmt.Errorf("%s: %w", p.Name, err)
			}
		}
		args[p.Name] = val
	}
	return args, nil
}

func selectionDefault(sel state.Selection, from string) string {
	switch from {
	case DefaultFromPortfolio:
		return sel.Portfolio
	case DefaultFromBenchmark:
		return sel.Benchmark
	case DefaultFromStartDate:
		return sel.StartDateStr()
	case DefaultFromEndDate:
		return sel.EndDateStr()
	}
	return ""
}
