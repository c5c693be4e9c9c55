package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/periscan/periscan/core"
	"github.com/periscan/periscan/internal/contract"
	"github.com/periscan/periscan/internal/outwriter"
	"github.com/periscan/periscan/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleRunSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.InputFile = request.GetString("lightcurve_file", "")
	if o := request.GetString("objective", ""); o != "" {
		cfg.Objective = schema.Objective(o)
	}
	if m := request.GetString("method", ""); m != "" {
		cfg.Method = schema.Method(m)
	}
	if v := request.GetFloat("min_period", 0); v > 0 {
		cfg.MinimumPeriod = &v
	}
	if v := request.GetFloat("max_period", 0); v > 0 {
		cfg.MaximumPeriod = &v
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	peaks, err := core.GetSearchResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(peaks, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGenerateGrid(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.InputFile = request.GetString("lightcurve_file", "")
	if v := request.GetFloat("min_period", 0); v > 0 {
		cfg.MinimumPeriod = &v
	}
	if v := request.GetFloat("max_period", 0); v > 0 {
		cfg.MaximumPeriod = &v
	}
	if n := request.GetInt("n_transit", 0); n > 0 {
		cfg.MinimumNTransit = n
	}
	if f := request.GetFloat("frequency_factor", 0); f > 0 {
		cfg.FrequencyFactor = f
	}

	grid, err := core.GetGridResults(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("grid generation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(grid, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleComputeStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.InputFile = request.GetString("lightcurve_file", "")
	cfg.Period = request.GetFloat("period", 0)
	cfg.Duration = request.GetFloat("duration", 0)
	cfg.TransitTime = request.GetFloat("transit_time", 0)

	stats, err := core.GetStatsResults(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("stats computation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(outwriter.NewStatsView(stats), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
