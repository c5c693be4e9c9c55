// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/periscan/periscan/internal/contract"
)

// NewMCPServer initializes and configures the Periscan MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Periscan Search Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: run_search ---
	s.AddTool(mcp.NewTool("run_search",
		mcp.WithDescription("Run a box least squares periodogram search over a light curve file and return the ranked peaks."),
		mcp.WithString("lightcurve_file", mcp.Description("Path to the light curve file (CSV or Parquet)."), mcp.Required()),
		mcp.WithString("objective", mcp.Description("Statistic used to rank box fits. Defaults to 'likelihood'."), mcp.Enum("likelihood", "snr")),
		mcp.WithString("method", mcp.Description("Evaluation method. 'auto' picks from the input size."), mcp.Enum("auto", "fast", "slow")),
		mcp.WithNumber("min_period", mcp.Description("Minimum trial period, in the time unit of the data.")),
		mcp.WithNumber("max_period", mcp.Description("Maximum trial period, in the time unit of the data.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of peaks returned.")),
	), h.handleRunSearch)

	// --- 2. Tool: generate_grid ---
	s.AddTool(mcp.NewTool("generate_grid",
		mcp.WithDescription("Generate the heuristic trial period grid a search over a light curve file would use."),
		mcp.WithString("lightcurve_file", mcp.Description("Path to the light curve file (CSV or Parquet)."), mcp.Required()),
		mcp.WithNumber("min_period", mcp.Description("Minimum trial period override.")),
		mcp.WithNumber("max_period", mcp.Description("Maximum trial period override.")),
		mcp.WithNumber("n_transit", mcp.Description("Minimum number of transits that must fit in the baseline. Defaults to 3.")),
		mcp.WithNumber("frequency_factor", mcp.Description("Frequency step multiplier. Defaults to 1.0.")),
	), h.handleGenerateGrid)

	// --- 3. Tool: compute_stats ---
	s.AddTool(mcp.NewTool("compute_stats",
		mcp.WithDescription("Compute transit diagnostics (depths, odd/even controls, harmonic comparison) for a fixed ephemeris."),
		mcp.WithString("lightcurve_file", mcp.Description("Path to the light curve file (CSV or Parquet)."), mcp.Required()),
		mcp.WithNumber("period", mcp.Description("Transit period, in the time unit of the data."), mcp.Required()),
		mcp.WithNumber("duration", mcp.Description("Transit duration, in the time unit of the data."), mcp.Required()),
		mcp.WithNumber("transit_time", mcp.Description("Transit epoch. Defaults to 0.")),
	), h.handleComputeStats)

	return s
}

// StartMCPServer starts the Periscan MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
