// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/searchpulse/searchpulse/internal/contract"
)

// NewMCPServer initializes and configures the Searchpulse MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Searchpulse Reporting Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: compare_metrics ---
	s.AddTool(mcp.NewTool("compare_metrics",
		mcp.WithDescription("Compare current vs previous metrics for one or more entity exports and classify every change into a trend band."),
		mcp.WithString("files", mcp.Description("Comma-separated paths to comparison CSV exports."), mcp.Required()),
		mcp.WithString("banding", mcp.Description("Trend banding scheme (3 or 5). Defaults to the configured scheme."), mcp.Enum("3", "5")),
		mcp.WithNumber("precision", mcp.Description("Decimal precision for percent changes.")),
	), h.handleCompareMetrics)

	// --- 2. Tool: top_movers ---
	s.AddTool(mcp.NewTool("top_movers",
		mcp.WithDescription("Rank the queries of a per-query export by change on a chosen metric and return the top gainers or decliners."),
		mcp.WithString("file", mcp.Description("Path to the query CSV export."), mcp.Required()),
		mcp.WithString("metric", mcp.Description("Metric column to rank on. Defaults to 'impressions'.")),
		mcp.WithString("direction", mcp.Description("Ranking direction (growth or decline). Defaults to 'growth'."), mcp.Enum("growth", "decline")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleTopMovers)

	// --- 3. Tool: find_opportunities ---
	s.AddTool(mcp.NewTool("find_opportunities",
		mcp.WithDescription("Find near-page-one queries with above-median impressions in a per-query export."),
		mcp.WithString("file", mcp.Description("Path to the query CSV export."), mcp.Required()),
		mcp.WithNumber("low_bound", mcp.Description("Lowest position rank to consider (inclusive). Defaults to 11.")),
		mcp.WithNumber("high_bound", mcp.Description("Highest position rank to consider (inclusive). Defaults to 20.")),
		mcp.WithNumber("floor", mcp.Description("Extra impressions floor on top of the median cut.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleFindOpportunities)

	return s
}

// StartMCPServer starts the Searchpulse MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
