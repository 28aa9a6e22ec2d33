package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/searchpulse/searchpulse/core"
	"github.com/searchpulse/searchpulse/internal/contract"
	"github.com/searchpulse/searchpulse/internal/ingest"
	"github.com/searchpulse/searchpulse/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleCompareMetrics(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	files := splitFiles(request.GetString("files", ""))
	if len(files) == 0 {
		return mcp.NewToolResultError("at least one comparison file is required"), nil
	}
	cfg.InputFiles = files

	if b := request.GetString("banding", ""); b != "" {
		banding := schema.Banding(b)
		if _, ok := schema.ValidBandings[banding]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid banding %q: must be 3 or 5", b)), nil
		}
		cfg.Banding = banding
	}
	if p := request.GetInt("precision", -1); p >= 0 && p <= 4 {
		cfg.Precision = p
	}

	sets, err := core.CompareEntities(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(sets, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleTopMovers(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	file := request.GetString("file", "")
	if file == "" {
		return mcp.NewToolResultError("file is required"), nil
	}

	metric := schema.NormalizeMetricName(request.GetString("metric", "impressions"))
	direction := schema.Direction(request.GetString("direction", string(schema.GrowthDirection)))
	if _, ok := schema.ValidDirections[direction]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid direction %q: must be growth or decline", direction)), nil
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	data, err := ingest.ReadQueryFile(file)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read query export: %v", err)), nil
	}
	records, err := data.MoverRecords(metric)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ranking failed: %v", err)), nil
	}

	extractor := core.NewInsightExtractor()
	ranked := extractor.TopMovers(records, cfg.ResultLimit, direction)

	jsonData, _ := json.MarshalIndent(ranked, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleFindOpportunities(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	file := request.GetString("file", "")
	if file == "" {
		return mcp.NewToolResultError("file is required"), nil
	}

	lowBound := request.GetFloat("low_bound", cfg.LowBound)
	highBound := request.GetFloat("high_bound", cfg.HighBound)
	if lowBound > highBound {
		return mcp.NewToolResultError(fmt.Sprintf("low_bound %v exceeds high_bound %v", lowBound, highBound)), nil
	}
	floor := request.GetFloat("floor", cfg.Floor)
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	data, err := ingest.ReadQueryFile(file)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read query export: %v", err)), nil
	}

	extractor := core.NewInsightExtractor()
	opportunities := extractor.Opportunities(data.Records, lowBound, highBound, floor, cfg.ResultLimit)
	totals := extractor.Totals(data.Records)

	result := struct {
		Opportunities []schema.QueryRecord `json:"opportunities"`
		Totals        schema.QueryTotals   `json:"totals"`
	}{Opportunities: opportunities, Totals: totals}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// splitFiles parses a comma-separated file list, dropping empty entries.
func splitFiles(s string) []string {
	var files []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, f)
		}
	}
	return files
}
