package insight

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/leeguhn/crawler/internal/kit"
)

// RegisterMCP registers the doctor tools on an MCP server.
func (s *Service) RegisterMCP(srv *mcp.Server) {
	s.registerAnalyzeTool(srv)
	s.registerReportsTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	sc := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		sc["required"] = required
	}
	return sc
}

// --- analyze ---

type analyzeReq struct {
	CSVPath     string `json:"csv_path"`
	Instruction string `json:"instruction"`
}

func (s *Service) registerAnalyzeTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "doctor_analyze",
		Description: "Analyze a review CSV file with the configured model and return a UI/UX insight report (max 5 items).",
		InputSchema: inputSchema(map[string]any{
			"csv_path":    map[string]any{"type": "string", "description": "Path to a CSV file with a review column"},
			"instruction": map[string]any{"type": "string", "description": "Analysis instruction embedded in each chunk prompt"},
		}, []string{"csv_path", "instruction"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*analyzeReq)
		return s.Analyze(ctx, r.CSVPath, r.Instruction)
	}

	decode := func(req *mcp.CallToolRequest) (any, error) {
		var r analyzeReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &r, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

// --- reports ---

type reportsReq struct {
	Limit int `json:"limit,omitempty"`
}

func (s *Service) registerReportsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "doctor_reports",
		Description: "List archived insight reports, newest first.",
		InputSchema: inputSchema(map[string]any{
			"limit": map[string]any{"type": "integer", "description": "Max reports to return (default: 20)"},
		}, nil),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*reportsReq)
		reports, err := s.Reports(ctx, r.Limit)
		if err != nil {
			return nil, err
		}
		out := make([]map[string]any, len(reports))
		for i, rep := range reports {
			out[i] = map[string]any{
				"id":           rep.ID,
				"csv_path":     rep.CSVPath,
				"instruction":  rep.Instruction,
				"model":        rep.Model,
				"review_count": rep.ReviewCount,
				"chunk_count":  rep.ChunkCount,
				"final_report": rep.Final,
				"created_at":   rep.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
			}
		}
		return map[string]any{"reports": out, "count": len(out)}, nil
	}

	decode := func(req *mcp.CallToolRequest) (any, error) {
		var r reportsReq
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
				return nil, err
			}
		}
		return &r, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}
