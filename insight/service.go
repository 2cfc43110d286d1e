package insight

import (
	"context"
	"fmt"

	"github.com/leeguhn/crawler/internal/store"
	"github.com/leeguhn/crawler/review"
)

// Service runs insight analyses over review CSV files and archives the
// results. It is the shared core behind the CLI, HTTP, and MCP surfaces.
type Service struct {
	gen   *Generator
	store *store.Store
	model string
}

// NewService creates a Service. st may be nil to skip archiving.
func NewService(gen *Generator, st *store.Store, model string) *Service {
	return &Service{gen: gen, store: st, model: model}
}

// Result is the outcome of one analysis, with its archive id when the
// run was archived.
type Result struct {
	ID           string   `json:"id,omitempty"`
	ReviewCount  int      `json:"review_count"`
	ChunkCount   int      `json:"chunk_count"`
	ChunkReports []string `json:"chunk_reports,omitempty"`
	Final        string   `json:"final_report"`
}

// Analyze reads the review column from csvPath, runs the chunked
// pipeline with the user's instruction, and archives the completed run.
// A CSV without a review column surfaces review.ErrNoReviewColumn.
func (s *Service) Analyze(ctx context.Context, csvPath, instruction string) (*Result, error) {
	texts, err := review.ReadTexts(csvPath)
	if err != nil {
		return nil, err
	}

	rep, err := s.gen.Generate(ctx, texts, instruction)
	if err != nil {
		return nil, err
	}

	res := &Result{
		ReviewCount:  len(texts),
		ChunkCount:   len(rep.ChunkReports),
		ChunkReports: rep.ChunkReports,
		Final:        rep.Final,
	}

	if s.store != nil {
		id, err := s.store.Save(ctx, &store.Report{
			CSVPath:      csvPath,
			Instruction:  instruction,
			Model:        s.model,
			ReviewCount:  res.ReviewCount,
			ChunkCount:   res.ChunkCount,
			ChunkReports: res.ChunkReports,
			Final:        res.Final,
		})
		if err != nil {
			return nil, fmt.Errorf("insight: archive report: %w", err)
		}
		res.ID = id
	}
	return res, nil
}

// Reports lists archived runs, newest first.
func (s *Service) Reports(ctx context.Context, limit int) ([]*store.Report, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.List(ctx, limit)
}

// Report loads one archived run by id.
func (s *Service) Report(ctx context.Context, id string) (*store.Report, error) {
	if s.store == nil {
		return nil, store.ErrNotFound
	}
	return s.store.Get(ctx, id)
}
