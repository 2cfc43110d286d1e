// Package insight turns a collected review dataset into a short UI/UX
// report: normalize the texts, submit them to a text-completion
// endpoint in fixed-size chunks, then aggregate the chunk reports into
// at most five actionable insights with one final call.
//
// The pipeline is sequential; the first failed completion call aborts
// the run and the error is surfaced verbatim. There are no retries.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/leeguhn/crawler/playstore"
)

// Completer is the narrow text-completion capability: prompt in,
// generated text out, explicit failure. The chunking and aggregation
// logic is tested against a fake implementation.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// aggregateInstruction is the fixed final-call instruction.
const aggregateInstruction = "Combine the following UI/UX reports from Google Play Store review analysis " +
	"into a single, concise list of actionable insights. Prioritize the most important issues (maximum 5). " +
	"Remove redundant information. I do NOT want code or rambling in the response."

// Config holds the process-wide generator settings. Model parameters
// live on the Completer; these are the prompt-construction knobs.
type Config struct {
	// ChunkSize is the number of review texts per prompt. Default: 20.
	ChunkSize int `yaml:"chunk_size"`

	// Locale selects the normalization rules. Default: en.
	Locale playstore.Locale `yaml:"locale"`

	Logger *slog.Logger `yaml:"-"`
}

func (c *Config) defaults() {
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.Locale == "" {
		c.Locale = playstore.LocaleEN
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Report is the outcome of one insight run.
type Report struct {
	// ChunkReports holds the per-chunk model responses, in order.
	ChunkReports []string

	// Final is the aggregated, trimmed report.
	Final string
}

// Generator runs the chunked insight pipeline.
type Generator struct {
	completer Completer
	cfg       Config
}

// NewGenerator creates a Generator over the given completion capability.
func NewGenerator(completer Completer, cfg Config) *Generator {
	cfg.defaults()
	return &Generator{completer: completer, cfg: cfg}
}

// Generate runs the pipeline over the review texts: one completion call
// per chunk, then exactly one aggregation call. Any failed call aborts
// the run.
func (g *Generator) Generate(ctx context.Context, texts []string, instruction string) (*Report, error) {
	log := g.cfg.Logger

	chunks := ChunkTexts(texts, g.cfg.ChunkSize)
	log.Info("insight: analyzing reviews", "reviews", len(texts), "chunks", len(chunks))

	report := &Report{ChunkReports: make([]string, 0, len(chunks))}
	for i, chunk := range chunks {
		prompt, err := chunkPrompt(instruction, chunk, g.cfg.Locale)
		if err != nil {
			return nil, err
		}
		resp, err := g.completer.Complete(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("insight: chunk %d/%d: %w", i+1, len(chunks), err)
		}
		report.ChunkReports = append(report.ChunkReports, resp)
		log.Debug("insight: chunk analyzed", "chunk", i+1, "reviews", len(chunk))
	}

	final, err := g.completer.Complete(ctx, aggregatePrompt(report.ChunkReports))
	if err != nil {
		return nil, fmt.Errorf("insight: final report: %w", err)
	}
	report.Final = final

	return report, nil
}

// chunkPrompt embeds the user instruction plus the literal chunk
// content, each element normalized, as a JSON array.
func chunkPrompt(instruction string, chunk []string, locale playstore.Locale) (string, error) {
	normalized := make([]string, len(chunk))
	for i, text := range chunk {
		normalized[i] = Normalize(text, locale)
	}
	encoded, err := json.Marshal(normalized)
	if err != nil {
		return "", fmt.Errorf("insight: encode chunk: %w", err)
	}
	return fmt.Sprintf("%s Reviews: %s", instruction, encoded), nil
}

// aggregatePrompt embeds all chunk reports verbatim under the fixed
// dedupe-and-trim instruction.
func aggregatePrompt(reports []string) string {
	encoded, _ := json.Marshal(reports)
	return fmt.Sprintf("%s\nReports: %s", aggregateInstruction, encoded)
}
