package insight

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// fakeCompleter records prompts and replays canned responses.
type fakeCompleter struct {
	prompts []string
	failAt  int // 1-based call number to fail on, 0 = never
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.failAt > 0 && len(f.prompts) == f.failAt {
		return "", errors.New("endpoint unreachable")
	}
	return fmt.Sprintf("report %d", len(f.prompts)), nil
}

func TestGenerate_CallsPerChunkPlusFinal(t *testing.T) {
	fc := &fakeCompleter{}
	gen := NewGenerator(fc, Config{ChunkSize: 20})

	report, err := gen.Generate(context.Background(), numbered(45), "Find UI/UX issues.")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// 45 reviews at size 20 → 3 chunk calls + exactly 1 aggregation call.
	if len(fc.prompts) != 4 {
		t.Fatalf("calls: got %d, want 4", len(fc.prompts))
	}
	if len(report.ChunkReports) != 3 {
		t.Errorf("chunk reports: got %d, want 3", len(report.ChunkReports))
	}
	if report.Final != "report 4" {
		t.Errorf("final: got %q, want the last response", report.Final)
	}

	// Chunk prompts embed the instruction and the literal content.
	if !strings.HasPrefix(fc.prompts[0], "Find UI/UX issues. Reviews: ") {
		t.Errorf("chunk prompt: got %q", fc.prompts[0])
	}
	if !strings.Contains(fc.prompts[0], "review 0") || !strings.Contains(fc.prompts[2], "review 44") {
		t.Error("chunk prompts missing literal review content")
	}

	// The final prompt embeds every chunk report verbatim.
	final := fc.prompts[3]
	if !strings.Contains(final, "maximum 5") {
		t.Errorf("final prompt missing trim instruction: %q", final)
	}
	for _, r := range report.ChunkReports {
		if !strings.Contains(final, r) {
			t.Errorf("final prompt missing chunk report %q", r)
		}
	}
}

func TestGenerate_ChunkFailureAborts(t *testing.T) {
	fc := &fakeCompleter{failAt: 2}
	gen := NewGenerator(fc, Config{ChunkSize: 20})

	_, err := gen.Generate(context.Background(), numbered(45), "prompt")
	if err == nil {
		t.Fatal("want error from failing chunk call")
	}
	if !strings.Contains(err.Error(), "endpoint unreachable") {
		t.Errorf("error not surfaced verbatim: %v", err)
	}
	// The run aborted: no further chunk calls, no aggregation call.
	if len(fc.prompts) != 2 {
		t.Errorf("calls after failure: got %d, want 2", len(fc.prompts))
	}
}

func TestGenerate_FinalFailureAborts(t *testing.T) {
	fc := &fakeCompleter{failAt: 4}
	gen := NewGenerator(fc, Config{ChunkSize: 20})

	_, err := gen.Generate(context.Background(), numbered(45), "prompt")
	if err == nil {
		t.Fatal("want error from failing aggregation call")
	}
	if !strings.Contains(err.Error(), "final report") {
		t.Errorf("error: %v", err)
	}
}

func TestGenerate_NormalizesChunkContent(t *testing.T) {
	fc := &fakeCompleter{}
	gen := NewGenerator(fc, Config{ChunkSize: 20})

	_, err := gen.Generate(context.Background(), []string{"bad 😀 emoji   here"}, "prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(fc.prompts[0], `"bad emoji here"`) {
		t.Errorf("chunk content not normalized: %q", fc.prompts[0])
	}
}
