package extract

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/vedabase-tools/namamala/internal/providers"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func roundResponse(names ...string) json.RawMessage {
	type rec struct {
		Name       string   `json:"name"`
		Definition string   `json:"definition"`
		Context    string   `json:"context"`
		References []string `json:"references"`
		Category   string   `json:"category"`
		Gender     string   `json:"gender"`
	}
	var recs []rec
	for _, n := range names {
		recs = append(recs, rec{
			Name: n, Definition: "def", Context: "ctx",
			References: []string{"SB 1.1.1"}, Category: "Names of Krishna", Gender: "Male",
		})
	}
	raw, _ := json.Marshal(map[string]any{"names": recs})
	return raw
}

func TestExtract_MergesBothRounds(t *testing.T) {
	mock := providers.NewMockClient(
		roundResponse("Vāsudeva", "Govinda"),
		roundResponse("Mādhava"),
	)
	e := New(Config{Client: mock, Logger: discardLogger()})

	got, err := e.Extract(context.Background(), "TEXT 1 some verse", "Srimad Bhagavatam, Canto 1, Chapter 1", nil)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	want := []string{"Vāsudeva", "Govinda", "Mādhava"}
	if len(got) != len(want) {
		t.Fatalf("Extract() returned %d records, want %d: %#v", len(got), len(want), got)
	}
	for i := range got {
		if got[i].Name != want[i] {
			t.Errorf("record %d = %q, want %q", i, got[i].Name, want[i])
		}
	}
}

func TestExtract_DeduplicatesAcrossRounds(t *testing.T) {
	// Round 2 re-emits a round-1 name as a diacritic variant.
	mock := providers.NewMockClient(
		roundResponse("Vāsudeva"),
		roundResponse("vasudeva", "Keśava"),
	)
	e := New(Config{Client: mock, Logger: discardLogger()})

	got, err := e.Extract(context.Background(), "batch", "ref", nil)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Extract() returned %d records, want 2: %#v", len(got), got)
	}
	if got[0].Name != "Vāsudeva" || got[1].Name != "Keśava" {
		t.Errorf("merged records = %q, %q", got[0].Name, got[1].Name)
	}
}

func TestExtract_ReplaysConversationInRoundTwo(t *testing.T) {
	round1 := roundResponse("Govinda")
	mock := providers.NewMockClient(round1, roundResponse())
	e := New(Config{Client: mock, Logger: discardLogger()})

	if _, err := e.Extract(context.Background(), "batch text", "ref", nil); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	reqs := mock.Requests()
	if len(reqs) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(reqs))
	}

	if len(reqs[0].Messages) != 1 || reqs[0].Messages[0].Role != "user" {
		t.Fatalf("round 1 messages = %#v", reqs[0].Messages)
	}

	second := reqs[1].Messages
	if len(second) != 3 {
		t.Fatalf("round 2 replayed %d messages, want 3", len(second))
	}
	if second[0].Content != reqs[0].Messages[0].Content {
		t.Error("round 2 does not replay the round-1 prompt")
	}
	if second[1].Role != "assistant" || second[1].Content != string(round1) {
		t.Error("round 2 does not replay the round-1 response as assistant context")
	}
	if second[2].Role != "user" || !strings.Contains(second[2].Content, "continue to find more names") {
		t.Errorf("round 2 follow-up = %#v", second[2])
	}
}

func TestExtract_PassesExclusionsAndSchema(t *testing.T) {
	mock := providers.NewMockClient(roundResponse(), roundResponse())
	e := New(Config{Client: mock, Logger: discardLogger()})

	exclusions := []string{"Vāsudeva", "Govinda"}
	if _, err := e.Extract(context.Background(), "batch", "ref", exclusions); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	req := mock.Requests()[0]
	if !strings.Contains(req.Messages[0].Content, "Vāsudeva, Govinda") {
		t.Error("round 1 prompt does not enumerate exclusions")
	}
	if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_schema" {
		t.Errorf("ResponseFormat = %#v, want json_schema", req.ResponseFormat)
	}
	if req.Temperature != 0 {
		t.Errorf("Temperature = %v, want 0", req.Temperature)
	}
}

func TestExtract_AppliesUpdatedSettings(t *testing.T) {
	mock := providers.NewMockClient(roundResponse(), roundResponse())
	e := New(Config{
		Client:      mock,
		Model:       "google/gemini-2.5-pro",
		Temperature: 0,
		Logger:      discardLogger(),
	})

	e.SetModel("google/gemini-2.5-flash")
	e.SetTemperature(0.3)
	e.SetMaxTokens(4096)

	if _, err := e.Extract(context.Background(), "batch", "ref", nil); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	for i, req := range mock.Requests() {
		if req.Model != "google/gemini-2.5-flash" {
			t.Errorf("round %d Model = %q, want updated model", i+1, req.Model)
		}
		if req.Temperature != 0.3 {
			t.Errorf("round %d Temperature = %v, want 0.3", i+1, req.Temperature)
		}
		if req.MaxTokens != 4096 {
			t.Errorf("round %d MaxTokens = %d, want 4096", i+1, req.MaxTokens)
		}
	}
}

func TestExtract_PropagatesClientFailure(t *testing.T) {
	mock := providers.NewMockClient(roundResponse())
	mock.Err = errors.New("service unavailable")
	e := New(Config{Client: mock, Logger: discardLogger()})

	if _, err := e.Extract(context.Background(), "batch", "ref", nil); err == nil {
		t.Fatal("Extract() error = nil, want propagated failure")
	}
}

func TestExtract_RejectsMalformedResult(t *testing.T) {
	// Structurally valid JSON that does not decode into the result shape.
	mock := providers.NewMockClient(json.RawMessage(`{"names":"not an array"}`))
	e := New(Config{Client: mock, Logger: discardLogger()})

	if _, err := e.Extract(context.Background(), "batch", "ref", nil); err == nil {
		t.Fatal("Extract() error = nil, want parse failure")
	}
}
