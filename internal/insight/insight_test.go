package insight

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"

	"jeopsu/internal/core"
)

type fakeCompleter struct {
	gotPrompt string
	reply     string
	err       error
	noChoices bool
}

func (f *fakeCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if len(req.Messages) > 0 {
		f.gotPrompt = req.Messages[0].Content
	}
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	if f.noChoices {
		return openai.ChatCompletionResponse{}, nil
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.reply}},
		},
	}, nil
}

func sampleSummary() core.Summary {
	return core.Summary{
		Monthly: map[string]core.TypeTotals{
			"2024-04": {Repair: 1},
			"2024-03": {Repair: 3, Dev: 2},
		},
		Yearly: map[string]core.TypeTotals{"2024": {Repair: 4, Dev: 2}},
		Status: map[core.ReceiptStatus]int{
			core.StatusReceived:        4,
			core.StatusRepairCompleted: 2,
		},
	}
}

func TestGenerateReturnsModelText(t *testing.T) {
	fake := &fakeCompleter{reply: "수리 접수가 증가 추세입니다."}
	g := &Generator{client: fake, model: "gpt-4o-mini"}

	got := g.Generate(context.Background(), 6, sampleSummary())
	if got != "수리 접수가 증가 추세입니다." {
		t.Fatalf("got %q", got)
	}
}

func TestGenerateFailureReturnsFixedMessage(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("rate limited")}
	g := &Generator{client: fake, model: "gpt-4o-mini"}

	if got := g.Generate(context.Background(), 6, sampleSummary()); got != FailureMessage {
		t.Fatalf("got %q, want failure message", got)
	}
}

func TestGenerateEmptyResponse(t *testing.T) {
	g := &Generator{client: &fakeCompleter{noChoices: true}, model: "gpt-4o-mini"}
	if got := g.Generate(context.Background(), 6, sampleSummary()); got != EmptyMessage {
		t.Fatalf("no choices: got %q", got)
	}

	g = &Generator{client: &fakeCompleter{reply: "   "}, model: "gpt-4o-mini"}
	if got := g.Generate(context.Background(), 6, sampleSummary()); got != EmptyMessage {
		t.Fatalf("blank reply: got %q", got)
	}
}

func TestPromptContainsAggregates(t *testing.T) {
	fake := &fakeCompleter{reply: "ok"}
	g := &Generator{client: fake, model: "gpt-4o-mini"}

	g.Generate(context.Background(), 6, sampleSummary())

	for _, want := range []string{
		"데이터 개수: 6건",
		`{"name":"2024-03","repair":3,"dev":2}`,
		`{"name":"2024-04","repair":1,"dev":0}`,
		`{"name":"접수","value":4}`,
	} {
		if !strings.Contains(fake.gotPrompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, fake.gotPrompt)
		}
	}

	// Sorted month keys keep the prompt deterministic.
	if strings.Index(fake.gotPrompt, "2024-03") > strings.Index(fake.gotPrompt, "2024-04") {
		t.Fatalf("monthly entries not sorted:\n%s", fake.gotPrompt)
	}
}
