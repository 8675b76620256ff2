// Package insight turns the register's aggregates into a short
// natural-language business analysis via a chat-completion service. The
// result is display-only: it never feeds back into the data model, and no
// error escapes this package's boundary.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"

	"jeopsu/internal/core"
)

// Fixed user-visible strings, identical to the original register's.
const (
	FailureMessage = "AI 통계 분석 중 오류가 발생했습니다."
	EmptyMessage   = "인사이트를 생성할 수 없습니다."
)

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Generator struct {
	client chatCompleter
	model  string
}

func NewGenerator(apiKey, model string) *Generator {
	return &Generator{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Generate sends one completion request built from the record count and the
// monthly/status aggregates. Exactly one attempt; on any failure the fixed
// failure string is returned instead of an error.
func (g *Generator) Generate(ctx context.Context, count int, summary core.Summary) string {
	prompt, err := buildPrompt(count, summary)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to build insight prompt", "error", err)
		return FailureMessage
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.4,
		MaxTokens:   1000,
	})
	if err != nil {
		slog.ErrorContext(ctx, "Insight request failed", "error", err, "count", count)
		return FailureMessage
	}
	if len(resp.Choices) == 0 {
		return EmptyMessage
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return EmptyMessage
	}

	slog.InfoContext(ctx, "Insight generated", "count", count, "chars", len(text))
	return text
}

type monthlyEntry struct {
	Name   string `json:"name"`
	Repair int    `json:"repair"`
	Dev    int    `json:"dev"`
}

type statusEntry struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// buildPrompt serializes the aggregates the same way the register's charts
// consume them: monthly entries sorted by month key, status entries sorted
// by label so the prompt is deterministic for a given summary.
func buildPrompt(count int, summary core.Summary) (string, error) {
	months := make([]monthlyEntry, 0, len(summary.Monthly))
	for m, totals := range summary.Monthly {
		months = append(months, monthlyEntry{Name: m, Repair: totals.Repair, Dev: totals.Dev})
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Name < months[j].Name })

	statuses := make([]statusEntry, 0, len(summary.Status))
	for s, qty := range summary.Status {
		statuses = append(statuses, statusEntry{Name: string(s), Value: qty})
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Name < statuses[j].Name })

	monthlyJSON, err := json.Marshal(months)
	if err != nil {
		return "", fmt.Errorf("marshal monthly data: %w", err)
	}
	statusJSON, err := json.Marshal(statuses)
	if err != nil {
		return "", fmt.Errorf("marshal status data: %w", err)
	}

	prompt := fmt.Sprintf(`다음은 업무 접수 대장 데이터 요약입니다. 이를 바탕으로 현재 비즈니스 현황을 분석하고, 앞으로의 추천 전략 3가지를 한국어로 짧고 명확하게 작성해주세요:
데이터 개수: %d건
월별 데이터: %s
상태별 데이터: %s`, count, monthlyJSON, statusJSON)

	return prompt, nil
}
