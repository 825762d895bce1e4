package summarizer

import (
	"context"
	"log"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const systemPrompt = `You are a financial newsletter editor. Condense the weekly market report below into a short brief.

Rules:
- 4 to 6 bullet points covering the most notable moves and stories
- Keep tickers, prices, and percentages where relevant
- Stay under 1200 characters total
- Neutral tone; never give directive financial advice (no "buy", "sell", "you should")

Output plain text bullets only, no preamble.`

// Summarizer condenses the raw digest via the chat completions API. It is
// an optional stage: constructed without an API key it is permanently
// disabled, and any runtime failure downgrades to "no summary".
type Summarizer struct {
	client  *openai.Client
	model   openai.ChatModel
	enabled bool
}

// New creates a Summarizer. An empty apiKey disables the stage; the
// credential is threaded in explicitly rather than read from the
// environment at call time.
func New(apiKey, modelName string) *Summarizer {
	if apiKey == "" {
		return &Summarizer{}
	}
	model := openai.ChatModel(modelName)
	if modelName == "" {
		model = openai.ChatModelGPT4oMini
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Summarizer{client: &client, model: model, enabled: true}
}

// Enabled reports whether summarization is configured.
func (s *Summarizer) Enabled() bool { return s.enabled }

// Summarize returns the condensed brief and true on success. Disabled
// stage, API errors, and empty responses all return ("", false); the
// pipeline falls back to delivering the raw report.
func (s *Summarizer) Summarize(ctx context.Context, raw string) (string, bool) {
	if !s.enabled {
		return "", false
	}

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(raw),
		},
	})
	if err != nil {
		log.Printf("[WARN] summarize: %v", err)
		return "", false
	}
	if len(resp.Choices) == 0 {
		log.Println("[WARN] summarize: no choices in response")
		return "", false
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		log.Println("[WARN] summarize: empty response")
		return "", false
	}
	return summary, true
}
