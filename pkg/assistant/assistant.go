package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	DefaultModel   = "gemini-2.5-flash"
	DefaultTimeout = 15 * time.Second

	NoKeyDescription  = "Configure an API key to use the AI assistant."
	FailedDescription = "AI generation failed, please try again."
	descriptionPrompt = "Write a warm, concise introduction (under 100 words) for a class reunion titled %q at %q. Include a welcome and an invitation for everyone to join."
	suggestionsPrompt = "Suggest 5 short, fun theme names for an old classmates' get-together. Reply with a plain JSON array of strings only."
)

var (
	NoKeySuggestions  = []string{"Barbecue Party", "Campus Day Trip", "Karaoke Night"}
	FailedSuggestions = []string{"Themed Dinner", "Outdoor Hike", "Board Game Party", "Nostalgia Tea Party", "Beach Camping"}
)

// Assistant metin önerileri. Hiçbir zaman hata döndürmez, başarısızlıkta
// sabit bir yedek değere düşer.
type Assistant interface {
	GenerateDescription(ctx context.Context, title, location string) string
	GenerateSuggestions(ctx context.Context) []string
}

type generateFunc func(ctx context.Context, prompt string) (string, error)

type Gemini struct {
	generate generateFunc
	timeout  time.Duration
	logger   *zap.Logger
}

// NewGemini apiKey boşsa istemci oluşturulmaz, tüm çağrılar yedek değer döner
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration, logger *zap.Logger) (*Gemini, error) {
	g := &Gemini{timeout: timeout, logger: logger}
	if g.timeout <= 0 {
		g.timeout = DefaultTimeout
	}
	if apiKey == "" {
		logger.Warn("GEMINI_API_KEY is not set, assistant will return fallback text")
		return g, nil
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	g.generate = func(ctx context.Context, prompt string) (string, error) {
		resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
		if err != nil {
			return "", err
		}
		return resp.Text(), nil
	}
	return g, nil
}

// call çağrıyı timeout ile sınırlar; istek iptal edilirse de sonlanır
func (g *Gemini) call(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	return g.generate(ctx, prompt)
}

func (g *Gemini) GenerateDescription(ctx context.Context, title, location string) string {
	if g.generate == nil {
		return NoKeyDescription
	}

	text, err := g.call(ctx, fmt.Sprintf(descriptionPrompt, title, location))
	if err != nil {
		g.logger.Warn("description generation failed", zap.Error(err))
		return FailedDescription
	}
	return strings.TrimSpace(text)
}

func (g *Gemini) GenerateSuggestions(ctx context.Context) []string {
	if g.generate == nil {
		return NoKeySuggestions
	}

	text, err := g.call(ctx, suggestionsPrompt)
	if err != nil {
		g.logger.Warn("suggestion generation failed", zap.Error(err))
		return FailedSuggestions
	}

	suggestions, err := parseSuggestions(text)
	if err != nil {
		g.logger.Warn("suggestion response is not a JSON array", zap.Error(err))
		return FailedSuggestions
	}
	return suggestions
}

// parseSuggestions model cevabındaki markdown code fence'leri temizler
func parseSuggestions(text string) ([]string, error) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		cleaned = "[]"
	}

	var out []string
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, err
	}
	return out, nil
}
