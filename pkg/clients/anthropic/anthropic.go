package anthropic

import (
	"context"
	"fmt"
	"strings"
	"time"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdvalue/internal/config"
	"github.com/mamadbah2/herdvalue/internal/domain/models"
	"github.com/mamadbah2/herdvalue/internal/service/market"
)

const (
	messagesPath = "/v1/messages"
	apiVersion   = "2023-06-01"
	maxTokens    = 512
)

// QuoteClient asks Claude for a current market quote. It implements
// market.QuoteProvider.
type QuoteClient struct {
	httpClient *resty.Client
	model      string
	logger     *zap.Logger
}

var _ market.QuoteProvider = (*QuoteClient)(nil)

// NewClient creates a configured Anthropic quote client.
func NewClient(cfg config.AnthropicConfig, timeout time.Duration, logger *zap.Logger) *QuoteClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("x-api-key", cfg.APIKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(timeout)

	return &QuoteClient{httpClient: client, model: cfg.Model, logger: logger}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

const systemPrompt = `You are a Brazilian livestock market analyst following CEPEA and Scot Consultoria bulletins.
Answer with ONLY a JSON object with exactly these keys:
  "price": number, the current quote in BRL,
  "unit": "@" for cattle (per arroba) or "kg" for swine and poultry,
  "source": string, the reference publisher,
  "date": string, the quote date as DD/MM/YYYY,
  "trend": one of "up", "down", "stable",
  "commentary": string, one or two sentences in Portuguese on this species and region.
Do not wrap the JSON in markdown.`

// FetchQuote requests today's quote for species in region.
func (c *QuoteClient) FetchQuote(ctx context.Context, species models.Species, region models.Region) (models.Quote, error) {
	reqBody := messageRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    systemPrompt,
		Messages: []message{
			{Role: "user", Content: userPrompt(species, region)},
			// Prefill the assistant turn to force a JSON object.
			{Role: "assistant", Content: "{"},
		},
	}

	var respBody messageResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(messagesPath)
	if err != nil {
		return models.Quote{}, fmt.Errorf("anthropic api call: %w", err)
	}
	if resp.IsError() {
		return models.Quote{}, fmt.Errorf("anthropic api error: status=%d body=%s", resp.StatusCode(), resp.String())
	}
	if len(respBody.Content) == 0 {
		return models.Quote{}, fmt.Errorf("empty response from anthropic")
	}

	raw := "{" + respBody.Content[0].Text
	c.logger.Debug("anthropic quote response", zap.String("raw", raw))

	cleaned, err := jsonrepair.RepairJSON(raw)
	if err != nil {
		return models.Quote{}, fmt.Errorf("repair anthropic quote json: %w", err)
	}

	quote, err := market.DecodeQuote([]byte(cleaned))
	if err != nil {
		return models.Quote{}, fmt.Errorf("decode anthropic quote: %w", err)
	}
	return quote, nil
}

func userPrompt(species models.Species, region models.Region) string {
	label := string(species)
	if p, ok := species.Profile(); ok {
		label = p.Label
	}
	return fmt.Sprintf("Current quote for %s (%s) in the state of %s, sold per %s.", label, species, region, species.SaleUnit())
}
