package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/mamadbah2/herdvalue/internal/config"
	"github.com/mamadbah2/herdvalue/internal/domain/models"
	"github.com/mamadbah2/herdvalue/internal/service/market"
)

// QuoteClient asks Gemini for a current market quote, constraining the
// answer with a response schema. It implements market.QuoteProvider.
type QuoteClient struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

var _ market.QuoteProvider = (*QuoteClient)(nil)

// NewClient builds a Gemini client for the configured model.
func NewClient(ctx context.Context, cfg config.GeminiConfig, timeout time.Duration, logger *zap.Logger) (*QuoteClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &QuoteClient{client: client, model: cfg.Model, logger: logger}, nil
}

// FetchQuote requests today's quote for species in region.
func (c *QuoteClient) FetchQuote(ctx context.Context, species models.Species, region models.Region) (models.Quote, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(Prompt(species, region)), GenerationConfig())
	if err != nil {
		return models.Quote{}, fmt.Errorf("gemini generation failed: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	c.logger.Debug("gemini quote response", zap.String("raw", text))
	if text == "" {
		return models.Quote{}, fmt.Errorf("empty response from gemini")
	}

	quote, err := market.DecodeQuote([]byte(text))
	if err != nil {
		return models.Quote{}, fmt.Errorf("decode gemini quote: %w", err)
	}
	return quote, nil
}

// Prompt is the analyst brief sent for species in region.
func Prompt(species models.Species, region models.Region) string {
	label := string(species)
	if p, ok := species.Profile(); ok {
		label = p.Label
	}
	unitHint := "R$/kg (live or carcass weight)"
	if species.SaleUnit() == models.UnitArroba {
		unitHint = "arroba (@)"
	}
	return fmt.Sprintf(`Act as a Brazilian livestock market analyst (Scot Consultoria / CEPEA).
Give the current quote for %s in the state of %s, considering today's trends.
Price it per %s.
Return EXACTLY the requested JSON format, with the commentary in Portuguese.`, label, region, unitHint)
}

// GenerationConfig requests a JSON object carrying every quote field.
func GenerationConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0.2)),
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"price":      {Type: genai.TypeNumber, Description: "Numeric value of the quote."},
				"unit":       {Type: genai.TypeString, Enum: []string{string(models.UnitArroba), string(models.UnitKilogram)}, Description: "Unit: @ or kg."},
				"source":     {Type: genai.TypeString, Description: "Source, e.g. CEPEA or Scot."},
				"date":       {Type: genai.TypeString, Description: "Quote date, DD/MM/YYYY."},
				"trend":      {Type: genai.TypeString, Enum: []string{string(models.TrendUp), string(models.TrendDown), string(models.TrendStable)}, Description: "Market trend."},
				"commentary": {Type: genai.TypeString, Description: "Short market analysis for this species and region."},
			},
			Required: []string{"price", "unit", "source", "date", "trend", "commentary"},
		},
	}
}
