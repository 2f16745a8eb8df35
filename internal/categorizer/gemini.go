package categorizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"google.golang.org/genai"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.5-flash"

const systemInstruction = `You categorize Indonesian bank (BCA) transactions.
Pick exactly one category id from the provided list for each transaction.

Rules:
- Credit transactions from employers or companies are Salary.
- Credit transfers from individuals are Transfer.
- Bank interest is Transfer.
- Bank admin fees, transfer fees and interest tax are Fees & Admin.
- Use Uncategorized only as a last resort.

Return ONLY raw JSON of the form {"results":[{"index":0,"categoryId":1}]}.`

var responseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"results": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"index":      {Type: genai.TypeInteger, Description: "Transaction index from the input list"},
					"categoryId": {Type: genai.TypeInteger, Description: "Category id from the available categories"},
				},
				Required: []string{"index", "categoryId"},
			},
		},
	},
	Required: []string{"results"},
}

// GeminiOracle asks a Gemini model to categorize a batch in one request.
type GeminiOracle struct {
	client *genai.Client
	model  string
}

// NewGeminiOracle creates a client for the Gemini API.
func NewGeminiOracle(ctx context.Context, apiKey, model string) (*GeminiOracle, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiOracle{client: client, model: model}, nil
}

// Categorize sends the batch and decodes the structured reply.
func (g *GeminiOracle) Categorize(ctx context.Context, items []Item, categories []domain.CategoryRef) (map[int]int64, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    responseSchema,
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(buildPrompt(items, categories)), cfg)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return nil, errors.New("empty response from model")
	}
	return parseResponse(text)
}

func buildPrompt(items []Item, categories []domain.CategoryRef) string {
	var b strings.Builder
	b.WriteString("Categorize each transaction. Available categories: ")
	for i, c := range categories {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d: %s", c.ID, c.Name)
	}
	b.WriteString("\n\nTransactions:\n")
	for _, it := range items {
		merchant := it.Merchant
		if merchant == "" {
			merchant = "unknown"
		}
		fmt.Fprintf(&b, "%d: [%s] %s - %q - Rp %s\n", it.Index, it.Direction, merchant, it.Description, it.Amount.StringFixed(2))
	}
	return b.String()
}

type modelResult struct {
	Results []struct {
		Index      int   `json:"index"`
		CategoryID int64 `json:"categoryId"`
	} `json:"results"`
}

func parseResponse(raw string) (map[int]int64, error) {
	var parsed modelResult
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("decode model response: %w", err)
	}
	out := make(map[int]int64, len(parsed.Results))
	for _, r := range parsed.Results {
		out[r.Index] = r.CategoryID
	}
	return out, nil
}

// cleanModelJSON strips Markdown code fences a model may add despite instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		idx := strings.Index(s, "\n")
		if idx == -1 {
			return s
		}
		s = strings.TrimSpace(s[idx+1:])
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

var _ Oracle = (*GeminiOracle)(nil)
