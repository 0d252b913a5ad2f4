// Package oracle asks Gemini what a combination of elements produces.
package oracle

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/element-mixer/internal/models"
	"google.golang.org/api/option"
	"gopkg.in/yaml.v3"
)

//go:embed prompts/science.txt
var sciencePrompt string

//go:embed prompts/creative.txt
var creativePrompt string

var funcs = template.FuncMap{"join": strings.Join}

var prompts = map[models.GameMode]*template.Template{
	models.ModeScience:  template.Must(template.New("science").Funcs(funcs).Parse(sciencePrompt)),
	models.ModeCreative: template.Must(template.New("creative").Funcs(funcs).Parse(creativePrompt)),
}

const DefaultModel = "gemini-2.5-flash"

// Gemini implements engine.Oracle.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger *slog.Logger
}

func NewGemini(ctx context.Context, apiKey, modelName string, logger *slog.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.9)
	return &Gemini{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

func (g *Gemini) Close() {
	g.client.Close()
}

func (g *Gemini) Combine(ctx context.Context, req models.OracleRequest) (*models.OracleResponse, error) {
	prompt, err := Prompt(req)
	if err != nil {
		return nil, err
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}
	text, err := firstText(resp)
	if err != nil {
		return nil, err
	}

	out, err := ParseResponse(text)
	if err != nil {
		g.logger.Warn("unparseable oracle reply", "inputs", req.Inputs, "error", err)
		return nil, err
	}
	return out, nil
}

// Prompt renders the request with the template for its game mode.
func Prompt(req models.OracleRequest) (string, error) {
	tmpl, ok := prompts[req.Mode]
	if !ok {
		tmpl = prompts[models.ModeScience]
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, req); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ParseResponse decodes a YAML reply, tolerating a markdown code fence.
func ParseResponse(text string) (*models.OracleResponse, error) {
	cleanYAML := stripFence(text)
	var out models.OracleResponse
	if err := yaml.Unmarshal([]byte(cleanYAML), &out); err != nil {
		return nil, fmt.Errorf("failed to parse oracle YAML: %v\nOutput was: %s", err, cleanYAML)
	}
	return &out, nil
}

func stripFence(text string) string {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```yaml")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}
	return sb.String(), nil
}
