package oracle

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/element-mixer/internal/models"
	"google.golang.org/api/option"
	"gopkg.in/yaml.v3"
)

// Player is an LLM that plays the game: it looks at what has been discovered
// and picks the next pair to mix.
type Player struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewPlayer(ctx context.Context, apiKey, modelName string) (*Player, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	return &Player{client: client, model: client.GenerativeModel(modelName)}, nil
}

func (p *Player) Close() {
	p.client.Close()
}

// Move is the player's next choice.
type Move struct {
	First     string `yaml:"first"`
	Second    string `yaml:"second"`
	Energized bool   `yaml:"energized"`
}

// Next asks the player for a combination of two discovered elements.
func (p *Player) Next(ctx context.Context, s models.GameState) (Move, error) {
	names := make([]string, 0, len(s.Elements))
	for _, e := range s.Elements {
		names = append(names, e.Name)
	}
	var tried []string
	for _, rec := range s.Combinations.Recent(15) {
		tried = append(tried, rec.Key)
	}

	prompt := fmt.Sprintf(`You are playing an element mixing game in %s mode.
Discovered elements: %s
Combinations already tried: %s

Pick two discovered elements to mix that have not been tried yet. Set energized to true to add energy.
Reply with YAML only:

first: <element>
second: <element>
energized: false`,
		s.GameMode,
		strings.Join(names, ", "),
		strings.Join(tried, ", "),
	)

	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return Move{}, err
	}
	text, err := firstText(resp)
	if err != nil {
		return Move{}, err
	}

	var m Move
	if err := yaml.Unmarshal([]byte(stripFence(text)), &m); err != nil {
		return Move{}, fmt.Errorf("failed to parse player move: %v\nOutput was: %s", err, text)
	}
	if m.First == "" || m.Second == "" {
		return Move{}, fmt.Errorf("player picked an incomplete move: %+v", m)
	}
	return m, nil
}
