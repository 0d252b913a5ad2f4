// simulate_game lets a model play the game against the real oracle and
// prints each turn. Nothing is saved.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/tatianab/element-mixer/internal/config"
	"github.com/tatianab/element-mixer/internal/engine"
	"github.com/tatianab/element-mixer/internal/icons"
	"github.com/tatianab/element-mixer/internal/logging"
	"github.com/tatianab/element-mixer/internal/oracle"
)

const maxTurns = 20

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logging.Init(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat, os.Stderr)

	// The game master
	gm, err := oracle.NewGemini(ctx, cfg.APIKey(), cfg.Model, logging.New("oracle"))
	if err != nil {
		log.Fatalf("Failed to create oracle: %v", err)
	}
	defer gm.Close()

	player, err := oracle.NewPlayer(ctx, cfg.APIKey(), cfg.Model)
	if err != nil {
		log.Fatalf("Failed to create player: %v", err)
	}
	defer player.Close()

	game := engine.NewGame(engine.Options{
		Mode:   cfg.GameMode,
		Oracle: gm,
		Icons:  icons.Resolve,
		// Simulations are not metered.
		Usage:  engine.Usage{HasAPIKey: true},
		Logger: logging.New("engine"),
	})

	fmt.Printf("--- Playing %s mode for %d turns ---\n\n", cfg.GameMode, maxTurns)
	for turn := 1; turn <= maxTurns; turn++ {
		fmt.Printf("--- Turn %d ---\n", turn)

		move, err := player.Next(ctx, game.State())
		if err != nil {
			fmt.Printf("Player failed to move: %v\n", err)
			continue
		}
		energy := ""
		if move.Energized {
			energy = " + Energy"
		}
		fmt.Printf("Player mixes: %s + %s%s\n", move.First, move.Second, energy)

		res, err := game.Combine(ctx, move.Energized, move.First, move.Second)
		switch {
		case errors.Is(err, engine.ErrUnknownElement):
			fmt.Printf("Invalid move: %v\n\n", err)
			continue
		case err != nil:
			fmt.Printf("Error processing turn: %v\n", err)
			return
		}
		fmt.Println(res.Message())
		if res.IsNew && res.Element.Reasoning != "" {
			fmt.Printf("Why: %s\n", res.Element.Reasoning)
		}
		for _, a := range res.Achievements {
			fmt.Printf("ACHIEVEMENT: %s %s\n", a.Emoji, a.Name)
		}

		st := game.State()
		fmt.Printf("Discovered: %d, final: %d\n\n", st.DiscoveredCount(), len(st.EndElements))
	}
}
