package main

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/tatianab/rps-game/internal/config"
	"github.com/tatianab/rps-game/internal/engine"
	"github.com/tatianab/rps-game/internal/models"
)

const maxSessions = 5

// Headless harness: plays full sessions against the engine with a
// uniform-random stand-in player and prints what the TUI would show.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	eng, err := engine.NewEngine(models.Variant(cfg.Variant), cfg.Adaptive, cfg.WinLimit, cfg.Seed)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	moves := eng.Vocabulary().Moves()
	fmt.Printf("Opponent: %s (variant %s, first to %d)\n\n", eng.OpponentName(), cfg.Variant, eng.WinLimit())

	wonSessions := 0
	for session := 1; session <= maxSessions; session++ {
		fmt.Printf("--- Session %d ---\n", session)

		for eng.State() != engine.SessionOver {
			move := moves[rand.IntN(len(moves))]
			round, err := eng.PlayRound(move.Symbol())
			if err != nil {
				log.Fatalf("Failed to play round: %v", err)
			}
			o := round.Outcome
			fmt.Printf("you: %-8s opponent: %-8s %-5s (%s)\n",
				o.PlayerMove.Name(), o.OpponentMove.Name(), o.Result, round.Explanation)
		}

		outcome, _ := eng.MatchOutcome()
		stats := eng.Stats()
		pcts := eng.Percentages()
		if outcome == models.Won {
			wonSessions++
			fmt.Printf("Session ended: player won %d-%d\n", stats.Won, stats.Lost)
		} else {
			fmt.Printf("Session ended: opponent won %d-%d\n", stats.Lost, stats.Won)
		}
		fmt.Printf("Stats: total=%d won=%.2f%% lost=%.2f%% tied=%.2f%%\n\n",
			stats.Total, pcts.Won, pcts.Lost, pcts.Tied)

		eng.NewSession()
	}

	fmt.Printf("Player took %d of %d sessions.\n", wonSessions, maxSessions)
}
