package main

import (
	"fmt"
	"os"

	"github.com/tatianab/rps-game/internal/config"
	"github.com/tatianab/rps-game/internal/engine"
	"github.com/tatianab/rps-game/internal/models"
	"github.com/tatianab/rps-game/internal/tui"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	eng, err := engine.NewEngine(models.Variant(cfg.Variant), cfg.Adaptive, cfg.WinLimit, cfg.Seed)
	if err != nil {
		fmt.Printf("Error creating engine: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(eng); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
