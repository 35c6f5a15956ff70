package models

import (
	"fmt"
	"strings"
)

// Variant selects the move vocabulary the game is played with.
type Variant string

const (
	// VariantClassic is the three-move game: paper, rock, scissors.
	VariantClassic Variant = "classic"
	// VariantExtended adds spock and lizard.
	VariantExtended Variant = "extended"
)

// InvalidMoveError reports an input symbol that is not part of the
// active vocabulary. It is always recoverable: callers re-prompt.
type InvalidMoveError struct {
	Symbol string
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("invalid move %q", e.Symbol)
}

type moveDef struct {
	symbol string
	name   string
}

var classicMoves = []moveDef{
	{"p", "Paper"},
	{"r", "Rock"},
	{"s", "Scissors"},
}

var extendedMoves = []moveDef{
	{"p", "Paper"},
	{"r", "Rock"},
	{"s", "Scissors"},
	{"k", "Spock"},
	{"l", "Lizard"},
}

// Win tables are keyed by winner symbol + loser symbol. Exactly one
// ordering per pair of distinct moves appears; equal moves tie.
var classicWins = map[string]string{
	"pr": "Paper covers Rock",
	"rs": "Rock crushes Scissors",
	"sp": "Scissors cut Paper",
}

var extendedWins = map[string]string{
	"pr": "Paper covers Rock",
	"pk": "Paper disproves Spock",
	"rs": "Rock crushes Scissors",
	"rl": "Rock crushes Lizard",
	"sp": "Scissors cut Paper",
	"sl": "Scissors decapitate Lizard",
	"kr": "Spock vaporizes Rock",
	"ks": "Spock smashes Scissors",
	"lp": "Lizard eats Paper",
	"lk": "Lizard poisons Spock",
}

// Vocabulary holds the closed move set for one game variant along with
// its win table. Moves are ordered; strategies rely on the fixed order.
type Vocabulary struct {
	variant Variant
	moves   []Move
	wins    map[string]string
}

// NewVocabulary builds the vocabulary for the given variant.
// An unknown variant is a configuration defect.
func NewVocabulary(variant Variant) (*Vocabulary, error) {
	var defs []moveDef
	var wins map[string]string

	switch variant {
	case VariantClassic:
		defs, wins = classicMoves, classicWins
	case VariantExtended:
		defs, wins = extendedMoves, extendedWins
	default:
		return nil, fmt.Errorf("unknown variant %q", variant)
	}

	v := &Vocabulary{variant: variant, wins: wins}
	for _, d := range defs {
		v.moves = append(v.moves, Move{symbol: d.symbol, name: d.name, vocab: v})
	}
	return v, nil
}

// Variant returns the variant this vocabulary was built for.
func (v *Vocabulary) Variant() Variant { return v.variant }

// Moves returns the vocabulary's moves in their fixed order.
func (v *Vocabulary) Moves() []Move {
	out := make([]Move, len(v.moves))
	copy(out, v.moves)
	return out
}

// Move resolves a player-supplied symbol, case-insensitively, to a Move.
// Symbols outside the vocabulary yield an *InvalidMoveError.
func (v *Vocabulary) Move(symbol string) (Move, error) {
	s := strings.ToLower(strings.TrimSpace(symbol))
	for _, m := range v.moves {
		if m.symbol == s {
			return m, nil
		}
	}
	return Move{}, &InvalidMoveError{Symbol: symbol}
}

// Move is one hand sign of the active vocabulary. Immutable; the zero
// value is not a valid move.
type Move struct {
	symbol string
	name   string
	vocab  *Vocabulary
}

// Symbol returns the single-character input symbol for the move.
func (m Move) Symbol() string { return m.symbol }

// Name returns the display name for the move.
func (m Move) Name() string { return m.name }

// Beats reports whether m defeats other.
func (m Move) Beats(other Move) bool {
	_, ok := m.vocab.wins[m.symbol+other.symbol]
	return ok
}

// LosesTo reports whether other defeats m.
func (m Move) LosesTo(other Move) bool {
	_, ok := m.vocab.wins[other.symbol+m.symbol]
	return ok
}

// Equals reports symbol equality.
func (m Move) Equals(other Move) bool { return m.symbol == other.symbol }

// Explain returns the win-table explanation when m defeats other,
// or the empty string otherwise.
func (m Move) Explain(other Move) string {
	return m.vocab.wins[m.symbol+other.symbol]
}

// CounterMoves returns every move that beats m. In the extended variant
// this is always two moves; callers pick among them at random.
func (m Move) CounterMoves() []Move {
	var counters []Move
	for _, c := range m.vocab.moves {
		if c.Beats(m) {
			counters = append(counters, c)
		}
	}
	return counters
}

// Personality is a named weight table for the opponent's fixed-bias
// move selection. Weights are per input symbol.
type Personality struct {
	Name    string         `yaml:"name"`
	Weights map[string]int `yaml:"weights"`
}

// Validate checks the weight table against a vocabulary: every move
// present, no stray symbols, no negative weights, positive total.
// A failure here is a configuration defect and fatal at startup.
func (p Personality) Validate(vocab *Vocabulary) error {
	total := 0
	for _, m := range vocab.Moves() {
		w, ok := p.Weights[m.Symbol()]
		if !ok {
			return fmt.Errorf("personality %q: missing weight for %s", p.Name, m.Name())
		}
		if w < 0 {
			return fmt.Errorf("personality %q: negative weight for %s", p.Name, m.Name())
		}
		total += w
	}
	if len(p.Weights) != len(vocab.Moves()) {
		return fmt.Errorf("personality %q: weight table has symbols outside the vocabulary", p.Name)
	}
	if total == 0 {
		return fmt.Errorf("personality %q: all weights are zero", p.Name)
	}
	return nil
}
