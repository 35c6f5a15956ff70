package engine

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/tatianab/rps-game/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed personalities.yaml
var personalitiesYAML []byte

// ErrSessionOver is returned by PlayRound once the match has been
// decided; callers must start a new session first.
var ErrSessionOver = errors.New("session already over")

// SessionState tracks where the round/session loop currently is.
// AwaitingOpponentMove and Resolved are transient within PlayRound.
type SessionState int

const (
	AwaitingPlayerMove SessionState = iota
	AwaitingOpponentMove
	Resolved
	SessionOver
)

// MovePicker is the opponent's move-selection policy.
type MovePicker interface {
	Pick(log *models.ResultLog) models.Move
}

// weightedDraw picks a move with probability proportional to its
// weight, walking the vocabulary's fixed order. Zero-weight moves are
// unreachable. Weights must be non-negative with a positive total.
func weightedDraw(rng *rand.Rand, moves []models.Move, weights map[string]int) models.Move {
	total := 0
	for _, m := range moves {
		total += weights[m.Symbol()]
	}
	roll := rng.IntN(total)
	for _, m := range moves {
		roll -= weights[m.Symbol()]
		if roll < 0 {
			return m
		}
	}
	return moves[len(moves)-1]
}

// personalityPicker draws from a fixed per-personality weight table.
type personalityPicker struct {
	vocab   *models.Vocabulary
	persona models.Personality
	rng     *rand.Rand
}

func (p *personalityPicker) Pick(_ *models.ResultLog) models.Move {
	return weightedDraw(p.rng, p.vocab.Moves(), p.persona.Weights)
}

// counterPicker predicts the human's next move from the session's move
// frequencies and answers with a move that beats the prediction. With
// fewer than three rounds on record it falls back to a uniform draw.
type counterPicker struct {
	vocab *models.Vocabulary
	rng   *rand.Rand
}

func (c *counterPicker) Pick(log *models.ResultLog) models.Move {
	moves := c.vocab.Moves()
	stats := log.Stats()
	if stats.Total < 3 {
		return moves[c.rng.IntN(len(moves))]
	}

	weights := frequencyWeights(moves, log.PlayerMoveCounts(), stats.Total)
	predicted := weightedDraw(c.rng, moves, weights)

	counters := predicted.CounterMoves()
	return counters[c.rng.IntN(len(counters))]
}

// frequencyWeights turns historical move counts into a weight table:
// the percentage of rounds each move was played, rounded up. Moves the
// human has never tried get a floor of 100/len(moves)/2, rounded up, so
// they are never ruled out entirely.
func frequencyWeights(moves []models.Move, counts map[string]int, total int) map[string]int {
	floor := (50 + len(moves) - 1) / len(moves)
	weights := make(map[string]int, len(moves))
	for _, m := range moves {
		n := counts[m.Symbol()]
		if n == 0 {
			weights[m.Symbol()] = floor
			continue
		}
		weights[m.Symbol()] = (n*100 + total - 1) / total
	}
	return weights
}

// Round is the resolved record of one played round.
type Round struct {
	Outcome models.RoundOutcome
	// Explanation is the win-table line for a decided round
	// ("Rock crushes Scissors"), or a tie notice.
	Explanation string
}

// Engine owns one opponent and the session state machine. The opponent's
// personality is sampled once at construction and kept for the process
// lifetime; new sessions only clear the result log.
type Engine struct {
	vocab        *models.Vocabulary
	picker       MovePicker
	opponentName string
	results      *models.ResultLog
	winLimit     int
	state        SessionState
}

// NewEngine builds an engine for the given variant. When adaptive is
// set the opponent uses the frequency-counter strategy; otherwise a
// personality is sampled uniformly from the built-in set. A seed of 0
// means time-based.
func NewEngine(variant models.Variant, adaptive bool, winLimit int, seed int64) (*Engine, error) {
	vocab, err := models.NewVocabulary(variant)
	if err != nil {
		return nil, err
	}
	if winLimit <= 0 {
		return nil, fmt.Errorf("win limit must be positive, got %d", winLimit)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1))

	e := &Engine{
		vocab:    vocab,
		results:  &models.ResultLog{},
		winLimit: winLimit,
		state:    AwaitingPlayerMove,
	}

	if adaptive {
		e.picker = &counterPicker{vocab: vocab, rng: rng}
		e.opponentName = "adaptive"
		return e, nil
	}

	personas, err := loadPersonalities(vocab)
	if err != nil {
		return nil, err
	}
	persona := personas[rng.IntN(len(personas))]
	e.picker = &personalityPicker{vocab: vocab, persona: persona, rng: rng}
	e.opponentName = persona.Name
	return e, nil
}

// loadPersonalities parses the embedded personality tables for the
// vocabulary's variant and validates each one. Any defect here is
// fatal at startup.
func loadPersonalities(vocab *models.Vocabulary) ([]models.Personality, error) {
	var byVariant map[models.Variant][]models.Personality
	if err := yaml.Unmarshal(personalitiesYAML, &byVariant); err != nil {
		return nil, fmt.Errorf("parse personalities: %w", err)
	}
	personas := byVariant[vocab.Variant()]
	if len(personas) == 0 {
		return nil, fmt.Errorf("no personalities defined for variant %q", vocab.Variant())
	}
	for _, p := range personas {
		if err := p.Validate(vocab); err != nil {
			return nil, err
		}
	}
	return personas, nil
}

// PlayRound validates the player's symbol, obtains the opponent's move,
// resolves and records the round, and advances the state machine. An
// invalid symbol leaves the state untouched so the caller can re-prompt.
func (e *Engine) PlayRound(symbol string) (*Round, error) {
	if e.state == SessionOver {
		return nil, ErrSessionOver
	}

	player, err := e.vocab.Move(symbol)
	if err != nil {
		return nil, err
	}
	e.state = AwaitingOpponentMove

	opponent := e.picker.Pick(e.results)

	result := models.Tied
	explanation := fmt.Sprintf("Both picked %s", player.Name())
	switch {
	case player.Beats(opponent):
		result = models.Won
		explanation = player.Explain(opponent)
	case opponent.Beats(player):
		result = models.Lost
		explanation = opponent.Explain(player)
	}

	outcome := models.RoundOutcome{
		Timestamp:    time.Now(),
		Result:       result,
		PlayerMove:   player,
		OpponentMove: opponent,
	}
	e.results.Record(outcome)
	e.state = Resolved

	stats := e.results.Stats()
	if stats.Won >= e.winLimit || stats.Lost >= e.winLimit {
		e.state = SessionOver
	} else {
		e.state = AwaitingPlayerMove
	}

	return &Round{Outcome: outcome, Explanation: explanation}, nil
}

// MatchOutcome reports who took the match once the session is over.
func (e *Engine) MatchOutcome() (models.Result, bool) {
	if e.state != SessionOver {
		return "", false
	}
	if e.results.Stats().Won >= e.winLimit {
		return models.Won, true
	}
	return models.Lost, true
}

// NewSession clears the result log and re-arms the state machine. The
// opponent keeps the personality it was constructed with.
func (e *Engine) NewSession() {
	e.results.Reset()
	e.state = AwaitingPlayerMove
}

// State returns the state machine's current state.
func (e *Engine) State() SessionState { return e.state }

// OpponentName is the sampled personality's name, or "adaptive".
func (e *Engine) OpponentName() string { return e.opponentName }

// WinLimit is the number of won (or lost) rounds that ends the match.
func (e *Engine) WinLimit() int { return e.winLimit }

// Vocabulary returns the active move vocabulary.
func (e *Engine) Vocabulary() *models.Vocabulary { return e.vocab }

// Stats returns the current session's round counts.
func (e *Engine) Stats() models.Stats { return e.results.Stats() }

// Percentages returns the current session's per-result shares.
func (e *Engine) Percentages() models.Percentages { return e.results.Percentages() }

// Log returns the session's rounds in playing order.
func (e *Engine) Log() []models.RoundOutcome { return e.results.Entries() }
