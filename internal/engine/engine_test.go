package engine

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/tatianab/rps-game/internal/models"
)

func mustVocab(t *testing.T, variant models.Variant) *models.Vocabulary {
	t.Helper()
	v, err := models.NewVocabulary(variant)
	if err != nil {
		t.Fatalf("NewVocabulary(%s): %v", variant, err)
	}
	return v
}

func mustMove(t *testing.T, vocab *models.Vocabulary, symbol string) models.Move {
	t.Helper()
	m, err := vocab.Move(symbol)
	if err != nil {
		t.Fatalf("Move(%q): %v", symbol, err)
	}
	return m
}

// fixedPicker always plays the same move; used to script sessions.
type fixedPicker struct {
	move models.Move
}

func (p fixedPicker) Pick(_ *models.ResultLog) models.Move { return p.move }

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(42, 1))
}

func TestWeightedDrawDistribution(t *testing.T) {
	vocab := mustVocab(t, models.VariantClassic)
	weights := map[string]int{"p": 0, "r": 80, "s": 20}
	rng := testRNG()

	const draws = 10000
	counts := map[string]int{}
	for i := 0; i < draws; i++ {
		counts[weightedDraw(rng, vocab.Moves(), weights).Symbol()]++
	}

	if counts["p"] != 0 {
		t.Errorf("zero-weight paper drawn %d times", counts["p"])
	}
	rockFraction := float64(counts["r"]) / draws
	if rockFraction < 0.77 || rockFraction > 0.83 {
		t.Errorf("rock fraction = %.3f, want ~0.80", rockFraction)
	}
}

func TestWeightedDrawDegenerate(t *testing.T) {
	vocab := mustVocab(t, models.VariantClassic)
	weights := map[string]int{"p": 0, "r": 0, "s": 7}
	rng := testRNG()

	for i := 0; i < 100; i++ {
		if got := weightedDraw(rng, vocab.Moves(), weights); got.Symbol() != "s" {
			t.Fatalf("draw with all weight on scissors returned %s", got.Name())
		}
	}
}

func TestFrequencyWeights(t *testing.T) {
	classic := mustVocab(t, models.VariantClassic)
	extended := mustVocab(t, models.VariantExtended)

	tests := []struct {
		name   string
		vocab  *models.Vocabulary
		counts map[string]int
		total  int
		want   map[string]int
	}{
		{
			// 100/3/2 rounded up = 17 for never-played moves.
			name:   "classic single move",
			vocab:  classic,
			counts: map[string]int{"r": 3},
			total:  3,
			want:   map[string]int{"p": 17, "r": 100, "s": 17},
		},
		{
			// Percentages round up: 1/3 -> 34, 2/3 -> 67.
			name:   "classic mixed",
			vocab:  classic,
			counts: map[string]int{"r": 1, "p": 2},
			total:  3,
			want:   map[string]int{"p": 67, "r": 34, "s": 17},
		},
		{
			// Extended floor is 100/5/2 = 10.
			name:   "extended floor",
			vocab:  extended,
			counts: map[string]int{"k": 4},
			total:  4,
			want:   map[string]int{"p": 10, "r": 10, "s": 10, "k": 100, "l": 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := frequencyWeights(tt.vocab.Moves(), tt.counts, tt.total)
			for symbol, want := range tt.want {
				if got[symbol] != want {
					t.Errorf("weight[%s] = %d, want %d", symbol, got[symbol], want)
				}
			}
		})
	}
}

func TestCounterPickerFallsBackToUniform(t *testing.T) {
	vocab := mustVocab(t, models.VariantClassic)
	picker := &counterPicker{vocab: vocab, rng: testRNG()}
	var log models.ResultLog

	// Under three recorded rounds every vocabulary move must be
	// reachable.
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		seen[picker.Pick(&log).Symbol()] = true
	}
	if len(seen) != 3 {
		t.Errorf("uniform fallback reached %d moves, want 3", len(seen))
	}
}

func TestCounterPickerCountersDominantMove(t *testing.T) {
	vocab := mustVocab(t, models.VariantExtended)
	picker := &counterPicker{vocab: vocab, rng: testRNG()}

	rock := mustMove(t, vocab, "r")
	scissors := mustMove(t, vocab, "s")
	var log models.ResultLog
	for i := 0; i < 6; i++ {
		log.Record(models.RoundOutcome{Result: models.Won, PlayerMove: rock, OpponentMove: scissors})
	}

	// With the human playing nothing but rock, the predicted move is
	// rock with weight 100 against four floors of 10, so moves that
	// beat rock (paper, spock) should dominate the response mix.
	const picks = 2000
	countering := 0
	for i := 0; i < picks; i++ {
		got := picker.Pick(&log)
		if got.Beats(rock) {
			countering++
		}
	}
	if fraction := float64(countering) / picks; fraction < 0.6 {
		t.Errorf("counter moves fraction = %.3f, want > 0.6", fraction)
	}
}

func TestLoadPersonalities(t *testing.T) {
	for _, variant := range []models.Variant{models.VariantClassic, models.VariantExtended} {
		vocab := mustVocab(t, variant)
		personas, err := loadPersonalities(vocab)
		if err != nil {
			t.Fatalf("%s: %v", variant, err)
		}
		if len(personas) == 0 {
			t.Errorf("%s: no personalities loaded", variant)
		}
	}
}

func TestNewEngineRejectsBadConfig(t *testing.T) {
	if _, err := NewEngine("ultimate", false, 3, 1); err == nil {
		t.Error("expected error for unknown variant")
	}
	if _, err := NewEngine(models.VariantClassic, false, 0, 1); err == nil {
		t.Error("expected error for zero win limit")
	}
}

func TestInvalidMoveLeavesStateUntouched(t *testing.T) {
	eng, err := NewEngine(models.VariantClassic, false, 3, 1)
	if err != nil {
		t.Fatal(err)
	}

	_, err = eng.PlayRound("x")
	var invalid *models.InvalidMoveError
	if !errors.As(err, &invalid) {
		t.Fatalf("PlayRound(\"x\") returned %v, want InvalidMoveError", err)
	}
	if eng.State() != AwaitingPlayerMove {
		t.Errorf("state = %v after invalid input, want AwaitingPlayerMove", eng.State())
	}
	if eng.Stats().Total != 0 {
		t.Errorf("invalid input was recorded: %+v", eng.Stats())
	}
}

func TestSessionEndsAtWinLimit(t *testing.T) {
	eng, err := NewEngine(models.VariantClassic, false, 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	// Script the opponent: always scissors. Rock wins, paper loses.
	eng.picker = fixedPicker{move: mustMove(t, eng.Vocabulary(), "s")}

	// Interleave wins and losses; the match must end exactly when the
	// third win lands, not before.
	script := []struct {
		symbol string
		want   models.Result
	}{
		{"r", models.Won},
		{"p", models.Lost},
		{"r", models.Won},
		{"p", models.Lost},
		{"r", models.Won},
	}

	for i, step := range script {
		if eng.State() == SessionOver {
			t.Fatalf("session over after %d rounds, want 5", i)
		}
		round, err := eng.PlayRound(step.symbol)
		if err != nil {
			t.Fatalf("round %d: %v", i+1, err)
		}
		if round.Outcome.Result != step.want {
			t.Fatalf("round %d result = %s, want %s", i+1, round.Outcome.Result, step.want)
		}
	}

	if eng.State() != SessionOver {
		t.Fatal("session not over after third win")
	}
	if outcome, ok := eng.MatchOutcome(); !ok || outcome != models.Won {
		t.Errorf("match outcome = %v, %v, want won", outcome, ok)
	}
	if _, err := eng.PlayRound("r"); !errors.Is(err, ErrSessionOver) {
		t.Errorf("PlayRound after match returned %v, want ErrSessionOver", err)
	}
}

func TestTiesNeverEndSession(t *testing.T) {
	eng, err := NewEngine(models.VariantClassic, false, 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	eng.picker = fixedPicker{move: mustMove(t, eng.Vocabulary(), "r")}

	for i := 0; i < 10; i++ {
		round, err := eng.PlayRound("r")
		if err != nil {
			t.Fatal(err)
		}
		if round.Outcome.Result != models.Tied {
			t.Fatalf("round %d = %s, want tied", i+1, round.Outcome.Result)
		}
	}

	if eng.State() == SessionOver {
		t.Error("session ended on ties alone")
	}
	if got := eng.Stats(); got.Tied != 10 {
		t.Errorf("tied count = %d, want 10", got.Tied)
	}
}

func TestNewSessionKeepsOpponent(t *testing.T) {
	eng, err := NewEngine(models.VariantClassic, false, 3, 7)
	if err != nil {
		t.Fatal(err)
	}
	name := eng.OpponentName()
	eng.picker = fixedPicker{move: mustMove(t, eng.Vocabulary(), "s")}

	for i := 0; i < 3; i++ {
		if _, err := eng.PlayRound("r"); err != nil {
			t.Fatal(err)
		}
	}
	if eng.State() != SessionOver {
		t.Fatal("expected session over")
	}

	eng.NewSession()

	if eng.State() != AwaitingPlayerMove {
		t.Errorf("state after NewSession = %v, want AwaitingPlayerMove", eng.State())
	}
	if eng.Stats() != (models.Stats{}) {
		t.Errorf("stats after NewSession = %+v, want all zero", eng.Stats())
	}
	if eng.OpponentName() != name {
		t.Errorf("opponent changed across sessions: %q -> %q", name, eng.OpponentName())
	}
}

func TestRoundLogIsOrderedAndComplete(t *testing.T) {
	eng, err := NewEngine(models.VariantClassic, true, 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	if eng.OpponentName() != "adaptive" {
		t.Errorf("adaptive engine opponent name = %q", eng.OpponentName())
	}

	symbols := []string{"r", "p", "s", "r"}
	for _, s := range symbols {
		if eng.State() == SessionOver {
			break
		}
		if _, err := eng.PlayRound(s); err != nil {
			t.Fatal(err)
		}
	}

	log := eng.Log()
	if len(log) == 0 {
		t.Fatal("empty round log")
	}
	for i, entry := range log {
		if entry.Timestamp.IsZero() {
			t.Errorf("entry %d has zero timestamp", i)
		}
		if entry.PlayerMove.Symbol() != symbols[i] {
			t.Errorf("entry %d player move = %s, want %s", i, entry.PlayerMove.Symbol(), symbols[i])
		}
	}
}
