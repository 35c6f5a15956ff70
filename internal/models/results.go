package models

import (
	"math"
	"time"
)

// Result classifies a round from the player's point of view.
type Result string

const (
	Won  Result = "won"
	Lost Result = "lost"
	Tied Result = "tied"
)

// RoundOutcome is a single entry in the session log. Immutable once
// recorded.
type RoundOutcome struct {
	Timestamp    time.Time
	Result       Result
	PlayerMove   Move
	OpponentMove Move
}

// Stats are round counts derived from the log.
type Stats struct {
	Total int
	Won   int
	Lost  int
	Tied  int
}

// Percentages are per-result shares of the log, rounded to two decimal
// places. All zero when no rounds have been played.
type Percentages struct {
	Won  float64
	Lost float64
	Tied float64
}

// ResultLog is the append-only record of one session's rounds. Counts
// and percentages are recomputed from the entries on demand rather than
// stored alongside them.
type ResultLog struct {
	entries []RoundOutcome
}

// Record appends an outcome to the log.
func (l *ResultLog) Record(o RoundOutcome) {
	l.entries = append(l.entries, o)
}

// Entries returns a copy of the log in recording order.
func (l *ResultLog) Entries() []RoundOutcome {
	out := make([]RoundOutcome, len(l.entries))
	copy(out, l.entries)
	return out
}

// Stats counts the recorded rounds by result.
func (l *ResultLog) Stats() Stats {
	s := Stats{Total: len(l.entries)}
	for _, e := range l.entries {
		switch e.Result {
		case Won:
			s.Won++
		case Lost:
			s.Lost++
		case Tied:
			s.Tied++
		}
	}
	return s
}

// Percentages derives per-result shares from the log. An empty log
// yields all zeros; the division is never attempted.
func (l *ResultLog) Percentages() Percentages {
	s := l.Stats()
	if s.Total == 0 {
		return Percentages{}
	}
	pct := func(n int) float64 {
		return math.Round(float64(n)/float64(s.Total)*100*100) / 100
	}
	return Percentages{
		Won:  pct(s.Won),
		Lost: pct(s.Lost),
		Tied: pct(s.Tied),
	}
}

// PlayerMoveCounts tallies how often the human has played each symbol.
// Used by the adaptive opponent to predict the next move.
func (l *ResultLog) PlayerMoveCounts() map[string]int {
	counts := make(map[string]int)
	for _, e := range l.entries {
		counts[e.PlayerMove.Symbol()]++
	}
	return counts
}

// Reset empties the log, starting a fresh session.
func (l *ResultLog) Reset() {
	l.entries = nil
}
