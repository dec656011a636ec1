// internal/stats/stats.go
//
// Persistent statistics over the kv collaborator.
//
// Layout (one logical key each):
//   wins, losses, games      → counters, decimal strings
//   incorrectGuesses         → per-game log, JSON array of ints
//   durations                → per-game log, JSON array of millisecond ints
//
// Counters and logs for one completed game are updated under a single lock,
// and Summary reads under the same lock, so no partial state is ever
// observable. The store may be shared across sessions. Persistence failures
// are reported to the caller as wrapped errors; callers treat them as
// best-effort (log and continue), never as game-state failures.

package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/raweeng/Nulldle/internal/kv"
)

const (
	keyWins      = "wins"
	keyLosses    = "losses"
	keyGames     = "games"
	keyIncorrect = "incorrectGuesses"
	keyDurations = "durations"
)

// leaderboardSize caps the fastest-times list returned by Summary.
const leaderboardSize = 5

// Store records completed-game outcomes and answers aggregate queries.
type Store struct {
	mu sync.Mutex
	kv kv.Store
}

// New wraps a kv collaborator in a stats Store.
func New(s kv.Store) *Store {
	return &Store{kv: s}
}

// RecordResult increments the win or loss counter together with the
// games-played counter and appends to the incorrect-guess log.
func (s *Store) RecordResult(ctx context.Context, won bool, incorrectGuesses int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordResult(ctx, won, incorrectGuesses)
}

// RecordDuration appends a completed game's elapsed time to the duration log.
func (s *Store) RecordDuration(ctx context.Context, elapsed time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendList(ctx, keyDurations, elapsed.Milliseconds())
}

// RecordGame records outcome and duration for one completed game as a single
// atomic update. It satisfies game.Recorder.
func (s *Store) RecordGame(ctx context.Context, won bool, incorrectGuesses int, elapsed time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.recordResult(ctx, won, incorrectGuesses); err != nil {
		return err
	}
	return s.appendList(ctx, keyDurations, elapsed.Milliseconds())
}

func (s *Store) recordResult(ctx context.Context, won bool, incorrectGuesses int) error {
	outcome := keyLosses
	if won {
		outcome = keyWins
	}
	if err := s.bumpCounter(ctx, outcome); err != nil {
		return err
	}
	if err := s.bumpCounter(ctx, keyGames); err != nil {
		return err
	}
	return s.appendList(ctx, keyIncorrect, int64(incorrectGuesses))
}

// Summary is the aggregate view over all recorded games.
type Summary struct {
	Wins                    int     `json:"wins"`
	Losses                  int     `json:"losses"`
	GamesPlayed             int     `json:"gamesPlayed"`
	AverageIncorrectGuesses float64 `json:"averageIncorrectGuesses"`
	// TopDurationsMillis holds the fastest completions, ascending, at most
	// leaderboardSize entries.
	TopDurationsMillis []int64 `json:"topDurationsMillis"`
}

// TopDurationsSeconds converts the leaderboard to seconds for display.
func (s Summary) TopDurationsSeconds() []float64 {
	return lo.Map(s.TopDurationsMillis, func(ms int64, _ int) float64 {
		return float64(ms) / 1000.0
	})
}

// Summary computes the aggregate counters, the mean of the incorrect-guess
// log (0 when empty), and the fastest-times leaderboard.
func (s *Store) Summary(ctx context.Context) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out Summary
	var err error
	if out.Wins, err = s.getCounter(ctx, keyWins); err != nil {
		return Summary{}, err
	}
	if out.Losses, err = s.getCounter(ctx, keyLosses); err != nil {
		return Summary{}, err
	}
	if out.GamesPlayed, err = s.getCounter(ctx, keyGames); err != nil {
		return Summary{}, err
	}

	incorrect, err := s.getList(ctx, keyIncorrect)
	if err != nil {
		return Summary{}, err
	}
	if len(incorrect) > 0 {
		out.AverageIncorrectGuesses = float64(lo.Sum(incorrect)) / float64(len(incorrect))
	}

	durations, err := s.getList(ctx, keyDurations)
	if err != nil {
		return Summary{}, err
	}
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
	out.TopDurationsMillis = lo.Slice(durations, 0, leaderboardSize)
	return out, nil
}

// ------------------------------ kv helpers ---------------------------------

func (s *Store) getCounter(ctx context.Context, key string) (int, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("stats: read %s: %w", key, err)
	}
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("stats: parse %s: %w", key, err)
	}
	return n, nil
}

func (s *Store) bumpCounter(ctx context.Context, key string) error {
	n, err := s.getCounter(ctx, key)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, key, strconv.Itoa(n+1)); err != nil {
		return fmt.Errorf("stats: write %s: %w", key, err)
	}
	return nil
}

func (s *Store) getList(ctx context.Context, key string) ([]int64, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("stats: read %s: %w", key, err)
	}
	if !ok {
		return nil, nil
	}
	var vals []int64
	if err := json.Unmarshal([]byte(raw), &vals); err != nil {
		return nil, fmt.Errorf("stats: parse %s: %w", key, err)
	}
	return vals, nil
}

func (s *Store) appendList(ctx context.Context, key string, v int64) error {
	vals, err := s.getList(ctx, key)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(append(vals, v))
	if err != nil {
		return fmt.Errorf("stats: encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("stats: write %s: %w", key, err)
	}
	return nil
}
