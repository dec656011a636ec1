// internal/game/session.go
//
// A Session is the state machine for one player's game:
//   - Owns the target word, guess history, and the in-progress input buffer.
//   - Drives Evaluate on submission and applies the playing → won/lost
//     transitions.
//   - Reports one completed-game event to a Recorder on each terminal
//     transition (best effort; recorder failures never reach the caller).
//   - Notifies subscribed listeners after every mutating operation.
//
// A Session is not safe for concurrent use. It must be confined to a single
// owner (one coordinator entry, one UI controller) that serializes calls.

package game

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Dict answers the two questions the session asks of a dictionary.
type Dict interface {
	IsValid(word string) bool
	RandomWord() (string, error)
}

// Recorder receives exactly one event per completed game. Implementations
// must tolerate being called from the submission path; errors are logged and
// dropped, never surfaced to the player.
type Recorder interface {
	RecordGame(ctx context.Context, won bool, incorrectGuesses int, elapsed time.Duration) error
}

var (
	// ErrGameOver is returned for submissions after a terminal transition.
	ErrGameOver = errors.New("game finished")
	// ErrBadLength is returned when the input is not exactly five letters.
	ErrBadLength = errors.New("word must be 5 letters")
	// ErrInvalidWord is returned when the word is not in the dictionary.
	// The session is left unchanged and the input retained, so the player
	// can correct the attempt.
	ErrInvalidWord = errors.New("not in word list")
)

// Session holds the state of a single game.
type Session struct {
	ID string

	dict Dict
	rec  Recorder

	target    string
	guesses   []Guess
	input     string
	over      bool
	won       bool
	startedAt time.Time
	errMsg    string

	listeners []func()
}

// NewSession starts a fresh game with a random target word.
// Fails only if the dictionary cannot supply a word.
func NewSession(d Dict, rec Recorder) (*Session, error) {
	s := &Session{ID: randomID(), dict: d, rec: rec}
	if err := s.NewGame(); err != nil {
		return nil, err
	}
	return s, nil
}

// Subscribe registers a listener invoked after every mutating operation.
// Listeners run synchronously on the mutating goroutine.
func (s *Session) Subscribe(fn func()) {
	s.listeners = append(s.listeners, fn)
}

// UpdateInput replaces the current input buffer. It is a no-op once the game
// is over. Input is lowercased and silently capped at five characters;
// dictionary validation is deferred to SubmitGuess.
func (s *Session) UpdateInput(text string) {
	if s.over {
		return
	}
	text = strings.ToLower(strings.TrimSpace(text))
	if len(text) > WordLength {
		text = text[:WordLength]
	}
	s.input = text
	s.errMsg = ""
	s.notify()
}

// SubmitGuess validates and scores the current input, mutating the session.
//
// Transition rules, in order:
//   - submitted word equals the target → won
//   - sixth guess recorded → lost
//   - otherwise the game stays in progress
//
// On a terminal transition the completed game is recorded before listeners
// are notified, so a later NewGame can never race an in-flight write.
func (s *Session) SubmitGuess(ctx context.Context) error {
	if s.over {
		return ErrGameOver
	}
	if len(s.input) != WordLength {
		return ErrBadLength
	}
	if !s.dict.IsValid(s.input) {
		s.errMsg = ErrInvalidWord.Error()
		s.notify()
		return ErrInvalidWord
	}

	word := s.input
	s.guesses = append(s.guesses, Evaluate(s.target, word))
	s.input = ""
	s.errMsg = ""

	if word == s.target {
		s.over, s.won = true, true
	} else if len(s.guesses) >= MaxGuesses {
		s.over = true
	}

	if s.over {
		s.recordCompleted(ctx)
	}
	s.notify()
	return nil
}

// NewGame resets the session to a fresh game with a random target.
func (s *Session) NewGame() error {
	target, err := s.dict.RandomWord()
	if err != nil {
		return err
	}
	s.reset(target)
	return nil
}

// SetCustomWord starts a new game with the supplied target. The word must be
// five letters and dictionary-valid; otherwise the current game is left
// untouched and the rejection is reported to the caller.
func (s *Session) SetCustomWord(word string) error {
	word = strings.ToLower(strings.TrimSpace(word))
	if len(word) != WordLength {
		return ErrBadLength
	}
	if !s.dict.IsValid(word) {
		return ErrInvalidWord
	}
	s.reset(word)
	return nil
}

func (s *Session) reset(target string) {
	s.target = target
	s.guesses = nil
	s.input = ""
	s.over = false
	s.won = false
	s.errMsg = ""
	s.startedAt = time.Now()
	s.notify()
}

// recordCompleted reports the finished game to the recorder. Incorrect
// guesses exclude the winning attempt; a loss counts all six.
func (s *Session) recordCompleted(ctx context.Context) {
	if s.rec == nil {
		return
	}
	incorrect := len(s.guesses)
	if s.won {
		incorrect--
	}
	elapsed := time.Since(s.startedAt)
	if err := s.rec.RecordGame(ctx, s.won, incorrect, elapsed); err != nil {
		log.Warn().Err(err).Str("session", s.ID).Msg("record completed game")
	}
}

func (s *Session) notify() {
	for _, fn := range s.listeners {
		fn()
	}
}

// ----------------------------- observers -----------------------------------

// Target returns the hidden answer. The view layer should only surface it
// once the game is over.
func (s *Session) Target() string { return s.target }

// Guesses returns the scored attempts so far, oldest first.
func (s *Session) Guesses() []Guess {
	out := make([]Guess, len(s.guesses))
	copy(out, s.guesses)
	return out
}

// Input returns the current input buffer.
func (s *Session) Input() string { return s.input }

// Over reports whether the game reached a terminal state.
func (s *Session) Over() bool { return s.over }

// Won reports the outcome; meaningful only once Over is true.
func (s *Session) Won() bool { return s.won }

// ErrorMessage returns the last user-visible rejection, empty when none.
func (s *Session) ErrorMessage() string { return s.errMsg }

// AttemptsLeft returns how many guesses remain.
func (s *Session) AttemptsLeft() int { return MaxGuesses - len(s.guesses) }

// StartedAt returns when the current game began.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// State reports a coarse string representation: "playing", "won" or "lost".
func (s *Session) State() string {
	if s.over {
		if s.won {
			return "won"
		}
		return "lost"
	}
	return "playing"
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
