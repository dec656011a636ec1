// internal/game/types.go
//
// Core type definitions for the guessing engine.
// Defines:
//   - Status: per-letter result of a guess (correct/present/absent).
//   - LetterResult: one scored letter.
//   - Guess: a complete scored attempt (five LetterResults).

package game

import "strings"

// Board dimensions. Every game is six attempts at a five-letter word.
const (
	MaxGuesses = 6
	WordLength = 5
)

// Status represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "correct": letter matches the target at this position.
//   - "present": letter exists in the target but at a different position.
//   - "absent":  letter does not occur in the target, or all of its
//     occurrences are already consumed by higher-priority matches.
type Status string

const (
	StatusCorrect Status = "correct"
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

// LetterResult pairs a guessed letter with its evaluation.
type LetterResult struct {
	Letter string `json:"letter"`
	Status Status `json:"status"`
}

// Guess is one complete scored attempt: exactly WordLength LetterResults,
// one per position, immutable once created.
type Guess []LetterResult

// Word reassembles the guessed word from its letters.
func (g Guess) Word() string {
	var b strings.Builder
	for _, lr := range g {
		b.WriteString(lr.Letter)
	}
	return b.String()
}

// Correct reports whether the guess matched the target exactly.
func (g Guess) Correct() bool {
	if len(g) != WordLength {
		return false
	}
	for _, lr := range g {
		if lr.Status != StatusCorrect {
			return false
		}
	}
	return true
}
