// internal/game/score.go
//
// Guess scoring. Evaluate implements the classic two-pass algorithm:
//
// Pass 1:
//   - Mark exact matches as correct.
//   - Count remaining (non-correct) target letters.
//
// Pass 2:
//   - For each unresolved guess letter, in index order: if there is remaining
//     count for that letter, mark present and decrement; otherwise absent.
//
// The decrementing counts are local to one call, so repeated letters can never
// earn more correct/present marks than the target holds. A letter appearing
// twice in the guess but once in the target yields exactly one
// correct-or-present and one absent.

package game

// Evaluate scores guess against target and returns one LetterResult per
// position. Both words are assumed to be WordLength lowercase a-z letters;
// the dictionary and session layers validate before calling.
func Evaluate(target, guess string) Guess {
	res := make(Guess, WordLength)

	// Letter frequency for the non-correct target positions (a-z).
	var counts [26]int

	for i := 0; i < WordLength; i++ {
		if guess[i] == target[i] {
			res[i] = LetterResult{Letter: string(guess[i]), Status: StatusCorrect}
		} else {
			counts[target[i]-'a']++
		}
	}

	for i := 0; i < WordLength; i++ {
		if res[i].Status == StatusCorrect {
			continue
		}
		j := int(guess[i] - 'a')
		if j >= 0 && j < 26 && counts[j] > 0 {
			res[i] = LetterResult{Letter: string(guess[i]), Status: StatusPresent}
			counts[j]--
		} else {
			res[i] = LetterResult{Letter: string(guess[i]), Status: StatusAbsent}
		}
	}
	return res
}
