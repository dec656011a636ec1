package game

import (
	"reflect"
	"strings"
	"testing"
)

func statuses(g Guess) []Status {
	out := make([]Status, len(g))
	for i, lr := range g {
		out[i] = lr.Status
	}
	return out
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		target string
		guess  string
		want   []Status
	}{
		{
			name:   "exact match all correct",
			target: "apple",
			guess:  "apple",
			want:   []Status{StatusCorrect, StatusCorrect, StatusCorrect, StatusCorrect, StatusCorrect},
		},
		{
			name:   "no shared letters all absent",
			target: "apple",
			guess:  "tints",
			want:   []Status{StatusAbsent, StatusAbsent, StatusAbsent, StatusAbsent, StatusAbsent},
		},
		{
			name:   "repeated guess letters capped by target multiplicity",
			target: "apple",
			guess:  "ppeel",
			want:   []Status{StatusPresent, StatusCorrect, StatusPresent, StatusAbsent, StatusPresent},
		},
		{
			name:   "letter twice in guess once in target",
			target: "house",
			guess:  "hhhhh",
			want:   []Status{StatusCorrect, StatusAbsent, StatusAbsent, StatusAbsent, StatusAbsent},
		},
		{
			name:   "exact match consumed before present",
			target: "abbey",
			guess:  "babes",
			want:   []Status{StatusPresent, StatusPresent, StatusCorrect, StatusCorrect, StatusAbsent},
		},
		{
			name:   "present letters in wrong positions",
			target: "crane",
			guess:  "nacre",
			want:   []Status{StatusPresent, StatusPresent, StatusPresent, StatusPresent, StatusCorrect},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.target, tt.guess)
			if len(got) != WordLength {
				t.Fatalf("Evaluate returned %d results, want %d", len(got), WordLength)
			}
			if !reflect.DeepEqual(statuses(got), tt.want) {
				t.Errorf("Evaluate(%q, %q) = %v, want %v", tt.target, tt.guess, statuses(got), tt.want)
			}
			if got.Word() != tt.guess {
				t.Errorf("result letters spell %q, want %q", got.Word(), tt.guess)
			}
		})
	}
}

func TestEvaluateIsPure(t *testing.T) {
	first := Evaluate("apple", "ppeel")
	second := Evaluate("apple", "ppeel")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated evaluation differed: %v vs %v", first, second)
	}
}

// Correct+present marks for any letter must never exceed that letter's count
// in the target.
func TestEvaluateNeverOvercounts(t *testing.T) {
	pairs := [][2]string{
		{"apple", "ppeel"},
		{"apple", "ppppp"},
		{"abbey", "babes"},
		{"house", "hhhhh"},
		{"eerie", "eeeee"},
		{"crane", "nacre"},
	}
	for _, p := range pairs {
		target, guess := p[0], p[1]
		res := Evaluate(target, guess)
		for c := byte('a'); c <= 'z'; c++ {
			marked := 0
			for i, lr := range res {
				if guess[i] == c && lr.Status != StatusAbsent {
					marked++
				}
			}
			if available := strings.Count(target, string(c)); marked > available {
				t.Errorf("Evaluate(%q, %q): %d non-absent %q marks, target only has %d",
					target, guess, marked, string(c), available)
			}
		}
	}
}

func TestGuessCorrect(t *testing.T) {
	if !Evaluate("apple", "apple").Correct() {
		t.Error("exact match should report Correct")
	}
	if Evaluate("apple", "ppeel").Correct() {
		t.Error("partial match should not report Correct")
	}
}
