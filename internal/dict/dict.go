// internal/dict/dict.go
//
// Word list management for the game engine.
//
// A Dictionary is an explicit instance (no package globals): load one at
// startup and hand it to whatever needs membership tests or random words.
// Sources are newline-delimited text; each line is trimmed and lowercased and
// only 5-letter a-z entries are kept. Duplicates are harmless. An embedded
// default list keeps the server runnable with no files configured.

package dict

import (
	"bufio"
	"crypto/rand"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/samber/lo"
)

//go:embed words.txt
var embeddedWords string

const wordLength = 5

// ErrEmptyDictionary means a word list ended up with zero usable entries.
// Construction fails with it, so callers holding a *Dictionary never hit it.
var ErrEmptyDictionary = errors.New("dict: word list is empty")

// Dictionary holds the set of valid five-letter words.
type Dictionary struct {
	words []string
	set   map[string]struct{}
}

// Load parses a newline-delimited word list from r.
func Load(r io.Reader) (*Dictionary, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("dict: read word list: %w", err)
	}
	return fromLines(lines)
}

// LoadFile loads a word list from a file on disk.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dict: open word list: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Default builds a Dictionary from the embedded word list.
func Default() (*Dictionary, error) {
	return fromLines(strings.Split(embeddedWords, "\n"))
}

func fromLines(lines []string) (*Dictionary, error) {
	words := lo.FilterMap(lines, func(line string, _ int) (string, bool) {
		w := strings.TrimSpace(strings.ToLower(line))
		return w, len(w) == wordLength && isAlpha(w)
	})
	if len(words) == 0 {
		return nil, ErrEmptyDictionary
	}
	set := lo.SliceToMap(words, func(w string) (string, struct{}) {
		return w, struct{}{}
	})
	return &Dictionary{words: words, set: set}, nil
}

// IsValid reports whether word is in the dictionary, case-insensitively.
func (d *Dictionary) IsValid(word string) bool {
	_, ok := d.set[strings.ToLower(word)]
	return ok
}

// RandomWord returns a uniformly chosen entry using crypto/rand.
func (d *Dictionary) RandomWord() (string, error) {
	if len(d.words) == 0 {
		return "", ErrEmptyDictionary
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(d.words))))
	if err != nil {
		// rand.Reader failing is effectively unreachable; fall back
		// deterministically rather than erroring the game out.
		return d.words[0], nil
	}
	return d.words[n.Int64()], nil
}

// Len returns the number of loaded words.
func (d *Dictionary) Len() int { return len(d.words) }

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
