package dict

import (
	"errors"
	"strings"
	"testing"
)

const sampleList = `
APPLE
  house
world
cat
toolong
gr8pe

Crane
`

func TestLoadNormalizesAndFilters(t *testing.T) {
	d, err := Load(strings.NewReader(sampleList))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Len() != 4 {
		t.Fatalf("Len = %d, want 4 (apple, house, world, crane)", d.Len())
	}

	for _, w := range []string{"apple", "APPLE", "Crane", "house", "world"} {
		if !d.IsValid(w) {
			t.Errorf("IsValid(%q) = false, want true", w)
		}
	}
	for _, w := range []string{"cat", "toolong", "gr8pe", "zzzzz", ""} {
		if d.IsValid(w) {
			t.Errorf("IsValid(%q) = true, want false", w)
		}
	}
}

func TestLoadEmptySource(t *testing.T) {
	if _, err := Load(strings.NewReader("cat\ntoolong\n")); !errors.Is(err, ErrEmptyDictionary) {
		t.Errorf("Load with no 5-letter words = %v, want ErrEmptyDictionary", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile("testdata/does-not-exist.txt"); err == nil {
		t.Error("LoadFile on a missing file should fail")
	}
}

func TestRandomWordIsMember(t *testing.T) {
	d, err := Load(strings.NewReader("apple\nhouse\nworld\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for i := 0; i < 50; i++ {
		w, err := d.RandomWord()
		if err != nil {
			t.Fatalf("RandomWord: %v", err)
		}
		if !d.IsValid(w) {
			t.Fatalf("RandomWord returned non-member %q", w)
		}
	}
}

func TestDefaultDictionary(t *testing.T) {
	d, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if d.Len() == 0 {
		t.Fatal("embedded dictionary is empty")
	}
	for _, w := range []string{"apple", "house", "world"} {
		if !d.IsValid(w) {
			t.Errorf("embedded dictionary missing %q", w)
		}
	}
}
