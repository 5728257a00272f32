package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Answer is what a learner submits for one question. The wire form is either
// a bare letter ("B") or an array of letters (["A","C"]); the two are NOT
// interchangeable when grading, so the shape is preserved, not collapsed.
type Answer struct {
	Letters []string
	Set     bool
}

func SingleAnswer(letter string) Answer {
	return Answer{Letters: []string{normalizeLetter(letter)}}
}

func MultiAnswer(letters ...string) Answer {
	out := make([]string, 0, len(letters))
	for _, l := range letters {
		out = append(out, normalizeLetter(l))
	}
	return Answer{Letters: out, Set: true}
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Letters = []string{normalizeLetter(s)}
		a.Set = false
		return nil
	}
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		a.Letters = make([]string, 0, len(arr))
		for _, l := range arr {
			a.Letters = append(a.Letters, normalizeLetter(l))
		}
		a.Set = true
		return nil
	}
	return fmt.Errorf("answer must be a letter or an array of letters")
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Set {
		return json.Marshal(a.Letters)
	}
	if len(a.Letters) == 1 {
		return json.Marshal(a.Letters[0])
	}
	return json.Marshal(a.Letters)
}

// Validate checks the submitted shape: at least one letter, every letter in
// A-D, no duplicates, and a non-set answer holding exactly one letter.
func (a Answer) Validate() error {
	if len(a.Letters) == 0 {
		return fmt.Errorf("answer has no letters")
	}
	if !a.Set && len(a.Letters) != 1 {
		return fmt.Errorf("single answer must be exactly one letter")
	}
	seen := map[string]bool{}
	for _, l := range a.Letters {
		if !ValidOptionLetter(l) {
			return fmt.Errorf("unknown answer letter %q", l)
		}
		if seen[l] {
			return fmt.Errorf("duplicate answer letter %q", l)
		}
		seen[l] = true
	}
	return nil
}

// SortedLetters returns a normalized copy for set comparison and storage.
func (a Answer) SortedLetters() []string {
	out := append([]string(nil), a.Letters...)
	sort.Strings(out)
	return out
}

func ValidOptionLetter(l string) bool {
	switch l {
	case "A", "B", "C", "D":
		return true
	default:
		return false
	}
}

func normalizeLetter(l string) string {
	return strings.ToUpper(strings.TrimSpace(l))
}
