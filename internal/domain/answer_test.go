package domain

import (
	"encoding/json"
	"testing"
)

func TestAnswerUnmarshalShapes(t *testing.T) {
	var single Answer
	if err := json.Unmarshal([]byte(`"b"`), &single); err != nil {
		t.Fatalf("unmarshal letter: %v", err)
	}
	if single.Set || len(single.Letters) != 1 || single.Letters[0] != "B" {
		t.Fatalf("unexpected single answer: %+v", single)
	}

	var multi Answer
	if err := json.Unmarshal([]byte(`["c","a"]`), &multi); err != nil {
		t.Fatalf("unmarshal array: %v", err)
	}
	if !multi.Set || len(multi.Letters) != 2 {
		t.Fatalf("unexpected multi answer: %+v", multi)
	}
	got := multi.SortedLetters()
	if got[0] != "A" || got[1] != "C" {
		t.Fatalf("SortedLetters=%v", got)
	}

	var bad Answer
	if err := json.Unmarshal([]byte(`42`), &bad); err == nil {
		t.Fatalf("expected error for numeric answer")
	}
}

func TestAnswerMarshalRoundTrip(t *testing.T) {
	raw, err := json.Marshal(SingleAnswer("B"))
	if err != nil {
		t.Fatalf("marshal single: %v", err)
	}
	if string(raw) != `"B"` {
		t.Fatalf("single wire form = %s", raw)
	}

	raw, err = json.Marshal(MultiAnswer("A", "C"))
	if err != nil {
		t.Fatalf("marshal multi: %v", err)
	}
	if string(raw) != `["A","C"]` {
		t.Fatalf("multi wire form = %s", raw)
	}
}

func TestAnswerValidate(t *testing.T) {
	cases := []struct {
		name    string
		answer  Answer
		wantErr bool
	}{
		{"single_ok", SingleAnswer("A"), false},
		{"multi_ok", MultiAnswer("A", "D"), false},
		{"empty", Answer{}, true},
		{"unknown_letter", SingleAnswer("E"), true},
		{"duplicate", MultiAnswer("A", "A"), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.answer.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
