package service

import "testing"

func TestParseQuestionFile(t *testing.T) {
	valid := []byte(`[
		{"level": 0, "text": "What color is the sky?", "answers": ["Blue", "Green", "Red", "Yellow"], "correct_ix": 0},
		{"level": 14, "text": "Hardest question?", "answers": ["A", "B", "C", "D"], "correct_ix": 3}
	]`)

	seeds, err := parseQuestionFile(valid)
	if err != nil {
		t.Fatalf("parseQuestionFile() error = %v", err)
	}
	if len(seeds) != 2 {
		t.Fatalf("parseQuestionFile() returned %d seeds, want 2", len(seeds))
	}
	if seeds[0].Text != "What color is the sky?" || seeds[1].CorrectIx != 3 {
		t.Errorf("parseQuestionFile() decoded unexpected values: %+v", seeds)
	}
}

func TestParseQuestionFileRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "not json",
			data: `level: 0`,
		},
		{
			name: "level too high",
			data: `[{"level": 15, "text": "q", "answers": ["a", "b", "c", "d"], "correct_ix": 0}]`,
		},
		{
			name: "negative level",
			data: `[{"level": -1, "text": "q", "answers": ["a", "b", "c", "d"], "correct_ix": 0}]`,
		},
		{
			name: "empty text",
			data: `[{"level": 0, "text": "", "answers": ["a", "b", "c", "d"], "correct_ix": 0}]`,
		},
		{
			name: "correct index out of range",
			data: `[{"level": 0, "text": "q", "answers": ["a", "b", "c", "d"], "correct_ix": 4}]`,
		},
		{
			name: "empty answer",
			data: `[{"level": 0, "text": "q", "answers": ["a", "", "c", "d"], "correct_ix": 0}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseQuestionFile([]byte(tt.data)); err == nil {
				t.Errorf("parseQuestionFile() accepted bad input")
			}
		})
	}
}
