package models

import (
	"math/rand"
	"strings"
	"testing"
)

func newTestQuestion(level int) *Question {
	return &Question{
		ID:        int64(level + 1),
		Level:     level,
		Text:      "What is the answer?",
		Answers:   [AnswersPerQuestion]string{"first", "second", "third", "fourth"},
		CorrectIx: 0,
	}
}

func newTestGameQuestion(seed int64) *GameQuestion {
	rng := rand.New(rand.NewSource(seed))
	return NewGameQuestion(newTestQuestion(0), 0, rng)
}

func TestVariantsIsBijection(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		gq := newTestGameQuestion(seed)
		variants := gq.Variants()

		if len(variants) != AnswersPerQuestion {
			t.Fatalf("seed %d: got %d variants, want %d", seed, len(variants), AnswersPerQuestion)
		}

		seen := make(map[string]bool)
		for _, key := range AnswerKeys {
			text, ok := variants[key]
			if !ok {
				t.Fatalf("seed %d: missing variant for key %q", seed, key)
			}
			if seen[text] {
				t.Errorf("seed %d: answer %q appears twice", seed, text)
			}
			seen[text] = true
		}
	}
}

func TestAnswerCorrect(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		gq := newTestGameQuestion(seed)
		correct := gq.CorrectAnswerKey()

		if !gq.AnswerCorrect(correct) {
			t.Errorf("seed %d: AnswerCorrect(%q) = false for the correct key", seed, correct)
		}
		for _, key := range AnswerKeys {
			if key != correct && gq.AnswerCorrect(key) {
				t.Errorf("seed %d: AnswerCorrect(%q) = true for a wrong key", seed, key)
			}
		}
		if gq.AnswerCorrect("z") {
			t.Errorf("seed %d: AnswerCorrect accepted an unknown key", seed)
		}
	}
}

func TestCorrectAnswerKeyMatchesVariants(t *testing.T) {
	gq := newTestGameQuestion(7)
	correct := gq.CorrectAnswerKey()
	if got := gq.Variants()[correct]; got != "first" {
		t.Errorf("variant under correct key = %q, want %q", got, "first")
	}
}

func TestAddFiftyFifty(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		gq := newTestGameQuestion(seed)
		rng := rand.New(rand.NewSource(seed))

		if err := gq.AddFiftyFifty(rng); err != nil {
			t.Fatalf("seed %d: AddFiftyFifty() error: %v", seed, err)
		}

		kept := gq.Help.FiftyFifty
		if len(kept) != 2 {
			t.Fatalf("seed %d: fifty-fifty kept %d keys, want 2", seed, len(kept))
		}
		if kept[0] != gq.CorrectAnswerKey() && kept[1] != gq.CorrectAnswerKey() {
			t.Errorf("seed %d: fifty-fifty %v does not contain the correct key %q", seed, kept, gq.CorrectAnswerKey())
		}
		if kept[0] == kept[1] {
			t.Errorf("seed %d: fifty-fifty kept the same key twice", seed)
		}
	}
}

func TestAddFiftyFiftyTwiceFails(t *testing.T) {
	gq := newTestGameQuestion(1)
	rng := rand.New(rand.NewSource(1))

	if err := gq.AddFiftyFifty(rng); err != nil {
		t.Fatalf("first AddFiftyFifty() error: %v", err)
	}
	before := append([]string(nil), gq.Help.FiftyFifty...)

	if err := gq.AddFiftyFifty(rng); err != ErrHintAlreadyUsed {
		t.Errorf("second AddFiftyFifty() error = %v, want ErrHintAlreadyUsed", err)
	}
	if len(gq.Help.FiftyFifty) != len(before) || gq.Help.FiftyFifty[0] != before[0] || gq.Help.FiftyFifty[1] != before[1] {
		t.Errorf("help hash changed after rejected reuse: %v != %v", gq.Help.FiftyFifty, before)
	}
}

func TestAddAudienceHelp(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		gq := newTestGameQuestion(seed)
		rng := rand.New(rand.NewSource(seed))

		if err := gq.AddAudienceHelp(rng); err != nil {
			t.Fatalf("seed %d: AddAudienceHelp() error: %v", seed, err)
		}

		votes := gq.Help.AudienceHelp
		if len(votes) != AnswersPerQuestion {
			t.Fatalf("seed %d: got %d vote entries, want %d", seed, len(votes), AnswersPerQuestion)
		}

		total := 0
		correct := gq.CorrectAnswerKey()
		for _, key := range AnswerKeys {
			share, ok := votes[key]
			if !ok {
				t.Fatalf("seed %d: missing votes for key %q", seed, key)
			}
			if share < 0 {
				t.Errorf("seed %d: negative vote share for %q", seed, key)
			}
			total += share
			if key != correct && share >= votes[correct] {
				t.Errorf("seed %d: wrong key %q (%d votes) ties or beats correct key (%d votes)",
					seed, key, share, votes[correct])
			}
		}
		if total != 100 {
			t.Errorf("seed %d: votes sum to %d, want 100", seed, total)
		}
	}
}

func TestAddAudienceHelpTwiceFails(t *testing.T) {
	gq := newTestGameQuestion(2)
	rng := rand.New(rand.NewSource(2))

	if err := gq.AddAudienceHelp(rng); err != nil {
		t.Fatalf("first AddAudienceHelp() error: %v", err)
	}
	if err := gq.AddAudienceHelp(rng); err != ErrHintAlreadyUsed {
		t.Errorf("second AddAudienceHelp() error = %v, want ErrHintAlreadyUsed", err)
	}
}

func TestAddFriendCall(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		gq := newTestGameQuestion(seed)
		rng := rand.New(rand.NewSource(seed))

		if err := gq.AddFriendCall(rng); err != nil {
			t.Fatalf("seed %d: AddFriendCall() error: %v", seed, err)
		}

		text := gq.Help.FriendCall
		if text == "" {
			t.Fatalf("seed %d: friend call produced empty text", seed)
		}

		named := false
		for _, key := range AnswerKeys {
			if strings.HasSuffix(text, strings.ToUpper(key)) {
				named = true
			}
		}
		if !named {
			t.Errorf("seed %d: friend call %q does not name an answer key", seed, text)
		}
	}
}

func TestAddFriendCallTwiceFails(t *testing.T) {
	gq := newTestGameQuestion(3)
	rng := rand.New(rand.NewSource(3))

	if err := gq.AddFriendCall(rng); err != nil {
		t.Fatalf("first AddFriendCall() error: %v", err)
	}
	if err := gq.AddFriendCall(rng); err != ErrHintAlreadyUsed {
		t.Errorf("second AddFriendCall() error = %v, want ErrHintAlreadyUsed", err)
	}
}

func TestApplyHintUnknownKind(t *testing.T) {
	gq := newTestGameQuestion(4)
	rng := rand.New(rand.NewSource(4))

	if err := gq.ApplyHint(HintKind("telepathy"), rng); err == nil {
		t.Error("ApplyHint accepted an unknown hint kind")
	}
}

func TestHintsDoNotChangeVariants(t *testing.T) {
	gq := newTestGameQuestion(5)
	rng := rand.New(rand.NewSource(5))

	before := gq.Variants()
	correctBefore := gq.CorrectAnswerKey()

	if err := gq.AddFiftyFifty(rng); err != nil {
		t.Fatalf("AddFiftyFifty() error: %v", err)
	}
	if err := gq.AddAudienceHelp(rng); err != nil {
		t.Fatalf("AddAudienceHelp() error: %v", err)
	}
	if err := gq.AddFriendCall(rng); err != nil {
		t.Fatalf("AddFriendCall() error: %v", err)
	}

	after := gq.Variants()
	for key, text := range before {
		if after[key] != text {
			t.Errorf("variant %q changed from %q to %q after hints", key, text, after[key])
		}
	}
	if gq.CorrectAnswerKey() != correctBefore {
		t.Errorf("correct key changed from %q to %q after hints", correctBefore, gq.CorrectAnswerKey())
	}
}
