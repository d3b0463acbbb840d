package handlers

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"moneyladder/internal/models"
)

func newTestGame(t *testing.T) *models.Game {
	t.Helper()

	pools := make([][]*models.Question, models.QuestionCount)
	for level := 0; level < models.QuestionCount; level++ {
		pools[level] = []*models.Question{{
			ID:        int64(level + 1),
			Level:     level,
			Text:      fmt.Sprintf("question %d", level),
			Answers:   [4]string{"right", "wrong 1", "wrong 2", "wrong 3"},
			CorrectIx: 0,
		}}
	}

	game, err := models.NewGame(7, pools, rand.New(rand.NewSource(1)), time.Now())
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}
	return game
}

func TestBuildLadder(t *testing.T) {
	game := newTestGame(t)
	game.CurrentLevel = 5

	ladder := buildLadder(game)
	if len(ladder) != models.QuestionCount {
		t.Fatalf("buildLadder() returned %d rungs, want %d", len(ladder), models.QuestionCount)
	}

	// Top prize first, level 0 last
	if ladder[0].Level != 14 || ladder[len(ladder)-1].Level != 0 {
		t.Errorf("ladder order wrong: top=%d bottom=%d", ladder[0].Level, ladder[len(ladder)-1].Level)
	}
	if ladder[0].Prize != models.MaxPrize() {
		t.Errorf("top rung prize = %d, want %d", ladder[0].Prize, models.MaxPrize())
	}

	for _, rung := range ladder {
		wantCurrent := rung.Level == 5
		if rung.Current != wantCurrent {
			t.Errorf("rung %d: Current = %v, want %v", rung.Level, rung.Current, wantCurrent)
		}
		wantFireproof := rung.Level == 4 || rung.Level == 9 || rung.Level == 14
		if rung.Fireproof != wantFireproof {
			t.Errorf("rung %d: Fireproof = %v, want %v", rung.Level, rung.Fireproof, wantFireproof)
		}
	}
}

func TestBuildLadderFinishedGameHasNoCurrent(t *testing.T) {
	game := newTestGame(t)
	if err := game.TakeMoney(time.Now()); err != nil {
		t.Fatalf("TakeMoney() error = %v", err)
	}

	for _, rung := range buildLadder(game) {
		if rung.Current {
			t.Errorf("rung %d marked current on a finished game", rung.Level)
		}
	}
}

func TestBuildQuestionView(t *testing.T) {
	game := newTestGame(t)
	game.CurrentLevel = 3

	view, err := buildQuestionView(game)
	if err != nil {
		t.Fatalf("buildQuestionView() error = %v", err)
	}

	if view.Level != 3 {
		t.Errorf("Level = %d, want 3", view.Level)
	}
	if view.Prize != 500 {
		t.Errorf("Prize = %d, want 500", view.Prize)
	}
	if view.Text != "question 3" {
		t.Errorf("Text = %q, want %q", view.Text, "question 3")
	}
	if len(view.Variants) != models.AnswersPerQuestion {
		t.Errorf("Variants has %d entries, want %d", len(view.Variants), models.AnswersPerQuestion)
	}
	if len(view.Keys) != models.AnswersPerQuestion {
		t.Errorf("Keys has %d entries, want %d", len(view.Keys), models.AnswersPerQuestion)
	}
	if view.FiftyFifty || view.AudienceHelp || view.FriendCall {
		t.Error("fresh game reports spent hints")
	}
}

func TestBuildQuestionViewAfterWinFails(t *testing.T) {
	game := newTestGame(t)
	game.CurrentLevel = models.QuestionCount

	if _, err := buildQuestionView(game); err == nil {
		t.Error("buildQuestionView() succeeded past the last level")
	}
}

func TestGamePath(t *testing.T) {
	if got := gamePath(42); got != "/games/42" {
		t.Errorf("gamePath(42) = %q, want %q", got, "/games/42")
	}
}
