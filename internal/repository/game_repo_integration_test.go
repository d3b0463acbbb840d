package repository

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"moneyladder/internal/config"
	"moneyladder/internal/database"
	"moneyladder/internal/models"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	cfg := &config.Config{
		DatabaseType: "sqlite",
		DatabasePath: filepath.Join(t.TempDir(), "test.db"),
	}

	db, err := database.Initialize(cfg)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

// seedGame builds a game backed by one bank question per level
func seedGame(t *testing.T, db *database.DB, userID int64) *models.Game {
	t.Helper()

	questionRepo := NewQuestionRepository(db)
	pools := make([][]*models.Question, models.QuestionCount)

	for level := 0; level < models.QuestionCount; level++ {
		q := &models.Question{
			Level:     level,
			Text:      fmt.Sprintf("Question for level %d", level),
			Answers:   [models.AnswersPerQuestion]string{"right", "wrong", "worse", "worst"},
			CorrectIx: 0,
		}
		id, err := questionRepo.CreateQuestion(q)
		if err != nil {
			t.Fatalf("Failed to create question: %v", err)
		}
		q.ID = id
		pools[level] = []*models.Question{q}
	}

	game, err := models.NewGame(userID, pools, rand.New(rand.NewSource(42)), time.Now())
	if err != nil {
		t.Fatalf("Failed to build game: %v", err)
	}
	return game
}

func TestFinishGameCreditsBalanceOnce(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := setupTestDB(t)
	userRepo := NewUserRepository(db)
	gameRepo := NewGameRepository(db)

	user, err := userRepo.CreateUser("player@example.com", "hash", "Player")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	game := seedGame(t, db, user.ID)
	if err := gameRepo.CreateGame(game); err != nil {
		t.Fatalf("Failed to create game: %v", err)
	}

	// Clear two levels, then walk away with the second prize.
	now := time.Now()
	for i := 0; i < 2; i++ {
		gq, err := game.CurrentGameQuestion()
		if err != nil {
			t.Fatalf("Failed to get current question: %v", err)
		}
		correct, err := game.AnswerCurrentQuestion(gq.CorrectAnswerKey(), now)
		if err != nil || !correct {
			t.Fatalf("Answer at level %d: correct=%v, err=%v", i, correct, err)
		}
	}
	if err := game.TakeMoney(now); err != nil {
		t.Fatalf("Failed to take money: %v", err)
	}

	wantPrize := models.Prizes[1]
	if game.Prize != wantPrize {
		t.Fatalf("Prize = %d, want %d", game.Prize, wantPrize)
	}

	credited, err := gameRepo.FinishGame(game)
	if err != nil {
		t.Fatalf("First FinishGame failed: %v", err)
	}
	if !credited {
		t.Fatal("expected first settlement to credit the balance")
	}

	// A retried settlement must not credit again.
	credited, err = gameRepo.FinishGame(game)
	if err != nil {
		t.Fatalf("Second FinishGame failed: %v", err)
	}
	if credited {
		t.Fatal("expected retried settlement to be a no-op")
	}

	got, err := userRepo.GetUserByID(user.ID)
	if err != nil {
		t.Fatalf("Failed to reload user: %v", err)
	}
	if got.Balance != wantPrize {
		t.Errorf("Balance = %d, want %d (credited exactly once)", got.Balance, wantPrize)
	}
}

func TestFinishGameZeroPrizeLeavesBalance(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := setupTestDB(t)
	userRepo := NewUserRepository(db)
	gameRepo := NewGameRepository(db)

	user, err := userRepo.CreateUser("cautious@example.com", "hash", "Cautious")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	game := seedGame(t, db, user.ID)
	if err := gameRepo.CreateGame(game); err != nil {
		t.Fatalf("Failed to create game: %v", err)
	}

	// Walking away before clearing any level settles zero.
	if err := game.TakeMoney(time.Now()); err != nil {
		t.Fatalf("Failed to take money: %v", err)
	}
	if game.Prize != 0 {
		t.Fatalf("Prize = %d, want 0", game.Prize)
	}

	credited, err := gameRepo.FinishGame(game)
	if err != nil {
		t.Fatalf("FinishGame failed: %v", err)
	}
	if !credited {
		t.Fatal("expected the settlement to seal the game")
	}

	got, err := userRepo.GetUserByID(user.ID)
	if err != nil {
		t.Fatalf("Failed to reload user: %v", err)
	}
	if got.Balance != 0 {
		t.Errorf("Balance = %d, want 0", got.Balance)
	}
}

func TestFinishGameRejectsRunningGame(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := setupTestDB(t)
	userRepo := NewUserRepository(db)
	gameRepo := NewGameRepository(db)

	user, err := userRepo.CreateUser("runner@example.com", "hash", "Runner")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	game := seedGame(t, db, user.ID)
	if err := gameRepo.CreateGame(game); err != nil {
		t.Fatalf("Failed to create game: %v", err)
	}

	if _, err := gameRepo.FinishGame(game); err == nil {
		t.Error("expected FinishGame to reject a game without a finish time")
	}
}
