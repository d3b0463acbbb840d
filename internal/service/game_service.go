package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"moneyladder/internal/models"
	"moneyladder/internal/repository"
)

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrNotGameOwner   = errors.New("game belongs to another player")
	ErrGameInProgress = errors.New("a game is already in progress")
)

// GameService orchestrates game play: it builds games from the question
// bank, applies moves and persists the results.
type GameService struct {
	gameRepo     *repository.GameRepository
	questionRepo *repository.QuestionRepository
	userRepo     *repository.UserRepository
	emailService *EmailService

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGameService creates a new game service
func NewGameService(gameRepo *repository.GameRepository, questionRepo *repository.QuestionRepository, userRepo *repository.UserRepository, emailService *EmailService, rng *rand.Rand) *GameService {
	return &GameService{
		gameRepo:     gameRepo,
		questionRepo: questionRepo,
		userRepo:     userRepo,
		emailService: emailService,
		rng:          rng,
	}
}

// StartGame creates a new game for the user. If the user already has an
// unfinished game it is returned alongside ErrGameInProgress so the caller
// can resume it instead.
func (s *GameService) StartGame(userID int64) (*models.Game, error) {
	existing, err := s.gameRepo.GetInProgressGameForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check running game: %w", err)
	}
	if existing != nil {
		return existing, ErrGameInProgress
	}

	pools, err := s.loadQuestionPools()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	game, err := models.NewGame(userID, pools, s.rng, time.Now())
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to build game: %w", err)
	}

	if err := s.gameRepo.CreateGame(game); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	log.Printf("Game %d started for user %d", game.ID, userID)
	return game, nil
}

// GetGameForUser loads a game and verifies ownership
func (s *GameService) GetGameForUser(gameID, userID int64) (*models.Game, error) {
	game, err := s.gameRepo.GetGameByID(gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	if game.UserID != userID {
		return nil, ErrNotGameOwner
	}
	return game, nil
}

// Answer applies the user's answer to the game's current question and
// persists the outcome. It reports whether the answer was correct.
func (s *GameService) Answer(ctx context.Context, gameID, userID int64, key string) (bool, *models.Game, error) {
	game, err := s.GetGameForUser(gameID, userID)
	if err != nil {
		return false, nil, err
	}

	correct, err := game.AnswerCurrentQuestion(key, time.Now())
	if err != nil {
		return false, game, err
	}

	if err := s.persist(ctx, game); err != nil {
		return correct, game, err
	}

	return correct, game, nil
}

// TakeMoney ends the game voluntarily and settles the current prize
func (s *GameService) TakeMoney(ctx context.Context, gameID, userID int64) (*models.Game, error) {
	game, err := s.GetGameForUser(gameID, userID)
	if err != nil {
		return nil, err
	}

	if err := game.TakeMoney(time.Now()); err != nil {
		return game, err
	}

	if err := s.persist(ctx, game); err != nil {
		return game, err
	}

	return game, nil
}

// UseHint spends one of the game's hints on the current question
func (s *GameService) UseHint(ctx context.Context, gameID, userID int64, kind models.HintKind) (*models.Game, error) {
	game, err := s.GetGameForUser(gameID, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	err = game.UseHint(kind, s.rng, time.Now())
	s.mu.Unlock()
	if err != nil {
		return game, err
	}

	if err := s.persist(ctx, game); err != nil {
		return game, err
	}

	return game, nil
}

// TimeOutOverdueGames fails every unfinished game that has outlived the
// time limit and settles its guaranteed prize. Returns how many games were
// closed.
func (s *GameService) TimeOutOverdueGames(ctx context.Context) (int, error) {
	now := time.Now()
	games, err := s.gameRepo.ListOverdueGames(now.Add(-models.TimeLimit))
	if err != nil {
		return 0, err
	}

	closed := 0
	for _, game := range games {
		if err := game.TimeOut(now); err != nil {
			log.Printf("Error timing out game %d: %v", game.ID, err)
			continue
		}
		if err := s.persist(ctx, game); err != nil {
			log.Printf("Error settling timed out game %d: %v", game.ID, err)
			continue
		}
		closed++
	}

	return closed, nil
}

// GamesForUser returns the user's games newest first, without questions
func (s *GameService) GamesForUser(userID int64) ([]models.Game, error) {
	games, err := s.gameRepo.ListGamesForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return games, nil
}

// loadQuestionPools gathers one candidate pool per ladder level
func (s *GameService) loadQuestionPools() ([][]*models.Question, error) {
	pools := make([][]*models.Question, models.QuestionCount)
	for level := 0; level < models.QuestionCount; level++ {
		questions, err := s.questionRepo.GetQuestionsByLevel(level)
		if err != nil {
			return nil, fmt.Errorf("failed to load questions for level %d: %w", level, err)
		}
		pools[level] = questions
	}
	return pools, nil
}

// persist writes a game back to the database. A game that just turned
// terminal is settled, which credits the prize and triggers the result
// email.
func (s *GameService) persist(ctx context.Context, game *models.Game) error {
	if !game.Finished() {
		if err := s.gameRepo.SaveProgress(game); err != nil {
			return fmt.Errorf("failed to save game progress: %w", err)
		}
		return nil
	}

	credited, err := s.gameRepo.FinishGame(game)
	if err != nil {
		return fmt.Errorf("failed to settle game: %w", err)
	}
	if credited {
		log.Printf("Game %d settled: status=%s prize=%d", game.ID, game.Status(), game.Prize)
		s.sendResultEmail(ctx, game)
	}
	return nil
}

func (s *GameService) sendResultEmail(ctx context.Context, game *models.Game) {
	if s.emailService == nil || !s.emailService.IsEnabled() {
		return
	}

	user, err := s.userRepo.GetUserByID(game.UserID)
	if err != nil || user == nil {
		log.Printf("Warning: failed to load user %d for result email: %v", game.UserID, err)
		return
	}

	outcome := outcomeText(game.Status())
	if err := s.emailService.SendGameResultEmail(ctx, user.Email, user.Name, outcome, game.Prize); err != nil {
		log.Printf("Warning: failed to send result email to %s: %v", user.Email, err)
	}
}

func outcomeText(status models.GameStatus) string {
	switch status {
	case models.StatusWon:
		return "you won the top prize"
	case models.StatusMoney:
		return "you took the money"
	case models.StatusTimeout:
		return "time ran out"
	case models.StatusFail:
		return "wrong answer"
	default:
		return string(status)
	}
}
