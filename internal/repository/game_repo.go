package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"moneyladder/internal/database"
	"moneyladder/internal/models"
)

// GameRepository handles database operations for games and their questions
type GameRepository struct {
	db *database.DB
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *database.DB) *GameRepository {
	return &GameRepository{db: db}
}

// CreateGame persists a freshly built game and its fifteen questions in one
// transaction. IDs are written back onto the game.
func (r *GameRepository) CreateGame(game *models.Game) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	gameID, err := tx.ExecReturningID(`
		INSERT INTO games (user_id, current_level, prize, is_failed, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, game.UserID, game.CurrentLevel, game.Prize, game.IsFailed, game.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}
	game.ID = gameID

	for _, gq := range game.Questions {
		gq.GameID = gameID

		helpJSON, err := json.Marshal(gq.Help)
		if err != nil {
			return fmt.Errorf("failed to marshal help hash: %w", err)
		}

		id, err := tx.ExecReturningID(`
			INSERT INTO game_questions (game_id, question_id, level, a, b, c, d, help_hash)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, gameID, gq.Question.ID, gq.Level, gq.Perm[0], gq.Perm[1], gq.Perm[2], gq.Perm[3], string(helpJSON))
		if err != nil {
			return fmt.Errorf("failed to insert game question: %w", err)
		}
		gq.ID = id
	}

	return tx.Commit()
}

// GetGameByID loads a game with all of its questions
func (r *GameRepository) GetGameByID(gameID int64) (*models.Game, error) {
	game, err := r.scanGame(r.db.QueryRow(`
		SELECT id, user_id, current_level, prize, is_failed,
		       fifty_fifty_used, audience_help_used, friend_call_used,
		       created_at, finished_at
		FROM games
		WHERE id = ?
	`, gameID))
	if err != nil || game == nil {
		return game, err
	}

	if err := r.loadGameQuestions(game); err != nil {
		return nil, err
	}
	return game, nil
}

// GetInProgressGameForUser returns the user's unfinished game, if any
func (r *GameRepository) GetInProgressGameForUser(userID int64) (*models.Game, error) {
	game, err := r.scanGame(r.db.QueryRow(`
		SELECT id, user_id, current_level, prize, is_failed,
		       fifty_fifty_used, audience_help_used, friend_call_used,
		       created_at, finished_at
		FROM games
		WHERE user_id = ? AND finished_at IS NULL
		ORDER BY created_at DESC
		LIMIT 1
	`, userID))
	if err != nil || game == nil {
		return game, err
	}

	if err := r.loadGameQuestions(game); err != nil {
		return nil, err
	}
	return game, nil
}

// ListGamesForUser returns a user's games newest first, without questions.
// Used by the profile page.
func (r *GameRepository) ListGamesForUser(userID int64) ([]models.Game, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, current_level, prize, is_failed,
		       fifty_fifty_used, audience_help_used, friend_call_used,
		       created_at, finished_at
		FROM games
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		game, err := scanGameFromRows(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *game)
	}

	return games, rows.Err()
}

// ListOverdueGames returns unfinished games created before the cutoff,
// without questions. Used by the timeout sweep.
func (r *GameRepository) ListOverdueGames(cutoff time.Time) ([]*models.Game, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, current_level, prize, is_failed,
		       fifty_fifty_used, audience_help_used, friend_call_used,
		       created_at, finished_at
		FROM games
		WHERE finished_at IS NULL AND created_at < ?
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue games: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		game, err := scanGameFromRows(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}

	return games, rows.Err()
}

// SaveProgress persists a still-running game's mutable fields and the help
// hash of every question that has hints on it.
func (r *GameRepository) SaveProgress(game *models.Game) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE games
		SET current_level = ?, fifty_fifty_used = ?, audience_help_used = ?, friend_call_used = ?
		WHERE id = ? AND finished_at IS NULL
	`, game.CurrentLevel, game.FiftyFiftyUsed, game.AudienceHelpUsed, game.FriendCallUsed, game.ID)
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	for _, gq := range game.Questions {
		if gq.Help.FiftyFifty == nil && gq.Help.AudienceHelp == nil && gq.Help.FriendCall == "" {
			continue
		}
		if err := updateHelpHash(tx, gq); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FinishGame settles a terminal game: it seals the row and credits the
// owner's balance in one transaction. The finished_at guard makes the
// settlement idempotent; the credit happens exactly once no matter how many
// times this is called.
func (r *GameRepository) FinishGame(game *models.Game) (credited bool, err error) {
	if game.FinishedAt == nil {
		return false, fmt.Errorf("game %d is not finished", game.ID)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE games
		SET current_level = ?, prize = ?, is_failed = ?, finished_at = ?,
		    fifty_fifty_used = ?, audience_help_used = ?, friend_call_used = ?
		WHERE id = ? AND finished_at IS NULL
	`, game.CurrentLevel, game.Prize, game.IsFailed, *game.FinishedAt,
		game.FiftyFiftyUsed, game.AudienceHelpUsed, game.FriendCallUsed, game.ID)
	if err != nil {
		return false, fmt.Errorf("failed to finish game: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check finish result: %w", err)
	}
	if affected == 0 {
		// Already settled by an earlier call; never credit twice.
		return false, tx.Commit()
	}

	if game.Prize > 0 {
		_, err = tx.Exec(`
			UPDATE users SET balance = balance + ?, updated_at = ? WHERE id = ?
		`, game.Prize, time.Now(), game.UserID)
		if err != nil {
			return false, fmt.Errorf("failed to credit balance: %w", err)
		}
	}

	return true, tx.Commit()
}

// UpdateHelpHash persists one question's help hash outside a settlement
func (r *GameRepository) UpdateHelpHash(gq *models.GameQuestion) error {
	return updateHelpHash(r.db, gq)
}

func updateHelpHash(runner database.DBTX, gq *models.GameQuestion) error {
	helpJSON, err := json.Marshal(gq.Help)
	if err != nil {
		return fmt.Errorf("failed to marshal help hash: %w", err)
	}
	if _, err := runner.Exec("UPDATE game_questions SET help_hash = ? WHERE id = ?", string(helpJSON), gq.ID); err != nil {
		return fmt.Errorf("failed to update help hash: %w", err)
	}
	return nil
}

func (r *GameRepository) scanGame(row *sql.Row) (*models.Game, error) {
	game := &models.Game{}
	var finishedAt sql.NullTime

	err := row.Scan(
		&game.ID,
		&game.UserID,
		&game.CurrentLevel,
		&game.Prize,
		&game.IsFailed,
		&game.FiftyFiftyUsed,
		&game.AudienceHelpUsed,
		&game.FriendCallUsed,
		&game.CreatedAt,
		&finishedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if finishedAt.Valid {
		game.FinishedAt = &finishedAt.Time
	}
	return game, nil
}

func scanGameFromRows(rows *sql.Rows) (*models.Game, error) {
	game := &models.Game{}
	var finishedAt sql.NullTime

	err := rows.Scan(
		&game.ID,
		&game.UserID,
		&game.CurrentLevel,
		&game.Prize,
		&game.IsFailed,
		&game.FiftyFiftyUsed,
		&game.AudienceHelpUsed,
		&game.FriendCallUsed,
		&game.CreatedAt,
		&finishedAt,
	)
	if err != nil {
		return nil, err
	}

	if finishedAt.Valid {
		game.FinishedAt = &finishedAt.Time
	}
	return game, nil
}

// loadGameQuestions attaches a game's questions, joined with their bank
// questions, ordered by level.
func (r *GameRepository) loadGameQuestions(game *models.Game) error {
	rows, err := r.db.Query(`
		SELECT gq.id, gq.game_id, gq.level, gq.a, gq.b, gq.c, gq.d, gq.help_hash, gq.created_at,
		       q.id, q.level, q.text, q.answer1, q.answer2, q.answer3, q.answer4, q.correct_ix, q.created_at
		FROM game_questions gq
		JOIN questions q ON q.id = gq.question_id
		WHERE gq.game_id = ?
		ORDER BY gq.level ASC
	`, game.ID)
	if err != nil {
		return fmt.Errorf("failed to load game questions: %w", err)
	}
	defer rows.Close()

	game.Questions = nil
	for rows.Next() {
		gq := &models.GameQuestion{Question: &models.Question{}}
		var helpJSON string

		err := rows.Scan(
			&gq.ID,
			&gq.GameID,
			&gq.Level,
			&gq.Perm[0],
			&gq.Perm[1],
			&gq.Perm[2],
			&gq.Perm[3],
			&helpJSON,
			&gq.CreatedAt,
			&gq.Question.ID,
			&gq.Question.Level,
			&gq.Question.Text,
			&gq.Question.Answers[0],
			&gq.Question.Answers[1],
			&gq.Question.Answers[2],
			&gq.Question.Answers[3],
			&gq.Question.CorrectIx,
			&gq.Question.CreatedAt,
		)
		if err != nil {
			return err
		}

		if helpJSON != "" {
			if err := json.Unmarshal([]byte(helpJSON), &gq.Help); err != nil {
				return fmt.Errorf("failed to parse help hash: %w", err)
			}
		}

		game.Questions = append(game.Questions, gq)
	}

	return rows.Err()
}
