package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"moneyladder/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version    string               `json:"version"`
	ExportedAt time.Time            `json:"exported_at"`
	Users      []UserBackup         `json:"users"`
	Questions  []QuestionBackup     `json:"questions"`
	Games      []GameBackup         `json:"games"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"password_hash"`
	Name          string    `json:"name"`
	OAuthProvider string    `json:"oauth_provider"`
	OAuthSubject  string    `json:"oauth_subject"`
	Balance       int       `json:"balance"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// QuestionBackup represents a bank question for backup
type QuestionBackup struct {
	ID        int64     `json:"id"`
	Level     int       `json:"level"`
	Text      string    `json:"text"`
	Answers   [4]string `json:"answers"`
	CorrectIx int       `json:"correct_ix"`
	CreatedAt time.Time `json:"created_at"`
}

// GameBackup represents a game with its questions for backup
type GameBackup struct {
	ID               int64                `json:"id"`
	UserID           int64                `json:"user_id"`
	CurrentLevel     int                  `json:"current_level"`
	Prize            int                  `json:"prize"`
	IsFailed         bool                 `json:"is_failed"`
	FiftyFiftyUsed   bool                 `json:"fifty_fifty_used"`
	AudienceHelpUsed bool                 `json:"audience_help_used"`
	FriendCallUsed   bool                 `json:"friend_call_used"`
	CreatedAt        time.Time            `json:"created_at"`
	FinishedAt       *time.Time           `json:"finished_at"`
	Questions        []GameQuestionBackup `json:"questions"`
}

// GameQuestionBackup represents a single game question for backup
type GameQuestionBackup struct {
	ID         int64     `json:"id"`
	QuestionID int64     `json:"question_id"`
	Level      int       `json:"level"`
	Perm       [4]int    `json:"perm"`
	HelpHash   string    `json:"help_hash"`
	CreatedAt  time.Time `json:"created_at"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	if err := s.exportUsers(backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportQuestions(backup); err != nil {
		return fmt.Errorf("failed to export questions: %w", err)
	}
	if err := s.exportGames(backup); err != nil {
		return fmt.Errorf("failed to export games: %w", err)
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}

	log.Printf("Export complete: %d users, %d questions, %d games",
		len(backup.Users), len(backup.Questions), len(backup.Games))
	return nil
}

// Import restores a backup file into the database. Records keep their IDs,
// so importing into a non-empty database will collide.
func (s *BackupService) Import(inputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return fmt.Errorf("failed to parse backup file: %w", err)
	}

	log.Printf("Importing backup from %s (exported %s)", inputPath, backup.ExportedAt.Format(time.RFC3339))

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := importUsers(tx, backup.Users); err != nil {
		return err
	}
	if err := importQuestions(tx, backup.Questions); err != nil {
		return err
	}
	if err := importGames(tx, backup.Games); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	log.Printf("Import complete: %d users, %d questions, %d games",
		len(backup.Users), len(backup.Questions), len(backup.Games))
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT id, email, password_hash, name,
		       COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''),
		       balance, created_at, updated_at
		FROM users ORDER BY id
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name,
			&u.OAuthProvider, &u.OAuthSubject, &u.Balance, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportQuestions(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT id, level, text, answer1, answer2, answer3, answer4, correct_ix, created_at
		FROM questions ORDER BY id
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var q QuestionBackup
		if err := rows.Scan(&q.ID, &q.Level, &q.Text,
			&q.Answers[0], &q.Answers[1], &q.Answers[2], &q.Answers[3],
			&q.CorrectIx, &q.CreatedAt); err != nil {
			return err
		}
		backup.Questions = append(backup.Questions, q)
	}
	return rows.Err()
}

func (s *BackupService) exportGames(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT id, user_id, current_level, prize, is_failed,
		       fifty_fifty_used, audience_help_used, friend_call_used,
		       created_at, finished_at
		FROM games ORDER BY id
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	var games []GameBackup
	for rows.Next() {
		var g GameBackup
		var finishedAt sql.NullTime
		if err := rows.Scan(&g.ID, &g.UserID, &g.CurrentLevel, &g.Prize, &g.IsFailed,
			&g.FiftyFiftyUsed, &g.AudienceHelpUsed, &g.FriendCallUsed,
			&g.CreatedAt, &finishedAt); err != nil {
			return err
		}
		if finishedAt.Valid {
			g.FinishedAt = &finishedAt.Time
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range games {
		if err := s.exportGameQuestions(&games[i]); err != nil {
			return err
		}
	}

	backup.Games = games
	return nil
}

func (s *BackupService) exportGameQuestions(game *GameBackup) error {
	rows, err := s.db.Query(`
		SELECT id, question_id, level, a, b, c, d, help_hash, created_at
		FROM game_questions WHERE game_id = ? ORDER BY level
	`, game.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var gq GameQuestionBackup
		if err := rows.Scan(&gq.ID, &gq.QuestionID, &gq.Level,
			&gq.Perm[0], &gq.Perm[1], &gq.Perm[2], &gq.Perm[3],
			&gq.HelpHash, &gq.CreatedAt); err != nil {
			return err
		}
		game.Questions = append(game.Questions, gq)
	}
	return rows.Err()
}

func importUsers(tx *database.Tx, users []UserBackup) error {
	for _, u := range users {
		_, err := tx.Exec(`
			INSERT INTO users (id, email, password_hash, name, oauth_provider, oauth_subject, balance, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, u.ID, u.Email, u.PasswordHash, u.Name,
			nullIfEmpty(u.OAuthProvider), nullIfEmpty(u.OAuthSubject),
			u.Balance, u.CreatedAt, u.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
	}
	return nil
}

func importQuestions(tx *database.Tx, questions []QuestionBackup) error {
	for _, q := range questions {
		_, err := tx.Exec(`
			INSERT INTO questions (id, level, text, answer1, answer2, answer3, answer4, correct_ix, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, q.ID, q.Level, q.Text, q.Answers[0], q.Answers[1], q.Answers[2], q.Answers[3], q.CorrectIx, q.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import question %d: %w", q.ID, err)
		}
	}
	return nil
}

func importGames(tx *database.Tx, games []GameBackup) error {
	for _, g := range games {
		var finishedAt interface{}
		if g.FinishedAt != nil {
			finishedAt = *g.FinishedAt
		}
		_, err := tx.Exec(`
			INSERT INTO games (id, user_id, current_level, prize, is_failed,
				fifty_fifty_used, audience_help_used, friend_call_used, created_at, finished_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, g.ID, g.UserID, g.CurrentLevel, g.Prize, g.IsFailed,
			g.FiftyFiftyUsed, g.AudienceHelpUsed, g.FriendCallUsed, g.CreatedAt, finishedAt)
		if err != nil {
			return fmt.Errorf("failed to import game %d: %w", g.ID, err)
		}

		for _, gq := range g.Questions {
			_, err := tx.Exec(`
				INSERT INTO game_questions (id, game_id, question_id, level, a, b, c, d, help_hash, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, gq.ID, g.ID, gq.QuestionID, gq.Level,
				gq.Perm[0], gq.Perm[1], gq.Perm[2], gq.Perm[3], gq.HelpHash, gq.CreatedAt)
			if err != nil {
				return fmt.Errorf("failed to import game question %d: %w", gq.ID, err)
			}
		}
	}
	return nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
