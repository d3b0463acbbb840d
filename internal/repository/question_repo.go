package repository

import (
	"fmt"

	"moneyladder/internal/database"
	"moneyladder/internal/models"
)

// QuestionRepository handles database operations for the question bank
type QuestionRepository struct {
	db *database.DB
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db *database.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// CreateQuestion inserts an authored question into the bank
func (r *QuestionRepository) CreateQuestion(q *models.Question) (int64, error) {
	query := `
		INSERT INTO questions (level, text, answer1, answer2, answer3, answer4, correct_ix)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		q.Level, q.Text, q.Answers[0], q.Answers[1], q.Answers[2], q.Answers[3], q.CorrectIx)
	if err != nil {
		return 0, fmt.Errorf("failed to create question: %w", err)
	}
	return id, nil
}

// GetQuestionsByLevel retrieves all bank questions at one difficulty level
func (r *QuestionRepository) GetQuestionsByLevel(level int) ([]*models.Question, error) {
	query := `
		SELECT id, level, text, answer1, answer2, answer3, answer4, correct_ix, created_at
		FROM questions
		WHERE level = ?
	`

	rows, err := r.db.Query(query, level)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions for level %d: %w", level, err)
	}
	defer rows.Close()

	var questions []*models.Question
	for rows.Next() {
		q := &models.Question{}
		err := rows.Scan(
			&q.ID,
			&q.Level,
			&q.Text,
			&q.Answers[0],
			&q.Answers[1],
			&q.Answers[2],
			&q.Answers[3],
			&q.CorrectIx,
			&q.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

// CountQuestions returns the total number of questions in the bank
func (r *QuestionRepository) CountQuestions() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM questions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

// ListQuestions returns the whole bank, cheapest levels first
func (r *QuestionRepository) ListQuestions() ([]*models.Question, error) {
	query := `
		SELECT id, level, text, answer1, answer2, answer3, answer4, correct_ix, created_at
		FROM questions
		ORDER BY level ASC, id ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []*models.Question
	for rows.Next() {
		q := &models.Question{}
		err := rows.Scan(
			&q.ID,
			&q.Level,
			&q.Text,
			&q.Answers[0],
			&q.Answers[1],
			&q.Answers[2],
			&q.Answers[3],
			&q.CorrectIx,
			&q.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}
