package service

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"moneyladder/internal/models"
	"moneyladder/internal/repository"
)

// QuestionService manages the question bank
type QuestionService struct {
	questionRepo *repository.QuestionRepository
}

// NewQuestionService creates a new question service
func NewQuestionService(questionRepo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo}
}

// seedQuestion is the on-disk shape of a bank question
type seedQuestion struct {
	Level     int       `json:"level"`
	Text      string    `json:"text"`
	Answers   [4]string `json:"answers"`
	CorrectIx int       `json:"correct_ix"`
}

// SeedQuestions loads the question bank from a JSON file. It only runs
// against an empty bank so restarts don't duplicate questions.
func (s *QuestionService) SeedQuestions(path string) error {
	count, err := s.questionRepo.CountQuestions()
	if err != nil {
		return fmt.Errorf("failed to count questions: %w", err)
	}
	if count > 0 {
		log.Printf("Question bank already seeded (%d questions)", count)
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read questions file: %w", err)
	}

	seeds, err := parseQuestionFile(data)
	if err != nil {
		return err
	}

	for _, seed := range seeds {
		q := &models.Question{
			Level:     seed.Level,
			Text:      seed.Text,
			Answers:   seed.Answers,
			CorrectIx: seed.CorrectIx,
		}
		if _, err := s.questionRepo.CreateQuestion(q); err != nil {
			return fmt.Errorf("failed to seed question %q: %w", seed.Text, err)
		}
	}

	log.Printf("Seeded %d questions from %s", len(seeds), path)
	return nil
}

// parseQuestionFile decodes and validates a question bank file
func parseQuestionFile(data []byte) ([]seedQuestion, error) {
	var seeds []seedQuestion
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("failed to parse questions file: %w", err)
	}

	for i, seed := range seeds {
		if seed.Level < 0 || seed.Level >= models.QuestionCount {
			return nil, fmt.Errorf("question %d: level %d out of range", i, seed.Level)
		}
		if seed.Text == "" {
			return nil, fmt.Errorf("question %d: empty text", i)
		}
		if seed.CorrectIx < 0 || seed.CorrectIx >= models.AnswersPerQuestion {
			return nil, fmt.Errorf("question %d: correct_ix %d out of range", i, seed.CorrectIx)
		}
		for j, answer := range seed.Answers {
			if answer == "" {
				return nil, fmt.Errorf("question %d: empty answer %d", i, j)
			}
		}
	}

	return seeds, nil
}

// CheckBankCoverage verifies every ladder level has at least one question.
// A thin level makes StartGame fail, so surface it at startup.
func (s *QuestionService) CheckBankCoverage() error {
	for level := 0; level < models.QuestionCount; level++ {
		questions, err := s.questionRepo.GetQuestionsByLevel(level)
		if err != nil {
			return fmt.Errorf("failed to check level %d: %w", level, err)
		}
		if len(questions) == 0 {
			return fmt.Errorf("question bank has no questions for level %d: %w", level, models.ErrInsufficientQuestions)
		}
	}
	return nil
}
