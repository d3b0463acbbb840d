package models

import "time"

// AnswersPerQuestion is the number of answer options every question has.
const AnswersPerQuestion = 4

// Question is an authored trivia question in the question bank. Questions are
// immutable once seeded; games reference them, never change them.
type Question struct {
	ID        int64
	Level     int
	Text      string
	Answers   [AnswersPerQuestion]string
	CorrectIx int
	CreatedAt time.Time
}
