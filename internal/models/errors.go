package models

import "errors"

var (
	// ErrInvalidState is returned when a mutating operation is attempted on a
	// game that has already finished.
	ErrInvalidState = errors.New("game is not in progress")

	// ErrHintAlreadyUsed is returned when a hint kind is applied twice.
	ErrHintAlreadyUsed = errors.New("hint already used")

	// ErrOutOfRange is returned for level indexes outside the ladder.
	ErrOutOfRange = errors.New("level out of range")

	// ErrInsufficientQuestions is returned when the question pool cannot
	// supply one question for every level.
	ErrInsufficientQuestions = errors.New("not enough questions to build a game")
)
