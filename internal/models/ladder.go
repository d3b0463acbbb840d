package models

import "time"

// QuestionCount is the number of questions (and ladder rungs) in a game.
const QuestionCount = 15

// TimeLimit is how long a player has to finish a game. Answers submitted
// after the limit time the game out instead of being scored.
const TimeLimit = 1 * time.Hour

// Prizes is the cumulative prize for clearing each level, in order.
var Prizes = [QuestionCount]int{
	100, 200, 300, 500, 1000,
	2000, 4000, 8000, 16000, 32000,
	64000, 125000, 250000, 500000, 1000000,
}

// FireproofLevels are the milestone levels whose prize is kept even after a
// later wrong answer.
var FireproofLevels = [...]int{4, 9, 14}

// PrizeForLevel returns the prize for correctly clearing the given level.
func PrizeForLevel(level int) (int, error) {
	if level < 0 || level >= QuestionCount {
		return 0, ErrOutOfRange
	}
	return Prizes[level], nil
}

// GuaranteedPrize returns the prize of the highest fireproof milestone below
// reachedLevel, or 0 if the player has not cleared any milestone yet.
func GuaranteedPrize(reachedLevel int) int {
	prize := 0
	for _, level := range FireproofLevels {
		if level < reachedLevel {
			prize = Prizes[level]
		}
	}
	return prize
}

// MaxPrize returns the prize for clearing the whole ladder.
func MaxPrize() int {
	return Prizes[QuestionCount-1]
}
