package models

import (
	"math/rand"
	"time"
)

// GameStatus is the derived lifecycle state of a game. It is computed from
// the stored fields on demand and never persisted, so it cannot drift from
// the facts it summarizes.
type GameStatus string

const (
	StatusInProgress GameStatus = "in_progress"
	StatusWon        GameStatus = "won"
	StatusFail       GameStatus = "fail"
	StatusTimeout    GameStatus = "timeout"
	StatusMoney      GameStatus = "money"
)

// Game is one play-through of the fifteen-question ladder. All mutation goes
// through its methods; once FinishedAt is set every mutating call returns
// ErrInvalidState.
type Game struct {
	ID           int64
	UserID       int64
	Questions    []*GameQuestion
	CurrentLevel int
	Prize        int
	IsFailed     bool

	FiftyFiftyUsed   bool
	AudienceHelpUsed bool
	FriendCallUsed   bool

	CreatedAt  time.Time
	FinishedAt *time.Time
}

// NewGame builds a game for a user by sampling one question per level from
// the per-level pools. pools[i] holds the bank's questions at level i; an
// empty pool means the bank cannot supply a full ladder.
func NewGame(userID int64, pools [][]*Question, rng *rand.Rand, now time.Time) (*Game, error) {
	if len(pools) < QuestionCount {
		return nil, ErrInsufficientQuestions
	}

	game := &Game{
		UserID:    userID,
		Questions: make([]*GameQuestion, 0, QuestionCount),
		CreatedAt: now,
	}

	for level := 0; level < QuestionCount; level++ {
		pool := pools[level]
		if len(pool) == 0 {
			return nil, ErrInsufficientQuestions
		}
		question := pool[rng.Intn(len(pool))]
		game.Questions = append(game.Questions, NewGameQuestion(question, level, rng))
	}

	return game, nil
}

// Status derives the game's state from its stored fields.
func (g *Game) Status() GameStatus {
	switch {
	case g.FinishedAt == nil:
		return StatusInProgress
	case g.IsFailed && g.FinishedAt.Sub(g.CreatedAt) > TimeLimit:
		return StatusTimeout
	case g.IsFailed:
		return StatusFail
	case g.CurrentLevel > QuestionCount-1:
		return StatusWon
	default:
		return StatusMoney
	}
}

// Finished reports whether the game has reached a terminal state.
func (g *Game) Finished() bool {
	return g.FinishedAt != nil
}

// TimeLimitExceeded reports whether the game has run past its time limit.
func (g *Game) TimeLimitExceeded(now time.Time) bool {
	return now.Sub(g.CreatedAt) > TimeLimit
}

// CurrentGameQuestion returns the question the player is facing.
func (g *Game) CurrentGameQuestion() (*GameQuestion, error) {
	if g.CurrentLevel < 0 || g.CurrentLevel >= len(g.Questions) {
		return nil, ErrOutOfRange
	}
	return g.Questions[g.CurrentLevel], nil
}

// PreviousGameQuestion returns the last question the player cleared.
func (g *Game) PreviousGameQuestion() (*GameQuestion, error) {
	prev := g.CurrentLevel - 1
	if prev < 0 || prev >= len(g.Questions) {
		return nil, ErrOutOfRange
	}
	return g.Questions[prev], nil
}

// AnswerCurrentQuestion scores an answer to the current question. The time
// limit is checked first: an overdue attempt is void and times the game out
// regardless of the submitted key. A wrong answer (any key that is not the
// correct one, including garbage) fails the game and settles the guaranteed
// prize. Returns whether the answer was scored as correct.
func (g *Game) AnswerCurrentQuestion(key string, now time.Time) (bool, error) {
	if g.Finished() {
		return false, ErrInvalidState
	}

	if g.TimeLimitExceeded(now) {
		g.timeOut(now)
		return false, nil
	}

	question, err := g.CurrentGameQuestion()
	if err != nil {
		return false, err
	}

	if !question.AnswerCorrect(key) {
		g.finish(GuaranteedPrize(g.CurrentLevel), true, now)
		return false, nil
	}

	if g.CurrentLevel == QuestionCount-1 {
		g.CurrentLevel++
		g.finish(MaxPrize(), false, now)
		return true, nil
	}

	g.CurrentLevel++
	return true, nil
}

// TakeMoney cashes the game out at the prize for the highest cleared level.
// Cashing out before clearing any level settles zero.
func (g *Game) TakeMoney(now time.Time) error {
	if g.Finished() {
		return ErrInvalidState
	}

	if g.TimeLimitExceeded(now) {
		g.timeOut(now)
		return nil
	}

	prize := 0
	if g.CurrentLevel > 0 {
		prize = Prizes[g.CurrentLevel-1]
	}
	g.finish(prize, false, now)
	return nil
}

// TimeOut force-finishes an overdue game with the guaranteed prize for the
// level reached.
func (g *Game) TimeOut(now time.Time) error {
	if g.Finished() {
		return ErrInvalidState
	}
	g.timeOut(now)
	return nil
}

// UseHint applies a hint to the current question and records it on the game.
// Each kind may be used once per game.
func (g *Game) UseHint(kind HintKind, rng *rand.Rand, now time.Time) error {
	if g.Finished() {
		return ErrInvalidState
	}
	if g.HintUsed(kind) {
		return ErrHintAlreadyUsed
	}

	question, err := g.CurrentGameQuestion()
	if err != nil {
		return err
	}
	if err := question.ApplyHint(kind, rng); err != nil {
		return err
	}

	g.setHintUsed(kind)
	return nil
}

// HintUsed reports whether a hint kind has been spent in this game.
func (g *Game) HintUsed(kind HintKind) bool {
	switch kind {
	case HintFiftyFifty:
		return g.FiftyFiftyUsed
	case HintAudienceHelp:
		return g.AudienceHelpUsed
	case HintFriendCall:
		return g.FriendCallUsed
	default:
		return false
	}
}

func (g *Game) setHintUsed(kind HintKind) {
	switch kind {
	case HintFiftyFifty:
		g.FiftyFiftyUsed = true
	case HintAudienceHelp:
		g.AudienceHelpUsed = true
	case HintFriendCall:
		g.FriendCallUsed = true
	}
}

func (g *Game) timeOut(now time.Time) {
	g.finish(GuaranteedPrize(g.CurrentLevel), true, now)
}

// finish settles the game: fixes the prize, marks failure, and seals the
// game against further mutation. Crediting the owner's balance is the
// caller's side of the settlement.
func (g *Game) finish(prize int, failed bool, now time.Time) {
	finishedAt := now
	g.Prize = prize
	g.IsFailed = failed
	g.FinishedAt = &finishedAt
}
