package models

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// HintKind identifies one of the three one-time hints.
type HintKind string

const (
	HintFiftyFifty   HintKind = "fifty_fifty"
	HintAudienceHelp HintKind = "audience_help"
	HintFriendCall   HintKind = "friend_call"
)

// AnswerKeys are the letters a question's answers are presented under.
var AnswerKeys = [AnswersPerQuestion]string{"a", "b", "c", "d"}

// HelpHash holds the advisory data produced by used hints. A field is zero
// until its hint is applied; hints annotate the answer set, they never change
// the variants or the correct mapping.
type HelpHash struct {
	FiftyFifty   []string       `json:"fifty_fifty,omitempty"`
	AudienceHelp map[string]int `json:"audience_help,omitempty"`
	FriendCall   string         `json:"friend_call,omitempty"`
}

// GameQuestion is one question bound into a game at a fixed level. The
// permutation maps each answer key to an index into the question's answers
// and is generated once when the game is built.
type GameQuestion struct {
	ID        int64
	GameID    int64
	Level     int
	Question  *Question
	Perm      [AnswersPerQuestion]int
	Help      HelpHash
	CreatedAt time.Time
}

// friendNames is the cast the friend-call hint quotes.
var friendNames = []string{
	"Uncle Pete", "Aunt Maria", "Professor Crane", "Old Man Hendricks",
	"Your college roommate", "Coach Daniels",
}

// NewGameQuestion binds a question into a game with a freshly shuffled
// answer permutation.
func NewGameQuestion(q *Question, level int, rng *rand.Rand) *GameQuestion {
	gq := &GameQuestion{
		Level:    level,
		Question: q,
	}
	for i := range gq.Perm {
		gq.Perm[i] = i
	}
	rng.Shuffle(len(gq.Perm), func(i, j int) {
		gq.Perm[i], gq.Perm[j] = gq.Perm[j], gq.Perm[i]
	})
	return gq
}

// Variants returns the answer key to answer text mapping for presentation.
func (gq *GameQuestion) Variants() map[string]string {
	variants := make(map[string]string, AnswersPerQuestion)
	for i, key := range AnswerKeys {
		variants[key] = gq.Question.Answers[gq.Perm[i]]
	}
	return variants
}

// AnswerCorrect reports whether the given key maps to the correct answer.
// Unknown keys are simply not correct.
func (gq *GameQuestion) AnswerCorrect(key string) bool {
	return key == gq.CorrectAnswerKey()
}

// CorrectAnswerKey returns the key currently holding the correct answer.
func (gq *GameQuestion) CorrectAnswerKey() string {
	for i, key := range AnswerKeys {
		if gq.Perm[i] == gq.Question.CorrectIx {
			return key
		}
	}
	// Unreachable while Perm is a permutation of 0..3.
	return ""
}

// ApplyHint applies the hint of the given kind, rejecting unknown kinds and
// repeat uses.
func (gq *GameQuestion) ApplyHint(kind HintKind, rng *rand.Rand) error {
	switch kind {
	case HintFiftyFifty:
		return gq.AddFiftyFifty(rng)
	case HintAudienceHelp:
		return gq.AddAudienceHelp(rng)
	case HintFriendCall:
		return gq.AddFriendCall(rng)
	default:
		return fmt.Errorf("unknown hint kind %q", kind)
	}
}

// HintUsed reports whether a hint kind has already been applied.
func (gq *GameQuestion) HintUsed(kind HintKind) bool {
	switch kind {
	case HintFiftyFifty:
		return gq.Help.FiftyFifty != nil
	case HintAudienceHelp:
		return gq.Help.AudienceHelp != nil
	case HintFriendCall:
		return gq.Help.FriendCall != ""
	default:
		return false
	}
}

// AddFiftyFifty keeps the correct answer and one random wrong answer.
func (gq *GameQuestion) AddFiftyFifty(rng *rand.Rand) error {
	if gq.Help.FiftyFifty != nil {
		return ErrHintAlreadyUsed
	}

	correct := gq.CorrectAnswerKey()
	wrong := gq.wrongAnswerKeys()
	kept := []string{correct, wrong[rng.Intn(len(wrong))]}

	gq.Help.FiftyFifty = kept
	return nil
}

// AddAudienceHelp produces a percentage vote distribution over all four keys.
// The correct answer always receives a strict plurality of the 100 votes.
func (gq *GameQuestion) AddAudienceHelp(rng *rand.Rand) error {
	if gq.Help.AudienceHelp != nil {
		return ErrHintAlreadyUsed
	}

	correct := gq.CorrectAnswerKey()
	correctVotes := 45 + rng.Intn(26)
	remaining := 100 - correctVotes

	// Split the remaining votes over the wrong answers with two random cuts.
	first := rng.Intn(remaining + 1)
	second := rng.Intn(remaining + 1)
	if first > second {
		first, second = second, first
	}
	shares := []int{first, second - first, remaining - second}

	votes := make(map[string]int, AnswersPerQuestion)
	for i, key := range gq.wrongAnswerKeys() {
		share := shares[i]
		if share >= correctVotes {
			// Keep the correct answer a strict plurality.
			excess := share - correctVotes + 1
			share -= excess
			correctVotes += excess
		}
		votes[key] = share
	}
	votes[correct] = correctVotes

	gq.Help.AudienceHelp = votes
	return nil
}

// AddFriendCall produces the friend's guess. The friend is right most of the
// time but not always.
func (gq *GameQuestion) AddFriendCall(rng *rand.Rand) error {
	if gq.Help.FriendCall != "" {
		return ErrHintAlreadyUsed
	}

	guess := gq.CorrectAnswerKey()
	if rng.Intn(100) >= 80 {
		wrong := gq.wrongAnswerKeys()
		guess = wrong[rng.Intn(len(wrong))]
	}

	name := friendNames[rng.Intn(len(friendNames))]
	gq.Help.FriendCall = fmt.Sprintf("%s thinks the answer is %s", name, strings.ToUpper(guess))
	return nil
}

// wrongAnswerKeys returns the three keys that do not hold the correct answer.
func (gq *GameQuestion) wrongAnswerKeys() []string {
	correct := gq.CorrectAnswerKey()
	wrong := make([]string, 0, AnswersPerQuestion-1)
	for _, key := range AnswerKeys {
		if key != correct {
			wrong = append(wrong, key)
		}
	}
	return wrong
}
