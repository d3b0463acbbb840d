package handlers

import (
	"moneyladder/internal/models"
)

type LoginViewData struct {
	Title          string
	OAuthProviders []OAuthProviderView
	Flash          *Flash
	Error          string
	Email          string
	Success        string
}

type RegisterViewData struct {
	Title          string
	OAuthProviders []OAuthProviderView
	Error          string
	Email          string
	Name           string
}

type ForgotPasswordViewData struct {
	Title   string
	Success string
	Error   string
}

type ResetPasswordViewData struct {
	Title string
	Token string
	Error string
}

// LadderRung is one row of the prize ladder as rendered next to the game
type LadderRung struct {
	Level     int
	Prize     int
	Current   bool
	Fireproof bool
}

type HomeViewData struct {
	Title      string
	User       *models.User
	Flash      *Flash
	TopPlayers []models.User
	CSRFToken  string
}

// ProfileViewData renders a player's profile. User is the signed-in viewer
// and Owner the player the page is about; the edit affordances only show
// when they are the same person.
type ProfileViewData struct {
	Title     string
	User      *models.User
	Owner     *models.User
	IsOwner   bool
	Games     []GameSummaryView
	Flash     *Flash
	CSRFToken string
}

// GameSummaryView is one finished or running game on the profile page
type GameSummaryView struct {
	ID        int64
	Status    models.GameStatus
	Level     int
	Prize     int
	CreatedAt string
}

type GameViewData struct {
	Title     string
	User      *models.User
	Game      *models.Game
	Status    models.GameStatus
	Question  *QuestionView
	Ladder    []LadderRung
	Flash     *Flash
	CSRFToken string
}

// QuestionView is the current question with its shuffled variants and any
// hints already revealed.
type QuestionView struct {
	Level        int
	Prize        int
	Text         string
	Variants     map[string]string
	Keys         []string
	Help         models.HelpHash
	FiftyFifty   bool
	AudienceHelp bool
	FriendCall   bool
}
