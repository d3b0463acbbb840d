package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"

	"moneyladder/internal/models"
	"moneyladder/internal/repository"
	"moneyladder/internal/service"
	"moneyladder/internal/validation"
)

const leaderboardSize = 10

// UserHandler handles the home page and player profiles
type UserHandler struct {
	authService *service.AuthService
	gameService *service.GameService
	userRepo    *repository.UserRepository
	middleware  *Middleware
	templates   *template.Template
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService *service.AuthService, gameService *service.GameService, userRepo *repository.UserRepository, middleware *Middleware, templates *template.Template) *UserHandler {
	return &UserHandler{
		authService: authService,
		gameService: gameService,
		userRepo:    userRepo,
		middleware:  middleware,
		templates:   templates,
	}
}

// Home renders the landing page with the leaderboard. Works for both
// anonymous visitors and signed-in players.
func (h *UserHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	var user *models.User
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if u, err := h.authService.ValidateSession(cookie.Value); err == nil {
			user = u
		}
	}

	topPlayers, err := h.userRepo.ListTopByBalance(leaderboardSize)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to load leaderboard", err)
		return
	}

	data := HomeViewData{
		Title:      "Money Ladder",
		User:       user,
		Flash:      PopFlash(w, r),
		TopPlayers: topPlayers,
		CSRFToken:  h.middleware.CSRFToken(r),
	}

	if err := h.templates.ExecuteTemplate(w, "home.tmpl", data); err != nil {
		log.Printf("Error rendering home template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// Profile renders the signed-in player's own profile
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	h.renderProfile(w, r, user, user)
}

// Show renders any player's profile. Other players see it read-only: the
// balance and game history, but no game links and no account forms.
func (h *UserHandler) Show(w http.ResponseWriter, r *http.Request) {
	viewer := GetUserFromContext(r.Context())

	ownerID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	owner, err := h.userRepo.GetUserByID(ownerID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to load player", err)
		return
	}
	if owner == nil {
		http.NotFound(w, r)
		return
	}

	h.renderProfile(w, r, viewer, owner)
}

// UpdateProfile changes the signed-in player's name and, when the password
// fields are filled in, their password.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name != "" && name != user.Name {
		if !h.applyProfileChange(w, r, h.authService.UpdateName(user.ID, name)) {
			return
		}
	}

	if newPassword := r.FormValue("new_password"); newPassword != "" {
		err := h.authService.ChangePassword(user.ID, r.FormValue("current_password"), newPassword)
		if errors.Is(err, service.ErrInvalidCredentials) {
			SetFlash(w, r, FlashAlert, "Current password is incorrect")
			http.Redirect(w, r, "/profile", http.StatusSeeOther)
			return
		}
		if !h.applyProfileChange(w, r, err) {
			return
		}
	}

	SetFlash(w, r, FlashNotice, "Profile updated")
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// applyProfileChange turns a validation failure into a flash and redirect.
// Returns true when the caller may continue.
func (h *UserHandler) applyProfileChange(w http.ResponseWriter, r *http.Request, err error) bool {
	if err == nil {
		return true
	}

	var vErr validation.ValidationError
	if errors.As(err, &vErr) {
		SetFlash(w, r, FlashAlert, vErr.Message)
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return false
	}

	respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to update profile", err)
	return false
}

func (h *UserHandler) renderProfile(w http.ResponseWriter, r *http.Request, viewer, owner *models.User) {
	games, err := h.gameService.GamesForUser(owner.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to load games", err)
		return
	}

	data := buildProfileData(viewer, owner, games, PopFlash(w, r), h.middleware.CSRFToken(r))

	if err := h.templates.ExecuteTemplate(w, "profile.tmpl", data); err != nil {
		log.Printf("Error rendering profile template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// buildProfileData shapes a profile page for the template
func buildProfileData(viewer, owner *models.User, games []models.Game, flash *Flash, csrfToken string) ProfileViewData {
	return ProfileViewData{
		Title:     owner.Name + " - Money Ladder",
		User:      viewer,
		Owner:     owner,
		IsOwner:   viewer != nil && viewer.ID == owner.ID,
		Games:     gameSummaries(games),
		Flash:     flash,
		CSRFToken: csrfToken,
	}
}

func gameSummaries(games []models.Game) []GameSummaryView {
	summaries := make([]GameSummaryView, 0, len(games))
	for i := range games {
		game := &games[i]
		summaries = append(summaries, GameSummaryView{
			ID:        game.ID,
			Status:    game.Status(),
			Level:     game.CurrentLevel,
			Prize:     game.Prize,
			CreatedAt: game.CreatedAt.Format("Jan 2, 2006 15:04"),
		})
	}
	return summaries
}
