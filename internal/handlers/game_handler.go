package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"

	"moneyladder/internal/models"
	"moneyladder/internal/service"
	"moneyladder/internal/validation"
)

// GameHandler handles game play HTTP requests
type GameHandler struct {
	gameService *service.GameService
	middleware  *Middleware
	templates   *template.Template
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameService *service.GameService, middleware *Middleware, templates *template.Template) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		middleware:  middleware,
		templates:   templates,
	}
}

// Create starts a new game for the signed-in user. If a game is already
// running the user is sent back to it and no new game is created.
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	game, err := h.gameService.StartGame(user.ID)
	if errors.Is(err, service.ErrGameInProgress) {
		SetFlash(w, r, FlashAlert, "Finish your current game before starting another")
		http.Redirect(w, r, gamePath(game.ID), http.StatusSeeOther)
		return
	}
	if errors.Is(err, models.ErrInsufficientQuestions) {
		SetFlash(w, r, FlashAlert, "The question bank is not ready yet, try again later")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to start game", err)
		return
	}

	http.Redirect(w, r, gamePath(game.ID), http.StatusSeeOther)
}

// Show renders a game. Other players' games are not viewable.
func (h *GameHandler) Show(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	game, ok := h.loadGame(w, r, user.ID)
	if !ok {
		return
	}

	data := GameViewData{
		Title:     fmt.Sprintf("Question %d - Money Ladder", game.CurrentLevel+1),
		User:      user,
		Game:      game,
		Status:    game.Status(),
		Ladder:    buildLadder(game),
		Flash:     PopFlash(w, r),
		CSRFToken: h.middleware.CSRFToken(r),
	}

	if game.Status() == models.StatusInProgress {
		question, err := buildQuestionView(game)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to build question view", err)
			return
		}
		data.Question = question
	} else {
		data.Title = "Game Over - Money Ladder"
	}

	if err := h.templates.ExecuteTemplate(w, "game.tmpl", data); err != nil {
		log.Printf("Error rendering game template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// Answer submits an answer for the game's current question
func (h *GameHandler) Answer(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	gameID, err := gameIDFromPath(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	key := strings.ToLower(strings.TrimSpace(r.FormValue("letter")))
	if err := validation.ValidateAnswerKey(key); err != nil {
		SetFlash(w, r, FlashAlert, "Pick one of the four answers")
		http.Redirect(w, r, gamePath(gameID), http.StatusSeeOther)
		return
	}

	correct, game, err := h.gameService.Answer(r.Context(), gameID, user.ID, key)
	if !h.handleMoveError(w, r, gameID, err) {
		return
	}

	switch {
	case game.Status() == models.StatusTimeout:
		SetFlash(w, r, FlashAlert, "Time is up, the game is over")
	case !correct:
		SetFlash(w, r, FlashAlert, "Wrong answer, the game is over")
	case game.Status() == models.StatusWon:
		SetFlash(w, r, FlashNotice, fmt.Sprintf("You won $%d, congratulations!", game.Prize))
	}

	http.Redirect(w, r, gamePath(gameID), http.StatusSeeOther)
}

// TakeMoney ends the game and banks the current prize
func (h *GameHandler) TakeMoney(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	gameID, err := gameIDFromPath(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	game, err := h.gameService.TakeMoney(r.Context(), gameID, user.ID)
	if !h.handleMoveError(w, r, gameID, err) {
		return
	}

	if game.Status() == models.StatusTimeout {
		SetFlash(w, r, FlashAlert, "Time is up, the game is over")
		http.Redirect(w, r, gamePath(gameID), http.StatusSeeOther)
		return
	}

	SetFlash(w, r, FlashWarning, fmt.Sprintf("You walked away with $%d", game.Prize))
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// Help spends one of the game's hints on the current question
func (h *GameHandler) Help(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	gameID, err := gameIDFromPath(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	kind := models.HintKind(r.FormValue("kind"))
	_, err = h.gameService.UseHint(r.Context(), gameID, user.ID, kind)
	if errors.Is(err, models.ErrHintAlreadyUsed) {
		SetFlash(w, r, FlashAlert, "You already used that hint in this game")
		http.Redirect(w, r, gamePath(gameID), http.StatusSeeOther)
		return
	}
	if !h.handleMoveError(w, r, gameID, err) {
		return
	}

	http.Redirect(w, r, gamePath(gameID), http.StatusSeeOther)
}

// loadGame fetches a game for the user, writing the response itself on
// failure. The second return value reports whether the caller may proceed.
func (h *GameHandler) loadGame(w http.ResponseWriter, r *http.Request, userID int64) (*models.Game, bool) {
	gameID, err := gameIDFromPath(r)
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}

	game, err := h.gameService.GetGameForUser(gameID, userID)
	if errors.Is(err, service.ErrGameNotFound) {
		http.NotFound(w, r)
		return nil, false
	}
	if errors.Is(err, service.ErrNotGameOwner) {
		SetFlash(w, r, FlashAlert, "That game belongs to another player")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return nil, false
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to load game", err)
		return nil, false
	}

	return game, true
}

// handleMoveError deals with the common failure modes of a game move.
// Returns true when the move succeeded and the caller should continue.
func (h *GameHandler) handleMoveError(w http.ResponseWriter, r *http.Request, gameID int64, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, service.ErrGameNotFound):
		http.NotFound(w, r)
	case errors.Is(err, service.ErrNotGameOwner):
		SetFlash(w, r, FlashAlert, "That game belongs to another player")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, models.ErrInvalidState):
		SetFlash(w, r, FlashAlert, "This game is already over")
		http.Redirect(w, r, gamePath(gameID), http.StatusSeeOther)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "game move failed", err)
	}
	return false
}

func gameIDFromPath(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func gamePath(gameID int64) string {
	return fmt.Sprintf("/games/%d", gameID)
}

// buildLadder renders the prize ladder with the game's position marked
func buildLadder(game *models.Game) []LadderRung {
	rungs := make([]LadderRung, 0, models.QuestionCount)
	for level := models.QuestionCount - 1; level >= 0; level-- {
		prize, _ := models.PrizeForLevel(level)
		rungs = append(rungs, LadderRung{
			Level:     level,
			Prize:     prize,
			Current:   !game.Finished() && level == game.CurrentLevel,
			Fireproof: isFireproof(level),
		})
	}
	return rungs
}

func isFireproof(level int) bool {
	for _, fp := range models.FireproofLevels {
		if fp == level {
			return true
		}
	}
	return false
}

// buildQuestionView shapes the current question for the template
func buildQuestionView(game *models.Game) (*QuestionView, error) {
	gq, err := game.CurrentGameQuestion()
	if err != nil {
		return nil, err
	}

	prize, err := models.PrizeForLevel(game.CurrentLevel)
	if err != nil {
		return nil, err
	}

	return &QuestionView{
		Level:        game.CurrentLevel,
		Prize:        prize,
		Text:         gq.Question.Text,
		Variants:     gq.Variants(),
		Keys:         models.AnswerKeys[:],
		Help:         gq.Help,
		FiftyFifty:   game.HintUsed(models.HintFiftyFifty),
		AudienceHelp: game.HintUsed(models.HintAudienceHelp),
		FriendCall:   game.HintUsed(models.HintFriendCall),
	}, nil
}
