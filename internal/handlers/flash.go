package handlers

import (
	"encoding/base64"
	"net/http"
	"strings"

	"moneyladder/internal/security"
)

// Flash is a one-shot message surfaced on the next rendered page
type Flash struct {
	Kind    string
	Message string
}

const (
	FlashAlert   = "alert"
	FlashNotice  = "notice"
	FlashWarning = "warning"
)

// SetFlash stores a flash message in a cookie for the next request
func SetFlash(w http.ResponseWriter, r *http.Request, kind, message string) {
	value := base64.RawURLEncoding.EncodeToString([]byte(kind + "|" + message))
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   security.IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   300,
	})
}

// PopFlash reads and clears the pending flash message, if any
func PopFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(FlashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	decoded, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	kind, message, ok := strings.Cut(string(decoded), "|")
	if !ok || message == "" {
		return nil
	}

	return &Flash{Kind: kind, Message: message}
}
