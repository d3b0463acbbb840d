package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFlashRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	SetFlash(rec, req, FlashAlert, "Wrong answer, the game is over")

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("SetFlash() set %d cookies, want 1", len(cookies))
	}

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookies[0])
	rec2 := httptest.NewRecorder()

	flash := PopFlash(rec2, next)
	if flash == nil {
		t.Fatal("PopFlash() returned nil")
	}
	if flash.Kind != FlashAlert {
		t.Errorf("Kind = %q, want %q", flash.Kind, FlashAlert)
	}
	if flash.Message != "Wrong answer, the game is over" {
		t.Errorf("Message = %q", flash.Message)
	}

	// Pop clears the cookie
	cleared := false
	for _, c := range rec2.Result().Cookies() {
		if c.Name == FlashCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("PopFlash() did not clear the flash cookie")
	}
}

func TestPopFlashWithoutCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	if flash := PopFlash(rec, req); flash != nil {
		t.Errorf("PopFlash() = %+v, want nil", flash)
	}
}

func TestPopFlashGarbageCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: FlashCookieName, Value: "!!not-base64!!"})

	if flash := PopFlash(rec, req); flash != nil {
		t.Errorf("PopFlash() = %+v, want nil", flash)
	}
}
