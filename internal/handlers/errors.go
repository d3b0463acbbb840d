package handlers

import (
	"log"
	"net/http"
)

// respondWithError writes a plain error response. Only userMsg reaches the
// client; the wrapped error is logged under logMsg, which falls back to
// userMsg when empty.
func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s (status %d): %v", logMsg, status, err)
	}

	http.Error(w, userMsg, status)
}
