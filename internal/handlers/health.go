package handlers

import (
	"fmt"
	"net/http"
)

// Root answers GET / with a plain liveness string.
func Root(providerName string) http.HandlerFunc {
	body := fmt.Sprintf("VisionChat AI Server is running on %s! 🚀", providerName)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(body))
	}
}
