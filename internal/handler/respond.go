package handler

import (
	"encoding/json"
	"net/http"
)

// Every endpoint answers with a {success, ...} envelope; the web clients
// branch on the success flag rather than the status code.

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func failure(msg string) map[string]any {
	return map[string]any{"success": false, "message": msg}
}

func successMessage(msg string) map[string]any {
	return map[string]any{"success": true, "message": msg}
}

func successToken(token string) map[string]any {
	return map[string]any{"success": true, "token": token}
}
