package utils

import (
	"encoding/json"
	"net/http"
)

// JSON writes v under a success envelope. v's keys are merged at the top
// level next to "success": true.
func JSON(w http.ResponseWriter, status int, v map[string]any) {
	body := map[string]any{"success": true}
	for k, val := range v {
		body[k] = val
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Error writes a failure envelope. HTTP status and the envelope agree.
func Error(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
}
