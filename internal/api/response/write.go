package response

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/courtside/internal/model"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteLineup writes the full lineup view, the answer to most edits
func WriteLineup(w http.ResponseWriter, status int, l *model.Lineup) {
	JSON(w, status, LineupFromModel(l))
}

// NoContent writes a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
