package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/courtside/internal/api/apierr"
	"github.com/mcoot/courtside/internal/model"
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// decode reads a JSON request body into v
func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return NewInvalidRequestError("invalid request body")
	}
	return nil
}

// lineupID reads the {id} path variable
func lineupID(r *http.Request) model.LineupID {
	return model.LineupID(mux.Vars(r)["id"])
}

// playerNumber reads the {number} path variable
func playerNumber(r *http.Request) (model.PlayerNumber, error) {
	n, err := strconv.Atoi(mux.Vars(r)["number"])
	if err != nil {
		return 0, NewInvalidRequestError("player number must be an integer")
	}
	return model.PlayerNumber(n), nil
}
