package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/form/v4"
)

var decoder = form.NewDecoder()

type apiResponse struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message,omitempty"`
	Redirect string      `json:"redirect,omitempty"`
	User     interface{} `json:"user,omitempty"`
	Post     interface{} `json:"post,omitempty"`
	Data     interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiResponse{Success: false, Message: message})
}
