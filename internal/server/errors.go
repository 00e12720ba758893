// Package server provides the HTTP REST API for LexaLab.
package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/lexalab/internal/profiles"
)

// Fixed client-facing error messages.
const (
	msgAnalyzeUsage     = "Send { text: '...' } in JSON body."
	msgOnboardingFields = "userId and industry are required"
	msgNotFound         = "not found"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var verr *profiles.ErrValidation
	var nf *profiles.ErrNotFound
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.As(err, &nf):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage returns the message shown to API clients for err.
func clientMessage(err error) string {
	var verr *profiles.ErrValidation
	var nf *profiles.ErrNotFound
	switch {
	case errors.As(err, &verr):
		if verr.Field == "userId" || verr.Field == "industry" {
			return msgOnboardingFields
		}
		return verr.Field + " " + verr.Message
	case errors.As(err, &nf):
		return msgNotFound
	default:
		return "internal error"
	}
}
