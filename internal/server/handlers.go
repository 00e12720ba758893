package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/lexalab/internal/phrases"
	"github.com/jonathan/lexalab/internal/server/middleware"
	"github.com/jonathan/lexalab/internal/types"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 100 << 10

// isoMillis matches the timestamp layout of JavaScript's Date.toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// AnalyzeRequest represents the request body for /phrases/analyze
type AnalyzeRequest struct {
	Text     string `json:"text"`
	Industry string `json:"industry,omitempty"`
	Goal     string `json:"goal,omitempty"`
	UserID   string `json:"userId,omitempty"`
}

// HealthResponse represents the response for /health
type HealthResponse struct {
	OK   bool   `json:"ok"`
	Time string `json:"time"`
}

// OnboardingResponse represents the response for /onboarding
type OnboardingResponse struct {
	OK      bool           `json:"ok"`
	Profile *types.Profile `json:"profile"`
}

// PhrasesResponse represents the response for GET /phrases
type PhrasesResponse struct {
	Rules []phrases.Rule `json:"rules"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "LexaLab API is live!")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, HealthResponse{
		OK:   true,
		Time: s.now().UTC().Format(isoMillis),
	})
}

// handleListPhrases returns the loaded rule catalog
func (s *Server) handleListPhrases(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, PhrasesResponse{Rules: s.analyzer.Catalog().Rules()})
}

// handleAnalyze scans the submitted text and returns findings with a rewrite
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.bodyReadError(w, err)
		return
	}

	if err := s.analyzeSchema.Validate(body); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgAnalyzeUsage)
		return
	}

	var req AnalyzeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgAnalyzeUsage)
		return
	}

	result := s.analyzer.Analyze(req.Text, s.tailoringFor(r, req))
	s.jsonResponse(w, http.StatusOK, result)
}

// tailoringFor fills gaps in the request's industry and goal from the caller's profile.
func (s *Server) tailoringFor(r *http.Request, req AnalyzeRequest) phrases.Tailoring {
	t := phrases.Tailoring{Industry: req.Industry, Goal: req.Goal}
	if req.UserID == "" || (t.Industry != "" && t.Goal != "") {
		return t
	}

	profile, err := s.profiles.Get(req.UserID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": middleware.GetRequestID(r),
			"user_id":    req.UserID,
		}).Debug("no profile for analysis, continuing untailored")
		return t
	}

	if t.Industry == "" {
		t.Industry = profile.Industry
	}
	if t.Goal == "" && len(profile.Goals) > 0 {
		t.Goal = profile.Goals[0]
	}
	return t
}

// handleOnboarding creates or replaces a user profile
func (s *Server) handleOnboarding(w http.ResponseWriter, r *http.Request) {
	var req types.OnboardingRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.bodyReadError(w, err)
		return
	}

	profile, err := s.profiles.Upsert(&req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), clientMessage(err))
		return
	}

	s.log.WithFields(logrus.Fields{
		"request_id": middleware.GetRequestID(r),
		"user_id":    profile.UserID,
	}).Info("profile saved")

	s.jsonResponse(w, http.StatusOK, OnboardingResponse{OK: true, Profile: profile})
}

// handleGetProfile returns a stored profile
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.profiles.Get(r.PathValue("userId"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), clientMessage(err))
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

// bodyReadError reports an unreadable or oversized request body.
func (s *Server) bodyReadError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
}
