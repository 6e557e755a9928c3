package api

import (
	"net/http"

	"github.com/alexanderramin/dayplan/internal/intelligence"
)

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	reply, err := s.svc.Assist.Chat(r.Context(), intelligence.ChatInput{
		Message:   req.Message,
		AgentType: req.AgentType,
		Tier:      req.Tier,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, reply)
}

func (s *Server) handleParseTicket(w http.ResponseWriter, r *http.Request) {
	var req ParseTicketRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	ticket, err := s.svc.Assist.ParseTicket(r.Context(), req.TicketKey)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ticket)
}

func (s *Server) handleAnalyzeDescription(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeDescriptionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	analysis, err := s.svc.Assist.AnalyzeTask(r.Context(), req.Description)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, analysis)
}

func (s *Server) handleGetJiraTicket(w http.ResponseWriter, r *http.Request) {
	issue, err := s.svc.Assist.Issue(r.Context(), r.PathValue("key"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, issue)
}
