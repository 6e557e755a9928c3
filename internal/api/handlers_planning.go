package api

import (
	"net/http"

	"github.com/alexanderramin/dayplan/internal/service"
)

func (s *Server) handleRecommendToday(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	text, err := s.svc.Planning.RecommendToday(r.Context(), service.RecommendInput{
		PlanID: req.PlanID,
		Tasks:  taskInputs(req.Tasks),
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, RecommendResponse{Recommendation: text})
}

func (s *Server) handleTaskGuidance(w http.ResponseWriter, r *http.Request) {
	var req GuidanceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	in := service.GuidanceInput{TaskID: req.TaskID}
	if req.Task != nil {
		t := req.Task.toDomain()
		in.Task = &t
	}
	text, err := s.svc.Planning.TaskGuidance(r.Context(), in)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, GuidanceResponse{Guidance: text})
}

