package api

import (
	"net/http"

	"github.com/alexanderramin/dayplan/internal/domain"
)

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.svc.Tasks.List(r.Context(), r.URL.Query().Get("planId"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, toTasks(tasks))
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.Tasks.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, toTask(t))
}

func (s *Server) handleAnalyzeTask(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	t, err := s.svc.Tasks.Analyze(r.Context(), req.Description, req.PlanID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, toTask(t))
}

func (s *Server) handleImportTask(w http.ResponseWriter, r *http.Request) {
	var req ImportTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	t, err := s.svc.Tasks.ImportFromJira(r.Context(), req.TicketKey, req.PlanID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, toTask(t))
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req UpdateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	t, err := s.svc.Tasks.Update(r.Context(), r.PathValue("id"), domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, toTask(t))
}

func (s *Server) handleBulkTasks(w http.ResponseWriter, r *http.Request) {
	var req BulkTasksRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	tasks, err := s.svc.Tasks.BulkReplace(r.Context(), req.PlanID, taskInputs(req.Tasks))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, toTasks(tasks))
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Tasks.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, DeleteResponse{Success: true})
}
