package api

import (
	"net/http"

	"github.com/alexanderramin/dayplan/internal/service"
)

func (s *Server) handleLogWork(w http.ResponseWriter, r *http.Request) {
	var req LogWorkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	wl, err := s.svc.WorkLogs.Log(r.Context(), service.LogWorkInput{
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Description:     req.Description,
		TaskID:          req.TaskID,
		TicketID:        req.TicketID,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, toWorkLog(wl))
}

func (s *Server) handleListWorkLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := s.svc.WorkLogs.ListByDate(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	out := make([]WorkLog, 0, len(logs))
	for _, l := range logs {
		out = append(out, toWorkLog(l))
	}
	s.jsonResponse(w, http.StatusOK, out)
}
