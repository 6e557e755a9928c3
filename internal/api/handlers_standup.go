package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/yuin/goldmark"

	"github.com/alexanderramin/dayplan/internal/service"
)

func (s *Server) handleGenerateStandup(w http.ResponseWriter, r *http.Request) {
	var req GenerateStandupRequest
	if err := decodeOptionalJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	st, err := s.svc.Standups.Generate(r.Context(), req.Date)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, toStandup(st))
}

func (s *Server) handleGenerateInteractiveStandup(w http.ResponseWriter, r *http.Request) {
	var req InteractiveStandupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	st, err := s.svc.Standups.GenerateInteractive(r.Context(), service.InteractiveInput{
		YesterdayWork: req.YesterdayWork,
		TodayForecast: req.TodayForecast,
		Blockers:      req.Blockers,
		Tasks:         taskInputs(req.Tasks),
		Date:          req.Date,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, toStandup(st))
}

func (s *Server) handleGetStandup(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Standups.Get(r.Context(), r.PathValue("date"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	out := toStandup(st)
	if r.URL.Query().Get("format") == "html" {
		html, err := renderMarkdown(st.Content)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		out.HTML = html
	}
	s.jsonResponse(w, http.StatusOK, out)
}

func renderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.String(), nil
}
