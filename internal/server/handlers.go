package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Tiliavir/typed-time-tracker/internal/analytics"
	"github.com/Tiliavir/typed-time-tracker/internal/model"
	"github.com/Tiliavir/typed-time-tracker/internal/storage"
	"github.com/Tiliavir/typed-time-tracker/internal/timecalc"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Warn("writing response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// snapshot reads the working copy once and applies query overrides to the
// stored filter.
func (s *Server) snapshot(r *http.Request) (model.Document, model.Filter, int, error) {
	doc, err := s.src.Document()
	if err != nil {
		return model.Document{}, model.Filter{}, http.StatusInternalServerError, err
	}
	f, err := s.src.Filter()
	if err != nil {
		return model.Document{}, model.Filter{}, http.StatusInternalServerError, err
	}
	f, err = filterFromQuery(r, f)
	if err != nil {
		return model.Document{}, model.Filter{}, http.StatusBadRequest, err
	}
	return doc, f, http.StatusOK, nil
}

// filterFromQuery overrides each filter field present in the query string.
// An empty value clears the field.
func filterFromQuery(r *http.Request, f model.Filter) (model.Filter, error) {
	q := r.URL.Query()
	if q.Has("typeId") {
		f.TypeID = q.Get("typeId")
	}
	for _, p := range []struct {
		name string
		dst  *string
	}{{"dateStart", &f.DateStart}, {"dateEnd", &f.DateEnd}} {
		if !q.Has(p.name) {
			continue
		}
		v := q.Get(p.name)
		if v != "" {
			if _, err := timecalc.ParseDay(v); err != nil {
				return f, fmt.Errorf("invalid %s %q: want YYYY-MM-DD", p.name, v)
			}
		}
		*p.dst = v
	}
	return f, nil
}

// engine builds a fresh engine for the request.
func (s *Server) engine(w http.ResponseWriter, r *http.Request) (*analytics.Engine, bool) {
	doc, f, status, err := s.snapshot(r)
	if err != nil {
		if status == http.StatusInternalServerError {
			s.logger.WithError(err).Error("reading working copy")
		}
		s.writeError(w, status, err)
		return nil, false
	}
	return analytics.New(doc, f), true
}

func (s *Server) observe(query string, start time.Time) {
	s.queryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	view := r.URL.Query().Get("view")
	if view == "" {
		view = string(analytics.Daily)
	}
	e, ok := s.engine(w, r)
	if !ok {
		return
	}
	start := time.Now()
	records, err := e.TimeGraph(view)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.observe("graph_"+view, start)
	s.writeJSON(w, http.StatusOK, records)
}

type typeTimeResponse struct {
	Totals map[string]int        `json:"totals"`
	Shares []analytics.TypeShare `json:"shares"`
}

func (s *Server) handleTypeTime(w http.ResponseWriter, r *http.Request) {
	e, ok := s.engine(w, r)
	if !ok {
		return
	}
	start := time.Now()
	resp := typeTimeResponse{Totals: e.TimePerType(), Shares: e.Shares()}
	if resp.Shares == nil {
		resp.Shares = []analytics.TypeShare{}
	}
	s.observe("time_per_type", start)
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	e, ok := s.engine(w, r)
	if !ok {
		return
	}
	start := time.Now()
	summary := e.Summary()
	s.observe("summary", start)
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	dir, err := analytics.ParseDirection(r.URL.Query().Get("dir"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	e, ok := s.engine(w, r)
	if !ok {
		return
	}
	entries := e.Entries()
	if col := r.URL.Query().Get("sort"); col != "" {
		entries = e.Sorted(analytics.Column(col), dir)
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleTypes(w http.ResponseWriter, r *http.Request) {
	doc, err := s.src.Document()
	if err != nil {
		s.logger.WithError(err).Error("reading working copy")
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	types := storage.VisibleTypes(doc)
	if types == nil {
		types = []model.Type{}
	}
	s.writeJSON(w, http.StatusOK, types)
}
