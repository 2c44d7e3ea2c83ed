package httpapi

import (
	"net/http"
	"strconv"

	"github.com/alexanderramin/etude/internal/catalog"
	"github.com/alexanderramin/etude/internal/contract"
	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/identity"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok", "version": s.version})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	body := catalogBody{}
	for _, it := range catalog.Scales() {
		body.Scales = append(body.Scales, catalogScale{
			ID:       it.ID,
			Key:      it.Key.Token(),
			Type:     it.Type.Token(),
			Arpeggio: it.IsArpeggio(),
		})
	}
	for _, ex := range catalog.Dohnanyi() {
		body.Dohnanyi = append(body.Dohnanyi, catalogExercise{Name: ex.Name, ShapeID: ex.ShapeID})
	}
	for _, ex := range catalog.Hanon() {
		body.Hanon = append(body.Hanon, catalogExercise{Name: ex.Name, ShapeID: ex.ShapeID})
	}
	writeJSON(w, r, http.StatusOK, body)
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	d, err := identity.Decode(r.URL.Query().Get("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, d)
}

func (s *Server) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	st, err := s.svc.Practice.GetStatus(r.Context(), userFrom(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, statusBody{ID: id, Family: identity.FamilyOf(id), Status: st})
}

func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	var req setStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	st, err := domain.ParseStatus(req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.svc.Practice.SetStatus(r.Context(), userFrom(r.Context()), id, st); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, statusBody{ID: id, Family: identity.FamilyOf(id), Status: st})
}

func (s *Server) handleListStatuses(w http.ResponseWriter, r *http.Request) {
	views, err := s.svc.Practice.ListStatuses(r.Context(), userFrom(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]statusBody, 0, len(views))
	for _, v := range views {
		out = append(out, statusBody{ID: v.ID, Family: v.Family, Status: v.Status})
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleGetBPM(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	bpm, err := s.svc.Practice.GetMasteryBPM(r.Context(), userFrom(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, bpmBody{ID: id, Family: identity.FamilyOf(id), BPM: bpm})
}

func (s *Server) handleRaiseBPM(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	var req raiseBPMRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := s.svc.Practice.RaiseMasteryBPM(r.Context(), userFrom(r.Context()), id, req.BPM)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, bpmBody{
		ID:        resp.ShapeID,
		Family:    identity.FamilyOf(resp.ShapeID),
		BPM:       resp.BPM,
		NewRecord: &resp.NewRecord,
	})
}

func (s *Server) handleResetBPM(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if err := s.svc.Practice.ResetMasteryBPM(r.Context(), userFrom(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListBPMs(w http.ResponseWriter, r *http.Request) {
	views, err := s.svc.Practice.ListBPMs(r.Context(), userFrom(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]bpmBody, 0, len(views))
	for _, v := range views {
		out = append(out, bpmBody{ID: v.ShapeID, Family: v.Family, BPM: v.BPM})
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	var req snapshotRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Item == nil {
		writeError(w, r, badRequest("snapshot item is required"))
		return
	}
	item, err := req.Item.Item()
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := s.svc.Sessions.SubmitSnapshot(r.Context(), userFrom(r.Context()), contract.SnapshotRequest{Item: item, Notes: req.Notes})
	if err != nil {
		writeError(w, r, err)
		return
	}
	status := http.StatusCreated
	if !resp.Accepted {
		status = http.StatusOK
	}
	writeJSON(w, r, status, snapshotResponse{
		Accepted:  resp.Accepted,
		NewRecord: resp.NewRecord,
		ShapeID:   resp.ShapeID,
		BPM:       resp.BPM,
		Entry:     toLogEntry(resp.Entry),
	})
}

func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, r, badRequest("limit %q", v))
			return
		}
		limit = n
	}
	entries, err := s.svc.Sessions.ListLog(r.Context(), userFrom(r.Context()), contract.NewListLogRequest(limit))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]*logEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, toLogEntry(e))
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleLogSession(w http.ResponseWriter, r *http.Request) {
	var req logSessionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	items, err := envelopeItems(req.Items)
	if err != nil {
		writeError(w, r, err)
		return
	}
	entry, err := s.svc.Sessions.LogSession(r.Context(), userFrom(r.Context()), contract.LogSessionRequest{
		DurationMinutes: req.DurationMinutes,
		Items:           items,
		Notes:           req.Notes,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toLogEntry(entry))
}

func (s *Server) handleGrades(w http.ResponseWriter, r *http.Request) {
	resp, err := s.svc.Progress.Grades(r.Context(), userFrom(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"grades": resp.Grades, "standing": resp.Standing})
}

func (s *Server) handleGrade(w http.ResponseWriter, r *http.Request) {
	level, err := strconv.Atoi(chi.URLParam(r, "level"))
	if err != nil {
		writeError(w, r, badRequest("grade %q", chi.URLParam(r, "level")))
		return
	}
	c, err := s.svc.Progress.Grade(r.Context(), userFrom(r.Context()), level)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, c)
}

func (s *Server) handleFocus(w http.ResponseWriter, r *http.Request) {
	var req contract.FocusRequest
	if v := r.URL.Query().Get("family"); v != "" {
		f, err := domain.ParseFamily(v)
		if err != nil {
			writeError(w, r, err)
			return
		}
		req.Family = f
	}
	resp, err := s.svc.Progress.Focus(r.Context(), userFrom(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	body := map[string]any{"standing": resp.Standing, "focus": nil}
	if f := resp.Focus; f != nil {
		body["focus"] = focusBody{ID: f.ID, Reason: f.Reason, Tier: f.Tier, Family: f.Family, Item: domain.Envelope(f.Item)}
	}
	writeJSON(w, r, http.StatusOK, body)
}

func (s *Server) handleClearFamily(w http.ResponseWriter, r *http.Request) {
	f, err := domain.ParseFamily(chi.URLParam(r, "family"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := s.svc.Practice.ClearFamily(r.Context(), userFrom(r.Context()), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"family":   resp.Family,
		"statuses": resp.Statuses,
		"bpms":     resp.BPMs,
	})
}
