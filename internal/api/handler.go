package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/goshaft/internal/batch"
	"github.com/alexiusacademia/goshaft/internal/fatigue"
	"github.com/alexiusacademia/goshaft/internal/shaft"
	"github.com/alexiusacademia/goshaft/internal/shigley"
	"github.com/alexiusacademia/goshaft/internal/version"
)

const (
	maxBodyBytes   = 1 << 20
	maxUploadBytes = 10 << 20
)

type Handler struct {
	cache    *fatigue.Cache
	logger   *slog.Logger
	maxBatch int
}

type BatchRequest struct {
	Cases []json.RawMessage `json:"cases"`
}

type BatchResponse struct {
	Count int         `json:"count"`
	Rows  []batch.Row `json:"rows"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Compute runs one calculation. Omitted input fields take their defaults.
func (h *Handler) Compute(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeBodyError(w, err)
		return
	}
	c, err := shaft.DecodeCaseJSON(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	if err := c.Inputs.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows := batch.Run([]shaft.Case{c}, h.computer())
	h.logger.Debug("fatigue.computed", "name", rows[0].Name, "status", rows[0].Result.Status, "life", rows[0].Result.Life.State)
	writeJSON(w, http.StatusOK, rows[0])
}

// Batch runs a list of calculations.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	cases, ok := h.decodeBatch(w, r)
	if !ok {
		return
	}
	rows := batch.Run(cases, h.computer())
	writeJSON(w, http.StatusOK, BatchResponse{Count: len(rows), Rows: rows})
}

// Export runs a list of calculations and returns them as a CSV download,
// one row per calculation.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	cases, ok := h.decodeBatch(w, r)
	if !ok {
		return
	}
	rows := batch.Run(cases, h.computer())

	var buf bytes.Buffer
	if err := batch.WriteCSV(&buf, rows); err != nil {
		h.logger.Error("export.failed", "err", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="shaft-fatigue.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// Import accepts a multipart "file" (.csv or .xlsx) and returns the
// calculated rows.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file required")
		return
	}
	defer file.Close()

	var cases []shaft.Case
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".csv":
		cases, err = batch.ReadCSV(file)
	case ".xlsx":
		cases, err = batch.ReadXLSX(file)
	default:
		writeError(w, http.StatusUnsupportedMediaType, "file must be .csv or .xlsx")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(cases) == 0 {
		writeError(w, http.StatusBadRequest, "no cases found")
		return
	}
	if len(cases) > h.maxBatch {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("at most %d cases per request", h.maxBatch))
		return
	}

	rows := batch.Run(cases, h.computer())
	writeJSON(w, http.StatusOK, BatchResponse{Count: len(rows), Rows: rows})
}

// Finishes lists the Marin surface-finish constants.
func (h *Handler) Finishes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, shigley.Finishes)
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	resp := map[string]any{
		"status":  "ok",
		"version": version.Version,
	}
	if h.cache != nil {
		resp["cache_entries"] = h.cache.Len()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) decodeBatch(w http.ResponseWriter, r *http.Request) ([]shaft.Case, bool) {
	var req BatchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeBodyError(w, err)
		return nil, false
	}
	if len(req.Cases) == 0 {
		writeError(w, http.StatusBadRequest, "no cases")
		return nil, false
	}
	if len(req.Cases) > h.maxBatch {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("at most %d cases per request", h.maxBatch))
		return nil, false
	}

	cases := make([]shaft.Case, 0, len(req.Cases))
	for i, raw := range req.Cases {
		c, err := shaft.DecodeCaseJSON(raw)
		if err == nil {
			err = c.Inputs.Validate()
		}
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("cases[%d]: %v", i, err))
			return nil, false
		}
		cases = append(cases, c)
	}
	return cases, true
}

func (h *Handler) computer() batch.Computer {
	if h.cache == nil {
		return nil
	}
	return h.cache
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	writeError(w, http.StatusBadRequest, "invalid request payload")
}
