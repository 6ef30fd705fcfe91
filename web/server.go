// Package web is the HTTP boundary around the fetch and render pipeline: it
// validates incoming filters, runs the pipeline, and maps its outcomes onto
// status codes without leaking internals.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"kastelo.dev/secop2"
	"kastelo.dev/secop2/excel"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// queryRequest mirrors the JSON body of the query form. Field names match
// the SECOP II data set columns the web form has always used.
type queryRequest struct {
	ProcessID     string      `json:"proceso_de_compra"`
	Entity        string      `json:"entidad"`
	Department    string      `json:"departamento"`
	City          string      `json:"ciudad"`
	Modality      string      `json:"modalidades"`
	Status        string      `json:"estado_del_procedimiento"`
	OpeningStatus string      `json:"estado_de_apertura_del_proceso"`
	StartDate     string      `json:"fecha_inicio"`
	EndDate       string      `json:"fecha_fin"`
	MaxRecords    json.Number `json:"max_registros"`
}

type Server struct {
	Client    *secop2.Client
	Log       *slog.Logger
	StaticDir string

	// Expires rejects all queries after the given instant. The zero value
	// disables the gate.
	Expires time.Time

	// Now is the clock used by the expiration gate and the download file
	// name; nil means time.Now.
	Now func() time.Time
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/query", s.handleQuery)
	if s.StaticDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(s.StaticDir)))
	}
	return mux
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	if !s.Expires.IsZero() && now().After(s.Expires) {
		s.log().Warn("query rejected, service expired")
		jsonError(w, http.StatusForbidden, "Este servicio ha expirado.")
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "Solicitud inválida.")
		return
	}

	for _, fecha := range []string{req.StartDate, req.EndDate} {
		if fecha == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", fecha); err != nil {
			jsonError(w, http.StatusBadRequest, "Fecha inválida, use el formato AAAA-MM-DD.")
			return
		}
	}

	maxRecords := secop2.DefaultMaxRecords
	if req.MaxRecords != "" {
		n, err := req.MaxRecords.Int64()
		if err != nil || n <= 0 {
			jsonError(w, http.StatusBadRequest, "El máximo de registros debe ser un entero positivo.")
			return
		}
		maxRecords = int(n)
	}

	filter := secop2.Filter{
		ProcessID:     req.ProcessID,
		Entity:        req.Entity,
		Department:    req.Department,
		City:          req.City,
		Modality:      req.Modality,
		Status:        req.Status,
		OpeningStatus: req.OpeningStatus,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
	}
	where := filter.Where()
	s.log().Info("query received", "where", where, "max", maxRecords)

	table, err := s.Client.Fetch(r.Context(), where, maxRecords)
	if err != nil {
		var httpErr *secop2.HTTPError
		if errors.As(err, &httpErr) {
			s.log().Error("upstream failure", "error", err)
			// Transport failures carry the request URL, predicate
			// included, in their detail; that stays in the log.
			msg := "Error al contactar la API de SECOP."
			if httpErr.StatusCode != 0 {
				msg = "Error al contactar la API de SECOP: " + httpErr.Body
			}
			jsonError(w, http.StatusBadGateway, msg)
			return
		}
		s.log().Error("fetch failure", "error", err)
		jsonError(w, http.StatusInternalServerError, "Ocurrió un error inesperado en el servidor.")
		return
	}

	if len(table.Rows) == 0 {
		s.log().Warn("no records matched", "where", where)
		jsonError(w, http.StatusNotFound, "No se encontraron registros con los filtros especificados.")
		return
	}

	bs, err := excel.ReportXLSX(table)
	if err != nil {
		s.log().Error("report rendering failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "Ocurrió un error inesperado en el servidor.")
		return
	}

	filename := fmt.Sprintf("secop2_reporte_%s.xlsx", now().Format("20060102_150405"))
	s.log().Info("sending report", "filename", filename, "rows", len(table.Rows))

	w.Header().Set("Content-Type", xlsxMIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(bs)))
	_, _ = w.Write(bs)
}

func (s *Server) log() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}

func jsonError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
