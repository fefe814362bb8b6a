// Package server exposes the forms API: submission intake, draft storage and
// operational endpoints.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xeipuuv/gojsonschema"

	"admissions-forms/internal/catalogue"
	"admissions-forms/internal/common/database"
	stderrors "admissions-forms/internal/common/errors"
	"admissions-forms/internal/common/logger"
	"admissions-forms/internal/common/observability"
	"admissions-forms/internal/forms/draft"
	"admissions-forms/internal/forms/schema"
	"admissions-forms/internal/mailer"
)

const (
	maxBodyBytes = 1 << 20 // 1 MiB

	// draftKeyHeader carries the anonymous per-browser draft identity.
	draftKeyHeader = "X-Draft-Key"
)

// requestSchema rejects structurally malformed envelopes before any field
// level validation runs, so handlers only ever see the two expected keys.
var requestSchema = gojsonschema.NewStringLoader(`{
	"type": "object",
	"required": ["formType", "data"],
	"additionalProperties": false,
	"properties": {
		"formType": {"type": "string", "minLength": 1},
		"data": {"type": "object"}
	}
}`)

// Options configure the server.
type Options struct {
	Logger         logger.Logger
	Mailer         mailer.Mailer
	Redis          *database.RedisClient
	Catalogue      *catalogue.Catalogue
	RecipientEmail string
	FromEmail      string
	AllowedOrigin  string
	DraftTTL       time.Duration
	AppName        string
	AppVersion     string
}

// Server handles the forms HTTP API.
type Server struct {
	log        logger.Logger
	mailer     mailer.Mailer
	redis      *database.RedisClient
	cat        *catalogue.Catalogue
	recipient  string
	from       string
	origin     string
	draftTTL   time.Duration
	appName    string
	appVersion string
}

func New(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	cat := opts.Catalogue
	if cat == nil {
		cat = catalogue.Default()
	}
	return &Server{
		log:        log,
		mailer:     opts.Mailer,
		redis:      opts.Redis,
		cat:        cat,
		recipient:  opts.RecipientEmail,
		from:       opts.FromEmail,
		origin:     opts.AllowedOrigin,
		draftTTL:   opts.DraftTTL,
		appName:    opts.AppName,
		appVersion: opts.AppVersion,
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/forms", s.handleSubmit)
	mux.HandleFunc("/api/forms/draft", s.handleDraft)
	mux.HandleFunc("/api/programmes", s.handleProgrammes)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// submitResponse is the wire shape shared with the submission client.
type submitResponse struct {
	Success     bool              `json:"success"`
	Message     string            `json:"message,omitempty"`
	Error       string            `json:"error,omitempty"`
	FieldErrors map[string]string `json:"details,omitempty"`
	EmailID     string            `json:"emailId,omitempty"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	s.setCORS(w)
	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodPost:
	default:
		w.Header().Set("Allow", "POST, OPTIONS")
		s.writeJSON(w, http.StatusMethodNotAllowed, submitResponse{
			Error: "Method not allowed",
		})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.reject(w, "unknown", http.StatusBadRequest, stderrors.NewRequestParsingFailedError(err), nil)
		return
	}

	if result, err := gojsonschema.Validate(requestSchema, gojsonschema.NewBytesLoader(body)); err != nil || !result.Valid() {
		if err == nil {
			err = envelopeError(result)
		}
		s.reject(w, "unknown", http.StatusBadRequest, stderrors.NewRequestParsingFailedError(err), nil)
		return
	}

	var req struct {
		FormType string         `json:"formType"`
		Data     map[string]any `json:"data"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		s.reject(w, "unknown", http.StatusBadRequest, stderrors.NewRequestParsingFailedError(err), nil)
		return
	}

	observability.SubmissionsReceived.WithLabelValues(req.FormType).Inc()
	log := s.log.WithFields(map[string]interface{}{"formType": req.FormType})

	formSchema, ok := schema.ByName(req.FormType)
	if !ok {
		s.reject(w, req.FormType, http.StatusBadRequest, stderrors.NewInvalidFormTypeError(req.FormType), nil)
		return
	}

	data, fieldErrs := schema.Validate(formSchema, schema.RawData(req.Data))
	if len(fieldErrs) > 0 {
		log.Warn("submission failed validation", map[string]interface{}{"errorCount": len(fieldErrs)})
		s.reject(w, req.FormType, http.StatusBadRequest, stderrors.NewValidationFailedError(len(fieldErrs)), fieldErrs)
		return
	}

	msg := &mailer.Message{
		From:    s.from,
		To:      []string{s.recipient},
		ReplyTo: mailer.ApplicantEmail(data),
		Subject: mailer.Subject(formSchema, data),
		HTML:    mailer.RenderSubmission(formSchema, data),
	}

	timer := time.Now()
	emailID, err := s.mailer.Send(r.Context(), msg)
	observability.EmailDispatchDuration.WithLabelValues(req.FormType).Observe(time.Since(timer).Seconds())
	if err != nil {
		// Provider details stay in the logs; the applicant sees a generic
		// failure message only.
		log.WithError(err).Error("email dispatch failed", nil)
		s.reject(w, req.FormType, http.StatusInternalServerError, stderrors.NewEmailDispatchFailedError(err), nil)
		return
	}

	observability.SubmissionsAccepted.WithLabelValues(req.FormType).Inc()
	log.Info("submission accepted", map[string]interface{}{"emailId": emailID})
	s.writeJSON(w, http.StatusOK, submitResponse{
		Success: true,
		Message: "Application submitted successfully",
		EmailID: emailID,
	})
}

// handleDraft stores server-side draft copies keyed by an opaque browser
// token, so applicants can resume on another device.
func (s *Server) handleDraft(w http.ResponseWriter, r *http.Request) {
	s.setCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	key := r.Header.Get(draftKeyHeader)
	if key == "" {
		s.writeJSON(w, http.StatusBadRequest, submitResponse{Error: "Missing " + draftKeyHeader + " header"})
		return
	}
	store := draft.NewRedisStore(s.redis, "forms:draft:"+key, schema.MainApplication().Version, s.draftTTL)

	switch r.Method {
	case http.MethodGet:
		data, err := store.Load(r.Context())
		if err != nil {
			s.writeJSON(w, http.StatusInternalServerError, submitResponse{Error: "Failed to load draft"})
			return
		}
		if data == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		s.writeJSON(w, http.StatusOK, data)

	case http.MethodPut:
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			s.writeJSON(w, http.StatusBadRequest, submitResponse{Error: "Invalid request format"})
			return
		}
		var data schema.FormData
		if err := json.Unmarshal(body, &data); err != nil {
			s.writeJSON(w, http.StatusBadRequest, submitResponse{Error: "Invalid request format"})
			return
		}
		if err := store.Save(r.Context(), data); err != nil {
			s.writeJSON(w, http.StatusInternalServerError, submitResponse{Error: "Failed to save draft"})
			return
		}
		s.writeJSON(w, http.StatusOK, submitResponse{Success: true})

	case http.MethodDelete:
		if err := store.Clear(r.Context()); err != nil {
			s.writeJSON(w, http.StatusInternalServerError, submitResponse{Error: "Failed to delete draft"})
			return
		}
		s.writeJSON(w, http.StatusOK, submitResponse{Success: true})

	default:
		w.Header().Set("Allow", "GET, PUT, DELETE, OPTIONS")
		s.writeJSON(w, http.StatusMethodNotAllowed, submitResponse{Error: "Method not allowed"})
	}
}

// handleProgrammes serves the option source for the Programme Info step:
// the full records for pickers, the title list for the free-text programme
// datalist and the distinct levels for the level dropdown.
func (s *Server) handleProgrammes(w http.ResponseWriter, r *http.Request) {
	s.setCORS(w)
	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		s.writeJSON(w, http.StatusOK, map[string]any{
			"programmes": s.cat.Programmes,
			"titles":     s.cat.Titles(),
			"levels":     s.cat.Levels(),
		})
	default:
		w.Header().Set("Allow", "GET, OPTIONS")
		s.writeJSON(w, http.StatusMethodNotAllowed, submitResponse{Error: "Method not allowed"})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if err := s.redis.Ping(r.Context()); err != nil {
		s.log.Warn("health check redis ping failed", map[string]interface{}{"error": err})
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	s.writeJSON(w, code, map[string]string{
		"status":  status,
		"app":     s.appName,
		"version": s.appVersion,
	})
}

// reject counts the rejection, then writes the error response. Field errors
// are included only when present so the client can distinguish envelope
// errors from per-field validation failures.
func (s *Server) reject(w http.ResponseWriter, formType string, code int, stdErr *stderrors.StandardError, fieldErrs schema.FieldErrors) {
	observability.SubmissionsRejected.WithLabelValues(formType, string(stdErr.Code)).Inc()
	s.writeJSON(w, code, submitResponse{
		Error:       stdErr.Message,
		FieldErrors: fieldErrs,
	})
}

func (s *Server) setCORS(w http.ResponseWriter) {
	origin := s.origin
	if origin == "" {
		origin = "*"
	}
	w.Header().Set("Access-Control-Allow-Origin", origin)
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+draftKeyHeader)
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("response encoding failed", map[string]interface{}{"error": err})
	}
}

func envelopeError(result *gojsonschema.Result) error {
	if errs := result.Errors(); len(errs) > 0 {
		return errors.New(errs[0].String())
	}
	return errors.New("invalid request envelope")
}
