package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperr "github.com/matzehuels/lifeline/pkg/errors"
	"github.com/matzehuels/lifeline/pkg/pipeline"
	"github.com/matzehuels/lifeline/pkg/render/sink"
)

// Response headers.
const (
	WarningsHeader = "X-Lifeline-Warnings"
	CacheHeader    = "X-Lifeline-Cache"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	text, err := pipeline.ReadInput(r.Body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	scene, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), text, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := sink.RenderJSON(scene)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set(WarningsHeader, strconv.Itoa(len(scene.Warnings)))
	w.Header().Set(CacheHeader, cacheStatus(hit))
	w.Header().Set("Content-Type", pipeline.ContentType(pipeline.FormatJSON))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, apperr.Wrap(apperr.ErrCodeUnsupported, err, "unsupported format %q", format))
		return
	}
	opts, err := s.requestOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	filename := r.URL.Query().Get("filename")
	if filename != "" {
		if err := apperr.ValidatePath(filename); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	text, err := pipeline.ReadInput(r.Body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), text, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set(WarningsHeader, strconv.Itoa(res.Stats.SkippedLines))
	w.Header().Set(CacheHeader, cacheStatus(res.CacheInfo.RenderHit))
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	if filename != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+"."+pipeline.Extension(format)))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// requestOptions overlays query parameters on the server defaults.
func (s *Server) requestOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.cfg.Defaults
	opts.Logger = s.logger.With("request_id", RequestIDFromContext(r.Context()))

	q := r.URL.Query()
	if v := q.Get("title"); v != "" {
		opts.Title = v
	}
	if v := q.Get("subtitle"); v != "" {
		opts.Subtitle = v
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			return opts, apperr.New(apperr.ErrCodeInvalidInput, "scale must be a positive number, got %q", v)
		}
		opts.Scale = scale
	}
	for name, dst := range map[string]*bool{"detailed": &opts.Detailed, "allow_empty": &opts.AllowEmpty} {
		if v := q.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return opts, apperr.New(apperr.ErrCodeInvalidInput, "%s must be a boolean, got %q", name, v)
			}
			*dst = b
		}
	}
	if err := opts.ValidateForLayout(); err != nil {
		return opts, err
	}
	return opts, opts.ValidateForRender()
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.HTTPStatus(err)
	code := string(apperr.GetCode(err))
	msg := apperr.UserMessage(err)

	var target *apperr.Error
	if status == http.StatusInternalServerError || !errors.As(err, &target) {
		s.logger.Error("request failed", "err", err, "request_id", RequestIDFromContext(r.Context()))
		code, msg = string(apperr.ErrCodeInternal), "internal error"
	}
	writeJSONError(w, status, code, msg)
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
