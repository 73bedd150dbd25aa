package recommend

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"bookshelf/internal/httpx"
	"bookshelf/internal/session"
)

// HTTPHandler exposes the two recommendation flows over the presentation
// boundary.
type HTTPHandler struct {
	orchestrator *Orchestrator
	builder      *Builder
	sessions     *session.Manager
	logger       zerolog.Logger
}

func NewHTTPHandler(orchestrator *Orchestrator, builder *Builder, sessions *session.Manager, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		orchestrator: orchestrator,
		builder:      builder,
		sessions:     sessions,
		logger:       logger.With().Str("component", "recommend_handler").Logger(),
	}
}

// Summarize handles POST /summaries (flow A). The reference book is the
// first result of the session's last non-empty search.
func (h *HTTPHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	state := h.state(r)

	ref, err := state.BeginSummary()
	if err != nil {
		httpx.JSONError(w, http.StatusConflict, httpx.CodeBadRequest,
			"Search for a book first, then request a summary.", nil)
		return
	}

	result, err := h.orchestrator.Summarize(r.Context(), ref)
	if err != nil {
		state.EndSummary(false)
		state.AddBanner(session.BannerError, "The summary service is unavailable right now. Your library is unaffected.")
		h.respondExternalError(w, err)
		return
	}

	state.EndSummary(true)
	httpx.JSONSuccess(r, w, map[string]string{
		"title":   ref.Title,
		"author":  ref.Author,
		"summary": result,
	})
}

// Recommend handles POST /recommendations (flow B). Validation runs on
// every submission; all violations are reported together and retained on
// the session until the next attempt.
func (h *HTTPHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	state := h.state(r)

	var raw RawPreferences
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid JSON body", nil)
		return
	}

	req, err := h.builder.BuildRequest(raw)
	if err != nil {
		var violations ValidationErrors
		if errors.As(err, &violations) {
			state.RecordValidationFailure(violations)
			httpx.JSONError(w, http.StatusUnprocessableEntity, httpx.CodeValidationError,
				violations.Error(), toValidationDetails(violations))
			return
		}
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeBadRequest, err.Error(), nil)
		return
	}
	state.RecordValidated()

	if err := state.BeginRecommend(); err != nil {
		httpx.JSONError(w, http.StatusConflict, httpx.CodeBadRequest, err.Error(), nil)
		return
	}

	text, err := h.orchestrator.Recommend(r.Context(), req)
	if err != nil {
		state.EndRecommend(false)
		state.AddBanner(session.BannerError, "The recommendation service is unavailable right now. Your library is unaffected.")
		h.respondExternalError(w, err)
		return
	}

	state.EndRecommend(true)
	httpx.JSONSuccess(r, w, map[string]string{"recommendations": text})
}

// Banners handles GET /session/banners: one-shot notifications, cleared by
// this read.
func (h *HTTPHandler) Banners(w http.ResponseWriter, r *http.Request) {
	banners := h.state(r).TakeBanners()
	if banners == nil {
		banners = []session.Banner{}
	}
	httpx.JSONSuccess(r, w, banners)
}

func (h *HTTPHandler) respondExternalError(w http.ResponseWriter, err error) {
	var extErr *ExternalServiceError
	if errors.As(err, &extErr) {
		httpx.JSONError(w, http.StatusBadGateway, httpx.CodeExternalService,
			extErr.Service+" service failed", nil)
		return
	}
	httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, "unexpected error", nil)
}

func (h *HTTPHandler) state(r *http.Request) *session.State {
	return h.sessions.Get(httpx.SessionIDFrom(r))
}

func toValidationDetails(violations ValidationErrors) []httpx.ErrorDetail {
	out := make([]httpx.ErrorDetail, len(violations))
	for i, msg := range violations {
		out[i] = httpx.ErrorDetail{Message: msg}
	}
	return out
}
