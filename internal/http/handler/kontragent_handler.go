package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/straye-as/kontragent-api/internal/auth"
	"github.com/straye-as/kontragent-api/internal/domain"
	"github.com/straye-as/kontragent-api/internal/http/middleware"
	"github.com/straye-as/kontragent-api/internal/logger"
	"github.com/straye-as/kontragent-api/internal/mapper"
	"github.com/straye-as/kontragent-api/internal/service"
	"go.uber.org/zap"
)

const maxMultipartMemory = 32 << 20

// KontragentHandler exposes the action dispatcher over HTTP
type KontragentHandler struct {
	dispatcher     *service.Dispatcher
	defaultActorID int64
	logger         *zap.Logger
}

// NewKontragentHandler creates a new kontragent handler
func NewKontragentHandler(dispatcher *service.Dispatcher, defaultActorID int64, logger *zap.Logger) *KontragentHandler {
	return &KontragentHandler{
		dispatcher:     dispatcher,
		defaultActorID: defaultActorID,
		logger:         logger,
	}
}

// Handle runs the requested action and always answers 200 with the envelope
func (h *KontragentHandler) Handle(w http.ResponseWriter, r *http.Request) {
	in, err := readParams(r)
	if err != nil {
		logger.WithRequest(h.logger, r.Method, r.URL.Path, r.Header.Get(middleware.RequestIDHeader)).
			Warn("Failed to read request input", zap.Error(err))
		in = mapper.Params{}
	}

	actorID := auth.ActorID(r.Context(), h.defaultActorID)
	env := h.dispatcher.Dispatch(r.Context(), actorID, in)
	if !env.Success {
		logger.WithAction(h.logger, in.String("action"), actorID).
			Debug("Action failed", zap.String("message", env.Message))
	}
	respondJSON(w, http.StatusOK, env)
}

// readParams merges the query string with the url-encoded or multipart form.
// When both are empty and the body is JSON, the decoded body object is the input.
func readParams(r *http.Request) (mapper.Params, error) {
	mediaType := ""
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mediaType, _, _ = mime.ParseMediaType(ct)
	}

	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(maxMultipartMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return nil, err
	}

	in := mapper.Params{}
	for key, values := range r.Form {
		switch len(values) {
		case 0:
		case 1:
			in[key] = values[0]
		default:
			list := make([]interface{}, len(values))
			for i, v := range values {
				list[i] = v
			}
			in[key] = list
		}
	}
	if len(in) > 0 || r.Body == nil || !strings.HasSuffix(mediaType, "json") {
		return in, nil
	}

	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	var body map[string]interface{}
	if err := decoder.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return in, nil
		}
		return in, err
	}
	return mapper.Params(body), nil
}

// NotFound answers requests outside the action endpoint with a failure envelope
func (h *KontragentHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusNotFound, domain.Fail("Not found: "+r.URL.Path))
}
