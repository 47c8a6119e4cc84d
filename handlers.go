package mockql

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/gorilla/schema"

	"github.com/broady/mockql/config"
)

var queryDecoder = schema.NewDecoder()

func init() {
	queryDecoder.IgnoreUnknownKeys(true)
}

const (
	replyOK             = "OK"
	replyInvalidPayload = "Invalid payload"
	replyReloadFailed   = "Reload failed"
)

func (a *App) handleReload(w http.ResponseWriter, r *http.Request) {
	a.limitBody(w, r)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		a.log().Warn("reload rejected", slog.Any("error", err))
		writeText(w, http.StatusBadRequest, replyInvalidPayload)
		return
	}

	err = a.reloader.Reload(r.Context(), body)
	switch {
	case err == nil:
		writeText(w, http.StatusOK, replyOK)
	case errors.Is(err, ErrInvalidPayload):
		a.log().Warn("reload rejected", slog.Any("error", err))
		writeText(w, http.StatusBadRequest, replyInvalidPayload)
	default:
		a.log().Error("reload failed", slog.Any("error", err))
		writeText(w, http.StatusInternalServerError, replyReloadFailed)
	}
}

func (a *App) handleQuery(w http.ResponseWriter, r *http.Request) {
	a.limitBody(w, r)

	var req QueryRequest
	if err := decodeBody(r.Body, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, a.transformError(err), a.logger)
			return
		}
		writeError(w, Errorf(CodeInvalidArgument, "malformed request body: %v", err), a.logger)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, NewError(CodeInvalidArgument, "missing query"), a.logger)
		return
	}

	result := a.store.Current().Execute(r.Context(), req)
	if err := writeJSON(w, http.StatusOK, result); err != nil {
		a.log().Error("failed to encode query result", slog.Any("error", err))
	}
}

// decodeBody decodes exactly one JSON value from body into v.
func decodeBody(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return err
		}
		return errors.New("unexpected data after JSON value")
	}
	return nil
}

type endpointsParams struct {
	Prefix string `schema:"prefix"`
}

func (a *App) handleEndpoints(w http.ResponseWriter, r *http.Request) {
	var params endpointsParams
	if err := queryDecoder.Decode(&params, r.URL.Query()); err != nil {
		writeError(w, Errorf(CodeInvalidArgument, "invalid query parameters: %v", err), a.logger)
		return
	}

	endpoints := a.store.Current().Endpoints()
	out := make([]config.Endpoint, 0, len(endpoints))
	for _, ep := range endpoints {
		if strings.HasPrefix(ep.Name, params.Prefix) {
			out = append(out, ep)
		}
	}
	if err := writeJSON(w, http.StatusOK, out); err != nil {
		a.log().Error("failed to encode endpoints", slog.Any("error", err))
	}
}

type schemaParams struct {
	Format string `schema:"format"`
}

func (a *App) handleSchema(w http.ResponseWriter, r *http.Request) {
	var params schemaParams
	if err := queryDecoder.Decode(&params, r.URL.Query()); err != nil {
		writeError(w, Errorf(CodeInvalidArgument, "invalid query parameters: %v", err), a.logger)
		return
	}

	snap := a.store.Current()
	switch params.Format {
	case "", "sdl":
		writeText(w, http.StatusOK, snap.SDL())
	case "json":
		if err := writeJSON(w, http.StatusOK, snap.Compiled()); err != nil {
			a.log().Error("failed to encode schema", slog.Any("error", err))
		}
	default:
		writeError(w, Errorf(CodeInvalidArgument, "unknown format %q", params.Format), a.logger)
	}
}

func (a *App) handlePlayground() http.HandlerFunc {
	return playground.Handler("mockql", a.queryPath)
}

type healthResponse struct {
	Status    string `json:"status"`
	Version   uint64 `json:"version"`
	Endpoints int    `json:"endpoints"`
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := a.store.Current()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Version:   snap.Version(),
		Endpoints: snap.Len(),
	})
}

func (a *App) handleREST(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, Errorf(CodeMethodNotAllowed, "method %s not allowed", r.Method), a.logger)
		return
	}
	body, ok := a.store.Current().Lookup(r.URL.Path)
	if !ok {
		writeError(w, Errorf(CodeNotFound, "no endpoint for %s", r.URL.Path), a.logger)
		return
	}
	if err := writeRawJSON(w, r, body); err != nil {
		a.log().Debug("failed to write response", slog.Any("error", err))
	}
}
