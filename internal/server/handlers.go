package server

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/anchorsmith/anchorsmith/pkg/errors"
	"github.com/anchorsmith/anchorsmith/pkg/flow"
	"github.com/anchorsmith/anchorsmith/pkg/graphio"
	"github.com/anchorsmith/anchorsmith/pkg/lower"
	"github.com/anchorsmith/anchorsmith/pkg/pipeline"
)

// compileRequest is the body of all compile endpoints.
type compileRequest struct {
	Graph   flow.Graph       `json:"graph"`
	Options pipeline.Options `json:"options"`
}

// errorResponse is the canonical error body.
type errorResponse struct {
	Error string         `json:"error"`
	Code  apperrors.Code `json:"code"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleValidate checks every connection and reports issues without
// generating anything.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	issues := pipeline.ValidateGraph(req.Graph)
	writeJSON(w, http.StatusOK, map[string]any{
		"graph_hash": pipeline.GraphHash(req.Graph),
		"is_valid":   len(issues) == 0,
		"issues":     issues,
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	analysis, hit, err := s.runner.AnalyzeWithCacheInfo(r.Context(), req.Graph, req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"graph_hash": pipeline.GraphHash(req.Graph),
		"analysis":   analysis,
		"cached":     hit,
	})
}

// handleGenerate lowers the graph into the full bundle. With ?file=
// the response is the raw content of that single artifact file instead
// of the JSON bundle.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	artifact, hit, err := s.runner.GenerateWithCacheInfo(r.Context(), req.Graph, req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if name := r.URL.Query().Get("file"); name != "" {
		s.writeArtifactFile(w, artifact, name)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"graph_hash": pipeline.GraphHash(req.Graph),
		"issues":     pipeline.ValidateGraph(req.Graph),
		"artifact":   artifact,
		"cached":     hit,
	})
}

// handlePreview renders the graph diagram. A single requested format is
// returned raw with its content type; multiple formats come back as a
// JSON object of base64 blobs (encoding/json encodes []byte that way).
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	if len(req.Options.Formats) == 0 {
		req.Options.Formats = []string{pipeline.FormatSVG}
	}

	previews, _, err := s.runner.RenderPreviewWithCacheInfo(r.Context(), req.Graph, req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if len(req.Options.Formats) == 1 {
		format := req.Options.Formats[0]
		switch format {
		case pipeline.FormatSVG:
			w.Header().Set("Content-Type", "image/svg+xml")
		case pipeline.FormatDOT:
			w.Header().Set("Content-Type", "text/vnd.graphviz")
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(previews[format])
		return
	}

	writeJSON(w, http.StatusOK, previews)
}

// decodeRequest parses the body and applies the graph size guard.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (compileRequest, bool) {
	var req compileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request body"))
		return req, false
	}
	graphio.BackfillConnectionIDs(&req.Graph)

	if err := apperrors.ValidateGraphSize(len(req.Graph.Nodes), len(req.Graph.Connections), s.cfg.maxNodes(), s.cfg.maxEdges()); err != nil {
		s.writeError(w, err)
		return req, false
	}
	return req, true
}

func (s *Server) writeArtifactFile(w http.ResponseWriter, artifact *lower.Artifact, name string) {
	if err := apperrors.ValidateArtifactFilename(name); err != nil {
		s.writeError(w, err)
		return
	}
	f, ok := artifact.File(name)
	if !ok {
		s.writeError(w, apperrors.New(apperrors.ErrCodeFileNotFound, "no artifact file %q", name))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(f.Content))
}

// writeError maps error codes onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidGraph,
		apperrors.ErrCodeInvalidProgramName, apperrors.ErrCodeInvalidArtifact,
		apperrors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case apperrors.ErrCodeGraphTooLarge:
		status = http.StatusRequestEntityTooLarge
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeFileNotFound,
		apperrors.ErrCodeNodeNotFound, apperrors.ErrCodePortNotFound:
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Error: apperrors.UserMessage(err), Code: apperrors.GetCode(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
