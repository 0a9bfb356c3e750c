package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime"
	"net/http"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// handleAnalyze analyzes one resume. Accepts either a multipart upload
// (file + job_title) or a JSON AnalyzeRequest.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload+1<<20)

	req, err := s.decodeAnalyzeRequest(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	result, err := s.engine.Analyze(r.Context(), req)
	if err != nil {
		status := HTTPStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("Analysis failed: %v", err)
			s.errorResponse(w, status, "analysis failed")
			return
		}
		s.errorResponse(w, status, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) decodeAnalyzeRequest(r *http.Request) (types.AnalyzeRequest, error) {
	contentType := r.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return types.AnalyzeRequest{}, &ErrUnsupportedMediaType{ContentType: contentType}
	}

	switch mediaType {
	case "application/json":
		var req types.AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				return req, err
			}
			return req, &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
		}
		return req, nil
	case "multipart/form-data":
		return s.decodeUpload(r)
	default:
		return types.AnalyzeRequest{}, &ErrUnsupportedMediaType{ContentType: contentType}
	}
}

func (s *Server) decodeUpload(r *http.Request) (types.AnalyzeRequest, error) {
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return types.AnalyzeRequest{}, err
		}
		return types.AnalyzeRequest{}, &ErrValidation{Field: "body", Message: "invalid multipart form: " + err.Error()}
	}

	req := types.AnalyzeRequest{JobTitle: r.FormValue("job_title")}

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			// a pasted text field is accepted in place of a file
			req.DocumentText = r.FormValue("document_text")
			if req.DocumentText == "" {
				return req, &ErrValidation{Field: "file", Message: "a resume file is required"}
			}
			return req, nil
		}
		return req, &ErrValidation{Field: "file", Message: err.Error()}
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, s.maxUpload+1))
	if err != nil {
		return req, &ErrValidation{Field: "file", Message: "failed to read upload: " + err.Error()}
	}
	if int64(len(data)) > s.maxUpload {
		return req, &http.MaxBytesError{Limit: s.maxUpload}
	}

	text, _, err := ingestion.ExtractText(header.Filename, data)
	if err != nil {
		return req, err
	}
	req.DocumentText = text
	return req, nil
}

// handleSkills lists the active skill dictionary
func (s *Server) handleSkills(w http.ResponseWriter, _ *http.Request) {
	dict := s.engine.Dictionary()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"count":  dict.Len(),
		"skills": dict.Names(),
	})
}
