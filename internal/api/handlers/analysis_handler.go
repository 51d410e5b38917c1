package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/markdave123-py/postlens/internal/core/ingestion_engine"
	"github.com/markdave123-py/postlens/internal/models"
)

// Messages returned to clients. Internal causes are logged, never returned.
const (
	MsgNoFile      = "No file was uploaded."
	MsgUnsupported = "Unsupported file type."
	MsgTooLarge    = "File is too large."
	MsgServerError = "Server error during file processing."
	MsgTimeout     = "Request timed out."
)

// FileField is the multipart field carrying the upload.
const FileField = "file"

const multipartMemory = 8 << 20

type AnalysisHandler struct {
	ingestor ingestion_engine.Ingestor
	logger   *slog.Logger
}

func NewAnalysisHandler(ing ingestion_engine.Ingestor, logger *slog.Logger) *AnalysisHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisHandler{ingestor: ing, logger: logger}
}

// Upload handles one multipart file: extract text, then suggest improvements.
func (h *AnalysisHandler) Upload(w http.ResponseWriter, r *http.Request) {
	log := h.logger.With("request_id", middleware.GetReqID(r.Context()))

	payload, err := readPayload(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Warn("upload rejected", "error", err, "limit", tooLarge.Limit)
			WriteError(w, http.StatusRequestEntityTooLarge, MsgTooLarge)
			return
		}
		log.Error("reading upload failed", "error", err)
		WriteError(w, http.StatusBadRequest, MsgNoFile)
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	resp, err := h.ingestor.Process(r.Context(), payload)
	if err != nil {
		status, msg := classifyError(err)
		if errors.Is(r.Context().Err(), context.DeadlineExceeded) {
			status, msg = http.StatusGatewayTimeout, MsgTimeout
		}
		if status >= http.StatusInternalServerError {
			log.Error("error processing file", "error", err)
		} else {
			log.Info("upload rejected", "error", err)
		}
		WriteError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// classifyError maps pipeline errors onto a status and a stable client message.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, ingestion_engine.ErrNoFileProvided):
		return http.StatusBadRequest, MsgNoFile
	case errors.Is(err, ingestion_engine.ErrUnsupportedContentType):
		return http.StatusUnsupportedMediaType, MsgUnsupported
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, MsgTimeout
	default:
		return http.StatusInternalServerError, MsgServerError
	}
}

// readPayload returns nil, nil when the request carries no file.
func readPayload(r *http.Request) (*models.UploadPayload, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse multipart: %w", err)
	}

	file, header, err := r.FormFile(FileField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("form file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &models.UploadPayload{
		Data:        data,
		ContentType: contentType,
		Filename:    filepath.Base(header.Filename),
	}, nil
}
