package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/postlens/internal/core"
	"github.com/markdave123-py/postlens/internal/core/ingestion_engine"
	"github.com/markdave123-py/postlens/internal/models"
)

type stubExtractor struct {
	text  string
	err   error
	calls atomic.Int32
}

func (s *stubExtractor) Extract(context.Context, []byte) (string, error) {
	s.calls.Add(1)
	return s.text, s.err
}

type stubSuggester struct {
	out   string
	err   error
	calls atomic.Int32
	last  atomic.Value
}

func (s *stubSuggester) Suggest(_ context.Context, text string) (string, error) {
	s.calls.Add(1)
	s.last.Store(text)
	return s.out, s.err
}

type fixture struct {
	pdf     *stubExtractor
	img     *stubExtractor
	sug     *stubSuggester
	handler *AnalysisHandler
}

func newFixture() *fixture {
	f := &fixture{pdf: &stubExtractor{}, img: &stubExtractor{}, sug: &stubSuggester{}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ing := ingestion_engine.NewDocumentIngestor(ingestion_engine.Extractors{
		core.FamilyPDF:   f.pdf,
		core.FamilyImage: f.img,
	}, f.sug, logger)
	f.handler = NewAnalysisHandler(ing, logger)
	return f
}

func multipartBody(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return body, mw.FormDataContentType()
}

func (f *fixture) upload(t *testing.T, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	f.handler.Upload(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestUpload_PDFSuccess(t *testing.T) {
	f := newFixture()
	f.pdf.text = "Hello world"
	f.sug.out = "- Ask your audience a question"

	body, ct := multipartBody(t, FileField, "post.pdf", "application/pdf", []byte("%PDF-1.4"))
	rec := f.upload(t, body, ct)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, models.AnalysisResponse{
		Text:        "Hello world",
		Suggestions: "- Ask your audience a question",
	}, decode[models.AnalysisResponse](t, rec))
	assert.EqualValues(t, 1, f.sug.calls.Load())
	assert.Equal(t, "Hello world", f.sug.last.Load())
}

func TestUpload_BlankImage(t *testing.T) {
	f := newFixture()
	f.img.text = ""

	body, ct := multipartBody(t, FileField, "blank.png", "image/png", []byte{0x89, 'P', 'N', 'G'})
	rec := f.upload(t, body, ct)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.AnalysisResponse{
		Text:        ingestion_engine.NoTextExtracted,
		Suggestions: ingestion_engine.NoAnalysisAvailable,
	}, decode[models.AnalysisResponse](t, rec))
	assert.EqualValues(t, 1, f.img.calls.Load())
	assert.EqualValues(t, 0, f.sug.calls.Load())
}

func TestUpload_SuggestionOutage(t *testing.T) {
	f := newFixture()
	f.pdf.text = "Buy now"
	f.sug.err = errors.New("resource exhausted")

	body, ct := multipartBody(t, FileField, "ad.pdf", "application/pdf", []byte("%PDF-1.4"))
	rec := f.upload(t, body, ct)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.AnalysisResponse{
		Text:        "Buy now",
		Suggestions: ingestion_engine.SuggestionFallback,
	}, decode[models.AnalysisResponse](t, rec))
}

func TestUpload_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		build      func(t *testing.T) (io.Reader, string)
		wantStatus int
		wantError  string
	}{
		{
			name: "unsupported type",
			build: func(t *testing.T) (io.Reader, string) {
				return multipartBody(t, FileField, "archive.zip", "application/zip", []byte("PK"))
			},
			wantStatus: http.StatusUnsupportedMediaType,
			wantError:  MsgUnsupported,
		},
		{
			name: "part without content type",
			build: func(t *testing.T) (io.Reader, string) {
				return multipartBody(t, FileField, "mystery", "", []byte("??"))
			},
			wantStatus: http.StatusUnsupportedMediaType,
			wantError:  MsgUnsupported,
		},
		{
			name: "wrong field name",
			build: func(t *testing.T) (io.Reader, string) {
				return multipartBody(t, "document", "post.pdf", "application/pdf", []byte("%PDF"))
			},
			wantStatus: http.StatusBadRequest,
			wantError:  MsgNoFile,
		},
		{
			name: "not multipart",
			build: func(t *testing.T) (io.Reader, string) {
				return strings.NewReader(`{"file": "x"}`), "application/json"
			},
			wantStatus: http.StatusBadRequest,
			wantError:  MsgNoFile,
		},
		{
			name: "no body",
			build: func(t *testing.T) (io.Reader, string) {
				return http.NoBody, ""
			},
			wantStatus: http.StatusBadRequest,
			wantError:  MsgNoFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			body, ct := tt.build(t)
			rec := f.upload(t, body, ct)

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantError, decode[models.ErrorResponse](t, rec).Error)
			assert.EqualValues(t, 0, f.pdf.calls.Load()+f.img.calls.Load())
			assert.EqualValues(t, 0, f.sug.calls.Load())
		})
	}
}

func TestUpload_ExtractionFailureHidesCause(t *testing.T) {
	f := newFixture()
	f.pdf.err = errors.New("malformed xref at offset 1337")

	body, ct := multipartBody(t, FileField, "broken.pdf", "application/pdf", []byte("%PDF-1.4"))
	rec := f.upload(t, body, ct)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, MsgServerError, decode[models.ErrorResponse](t, rec).Error)
	assert.NotContains(t, rec.Body.String(), "xref")
	assert.EqualValues(t, 0, f.sug.calls.Load())
}

func TestUpload_TooLarge(t *testing.T) {
	f := newFixture()
	f.pdf.text = "unused"

	body, ct := multipartBody(t, FileField, "big.pdf", "application/pdf", bytes.Repeat([]byte("a"), 4096))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(rec, req.Body, 1024)

	f.handler.Upload(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, MsgTooLarge, decode[models.ErrorResponse](t, rec).Error)
	assert.EqualValues(t, 0, f.pdf.calls.Load())
}

func TestUpload_DeadlineDuringExtraction(t *testing.T) {
	f := newFixture()
	f.pdf.err = fmt.Errorf("docconv: %w", context.DeadlineExceeded)

	body, ct := multipartBody(t, FileField, "slow.pdf", "application/pdf", []byte("%PDF-1.4"))
	rec := f.upload(t, body, ct)

	require.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Equal(t, MsgTimeout, decode[models.ErrorResponse](t, rec).Error)
	assert.EqualValues(t, 0, f.sug.calls.Load())
}

func TestUpload_RequestContextExpired(t *testing.T) {
	f := newFixture()
	f.pdf.err = errors.New("pdftotext: signal: killed")

	body, ct := multipartBody(t, FileField, "slow.pdf", "application/pdf", []byte("%PDF-1.4"))
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body).WithContext(ctx)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	f.handler.Upload(rec, req)

	require.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Equal(t, MsgTimeout, decode[models.ErrorResponse](t, rec).Error)
}

func TestClassifyError(t *testing.T) {
	status, msg := classifyError(fmt.Errorf("wrapped: %w", ingestion_engine.ErrUnsupportedContentType))
	assert.Equal(t, http.StatusUnsupportedMediaType, status)
	assert.Equal(t, MsgUnsupported, msg)

	status, msg = classifyError(&ingestion_engine.ExtractionError{Family: core.FamilyImage, Cause: errors.New("leptonica")})
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, MsgServerError, msg)

	status, msg = classifyError(&ingestion_engine.ExtractionError{Family: core.FamilyPDF, Cause: context.DeadlineExceeded})
	assert.Equal(t, http.StatusGatewayTimeout, status)
	assert.Equal(t, MsgTimeout, msg)

	status, _ = classifyError(ingestion_engine.ErrNoFileProvided)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"status": "ok"}, decode[map[string]string](t, rec))
}
