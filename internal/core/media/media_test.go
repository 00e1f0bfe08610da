// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package media_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setrini/inmobiliaria/internal/core/media"
	"github.com/setrini/inmobiliaria/internal/platform/apperr"
	"github.com/setrini/inmobiliaria/internal/platform/constants"
	"github.com/setrini/inmobiliaria/internal/platform/metrics"
)

var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)
	jpegBytes = append([]byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"), make([]byte, 32)...)
)

type storedObject struct {
	key         string
	contentType string
	size        int64
	body        []byte
}

type fakeStorage struct {
	mu      sync.Mutex
	objects []storedObject
	err     error
}

func (storage *fakeStorage) Put(_ context.Context, key string, body io.Reader, size int64, contentType string) error {
	if storage.err != nil {
		return storage.err
	}
	content, _ := io.ReadAll(body)

	storage.mu.Lock()
	defer storage.mu.Unlock()
	storage.objects = append(storage.objects, storedObject{key: key, contentType: contentType, size: size, body: content})
	return nil
}

func (storage *fakeStorage) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func newService(storage media.Storage) *media.Service {
	return media.NewService(storage, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func status(err error) int {
	if appErr := apperr.As(err); appErr != nil {
		return appErr.HTTPStatus
	}
	return 0
}

/*
TestObjectKey sanitizes the client filename and keeps the detected extension.
*/
func TestObjectKey(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"Frente Casa Bernal.JPG", "properties/id-frente-casa-bernal.jpg"},
		{`C:\fotos\Living Comedor.jpeg`, "properties/id-living-comedor.jpg"},
		{"../../etc/passwd", "properties/id-passwd.jpg"},
		{"", "properties/id-imagen.jpg"},
		{"ñ.png", "properties/id-n.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, media.ObjectKey("id", tt.filename, "jpg"))
		})
	}
}

/*
TestService_Upload stores sniffed images under the listing prefix.
*/
func TestService_Upload(t *testing.T) {
	storage := &fakeStorage{}
	service := newService(storage)
	before := testutil.ToFloat64(metrics.UploadsTotal.WithLabelValues(metrics.ResultSuccess))

	upload, err := service.Upload(context.Background(), "fachada.jpg", pngBytes)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(upload.Key, constants.UploadKeyPrefix))
	assert.True(t, strings.HasSuffix(upload.Key, "-fachada.png"), upload.Key)
	assert.Equal(t, "https://cdn.example.com/"+upload.Key, upload.PublicURL)
	assert.Equal(t, "image/png", upload.ContentType)

	require.Len(t, storage.objects, 1)
	assert.Equal(t, "image/png", storage.objects[0].contentType)
	assert.Equal(t, int64(len(pngBytes)), storage.objects[0].size)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.UploadsTotal.WithLabelValues(metrics.ResultSuccess)))
}

/*
TestService_Upload_Rejections covers each rejection status.
*/
func TestService_Upload_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		storage media.Storage
		content []byte
		want    int
	}{
		{"not_an_image", &fakeStorage{}, []byte("hola, esto es texto"), http.StatusUnsupportedMediaType},
		{"empty", &fakeStorage{}, nil, http.StatusBadRequest},
		{"too_large", &fakeStorage{}, make([]byte, constants.MaxUploadBytes+1), http.StatusRequestEntityTooLarge},
		{"storage_disabled", nil, jpegBytes, http.StatusServiceUnavailable},
		{"storage_failure", &fakeStorage{err: errors.New("access denied")}, jpegBytes, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newService(tt.storage).Upload(context.Background(), "x.jpg", tt.content)
			assert.Equal(t, tt.want, status(err))
		})
	}
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, form.Close())

	request := httptest.NewRequest(http.MethodPost, "/uploads", &body)
	request.Header.Set("Content-Type", form.FormDataContentType())
	return request
}

/*
TestHandler_Upload returns 201 with the public URL.
*/
func TestHandler_Upload(t *testing.T) {
	router := chi.NewRouter()
	router.Route("/uploads", media.NewHandler(newService(&fakeStorage{})).RegisterAdminRoutes)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, multipartRequest(t, "file", "living.jpg", jpegBytes))
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var body struct {
		Data media.Upload `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.True(t, strings.HasSuffix(body.Data.Key, "-living.jpg"))
	assert.NotEmpty(t, body.Data.PublicURL)
}

/*
TestHandler_Upload_MissingField answers 400 without a "file" part.
*/
func TestHandler_Upload_MissingField(t *testing.T) {
	router := chi.NewRouter()
	router.Route("/uploads", media.NewHandler(newService(&fakeStorage{})).RegisterAdminRoutes)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, multipartRequest(t, "image", "living.jpg", jpegBytes))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
