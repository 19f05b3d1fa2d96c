package upload_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/Lelo88/menu-api-golang/internal/httpx"
	"github.com/Lelo88/menu-api-golang/internal/media"
	"github.com/Lelo88/menu-api-golang/internal/upload"
)

type stubStore struct {
	uploadFn func(ctx context.Context, content io.Reader, options media.UploadOptions) (media.Asset, error)

	uploadCalled  bool
	uploadOptions media.UploadOptions
	uploadContent []byte
}

func (store *stubStore) Upload(ctx context.Context, content io.Reader, options media.UploadOptions) (media.Asset, error) {
	store.uploadCalled = true
	store.uploadOptions = options
	data, err := io.ReadAll(content)
	if err != nil {
		return media.Asset{}, err
	}
	store.uploadContent = data
	if store.uploadFn != nil {
		return store.uploadFn(ctx, content, options)
	}
	return media.Asset{}, nil
}

func (store *stubStore) Destroy(ctx context.Context, publicID string) error {
	return errors.New("unexpected Destroy call")
}

// multipartBody arma un body multipart con un único campo de archivo.
func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func TestHandler_Upload(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		store := &stubStore{}
		handler := upload.NewHandler(store, "restaurant-uploads", 1600)

		body, contentType := multipartBody(t, "document", "menu.pdf", []byte("not an image field"))
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		handler.Upload(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "missing_file", decodeFailure(t, rec).Error.Code)
		require.False(t, store.uploadCalled)
	})

	t.Run("body is not multipart", func(t *testing.T) {
		store := &stubStore{}
		handler := upload.NewHandler(store, "restaurant-uploads", 1600)

		req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(`{"image":"nope"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		handler.Upload(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "missing_file", decodeFailure(t, rec).Error.Code)
		require.False(t, store.uploadCalled)
	})

	t.Run("media host failure", func(t *testing.T) {
		store := &stubStore{
			uploadFn: func(ctx context.Context, content io.Reader, options media.UploadOptions) (media.Asset, error) {
				return media.Asset{}, errors.New("media host down")
			},
		}
		handler := upload.NewHandler(store, "restaurant-uploads", 1600)

		body, contentType := multipartBody(t, "image", "tacos.jpg", []byte("jpeg bytes"))
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		handler.Upload(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "upload_failed", decodeFailure(t, rec).Error.Code)
	})

	t.Run("success returns url and public id", func(t *testing.T) {
		store := &stubStore{
			uploadFn: func(ctx context.Context, content io.Reader, options media.UploadOptions) (media.Asset, error) {
				return media.Asset{
					URL:      "https://cdn.example/restaurant-uploads/tacos.jpg",
					PublicID: "restaurant-uploads/tacos",
				}, nil
			},
		}
		handler := upload.NewHandler(store, "restaurant-uploads", 1600)

		body, contentType := multipartBody(t, "image", "tacos.jpg", []byte("jpeg bytes"))
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		handler.Upload(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var asset map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &asset))
		require.Equal(t, "https://cdn.example/restaurant-uploads/tacos.jpg", asset["url"])
		require.Equal(t, "restaurant-uploads/tacos", asset["publicId"])

		require.True(t, store.uploadCalled)
		require.Equal(t, "restaurant-uploads", store.uploadOptions.Folder)
		require.Equal(t, 1600, store.uploadOptions.MaxDimension)
		require.Equal(t, []byte("jpeg bytes"), store.uploadContent)
	})
}

func TestRegisterRoutes(t *testing.T) {
	adminChecks := 0
	requireAdmin := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			adminChecks++
			next.ServeHTTP(writer, request)
		})
	}

	router := chi.NewRouter()
	upload.RegisterRoutes(router, upload.NewHandler(&stubStore{
		uploadFn: func(ctx context.Context, content io.Reader, options media.UploadOptions) (media.Asset, error) {
			return media.Asset{URL: "https://cdn.example/a.jpg", PublicID: "restaurant-uploads/a"}, nil
		},
	}, "restaurant-uploads", 1600), requireAdmin)

	body, contentType := multipartBody(t, "image", "a.jpg", []byte("jpeg bytes"))
	req := httptest.NewRequest(http.MethodPost, "/upload/", body)
	req.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, 1, adminChecks)
}

func decodeFailure(t *testing.T, recorder *httptest.ResponseRecorder) httpx.ErrorResponse {
	t.Helper()

	var response httpx.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return response
}
