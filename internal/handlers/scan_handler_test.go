package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"testing"

	"go_gpa_keep/internal/gpa"
	"go_gpa_keep/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

// multipartBody は指定フィールドに data を載せたマルチパートのボディを作ります
func multipartBody(t *testing.T, field string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "transcript.png")
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func postScan(t *testing.T, url string, userID uuid.UUID, body *bytes.Buffer, contentType string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url+"/api/v1/scan", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-ID", userID.String())
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestScanHandler_PostScan(t *testing.T) {
	userID := uuid.New()

	t.Run("画像を渡して部分的な科目を返す", func(t *testing.T) {
		server, m := newTestServer(t)
		m.scan.On("Scan", mock.Anything, pngBytes).Return(&model.ScanResponse{Courses: []*model.ScannedCourse{
			{Name: "Math", Grade: gpa.GradeA},
		}}, nil).Once()

		body, ct := multipartBody(t, "image", pngBytes)
		resp := postScan(t, server.URL, userID, body, ct)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("imageフィールドがなければ400", func(t *testing.T) {
		server, _ := newTestServer(t)
		body, ct := multipartBody(t, "file", pngBytes)
		resp := postScan(t, server.URL, userID, body, ct)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("上限を超えるリクエストは413", func(t *testing.T) {
		server, _ := newTestServer(t)
		big := make([]byte, 5<<20+128<<10)
		copy(big, pngBytes)
		body, ct := multipartBody(t, "image", big)
		resp := postScan(t, server.URL, userID, body, ct)
		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	})

	t.Run("外部サービスの失敗は502", func(t *testing.T) {
		server, m := newTestServer(t)
		m.scan.On("Scan", mock.Anything, mock.Anything).
			Return(nil, model.NewAppError("SCAN_FAILED", "x", "", model.ErrUpstream)).Once()
		body, ct := multipartBody(t, "image", pngBytes)
		resp := postScan(t, server.URL, userID, body, ct)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})
}
