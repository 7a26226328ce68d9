package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utkarshdubey2008/InstaPoster/internal/errors"
	"github.com/utkarshdubey2008/InstaPoster/internal/httputil"
)

func postForm(t *testing.T, handlerFunc http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	handlerFunc(rec, req)
	return rec
}

func TestWebhooks(t *testing.T) {
	h := NewSystemHandler(nil, nil, nil)

	t.Run("deauthorize acknowledges a signed request", func(t *testing.T) {
		rec := postForm(t, h.Deauthorize, "/deauth", "signed_request=abc.def")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("deauthorize without signed request is a bad request", func(t *testing.T) {
		rec := postForm(t, h.Deauthorize, "/deauth", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp httputil.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, apperrors.ErrCodeMissingRequired, resp.Code)
		assert.Contains(t, resp.Error, "signed_request")
	})

	t.Run("data deletion mirrors the same contract", func(t *testing.T) {
		ok := postForm(t, h.DataDeletion, "/delete", "signed_request=abc.def")
		assert.Equal(t, http.StatusOK, ok.Code)

		missing := postForm(t, h.DataDeletion, "/delete", "")
		assert.Equal(t, http.StatusBadRequest, missing.Code)
	})
}

func TestHome(t *testing.T) {
	h := NewSystemHandler(nil, nil, nil)

	rec := httptest.NewRecorder()
	h.Home(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "running")
}
