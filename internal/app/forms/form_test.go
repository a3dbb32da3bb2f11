package forms

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/internhub/internal/pkg/apperrors"
)

func TestUnboundForm(t *testing.T) {
	f := NewOrganizationForm(nil, newMemStore(), &fakeFiles{}, Data{})
	ctx := context.Background()

	assert.False(t, f.IsBound())
	assert.False(t, f.IsValid(ctx))
	assert.Empty(t, f.Errors())

	_, err := f.Save(ctx, true)
	assert.ErrorIs(t, err, ErrUnbound)
	assert.ErrorIs(t, err, apperrors.ErrFormNotValid)
}

func TestErrorsFieldsOrder(t *testing.T) {
	errs := Errors{}
	errs.Add("phone", "too long")
	errs.Add(NonFieldErrors, "mismatch")
	errs.Add("career", "invalid")
	errs["empty"] = nil

	assert.Equal(t, []string{NonFieldErrors, "career", "phone"}, errs.Fields())
	assert.Equal(t, []string{"mismatch"}, errs.NonField())

	verr := &ValidationError{Errors: errs}
	assert.ErrorIs(t, verr, apperrors.ErrValidationFailed)
	assert.Equal(t, "validation failed: __all__: mismatch; career: invalid; phone: too long", verr.Error())
}

func TestDataFromRequest(t *testing.T) {
	t.Run("query string", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/opportunities?sector=logistics", nil)
		data, err := DataFromRequest(req, 1<<20)
		require.NoError(t, err)
		assert.Equal(t, "logistics", data.Values.Get("sector"))
	})

	t.Run("empty query is still bound", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/opportunities", nil)
		data, err := DataFromRequest(req, 1<<20)
		require.NoError(t, err)
		assert.NotNil(t, data.Values)
	})

	t.Run("urlencoded", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/v1/enrollments/5", strings.NewReader("observations=ok"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		data, err := DataFromRequest(req, 1<<20)
		require.NoError(t, err)
		assert.Equal(t, "ok", data.Values.Get("observations"))
		assert.Empty(t, data.Files)
	})

	t.Run("multipart", func(t *testing.T) {
		body := &bytes.Buffer{}
		w := multipart.NewWriter(body)
		require.NoError(t, w.WriteField("name", "Signed agreement"))
		part, err := w.CreateFormFile("file", "agreement.pdf")
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.7"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/enrollments/5/documents", body)
		req.Header.Set("Content-Type", w.FormDataContentType())
		data, err := DataFromRequest(req, 1<<20)
		require.NoError(t, err)
		assert.Equal(t, "Signed agreement", data.Values.Get("name"))
		require.Contains(t, data.Files, "file")
		assert.Equal(t, "agreement.pdf", data.Files["file"].Filename)
	})

	t.Run("malformed multipart", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader("garbage"))
		req.Header.Set("Content-Type", "multipart/form-data")
		_, err := DataFromRequest(req, 1<<20)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})
}
