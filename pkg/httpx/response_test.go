package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/familytree/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteJSON(rec, http.StatusCreated, map[string]string{"a": "b"})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json;charset=UTF-8", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.Equal(t, "no-cache", rec.Header().Get("Pragma"))
	require.JSONEq(t, `{"a":"b"}`, rec.Body.String())
}

func TestNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.NoContent(rec)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.Empty(t, rec.Body.String())
}

func TestHasMediaType(t *testing.T) {
	const form = "application/x-www-form-urlencoded"

	tests := []struct {
		name         string
		contentType  string
		allowMissing bool
		want         bool
	}{
		{name: "Exact", contentType: form, want: true},
		{name: "WithCharset", contentType: form + "; charset=utf-8", want: true},
		{name: "MixedCase", contentType: "Application/X-WWW-Form-URLEncoded", want: true},
		{name: "Other", contentType: "application/json", want: false},
		{name: "PrefixOnly", contentType: form + "-extra", want: false},
		{name: "Malformed", contentType: ";;", want: false},
		{name: "MissingAllowed", allowMissing: true, want: true},
		{name: "MissingRejected", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			require.Equal(t, tt.want, httpx.HasMediaType(req, form, tt.allowMissing))
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Name string `json:"name"`
	}

	decode := func(s string) (body, error) {
		var b body
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(s))
		err := httpx.DecodeJSON(httptest.NewRecorder(), req, &b)
		return b, err
	}

	t.Run("Valid", func(t *testing.T) {
		b, err := decode(`{"name":"svc"}`)
		require.NoError(t, err)
		require.Equal(t, "svc", b.Name)
	})

	t.Run("UnknownField", func(t *testing.T) {
		_, err := decode(`{"name":"svc","extra":1}`)
		require.Error(t, err)
	})

	t.Run("TrailingData", func(t *testing.T) {
		_, err := decode(`{"name":"a"} {"name":"b"}`)
		require.Error(t, err)
	})

	t.Run("TooLarge", func(t *testing.T) {
		_, err := decode(`{"name":"` + strings.Repeat("x", httpx.MaxJSONBody) + `"}`)
		require.ErrorContains(t, err, "exceeds")
	})
}
