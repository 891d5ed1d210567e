package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/qasurvey/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestParseBearer(t *testing.T) {
	tests := []struct {
		name   string
		header string
		token  string
		err    error
	}{
		{"canonical", "Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"lower case scheme", "bearer abc", "abc", nil},
		{"shouting scheme", "BEARER abc", "abc", nil},
		{"missing", "", "", httpx.ErrMissingBearer},
		{"scheme only", "Bearer", "", httpx.ErrMalformedBearer},
		{"wrong scheme", "Basic dXNlcjpwYXNz", "", httpx.ErrMalformedBearer},
		{"three parts", "Bearer abc def", "", httpx.ErrMalformedBearer},
		{"double space", "Bearer  abc", "", httpx.ErrMalformedBearer},
		{"trailing space", "Bearer ", "", httpx.ErrMalformedBearer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := httpx.ParseBearer(tt.header)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.token, token)
		})
	}
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mw("outer"), mw("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestRecover(t *testing.T) {
	var recovered any
	h := httpx.Recover(func(_ *http.Request, v any) { recovered = v })(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "boom", recovered)
	require.Contains(t, rec.Body.String(), "internal_error")
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Email string `json:"email"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.co","extra":true}`))
	require.NoError(t, httpx.DecodeJSON(req, &dst))
	require.Equal(t, "a@b.co", dst.Email)

	for _, body := range []string{"", "{", `{"email":1}`, `{} {}`} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		require.ErrorIs(t, httpx.DecodeJSON(req, &dst), httpx.ErrBadJSON, "body %q", body)
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteJSON(rec, http.StatusCreated, map[string]int{"id": 1})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"id":1}`, rec.Body.String())
}
