package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmynk/shoppinglist/pkg/api"
)

func TestWithCORSPreflight(t *testing.T) {
	h := withCORS([]string{"https://shop.example"}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, api.ListServiceUpdateListProcedure, nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "authorization,content-type,connect-protocol-version")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("allowed origin", func(t *testing.T) {
		rec := preflight("https://shop.example")
		require.Equal(t, "https://shop.example", rec.Header().Get("Access-Control-Allow-Origin"))
		allowed := strings.ToLower(rec.Header().Get("Access-Control-Allow-Headers"))
		require.Contains(t, allowed, "authorization")
		require.Contains(t, allowed, "connect-protocol-version")
	})

	t.Run("other origin", func(t *testing.T) {
		rec := preflight("https://evil.example")
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
