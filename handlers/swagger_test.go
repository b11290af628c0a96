package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type swaggerDoc struct {
	OpenAPI string `json:"openapi"`
	Servers []struct {
		URL string `json:"url"`
	} `json:"servers"`
	Paths map[string]json.RawMessage `json:"paths"`
}

func TestSwaggerEndpoints(t *testing.T) {
	g := gin.New()
	RegisterSwagger(g, "/api/v1")

	req := httptest.NewRequest("GET", "/swagger/index.html", nil)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)
	require.Contains(t, w.Body.String(), "swagger-ui")

	req2 := httptest.NewRequest("GET", "/swagger/doc.json", nil)
	w2 := httptest.NewRecorder()
	g.ServeHTTP(w2, req2)
	require.Equal(t, 200, w2.Code)

	var doc swaggerDoc
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &doc))
	require.Equal(t, "3.0.0", doc.OpenAPI)
	require.Len(t, doc.Servers, 1)
	require.Equal(t, "/api/v1", doc.Servers[0].URL)
	for _, p := range []string{"/questions", "/questions/{id}/answer", "/answers/{id}", "/users/signup", "/users/login", "/users/profile"} {
		require.Contains(t, doc.Paths, p)
	}
}

func TestSwaggerServerFollowsBasePath(t *testing.T) {
	for base, want := range map[string]string{"/v2": "/v2", "": "/", `/odd"path`: `/odd"path`} {
		g := gin.New()
		RegisterSwagger(g, base)
		w := httptest.NewRecorder()
		g.ServeHTTP(w, httptest.NewRequest("GET", "/swagger/doc.json", nil))
		require.Equal(t, 200, w.Code)

		var doc swaggerDoc
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc), w.Body.String())
		require.Len(t, doc.Servers, 1)
		require.Equal(t, want, doc.Servers[0].URL)
	}
}
