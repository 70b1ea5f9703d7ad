package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestCatalogEndpoint(t *testing.T) {
	r := newRouter()
	(&CatalogHandler{}).Register(r)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Code int `json:"code"`
		Data []struct {
			Kind        string   `json:"kind"`
			InputPorts  []string `json:"input_ports"`
			OutputPorts []string `json:"output_ports"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Equal(t, 0, env.Code)
	require.Len(t, env.Data, 4)
	require.Equal(t, "priceNode", env.Data[0].Kind)
	require.Empty(t, env.Data[0].InputPorts)
	require.Len(t, env.Data[0].OutputPorts, 1)
}

func TestReadyzWithoutDatabase(t *testing.T) {
	r := newRouter()
	(&HealthHandler{}).Register(r)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthz(t *testing.T) {
	r := newRouter()
	(&HealthHandler{}).Register(r)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestErrorEnvelopeShape(t *testing.T) {
	r := newRouter()
	r.GET("/boom", func(c *gin.Context) {
		Error(c, http.StatusNotFound, "strategy not found")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Equal(t, http.StatusNotFound, env.Code)
	require.Equal(t, "strategy not found", env.Message)
	require.Nil(t, env.Data)
}
