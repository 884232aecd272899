package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"vidstats/internal/handler"
	"vidstats/mocks"
)

func newHealthRouter(store *mocks.MockChannelRepo) *gin.Engine {
	h := handler.NewHealthHandler(store)
	r := gin.New()
	r.GET("/healthz", h.Liveness)
	r.GET("/readyz", h.Readiness)
	return r
}

func TestHealthHandler_Liveness(t *testing.T) {
	store := new(mocks.MockChannelRepo)
	w := doGet(newHealthRouter(store), "/healthz")

	assert.Equal(t, http.StatusOK, w.Code)
	store.AssertNotCalled(t, "Ping", mock.Anything)
}

func TestHealthHandler_Readiness(t *testing.T) {
	store := new(mocks.MockChannelRepo)
	store.On("Ping", mock.Anything).Return(nil)

	w := doGet(newHealthRouter(store), "/readyz")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_ReadinessStoreDown(t *testing.T) {
	store := new(mocks.MockChannelRepo)
	store.On("Ping", mock.Anything).Return(errors.New("no reachable servers"))

	w := doGet(newHealthRouter(store), "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
