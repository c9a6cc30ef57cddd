package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogMiddlewareRecordsRequest(t *testing.T) {
	logger, hook := test.NewNullLogger()
	h := LogMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "HTTP Request", entry.Message)
	assert.Equal(t, "/healthz", entry.Data["path"])
	assert.Equal(t, http.MethodGet, entry.Data["method"])
}

func TestLogSessionLifecycle(t *testing.T) {
	logger, hook := test.NewNullLogger()

	LogSessionConnect(logger, "tcp", "10.0.0.1:5000")
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "tcp", entry.Data["transport"])
	assert.NotContains(t, entry.Data, "error")

	LogSessionDisconnect(logger, "ws", "10.0.0.1:5000", errors.New("EOF"))
	entry = hook.LastEntry()
	assert.Equal(t, "Session disconnected", entry.Message)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.EqualError(t, entry.Data["error"].(error), "EOF")
	assert.Len(t, hook.AllEntries(), 2)
}
