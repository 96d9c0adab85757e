package logger

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewZapLogger_DefaultsToInfo(t *testing.T) {
	zl, err := NewZapLogger(ZapConfig{Level: "not-a-level", ServiceName: "trips-service"}, nil)
	require.NoError(t, err)
	defer zl.Close()

	assert.True(t, zl.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, zl.Core().Enabled(zapcore.DebugLevel))
}

func TestNewZapLogger_FileOutput(t *testing.T) {
	path := t.TempDir() + "/logs/app.log"
	zl, err := NewZapLogger(ZapConfig{Level: "debug", FilePath: path}, nil)
	require.NoError(t, err)

	zl.Info("hello", TripID("t-1"))
	require.NoError(t, zl.Close())
	assert.FileExists(t, path)
}

func TestLogHTTPRequest_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  zapcore.Level
	}{
		{"success", http.StatusOK, zapcore.InfoLevel},
		{"client error", http.StatusBadRequest, zapcore.WarnLevel},
		{"server error", http.StatusInternalServerError, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			zl := NewFromCore(core)

			zl.LogHTTPRequest(nil, http.MethodGet, "/trips", "127.0.0.1", "u-1", "req-1", tt.status, time.Millisecond, errors.New("boom"))

			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.level, entry.Level)
			assert.Equal(t, "u-1", entry.ContextMap()["user_id"])
		})
	}
}

func TestZapEchoMiddleware_LogsFinalStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	zl := NewFromCore(core)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/ws?token=secret", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := ZapEchoMiddleware(zl)(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "missing")
	})

	require.NoError(t, h(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, int64(http.StatusNotFound), fields["status"])
	assert.Equal(t, "/ws", fields["path"])
}

func TestGlobalLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	previous := GetGlobalLogger()
	SetGlobalLogger(NewFromCore(core))
	defer SetGlobalLogger(previous)

	Warn("slow subscriber", SessionID("s-1"))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "s-1", logs.All()[0].ContextMap()["session_id"])
}
