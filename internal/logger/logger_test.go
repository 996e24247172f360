package logger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/straye-as/kontragent-api/internal/config"
	"github.com/straye-as/kontragent-api/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestNewLogger_Level(t *testing.T) {
	tests := []struct {
		level   string
		debug   bool
		info    bool
		warning bool
	}{
		{"debug", true, true, true},
		{"info", false, true, true},
		{"warn", false, false, true},
		{"nonsense", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log, err := logger.NewLogger(
				&config.LoggingConfig{Level: tt.level, Format: "json"},
				&config.AppConfig{Name: "kontragent-api", Environment: "development"},
			)
			require.NoError(t, err)

			assert.Equal(t, tt.debug, log.Core().Enabled(zapcore.DebugLevel))
			assert.Equal(t, tt.info, log.Core().Enabled(zapcore.InfoLevel))
			assert.Equal(t, tt.warning, log.Core().Enabled(zapcore.WarnLevel))
		})
	}
}

func TestWithRequestAndAction(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	base := zap.New(core)

	logger.WithRequest(base, "POST", "/ajax/kontragent", "req-1").Info("request")
	logger.WithAction(base, "save_kontragent", 7).Info("action")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, map[string]interface{}{
		"method":     "POST",
		"path":       "/ajax/kontragent",
		"request_id": "req-1",
	}, entries[0].ContextMap())
	assert.Equal(t, map[string]interface{}{
		"action":   "save_kontragent",
		"actor_id": int64(7),
	}, entries[1].ContextMap())
}

func statement() (string, int64) {
	return "SELECT * FROM aa_region", 3
}

func TestSQLLogger_Trace(t *testing.T) {
	tests := []struct {
		name      string
		mode      gormlogger.LogLevel
		threshold time.Duration
		elapsed   time.Duration
		err       error
		want      string
	}{
		{"failure", gormlogger.Warn, 0, 0, errors.New("relation does not exist"), "SQL statement failed"},
		{"not found is quiet", gormlogger.Warn, 0, 0, gorm.ErrRecordNotFound, ""},
		{"slow", gormlogger.Warn, 10 * time.Millisecond, time.Second, nil, "Slow SQL statement"},
		{"slow disabled", gormlogger.Warn, 0, time.Second, nil, ""},
		{"fast at warn", gormlogger.Warn, time.Second, 0, nil, ""},
		{"fast at info", gormlogger.Info, time.Second, 0, nil, "SQL statement"},
		{"silent", gormlogger.Silent, 0, 0, errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.DebugLevel)
			sqlLog := logger.NewSQLLogger(zap.New(core), tt.threshold).LogMode(tt.mode)

			sqlLog.Trace(context.Background(), time.Now().Add(-tt.elapsed), statement, tt.err)

			if tt.want == "" {
				assert.Zero(t, logs.Len())
				return
			}
			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.want, entry.Message)
			assert.Equal(t, "sql", entry.LoggerName)
			assert.Equal(t, "SELECT * FROM aa_region", entry.ContextMap()["sql"])
			assert.Equal(t, int64(3), entry.ContextMap()["rows"])
		})
	}
}

func TestSQLLogger_Messages(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	sqlLog := logger.NewSQLLogger(zap.New(core), 0)

	sqlLog.Info(context.Background(), "opened %d", 1)
	sqlLog.Warn(context.Background(), "pool %s", "low")
	sqlLog.Error(context.Background(), "lost %s", "connection")

	assert.Equal(t, []string{"pool low", "lost connection"}, messages(logs))

	logs.TakeAll()
	sqlLog.LogMode(gormlogger.Info).Info(context.Background(), "opened %d", 1)
	assert.Equal(t, []string{"opened 1"}, messages(logs))
}

func messages(logs *observer.ObservedLogs) []string {
	out := []string{}
	for _, e := range logs.All() {
		out = append(out, e.Message)
	}
	return out
}
