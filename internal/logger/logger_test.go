package logger

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"DEBUG", LevelDebug, false},
		{"info", LevelInfo, false},
		{"Warn", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
		{"", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestLevel_StringAndZap(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "ERROR", LevelError.String())
	require.Equal(t, "UNKNOWN", Level(42).String())

	require.Equal(t, zapcore.WarnLevel, LevelWarn.zapLevel())
	require.Equal(t, zapcore.InfoLevel, Level(42).zapLevel(), "unknown levels log at info")
}

func TestLogger_Filtering(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)
	l.SetLevel(LevelWarn)

	l.Debug("cache miss for %s", "img-1")
	l.Info("listing %s saved", "listing-1")
	require.Empty(t, buf.String())

	l.Warn("upload of %s failed", "front.png")
	l.Error("store offline")
	require.Contains(t, buf.String(), "WARN")
	require.Contains(t, buf.String(), "upload of front.png failed")
	require.Contains(t, buf.String(), "store offline")

	l.SetLevel(LevelDebug)
	l.Debug("now visible")
	require.Contains(t, buf.String(), "now visible")
}

func TestLogger_DiscardsByDefault(t *testing.T) {
	t.Setenv("LISTR_LOG_FILE", "")
	t.Setenv("LISTR_LOG_LEVEL", "")

	l := New()
	require.Nil(t, l.file)
	require.Equal(t, zapcore.InfoLevel, l.level.Level())
	l.Error("goes nowhere")
	require.NoError(t, l.Close())
}

func TestLogger_EnvConfiguration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listr.log")
	t.Setenv("LISTR_LOG_LEVEL", "debug")
	t.Setenv("LISTR_LOG_FILE", path)

	l := New()
	require.Equal(t, zapcore.DebugLevel, l.level.Level())
	l.Debug("opened data dir %s", ".listr")
	require.NoError(t, l.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(content), "opened data dir .listr")
}

func TestLogger_SetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "set.log")

	l := New()
	require.NoError(t, l.SetFile(""), "an empty path keeps the current output")
	require.NoError(t, l.SetFile(path))
	l.Warn("written to %s", "file")
	require.NoError(t, l.Close())
	require.NoError(t, l.Close(), "closing twice is harmless")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(content), "written to file")

	require.Error(t, l.SetFile(filepath.Join(t.TempDir(), "missing", "x.log")))
}

func TestPackageLevelFunctions(t *testing.T) {
	var buf bytes.Buffer
	Default.SetOutput(&buf)
	Default.SetLevel(LevelDebug)
	t.Cleanup(func() {
		Default.SetOutput(io.Discard)
		Default.SetLevel(LevelInfo)
	})

	Debug("debug %s", "test")
	Info("info %s", "test")
	Warn("warn %s", "test")
	Error("error %s", "test")

	for _, want := range []string{"debug test", "info test", "warn test", "error test"} {
		require.Contains(t, buf.String(), want)
	}
}
