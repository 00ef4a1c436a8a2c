package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_LevelsAndFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := NewZapLogger(zap.New(core))
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)
	assert.Equal(t, "dbg", entries[0].Message)
	assert.Equal(t, zap.WarnLevel, entries[2].Level)
	assert.Equal(t, int64(4), entries[3].ContextMap()["d"])
}

func TestZapLogger_With(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := NewZapLogger(zap.New(core)).With("module", "session")

	log.Info(context.Background(), "signed in", "user_id", "u1")

	entries := logs.AllUntimed()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "session", fields["module"])
	assert.Equal(t, "u1", fields["user_id"])
}

func TestZapLogger_Redacts(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := NewZapLogger(zap.New(core)).With("passphrase", "hunter2")

	log.Info(context.Background(), "signed in", "password", "secret", "user_id", "u1")

	entries := logs.AllUntimed()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, Redacted, fields["passphrase"])
	assert.Equal(t, Redacted, fields["password"])
	assert.Equal(t, "u1", fields["user_id"])
}

func TestNew_Formats(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		level   string
		want    string
		wantErr bool
	}{
		{name: "text", format: FormatText, level: "info", want: "msg=hello"},
		{name: "json", format: FormatJSON, level: "info", want: `"msg":"hello"`},
		{name: "zap", format: FormatZap, level: "info", want: `"msg":"hello"`},
		{name: "empty format defaults to text", format: "", level: "", want: "msg=hello"},
		{name: "bad format", format: "xml", level: "info", wantErr: true},
		{name: "bad level", format: FormatText, level: "loud", wantErr: true},
		{name: "bad zap level", format: FormatZap, level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log, err := New(&buf, tt.level, tt.format)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			log.Info(context.Background(), "hello")
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestNop_DiscardsAndChains(t *testing.T) {
	l := Nop().With("k", "v")
	l.Info(context.Background(), "nothing")
	l.Error(context.Background(), "nothing")
}
