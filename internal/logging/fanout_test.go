package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFanoutDuplicatesRecords(t *testing.T) {
	var a, b bytes.Buffer
	fanout := NewFanout(
		slog.NewJSONHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	logger := slog.New(fanout)

	logger.Info("hello")
	logger.Error("boom")

	require.Contains(t, a.String(), "hello")
	require.Contains(t, a.String(), "boom")
	require.NotContains(t, b.String(), "hello")
	require.Contains(t, b.String(), "boom")
}

func TestFanoutEnabled(t *testing.T) {
	var buf bytes.Buffer
	fanout := NewFanout(
		slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	require.False(t, fanout.Enabled(context.Background(), slog.LevelInfo))
	require.True(t, fanout.Enabled(context.Background(), slog.LevelError))
}
