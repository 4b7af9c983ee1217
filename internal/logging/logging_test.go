package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	ctx := context.Background()

	require.True(t, New("debug").Enabled(ctx, slog.LevelDebug))
	require.False(t, New("info").Enabled(ctx, slog.LevelDebug))
	require.False(t, New("warn").Enabled(ctx, slog.LevelInfo))
	require.False(t, New("error").Enabled(ctx, slog.LevelWarn))

	// unknown names behave like info
	require.True(t, New("bogus").Enabled(ctx, slog.LevelInfo))
	require.False(t, New("bogus").Enabled(ctx, slog.LevelDebug))
}

func TestContextRoundTrip(t *testing.T) {
	l := New("info").With("request_id", "abc")

	ctx := IntoContext(context.Background(), l)
	require.Same(t, l, FromContext(ctx))
}

func TestFromContextFallsBack(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))
}
