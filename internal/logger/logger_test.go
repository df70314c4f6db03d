package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext(t *testing.T) {
	t.Run("returns attached logger", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		l := zap.New(core).Sugar()

		ctx := NewContext(context.Background(), l)
		FromContext(ctx).Infow("training", "commodity", "wheat")

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		require.Equal(t, "training", entry.Message)
		require.Equal(t, "wheat", entry.ContextMap()["commodity"])
	})

	t.Run("falls back to global", func(t *testing.T) {
		require.NotNil(t, FromContext(context.Background()))
	})
}
