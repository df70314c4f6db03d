package domain

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProfile(t *testing.T) {
	t.Run("spans end in order", func(t *testing.T) {
		p, end := NewProfile()
		first, _ := p.StartNewSpan("train")
		require.Nil(t, first.Elapsed)

		second, endSecond := p.StartNewSpan("predict")
		require.NotNil(t, first.Elapsed)
		require.Nil(t, second.Elapsed)

		endSecond()
		end()
		require.NotNil(t, second.Elapsed)
		require.NotNil(t, p.TotalMs)

		out, err := p.ToJsonBytes()
		require.NoError(t, err)
		decoded := map[string]any{}
		require.NoError(t, json.Unmarshal(out, &decoded))
		require.Len(t, decoded["spans"], 2)
	})

	t.Run("nil profile is a no-op", func(t *testing.T) {
		p := ProfileFromContext(context.Background())
		require.Nil(t, p)

		span, end := p.StartNewSpan("train")
		require.Nil(t, span)
		end()
		p.End()
	})

	t.Run("context round trip", func(t *testing.T) {
		p, _ := NewProfile()
		ctx := NewContextWithProfile(context.Background(), p)
		require.Same(t, p, ProfileFromContext(ctx))
	})
}
