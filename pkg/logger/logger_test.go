package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONCarriesRunAndComponent(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, "info", "json")
	ctx := WithRunID(context.Background(), "run-42")

	WithComponent(FromContext(ctx, base), "indexer").Info("built", "terms", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "run-42", rec["run_id"])
	assert.Equal(t, "indexer", rec["component"])
	assert.Equal(t, "built", rec["msg"])
	assert.EqualValues(t, 3, rec["terms"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn", "text")
	l.Info("hidden")
	assert.Empty(t, buf.String())
	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestFromContextWithoutRunID(t *testing.T) {
	base := Discard()
	assert.Same(t, base, FromContext(context.Background(), base))
	assert.Equal(t, "", RunID(context.Background()))
}
