package tracing

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/logger"
)

func TestChildSpansAttachToRoot(t *testing.T) {
	ctx, root := StartSpan(context.Background(), "run", "r1")
	_, model := StartChildSpan(ctx, "model")
	model.SetAttr("terms", 10)
	model.End()
	_, search := StartChildSpan(ctx, "search")
	search.End()
	root.End()

	require.Len(t, root.Children, 2)
	assert.Equal(t, "r1", root.Children[0].RunID)
	assert.Equal(t, "search", root.Children[1].Name)
	assert.GreaterOrEqual(t, root.Duration, model.Duration)
}

func TestDetachedChild(t *testing.T) {
	_, span := StartChildSpan(context.Background(), "orphan")
	assert.Equal(t, "", span.RunID)
	assert.Nil(t, SpanFromContext(context.Background()))
}

func TestLogWritesTree(t *testing.T) {
	var buf bytes.Buffer
	ctx, root := StartSpan(context.Background(), "run", "r2")
	_, child := StartChildSpan(ctx, "index")
	child.SetAttr("docs", 3)
	child.End()
	root.End()

	root.Log(logger.New(&buf, "info", "text"))

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "msg=span"))
	assert.Contains(t, out, "span=index")
	assert.Contains(t, out, "docs=3")
	assert.Contains(t, out, "depth=1")
}
