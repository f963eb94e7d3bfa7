package transform

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HairlessVillager/llama-index/internal/schema"
)

// doubler expands every node into two nodes.
type doubler struct{}

func (doubler) Name() string { return "doubler" }

func (doubler) Transform(_ context.Context, nodes []*schema.Node, _ ...Option) ([]*schema.Node, error) {
	out := make([]*schema.Node, 0, len(nodes)*2)
	for _, n := range nodes {
		out = append(out, n, schema.NewNode(n.Content+" (copy)"))
	}
	return out, nil
}

// upcaser mutates node content in place.
type upcaser struct{}

func (upcaser) Name() string { return "upcaser" }

func (upcaser) Transform(_ context.Context, nodes []*schema.Node, _ ...Option) ([]*schema.Node, error) {
	for _, n := range nodes {
		n.Content = strings.ToUpper(n.Content)
	}
	return nodes, nil
}

type failing struct{ err error }

func (failing) Name() string { return "failing" }

func (f failing) Transform(_ context.Context, nodes []*schema.Node, _ ...Option) ([]*schema.Node, error) {
	return nil, f.err
}

func batch(contents ...string) []*schema.Node {
	nodes := make([]*schema.Node, len(contents))
	for i, c := range contents {
		nodes[i] = schema.NewNode(c)
	}
	return nodes
}

func TestRun_FoldsStepsInOrder(t *testing.T) {
	nodes := batch("a", "b", "c")

	out, err := Run(t.Context(), nodes, []Component{doubler{}, upcaser{}}, true)
	require.NoError(t, err)

	require.Len(t, out, 6, "doubler runs before upcaser, so all 6 nodes are upcased")
	for _, n := range out {
		assert.Equal(t, strings.ToUpper(n.Content), n.Content)
	}
}

func TestRun_MatchesManualFold(t *testing.T) {
	components := []Component{doubler{}, upcaser{}}

	got, err := Run(t.Context(), batch("x", "y"), components, true)
	require.NoError(t, err)

	manual := batch("x", "y")
	for _, c := range components {
		manual, err = c.Transform(t.Context(), manual)
		require.NoError(t, err)
	}

	require.Len(t, got, len(manual))
	for i := range got {
		assert.Equal(t, manual[i].Content, got[i].Content)
	}
}

func TestRun_NotInPlace_PreservesCallerSlice(t *testing.T) {
	nodes := batch("a", "b")
	original := nodes

	out, err := Run(t.Context(), nodes, []Component{doubler{}}, false)
	require.NoError(t, err)

	assert.Len(t, original, 2, "caller's slice keeps its length")
	assert.Len(t, out, 4)
	assert.Same(t, original[0], nodes[0])
}

func TestRun_NotInPlace_NodesStillSharedByPointer(t *testing.T) {
	nodes := batch("a")

	_, err := Run(t.Context(), nodes, []Component{upcaser{}}, false)
	require.NoError(t, err)

	assert.Equal(t, "A", nodes[0].Content, "node mutation is visible through the caller's slice")
}

func TestRun_ErrorAbortsWithoutRollback(t *testing.T) {
	nodes := batch("a", "b")
	boom := errors.New("boom")

	_, err := Run(t.Context(), nodes, []Component{upcaser{}, failing{err: boom}}, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failing")

	assert.Equal(t, "A", nodes[0].Content, "already-applied steps are not rolled back")
}

func TestRun_EmptyComponents(t *testing.T) {
	nodes := batch("a")

	out, err := Run(t.Context(), nodes, nil, true)
	require.NoError(t, err)
	assert.Equal(t, nodes, out)
}

func TestRunAsync_MatchesRun(t *testing.T) {
	components := []Component{doubler{}, upcaser{}}

	syncOut, err := Run(t.Context(), batch("a", "b", "c"), components, true)
	require.NoError(t, err)

	res := <-RunAsync(t.Context(), batch("a", "b", "c"), components, true)
	require.NoError(t, res.Err)

	require.Len(t, res.Nodes, len(syncOut))
	for i := range syncOut {
		assert.Equal(t, syncOut[i].Content, res.Nodes[i].Content)
	}
}

func TestRunAsync_PropagatesError(t *testing.T) {
	boom := errors.New("boom")

	res := <-RunAsync(t.Context(), batch("a"), []Component{failing{err: boom}}, true)
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, boom)
}

func TestRunAsync_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	res := <-RunAsync(ctx, batch("a"), []Component{upcaser{}}, true)
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, context.Canceled)
}

func TestBuildOptions_Forwarding(t *testing.T) {
	o := BuildOptions(WithShowProgress(true), WithExtra("num_workers", 4))

	assert.True(t, o.ShowProgress)
	assert.Equal(t, 4, o.Extra["num_workers"])
}
