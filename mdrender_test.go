package mdrender_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/mdrender"
	"github.com/aretw0/mdrender/pkg/adapters/memory"
	"github.com/aretw0/mdrender/pkg/domain"
	"github.com/aretw0/mdrender/pkg/reconciler"
	"github.com/aretw0/mdrender/pkg/ui"
)

func TestRenderToString_HeadingAndParagraph(t *testing.T) {
	desc := ui.Fragment(
		ui.H("h1", nil, ui.Text("Title")),
		ui.H("p", nil, ui.Text("Hello")),
	)

	got, err := mdrender.New().RenderToString(context.Background(), desc)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nHello\n\n", got)
}

func TestRenderToString_UnorderedList(t *testing.T) {
	desc := ui.H("ul", nil,
		ui.H("li", nil, ui.Text("a")),
		ui.H("li", nil, ui.Text("b")),
	)

	got, err := mdrender.RenderToMarkdownString(context.Background(), desc)
	require.NoError(t, err)
	assert.Equal(t, "- a\n- b\n\n", got)
}

func TestRenderToString_OrderedListUsesLiteralOne(t *testing.T) {
	desc := ui.H("ol", nil,
		ui.H("li", nil, ui.Text("first")),
		ui.H("li", nil, ui.Text("second")),
		ui.H("li", nil, ui.Text("third")),
	)

	got, err := mdrender.RenderToMarkdownString(context.Background(), desc)
	require.NoError(t, err)
	assert.Equal(t, "1. first\n1. second\n1. third\n\n", got)
}

func TestRenderToString_Components(t *testing.T) {
	card := func(props ui.Props, children []ui.Node) ui.Node {
		return ui.Fragment(
			ui.H("h2", nil, ui.Text(props.String("title"))),
			ui.H("p", nil, children...),
		)
	}
	desc := ui.C("Card", card, ui.Props{"title": "Intro"},
		ui.Text("See "),
		ui.H("a", ui.Props{"href": "https://example.com"}, ui.Text("docs")),
	)

	got, err := mdrender.RenderToMarkdownString(context.Background(), desc)
	require.NoError(t, err)
	assert.Equal(t, "## Intro\n\nSee [docs](https://example.com)\n\n", got)
}

func TestRenderToString_Empty(t *testing.T) {
	got, err := mdrender.RenderToMarkdownString(context.Background(), ui.Empty)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestRender_SettlesBeforeReturning(t *testing.T) {
	res := mdrender.New().Render(context.Background(), ui.H("h1", nil, ui.Text("Now")))

	select {
	case <-res.Done():
	default:
		t.Fatal("result must be settled when Render returns")
	}
	md, err := res.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "# Now\n\n", md)
}

func TestRender_ConcurrentRendersAreIndependent(t *testing.T) {
	r := mdrender.New()
	ctx := context.Background()

	const n = 32
	var wg sync.WaitGroup
	results := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			desc := ui.Fragment(
				ui.H("h1", nil, ui.Textf("Doc %d", i)),
				ui.H("ul", nil, ui.H("li", nil, ui.Textf("item %d", i))),
			)
			results[i], errs[i] = r.RenderToString(ctx, desc)
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, fmt.Sprintf("# Doc %d\n\n- item %d\n\n", i, i), results[i])
	}
}

func TestRender_SubmissionFailureResolvesEmpty(t *testing.T) {
	invalid := ui.Node{Kind: ui.KindHost}

	got, err := mdrender.New().RenderToString(context.Background(), invalid)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestRender_StrictSubmitPropagatesFailure(t *testing.T) {
	invalid := ui.Node{Kind: ui.KindHost}

	_, err := mdrender.New(mdrender.WithStrictSubmit()).RenderToString(context.Background(), invalid)
	require.Error(t, err)
	assert.ErrorIs(t, err, reconciler.ErrInvalidElement)
	assert.Contains(t, err.Error(), "submit render")
}

func TestRender_CommitCallbackFailureRejects(t *testing.T) {
	hooks := domain.LifecycleHooks{
		OnCommit: func(context.Context, *domain.CommitEvent) { panic("hook exploded") },
	}

	_, err := mdrender.New(mdrender.WithLifecycleHooks(hooks)).
		RenderToString(context.Background(), ui.H("p", nil, ui.Text("x")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error in commit callback")
	assert.Contains(t, err.Error(), "hook exploded")
}

func TestRender_LifecycleHooks(t *testing.T) {
	var (
		mu     sync.Mutex
		starts []*domain.RenderEvent
		done   []*domain.RenderEvent
		commit []*domain.CommitEvent
	)
	hooks := domain.LifecycleHooks{
		OnRenderStart: func(_ context.Context, e *domain.RenderEvent) {
			mu.Lock()
			defer mu.Unlock()
			starts = append(starts, e)
		},
		OnCommit: func(_ context.Context, e *domain.CommitEvent) {
			mu.Lock()
			defer mu.Unlock()
			commit = append(commit, e)
		},
		OnRenderComplete: func(_ context.Context, e *domain.RenderEvent) {
			mu.Lock()
			defer mu.Unlock()
			done = append(done, e)
		},
	}

	desc := ui.H("p", nil, ui.Text("Hello "), ui.H("em", nil, ui.Text("there")))
	got, err := mdrender.New(mdrender.WithLifecycleHooks(hooks)).RenderToString(context.Background(), desc)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, starts, 1)
	require.Len(t, commit, 1)
	require.Len(t, done, 1)

	id := starts[0].RenderID
	assert.NotEmpty(t, id)
	assert.Equal(t, id, commit[0].RenderID)
	assert.Equal(t, id, done[0].RenderID)

	assert.Equal(t, domain.EventCommit, commit[0].Type)
	assert.Equal(t, 4, commit[0].Nodes, "p, two texts and em")
	assert.Equal(t, 1, commit[0].Mutations, "only the container append happens in the commit")

	assert.Equal(t, domain.EventRenderComplete, done[0].Type)
	assert.Equal(t, len(got), done[0].Bytes)
	assert.False(t, done[0].Cached)
	assert.NoError(t, done[0].Err)
}

func TestRender_Cache(t *testing.T) {
	cache := memory.NewCache()
	var cachedFlags []bool
	hooks := domain.LifecycleHooks{
		OnRenderComplete: func(_ context.Context, e *domain.RenderEvent) {
			cachedFlags = append(cachedFlags, e.Cached)
		},
	}
	r := mdrender.New(mdrender.WithCache(cache), mdrender.WithLifecycleHooks(hooks))
	ctx := context.Background()
	desc := ui.H("h3", nil, ui.Text("Cached"))

	first, err := r.RenderToString(ctx, desc)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	second, err := r.RenderToString(ctx, desc)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, []bool{false, true}, cachedFlags)

	// Components cannot be hashed, so they bypass the cache.
	comp := ui.C("Same", func(ui.Props, []ui.Node) ui.Node { return desc }, nil)
	_, err = r.RenderToString(ctx, comp)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())
}

func TestResult_DoneAndWait(t *testing.T) {
	res := mdrender.New().Render(context.Background(), ui.H("hr", nil))

	select {
	case <-res.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("result never settled")
	}

	got, err := res.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "---\n\n", got)

	again, err := res.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, got, again, "a settled result is stable")
}
