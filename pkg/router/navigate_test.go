package router

import (
	"context"
	"errors"
	"testing"

	"github.com/vango-dev/navrouter/pkg/history"
	"github.com/vango-dev/navrouter/pkg/routepath"
	"github.com/vango-dev/navrouter/pkg/routestate"
)

type fixture struct {
	hist  *history.Memory
	disp  *routestate.Dispatcher
	store *routestate.Store
	nav   *Navigator
}

func newFixture(t *testing.T, mount bool, opts ...NavigatorOption) *fixture {
	t.Helper()
	hist, err := history.NewMemory("http://app.test/")
	if err != nil {
		t.Fatalf("NewMemory error: %v", err)
	}
	f := &fixture{
		hist:  hist,
		disp:  routestate.NewDispatcher(hist),
		store: routestate.NewStore(),
	}
	if mount {
		f.disp.Mount(f.store)
	}
	f.nav = NewNavigator(hist, f.disp, opts...)
	return f
}

func TestNavigateTo(t *testing.T) {
	f := newFixture(t, true)

	if err := f.nav.NavigateTo(context.Background(), "/users/42"); err != nil {
		t.Fatalf("NavigateTo error: %v", err)
	}

	want := routestate.State{URL: "http://app.test/users/42", HasLoaded: true}
	if got := f.store.State(); got != want {
		t.Errorf("State = %+v, want %+v", got, want)
	}
	if f.hist.Length() != 2 {
		t.Errorf("history Length = %d, want 2", f.hist.Length())
	}

	res, ok, err := MatchURL(f.store, "/users/:id", func(m MatchResult) MatchResult { return m })
	if err != nil || !ok || res.Params["id"] != "42" {
		t.Errorf("MatchURL after navigate = %+v, %v, %v", res, ok, err)
	}
}

func TestNavigateToBeforeMount(t *testing.T) {
	f := newFixture(t, false)

	if err := f.nav.NavigateTo(context.Background(), "/a"); err != nil {
		t.Fatalf("NavigateTo error: %v", err)
	}
	if f.store.State().HasLoaded {
		t.Fatal("unmounted store was written")
	}

	f.disp.Mount(f.store)
	want := routestate.State{URL: "http://app.test/a", HasLoaded: true}
	if got := f.store.State(); got != want {
		t.Errorf("State after mount = %+v, want %+v", got, want)
	}
}

func TestNavigateToMalformed(t *testing.T) {
	f := newFixture(t, true)
	err := f.nav.NavigateTo(context.Background(), "/x/%zz")
	if !errors.Is(err, routepath.ErrMalformedURL) {
		t.Errorf("error = %v, want ErrMalformedURL", err)
	}
	if f.store.State().HasLoaded {
		t.Error("failed navigation reconciled state")
	}
}

func TestGoBack(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	_ = f.nav.NavigateTo(ctx, "/a")
	_ = f.nav.NavigateTo(ctx, "/b")

	if err := f.nav.GoBack(ctx); err != nil {
		t.Fatalf("GoBack error: %v", err)
	}
	if f.store.URL() != "http://app.test/a" {
		t.Errorf("URL after GoBack = %q", f.store.URL())
	}

	if err := f.nav.GoForward(ctx); err != nil {
		t.Fatalf("GoForward error: %v", err)
	}
	if f.store.URL() != "http://app.test/b" {
		t.Errorf("URL after GoForward = %q", f.store.URL())
	}

	if err := f.nav.GoBack(ctx, -2); err != nil {
		t.Fatalf("GoBack(-2) error: %v", err)
	}
	if f.store.URL() != "http://app.test/" {
		t.Errorf("URL after GoBack(-2) = %q", f.store.URL())
	}
}

func TestGoBackSingleEntryIsNoop(t *testing.T) {
	f := newFixture(t, true)
	var seen []Navigation
	f.nav = NewNavigator(f.hist, f.disp, WithMiddleware(MiddlewareFunc(
		func(ctx context.Context, nav Navigation, next func() error) error {
			seen = append(seen, nav)
			return next()
		})))

	if err := f.nav.GoBack(context.Background()); err != nil {
		t.Fatalf("GoBack error: %v", err)
	}
	if got := f.store.State(); got != (routestate.State{}) {
		t.Errorf("State changed to %+v", got)
	}
	if len(seen) != 0 {
		t.Errorf("middleware ran for a no-op GoBack: %+v", seen)
	}
}

// failingHistory fails every move.
type failingHistory struct {
	*history.Memory
}

func (failingHistory) Go(int) error { return errors.New("host refused") }

func TestGoBackHostError(t *testing.T) {
	f := newFixture(t, true)
	_ = f.hist.PushState("/a")
	nav := NewNavigator(failingHistory{f.hist}, f.disp)
	if err := nav.GoBack(context.Background()); err == nil {
		t.Error("expected host error")
	}
	if f.store.State().HasLoaded {
		t.Error("state reconciled after failed move")
	}
}
