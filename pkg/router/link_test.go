package router

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

type fakeEvent struct{ prevented bool }

func (e *fakeEvent) PreventDefault() { e.prevented = true }

func TestClickHandler(t *testing.T) {
	f := newFixture(t, true)
	ev := &fakeEvent{}

	f.nav.ClickHandler("/about")(ev)

	if !ev.prevented {
		t.Error("default navigation not prevented")
	}
	if f.store.URL() != "http://app.test/about" {
		t.Errorf("URL = %q", f.store.URL())
	}
}

func TestClickHandlerLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	f := newFixture(t, true, WithLogger(logger))
	ev := &fakeEvent{}

	f.nav.ClickHandler("/bad/%zz")(ev)

	if !ev.prevented {
		t.Error("default navigation not prevented")
	}
	if !strings.Contains(buf.String(), "link navigation failed") {
		t.Errorf("expected warning log, got %q", buf.String())
	}
}

func TestLink(t *testing.T) {
	f := newFixture(t, true)
	link := f.nav.Link("/docs")
	if link.Href != "/docs" {
		t.Errorf("Href = %q", link.Href)
	}
	link.OnClick(nil)
	if f.store.URL() != "http://app.test/docs" {
		t.Errorf("URL = %q", f.store.URL())
	}
}
