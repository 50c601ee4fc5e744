package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sereneleaf/storefront-backend/api/middleware"
	"github.com/sereneleaf/storefront-backend/internal/analytics"
	"github.com/sereneleaf/storefront-backend/internal/cart"
	"github.com/sereneleaf/storefront-backend/internal/catalog"
	"github.com/sereneleaf/storefront-backend/pkg/logger"
)

var testLogger = logger.New(logger.Options{ServiceName: "controllers-test"})

const testSessionID = "11111111-2222-3333-4444-555555555555"

type trackedEvent struct {
	Name    string
	Payload any
}

type fakeAnalytics struct {
	events     []trackedEvent
	searches   []analytics.SearchPayload
	pages      []analytics.PagePayload
	identifies []analytics.IdentifyTraits
}

func (f *fakeAnalytics) Track(_ context.Context, _, name string, payload any) {
	f.events = append(f.events, trackedEvent{Name: name, Payload: payload})
}

func (f *fakeAnalytics) Page(_ context.Context, _ string, payload analytics.PagePayload) {
	f.pages = append(f.pages, payload)
}

func (f *fakeAnalytics) Identify(_ context.Context, _ string, traits analytics.IdentifyTraits) {
	f.identifies = append(f.identifies, traits)
}

func (f *fakeAnalytics) TrackSearch(_ string, payload analytics.SearchPayload) {
	f.searches = append(f.searches, payload)
}

func (f *fakeAnalytics) eventNames() []string {
	names := make([]string, 0, len(f.events))
	for _, event := range f.events {
		names = append(names, event.Name)
	}
	return names
}

func (f *fakeAnalytics) has(name string) bool {
	for _, event := range f.events {
		if event.Name == name {
			return true
		}
	}
	return false
}

// fakeCart reduces in memory, no persistence layer involved.
type fakeCart struct {
	states map[string]cart.State
}

func newFakeCart() *fakeCart {
	return &fakeCart{states: map[string]cart.State{}}
}

func (f *fakeCart) Load(_ context.Context, sessionID string) cart.State {
	state, ok := f.states[sessionID]
	if !ok {
		return cart.State{Items: []cart.Item{}}
	}
	return state
}

func (f *fakeCart) Dispatch(ctx context.Context, sessionID string, action cart.Action) cart.State {
	next := cart.Reduce(f.Load(ctx, sessionID), action)
	f.states[sessionID] = next
	return next
}

func testCatalog(t *testing.T) *catalog.Service {
	t.Helper()
	svc, err := catalog.New()
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	return svc
}

func sessionRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return r.WithContext(middleware.WithSessionID(r.Context(), testSessionID))
}
