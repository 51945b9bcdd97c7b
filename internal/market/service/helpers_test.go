package service_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aussiebroadwan/market/internal/market/domain"
	"github.com/aussiebroadwan/market/internal/market/events"
	"github.com/aussiebroadwan/market/internal/market/imagehost"
	"github.com/aussiebroadwan/market/internal/market/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

var errHostDown = errors.New("host down")

// fakeHost is an in-memory image host.
type fakeHost struct {
	mu         sync.Mutex
	uploads    map[string]string // public id -> folder
	destroyed  []string
	failUpload bool
	failDelete bool
}

func newFakeHost() *fakeHost {
	return &fakeHost{uploads: map[string]string{}}
}

func (h *fakeHost) Upload(_ context.Context, f imagehost.File, folder string) (domain.Image, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.failUpload {
		return domain.Image{}, errHostDown
	}
	if _, err := io.Copy(io.Discard, f.Body); err != nil {
		return domain.Image{}, err
	}

	id := imagehost.Key(folder, f.Name)
	h.uploads[id] = folder
	return domain.Image{PublicID: id, URL: "http://img/" + id, SecureURL: "https://img/" + id}, nil
}

func (h *fakeHost) Destroy(_ context.Context, publicID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.failDelete {
		return errHostDown
	}
	if _, ok := h.uploads[publicID]; !ok {
		return imagehost.ErrNotFound
	}
	delete(h.uploads, publicID)
	h.destroyed = append(h.destroyed, publicID)
	return nil
}

func (h *fakeHost) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.uploads)
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.OfferEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e events.OfferEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func picture(name string) *imagehost.File {
	return &imagehost.File{Name: name, ContentType: "image/jpeg", Body: strings.NewReader("jpeg")}
}
