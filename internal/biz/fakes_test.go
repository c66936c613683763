package biz

import (
	"context"
	"sync"
	"time"

	"link-catalog/internal/domain"
	"link-catalog/internal/domain/event"

	"github.com/stretchr/testify/mock"
)

type fakeCatalogRepo struct {
	mu      sync.Mutex
	catalog domain.Catalog
	saves   int
}

func newFakeCatalogRepo(records ...domain.LinkRecord) *fakeCatalogRepo {
	return &fakeCatalogRepo{catalog: append(domain.Catalog{}, records...)}
}

func (f *fakeCatalogRepo) Load(context.Context) (domain.Catalog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append(domain.Catalog{}, f.catalog...), nil
}

func (f *fakeCatalogRepo) Save(_ context.Context, catalog domain.Catalog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.catalog = append(domain.Catalog{}, catalog...)
	f.saves++
	return nil
}

func (f *fakeCatalogRepo) Ping(context.Context) error { return nil }

func (f *fakeCatalogRepo) snapshot() domain.Catalog {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append(domain.Catalog{}, f.catalog...)
}

type mockCatalogRepo struct {
	mock.Mock
}

func (m *mockCatalogRepo) Load(ctx context.Context) (domain.Catalog, error) {
	args := m.Called(ctx)
	catalog, _ := args.Get(0).(domain.Catalog)
	return catalog, args.Error(1)
}

func (m *mockCatalogRepo) Save(ctx context.Context, catalog domain.Catalog) error {
	return m.Called(ctx, catalog).Error(0)
}

func (m *mockCatalogRepo) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type fakeHitCounter struct {
	mu   sync.Mutex
	hits int64
	err  error
}

func (f *fakeHitCounter) Load(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits, f.err
}

func (f *fakeHitCounter) Save(_ context.Context, hits int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.hits = hits
	return nil
}

type fakeSessions struct {
	mu      sync.Mutex
	created map[string]time.Duration
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{created: make(map[string]time.Duration)}
}

func (f *fakeSessions) Create(_ context.Context, id string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created[id] = ttl
	return nil
}

func (f *fakeSessions) Valid(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.created[id]
	return ok, nil
}

func (f *fakeSessions) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.created, id)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.events))
	for _, e := range p.events {
		names = append(names, e.EventName())
	}
	return names
}

// fakeProber reports every URL alive except those in dead.
type fakeProber struct {
	dead  map[string]bool
	delay func(url string) time.Duration

	mu       sync.Mutex
	inFlight int
	peak     int
	probed   []string
}

func (p *fakeProber) Probe(ctx context.Context, url string) bool {
	p.mu.Lock()
	p.inFlight++
	p.peak = max(p.peak, p.inFlight)
	p.probed = append(p.probed, url)
	p.mu.Unlock()

	if p.delay != nil {
		time.Sleep(p.delay(url))
	}

	p.mu.Lock()
	p.inFlight--
	p.mu.Unlock()
	return !p.dead[url]
}

func record(url, tag string, width, height int) domain.LinkRecord {
	r, err := domain.NewLinkRecord(url, tag, width, height)
	if err != nil {
		panic(err)
	}
	return r
}
