package biz

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"link-catalog/internal/domain"
	"link-catalog/internal/domain/event"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCatalogUsecase(repo domain.CatalogRepository) (*CatalogUsecase, *recordingPublisher, *fakeHitCounter) {
	pub := &recordingPublisher{}
	hits := &fakeHitCounter{}
	return NewCatalogUsecase(repo, hits, pub, log.DefaultLogger), pub, hits
}

func TestCatalogUsecase_ReplaceAll(t *testing.T) {
	repo := newFakeCatalogRepo(record("https://old/1.png", "old", 0, 0))
	uc, pub, _ := newCatalogUsecase(repo)

	result, err := uc.ReplaceAll(context.Background(), []domain.RawRecord{
		{URL: "https://a/1.png", Tag: "X", Width: 100, Height: 50},
		{URL: "https://a/1.png", Tag: "dup"},
		{URL: "ftp://a/2.png"},
		{URL: ""},
		{URL: " https://a/3.png ", Tag: "y"},
	})

	require.NoError(t, err)
	assert.Equal(t, 5, result.Submitted)
	assert.Equal(t, 2, result.Stored)
	assert.Equal(t, "Image list replaced successfully. Stored 2 unique links.", result.Message())
	assert.Equal(t, domain.Catalog{
		{URL: "https://a/1.png", Tag: "x", Width: 100, Height: 50, Ratio: 2},
		{URL: "https://a/3.png", Tag: "y"},
	}, repo.snapshot())
	assert.Equal(t, []string{event.NameCatalogReplaced}, pub.names())
}

func TestCatalogUsecase_ReplaceAll_EmptyBatchClearsCatalog(t *testing.T) {
	repo := newFakeCatalogRepo(record("https://a/1.png", "x", 0, 0))
	uc, _, _ := newCatalogUsecase(repo)

	result, err := uc.ReplaceAll(context.Background(), []domain.RawRecord{})

	require.NoError(t, err)
	assert.Zero(t, result.Stored)
	assert.Empty(t, repo.snapshot())
}

func TestCatalogUsecase_ReplaceAll_Properties(t *testing.T) {
	batches := [][]domain.RawRecord{
		{{URL: "https://a/1.png"}, {URL: "https://a/1.png"}, {URL: "https://a/1.png"}},
		{{URL: "nope"}, {URL: "http://a/1.png"}, {URL: "https://a/1.png"}, {URL: "  "}},
		{{URL: "https://a/1.png", Width: -1, Height: 9}, {URL: "HTTPS://a/2.png"}},
	}

	for i, batch := range batches {
		t.Run(fmt.Sprintf("batch %d", i), func(t *testing.T) {
			repo := newFakeCatalogRepo()
			uc, _, _ := newCatalogUsecase(repo)

			result, err := uc.ReplaceAll(context.Background(), batch)
			require.NoError(t, err)

			stored := repo.snapshot()
			assert.LessOrEqual(t, len(stored), len(batch))
			assert.Len(t, stored.URLSet(), len(stored), "urls must be unique")
			assert.Equal(t, result.Stored, len(stored))
			for _, r := range stored {
				assert.Regexp(t, `^https?://`, r.URL)
			}
		})
	}
}

func TestCatalogUsecase_AppendUnique(t *testing.T) {
	repo := newFakeCatalogRepo(record("https://a/1.png", "x", 0, 0))
	uc, pub, _ := newCatalogUsecase(repo)

	result, err := uc.AppendUnique(context.Background(), []domain.RawRecord{
		{URL: "https://a/1.png", Tag: "x"},
		{URL: "https://a/2.png", Tag: "y"},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, "Successfully added 1 new links. Total links: 2.", result.Message())
	assert.Equal(t, []string{"https://a/1.png", "https://a/2.png"}, urls(repo.snapshot()))
	assert.Equal(t, []string{event.NameLinksAppended}, pub.names())
}

func TestCatalogUsecase_AppendUnique_IntraBatchDuplicates(t *testing.T) {
	repo := newFakeCatalogRepo()
	uc, _, _ := newCatalogUsecase(repo)

	result, err := uc.AppendUnique(context.Background(), []domain.RawRecord{
		{URL: "https://a/3.png", Tag: "first"},
		{URL: "https://a/2.png"},
		{URL: " https://a/3.png", Tag: "second"},
		{URL: "mailto:someone"},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Added)
	stored := repo.snapshot()
	assert.Equal(t, []string{"https://a/3.png", "https://a/2.png"}, urls(stored))
	assert.Equal(t, "first", stored[0].Tag)
}

func TestCatalogUsecase_AppendUnique_NeverShrinksOrDuplicates(t *testing.T) {
	repo := newFakeCatalogRepo(
		record("https://a/1.png", "x", 0, 0),
		record("https://a/2.png", "y", 0, 0),
	)
	uc, _, _ := newCatalogUsecase(repo)

	for round := range 5 {
		before := len(repo.snapshot())
		_, err := uc.AppendUnique(context.Background(), []domain.RawRecord{
			{URL: "https://a/1.png"},
			{URL: fmt.Sprintf("https://a/new-%d.png", round)},
			{URL: fmt.Sprintf("https://a/new-%d.png", round)},
			{URL: "https://a/2.png"},
		})
		require.NoError(t, err)

		after := repo.snapshot()
		assert.GreaterOrEqual(t, len(after), before)
		assert.Len(t, after.URLSet(), len(after))
	}
	assert.Len(t, repo.snapshot(), 7)
}

func TestCatalogUsecase_RejectsNilBatch(t *testing.T) {
	repo := &mockCatalogRepo{}
	uc, _, _ := newCatalogUsecase(repo)

	_, err := uc.ReplaceAll(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)

	_, err = uc.AppendUnique(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)

	repo.AssertNotCalled(t, "Load", mock.Anything)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCatalogUsecase_BatchDelete(t *testing.T) {
	repo := newFakeCatalogRepo(record("https://a/1.png", "x", 0, 0))
	uc, pub, _ := newCatalogUsecase(repo)
	ctx := context.Background()

	result, err := uc.BatchDelete(ctx, []string{"https://a/1.png"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Removed)
	assert.Equal(t, 0, result.Remaining)
	assert.Equal(t, "Successfully deleted 1 links. Remaining: 0.", result.Message())

	_, err = uc.BatchDelete(ctx, []string{"https://a/1.png"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []string{event.NameLinksDeleted}, pub.names())
}

func TestCatalogUsecase_BatchDelete_TrimsAndKeepsOrder(t *testing.T) {
	repo := newFakeCatalogRepo(
		record("https://a/1.png", "x", 0, 0),
		record("https://a/2.png", "x", 0, 0),
		record("https://a/3.png", "x", 0, 0),
		record("https://a/4.png", "x", 0, 0),
	)
	uc, _, _ := newCatalogUsecase(repo)

	result, err := uc.BatchDelete(context.Background(), []string{"  https://a/3.png\t", "https://a/1.png", "https://zzz"})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Removed)
	assert.Equal(t, []string{"https://a/2.png", "https://a/4.png"}, urls(repo.snapshot()))
}

func TestCatalogUsecase_BatchDelete_DisjointLeavesCatalogUnchanged(t *testing.T) {
	repo := newFakeCatalogRepo(record("https://a/1.png", "x", 0, 0))
	uc, _, _ := newCatalogUsecase(repo)

	_, err := uc.BatchDelete(context.Background(), []string{"https://b/1.png", "https://b/2.png"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, repo.saves)
	assert.Len(t, repo.snapshot(), 1)
}

func TestCatalogUsecase_BatchDelete_EmptyInput(t *testing.T) {
	uc, _, _ := newCatalogUsecase(&mockCatalogRepo{})

	_, err := uc.BatchDelete(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)

	_, err = uc.BatchDelete(context.Background(), []string{})
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)
}

func TestCatalogUsecase_StorageFailures(t *testing.T) {
	down := fmt.Errorf("%w: connection refused", domain.ErrStorageUnavailable)
	batch := []domain.RawRecord{{URL: "https://a/1.png"}}

	t.Run("load fails", func(t *testing.T) {
		repo := &mockCatalogRepo{}
		repo.On("Load", mock.Anything).Return(nil, down)
		uc, pub, _ := newCatalogUsecase(repo)

		_, err := uc.AppendUnique(context.Background(), batch)
		assert.ErrorIs(t, err, domain.ErrStorageUnavailable)

		_, err = uc.BatchDelete(context.Background(), []string{"https://a/1.png"})
		assert.ErrorIs(t, err, domain.ErrStorageUnavailable)

		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		assert.Empty(t, pub.names())
	})

	t.Run("save fails", func(t *testing.T) {
		repo := &mockCatalogRepo{}
		repo.On("Load", mock.Anything).Return(domain.Catalog{record("https://a/1.png", "x", 0, 0)}, nil)
		repo.On("Save", mock.Anything, mock.Anything).Return(down)
		uc, pub, _ := newCatalogUsecase(repo)

		_, err := uc.ReplaceAll(context.Background(), batch)
		assert.ErrorIs(t, err, domain.ErrStorageUnavailable)

		_, err = uc.AppendUnique(context.Background(), []domain.RawRecord{{URL: "https://a/2.png"}})
		assert.ErrorIs(t, err, domain.ErrStorageUnavailable)

		_, err = uc.BatchDelete(context.Background(), []string{"https://a/1.png"})
		assert.ErrorIs(t, err, domain.ErrStorageUnavailable)

		assert.Empty(t, pub.names())
		repo.AssertExpectations(t)
	})
}

func TestCatalogUsecase_List(t *testing.T) {
	repo := newFakeCatalogRepo(record("https://a/1.png", "x", 0, 0))
	uc, _, hits := newCatalogUsecase(repo)
	hits.hits = 12

	catalog, total, err := uc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, catalog, 1)
	assert.Equal(t, int64(12), total)

	hits.err = errors.New("down")
	_, _, err = uc.List(context.Background())
	assert.Error(t, err)
}

func TestCatalogUsecase_Tags(t *testing.T) {
	repo := newFakeCatalogRepo(
		record("https://a/1.png", "cats", 0, 0),
		record("https://a/2.png", "dogs", 0, 0),
		record("https://a/3.png", "cats", 0, 0),
		record("https://a/4.png", "birds", 0, 0),
		record("https://a/5.png", "", 0, 0),
	)
	uc, _, _ := newCatalogUsecase(repo)

	tags, err := uc.Tags(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []TagCount{
		{Tag: "cats", Count: 2},
		{Tag: "birds", Count: 1},
		{Tag: domain.DefaultTag, Count: 1},
		{Tag: "dogs", Count: 1},
	}, tags)
}

func TestCatalogUsecase_ExportAndPing(t *testing.T) {
	repo := newFakeCatalogRepo(record("https://a/1.png", "x", 4, 3))
	uc, _, _ := newCatalogUsecase(repo)

	catalog, err := uc.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, repo.snapshot(), catalog)
	assert.NoError(t, uc.Ping(context.Background()))
}

func urls(c domain.Catalog) []string {
	out := make([]string, 0, len(c))
	for _, r := range c {
		out = append(out, r.URL)
	}
	return out
}
