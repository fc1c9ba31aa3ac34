package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcormier/po-intake/constants"
	"github.com/pcormier/po-intake/internal/catalog"
	"github.com/pcormier/po-intake/internal/common"
	"github.com/pcormier/po-intake/internal/entity"
	"github.com/pcormier/po-intake/internal/repository"
	"github.com/pcormier/po-intake/internal/signature"
)

func openTestDB(t *testing.T) (*testingDB, context.Context) {
	t.Helper()
	ctx := context.Background()
	db, err := repository.Open(ctx, ":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &testingDB{
		catalogs:  repository.NewCatalogRepository(db, nil),
		baselines: repository.NewBaselineRepository(db, nil),
	}, ctx
}

type testingDB struct {
	catalogs  repository.CatalogRepository
	baselines repository.BaselineRepository
}

func TestCatalogSaveAndLoadRoundTrip(t *testing.T) {
	repos, ctx := openTestDB(t)

	entries := []catalog.Entry{
		{Kind: catalog.KindManufacturer, Canonical: "Hager", Aliases: []string{"HAG", "Hager Companies"}},
		{Kind: catalog.KindFinish, Canonical: "US26D", Aliases: []string{"626"}},
		{Kind: catalog.KindCategory, Canonical: "Hinges"},
	}
	require.NoError(t, repos.catalogs.SaveEntries(ctx, "2026-01", entries))

	cat, err := repos.catalogs.LoadVersion(ctx, "2026-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-01", cat.Version())

	canonical, ok := cat.Match(catalog.KindFinish, "626")
	require.True(t, ok)
	assert.Equal(t, "US26D", canonical)

	canonical, ok = cat.Match(catalog.KindManufacturer, "hager companies")
	require.True(t, ok)
	assert.Equal(t, "Hager", canonical)
}

func TestCatalogSaveEntriesReplacesVersion(t *testing.T) {
	repos, ctx := openTestDB(t)

	require.NoError(t, repos.catalogs.SaveEntries(ctx, "v1", []catalog.Entry{
		{Kind: catalog.KindManufacturer, Canonical: "Stale"},
	}))
	require.NoError(t, repos.catalogs.SaveEntries(ctx, "v1", []catalog.Entry{
		{Kind: catalog.KindManufacturer, Canonical: "Fresh"},
	}))

	cat, err := repos.catalogs.LoadVersion(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, 1, cat.Terms(catalog.KindManufacturer))

	_, ok := cat.Match(catalog.KindManufacturer, "Stale")
	assert.False(t, ok)
	_, ok = cat.Match(catalog.KindManufacturer, "Fresh")
	assert.True(t, ok)
}

func TestCatalogLoadVersionMissing(t *testing.T) {
	repos, ctx := openTestDB(t)

	_, err := repos.catalogs.LoadVersion(ctx, "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCatalogLatestVersion(t *testing.T) {
	repos, ctx := openTestDB(t)

	_, err := repos.catalogs.LatestVersion(ctx)
	assert.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, repos.catalogs.SaveEntries(ctx, "v1", []catalog.Entry{
		{Kind: catalog.KindCategory, Canonical: "Hinges"},
	}))
	require.NoError(t, repos.catalogs.SaveEntries(ctx, "v2", []catalog.Entry{
		{Kind: catalog.KindCategory, Canonical: "Closers"},
	}))

	version, err := repos.catalogs.LatestVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v2", version)
}

func TestBaselinePutGetRoundTrip(t *testing.T) {
	repos, ctx := openTestDB(t)

	docs := []entity.ExtractedDocument{
		{
			DocID:   "d1",
			DocType: string(constants.DocTypePurchaseOrder),
			Lines:   []entity.ExtractedLine{{LineNo: 1, RawText: "x"}, {LineNo: 2, RawText: "y"}},
		},
	}
	data := []byte("pdf bytes")
	sig := signature.Build("packet.pdf", signature.HashBytes(data), docs, time.Now().UTC())

	require.NoError(t, repos.baselines.Put(ctx, sig))

	got, err := repos.baselines.Get(ctx, sig.FileHash)
	require.NoError(t, err)
	assert.Equal(t, sig.FileHash, got.FileHash)
	assert.Equal(t, "packet.pdf", got.Filename)
	require.Len(t, got.Docs, 1)
	assert.Equal(t, 2, got.Docs[0].LineCount)
	assert.Equal(t, string(constants.DocTypePurchaseOrder), got.Docs[0].Type)
}

func TestBaselinePutUpserts(t *testing.T) {
	repos, ctx := openTestDB(t)

	hash := signature.HashBytes([]byte("same file"))
	first := signature.Build("a.pdf", hash, []entity.ExtractedDocument{{DocID: "d1"}}, time.Now().UTC())
	second := signature.Build("a.pdf", hash, []entity.ExtractedDocument{{DocID: "d1"}, {DocID: "d2"}}, time.Now().UTC())

	require.NoError(t, repos.baselines.Put(ctx, first))
	require.NoError(t, repos.baselines.Put(ctx, second))

	got, err := repos.baselines.Get(ctx, hash)
	require.NoError(t, err)
	assert.Len(t, got.Docs, 2)
}

func TestBaselineGetMissing(t *testing.T) {
	repos, ctx := openTestDB(t)

	_, err := repos.baselines.Get(ctx, "deadbeef")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
