package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawstails/internal/db"
	"pawstails/internal/models"
)

func newSQLiteRepos(t *testing.T) (ArticleRepo, VersionRepo) {
	t.Helper()
	conn, err := db.NewSQLiteConnection(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewSQLiteArticleRepo(conn), NewSQLiteVersionRepo(conn)
}

func sampleArticle(slug string, published bool) *models.Article {
	return &models.Article{
		Title:     "Title " + slug,
		Slug:      slug,
		Content:   "<p>content for " + slug + "</p>",
		Excerpt:   "content for " + slug,
		Author:    "Paws & Tails",
		Published: published,
	}
}

func TestSQLiteArticleRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	articles, _ := newSQLiteRepos(t)

	created, err := articles.Create(ctx, sampleArticle("puppy-care", false))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, 1, created.Version)
	assert.False(t, created.Published)
	assert.Nil(t, created.AutosavedAt)
	assert.False(t, created.CreatedAt.IsZero())

	bySlug, err := articles.GetBySlug(ctx, "puppy-care")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	created.Title = "Puppy Care 101"
	created.Published = true
	updated, err := articles.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)
	assert.True(t, updated.Published)
	assert.Equal(t, "Puppy Care 101", updated.Title)

	require.NoError(t, articles.Delete(ctx, created.ID))
	_, err = articles.GetByID(ctx, created.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(articles.Delete(ctx, created.ID), ErrNotFound))
}

func TestSQLiteArticleRepo_SlugIsUnique(t *testing.T) {
	ctx := context.Background()
	articles, _ := newSQLiteRepos(t)

	a, err := articles.Create(ctx, sampleArticle("cats", true))
	require.NoError(t, err)
	_, err = articles.Create(ctx, sampleArticle("cats", true))
	assert.Error(t, err)

	taken, err := articles.SlugTaken(ctx, "cats", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = articles.SlugTaken(ctx, "cats", a.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestSQLiteArticleRepo_ListFilterAndStats(t *testing.T) {
	ctx := context.Background()
	articles, _ := newSQLiteRepos(t)

	for _, a := range []*models.Article{
		sampleArticle("one", true),
		sampleArticle("two", false),
		sampleArticle("three", true),
	} {
		_, err := articles.Create(ctx, a)
		require.NoError(t, err)
	}

	all, err := articles.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "three", all[0].Slug)

	pub := true
	published, err := articles.List(ctx, &pub)
	require.NoError(t, err)
	assert.Len(t, published, 2)

	draft := false
	drafts, err := articles.List(ctx, &draft)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "two", drafts[0].Slug)

	stats, err := articles.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ArticleStats{Total: 3, Published: 2, Drafts: 1}, *stats)
}

func TestSQLiteArticleRepo_AutosaveDraftOnly(t *testing.T) {
	ctx := context.Background()
	articles, _ := newSQLiteRepos(t)

	draft, err := articles.Create(ctx, sampleArticle("draft", false))
	require.NoError(t, err)
	live, err := articles.Create(ctx, sampleArticle("live", true))
	require.NoError(t, err)

	saved, err := articles.Autosave(ctx, draft.ID, models.AutosaveRequest{Title: "New", Content: "<p>new body</p>"})
	require.NoError(t, err)
	assert.Equal(t, "New", saved.Title)
	assert.Equal(t, "draft", saved.Slug)
	assert.Equal(t, draft.Version, saved.Version)
	assert.NotNil(t, saved.AutosavedAt)

	_, err = articles.Autosave(ctx, live.ID, models.AutosaveRequest{Title: "x"})
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = articles.Autosave(ctx, 9999, models.AutosaveRequest{Title: "x"})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSQLiteVersionRepo(t *testing.T) {
	ctx := context.Background()
	articles, versions := newSQLiteRepos(t)

	a, err := articles.Create(ctx, sampleArticle("versions", true))
	require.NoError(t, err)

	top, err := versions.MaxVersion(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, top)

	for i := 1; i <= 3; i++ {
		_, err := versions.Insert(ctx, &models.ArticleVersion{ArticleID: a.ID, VersionNumber: i, Title: a.Title, Content: a.Content})
		require.NoError(t, err)
	}

	_, err = versions.Insert(ctx, &models.ArticleVersion{ArticleID: a.ID, VersionNumber: 3, Title: "dup", Content: "dup"})
	assert.Error(t, err, "version numbers are unique per article")

	n, err := versions.Count(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, versions.DeleteOldest(ctx, a.ID))
	list, err := versions.List(ctx, a.ID, 5)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 3, list[0].VersionNumber)
	assert.Equal(t, 2, list[1].VersionNumber)

	got, err := versions.GetByID(ctx, list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ArticleID)

	require.NoError(t, versions.DeleteByArticle(ctx, a.ID))
	_, err = versions.GetByID(ctx, list[0].ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}
