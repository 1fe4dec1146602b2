package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/texmeta"
	"github.com/fwojciec/texmeta/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func newDocument(handle, series, serial string) *texmeta.Document {
	return &texmeta.Document{
		SourcePath: "/docs/" + handle + "/" + handle + ".tex",
		Source:     `\setDocRef{` + handle + `}`,
		Metadata: &texmeta.ParsedDocument{
			Title:        ptr("Title of " + handle),
			PlainTitle:   ptr("Title of " + handle + "\n"),
			Authors:      []string{`\v{Z}. Ivezi\'c`},
			HTMLAuthors:  []string{"Ž. Ivezić\n"},
			PlainAuthors: []string{"Ž. Ivezić\n"},
			Handle:       handle,
			Series:       series,
			Serial:       serial,
		},
	}
}

func TestDocumentService_CreateDocument(t *testing.T) {
	t.Parallel()

	t.Run("creates document with generated ID, hash and timestamps", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		doc := newDocument("LDM-151", "LDM", "151")

		err := svc.CreateDocument(ctx, doc)
		require.NoError(t, err)

		assert.NotEmpty(t, doc.ID, "ID should be generated")
		assert.Len(t, doc.SourceHash, 16, "SourceHash should be a hex xxhash")
		assert.False(t, doc.CreatedAt.IsZero(), "CreatedAt should be set")
		assert.Equal(t, doc.CreatedAt, doc.UpdatedAt)
	})

	t.Run("hashes identical sources identically", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		a := newDocument("LDM-151", "LDM", "151")
		b := newDocument("LDM-152", "LDM", "152")
		b.Source = a.Source
		require.NoError(t, svc.CreateDocument(ctx, a))
		require.NoError(t, svc.CreateDocument(ctx, b))

		assert.Equal(t, a.SourceHash, b.SourceHash)
	})

	t.Run("returns error for invalid document", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		doc := &texmeta.Document{} // missing required fields

		err := svc.CreateDocument(ctx, doc)
		require.Error(t, err)
		assert.Equal(t, texmeta.EINVALID, texmeta.ErrorCode(err))
	})

	t.Run("returns ECONFLICT for duplicate handles", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateDocument(ctx, newDocument("LDM-151", "LDM", "151")))

		dup := newDocument("LDM-151", "LDM", "151")
		err := svc.CreateDocument(ctx, dup)

		require.Error(t, err)
		assert.Equal(t, texmeta.ECONFLICT, texmeta.ErrorCode(err))
		assert.Empty(t, dup.ID, "ID should not be set on conflict")
	})
}

func TestDocumentService_FindDocumentByHandle(t *testing.T) {
	t.Parallel()

	t.Run("returns document when found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		doc := newDocument("DMTN-036", "DMTN", "036")
		doc.Metadata.IsDraft = true
		doc.Metadata.Abstract = ptr("An abstract.")
		require.NoError(t, svc.CreateDocument(ctx, doc))

		found, err := svc.FindDocumentByHandle(ctx, "DMTN-036")
		require.NoError(t, err)
		assert.Equal(t, doc.ID, found.ID)
		assert.Equal(t, doc.SourcePath, found.SourcePath)
		assert.Equal(t, doc.Source, found.Source)
		assert.Equal(t, doc.SourceHash, found.SourceHash)
		assert.Equal(t, doc.Metadata, found.Metadata)
		assert.True(t, doc.CreatedAt.Equal(found.CreatedAt))
	})

	t.Run("keeps absent fields nil", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateDocument(ctx, newDocument("SQR-001", "SQR", "001")))

		found, err := svc.FindDocumentByHandle(ctx, "SQR-001")
		require.NoError(t, err)
		assert.Nil(t, found.Metadata.Abstract)
		assert.Nil(t, found.Metadata.ShortTitle)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		_, err := svc.FindDocumentByHandle(ctx, "LDM-999")
		require.Error(t, err)
		assert.Equal(t, texmeta.ENOTFOUND, texmeta.ErrorCode(err))
	})
}

func TestDocumentService_FindDocuments(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, svc *sqlite.DocumentService) {
		t.Helper()
		ctx := context.Background()
		for _, d := range [][3]string{
			{"LDM-503", "LDM", "503"},
			{"DMTN-036", "DMTN", "036"},
			{"LDM-151", "LDM", "151"},
		} {
			require.NoError(t, svc.CreateDocument(ctx, newDocument(d[0], d[1], d[2])))
		}
	}

	t.Run("returns all documents ordered by handle", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		seed(t, svc)

		docs, err := svc.FindDocuments(context.Background(), texmeta.DocumentFilter{})
		require.NoError(t, err)
		require.Len(t, docs, 3)
		assert.Equal(t, "DMTN-036", docs[0].Handle())
		assert.Equal(t, "LDM-151", docs[1].Handle())
		assert.Equal(t, "LDM-503", docs[2].Handle())
	})

	t.Run("filters by series", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		seed(t, svc)

		docs, err := svc.FindDocuments(context.Background(), texmeta.DocumentFilter{Series: ptr("LDM")})
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "LDM-151", docs[0].Handle())
		assert.Equal(t, "LDM-503", docs[1].Handle())
	})

	t.Run("filters by handle", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		seed(t, svc)

		docs, err := svc.FindDocuments(context.Background(), texmeta.DocumentFilter{Handle: ptr("DMTN-036")})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "DMTN", docs[0].Metadata.Series)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		seed(t, svc)

		docs, err := svc.FindDocuments(context.Background(), texmeta.DocumentFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "LDM-151", docs[0].Handle())
	})

	t.Run("applies offset without limit", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		seed(t, svc)

		docs, err := svc.FindDocuments(context.Background(), texmeta.DocumentFilter{Offset: 2})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "LDM-503", docs[0].Handle())
	})

	t.Run("combines series filter with pagination", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		seed(t, svc)

		docs, err := svc.FindDocuments(context.Background(), texmeta.DocumentFilter{Series: ptr("LDM"), Limit: 1})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "LDM-151", docs[0].Handle())
	})

	t.Run("returns empty for no matches", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)

		docs, err := svc.FindDocuments(context.Background(), texmeta.DocumentFilter{Series: ptr("SQR")})
		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}

func TestDocumentService_DeleteDocument(t *testing.T) {
	t.Parallel()

	t.Run("deletes existing document", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateDocument(ctx, newDocument("LDM-151", "LDM", "151")))

		err := svc.DeleteDocument(ctx, "LDM-151")
		require.NoError(t, err)

		_, err = svc.FindDocumentByHandle(ctx, "LDM-151")
		assert.Equal(t, texmeta.ENOTFOUND, texmeta.ErrorCode(err))
	})

	t.Run("allows re-adding a deleted handle", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateDocument(ctx, newDocument("LDM-151", "LDM", "151")))
		require.NoError(t, svc.DeleteDocument(ctx, "LDM-151"))

		assert.NoError(t, svc.CreateDocument(ctx, newDocument("LDM-151", "LDM", "151")))
	})

	t.Run("returns ENOTFOUND for missing document", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)

		err := svc.DeleteDocument(context.Background(), "LDM-999")
		require.Error(t, err)
		assert.Equal(t, texmeta.ENOTFOUND, texmeta.ErrorCode(err))
	})
}
