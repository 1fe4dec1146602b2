package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/texmeta"
	"github.com/fwojciec/texmeta/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkCreateDocument compares catalog inserts between WAL and rollback
// journal modes, as when adding a directory of documents.
func BenchmarkCreateDocument(b *testing.B) {
	b.Run("rollback_journal", func(b *testing.B) {
		benchmarkCreateDocument(b, "DELETE")
	})

	b.Run("wal_mode", func(b *testing.B) {
		benchmarkCreateDocument(b, "WAL")
	})
}

func benchmarkCreateDocument(b *testing.B, journalMode string) {
	b.Helper()

	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	ctx := context.Background()
	_, err := db.ExecContext(ctx, "PRAGMA journal_mode = "+journalMode)
	require.NoError(b, err)

	svc := sqlite.NewDocumentService(db)
	title := "Data Management Science Pipelines Design"

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		doc := &texmeta.Document{
			SourcePath: fmt.Sprintf("/docs/LDM-%d/LDM-%d.tex", i, i),
			Source:     fmt.Sprintf("\\title{%s}\n\\setDocRef{LDM-%d}\n", title, i),
			Metadata: &texmeta.ParsedDocument{
				Title:   &title,
				Authors: []string{"J.D. Swinbank", "T. Axelrod"},
				Handle:  fmt.Sprintf("LDM-%d", i),
				Series:  "LDM",
				Serial:  fmt.Sprint(i),
			},
		}
		if err := svc.CreateDocument(ctx, doc); err != nil {
			b.Fatal(err)
		}
	}
}
