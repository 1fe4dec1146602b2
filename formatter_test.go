package texmeta_test

import (
	"testing"

	"github.com/fwojciec/texmeta"
	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func TestFormatDocuments(t *testing.T) {
	t.Parallel()

	t.Run("formats single document with handle and title", func(t *testing.T) {
		t.Parallel()

		docs := []*texmeta.Document{
			{
				SourcePath: "/docs/LDM-151.tex",
				Metadata: &texmeta.ParsedDocument{
					Handle:     "LDM-151",
					PlainTitle: ptr("Data Management Science Pipelines Design\n"),
				},
			},
		}

		result := texmeta.FormatDocuments(docs)

		assert.Equal(t, "## LDM-151: Data Management Science Pipelines Design", result)
	})

	t.Run("uses source path when title is absent", func(t *testing.T) {
		t.Parallel()

		docs := []*texmeta.Document{
			{SourcePath: "/docs/DMTN-001.tex", Metadata: &texmeta.ParsedDocument{Handle: "DMTN-001"}},
		}

		result := texmeta.FormatDocuments(docs)

		assert.Equal(t, "## DMTN-001: /docs/DMTN-001.tex", result)
	})

	t.Run("includes authors, abstract and draft marker", func(t *testing.T) {
		t.Parallel()

		docs := []*texmeta.Document{
			{
				SourcePath: "/docs/DMTN-036.tex",
				Metadata: &texmeta.ParsedDocument{
					Handle:        "DMTN-036",
					IsDraft:       true,
					PlainTitle:    ptr("jointcal\n"),
					PlainAuthors:  []string{"John Parejko\n", "Pierre Astier\n"},
					PlainAbstract: ptr("Joint calibration.\n"),
				},
			},
		}

		result := texmeta.FormatDocuments(docs)

		expected := "## DMTN-036: jointcal (draft)\nJohn Parejko, Pierre Astier\n\nJoint calibration."
		assert.Equal(t, expected, result)
	})

	t.Run("separates multiple documents with blank line", func(t *testing.T) {
		t.Parallel()

		docs := []*texmeta.Document{
			{SourcePath: "a.tex", Metadata: &texmeta.ParsedDocument{Handle: "LDM-1", PlainTitle: ptr("One\n")}},
			{SourcePath: "b.tex", Metadata: &texmeta.ParsedDocument{Handle: "LDM-2", PlainTitle: ptr("Two\n")}},
		}

		result := texmeta.FormatDocuments(docs)

		assert.Equal(t, "## LDM-1: One\n\n## LDM-2: Two", result)
	})

	t.Run("tolerates missing metadata", func(t *testing.T) {
		t.Parallel()

		result := texmeta.FormatDocuments([]*texmeta.Document{{SourcePath: "x.tex"}})

		assert.Equal(t, "## x.tex", result)
	})

	t.Run("returns empty string for empty slice", func(t *testing.T) {
		t.Parallel()

		result := texmeta.FormatDocuments([]*texmeta.Document{})

		assert.Empty(t, result)
	})

	t.Run("returns empty string for nil slice", func(t *testing.T) {
		t.Parallel()

		result := texmeta.FormatDocuments(nil)

		assert.Empty(t, result)
	})
}

func TestDocument_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires source path", func(t *testing.T) {
		t.Parallel()

		doc := &texmeta.Document{Metadata: &texmeta.ParsedDocument{Handle: "LDM-151"}}

		assert.Equal(t, texmeta.EINVALID, texmeta.ErrorCode(doc.Validate()))
	})

	t.Run("requires handle", func(t *testing.T) {
		t.Parallel()

		doc := &texmeta.Document{SourcePath: "LDM-151.tex", Metadata: &texmeta.ParsedDocument{}}

		assert.Equal(t, texmeta.EINVALID, texmeta.ErrorCode(doc.Validate()))
	})

	t.Run("accepts complete document", func(t *testing.T) {
		t.Parallel()

		doc := &texmeta.Document{SourcePath: "LDM-151.tex", Metadata: &texmeta.ParsedDocument{Handle: "LDM-151"}}

		assert.NoError(t, doc.Validate())
		assert.Equal(t, "LDM-151", doc.Handle())
	})
}
