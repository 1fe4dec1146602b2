package tex_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/texmeta"
	"github.com/fwojciec/texmeta/tex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFiles creates files under dir from a name → content map.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestRemoveComments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "drops comment at end of line",
			text: "This is content.  % a comment",
			want: "This is content.  ",
		},
		{
			name: "keeps escaped percent",
			text: `The uncertainty is 5\%.  % a comment`,
			want: `The uncertainty is 5\%.  `,
		},
		{
			name: "keeps newline after comment",
			text: "\\setDocAbstract{%\n The LSST Data Management System\n}",
			want: "\\setDocAbstract{\n The LSST Data Management System\n}",
		},
		{
			name: "treats percent after line break as comment",
			text: `a\\% comment`,
			want: `a\\`,
		},
		{
			name: "drops whole comment lines",
			text: "% header\nbody",
			want: "\nbody",
		},
		{
			name: "leaves text without comments",
			text: "no comments here\nnor here",
			want: "no comments here\nnor here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tex.RemoveComments(tt.text))
		})
	}
}

func TestRemoveTrailingWhitespace(t *testing.T) {
	t.Parallel()

	t.Run("single line", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "This is content.", tex.RemoveTrailingWhitespace("This is content.    "))
	})

	t.Run("preserves line count and leading whitespace", func(t *testing.T) {
		t.Parallel()

		got := tex.RemoveTrailingWhitespace("First line.    \n  Second line.\t \n\nThird")

		assert.Equal(t, "First line.\n  Second line.\n\nThird", got)
	})
}

func TestNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	t.Run("runs every stage in order", func(t *testing.T) {
		t.Parallel()

		// Given a root that inputs a file defining a macro in a comment-heavy source
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"LDM-nnn.tex": "\\documentclass[DM,toc]{lsstdoc}   \n" +
				"\\input{meta}\n" +
				"\\title[Test Plan]{\\product\\ Test Plan} % the title\n" +
				"\\setDocRef{LDM-503}\n",
			"meta.tex": "\\newcommand{\\product}{Data Management} % macro\n",
		})

		// When I normalize it
		got, err := tex.NewNormalizer().Normalize(filepath.Join(dir, "LDM-nnn.tex"))

		// Then the flattened source has no includes, comments or definitions
		require.NoError(t, err)
		assert.Equal(t, "\\documentclass[DM,toc]{lsstdoc}\n"+
			"\n\n"+
			"\\title[Test Plan]{Data Management Test Plan}\n"+
			"\\setDocRef{LDM-503}\n", got)
	})

	t.Run("returns not found for missing includes", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"root.tex": "\\input{missing}\n",
		})

		_, err := tex.NewNormalizer().Normalize(filepath.Join(dir, "root.tex"))

		assert.Equal(t, texmeta.ENOTFOUND, texmeta.ErrorCode(err))
	})

	t.Run("returns malformed for broken definitions", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"root.tex": "\\newcommand{\\product}{Data\n",
		})

		_, err := tex.NewNormalizer().Normalize(filepath.Join(dir, "root.tex"))

		assert.Equal(t, texmeta.EMALFORMED, texmeta.ErrorCode(err))
	})
}
