package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/texmeta"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ texmeta.DocumentService = (*DocumentService)(nil)

const documentColumns = "id, source_path, source, source_hash, metadata, created_at, updated_at"

// DocumentService implements texmeta.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// CreateDocument adds a document to the catalog. The ID, source hash and
// timestamps are set on doc.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *texmeta.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	metadata, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	id := uuid.New().String()
	created := now()
	hash := hashContent(doc.Source)

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, handle, series, serial, source_path, source, source_hash, metadata, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(handle) DO NOTHING
	`, id, doc.Metadata.Handle, doc.Metadata.Series, doc.Metadata.Serial, doc.SourcePath, doc.Source, hash,
		string(metadata), formatRFC3339(created), formatRFC3339(created))
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return texmeta.Errorf(texmeta.ECONFLICT, "document %s already exists", doc.Metadata.Handle)
	}

	doc.ID = id
	doc.SourceHash = hash
	doc.CreatedAt = created
	doc.UpdatedAt = created
	return nil
}

// FindDocumentByHandle retrieves a document by its handle.
func (s *DocumentService) FindDocumentByHandle(ctx context.Context, handle string) (*texmeta.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		WHERE handle = ?
	`, handle)

	doc, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, texmeta.Errorf(texmeta.ENOTFOUND, "document %s not found", handle)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FindDocuments retrieves documents matching the filter, ordered by handle.
func (s *DocumentService) FindDocuments(ctx context.Context, filter texmeta.DocumentFilter) ([]*texmeta.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + documentColumns + " FROM documents")
	appendFilter(&query, &args, filter)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*texmeta.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// DeleteDocument permanently removes a document.
func (s *DocumentService) DeleteDocument(ctx context.Context, handle string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE handle = ?", handle)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return texmeta.Errorf(texmeta.ENOTFOUND, "document %s not found", handle)
	}

	return nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanDocument reads one row selected with documentColumns.
func scanDocument(row scanner) (*texmeta.Document, error) {
	var doc texmeta.Document
	var metadata, createdAt, updatedAt string

	if err := row.Scan(&doc.ID, &doc.SourcePath, &doc.Source, &doc.SourceHash,
		&metadata, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	doc.Metadata = &texmeta.ParsedDocument{}
	if err := json.Unmarshal([]byte(metadata), doc.Metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}

	var err error
	if doc.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if doc.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &doc, nil
}
