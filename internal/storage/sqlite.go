// Package storage provides the SQLite implementation of the Store interface.
package storage

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/inkstone/quill/internal/models"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		title TEXT,
		content TEXT NOT NULL,
		quality TEXT NOT NULL DEFAULT 'reference',
		tags TEXT,
		format TEXT,
		source_file TEXT,
		doc_created_at TIMESTAMP,
		doc_modified_at TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents(created_at);
	CREATE INDEX IF NOT EXISTS idx_documents_quality ON documents(quality);

	CREATE TABLE IF NOT EXISTS chunks (
		id TEXT PRIMARY KEY,
		document_id TEXT NOT NULL,
		content TEXT NOT NULL,
		chunk_index INTEGER NOT NULL,
		embedding BLOB,
		FOREIGN KEY (document_id) REFERENCES documents(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_chunks_document_id ON chunks(document_id);
	CREATE INDEX IF NOT EXISTS idx_chunks_document_chunk ON chunks(document_id, chunk_index);
	`
	_, err := db.Exec(schema)
	return err
}

// CreateDocument inserts a document, replacing any existing row with the
// same ID.
func (s *SQLiteStore) CreateDocument(ctx context.Context, doc *models.Document) error {
	tagsJSON, err := json.Marshal(doc.Metadata.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO documents (id, title, content, quality, tags, format, source_file, doc_created_at, doc_modified_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.Title, doc.Content, string(doc.Metadata.Quality), string(tagsJSON),
		doc.Metadata.Format, doc.Metadata.SourceFile,
		nullableTime(doc.Metadata.CreatedAt), nullableTime(doc.Metadata.ModifiedAt),
		doc.CreatedAt, doc.UpdatedAt,
	)
	return err
}

// GetDocument returns a document by ID.
func (s *SQLiteStore) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, content, quality, tags, format, source_file, doc_created_at, doc_modified_at, created_at, updated_at
		 FROM documents WHERE id = ?`, id,
	)
	doc, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("document not found: %s", id)
	}
	return doc, err
}

// DeleteDocument removes a document by ID.
func (s *SQLiteStore) DeleteDocument(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	return err
}

// ListDocuments returns documents with offset and limit, newest first.
func (s *SQLiteStore) ListDocuments(ctx context.Context, offset, limit int) ([]*models.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content, quality, tags, format, source_file, doc_created_at, doc_modified_at, created_at, updated_at
		 FROM documents ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// BatchCreateChunks inserts chunks with their embeddings in one transaction.
func (s *SQLiteStore) BatchCreateChunks(ctx context.Context, chunks []*models.Chunk) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO chunks (id, document_id, content, chunk_index, embedding) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.DocumentID, chunk.Content, chunk.ChunkIndex, encodeEmbedding(chunk.Embedding)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListChunks returns every chunk joined with its document's metadata, in a
// stable order (document creation, then chunk index). The order matters: the
// lexical index breaks score ties by insertion order.
func (s *SQLiteStore) ListChunks(ctx context.Context) ([]*models.Chunk, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.document_id, c.content, c.chunk_index, c.embedding,
		        d.quality, d.tags, d.format, d.source_file, d.doc_created_at, d.doc_modified_at
		 FROM chunks c JOIN documents d ON c.document_id = d.id
		 ORDER BY d.created_at, d.id, c.chunk_index`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanChunks(rows)
}

// GetChunksByDocumentID returns a document's chunks ordered by chunk index.
func (s *SQLiteStore) GetChunksByDocumentID(ctx context.Context, docID string) ([]*models.Chunk, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.document_id, c.content, c.chunk_index, c.embedding,
		        d.quality, d.tags, d.format, d.source_file, d.doc_created_at, d.doc_modified_at
		 FROM chunks c JOIN documents d ON c.document_id = d.id
		 WHERE c.document_id = ? ORDER BY c.chunk_index`,
		docID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanChunks(rows)
}

// DeleteChunksByDocumentID removes all chunks for a document.
func (s *SQLiteStore) DeleteChunksByDocumentID(ctx context.Context, docID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM chunks WHERE document_id = ?`, docID)
	return err
}

// CountDocuments returns the number of documents.
func (s *SQLiteStore) CountDocuments(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n)
	return n, err
}

// CountChunks returns the number of chunks.
func (s *SQLiteStore) CountChunks(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&n)
	return n, err
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(row rowScanner) (*models.Document, error) {
	var doc models.Document
	var quality, tagsJSON, format, sourceFile sql.NullString
	var docCreated, docModified sql.NullTime
	err := row.Scan(&doc.ID, &doc.Title, &doc.Content, &quality, &tagsJSON, &format, &sourceFile,
		&docCreated, &docModified, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	doc.Metadata = buildMetadata(quality, tagsJSON, format, sourceFile, docCreated, docModified)
	return &doc, nil
}

func scanChunks(rows *sql.Rows) ([]*models.Chunk, error) {
	var chunks []*models.Chunk
	for rows.Next() {
		var chunk models.Chunk
		var emb []byte
		var quality, tagsJSON, format, sourceFile sql.NullString
		var docCreated, docModified sql.NullTime
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Content, &chunk.ChunkIndex, &emb,
			&quality, &tagsJSON, &format, &sourceFile, &docCreated, &docModified); err != nil {
			return nil, err
		}
		chunk.Embedding = decodeEmbedding(emb)
		chunk.Metadata = buildMetadata(quality, tagsJSON, format, sourceFile, docCreated, docModified)
		chunks = append(chunks, &chunk)
	}
	return chunks, rows.Err()
}

func buildMetadata(quality, tagsJSON, format, sourceFile sql.NullString, created, modified sql.NullTime) models.ChunkMetadata {
	m := models.ChunkMetadata{
		Quality:    models.QualityRating(quality.String),
		Format:     format.String,
		SourceFile: sourceFile.String,
	}
	if tagsJSON.String != "" {
		_ = json.Unmarshal([]byte(tagsJSON.String), &m.Tags)
	}
	if created.Valid {
		m.CreatedAt = created.Time
	}
	if modified.Valid {
		m.ModifiedAt = modified.Time
	}
	return m
}

func nullableTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

// encodeEmbedding packs a float32 vector as little-endian bytes.
func encodeEmbedding(emb []float32) []byte {
	if len(emb) == 0 {
		return nil
	}
	out := make([]byte, len(emb)*4)
	for i, v := range emb {
		binary.LittleEndian.PutUint32(out[i*4:(i+1)*4], math.Float32bits(v))
	}
	return out
}

func decodeEmbedding(b []byte) []float32 {
	if len(b) == 0 {
		return nil
	}
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4 : (i+1)*4]))
	}
	return out
}
