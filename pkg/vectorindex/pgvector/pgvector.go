package pgvector

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgv "github.com/pgvector/pgvector-go"
	pgvpgx "github.com/pgvector/pgvector-go/pgx"

	"voiceread-be/pkg/embedding"
	"voiceread-be/pkg/vectorindex"
)

const tableName = "reader_chunks"

// Index stores chunk embeddings in Postgres with the pgvector extension.
// The table is recreated on the first Add after a Reset, sized to the
// provider's vector dimension.
type Index struct {
	mu       sync.RWMutex
	pool     *pgxpool.Pool
	provider embedding.EmbeddingProvider
	count    int
	ready    bool
}

var _ vectorindex.Index = &Index{}

func NewIndex(ctx context.Context, connString string, provider embedding.EmbeddingProvider) (*Index, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse pg connection string: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgvpgx.RegisterTypes(ctx, conn)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		pool.Close()
		return nil, fmt.Errorf("enable pgvector extension: %w", err)
	}
	return &Index{pool: pool, provider: provider}, nil
}

func (idx *Index) Close() {
	idx.pool.Close()
}

func (idx *Index) Add(ctx context.Context, texts []string, metas []map[string]interface{}, ids []string) error {
	if len(texts) != len(ids) || (metas != nil && len(metas) != len(texts)) {
		return errors.New("texts, metas and ids length mismatch")
	}

	if prep, ok := idx.provider.(embedding.Preparer); ok {
		if err := prep.Prepare(texts); err != nil {
			return err
		}
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	for i, text := range texts {
		res, err := idx.provider.Generate(text, "RETRIEVAL_DOCUMENT")
		if err != nil {
			return err
		}
		vec := res.Embedding.Values

		if !idx.ready {
			if err := idx.createTable(ctx, len(vec)); err != nil {
				return err
			}
			idx.ready = true
		}

		var page int
		var label string
		if metas != nil {
			if v, ok := metas[i]["page"].(int); ok {
				page = v
			}
			if v, ok := metas[i]["label"].(string); ok {
				label = v
			}
		}

		_, err = idx.pool.Exec(ctx,
			`INSERT INTO `+tableName+` (id, chunk_text, page, label, embedding)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO UPDATE SET chunk_text = $2, page = $3, label = $4, embedding = $5`,
			ids[i], text, page, label, pgv.NewVector(vec),
		)
		if err != nil {
			return fmt.Errorf("insert chunk %s: %w", ids[i], err)
		}
		idx.count++
	}
	return nil
}

func (idx *Index) Query(ctx context.Context, text string, k int) ([]vectorindex.Hit, error) {
	if k <= 0 {
		k = 5
	}
	res, err := idx.provider.Generate(text, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, err
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()
	if !idx.ready {
		return nil, nil
	}

	rows, err := idx.pool.Query(ctx,
		`SELECT id, chunk_text, page, label, 1 - (embedding <=> $1) AS score
		 FROM `+tableName+`
		 ORDER BY embedding <=> $1
		 LIMIT $2`,
		pgv.NewVector(res.Embedding.Values), k,
	)
	if err != nil {
		return nil, fmt.Errorf("query chunks: %w", err)
	}
	defer rows.Close()

	var hits []vectorindex.Hit
	for rows.Next() {
		var h vectorindex.Hit
		var page int
		var label string
		if err := rows.Scan(&h.ID, &h.Text, &page, &label, &h.Score); err != nil {
			return nil, fmt.Errorf("scan chunk row: %w", err)
		}
		h.Meta = map[string]interface{}{"page": page, "label": label}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

func (idx *Index) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.count
}

// Reset drops the chunk table; the next Add recreates it at the right
// dimension.
func (idx *Index) Reset(ctx context.Context) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if _, err := idx.pool.Exec(ctx, "DROP TABLE IF EXISTS "+tableName); err != nil {
		return fmt.Errorf("drop chunk table: %w", err)
	}
	idx.count = 0
	idx.ready = false
	return nil
}

func (idx *Index) createTable(ctx context.Context, dimension int) error {
	_, err := idx.pool.Exec(ctx, fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			chunk_text TEXT NOT NULL,
			page INT NOT NULL,
			label TEXT NOT NULL,
			embedding vector(%d)
		)`, tableName, dimension))
	if err != nil {
		return fmt.Errorf("create chunk table: %w", err)
	}
	return nil
}
