package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/p-n-ai/pai-manual/internal/manual"
)

const dbTimeout = 10 * time.Second

const schemaSQL = `
CREATE TABLE IF NOT EXISTS manual_sections (
	id       TEXT PRIMARY KEY,
	title    TEXT NOT NULL,
	position INT  NOT NULL
);

CREATE TABLE IF NOT EXISTS manual_subsections (
	section_id TEXT   NOT NULL REFERENCES manual_sections(id) ON DELETE CASCADE,
	id         TEXT   NOT NULL,
	title      TEXT   NOT NULL,
	position   INT    NOT NULL,
	keywords   TEXT[] NOT NULL DEFAULT '{}',
	PRIMARY KEY (section_id, id)
);

CREATE TABLE IF NOT EXISTS manual_contents (
	section_id    TEXT NOT NULL,
	subsection_id TEXT NOT NULL,
	level         TEXT NOT NULL CHECK (level IN ('basico', 'intermedio', 'avanzado')),
	body          TEXT NOT NULL,
	PRIMARY KEY (section_id, subsection_id, level),
	FOREIGN KEY (section_id, subsection_id) REFERENCES manual_subsections(section_id, id) ON DELETE CASCADE
);`

// PostgresSource reads and writes the manual catalog in PostgreSQL.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource creates a PostgreSQL-backed catalog source.
func NewPostgresSource(pool *pgxpool.Pool) (*PostgresSource, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresSource{pool: pool}, nil
}

// Migrate creates the catalog tables when they do not exist.
func (s *PostgresSource) Migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("migrate catalog schema: %w", err)
	}
	return nil
}

// Load reads the whole catalog, ordered by the stored positions, and validates it.
func (s *PostgresSource) Load(ctx context.Context) (*manual.StaticCatalog[string], error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	docs, bySection, err := s.loadSections(ctx)
	if err != nil {
		return nil, err
	}
	bySub, err := s.loadSubsections(ctx, docs, bySection)
	if err != nil {
		return nil, err
	}
	if err := s.loadContents(ctx, docs, bySub); err != nil {
		return nil, err
	}

	cat, err := FromDocuments(docs)
	if err != nil {
		return nil, err
	}
	slog.Info("catalog loaded from postgres", "sections", len(docs), "pages", len(cat.Flatten()))
	return cat, nil
}

type subRef struct{ section, sub int }

func (s *PostgresSource) loadSections(ctx context.Context) ([]SectionDoc, map[string]int, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, title FROM manual_sections ORDER BY position ASC`)
	if err != nil {
		return nil, nil, fmt.Errorf("query sections: %w", err)
	}
	defer rows.Close()

	var docs []SectionDoc
	index := make(map[string]int)
	for rows.Next() {
		var sd SectionDoc
		if err := rows.Scan(&sd.ID, &sd.Title); err != nil {
			return nil, nil, fmt.Errorf("scan section: %w", err)
		}
		index[sd.ID] = len(docs)
		docs = append(docs, sd)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate sections: %w", err)
	}
	return docs, index, nil
}

func (s *PostgresSource) loadSubsections(ctx context.Context, docs []SectionDoc, bySection map[string]int) (map[manual.Position]subRef, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT section_id, id, title, keywords
		 FROM manual_subsections
		 ORDER BY section_id, position ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query subsections: %w", err)
	}
	defer rows.Close()

	refs := make(map[manual.Position]subRef)
	for rows.Next() {
		var sectionID string
		var doc SubsectionDoc
		if err := rows.Scan(&sectionID, &doc.ID, &doc.Title, &doc.Keywords); err != nil {
			return nil, fmt.Errorf("scan subsection: %w", err)
		}
		i, ok := bySection[sectionID]
		if !ok {
			continue
		}
		doc.Content = make(map[string]string)
		refs[manual.Position{SectionID: sectionID, SubsectionID: doc.ID}] = subRef{section: i, sub: len(docs[i].Subsections)}
		docs[i].Subsections = append(docs[i].Subsections, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subsections: %w", err)
	}
	return refs, nil
}

func (s *PostgresSource) loadContents(ctx context.Context, docs []SectionDoc, bySub map[manual.Position]subRef) error {
	rows, err := s.pool.Query(ctx, `SELECT section_id, subsection_id, level, body FROM manual_contents`)
	if err != nil {
		return fmt.Errorf("query contents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p manual.Position
		var level, body string
		if err := rows.Scan(&p.SectionID, &p.SubsectionID, &level, &body); err != nil {
			return fmt.Errorf("scan content: %w", err)
		}
		ref, ok := bySub[p]
		if !ok {
			continue
		}
		docs[ref.section].Subsections[ref.sub].Content[level] = body
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate contents: %w", err)
	}
	return nil
}

// Import replaces the stored catalog with cat in a single transaction.
func (s *PostgresSource) Import(ctx context.Context, cat manual.Catalog[string]) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM manual_sections`); err != nil {
		return fmt.Errorf("clear catalog: %w", err)
	}

	batch := &pgx.Batch{}
	var pages int
	for i, sec := range cat.ListSections() {
		batch.Queue(`INSERT INTO manual_sections (id, title, position) VALUES ($1, $2, $3)`,
			sec.ID, sec.Title, i)
		for j, sub := range sec.Subsections {
			keywords := sub.SearchKeywords
			if keywords == nil {
				keywords = []string{}
			}
			batch.Queue(`INSERT INTO manual_subsections (section_id, id, title, position, keywords)
				 VALUES ($1, $2, $3, $4, $5)`,
				sec.ID, sub.ID, sub.Title, j, keywords)
			for level, body := range sub.Content {
				batch.Queue(`INSERT INTO manual_contents (section_id, subsection_id, level, body)
					 VALUES ($1, $2, $3, $4)`,
					sec.ID, sub.ID, string(level), body)
			}
			pages++
		}
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert catalog: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}

	slog.Info("catalog imported to postgres", "sections", len(cat.ListSections()), "pages", pages)
	return nil
}
