package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/zjrosen/lexreg/internal/catalog"
)

// CatalogRepository reads and writes catalog definitions.
type CatalogRepository struct {
	db *sql.DB
}

func newCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Save replaces the stored catalog with file in a single transaction.
func (r *CatalogRepository) Save(ctx context.Context, file catalog.File) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range []string{
		`DELETE FROM concept_revisions`,
		`DELETE FROM concepts`,
		`DELETE FROM article_revisions`,
		`DELETE FROM articles`,
	} {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear catalog: %w", err)
		}
	}

	for _, def := range file.Concepts {
		m, revs := toConceptModels(def)
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO concepts (code, name, since, path, evaluator) VALUES (?, ?, ?, ?, ?)`,
			m.Code, m.Name, m.Since, m.Path, m.Evaluator,
		); err != nil {
			return fmt.Errorf("failed to insert concept %d: %w", m.Code, err)
		}
		for _, rm := range revs {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO concept_revisions (concept_code, position, since, version, path, evaluator) VALUES (?, ?, ?, ?, ?, ?)`,
				rm.ConceptCode, rm.Position, rm.Since, rm.Version, rm.Path, rm.Evaluator,
			); err != nil {
				return fmt.Errorf("failed to insert concept %d revision %d: %w", m.Code, rm.Position, err)
			}
		}
	}

	for _, def := range file.Articles {
		m, revs := toArticleModels(def)
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO articles (code, name, since, seqs, role, sums) VALUES (?, ?, ?, ?, ?, ?)`,
			m.Code, m.Name, m.Since, m.Seqs, m.Role, m.Sums,
		); err != nil {
			return fmt.Errorf("failed to insert article %d: %w", m.Code, err)
		}
		for _, rm := range revs {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO article_revisions (article_code, position, since, version, seqs, role, sums) VALUES (?, ?, ?, ?, ?, ?, ?)`,
				rm.ArticleCode, rm.Position, rm.Since, rm.Version, rm.Seqs, rm.Role, rm.Sums,
			); err != nil {
				return fmt.Errorf("failed to insert article %d revision %d: %w", m.Code, rm.Position, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	return nil
}

// Load reads every stored definition, ordered by code.
func (r *CatalogRepository) Load(ctx context.Context) (catalog.File, error) {
	concepts, err := r.loadConcepts(ctx)
	if err != nil {
		return catalog.File{}, err
	}
	articles, err := r.loadArticles(ctx)
	if err != nil {
		return catalog.File{}, err
	}
	return catalog.File{Concepts: concepts, Articles: articles}, nil
}

func (r *CatalogRepository) loadConcepts(ctx context.Context) ([]catalog.ConceptDef, error) {
	revs := make(map[int32][]*ConceptRevisionModel)
	rows, err := r.db.QueryContext(ctx,
		`SELECT concept_code, position, since, version, path, evaluator FROM concept_revisions ORDER BY concept_code, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list concept revisions: %w", err)
	}
	for rows.Next() {
		var rm ConceptRevisionModel
		if err := rows.Scan(&rm.ConceptCode, &rm.Position, &rm.Since, &rm.Version, &rm.Path, &rm.Evaluator); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan concept revision row: %w", err)
		}
		revs[rm.ConceptCode] = append(revs[rm.ConceptCode], &rm)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("error iterating concept revision rows: %w", err)
	}
	_ = rows.Close()

	rows, err = r.db.QueryContext(ctx,
		`SELECT code, name, since, path, evaluator FROM concepts ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list concepts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var defs []catalog.ConceptDef
	for rows.Next() {
		var m ConceptModel
		if err := rows.Scan(&m.Code, &m.Name, &m.Since, &m.Path, &m.Evaluator); err != nil {
			return nil, fmt.Errorf("failed to scan concept row: %w", err)
		}
		def, err := m.toDefinition(revs[m.Code])
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating concept rows: %w", err)
	}
	return defs, nil
}

func (r *CatalogRepository) loadArticles(ctx context.Context) ([]catalog.ArticleDef, error) {
	revs := make(map[int32][]*ArticleRevisionModel)
	rows, err := r.db.QueryContext(ctx,
		`SELECT article_code, position, since, version, seqs, role, sums FROM article_revisions ORDER BY article_code, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list article revisions: %w", err)
	}
	for rows.Next() {
		var rm ArticleRevisionModel
		if err := rows.Scan(&rm.ArticleCode, &rm.Position, &rm.Since, &rm.Version, &rm.Seqs, &rm.Role, &rm.Sums); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan article revision row: %w", err)
		}
		revs[rm.ArticleCode] = append(revs[rm.ArticleCode], &rm)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("error iterating article revision rows: %w", err)
	}
	_ = rows.Close()

	rows, err = r.db.QueryContext(ctx,
		`SELECT code, name, since, seqs, role, sums FROM articles ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var defs []catalog.ArticleDef
	for rows.Next() {
		var m ArticleModel
		if err := rows.Scan(&m.Code, &m.Name, &m.Since, &m.Seqs, &m.Role, &m.Sums); err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}
		def, err := m.toDefinition(revs[m.Code])
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}
	return defs, nil
}
