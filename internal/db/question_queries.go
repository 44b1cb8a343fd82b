package db

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// UpsertQuestionParams carries one article into the questions table. The
// search vector is rebuilt on every upsert from the question and answer
// text, weighted by search volume.
type UpsertQuestionParams struct {
	Slug            string
	Question        string
	Answer          string
	Category        string
	CategorySlug    string
	MetaTitle       string
	MetaDescription string
	SourceKeyword   string
	SourceURL       string
	Volume          int
	Difficulty      *int
	WordCount       int
}

// QuestionDetail is the full read model served by the slug lookup.
type QuestionDetail struct {
	QuestionID      int64     `json:"question_id"`
	Slug            string    `json:"slug"`
	Question        string    `json:"question"`
	Answer          string    `json:"answer"`
	Category        string    `json:"category"`
	CategorySlug    string    `json:"category_slug"`
	MetaTitle       string    `json:"meta_title"`
	MetaDescription string    `json:"meta_description"`
	Volume          int       `json:"volume"`
	Difficulty      *int      `json:"difficulty,omitempty"`
	WordCount       int       `json:"word_count"`
	ViewCount       int       `json:"view_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// QuestionSearchResult is one ranked full-text search hit.
type QuestionSearchResult struct {
	QuestionID   int64   `json:"question_id"`
	Slug         string  `json:"slug"`
	Question     string  `json:"question"`
	Category     string  `json:"category"`
	CategorySlug string  `json:"category_slug"`
	Volume       int     `json:"volume"`
	Rank         float64 `json:"rank"`
}

// CategoryCount is one row of the per-category breakdown.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// UpsertQuestionTx inserts or replaces the article stored under the slug,
// inside the supplied transaction. Writes always run transactionally so a
// failed record rolls back cleanly.
func (p *Pool) UpsertQuestionTx(ctx context.Context, tx Tx, params UpsertQuestionParams) error {
	if p == nil || p.gdb == nil {
		return fmt.Errorf("database pool is not initialized")
	}
	if tx == nil {
		return fmt.Errorf("transaction is nil")
	}
	if strings.TrimSpace(params.Slug) == "" {
		return fmt.Errorf("slug must not be empty")
	}
	if strings.TrimSpace(params.Question) == "" {
		return fmt.Errorf("question must not be empty")
	}
	if strings.TrimSpace(params.Answer) == "" {
		return fmt.Errorf("answer must not be empty")
	}

	weights := WeightClassForVolume(params.Volume)

	const q = `
INSERT INTO proxyfaqs.questions (
	slug, question, answer,
	category, category_slug,
	meta_title, meta_description,
	source_keyword, source_url,
	volume, difficulty, word_count,
	view_count, search_vector
) VALUES (
	?, ?, ?,
	?, ?,
	?, ?,
	?, ?,
	?, ?, ?,
	0,
	setweight(to_tsvector('english', ?), ?::"char") ||
	setweight(to_tsvector('english', ?), ?::"char")
)
ON CONFLICT (slug) DO UPDATE SET
	question = EXCLUDED.question,
	answer = EXCLUDED.answer,
	category = EXCLUDED.category,
	category_slug = EXCLUDED.category_slug,
	meta_title = EXCLUDED.meta_title,
	meta_description = EXCLUDED.meta_description,
	source_keyword = EXCLUDED.source_keyword,
	volume = EXCLUDED.volume,
	difficulty = EXCLUDED.difficulty,
	word_count = EXCLUDED.word_count,
	search_vector = EXCLUDED.search_vector,
	updated_at = NOW()`

	tag, err := tx.Exec(ctx, q,
		params.Slug, params.Question, params.Answer,
		params.Category, params.CategorySlug,
		params.MetaTitle, params.MetaDescription,
		params.SourceKeyword, params.SourceURL,
		params.Volume, params.Difficulty, params.WordCount,
		params.Question, weights.Question,
		params.Answer, weights.Answer,
	)
	if err != nil {
		return fmt.Errorf("upsert question %q: %w", params.Slug, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("upsert question %q: no rows affected", params.Slug)
	}
	return nil
}

// GetQuestionBySlug returns the stored article or ErrNoRows.
func (p *Pool) GetQuestionBySlug(ctx context.Context, slug string) (*QuestionDetail, error) {
	if p == nil || p.gdb == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	const q = `
SELECT
	question_id,
	slug,
	question,
	answer,
	category,
	category_slug,
	meta_title,
	meta_description,
	volume,
	difficulty,
	word_count,
	view_count,
	created_at,
	updated_at
FROM proxyfaqs.questions
WHERE slug = ?`

	var detail QuestionDetail
	err := p.QueryRow(ctx, q, slug).Scan(
		&detail.QuestionID,
		&detail.Slug,
		&detail.Question,
		&detail.Answer,
		&detail.Category,
		&detail.CategorySlug,
		&detail.MetaTitle,
		&detail.MetaDescription,
		&detail.Volume,
		&detail.Difficulty,
		&detail.WordCount,
		&detail.ViewCount,
		&detail.CreatedAt,
		&detail.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, ErrNoRows
		}
		return nil, fmt.Errorf("get question %q: %w", slug, err)
	}
	return &detail, nil
}

// SearchQuestions runs a weighted full-text search ranked by ts_rank.
func (p *Pool) SearchQuestions(ctx context.Context, query string, limit int) ([]QuestionSearchResult, error) {
	if p == nil || p.gdb == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query must not be empty")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be > 0")
	}

	const q = `
SELECT
	question_id,
	slug,
	question,
	category,
	category_slug,
	volume,
	ts_rank(search_vector, plainto_tsquery('english', ?)) AS rank
FROM proxyfaqs.questions
WHERE search_vector @@ plainto_tsquery('english', ?)
ORDER BY rank DESC, volume DESC, question_id ASC
LIMIT ?`

	rows, err := p.Query(ctx, q, query, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	defer rows.Close()

	var results []QuestionSearchResult
	for rows.Next() {
		var result QuestionSearchResult
		if err := rows.Scan(
			&result.QuestionID,
			&result.Slug,
			&result.Question,
			&result.Category,
			&result.CategorySlug,
			&result.Volume,
			&result.Rank,
		); err != nil {
			return nil, fmt.Errorf("scan search result: %w", err)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search results: %w", err)
	}
	return results, nil
}

// CountQuestions returns the total number of stored questions.
func (p *Pool) CountQuestions(ctx context.Context) (int64, error) {
	if p == nil || p.gdb == nil {
		return 0, fmt.Errorf("database pool is not initialized")
	}

	var count int64
	if err := p.QueryRow(ctx, `SELECT COUNT(*) FROM proxyfaqs.questions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return count, nil
}

// CountQuestionsByCategory returns per-category counts, largest first.
func (p *Pool) CountQuestionsByCategory(ctx context.Context) ([]CategoryCount, error) {
	if p == nil || p.gdb == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	const q = `
SELECT category, COUNT(*) AS cnt
FROM proxyfaqs.questions
GROUP BY category
ORDER BY cnt DESC, category ASC`

	rows, err := p.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("count questions by category: %w", err)
	}
	defer rows.Close()

	var counts []CategoryCount
	for rows.Next() {
		var row CategoryCount
		if err := rows.Scan(&row.Category, &row.Count); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		counts = append(counts, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category counts: %w", err)
	}
	return counts, nil
}
