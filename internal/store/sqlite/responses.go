package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/alphabot-ai/stance/internal/model"
)

const responseColumns = `id, kind, author, title, content, target, created_at, updated_at`

func (s *Store) CreateResponse(ctx context.Context, response *model.Response) error {
	_, err := s.db.NamedExecContext(ctx, `
INSERT INTO responses (id, kind, author, title, content, target, created_at, updated_at)
VALUES (:id, :kind, :author, :title, :content, :target, :created_at, :updated_at)
`, response)
	return insertErr(err)
}

func (s *Store) GetResponse(ctx context.Context, kind model.Kind, id string) (model.Response, error) {
	var r model.Response
	err := s.getOne(ctx, &r, `SELECT `+responseColumns+` FROM responses WHERE kind = ? AND id = ?`, kind, id)
	return r, err
}

func (s *Store) ListResponses(ctx context.Context, filter model.ResponseFilter) ([]model.Response, error) {
	var (
		where []string
		args  []any
	)
	if filter.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, filter.Kind)
	}
	if filter.Author != "" {
		where = append(where, "author = ?")
		args = append(args, filter.Author)
	}
	if filter.Target != "" {
		where = append(where, "target = ?")
		args = append(args, filter.Target)
	}

	query := `SELECT ` + responseColumns + ` FROM responses`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, rowid DESC`

	responses := []model.Response{}
	err := s.db.SelectContext(ctx, &responses, query, args...)
	return responses, err
}

func (s *Store) ListResponsesByIDs(ctx context.Context, kind model.Kind, ids []string) ([]model.Response, error) {
	responses := []model.Response{}
	if len(ids) == 0 {
		return responses, nil
	}
	err := s.selectIn(ctx, &responses, `SELECT `+responseColumns+` FROM responses WHERE kind = ? AND id IN (?)`, kind, ids)
	return responses, err
}

func (s *Store) UpdateResponse(ctx context.Context, kind model.Kind, id string, update model.ResponseUpdate, at time.Time) error {
	set := []string{"updated_at = ?"}
	args := []any{at}
	if update.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *update.Title)
	}
	if update.Content != nil {
		set = append(set, "content = ?")
		args = append(args, *update.Content)
	}
	args = append(args, kind, id)
	query := `UPDATE responses SET ` + strings.Join(set, ", ") + ` WHERE kind = ? AND id = ?`
	return affectedOrNotFound(s.db.ExecContext(ctx, query, args...))
}

func (s *Store) DeleteResponse(ctx context.Context, kind model.Kind, id string) error {
	return affectedOrNotFound(s.db.ExecContext(ctx, `DELETE FROM responses WHERE kind = ? AND id = ?`, kind, id))
}

// CountResponsesByTarget returns the number of responses of kind pointing at
// each target. Targets without responses are absent from the map.
func (s *Store) CountResponsesByTarget(ctx context.Context, kind model.Kind, targets []string) (map[string]int, error) {
	counts := make(map[string]int, len(targets))
	if len(targets) == 0 {
		return counts, nil
	}
	var rows []struct {
		Target string `db:"target"`
		N      int    `db:"n"`
	}
	err := s.selectIn(ctx, &rows, `
SELECT target, COUNT(*) AS n FROM responses
WHERE kind = ? AND target IN (?)
GROUP BY target
`, kind, targets)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.Target] = row.N
	}
	return counts, nil
}
