package sqlite

import (
	"context"

	"github.com/alphabot-ai/stance/internal/model"
)

const voteColumns = `id, user_id, response, value, created_at, updated_at`

func (s *Store) GetVote(ctx context.Context, user, response string) (model.Vote, error) {
	var v model.Vote
	err := s.getOne(ctx, &v, `SELECT `+voteColumns+` FROM votes WHERE user_id = ? AND response = ?`, user, response)
	return v, err
}

// PutVote records the vote, replacing the value of an existing vote by the
// same user on the same response.
func (s *Store) PutVote(ctx context.Context, vote *model.Vote) error {
	_, err := s.db.NamedExecContext(ctx, `
INSERT INTO votes (id, user_id, response, value, created_at, updated_at)
VALUES (:id, :user_id, :response, :value, :created_at, :updated_at)
ON CONFLICT(user_id, response) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`, vote)
	return err
}

func (s *Store) DeleteVote(ctx context.Context, user, response string) error {
	return affectedOrNotFound(s.db.ExecContext(ctx, `DELETE FROM votes WHERE user_id = ? AND response = ?`, user, response))
}

func (s *Store) TallyVotes(ctx context.Context, responses []string) (map[string]model.Tally, error) {
	tallies := make(map[string]model.Tally, len(responses))
	if len(responses) == 0 {
		return tallies, nil
	}
	var rows []struct {
		Response string `db:"response"`
		model.Tally
	}
	err := s.selectIn(ctx, &rows, `
SELECT response,
	SUM(CASE WHEN value > 0 THEN 1 ELSE 0 END) AS up,
	SUM(CASE WHEN value < 0 THEN 1 ELSE 0 END) AS down
FROM votes
WHERE response IN (?)
GROUP BY response
`, responses)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		tallies[row.Response] = row.Tally
	}
	return tallies, nil
}
