package httpapp

import (
	"net/http"
)

type countQuery struct {
	ID string `validate:"required,uuid"`
}

func (s *Server) upvote(w http.ResponseWriter, r *http.Request) (any, error) {
	user, id, err := s.voteTarget(r)
	if err != nil {
		return nil, err
	}
	if err := s.votes.Upvote(r.Context(), user, id); err != nil {
		return nil, err
	}
	return msg("Upvoted!"), nil
}

func (s *Server) downvote(w http.ResponseWriter, r *http.Request) (any, error) {
	user, id, err := s.voteTarget(r)
	if err != nil {
		return nil, err
	}
	if err := s.votes.Downvote(r.Context(), user, id); err != nil {
		return nil, err
	}
	return msg("Downvoted!"), nil
}

func (s *Server) unvote(w http.ResponseWriter, r *http.Request) (any, error) {
	user, id, err := s.voteTarget(r)
	if err != nil {
		return nil, err
	}
	if err := s.votes.Unvote(r.Context(), user, id); err != nil {
		return nil, err
	}
	return msg("Unvoted!"), nil
}

// voteTarget returns the caller and the existing response named by {id}.
func (s *Server) voteTarget(r *http.Request) (string, string, error) {
	user, err := s.currentUser(r)
	if err != nil {
		return "", "", err
	}
	id, err := pathID(r, "id")
	if err != nil {
		return "", "", err
	}
	if _, err := s.anyResponse(r, id); err != nil {
		return "", "", err
	}
	return user, id, nil
}

func (s *Server) getCount(w http.ResponseWriter, r *http.Request) (any, error) {
	q := countQuery{ID: r.URL.Query().Get("id")}
	if err := validateStruct(q); err != nil {
		return nil, err
	}
	count, err := s.votes.Count(r.Context(), q.ID)
	if err != nil {
		return nil, err
	}
	return map[string]any{"id": q.ID, "count": count}, nil
}
