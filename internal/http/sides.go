package httpapp

import (
	"net/http"

	"github.com/alphabot-ai/stance/internal/model"
)

type sideQuery struct {
	User  string `validate:"required"`
	Topic string
}

type sideInput struct {
	Degree string `json:"degree"`
}

// getSidesOfUser lists the sides a user took, or only the one on topic
// when given.
func (s *Server) getSidesOfUser(w http.ResponseWriter, r *http.Request) (any, error) {
	ctx := r.Context()
	q := sideQuery{User: r.URL.Query().Get("user"), Topic: r.URL.Query().Get("topic")}
	if err := validateStruct(q); err != nil {
		return nil, err
	}
	user, err := s.auth.GetUserByUsername(ctx, q.User)
	if err != nil {
		return nil, err
	}

	var sides []model.Side
	if q.Topic != "" {
		t, err := s.topics.GetTopicByTitle(ctx, q.Topic)
		if err != nil {
			return nil, err
		}
		sides, err = s.sides.GetSideByUserAndIssue(ctx, user.ID, t.ID)
		if err != nil {
			return nil, err
		}
	} else {
		sides, err = s.sides.GetSideByUser(ctx, user.ID)
		if err != nil {
			return nil, err
		}
	}
	return s.format.Sides(ctx, sides)
}

func (s *Server) createSide(w http.ResponseWriter, r *http.Request) (any, error) {
	ctx := r.Context()
	userID, err := s.currentUser(r)
	if err != nil {
		return nil, err
	}
	t, err := s.topics.GetTopicByTitle(ctx, pathParam(r, "topic"))
	if err != nil {
		return nil, err
	}
	var in sideInput
	if err := bindJSON(r, &in); err != nil {
		return nil, err
	}
	created, err := s.sides.Create(ctx, userID, t.ID, in.Degree)
	if err != nil {
		return nil, err
	}
	v, err := s.format.Side(ctx, created)
	if err != nil {
		return nil, err
	}
	return map[string]any{"msg": "Side successfully created!", "side": v}, nil
}

func (s *Server) updateSide(w http.ResponseWriter, r *http.Request) (any, error) {
	ctx := r.Context()
	userID, err := s.currentUser(r)
	if err != nil {
		return nil, err
	}
	t, err := s.topics.GetTopicByTitle(ctx, pathParam(r, "topic"))
	if err != nil {
		return nil, err
	}
	if err := s.sides.AssertUserHasSide(ctx, userID, t.ID); err != nil {
		return nil, err
	}
	var in sideInput
	if err := bindJSON(r, &in); err != nil {
		return nil, err
	}
	if err := s.sides.Update(ctx, userID, t.ID, optionalString(in.Degree)); err != nil {
		return nil, err
	}
	return msg("Side successfully updated!"), nil
}
