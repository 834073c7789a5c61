package httpapp

import (
	"net/http"

	"github.com/alphabot-ai/stance/internal/label"
)

type labelInput struct {
	Title string `json:"title"`
}

func (s *Server) getLabels(svc *label.Service) handlerFunc {
	return func(w http.ResponseWriter, r *http.Request) (any, error) {
		labels, err := svc.GetAllLabels(r.Context())
		if err != nil {
			return nil, err
		}
		return s.format.Labels(r.Context(), labels)
	}
}

func (s *Server) createLabel(svc *label.Service) handlerFunc {
	return func(w http.ResponseWriter, r *http.Request) (any, error) {
		userID, err := s.currentUser(r)
		if err != nil {
			return nil, err
		}
		var in labelInput
		if err := bindJSON(r, &in); err != nil {
			return nil, err
		}
		created, err := svc.Create(r.Context(), userID, in.Title)
		if err != nil {
			return nil, err
		}
		v, err := s.format.Label(r.Context(), created)
		if err != nil {
			return nil, err
		}
		return map[string]any{"msg": "Label successfully created!", "label": v}, nil
	}
}

func (s *Server) deleteLabel(svc *label.Service) handlerFunc {
	return func(w http.ResponseWriter, r *http.Request) (any, error) {
		ctx := r.Context()
		userID, err := s.currentUser(r)
		if err != nil {
			return nil, err
		}
		title := pathParam(r, "title")
		if err := svc.AssertAuthorIsUser(ctx, title, userID); err != nil {
			return nil, err
		}
		l, err := svc.GetLabelByTitle(ctx, title)
		if err != nil {
			return nil, err
		}
		if err := svc.Delete(ctx, l.ID); err != nil {
			return nil, err
		}
		return msg("Label deleted successfully!"), nil
	}
}

// labelTopic attaches a topic label to the topic titled {target}, or
// detaches it.
func (s *Server) labelTopic(add bool) handlerFunc {
	return func(w http.ResponseWriter, r *http.Request) (any, error) {
		ctx := r.Context()
		if _, err := s.currentUser(r); err != nil {
			return nil, err
		}
		t, err := s.topics.GetTopicByTitle(ctx, pathParam(r, "target"))
		if err != nil {
			return nil, err
		}
		return s.toggleLabel(r, s.topicLabels, t.ID, add)
	}
}

// labelResponse attaches a response label to the response with id
// {target}, or detaches it.
func (s *Server) labelResponse(add bool) handlerFunc {
	return func(w http.ResponseWriter, r *http.Request) (any, error) {
		if _, err := s.currentUser(r); err != nil {
			return nil, err
		}
		id, err := pathID(r, "target")
		if err != nil {
			return nil, err
		}
		if _, err := s.anyResponse(r, id); err != nil {
			return nil, err
		}
		return s.toggleLabel(r, s.responseLabels, id, add)
	}
}

func (s *Server) toggleLabel(r *http.Request, svc *label.Service, item string, add bool) (any, error) {
	l, err := svc.GetLabelByTitle(r.Context(), pathParam(r, "label"))
	if err != nil {
		return nil, err
	}
	if add {
		if err := svc.AddLabelToItem(r.Context(), l.ID, item); err != nil {
			return nil, err
		}
		return msg("Label added!"), nil
	}
	if err := svc.RemoveLabelFromItem(r.Context(), l.ID, item); err != nil {
		return nil, err
	}
	return msg("Label removed!"), nil
}
