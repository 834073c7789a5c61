package httpapp

import (
	"cmp"
	"math/rand/v2"
	"net/http"
	"slices"

	"github.com/alphabot-ai/stance/internal/model"
)

type topicSortQuery struct {
	Sort string `validate:"omitempty,oneof=newest random engagement"`
}

type topicInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *Server) getTopics(w http.ResponseWriter, r *http.Request) (any, error) {
	search := r.URL.Query().Get("search")
	var (
		topics []model.Topic
		err    error
	)
	if search != "" {
		topics, err = s.topics.SearchTopicTitles(r.Context(), search)
	} else {
		topics, err = s.topics.GetAllTopics(r.Context())
	}
	if err != nil {
		return nil, err
	}
	return s.format.Topics(r.Context(), topics)
}

// sortTopics orders all topics by recency, at random, or by how many
// responses they drew.
func (s *Server) sortTopics(w http.ResponseWriter, r *http.Request) (any, error) {
	q := topicSortQuery{Sort: r.URL.Query().Get("sort")}
	if err := validateStruct(q); err != nil {
		return nil, err
	}
	topics, err := s.topics.GetAllTopics(r.Context())
	if err != nil {
		return nil, err
	}
	switch q.Sort {
	case "random":
		rand.Shuffle(len(topics), func(i, j int) { topics[i], topics[j] = topics[j], topics[i] })
	case "engagement":
		ids := make([]string, len(topics))
		for i, t := range topics {
			ids[i] = t.ID
		}
		counts, err := s.toTopic.CountByTargets(r.Context(), ids)
		if err != nil {
			return nil, err
		}
		slices.SortStableFunc(topics, func(a, b model.Topic) int {
			return cmp.Compare(counts[b.ID], counts[a.ID])
		})
	}
	return s.format.Topics(r.Context(), topics)
}

func (s *Server) getTopicsByLabel(w http.ResponseWriter, r *http.Request) (any, error) {
	items, err := s.topicLabels.GetItems(r.Context(), pathParam(r, "label"))
	if err != nil {
		return nil, err
	}
	topics, err := s.topics.GetTopicsByIDs(r.Context(), items)
	if err != nil {
		return nil, err
	}
	return s.format.Topics(r.Context(), topics)
}

func (s *Server) createTopic(w http.ResponseWriter, r *http.Request) (any, error) {
	userID, err := s.currentUser(r)
	if err != nil {
		return nil, err
	}
	var in topicInput
	if err := bindJSON(r, &in); err != nil {
		return nil, err
	}
	created, err := s.topics.Create(r.Context(), userID, in.Title, in.Description)
	if err != nil {
		return nil, err
	}
	v, err := s.format.Topic(r.Context(), created)
	if err != nil {
		return nil, err
	}
	return map[string]any{"msg": "Topic successfully created!", "topic": v}, nil
}

func (s *Server) deleteTopic(w http.ResponseWriter, r *http.Request) (any, error) {
	userID, err := s.currentUser(r)
	if err != nil {
		return nil, err
	}
	t, err := s.topics.GetTopicByTitle(r.Context(), pathParam(r, "title"))
	if err != nil {
		return nil, err
	}
	if err := s.topics.AssertAuthorIsUser(r.Context(), t.ID, userID); err != nil {
		return nil, err
	}
	if err := s.topics.Delete(r.Context(), t.ID); err != nil {
		return nil, err
	}
	return msg("Topic deleted successfully!"), nil
}
