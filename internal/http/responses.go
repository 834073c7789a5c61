package httpapp

import (
	"cmp"
	"math/rand/v2"
	"net/http"
	"slices"

	"github.com/alphabot-ai/stance/internal/apperr"
	"github.com/alphabot-ai/stance/internal/model"
	"github.com/alphabot-ai/stance/internal/respond"
)

type responseInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type titleInput struct {
	Title string `json:"title"`
}

type contentInput struct {
	Content string `json:"content"`
}

type responseSort struct {
	Sort string `validate:"required,oneof=newest random upvotes downvotes controversial"`
}

// getResponses lists responses of both kinds, optionally narrowed to an
// author and a target. A target is first looked up among topics; when no
// topic response points at it, replies are tried.
func (s *Server) getResponses(w http.ResponseWriter, r *http.Request) (any, error) {
	ctx := r.Context()
	author, target := r.URL.Query().Get("author"), r.URL.Query().Get("id")

	var authorID string
	if author != "" {
		user, err := s.auth.GetUserByUsername(ctx, author)
		if err != nil {
			return nil, err
		}
		authorID = user.ID
	}
	if target != "" {
		id, err := parseID(target)
		if err != nil {
			return nil, err
		}
		target = id
	}

	var responses []model.Response
	for _, svc := range []*respond.Service{s.toTopic, s.toResponse} {
		var (
			found []model.Response
			err   error
		)
		switch {
		case authorID != "" && target != "":
			found, err = svc.GetByAuthorAndTarget(ctx, authorID, target)
		case authorID != "":
			found, err = svc.GetByAuthor(ctx, authorID)
		case target != "":
			found, err = svc.GetByTarget(ctx, target)
		default:
			found, err = svc.GetResponses(ctx)
		}
		if err != nil {
			return nil, err
		}
		responses = append(responses, found...)
		if target != "" && len(found) > 0 {
			break
		}
	}
	return s.format.Responses(ctx, responses)
}

func (s *Server) getResponsesToTopic(w http.ResponseWriter, r *http.Request) (any, error) {
	ctx := r.Context()
	author, title := r.URL.Query().Get("author"), r.URL.Query().Get("topic")

	var authorID, topicID string
	if author != "" {
		user, err := s.auth.GetUserByUsername(ctx, author)
		if err != nil {
			return nil, err
		}
		authorID = user.ID
	}
	if title != "" {
		t, err := s.topics.GetTopicByTitle(ctx, title)
		if err != nil {
			return nil, err
		}
		topicID = t.ID
	}
	responses, err := s.listResponses(r, s.toTopic, authorID, topicID)
	if err != nil {
		return nil, err
	}
	return s.format.Responses(ctx, responses)
}

func (s *Server) getResponsesToResponse(w http.ResponseWriter, r *http.Request) (any, error) {
	ctx := r.Context()
	author, target := r.URL.Query().Get("author"), r.URL.Query().Get("targetId")

	var authorID string
	if author != "" {
		user, err := s.auth.GetUserByUsername(ctx, author)
		if err != nil {
			return nil, err
		}
		authorID = user.ID
	}
	if target != "" {
		id, err := parseID(target)
		if err != nil {
			return nil, err
		}
		target = id
	}
	responses, err := s.listResponses(r, s.toResponse, authorID, target)
	if err != nil {
		return nil, err
	}
	return s.format.Responses(ctx, responses)
}

func (s *Server) listResponses(r *http.Request, svc *respond.Service, author, target string) ([]model.Response, error) {
	ctx := r.Context()
	switch {
	case author != "" && target != "":
		return svc.GetByAuthorAndTarget(ctx, author, target)
	case author != "":
		return svc.GetByAuthor(ctx, author)
	case target != "":
		return svc.GetByTarget(ctx, target)
	default:
		return svc.GetResponses(ctx)
	}
}

func (s *Server) createResponseToTopic(w http.ResponseWriter, r *http.Request) (any, error) {
	userID, err := s.currentUser(r)
	if err != nil {
		return nil, err
	}
	t, err := s.topics.GetTopicByTitle(r.Context(), pathParam(r, "ref"))
	if err != nil {
		return nil, err
	}
	return s.createResponse(r, s.toTopic, userID, t.ID)
}

func (s *Server) createResponseToResponse(w http.ResponseWriter, r *http.Request) (any, error) {
	userID, err := s.currentUser(r)
	if err != nil {
		return nil, err
	}
	target, err := pathID(r, "ref")
	if err != nil {
		return nil, err
	}
	if _, err := s.anyResponse(r, target); err != nil {
		return nil, err
	}
	return s.createResponse(r, s.toResponse, userID, target)
}

func (s *Server) createResponse(r *http.Request, svc *respond.Service, author, target string) (any, error) {
	var in responseInput
	if err := bindJSON(r, &in); err != nil {
		return nil, err
	}
	created, err := svc.Create(r.Context(), author, in.Title, in.Content, target)
	if err != nil {
		return nil, err
	}
	v, err := s.format.Response(r.Context(), created)
	if err != nil {
		return nil, err
	}
	return map[string]any{"msg": "Response successfully created!", "response": v}, nil
}

// anyResponse finds a response of either kind.
func (s *Server) anyResponse(r *http.Request, id string) (model.Response, error) {
	resp, err := s.toTopic.GetByID(r.Context(), id)
	if !apperr.IsKind(err, apperr.KindNotFound) {
		return resp, err
	}
	return s.toResponse.GetByID(r.Context(), id)
}

// ownResponse resolves the {ref} id and checks the caller wrote it.
func (s *Server) ownResponse(r *http.Request, svc *respond.Service) (string, error) {
	userID, err := s.currentUser(r)
	if err != nil {
		return "", err
	}
	id, err := pathID(r, "ref")
	if err != nil {
		return "", err
	}
	if err := svc.AssertAuthorIsUser(r.Context(), id, userID); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Server) updateResponseTitle(svc *respond.Service) handlerFunc {
	return func(w http.ResponseWriter, r *http.Request) (any, error) {
		id, err := s.ownResponse(r, svc)
		if err != nil {
			return nil, err
		}
		var in titleInput
		if err := bindJSON(r, &in); err != nil {
			return nil, err
		}
		if err := svc.UpdateTitle(r.Context(), id, optionalString(in.Title)); err != nil {
			return nil, err
		}
		return msg("Response successfully updated!"), nil
	}
}

func (s *Server) updateResponseContent(svc *respond.Service) handlerFunc {
	return func(w http.ResponseWriter, r *http.Request) (any, error) {
		id, err := s.ownResponse(r, svc)
		if err != nil {
			return nil, err
		}
		var in contentInput
		if err := bindJSON(r, &in); err != nil {
			return nil, err
		}
		if err := svc.UpdateContent(r.Context(), id, optionalString(in.Content)); err != nil {
			return nil, err
		}
		return msg("Response successfully updated!"), nil
	}
}

func (s *Server) deleteResponse(svc *respond.Service) handlerFunc {
	return func(w http.ResponseWriter, r *http.Request) (any, error) {
		id, err := s.ownResponse(r, svc)
		if err != nil {
			return nil, err
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			return nil, err
		}
		return msg("Response deleted successfully!"), nil
	}
}

// sortResponsesOnTopic orders the responses to a topic. controversial puts
// evenly split responses first: the smaller of the two vote counts decides,
// then the total number of votes.
func (s *Server) sortResponsesOnTopic(w http.ResponseWriter, r *http.Request) (any, error) {
	ctx := r.Context()
	q := responseSort{Sort: pathParam(r, "sort")}
	if err := validateStruct(q); err != nil {
		return nil, err
	}
	t, err := s.topics.GetTopicByTitle(ctx, pathParam(r, "ref"))
	if err != nil {
		return nil, err
	}
	responses, err := s.toTopic.GetByTarget(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	switch q.Sort {
	case "random":
		rand.Shuffle(len(responses), func(i, j int) { responses[i], responses[j] = responses[j], responses[i] })
	case "upvotes", "downvotes", "controversial":
		ids := make([]string, len(responses))
		for i, resp := range responses {
			ids[i] = resp.ID
		}
		tallies, err := s.votes.Tallies(ctx, ids)
		if err != nil {
			return nil, err
		}
		slices.SortStableFunc(responses, func(a, b model.Response) int {
			ta, tb := tallies[a.ID], tallies[b.ID]
			switch q.Sort {
			case "upvotes":
				return cmp.Compare(tb.Up, ta.Up)
			case "downvotes":
				return cmp.Compare(tb.Down, ta.Down)
			default:
				if c := cmp.Compare(min(tb.Up, tb.Down), min(ta.Up, ta.Down)); c != 0 {
					return c
				}
				return cmp.Compare(tb.Up+tb.Down, ta.Up+ta.Down)
			}
		})
	}
	return s.format.Responses(ctx, responses)
}

// getResponsesByLabel lists the responses to a topic that carry a response
// label.
func (s *Server) getResponsesByLabel(w http.ResponseWriter, r *http.Request) (any, error) {
	ctx := r.Context()
	t, err := s.topics.GetTopicByTitle(ctx, pathParam(r, "ref"))
	if err != nil {
		return nil, err
	}
	items, err := s.responseLabels.GetItems(ctx, pathParam(r, "label"))
	if err != nil {
		return nil, err
	}
	responses, err := s.toTopic.GetByTarget(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	labeled := responses[:0]
	for _, resp := range responses {
		if slices.Contains(items, resp.ID) {
			labeled = append(labeled, resp)
		}
	}
	return s.format.Responses(ctx, labeled)
}

// getResponsesForTopicDegree lists the responses to a topic whose authors
// took the given side on it.
func (s *Server) getResponsesForTopicDegree(w http.ResponseWriter, r *http.Request) (any, error) {
	ctx := r.Context()
	raw := pathParam(r, "degree")
	degree, ok := model.ParseDegree(raw)
	if !ok {
		return nil, apperr.NotFound("Degree {0} is not a valid side!", raw)
	}
	t, err := s.topics.GetTopicByTitle(ctx, pathParam(r, "ref"))
	if err != nil {
		return nil, err
	}
	sides, err := s.sides.GetSidesByIssue(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	authors := make(map[string]bool)
	for _, sd := range sides {
		if sd.Degree == degree {
			authors[sd.User] = true
		}
	}
	responses, err := s.toTopic.GetByTarget(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	matching := responses[:0]
	for _, resp := range responses {
		if authors[resp.Author] {
			matching = append(matching, resp)
		}
	}
	return s.format.Responses(ctx, matching)
}

// getDegreeFromResponse returns the side the author of a topic response
// holds on that topic.
func (s *Server) getDegreeFromResponse(w http.ResponseWriter, r *http.Request) (any, error) {
	ctx := r.Context()
	id, err := pathID(r, "ref")
	if err != nil {
		return nil, err
	}
	resp, err := s.toTopic.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sd, err := s.sides.GetSide(ctx, resp.Author, resp.Target)
	if err != nil {
		return nil, err
	}
	return s.format.Side(ctx, sd)
}
