package httpapp

import (
	"net/http"
)

// handlerFunc serves one synchronization. A nil error writes the value as
// JSON with status 200.
type handlerFunc func(w http.ResponseWriter, r *http.Request) (any, error)

type limitClass string

const (
	limitNone  limitClass = ""
	limitLogin limitClass = "login"
	limitWrite limitClass = "write"
)

type route struct {
	method  string
	pattern string
	limit   limitClass
	handle  handlerFunc
}

// routes is the full API surface.
func (s *Server) routes() []route {
	return []route{
		// sessions and users
		{http.MethodGet, "/api/session", limitNone, s.getSessionUser},
		{http.MethodGet, "/api/users", limitNone, s.getUsers},
		{http.MethodGet, "/api/users/{username}", limitNone, s.getUser},
		{http.MethodPost, "/api/users", limitLogin, s.createUser},
		{http.MethodPatch, "/api/users/username", limitWrite, s.updateUsername},
		{http.MethodPatch, "/api/users/password", limitLogin, s.updatePassword},
		{http.MethodDelete, "/api/users", limitWrite, s.deleteUser},
		{http.MethodPost, "/api/login", limitLogin, s.logIn},
		{http.MethodPost, "/api/logout", limitNone, s.logOut},

		// topics
		{http.MethodGet, "/api/topics", limitNone, s.getTopics},
		{http.MethodGet, "/api/topics/sort", limitNone, s.sortTopics},
		{http.MethodGet, "/api/topics/label/{label}", limitNone, s.getTopicsByLabel},
		{http.MethodPost, "/api/topic", limitWrite, s.createTopic},
		{http.MethodDelete, "/api/topic/{title}", limitWrite, s.deleteTopic},

		// responses; {ref} is a topic title or a response id depending on the route
		{http.MethodGet, "/api/responses", limitNone, s.getResponses},
		{http.MethodGet, "/api/responses/topic", limitNone, s.getResponsesToTopic},
		{http.MethodPost, "/api/responses/topic/{ref}", limitWrite, s.createResponseToTopic},
		{http.MethodPatch, "/api/responses/topic/{ref}/title", limitWrite, s.updateResponseTitle(s.toTopic)},
		{http.MethodPatch, "/api/responses/topic/{ref}/content", limitWrite, s.updateResponseContent(s.toTopic)},
		{http.MethodDelete, "/api/responses/topic/{ref}", limitWrite, s.deleteResponse(s.toTopic)},
		{http.MethodGet, "/api/responses/topic/{ref}/sort/{sort}", limitNone, s.sortResponsesOnTopic},
		{http.MethodGet, "/api/responses/topic/{ref}/label/{label}", limitNone, s.getResponsesByLabel},
		{http.MethodGet, "/api/responses/topic/{ref}/degree/{degree}", limitNone, s.getResponsesForTopicDegree},
		{http.MethodGet, "/api/responses/response", limitNone, s.getResponsesToResponse},
		{http.MethodPost, "/api/responses/response/{ref}", limitWrite, s.createResponseToResponse},
		{http.MethodPatch, "/api/responses/response/{ref}/title", limitWrite, s.updateResponseTitle(s.toResponse)},
		{http.MethodPatch, "/api/responses/response/{ref}/content", limitWrite, s.updateResponseContent(s.toResponse)},
		{http.MethodDelete, "/api/responses/response/{ref}", limitWrite, s.deleteResponse(s.toResponse)},
		{http.MethodGet, "/api/responses/response/{ref}/degree", limitNone, s.getDegreeFromResponse},

		// sides
		{http.MethodGet, "/api/side", limitNone, s.getSidesOfUser},
		{http.MethodPost, "/api/side/new/{topic}", limitWrite, s.createSide},
		{http.MethodPatch, "/api/side/update/{topic}", limitWrite, s.updateSide},

		// labels
		{http.MethodGet, "/api/label/topic", limitNone, s.getLabels(s.topicLabels)},
		{http.MethodPost, "/api/label/topic", limitWrite, s.createLabel(s.topicLabels)},
		{http.MethodDelete, "/api/label/topic/{title}", limitWrite, s.deleteLabel(s.topicLabels)},
		{http.MethodGet, "/api/label/response", limitNone, s.getLabels(s.responseLabels)},
		{http.MethodPost, "/api/label/response", limitWrite, s.createLabel(s.responseLabels)},
		{http.MethodDelete, "/api/label/response/{title}", limitWrite, s.deleteLabel(s.responseLabels)},
		{http.MethodPatch, "/api/label/{label}/add/topic/{target}", limitWrite, s.labelTopic(true)},
		{http.MethodPatch, "/api/label/{label}/remove/topic/{target}", limitWrite, s.labelTopic(false)},
		{http.MethodPatch, "/api/label/{label}/add/response/{target}", limitWrite, s.labelResponse(true)},
		{http.MethodPatch, "/api/label/{label}/remove/response/{target}", limitWrite, s.labelResponse(false)},

		// votes
		{http.MethodPatch, "/api/vote/upvote/{id}", limitWrite, s.upvote},
		{http.MethodPatch, "/api/vote/downvote/{id}", limitWrite, s.downvote},
		{http.MethodPatch, "/api/vote/unvote/{id}", limitWrite, s.unvote},
		{http.MethodGet, "/api/vote/count", limitNone, s.getCount},

		// friends
		{http.MethodGet, "/api/friends", limitNone, s.getFriends},
		{http.MethodDelete, "/api/friends/{friend}", limitWrite, s.removeFriend},
		{http.MethodGet, "/api/friend/requests", limitNone, s.getRequests},
		{http.MethodPost, "/api/friend/requests/{to}", limitWrite, s.sendFriendRequest},
		{http.MethodDelete, "/api/friend/requests/{to}", limitWrite, s.removeFriendRequest},
		{http.MethodPut, "/api/friend/accept/{from}", limitWrite, s.acceptFriendRequest},
		{http.MethodPut, "/api/friend/reject/{from}", limitWrite, s.rejectFriendRequest},
	}
}

// adapt turns a route into an http.HandlerFunc: rate limit, run, then write
// the value or the error.
func (s *Server) adapt(rt route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.allowRateLimit(w, r, rt.limit) {
			return
		}
		out, err := rt.handle(w, r)
		if err != nil {
			s.writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func msg(text string) map[string]any {
	return map[string]any{"msg": text}
}
