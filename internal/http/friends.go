package httpapp

import (
	"net/http"
)

func (s *Server) getFriends(w http.ResponseWriter, r *http.Request) (any, error) {
	userID, err := s.currentUser(r)
	if err != nil {
		return nil, err
	}
	ids, err := s.friends.GetFriends(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	return s.auth.IDsToUsernames(r.Context(), ids)
}

func (s *Server) removeFriend(w http.ResponseWriter, r *http.Request) (any, error) {
	userID, other, err := s.userPair(r, "friend")
	if err != nil {
		return nil, err
	}
	if err := s.friends.RemoveFriend(r.Context(), userID, other); err != nil {
		return nil, err
	}
	return msg("Unfriended!"), nil
}

func (s *Server) getRequests(w http.ResponseWriter, r *http.Request) (any, error) {
	userID, err := s.currentUser(r)
	if err != nil {
		return nil, err
	}
	requests, err := s.friends.GetRequests(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	return s.format.FriendRequests(r.Context(), requests)
}

func (s *Server) sendFriendRequest(w http.ResponseWriter, r *http.Request) (any, error) {
	userID, to, err := s.userPair(r, "to")
	if err != nil {
		return nil, err
	}
	if _, err := s.friends.SendRequest(r.Context(), userID, to); err != nil {
		return nil, err
	}
	return msg("Sent request!"), nil
}

func (s *Server) removeFriendRequest(w http.ResponseWriter, r *http.Request) (any, error) {
	userID, to, err := s.userPair(r, "to")
	if err != nil {
		return nil, err
	}
	if err := s.friends.RemoveRequest(r.Context(), userID, to); err != nil {
		return nil, err
	}
	return msg("Removed request!"), nil
}

func (s *Server) acceptFriendRequest(w http.ResponseWriter, r *http.Request) (any, error) {
	userID, from, err := s.userPair(r, "from")
	if err != nil {
		return nil, err
	}
	if err := s.friends.AcceptRequest(r.Context(), from, userID); err != nil {
		return nil, err
	}
	return msg("Accepted request!"), nil
}

func (s *Server) rejectFriendRequest(w http.ResponseWriter, r *http.Request) (any, error) {
	userID, from, err := s.userPair(r, "from")
	if err != nil {
		return nil, err
	}
	if err := s.friends.RejectRequest(r.Context(), from, userID); err != nil {
		return nil, err
	}
	return msg("Rejected request!"), nil
}

// userPair returns the caller and the id of the user named by the path
// parameter.
func (s *Server) userPair(r *http.Request, param string) (string, string, error) {
	userID, err := s.currentUser(r)
	if err != nil {
		return "", "", err
	}
	other, err := s.auth.GetUserByUsername(r.Context(), pathParam(r, param))
	if err != nil {
		return "", "", err
	}
	return userID, other.ID, nil
}
