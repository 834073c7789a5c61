package httpapp

import (
	"net/http"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type usernameUpdate struct {
	Username string `json:"username" validate:"required"`
}

type passwordUpdate struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"`
}

func (s *Server) getSessionUser(w http.ResponseWriter, r *http.Request) (any, error) {
	userID, err := s.currentUser(r)
	if err != nil {
		return nil, err
	}
	user, err := s.auth.GetUserByID(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	return s.format.User(user), nil
}

func (s *Server) getUsers(w http.ResponseWriter, r *http.Request) (any, error) {
	users, err := s.auth.GetUsers(r.Context())
	if err != nil {
		return nil, err
	}
	return s.format.Users(users), nil
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) (any, error) {
	user, err := s.auth.GetUserByUsername(r.Context(), pathParam(r, "username"))
	if err != nil {
		return nil, err
	}
	return s.format.User(user), nil
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) (any, error) {
	if err := s.sessions.IsLoggedOut(*sessionFrom(r)); err != nil {
		return nil, err
	}
	var in credentials
	if err := bindJSON(r, &in); err != nil {
		return nil, err
	}
	user, err := s.auth.Create(r.Context(), in.Username, in.Password)
	if err != nil {
		return nil, err
	}
	return map[string]any{"msg": "User created successfully!", "user": s.format.User(user)}, nil
}

func (s *Server) updateUsername(w http.ResponseWriter, r *http.Request) (any, error) {
	userID, err := s.currentUser(r)
	if err != nil {
		return nil, err
	}
	var in usernameUpdate
	if err := bindJSON(r, &in); err != nil {
		return nil, err
	}
	if err := s.auth.UpdateUsername(r.Context(), userID, in.Username); err != nil {
		return nil, err
	}
	return msg("Updated username successfully!"), nil
}

func (s *Server) updatePassword(w http.ResponseWriter, r *http.Request) (any, error) {
	userID, err := s.currentUser(r)
	if err != nil {
		return nil, err
	}
	var in passwordUpdate
	if err := bindJSON(r, &in); err != nil {
		return nil, err
	}
	if err := s.auth.UpdatePassword(r.Context(), userID, in.CurrentPassword, in.NewPassword); err != nil {
		return nil, err
	}
	return msg("Updated password successfully!"), nil
}

// deleteUser logs the caller out and removes the account. What the user
// authored stays and renders with a deleted author.
func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) (any, error) {
	userID, err := s.currentUser(r)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.End(r.Context(), sessionFrom(r)); err != nil {
		return nil, err
	}
	s.codec.Clear(w)
	if err := s.auth.Delete(r.Context(), userID); err != nil {
		return nil, err
	}
	return msg("Deleted user!"), nil
}

func (s *Server) logIn(w http.ResponseWriter, r *http.Request) (any, error) {
	sess := sessionFrom(r)
	if err := s.sessions.IsLoggedOut(*sess); err != nil {
		return nil, err
	}
	var in credentials
	if err := bindJSON(r, &in); err != nil {
		return nil, err
	}
	user, err := s.auth.Authenticate(r.Context(), in.Username, in.Password)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Start(r.Context(), sess, user.ID); err != nil {
		return nil, err
	}
	if err := s.codec.Write(w, sess.ID); err != nil {
		return nil, err
	}
	return msg("Logged in!"), nil
}

func (s *Server) logOut(w http.ResponseWriter, r *http.Request) (any, error) {
	if err := s.sessions.End(r.Context(), sessionFrom(r)); err != nil {
		return nil, err
	}
	s.codec.Clear(w)
	return msg("Logged out!"), nil
}
