package session

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

const CookieName = "stance_session"

// Codec stores a session id in a signed and encrypted cookie.
type Codec struct {
	sc     *securecookie.SecureCookie
	ttl    time.Duration
	secure bool
}

// NewCodec builds a codec from the given keys. Empty keys are replaced by
// random ones, which invalidates cookies on restart.
func NewCodec(hashKey, blockKey []byte, ttl time.Duration, secure bool) *Codec {
	if len(hashKey) == 0 {
		hashKey = securecookie.GenerateRandomKey(32)
	}
	if len(blockKey) == 0 {
		blockKey = securecookie.GenerateRandomKey(32)
	}
	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(int(ttl.Seconds()))
	return &Codec{sc: sc, ttl: ttl, secure: secure}
}

// Read returns the session id carried by r, or "" when the cookie is
// missing or does not decode.
func (c *Codec) Read(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	var id string
	if err := c.sc.Decode(CookieName, cookie.Value, &id); err != nil {
		return ""
	}
	return id
}

func (c *Codec) Write(w http.ResponseWriter, id string) error {
	encoded, err := c.sc.Encode(CookieName, id)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    encoded,
		Path:     "/",
		Expires:  time.Now().Add(c.ttl),
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (c *Codec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
