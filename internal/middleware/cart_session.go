package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	apperrors "github.com/minhasantafonte/santafonte-backend/internal/errors"
)

const (
	SessionCartKey   = "cart_session"
	CartSessionIDKey = "cart_id"
	VisitorKey       = "visitor_id"
)

type CartSession struct {
	store sessions.Store
}

// NewCartSession keeps the visitor id in a signed cookie
func NewCartSession(secret string, maxAge int, secure bool) *CartSession {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
	}
	return &CartSession{store: store}
}

// Identify sets the visitor id on the context, issuing a new one when the
// request carries no valid cookie.
func (s *CartSession) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		// A tampered or stale cookie yields a fresh session plus an error;
		// the fresh session is used.
		session, err := s.store.Get(c.Request, SessionCartKey)
		if err != nil {
			log.Debug("Discarding invalid cart session", map[string]interface{}{
				"error": err.Error(),
			})
		}

		visitorID, ok := session.Values[CartSessionIDKey].(string)
		if !ok || visitorID == "" {
			visitorID = uuid.New().String()
			session.Values[CartSessionIDKey] = visitorID
			if err := session.Save(c.Request, c.Writer); err != nil {
				log.Error("Failed to save cart session", err, nil)
				apperrors.InternalError(c, "")
				c.Abort()
				return
			}
			log.Debug("New visitor session issued", map[string]interface{}{
				"visitor_id": visitorID,
			})
		}

		c.Set(VisitorKey, visitorID)
		c.Next()
	}
}

// GetVisitorID returns the id set by Identify
func GetVisitorID(c *gin.Context) string {
	return c.GetString(VisitorKey)
}
