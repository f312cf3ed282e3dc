package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/leetlens/internal/domain/profile"
)

const (
	profileKey          = "profile"
	profileTimestampKey = "profileTimestamp"
)

// profileMiddleware resolves :username and stores the normalized profile on
// the context for the downstream handler, stamped with now().
func profileMiddleware(svc profile.Service, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		resolved, err := svc.Resolve(c.Request.Context(), c.Param("username"))
		if err != nil {
			abortWithError(c, fromDomainError(err))
			return
		}
		c.Set(profileKey, resolved)
		c.Set(profileTimestampKey, now())
		c.Next()
	}
}

func profileFromContext(c *gin.Context) (profile.UserProfile, time.Time, bool) {
	value, ok := c.Get(profileKey)
	if !ok {
		return profile.UserProfile{}, time.Time{}, false
	}
	resolved, ok := value.(profile.UserProfile)
	if !ok {
		return profile.UserProfile{}, time.Time{}, false
	}
	return resolved, c.GetTime(profileTimestampKey), true
}
