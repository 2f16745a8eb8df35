package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// subjectKey stores the authenticated token subject.
const subjectKey = contextKey("subject")

// GetSubjectFromContext retrieves the authenticated subject from the Gin context,
// falling back to the request context.
func GetSubjectFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(subjectKey)); exists {
		subject, ok := v.(string)
		return subject, ok
	}
	return GetSubjectFromCtx(c.Request.Context())
}

// GetSubjectFromCtx retrieves the authenticated subject from a standard context.
func GetSubjectFromCtx(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey).(string)
	return subject, ok && subject != ""
}
