package middleware

import "github.com/gin-gonic/gin"

// ownerIDKey is the key used to store the authenticated owner's ID. Every
// transaction history is scoped to this id.
const ownerIDKey = contextKey("ownerID")

// GetOwnerIDFromContext retrieves the authenticated owner ID from the Gin context.
// It returns the owner ID and a boolean indicating if it was found.
func GetOwnerIDFromContext(c *gin.Context) (string, bool) {
	if ownerID, ok := c.Request.Context().Value(ownerIDKey).(string); ok && ownerID != "" {
		return ownerID, true
	}
	// check the Gin context map as well
	if val, exists := c.Get(string(ownerIDKey)); exists {
		if ownerID, ok := val.(string); ok && ownerID != "" {
			return ownerID, true
		}
	}
	return "", false
}
