package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vincentbmw/PawspectiveProject/internal/repository"
)

// FirebaseAuthMiddleware valida ID tokens de Firebase y exige que el uid del
// token coincida con el userId del path. Opcional: por defecto la app confia
// en la autenticacion del cliente Android.
func FirebaseAuthMiddleware(identity repository.IdentityRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "identity verification not configured"})
			c.Abort()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(header[len("Bearer "):])
		uid, err := identity.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		if userID := c.Param("userId"); userID != "" && userID != uid {
			c.JSON(http.StatusForbidden, gin.H{"error": "token does not match requested user"})
			c.Abort()
			return
		}

		c.Next()
	}
}
