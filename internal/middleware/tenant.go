package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TenantKey est la clé du contexte gin sous laquelle le tenant résolu est
// stocké.
const TenantKey = "tenant"

// Tenant résout l'identifiant du tenant pour chaque requête : d'abord le
// sous-domaine admin (<tenant> dans admin.<tenant>.exemple.com), sinon
// l'en-tête X-Tenant-Id. Le cœur ne déduit jamais le tenant lui-même : il
// reçoit toujours cette valeur.
func Tenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		host := c.Request.Host
		tenant := ""

		if strings.HasPrefix(host, "admin.") {
			tenant = strings.Split(strings.TrimPrefix(host, "admin."), ".")[0]
		}

		// Pas de tenant dans le host : on regarde les en-têtes
		if tenant == "" {
			tenant = c.GetHeader("X-Tenant-Id")
		}

		if tenant == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Tenant non identifié"})
			return
		}

		c.Set(TenantKey, tenant)
		c.Next()
	}
}
