// internal/handlers/context.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Field-devs/portal-do-cliente-sub001/internal/models"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/utils"
)

// accountID pulls the tenant scope set by the auth middleware.
func accountID(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := utils.GetAccountIDFromContext(c)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func userID(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func operatorTier(c *gin.Context) models.ProfileTier {
	raw, _ := utils.GetTierFromContext(c)
	return models.ProfileTier(raw)
}

// pathID parses the :id segment; an empty uuid means the param was invalid.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
