package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hostelhub/pkg/middleware"
	"hostelhub/pkg/utils"
)

// callerID reads the authenticated account id set by the JWT middleware.
// It writes a 401 and returns false when the id is missing or malformed.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(middleware.ContextUserID))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthenticated")
		return uuid.Nil, false
	}
	return id, true
}

// optionalCallerID is callerID for routes that also serve anonymous visitors.
func optionalCallerID(c *gin.Context) *uuid.UUID {
	id, err := uuid.Parse(c.GetString(middleware.ContextUserID))
	if err != nil {
		return nil
	}
	return &id
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.HandleServiceError(c, utils.NewValidationError(name, "must be a valid UUID"))
		return uuid.Nil, false
	}
	return id, true
}

func pagination(c *gin.Context) (int, int, bool) {
	page, pageSize, err := utils.ParsePagination(c.Query("page"), c.Query("page_size"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return 0, 0, false
	}
	return page, pageSize, true
}
