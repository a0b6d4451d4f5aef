package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/lasse00042-cmyk/HandUp/middleware"
	"github.com/lasse00042-cmyk/HandUp/models"
)

func getUserID(ctx *gin.Context) (string, bool) {
	v, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

func findUser(users []*models.User, id string) (*models.User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return nil, false
}
