package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/lexio-dev/lexio/internal/middleware"
)

func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	user, ok := middleware.CurrentUser(ctx)

	if !ok {
		return middleware.AuthenticatedUser{}, fmt.Errorf("user not authenticated")
	}

	return user, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return 0, err
	}

	return user.ID, nil
}
