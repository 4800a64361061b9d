package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lexio-dev/lexio/db"
	"github.com/lexio-dev/lexio/internal/auth"
	"github.com/lexio-dev/lexio/internal/models"
	"github.com/lexio-dev/lexio/internal/types"
	"github.com/lexio-dev/lexio/internal/utils"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Email    string `json:"email" binding:"omitempty,email"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthHandler struct {
	Tokens *auth.TokenService
}

func NewAuthHandler(tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{Tokens: tokens}
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.BindJSON(&req); err != nil {
		types.Error(ctx, http.StatusBadRequest, types.CodeInvalidRequest, "Invalid request")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User

	err := db.DB.Where("username = ?", req.Username).First(&existing).Error

	if err == nil {
		types.Error(ctx, http.StatusBadRequest, types.CodeUsernameExists, "Username already exists")
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking existing username: %v", err)
		types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	if req.Email != "" {
		err := db.DB.Where("email = ?", req.Email).First(&existing).Error

		if err == nil {
			types.Error(ctx, http.StatusBadRequest, types.CodeEmailExists, "Email already exists")
			return
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Database error when checking existing email: %v", err)
			types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
			return
		}
	}

	passwordHash, err := auth.HashPassword(req.Password)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: passwordHash,
	}

	if req.Email != "" {
		user.Email = &req.Email
	}

	if err := db.DB.Create(&user).Error; err != nil {
		log.Printf("Failed to create user: %v", err)
		types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	ctx.JSON(http.StatusOK, types.UserResponse{
		ID:       user.ID,
		Username: user.Username,
	})
}

// Login fails with the same error for an unknown username, a user without a
// stored hash, and a wrong password. Nothing distinguishes the three.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.BindJSON(&req); err != nil {
		types.Error(ctx, http.StatusBadRequest, types.CodeInvalidRequest, "Invalid request")
		return
	}

	var user models.User

	err := db.DB.Where("username = ?", req.Username).First(&user).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when fetching user: %v", err)
		types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	if err != nil || user.PasswordHash == "" || !auth.VerifyPassword(req.Password, user.PasswordHash) {
		types.Error(ctx, http.StatusUnauthorized, types.CodeInvalidCredentials, "Invalid username or password")
		return
	}

	accessToken, err := h.Tokens.IssueAccessToken(user.Username)

	if err != nil {
		log.Printf("Failed to issue access token: %v", err)
		types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	refreshToken, err := h.Tokens.IssueRefreshToken(user.Username)

	if err != nil {
		log.Printf("Failed to issue refresh token: %v", err)
		types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// Refresh re-issues an access token for the refresh token's subject. The
// subject is not re-checked against the users table; a token outlives its
// user until it expires.
func (h *AuthHandler) Refresh(ctx *gin.Context) {
	var req RefreshRequest

	if err := ctx.BindJSON(&req); err != nil {
		types.Error(ctx, http.StatusBadRequest, types.CodeInvalidRequest, "refresh_token is required")
		return
	}

	subject, err := h.Tokens.Verify(req.RefreshToken)

	if err != nil {
		types.Error(ctx, http.StatusUnauthorized, types.CodeInvalidToken, "Invalid or expired refresh token")
		return
	}

	accessToken, err := h.Tokens.IssueAccessToken(subject)

	if err != nil {
		log.Printf("Failed to issue access token: %v", err)
		types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"access_token": accessToken})
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		types.Error(ctx, http.StatusUnauthorized, types.CodeUnauthorized, "User not authenticated")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": currentUser})
}
