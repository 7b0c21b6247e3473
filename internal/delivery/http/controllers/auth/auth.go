package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sulphite1011/LMS-by-Hamad/internal/app_errors"
	"github.com/sulphite1011/LMS-by-Hamad/internal/delivery/http/controllers"
	"github.com/sulphite1011/LMS-by-Hamad/internal/models"
	"github.com/sulphite1011/LMS-by-Hamad/pkg/logger"
)

type AuthService interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	LoginUser(ctx context.Context, username, password string) (accessToken, refreshToken string, err error)
	RefreshTokens(ctx context.Context, token string) (*models.TokenPair, error)
	User(ctx context.Context, id uuid.UUID) (*models.User, error)
	BecomeEducator(ctx context.Context, userID uuid.UUID) error
}

type AuthHandler struct {
	log     logger.Log
	service AuthService
}

func NewAuthHandler(l logger.Log, s AuthService) *AuthHandler {
	return &AuthHandler{
		log:     l,
		service: s,
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input registerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		controllers.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	user := models.User{
		Username: input.Username,
		Password: input.Password,
		Email:    input.Email,
	}
	if _, err := h.service.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, app_errors.ErrUserExists) || errors.Is(err, app_errors.ErrIncorrectPassword) {
			controllers.Fail(c, http.StatusBadRequest, err.Error())
			return
		}
		controllers.FailErr(c, h.log, err)
		return
	}

	controllers.Success(c, http.StatusCreated, gin.H{"message": "registration success"})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input loginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		controllers.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	accessToken, refreshToken, err := h.service.LoginUser(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, app_errors.ErrUserNotFound) || errors.Is(err, app_errors.ErrIncorrectPassword) {
			controllers.Fail(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		controllers.FailErr(c, h.log, err)
		return
	}

	controllers.Success(c, http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

type tokenRefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var input tokenRefreshRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		controllers.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	tokenPair, err := h.service.RefreshTokens(c.Request.Context(), input.RefreshToken)
	if err != nil {
		if errors.Is(err, app_errors.ErrUserNotFound) || errors.Is(err, app_errors.ErrTokenExpired) || errors.Is(err, app_errors.ErrTokenNotFound) {
			controllers.Fail(c, http.StatusUnauthorized, err.Error())
			return
		}
		controllers.FailErr(c, h.log, err)
		return
	}

	controllers.Success(c, http.StatusOK, gin.H{
		"access_token":  tokenPair.AccessToken.Raw,
		"refresh_token": tokenPair.RefreshToken.Raw,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := controllers.ClientID(c)
	if !ok {
		controllers.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	user, err := h.service.User(c.Request.Context(), userID)
	if err != nil {
		controllers.FailErr(c, h.log, err)
		return
	}

	controllers.Success(c, http.StatusOK, gin.H{"user": gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"avatar_url": user.AvatarURL,
		"roles":      user.Roles,
	}})
}

// BecomeEducator upgrades the caller's account so educator routes open up on
// the next issued token.
func (h *AuthHandler) BecomeEducator(c *gin.Context) {
	userID, ok := controllers.ClientID(c)
	if !ok {
		controllers.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.service.BecomeEducator(c.Request.Context(), userID); err != nil {
		controllers.FailErr(c, h.log, err)
		return
	}
	controllers.Success(c, http.StatusOK, gin.H{"message": "you can publish courses now"})
}
