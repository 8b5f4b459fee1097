package handlers

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/streamvault/streamvault/internal/application"
	"github.com/streamvault/streamvault/internal/domain/entity"
	"github.com/streamvault/streamvault/internal/interface/middleware"
	"github.com/streamvault/streamvault/pkg/apperror"
	"github.com/streamvault/streamvault/pkg/helpers"
	"github.com/streamvault/streamvault/pkg/response"
	"github.com/streamvault/streamvault/pkg/validation"
)

type UserHandler struct {
	Svc     *application.UserService
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	UserName string `form:"username" binding:"required,username"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,pwd"`
	FullName string `form:"fullName" binding:"required"`
}

type loginRequest struct {
	UserName string `json:"username"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
	OldPassword     string `json:"oldPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,pwd"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type updateAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// fileInput opens one multipart file for streaming to storage. The caller
// closes via the returned func.
func fileInput(fh *multipart.FileHeader) (*application.FileInput, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &application.FileInput{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	}, func() { _ = f.Close() }, nil
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(apperror.BadRequest("invalid payload", validation.ToDetails(err)))
		return
	}

	in := application.RegisterInput{
		UserName: req.UserName,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	}

	avatarFH, err := c.FormFile("avatar")
	if err != nil {
		_ = c.Error(apperror.BadRequest("avatar image is required"))
		return
	}
	avatar, closeAvatar, err := fileInput(avatarFH)
	if err != nil {
		_ = c.Error(apperror.BadRequest("avatar image is unreadable"))
		return
	}
	defer closeAvatar()
	in.Avatar = avatar

	if coverFH, err := c.FormFile("coverImage"); err == nil {
		cover, closeCover, err := fileInput(coverFH)
		if err != nil {
			_ = c.Error(apperror.BadRequest("cover image is unreadable"))
			return
		}
		defer closeCover()
		in.CoverImage = cover
	}

	u, err := h.Svc.Register(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, u, "user registered successfully", nil)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.BadRequest("invalid payload", validation.ToDetails(err)))
		return
	}

	u, pair, err := h.Svc.Login(c.Request.Context(), req.UserName, req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusCreated, gin.H{
		"user":         u,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "user logged in successfully", nil)
}

func (h *UserHandler) Logout(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	if err := h.Svc.Logout(c.Request.Context(), id.UserID); err != nil {
		_ = c.Error(err)
		return
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, nil, "user logged out successfully", nil)
}

// RefreshTokens rotates the token pair. The refresh token may come from the
// cookie or the request body.
func (h *UserHandler) RefreshTokens(c *gin.Context) {
	refresh, _ := c.Cookie(helpers.RefreshCookieName)
	if refresh == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		_ = c.ShouldBindJSON(&body)
		refresh = body.RefreshToken
	}
	if refresh == "" {
		_ = c.Error(apperror.Unauthorized("unauthorized request"))
		return
	}

	pair, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "access token refreshed", nil)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.BadRequest("invalid payload", validation.ToDetails(err)))
		return
	}
	id, _ := middleware.IdentityFrom(c)
	if err := h.Svc.ChangePassword(c.Request.Context(), id.UserID, req.OldPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "password changed successfully", nil)
}

func (h *UserHandler) CurrentUser(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	u, err := h.Svc.GetByID(c.Request.Context(), id.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, u, "current user fetched successfully", nil)
}

func (h *UserHandler) UpdateAccount(c *gin.Context) {
	var req updateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.BadRequest("invalid payload", validation.ToDetails(err)))
		return
	}
	id, _ := middleware.IdentityFrom(c)
	u, err := h.Svc.UpdateAccount(c.Request.Context(), id.UserID, req.FullName, req.Email)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, u, "account details updated successfully", nil)
}

func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	h.updateImage(c, "avatar", h.Svc.UpdateAvatar, "avatar updated successfully")
}

func (h *UserHandler) UpdateCoverImage(c *gin.Context) {
	h.updateImage(c, "coverImage", h.Svc.UpdateCoverImage, "cover image updated successfully")
}

func (h *UserHandler) updateImage(c *gin.Context, field string, update func(ctx context.Context, userID string, file application.FileInput) (*entity.User, error), message string) {
	fh, err := c.FormFile(field)
	if err != nil {
		_ = c.Error(apperror.BadRequest(field + " file is required"))
		return
	}
	file, closeFile, err := fileInput(fh)
	if err != nil {
		_ = c.Error(apperror.BadRequest(field + " file is unreadable"))
		return
	}
	defer closeFile()

	id, _ := middleware.IdentityFrom(c)
	u, err := update(c.Request.Context(), id.UserID, *file)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, u, message, nil)
}

func (h *UserHandler) Channel(c *gin.Context) {
	viewerID := ""
	if id, ok := middleware.IdentityFrom(c); ok {
		viewerID = id.UserID
	}
	p, err := h.Svc.Channel(c.Request.Context(), c.Param("userName"), viewerID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, p, "channel profile fetched successfully", nil)
}

func (h *UserHandler) WatchHistory(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	page, limit := pagination(c)
	history, err := h.Svc.WatchHistory(c.Request.Context(), id.UserID, page, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, history, "watch history fetched successfully", nil)
}
