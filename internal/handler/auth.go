package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Expenses-tracker-app/backend/internal/apperr"
	"github.com/Expenses-tracker-app/backend/internal/middleware"
	"github.com/Expenses-tracker-app/backend/internal/models"
	"github.com/Expenses-tracker-app/backend/internal/repository"
	"github.com/Expenses-tracker-app/backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthHandler 负责注册/登录/登出相关接口
type AuthHandler struct {
	DB         *gorm.DB
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

func NewAuthHandler(db *gorm.DB, jwtSecret string, ttlHours, bcryptCost int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 1
	}
	return &AuthHandler{
		DB:         db,
		JWTSecret:  jwtSecret,
		TokenTTL:   time.Duration(ttlHours) * time.Hour,
		BcryptCost: bcryptCost,
	}
}

// setTokenCookie 写入会话 cookie。HttpOnly + Secure + SameSite=None，
// 前端跨站携带 cookie 时需要这个组合。
func setTokenCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.TokenCookie, token, maxAge, "/", "", true, true)
}

// ---------- 注册 ----------

type registerReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=72"`
	Username string `json:"username" binding:"required,max=64"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, apperr.New(apperr.Invalid, "Invalid request body"))
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)

	// 先查重给出友好提示；真正防并发靠 email 唯一索引
	existing, err := repository.FindBy[models.User](h.DB, "email", req.Email)
	if err != nil {
		util.Fail(c, err)
		return
	}
	if len(existing) > 0 {
		util.Fail(c, apperr.New(apperr.Conflict, "User already exists"))
		return
	}

	hash, err := util.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		util.Fail(c, apperr.Wrap(apperr.Internal, "Server error", err))
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := repository.Insert(h.DB, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.Fail(c, apperr.New(apperr.Conflict, "User already exists"))
			return
		}
		util.Fail(c, err)
		return
	}

	util.Success(c, userResp{ID: user.ID, Username: user.Username, Email: user.Email})
}

// ---------- 登录 ----------

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, apperr.New(apperr.Invalid, "Invalid request body"))
		return
	}

	users, err := repository.FindBy[models.User](h.DB, "email", strings.TrimSpace(req.Email))
	if err != nil {
		util.Fail(c, err)
		return
	}
	// 邮箱不存在和密码错误给同一个文案
	if len(users) == 0 || !util.CheckPassword(req.Password, users[0].PasswordHash) {
		util.Fail(c, apperr.New(apperr.Invalid, "Invalid email or password"))
		return
	}
	user := users[0]

	token, err := util.GenerateToken(h.JWTSecret, user.ID, h.TokenTTL)
	if err != nil {
		util.Fail(c, apperr.Wrap(apperr.Internal, "Server error", err))
		return
	}

	setTokenCookie(c, token, int(h.TokenTTL.Seconds()))
	util.Success(c, util.Response{
		"message": "Login successful",
		"user":    userResp{ID: user.ID, Username: user.Username, Email: user.Email},
	})
}

// Logout 清除会话 cookie。token 本身没有吊销机制，到期前仍然有效。
func (h *AuthHandler) Logout(c *gin.Context) {
	setTokenCookie(c, "", -1)
	util.Success(c, util.Response{"message": "Logged out successfully"})
}

// CheckLogin 探测当前 cookie 是否有效（走 AuthMiddleware）
func (h *AuthHandler) CheckLogin(c *gin.Context) {
	util.Success(c, util.Response{"isLoggedIn": true})
}
