package handler

import (
	"strings"

	"github.com/Expenses-tracker-app/backend/internal/apperr"
	"github.com/Expenses-tracker-app/backend/internal/middleware"
	"github.com/Expenses-tracker-app/backend/internal/models"
	"github.com/Expenses-tracker-app/backend/internal/repository"
	"github.com/Expenses-tracker-app/backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserHandler 负责当前用户的查询、资料修改和注销
type UserHandler struct {
	DB         *gorm.DB
	BcryptCost int
}

func NewUserHandler(db *gorm.DB, bcryptCost int) *UserHandler {
	return &UserHandler{DB: db, BcryptCost: bcryptCost}
}

type userResp struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// GetMe 返回当前登录用户信息（需要经过 AuthMiddleware）
func (h *UserHandler) GetMe(c *gin.Context) {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Fail(c, apperr.New(apperr.Unauthenticated, "Not logged in"))
		return
	}

	users, err := repository.FindBy[models.User](h.DB, "id", uid)
	if err != nil {
		util.Fail(c, err)
		return
	}
	if len(users) == 0 {
		util.Fail(c, apperr.New(apperr.NotFound, "User not found"))
		return
	}

	u := users[0]
	util.Success(c, userResp{ID: u.ID, Username: u.Username, Email: u.Email})
}

type updateUserReq struct {
	Username string `json:"username" binding:"omitempty,max=64"`
	Password string `json:"password" binding:"omitempty,max=72"`
}

// Update 修改用户名和/或密码，新密码重新做 bcrypt 哈希
func (h *UserHandler) Update(c *gin.Context) {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Fail(c, apperr.New(apperr.Unauthenticated, "Not logged in"))
		return
	}

	var req updateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, apperr.New(apperr.Invalid, "Invalid request body"))
		return
	}

	updates := map[string]any{}
	if name := strings.TrimSpace(req.Username); name != "" {
		updates["username"] = name
	}
	if req.Password != "" {
		hash, err := util.HashPassword(req.Password, h.BcryptCost)
		if err != nil {
			util.Fail(c, apperr.Wrap(apperr.Internal, "Server error", err))
			return
		}
		updates["password_hash"] = hash
	}
	if len(updates) == 0 {
		util.Fail(c, apperr.New(apperr.Invalid, "Nothing to update"))
		return
	}

	n, err := repository.UpdateBy[models.User](h.DB, "id", uid, updates)
	if err != nil {
		util.Fail(c, err)
		return
	}
	if n == 0 {
		util.Fail(c, apperr.New(apperr.NotFound, "User not found"))
		return
	}

	users, err := repository.FindBy[models.User](h.DB, "id", uid)
	if err != nil || len(users) == 0 {
		util.Fail(c, apperr.Wrap(apperr.Internal, "Server error", err))
		return
	}
	u := users[0]
	util.Success(c, userResp{ID: u.ID, Username: u.Username, Email: u.Email})
}

// Delete 删除当前用户，支出/收入记录靠外键级联删除
func (h *UserHandler) Delete(c *gin.Context) {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Fail(c, apperr.New(apperr.Unauthenticated, "Not logged in"))
		return
	}

	if _, err := repository.DeleteBy[models.User](h.DB, "id", uid); err != nil {
		util.Fail(c, err)
		return
	}

	setTokenCookie(c, "", -1)
	util.Success(c, util.Response{"message": "User deleted successfully"})
}
