package handler

import (
	"errors"
	"strings"

	"github.com/Expenses-tracker-app/backend/internal/apperr"
	"github.com/Expenses-tracker-app/backend/internal/models"
	"github.com/Expenses-tracker-app/backend/internal/repository"
	"github.com/Expenses-tracker-app/backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TagHandler 负责分类标签接口。标签是全局共享的，不做 owner 校验；
// 查询接口公开，写接口需要登录。
type TagHandler struct {
	DB *gorm.DB
}

func NewTagHandler(db *gorm.DB) *TagHandler {
	return &TagHandler{DB: db}
}

type tagReq struct {
	TagName string `json:"tag_name" binding:"required,max=64"`
}

func (h *TagHandler) Create(c *gin.Context) {
	var req tagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, apperr.New(apperr.Invalid, "Invalid request body"))
		return
	}

	tag := models.Tag{Name: strings.TrimSpace(req.TagName)}
	if err := repository.Insert(h.DB, &tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.Fail(c, apperr.New(apperr.Conflict, "Tag already exists"))
			return
		}
		util.Fail(c, err)
		return
	}

	util.Success(c, tag)
}

// List 返回全部标签，空表按约定返回 404
func (h *TagHandler) List(c *gin.Context) {
	tags, err := repository.ListAll[models.Tag](h.DB)
	if err != nil {
		util.Fail(c, err)
		return
	}
	if len(tags) == 0 {
		util.Fail(c, apperr.New(apperr.NotFound, "No tags found"))
		return
	}
	util.Success(c, tags)
}

func (h *TagHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		util.Fail(c, apperr.New(apperr.Invalid, "Invalid id"))
		return
	}

	tags, err := repository.FindBy[models.Tag](h.DB, "id", id)
	if err != nil {
		util.Fail(c, err)
		return
	}
	if len(tags) == 0 {
		util.Fail(c, apperr.New(apperr.NotFound, "Tag not found"))
		return
	}
	util.Success(c, tags[0])
}

func (h *TagHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		util.Fail(c, apperr.New(apperr.Invalid, "Invalid id"))
		return
	}

	var req tagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, apperr.New(apperr.Invalid, "Invalid request body"))
		return
	}

	n, err := repository.UpdateBy[models.Tag](h.DB, "id", id, map[string]any{
		"name": strings.TrimSpace(req.TagName),
	})
	if err != nil {
		util.Fail(c, err)
		return
	}
	if n == 0 {
		util.Fail(c, apperr.New(apperr.NotFound, "Tag not found"))
		return
	}

	tags, err := repository.FindBy[models.Tag](h.DB, "id", id)
	if err != nil || len(tags) == 0 {
		util.Fail(c, apperr.Wrap(apperr.Internal, "Server error", err))
		return
	}
	util.Success(c, tags[0])
}

// Delete 删除标签。还有交易引用该标签时外键约束会让删除失败，
// 这里按既有接口约定统一报 500，而不是 409。
func (h *TagHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		util.Fail(c, apperr.New(apperr.Invalid, "Invalid id"))
		return
	}

	n, err := repository.DeleteBy[models.Tag](h.DB, "id", id)
	if err != nil {
		util.Fail(c, err)
		return
	}
	if n == 0 {
		util.Fail(c, apperr.New(apperr.NotFound, "Tag not found"))
		return
	}

	util.Success(c, util.Response{"message": "Tag deleted successfully"})
}
