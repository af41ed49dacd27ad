package handler

import (
	"time"

	"github.com/Expenses-tracker-app/backend/internal/apperr"
	"github.com/Expenses-tracker-app/backend/internal/middleware"
	"github.com/Expenses-tracker-app/backend/internal/models"
	"github.com/Expenses-tracker-app/backend/internal/repository"
	"github.com/Expenses-tracker-app/backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ExpenseHandler 负责支出相关接口
type ExpenseHandler struct {
	DB *gorm.DB
}

func NewExpenseHandler(db *gorm.DB) *ExpenseHandler {
	return &ExpenseHandler{DB: db}
}

// ---------- 请求/响应结构 ----------

type expenseReq struct {
	Date               string  `json:"date" binding:"required"`
	Amount             float64 `json:"amount" binding:"required"`
	Description        string  `json:"desc" binding:"required,max=255"`
	TagID              uint    `json:"tag_id" binding:"required"`
	IsRecurring        bool    `json:"is_rec"`
	RecurringFrequency string  `json:"rec_freq" binding:"omitempty,oneof=daily weekly monthly yearly"`
}

type expenseResp struct {
	ID                 uint      `json:"id"`
	UserID             uint      `json:"user_id"`
	Date               string    `json:"date"`
	Amount             float64   `json:"amount"`
	Description        string    `json:"desc"`
	TagID              uint      `json:"tag_id"`
	IsRecurring        bool      `json:"is_rec"`
	RecurringFrequency string    `json:"rec_freq"`
	CreatedAt          time.Time `json:"created_at"`
}

func toExpenseResp(e *models.Expense) expenseResp {
	return expenseResp{
		ID:                 e.ID,
		UserID:             e.UserID,
		Date:               e.Date.Format("2006-01-02"),
		Amount:             centToAmount(e.AmountCent),
		Description:        e.Description,
		TagID:              e.TagID,
		IsRecurring:        e.IsRecurring,
		RecurringFrequency: e.RecurringFrequency,
		CreatedAt:          e.CreatedAt,
	}
}

// validate 做 binding 覆盖不到的检查，通过时返回解析后的日期
func (r *expenseReq) validate() (time.Time, error) {
	if err := util.ValidateAmount(r.Amount); err != nil {
		return time.Time{}, apperr.New(apperr.Invalid, "Invalid amount")
	}
	date, err := util.ParseDate(r.Date)
	if err != nil {
		return time.Time{}, apperr.New(apperr.Invalid, "Invalid date")
	}
	if r.IsRecurring && r.RecurringFrequency == "" {
		return time.Time{}, apperr.New(apperr.Invalid, "Recurring frequency is required for recurring expenses")
	}
	return date, nil
}

// ---------- 记一笔 ----------

// Create 新增一笔支出，归属用户一律取自鉴权后的身份，不信任请求体
func (h *ExpenseHandler) Create(c *gin.Context) {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Fail(c, apperr.New(apperr.Unauthenticated, "Not logged in"))
		return
	}

	var req expenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, apperr.New(apperr.Invalid, "Invalid request body"))
		return
	}
	date, err := req.validate()
	if err != nil {
		util.Fail(c, err)
		return
	}

	expense := models.Expense{
		UserID:             uid,
		Date:               date,
		AmountCent:         toCent(req.Amount),
		Description:        req.Description,
		TagID:              req.TagID,
		IsRecurring:        req.IsRecurring,
		RecurringFrequency: req.RecurringFrequency,
	}
	if err := repository.Insert(h.DB, &expense); err != nil {
		util.Fail(c, err)
		return
	}

	resp := toExpenseResp(&expense)
	util.Success(c, resp)
}

// List 返回当前用户的全部支出；没有任何记录时按约定返回 404
func (h *ExpenseHandler) List(c *gin.Context) {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Fail(c, apperr.New(apperr.Unauthenticated, "Not logged in"))
		return
	}

	expenses, err := repository.FindBy[models.Expense](h.DB, "user_id", uid)
	if err != nil {
		util.Fail(c, err)
		return
	}
	if len(expenses) == 0 {
		util.Fail(c, apperr.New(apperr.NotFound, "No expenses found"))
		return
	}

	resps := make([]expenseResp, 0, len(expenses))
	for i := range expenses {
		resps = append(resps, toExpenseResp(&expenses[i]))
	}
	util.Success(c, resps)
}

// Update 修改一条支出。更新语句的谓词同时带主键和 user_id，
// 影响行数为 0 就是"不存在或不属于自己"，没有单独的查询-判断步骤。
func (h *ExpenseHandler) Update(c *gin.Context) {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Fail(c, apperr.New(apperr.Unauthenticated, "Not logged in"))
		return
	}
	id, ok := idParam(c)
	if !ok {
		util.Fail(c, apperr.New(apperr.Invalid, "Invalid id"))
		return
	}

	var req expenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, apperr.New(apperr.Invalid, "Invalid request body"))
		return
	}
	date, err := req.validate()
	if err != nil {
		util.Fail(c, err)
		return
	}

	updates := map[string]any{
		"date":                date,
		"amount_cent":         toCent(req.Amount),
		"description":         req.Description,
		"tag_id":              req.TagID,
		"is_recurring":        req.IsRecurring,
		"recurring_frequency": req.RecurringFrequency,
	}
	n, err := repository.UpdateOwned[models.Expense](h.DB, id, uid, updates)
	if err != nil {
		util.Fail(c, err)
		return
	}
	if n == 0 {
		util.Fail(c, apperr.New(apperr.NotFound, "Expense not found or not owned"))
		return
	}

	expenses, err := repository.FindBy[models.Expense](h.DB, "id", id)
	if err != nil || len(expenses) == 0 {
		util.Fail(c, apperr.Wrap(apperr.Internal, "Server error", err))
		return
	}
	util.Success(c, toExpenseResp(&expenses[0]))
}

// Delete 删除一条支出，owner 谓词同 Update，重复删除返回 404
func (h *ExpenseHandler) Delete(c *gin.Context) {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Fail(c, apperr.New(apperr.Unauthenticated, "Not logged in"))
		return
	}
	id, ok := idParam(c)
	if !ok {
		util.Fail(c, apperr.New(apperr.Invalid, "Invalid id"))
		return
	}

	n, err := repository.DeleteOwned[models.Expense](h.DB, id, uid)
	if err != nil {
		util.Fail(c, err)
		return
	}
	if n == 0 {
		util.Fail(c, apperr.New(apperr.NotFound, "Expense not found or not owned"))
		return
	}

	util.Success(c, util.Response{"message": "Expense deleted successfully"})
}
