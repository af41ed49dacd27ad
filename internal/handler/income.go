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

// IncomeHandler 负责收入相关接口，与支出一致但没有周期性字段
type IncomeHandler struct {
	DB *gorm.DB
}

func NewIncomeHandler(db *gorm.DB) *IncomeHandler {
	return &IncomeHandler{DB: db}
}

type incomeReq struct {
	Date        string  `json:"date" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Description string  `json:"desc" binding:"required,max=255"`
	TagID       uint    `json:"tag_id" binding:"required"`
}

type incomeResp struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	Date        string    `json:"date"`
	Amount      float64   `json:"amount"`
	Description string    `json:"desc"`
	TagID       uint      `json:"tag_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func toIncomeResp(in *models.Income) incomeResp {
	return incomeResp{
		ID:          in.ID,
		UserID:      in.UserID,
		Date:        in.Date.Format("2006-01-02"),
		Amount:      centToAmount(in.AmountCent),
		Description: in.Description,
		TagID:       in.TagID,
		CreatedAt:   in.CreatedAt,
	}
}

func (r *incomeReq) validate() (time.Time, error) {
	if err := util.ValidateAmount(r.Amount); err != nil {
		return time.Time{}, apperr.New(apperr.Invalid, "Invalid amount")
	}
	date, err := util.ParseDate(r.Date)
	if err != nil {
		return time.Time{}, apperr.New(apperr.Invalid, "Invalid date")
	}
	return date, nil
}

func (h *IncomeHandler) Create(c *gin.Context) {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Fail(c, apperr.New(apperr.Unauthenticated, "Not logged in"))
		return
	}

	var req incomeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, apperr.New(apperr.Invalid, "Invalid request body"))
		return
	}
	date, err := req.validate()
	if err != nil {
		util.Fail(c, err)
		return
	}

	income := models.Income{
		UserID:      uid,
		Date:        date,
		AmountCent:  toCent(req.Amount),
		Description: req.Description,
		TagID:       req.TagID,
	}
	if err := repository.Insert(h.DB, &income); err != nil {
		util.Fail(c, err)
		return
	}

	util.Success(c, toIncomeResp(&income))
}

func (h *IncomeHandler) List(c *gin.Context) {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Fail(c, apperr.New(apperr.Unauthenticated, "Not logged in"))
		return
	}

	incomes, err := repository.FindBy[models.Income](h.DB, "user_id", uid)
	if err != nil {
		util.Fail(c, err)
		return
	}
	if len(incomes) == 0 {
		util.Fail(c, apperr.New(apperr.NotFound, "No incomes found"))
		return
	}

	resps := make([]incomeResp, 0, len(incomes))
	for i := range incomes {
		resps = append(resps, toIncomeResp(&incomes[i]))
	}
	util.Success(c, resps)
}

func (h *IncomeHandler) Update(c *gin.Context) {
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

	var req incomeReq
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
		"date":        date,
		"amount_cent": toCent(req.Amount),
		"description": req.Description,
		"tag_id":      req.TagID,
	}
	n, err := repository.UpdateOwned[models.Income](h.DB, id, uid, updates)
	if err != nil {
		util.Fail(c, err)
		return
	}
	if n == 0 {
		util.Fail(c, apperr.New(apperr.NotFound, "Income not found or not owned"))
		return
	}

	incomes, err := repository.FindBy[models.Income](h.DB, "id", id)
	if err != nil || len(incomes) == 0 {
		util.Fail(c, apperr.Wrap(apperr.Internal, "Server error", err))
		return
	}
	util.Success(c, toIncomeResp(&incomes[0]))
}

func (h *IncomeHandler) Delete(c *gin.Context) {
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

	n, err := repository.DeleteOwned[models.Income](h.DB, id, uid)
	if err != nil {
		util.Fail(c, err)
		return
	}
	if n == 0 {
		util.Fail(c, apperr.New(apperr.NotFound, "Income not found or not owned"))
		return
	}

	util.Success(c, util.Response{"message": "Income deleted successfully"})
}
