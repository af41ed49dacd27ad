package handler

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/Expenses-tracker-app/backend/internal/apperr"
	"github.com/Expenses-tracker-app/backend/internal/middleware"
	"github.com/Expenses-tracker-app/backend/internal/models"
	"github.com/Expenses-tracker-app/backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler 导出当前用户的支出明细
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeader = []string{"Date", "Amount", "Description", "Tag ID", "Recurring", "Frequency"}

func exportRow(e *models.Expense) []string {
	return []string{
		e.Date.Format("2006-01-02"),
		strconv.FormatFloat(centToAmount(e.AmountCent), 'f', 2, 64),
		e.Description,
		strconv.FormatUint(uint64(e.TagID), 10),
		strconv.FormatBool(e.IsRecurring),
		e.RecurringFrequency,
	}
}

func (h *ExportHandler) ownedExpenses(c *gin.Context) ([]models.Expense, bool) {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Fail(c, apperr.New(apperr.Unauthenticated, "Not logged in"))
		return nil, false
	}

	var expenses []models.Expense
	if err := h.DB.Where("user_id = ?", uid).
		Order("date DESC").
		Find(&expenses).Error; err != nil {
		util.Fail(c, err)
		return nil, false
	}
	return expenses, true
}

// ExportCSV 导出支出为 CSV
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	expenses, ok := h.ownedExpenses(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeader)
	for i := range expenses {
		writer.Write(exportRow(&expenses[i]))
	}
}

// ExportXLSX 导出支出为 XLSX
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	expenses, ok := h.ownedExpenses(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Expenses"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for row, e := range expenses {
		for col, value := range exportRow(&e) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		// headers already sent, nothing useful left to tell the client
		_ = c.Error(err)
	}
}
