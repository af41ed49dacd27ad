package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateExpenseRequiresAuth(t *testing.T) {
	r, _ := setupServer(t)

	w := doReq(r, http.MethodPost, "/expense/create",
		`{"date":"2024-05-17","amount":12.5,"desc":"lunch","tag_id":1}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateExpenseOwnedByCaller(t *testing.T) {
	r, _ := setupServer(t)
	uid, token := signup(t, r, "a@x.com", "A")
	tagID := createTag(t, r, token, "food")

	body := fmt.Sprintf(`{"date":"2024-05-17","amount":12.5,"desc":"lunch","tag_id":%d}`, tagID)
	w := doReq(r, http.MethodPost, "/expense/create", body, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		ID     uint    `json:"id"`
		UserID uint    `json:"user_id"`
		Amount float64 `json:"amount"`
		Desc   string  `json:"desc"`
		Date   string  `json:"date"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotZero(t, resp.ID)
	assert.Equal(t, uid, resp.UserID, "owner must be the authenticated caller")
	assert.Equal(t, 12.5, resp.Amount)
	assert.Equal(t, "lunch", resp.Desc)
	assert.Equal(t, "2024-05-17", resp.Date)
}

func TestCreateExpenseInvalidAmount(t *testing.T) {
	r, _ := setupServer(t)
	_, token := signup(t, r, "a@x.com", "A")
	tagID := createTag(t, r, token, "food")

	body := fmt.Sprintf(`{"date":"2024-05-17","amount":-5,"desc":"lunch","tag_id":%d}`, tagID)
	w := doReq(r, http.MethodPost, "/expense/create", body, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateRecurringExpenseNeedsFrequency(t *testing.T) {
	r, _ := setupServer(t)
	_, token := signup(t, r, "a@x.com", "A")
	tagID := createTag(t, r, token, "rent")

	body := fmt.Sprintf(`{"date":"2024-05-01","amount":800,"desc":"rent","tag_id":%d,"is_rec":true}`, tagID)
	w := doReq(r, http.MethodPost, "/expense/create", body, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body = fmt.Sprintf(`{"date":"2024-05-01","amount":800,"desc":"rent","tag_id":%d,"is_rec":true,"rec_freq":"monthly"}`, tagID)
	w = doReq(r, http.MethodPost, "/expense/create", body, token)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestListExpensesEmptyIs404(t *testing.T) {
	r, _ := setupServer(t)
	_, token := signup(t, r, "a@x.com", "A")

	w := doReq(r, http.MethodGet, "/expense/", "", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListExpensesOnlyOwn(t *testing.T) {
	r, _ := setupServer(t)
	_, tokenA := signup(t, r, "a@x.com", "A")
	_, tokenB := signup(t, r, "b@x.com", "B")
	tagID := createTag(t, r, tokenA, "food")

	createExpense(t, r, tokenA, tagID, "lunch")
	createExpense(t, r, tokenB, tagID, "dinner")

	w := doReq(r, http.MethodGet, "/expense/", "", tokenA)
	require.Equal(t, http.StatusOK, w.Code)

	var rows []struct {
		Desc string `json:"desc"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "lunch", rows[0].Desc)
}

func TestUpdateExpenseOtherOwner(t *testing.T) {
	r, _ := setupServer(t)
	_, tokenA := signup(t, r, "a@x.com", "A")
	_, tokenB := signup(t, r, "b@x.com", "B")
	tagID := createTag(t, r, tokenA, "food")
	expenseID := createExpense(t, r, tokenA, tagID, "lunch")

	body := fmt.Sprintf(`{"date":"2024-05-18","amount":99.9,"desc":"hijacked","tag_id":%d}`, tagID)
	w := doReq(r, http.MethodPut, fmt.Sprintf("/expense/update/%d", expenseID), body, tokenB)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found or not owned")

	// A's row is untouched
	w = doReq(r, http.MethodGet, "/expense/", "", tokenA)
	require.Equal(t, http.StatusOK, w.Code)
	var rows []struct {
		Desc   string  `json:"desc"`
		Amount float64 `json:"amount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "lunch", rows[0].Desc)
	assert.Equal(t, 12.5, rows[0].Amount)
}

func TestUpdateExpenseByOwner(t *testing.T) {
	r, _ := setupServer(t)
	_, token := signup(t, r, "a@x.com", "A")
	tagID := createTag(t, r, token, "food")
	expenseID := createExpense(t, r, token, tagID, "lunch")

	body := fmt.Sprintf(`{"date":"2024-05-18","amount":20,"desc":"dinner","tag_id":%d}`, tagID)
	w := doReq(r, http.MethodPut, fmt.Sprintf("/expense/update/%d", expenseID), body, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Desc   string  `json:"desc"`
		Amount float64 `json:"amount"`
		Date   string  `json:"date"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "dinner", resp.Desc)
	assert.Equal(t, 20.0, resp.Amount)
	assert.Equal(t, "2024-05-18", resp.Date)
}

func TestDeleteExpenseIdempotent(t *testing.T) {
	r, _ := setupServer(t)
	_, token := signup(t, r, "a@x.com", "A")
	tagID := createTag(t, r, token, "food")
	expenseID := createExpense(t, r, token, tagID, "lunch")

	w := doReq(r, http.MethodDelete, fmt.Sprintf("/expense/delete/%d", expenseID), "", token)
	assert.Equal(t, http.StatusOK, w.Code)

	// already gone: 404, not a crash
	w = doReq(r, http.MethodDelete, fmt.Sprintf("/expense/delete/%d", expenseID), "", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found or not owned")
}

func TestExportExpenses(t *testing.T) {
	r, _ := setupServer(t)
	_, token := signup(t, r, "a@x.com", "A")
	tagID := createTag(t, r, token, "food")
	createExpense(t, r, token, tagID, "lunch")

	w := doReq(r, http.MethodGet, "/expense/export/csv", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), "lunch")
	assert.Contains(t, w.Body.String(), "12.50")

	w = doReq(r, http.MethodGet, "/expense/export/xlsx", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotEmpty(t, w.Body.Bytes())
}
