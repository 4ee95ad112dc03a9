package handler

import (
	"github.com/gin-gonic/gin"
	expenseapp "github.com/salonfin/backend/internal/application/expense"
)

// ExpenseHandler handles expense category and monthly expense endpoints
type ExpenseHandler struct {
	BaseHandler
	expenses ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenses ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

// MonthRequest selects the month of an expense listing
type MonthRequest struct {
	Month string `form:"month" binding:"required" example:"2026-03"`
}

// YearRequest selects the year fixed values are applied to
type YearRequest struct {
	Year int `form:"year" binding:"required,min=1900,max=9999" example:"2026"`
}

// ListCategories godoc
//
//	@Summary	List the default and custom expense categories
//	@Tags		expenses
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/expenses/categories [get]
func (h *ExpenseHandler) ListCategories(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	categories, err := h.expenses.ListCategories(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// CreateCategory godoc
//
//	@Summary	Add a custom expense category
//	@Tags		expenses
//	@Accept		json
//	@Param		request	body	expense.CreateCategoryRequest	true	"Request body"
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/expenses/categories [post]
func (h *ExpenseHandler) CreateCategory(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req expenseapp.CreateCategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	category, err := h.expenses.CreateCategory(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// DeleteCategory godoc
//
//	@Summary	Delete a custom expense category and its values
//	@Tags		expenses
//	@Param		id	path	string	true	"Category ID"	format(uuid)
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/expenses/categories/{id} [delete]
func (h *ExpenseHandler) DeleteCategory(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.expenses.DeleteCategory(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListMonth godoc
//
//	@Summary	Every category with its value for a month
//	@Tags		expenses
//	@Param		month	query	string	true	"Month (YYYY-MM)"
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/expenses [get]
func (h *ExpenseHandler) ListMonth(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req MonthRequest
	if !h.bindQuery(c, &req) {
		return
	}
	result, err := h.expenses.ListMonth(c.Request.Context(), userID, req.Month)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Upsert godoc
//
//	@Summary	Set a category's value for a month
//	@Tags		expenses
//	@Accept		json
//	@Param		request	body	expense.UpsertExpenseRequest	true	"Request body"
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/expenses [put]
func (h *ExpenseHandler) Upsert(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req expenseapp.UpsertExpenseRequest
	if !h.bindJSON(c, &req) {
		return
	}
	line, err := h.expenses.Upsert(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, line)
}

// ApplyFixed godoc
//
//	@Summary	Copy a fixed category's January value to February through December
//	@Tags		expenses
//	@Param		year	query	int	true	"Year"
//	@Param		id	path	string	true	"Category ID"	format(uuid)
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/expenses/categories/{id}/apply-fixed [post]
func (h *ExpenseHandler) ApplyFixed(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	categoryID, ok := h.pathID(c)
	if !ok {
		return
	}
	var req YearRequest
	if !h.bindQuery(c, &req) {
		return
	}
	result, err := h.expenses.ApplyFixed(c.Request.Context(), userID, categoryID, req.Year)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
