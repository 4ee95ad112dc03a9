package handler

import (
	"github.com/gin-gonic/gin"
	ledgerapp "github.com/salonfin/backend/internal/application/ledger"
	"github.com/salonfin/backend/internal/domain/shared"
)

// TransactionHandler handles ledger transaction endpoints
type TransactionHandler struct {
	BaseHandler
	transactions TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactions TransactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// List godoc
//
//	@Summary	List transactions, newest first
//	@Tags		transactions
//	@Param		page		query	int		false	"Page number"		default(1)
//	@Param		page_size	query	int		false	"Page size"			default(20)
//	@Param		kind		query	string	false	"ENTRADA or SAIDA"
//	@Param		from		query	string	false	"First day (YYYY-MM-DD)"
//	@Param		to			query	string	false	"Last day (YYYY-MM-DD)"
//	@Param		search		query	string	false	"Matches description or category"
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var filter ledgerapp.TransactionListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	items, total, err := h.transactions.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page := shared.Filter{Page: filter.Page, PageSize: filter.PageSize}.Normalized()
	h.SuccessWithMeta(c, items, total, page.Page, page.PageSize)
}

// GetByID godoc
//
//	@Summary	Get a transaction
//	@Tags		transactions
//	@Param		id	path	string	true	"Transaction ID"	format(uuid)
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	tx, err := h.transactions.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tx)
}

// Create godoc
//
//	@Summary	Record a transaction
//	@Tags		transactions
//	@Accept		json
//	@Param		request	body	ledger.CreateTransactionRequest	true	"Request body"
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req ledgerapp.CreateTransactionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	tx, err := h.transactions.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tx)
}

// Update godoc
//
//	@Summary	Replace a transaction
//	@Tags		transactions
//	@Accept		json
//	@Param		id	path	string	true	"Transaction ID"	format(uuid)
//	@Param		request	body	ledger.UpdateTransactionRequest	true	"Request body"
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req ledgerapp.UpdateTransactionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	tx, err := h.transactions.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tx)
}

// Delete godoc
//
//	@Summary	Delete a transaction
//	@Tags		transactions
//	@Param		id	path	string	true	"Transaction ID"	format(uuid)
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.transactions.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
