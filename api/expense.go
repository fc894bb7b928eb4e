package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"spendbook/database"
	"spendbook/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ExpenseHandler expense endpoints
type ExpenseHandler struct {
	store database.Store
}

// NewExpenseHandler creates the expense handler over store
func NewExpenseHandler(store database.Store) *ExpenseHandler {
	return &ExpenseHandler{store: store}
}

// bindPayload decodes the body loosely. An empty body is an empty payload.
func bindPayload(c *gin.Context) (models.ExpensePayload, bool) {
	var p models.ExpensePayload
	if err := json.NewDecoder(c.Request.Body).Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		BadRequest(c, MsgInvalidBody)
		return p, false
	}
	return p, true
}

// storeError answers the known store failures and hands the rest to the error middleware
func storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		NotFound(c, MsgExpenseNotFound)
	case errors.Is(err, database.ErrConflict):
		Conflict(c, MsgExpenseConflict)
	default:
		_ = c.Error(err)
	}
}

// Create creates an expense
// @Summary Create an expense
// @Description Validates the payload and stores a new expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param request body models.ExpensePayload true "Expense"
// @Success 201 {object} models.Expense "Created"
// @Failure 400 {object} Response "Validation failed"
// @Failure 500 {object} Response "Internal server error"
// @Router /api/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	fields, errs := models.ParseExpense(payload)
	if len(errs) > 0 {
		ValidationFailed(c, errs)
		return
	}

	expense, err := h.store.Create(c.Request.Context(), fields)
	if err != nil {
		storeError(c, err)
		return
	}

	log.Debug().Str("id", expense.ID).Msg("expense created")
	c.JSON(http.StatusCreated, expense)
}

// List lists all expenses
// @Summary List expenses
// @Description Returns every expense, newest date first
// @Tags expenses
// @Produce json
// @Success 200 {array} models.Expense "Expenses"
// @Failure 500 {object} Response "Internal server error"
// @Router /api/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	expenses, err := h.store.List(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// Get returns one expense
// @Summary Get an expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} models.Expense "Expense"
// @Failure 404 {object} Response "Expense not found"
// @Router /api/expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	expense, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

// Update partially updates an expense
// @Summary Update an expense
// @Description Fields left out keep their stored value. The merged record is validated again.
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param request body models.ExpensePayload true "Fields to change"
// @Success 200 {object} models.Expense "Updated"
// @Failure 400 {object} Response "Validation failed"
// @Failure 404 {object} Response "Expense not found"
// @Failure 409 {object} Response "Modified concurrently"
// @Router /api/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	existing, err := h.store.Get(ctx, c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}

	fields, errs := models.ParseExpense(payload.Merge(existing))
	if len(errs) > 0 {
		ValidationFailed(c, errs)
		return
	}

	updated, err := h.store.Update(ctx, existing, fields)
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			log.Warn().Str("id", existing.ID).Msg("concurrent update rejected")
		}
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes an expense
// @Summary Delete an expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} Response "Expense deleted"
// @Failure 404 {object} Response "Expense not found"
// @Router /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		storeError(c, err)
		return
	}
	Message(c, http.StatusOK, MsgExpenseDeleted)
}
