package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/luissevero/ignitegofinances/internal/customerr"
	"github.com/luissevero/ignitegofinances/internal/entity/transaction"
	"github.com/luissevero/ignitegofinances/internal/entity/user"
	"github.com/luissevero/ignitegofinances/internal/logger"
	"github.com/luissevero/ignitegofinances/internal/model/register"
)

type handlers struct {
	registrar  registrar
	dashboards dashboardProvider
	reader     transactionsReader
}

// createTransactionRequest takes amount as a JSON number or a numeric string.
type createTransactionRequest struct {
	Name     string      `json:"name"`
	Amount   json.Number `json:"amount"`
	Type     string      `json:"type"`
	Category string      `json:"category"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func currentUser(c *gin.Context) user.User {
	return user.User{ID: c.Param("userID")}
}

func (h *handlers) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, transaction.Categories)
}

func (h *handlers) getDashboard(c *gin.Context) {
	d, err := h.dashboards.GetDashboard(c.Request.Context(), currentUser(c), c.Query("period"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *handlers) listTransactions(c *gin.Context) {
	records, err := h.reader.GetUserTransactions(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *handlers) createTransaction(c *gin.Context) {
	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	rec, err := h.registrar.Register(c.Request.Context(), currentUser(c), register.Form{
		Name:     req.Name,
		Amount:   req.Amount.String(),
		Type:     req.Type,
		Category: req.Category,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *handlers) clearTransactions(c *gin.Context) {
	if err := h.registrar.Clear(c.Request.Context(), currentUser(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondError(c *gin.Context, err error) {
	var verr *customerr.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: verr.Err, Field: verr.Field})
		return
	}
	logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
}
