package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"bankcore/internal/errors"
	"bankcore/internal/service"
)

// LedgerHandler handles deposit, withdraw and transaction history endpoints.
// These routes accept no bearer token; the authorization gap is a documented
// part of the surface, not an oversight to close here.
type LedgerHandler struct {
	ledgerService service.LedgerService
}

// NewLedgerHandler creates a new ledger handler.
func NewLedgerHandler(ledgerService service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// MoneyRequest represents a deposit or withdrawal request.
type MoneyRequest struct {
	UserID uint            `json:"userId" validate:"required"`
	Amount decimal.Decimal `json:"amount"`
}

// BalanceResponse represents the balance after a deposit or withdrawal.
type BalanceResponse struct {
	UserID  uint            `json:"userId"`
	Balance decimal.Decimal `json:"balance"`
}

// Deposit godoc
// @Summary Deposit money into an account
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body MoneyRequest true "Deposit data"
// @Success 200 {object} BalanceResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /deposit [post]
func (h *LedgerHandler) Deposit(c echo.Context) error {
	var req MoneyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	balance, err := h.ledgerService.Deposit(c.Request().Context(), req.UserID, req.Amount)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, BalanceResponse{UserID: req.UserID, Balance: balance})
}

// Withdraw godoc
// @Summary Withdraw money from an account
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body MoneyRequest true "Withdrawal data"
// @Success 200 {object} BalanceResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /withdraw [post]
func (h *LedgerHandler) Withdraw(c echo.Context) error {
	var req MoneyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	balance, err := h.ledgerService.Withdraw(c.Request().Context(), req.UserID, req.Amount)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, BalanceResponse{UserID: req.UserID, Balance: balance})
}

// Transactions godoc
// @Summary List a user's ledger entries, newest first
// @Tags ledger
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {array} model.LedgerEntry
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /transactions/{userId} [get]
func (h *LedgerHandler) Transactions(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user id",
			Code:  "INVALID_USER_ID",
		})
	}

	entries, err := h.ledgerService.History(c.Request().Context(), uint(userID))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, entries)
}
