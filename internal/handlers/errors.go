package handlers

import (
	"cafeteria/internal/services"
	"errors"
	"log"
	"net/http"

	"cafeteria/pkg/resp"

	"github.com/gin-gonic/gin"
)

type stockFailure struct {
	Item      string `json:"item"`
	Reason    string `json:"reason"`
	Message   string `json:"message"`
	Available int    `json:"available"`
	Required  int    `json:"required"`
}

func stockFailures(failures []*services.StockError) []stockFailure {
	out := make([]stockFailure, 0, len(failures))
	for _, f := range failures {
		reason := "error"
		switch {
		case errors.Is(f, services.ErrNotFound):
			reason = "not_found"
		case errors.Is(f, services.ErrItemUnavailable):
			reason = "unavailable"
		case errors.Is(f, services.ErrInsufficientStock):
			reason = "insufficient_stock"
		}
		out = append(out, stockFailure{
			Item:      f.Item,
			Reason:    reason,
			Message:   f.Error(),
			Available: f.Available,
			Required:  f.Required,
		})
	}
	return out
}

// respondError maps service errors to HTTP statuses.
func respondError(c *gin.Context, err error) {
	var recErr *services.ReconciliationError
	var validationErr *services.StockValidationError
	var stockErr *services.StockError

	switch {
	case errors.As(err, &recErr):
		resp.ErrorWithData(c, http.StatusBadGateway,
			"payment was received but the order could not be saved; quote this reference to staff",
			gin.H{"order_reference": recErr.Reference, "amount": recErr.Amount, "payment_mode": recErr.PaymentMode})
	case errors.As(err, &validationErr):
		resp.ErrorWithData(c, http.StatusConflict, "some items cannot be ordered", stockFailures(validationErr.Failures))
	case errors.As(err, &stockErr):
		resp.ErrorWithData(c, http.StatusConflict, stockErr.Error(), stockFailures([]*services.StockError{stockErr}))
	case errors.Is(err, services.ErrNotFound):
		resp.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		resp.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrPaymentRejected):
		resp.Error(c, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrInvalidPaymentMode),
		errors.Is(err, services.ErrInvalidDiscount),
		errors.Is(err, services.ErrInvalidStatus):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrDuplicateUsername),
		errors.Is(err, services.ErrDuplicateItem),
		errors.Is(err, services.ErrDuplicateReference),
		errors.Is(err, services.ErrAlreadyRated),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrCartConsumed):
		resp.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrConnection):
		log.Printf("Storage unavailable: %v", err)
		resp.Error(c, http.StatusServiceUnavailable, "service temporarily unavailable")
	default:
		log.Printf("Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		resp.Error(c, http.StatusInternalServerError, "internal error")
	}
}
