package public

import (
	"errors"

	"github.com/gemstone-shop/gemstone/internal/http/response"
	"github.com/gemstone-shop/gemstone/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps a business error to a response code.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "quantity must be at least 1"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, msg: "cart item not found"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
}

var paymentErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrPaymentExists, code: response.CodeConflict, msg: "payment already exists for this order"},
	{target: service.ErrPaymentNotFound, code: response.CodeNotFound, msg: "payment not found"},
}

var wishlistErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrWishlistDuplicate, code: response.CodeBadRequest, msg: "product already in wishlist"},
	{target: service.ErrWishlistItemNotFound, code: response.CodeNotFound, msg: "wishlist item not found"},
}

var catalogErrorRules = []mappedHandlerError{
	{target: service.ErrCategoryNotFound, code: response.CodeNotFound, msg: "category not found"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrInvalidUpload, code: response.CodeBadRequest, msg: "invalid upload"},
}
