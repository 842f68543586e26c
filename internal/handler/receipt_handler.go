// internal/handler/receipt_handler.go
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	ierr "receipt-service/internal/errors"
	"receipt-service/internal/model"
	"receipt-service/internal/utils"
	"receipt-service/pkg/driver"
)

// ReceiptHandler handles receipt preview and print requests
type ReceiptHandler struct {
	printer driver.ReceiptPrinter
	logger  *utils.ServiceLogger
}

// PrintRequest is the body of a print request
type PrintRequest struct {
	Receipt *model.ReceiptData `json:"receipt" binding:"required"`
	Options model.PrintOptions `json:"options"`
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(printer driver.ReceiptPrinter, logger *zap.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		printer: printer,
		logger:  utils.NewServiceLogger(logger, "receipt-handler"),
	}
}

// RegisterRoutes registers receipt routes
func (h *ReceiptHandler) RegisterRoutes(router *gin.RouterGroup) {
	receipts := router.Group("/receipts")
	{
		receipts.POST("/preview", h.PreviewReceipt)
		receipts.POST("/print", h.PrintReceipt)
	}
}

// PreviewReceipt renders a receipt to PNG
// @Summary Preview a receipt
// @Description Render receipt data to the PNG that would be printed. No printer is used.
// @Tags Receipts
// @Accept json
// @Produce png
// @Param request body model.ReceiptData true "Receipt data"
// @Success 200 {file} binary "Rendered receipt"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 422 {object} utils.APIResponse "Receipt could not be rendered"
// @Router /receipts/preview [post]
func (h *ReceiptHandler) PreviewReceipt(c *gin.Context) {
	var data model.ReceiptData
	if err := c.ShouldBindJSON(&data); err != nil {
		utils.ErrorFromErr(c, "Invalid request body", bindError(err))
		return
	}
	if err := data.Validate(); err != nil {
		utils.ErrorFromErr(c, "Invalid receipt", err)
		return
	}

	img, err := h.printer.Preview(&data)
	if err != nil {
		h.logger.Error("Failed to render preview", zap.Error(err))
		utils.ErrorFromErr(c, "Failed to render receipt", err)
		return
	}

	c.Data(http.StatusOK, "image/png", img)
}

// PrintReceipt renders and prints a receipt
// @Summary Print a receipt
// @Description Render receipt data and send it to the configured printer
// @Tags Receipts
// @Accept json
// @Produce json
// @Param request body PrintRequest true "Receipt data and print options"
// @Success 200 {object} utils.APIResponse{data=model.PrintResult} "Receipt printed"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 422 {object} utils.APIResponse "Receipt could not be rendered"
// @Failure 503 {object} utils.APIResponse "Printer unavailable"
// @Router /receipts/print [post]
func (h *ReceiptHandler) PrintReceipt(c *gin.Context) {
	var req PrintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorFromErr(c, "Invalid request body", bindError(err))
		return
	}
	if err := req.Receipt.Validate(); err != nil {
		utils.ErrorFromErr(c, "Invalid receipt", err)
		return
	}

	result, err := h.printer.Print(c.Request.Context(), req.Receipt, req.Options)
	if err != nil {
		h.logger.Error("Failed to print receipt", zap.Error(err))
		utils.ErrorFromErr(c, "Failed to print receipt", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result.Message, result)
}

func bindError(err error) error {
	return ierr.WithError(err).
		WithHint("Request body must be valid JSON matching the documented schema").
		Mark(ierr.ErrValidation)
}
