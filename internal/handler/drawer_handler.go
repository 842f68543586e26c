// internal/handler/drawer_handler.go
package handler

import (
	"io"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"receipt-service/internal/model"
	"receipt-service/internal/utils"
	"receipt-service/pkg/driver"
)

// DrawerHandler handles cash drawer requests
type DrawerHandler struct {
	printer driver.ReceiptPrinter
	logger  *utils.ServiceLogger
}

// NewDrawerHandler creates a new drawer handler
func NewDrawerHandler(printer driver.ReceiptPrinter, logger *zap.Logger) *DrawerHandler {
	return &DrawerHandler{
		printer: printer,
		logger:  utils.NewServiceLogger(logger, "drawer-handler"),
	}
}

// RegisterRoutes registers drawer routes
func (h *DrawerHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/drawer/open", h.OpenDrawer)
}

// OpenDrawer sends a drawer kick pulse
// @Summary Open the cash drawer
// @Description Send a drawer kick pulse through the printer. The body is optional.
// @Tags Drawer
// @Accept json
// @Produce json
// @Param request body model.DrawerOptions false "Custom kick code"
// @Success 200 {object} utils.APIResponse{data=model.PrintResult} "Drawer opened"
// @Failure 400 {object} utils.APIResponse "Invalid kick code"
// @Failure 503 {object} utils.APIResponse "Printer unavailable"
// @Router /drawer/open [post]
func (h *DrawerHandler) OpenDrawer(c *gin.Context) {
	var options model.DrawerOptions
	if err := c.ShouldBindJSON(&options); err != nil && !errors.Is(err, io.EOF) {
		utils.ErrorFromErr(c, "Invalid request body", bindError(err))
		return
	}

	result, err := h.printer.OpenCashDrawer(c.Request.Context(), options)
	if err != nil {
		h.logger.Error("Failed to open cash drawer", zap.Error(err))
		utils.ErrorFromErr(c, "Failed to open cash drawer", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result.Message, result)
}
