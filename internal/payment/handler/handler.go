package handler

import (
	"net/http"
	"time"

	"bus-ticketing/internal/logger"
	"bus-ticketing/internal/models"
	"bus-ticketing/internal/payment"
	"bus-ticketing/internal/payment/storage"
	"bus-ticketing/internal/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler fronts the simulated gateway over HTTP so the booking
// service can be pointed at it like a real processor.
type PaymentHandler struct {
	gateway *payment.SimulatedGateway
	store   storage.Store
	logger  *logger.Logger
}

func NewPaymentHandler(gateway *payment.SimulatedGateway, store storage.Store, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{gateway: gateway, store: store, logger: log}
}

func (h *PaymentHandler) RegisterRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")
	v1.POST("/charges", h.Charge)
	v1.GET("/payments/:paymentId", h.GetPayment)
	v1.GET("/health", h.Health)
}

func (h *PaymentHandler) Charge(c *gin.Context) {
	var req models.ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Corpo da requisição inválido"))
		return
	}
	if req.OrderID == "" {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("order_id é obrigatório"))
		return
	}

	paymentID := utils.GeneratePaymentID()
	record := models.Payment{
		PaymentID:   paymentID,
		OrderID:     req.OrderID,
		Status:      models.StatusPending,
		Amount:      req.Amount,
		CreatedDate: time.Now(),
	}
	if err := h.store.CreatePayment(record); err != nil {
		h.logger.Error("DATABASE", "failed to create payment record: "+err.Error())
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Erro de processamento no servidor"))
		return
	}

	resp, err := h.gateway.Charge(c.Request.Context(), req)
	if err != nil {
		_ = h.store.UpdatePaymentStatus(paymentID, models.StatusFailed, "")
		h.logger.LogPayment("CHARGE_ERROR", paymentID, err.Error())
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Pagamento recusado"))
		return
	}

	if err := h.store.UpdatePaymentStatus(paymentID, resp.Status, resp.TransactionID); err != nil {
		h.logger.Error("DATABASE", "failed to update payment record: "+err.Error())
	}
	h.logger.LogPayment("CHARGE", paymentID, string(resp.Status))

	c.JSON(http.StatusOK, utils.SuccessResponse(resp))
}

func (h *PaymentHandler) GetPayment(c *gin.Context) {
	paymentID := c.Param("paymentId")
	record, err := h.store.GetPaymentByID(paymentID)
	if err != nil {
		c.JSON(http.StatusNotFound, utils.ErrorResponse("Pagamento não encontrado"))
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(record))
}

func (h *PaymentHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, utils.SuccessResponse(gin.H{"status": "ok"}))
}
