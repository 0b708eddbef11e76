package web

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Cyprinus12138/otelgin"
	"github.com/gin-gonic/gin"

	"github.com/supsi-dacd-isaac/stripe-testbed/service"
)

// Server exposes the testbed operations as a JSON API. Each handler runs the
// same service call the CLI runs and returns the parsed record together with
// the console report text, mirroring the command-line output.
type Server struct {
	payments *service.PaymentService
	router   *gin.Engine
}

type PaymentRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency" binding:"required"`
}

type CustomerRequest struct {
	Email       string `json:"email" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type RefundRequest struct {
	PaymentID string `json:"paymentId" binding:"required"`
}

func NewServer(payments *service.PaymentService) *Server {
	s := &Server{payments: payments}

	router := gin.Default()
	router.Use(otelgin.Middleware("stripe-testbed"))

	router.POST("/payments", s.createPayment)
	router.GET("/payments", s.listPayments)
	router.GET("/payments/:id", s.paymentDetails)
	router.GET("/balance", s.getBalance)
	router.POST("/customers", s.createCustomer)
	router.POST("/refunds", s.createRefund)
	router.GET("/payment-methods", s.listPaymentMethods)

	s.router = router
	return s
}

func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) createPayment(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	ctx := c.Request.Context()
	slog.InfoContext(ctx, "Payment lifecycle started", slog.Int64("amount", req.Amount), slog.String("currency", req.Currency))

	console := &bytes.Buffer{}
	pi, err := s.payments.WithOutput(console).CreatePayment(ctx, req.Amount, req.Currency)
	if err != nil {
		slog.ErrorContext(ctx, "Payment lifecycle failed", slog.Any("error", err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment": pi, "console": console.String()})
}

func (s *Server) listPayments(c *gin.Context) {
	limit := 5
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = n
	}

	console := &bytes.Buffer{}
	payments, err := s.payments.WithOutput(console).ListPayments(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments, "console": console.String()})
}

func (s *Server) paymentDetails(c *gin.Context) {
	console := &bytes.Buffer{}
	pi, err := s.payments.WithOutput(console).PaymentDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": pi, "console": console.String()})
}

func (s *Server) getBalance(c *gin.Context) {
	console := &bytes.Buffer{}
	bal, err := s.payments.WithOutput(console).GetBalance(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": bal, "console": console.String()})
}

func (s *Server) createCustomer(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	console := &bytes.Buffer{}
	customer, err := s.payments.WithOutput(console).CreateCustomer(c.Request.Context(), req.Email, req.Name, req.Description)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer, "console": console.String()})
}

func (s *Server) createRefund(c *gin.Context) {
	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	console := &bytes.Buffer{}
	refund, err := s.payments.WithOutput(console).CreateRefund(c.Request.Context(), req.PaymentID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if refund == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No charge found for this payment intent"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"refund": refund, "console": console.String()})
}

func (s *Server) listPaymentMethods(c *gin.Context) {
	console := &bytes.Buffer{}
	methods, err := s.payments.WithOutput(console).ListPaymentMethods(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"paymentMethods": methods, "console": console.String()})
}
