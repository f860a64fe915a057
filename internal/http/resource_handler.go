package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"johar-connect/internal/domain"
	"johar-connect/internal/service"
)

// ResourceHandler expone los datos simulados de cada grupo de recursos.
type ResourceHandler struct {
	logger      *zap.Logger
	analytics   *service.AnalyticsService
	sentiment   *service.SentimentService
	blockchain  *service.BlockchainService
	providers   *service.ProviderService
	marketplace *service.MarketplaceService
	feedback    *service.FeedbackService
	governance  *service.GovernanceService
}

// ResourceServices agrupa los servicios que consume ResourceHandler.
type ResourceServices struct {
	Analytics   *service.AnalyticsService
	Sentiment   *service.SentimentService
	Blockchain  *service.BlockchainService
	Providers   *service.ProviderService
	Marketplace *service.MarketplaceService
	Feedback    *service.FeedbackService
	Governance  *service.GovernanceService
}

// NewResourceServices crea todos los servicios con sus datos sembrados.
func NewResourceServices() ResourceServices {
	sentiment := service.NewSentimentService()
	return ResourceServices{
		Analytics:   service.NewAnalyticsService(),
		Sentiment:   sentiment,
		Blockchain:  service.NewBlockchainService(),
		Providers:   service.NewProviderService(),
		Marketplace: service.NewMarketplaceService(),
		Feedback:    service.NewFeedbackService(sentiment),
		Governance:  service.NewGovernanceService(),
	}
}

func NewResourceHandler(logger *zap.Logger, svcs ResourceServices) *ResourceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResourceHandler{
		logger:      logger,
		analytics:   svcs.Analytics,
		sentiment:   svcs.Sentiment,
		blockchain:  svcs.Blockchain,
		providers:   svcs.Providers,
		marketplace: svcs.Marketplace,
		feedback:    svcs.Feedback,
		governance:  svcs.Governance,
	}
}

func (h *ResourceHandler) GetAnalytics(c *gin.Context) {
	c.JSON(http.StatusOK, h.analytics.Summary())
}

func (h *ResourceHandler) GetTrends(c *gin.Context) {
	c.JSON(http.StatusOK, h.analytics.Trends(c.DefaultQuery("period", "monthly")))
}

func (h *ResourceHandler) GetSentimentOverview(c *gin.Context) {
	c.JSON(http.StatusOK, h.feedback.Overview())
}

func (h *ResourceHandler) AnalyzeText(c *gin.Context) {
	var req domain.AnalyzeTextRequest
	if !h.bind(c, &req, "analyze text") {
		return
	}
	c.JSON(http.StatusOK, h.sentiment.Analyze(req.Text))
}

func (h *ResourceHandler) GetContracts(c *gin.Context) {
	c.JSON(http.StatusOK, h.blockchain.Contracts())
}

func (h *ResourceHandler) GetTransactions(c *gin.Context) {
	c.JSON(http.StatusOK, h.blockchain.Transactions())
}

func (h *ResourceHandler) GetNetwork(c *gin.Context) {
	c.JSON(http.StatusOK, h.blockchain.Network())
}

func (h *ResourceHandler) DeployContract(c *gin.Context) {
	var req domain.DeployContractRequest
	if !h.bind(c, &req, "deploy contract") {
		return
	}
	deployer := "anonymous"
	if claims, ok := GetAuthClaims(c); ok {
		deployer = claims.UserID
	}
	res, err := h.blockchain.Deploy(deployer, req)
	if err != nil {
		h.fail(c, err, "deploy contract")
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *ResourceHandler) GetProviders(c *gin.Context) {
	c.JSON(http.StatusOK, h.providers.List())
}

func (h *ResourceHandler) CreateProvider(c *gin.Context) {
	var req domain.ProviderInput
	if !h.bind(c, &req, "create provider") {
		return
	}
	p, err := h.providers.Create(req)
	if err != nil {
		h.fail(c, err, "create provider")
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ResourceHandler) VerifyProvider(c *gin.Context) {
	claims, _ := GetAuthClaims(c)
	v, err := h.providers.Verify(c.Param("id"), claims.UserID)
	if err != nil {
		h.fail(c, err, "verify provider")
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *ResourceHandler) GetProducts(c *gin.Context) {
	c.JSON(http.StatusOK, h.marketplace.Products())
}

func (h *ResourceHandler) GetOrders(c *gin.Context) {
	claims, _ := GetAuthClaims(c)
	c.JSON(http.StatusOK, h.marketplace.Orders(claims.UserID))
}

func (h *ResourceHandler) CreateOrder(c *gin.Context) {
	var req domain.OrderInput
	if !h.bind(c, &req, "create order") {
		return
	}
	claims, _ := GetAuthClaims(c)
	order, err := h.marketplace.CreateOrder(claims.UserID, req)
	if err != nil {
		h.fail(c, err, "create order")
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *ResourceHandler) GetFeedback(c *gin.Context) {
	c.JSON(http.StatusOK, h.feedback.List())
}

func (h *ResourceHandler) SubmitFeedback(c *gin.Context) {
	var req domain.FeedbackInput
	if !h.bind(c, &req, "submit feedback") {
		return
	}
	var user string
	if claims, ok := GetAuthClaims(c); ok {
		user = claims.Email
	}
	fb, err := h.feedback.Submit(user, req)
	if err != nil {
		h.fail(c, err, "submit feedback")
		return
	}
	c.JSON(http.StatusCreated, fb)
}

func (h *ResourceHandler) GetGovernance(c *gin.Context) {
	c.JSON(http.StatusOK, h.governance.Data())
}

func (h *ResourceHandler) CreateProposal(c *gin.Context) {
	var req domain.ProposalInput
	if !h.bind(c, &req, "create proposal") {
		return
	}
	claims, _ := GetAuthClaims(c)
	p, err := h.governance.CreateProposal(claims.UserID, req)
	if err != nil {
		h.fail(c, err, "create proposal")
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ResourceHandler) Vote(c *gin.Context) {
	var req domain.VoteInput
	if !h.bind(c, &req, "vote") {
		return
	}
	claims, _ := GetAuthClaims(c)
	res, err := h.governance.Vote(c.Param("id"), claims.UserID, req)
	if err != nil {
		h.fail(c, err, "vote")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ResourceHandler) bind(c *gin.Context, dst any, op string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.logger.Warn("invalid request", zap.String("op", op), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return false
	}
	return true
}

// fail traduce errores del servicio a códigos HTTP.
func (h *ResourceHandler) fail(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyVoted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("request failed", zap.String("op", op), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
