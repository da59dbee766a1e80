package rest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sosiol/sosiol/internal/adapter"
	"github.com/sosiol/sosiol/internal/api/shared/constants"
	"github.com/sosiol/sosiol/internal/api/shared/dto"
	"github.com/sosiol/sosiol/internal/api/shared/executor"
	"github.com/sosiol/sosiol/internal/logger"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
type Handler interface {
	// ListCreators returns all creators, newest first
	// GET /api/creators
	ListCreators(c *gin.Context)

	// GetCreatorByUsername returns a creator by username
	// GET /api/creators/username/:username
	GetCreatorByUsername(c *gin.Context)

	// GetCreatorByWallet returns a creator by wallet address
	// GET /api/creators/wallet/:walletAddress
	GetCreatorByWallet(c *gin.Context)

	// UpsertCreator creates or updates a profile signed by the wallet owner
	// POST /api/creators
	UpsertCreator(c *gin.Context)

	// GetDashboard returns a creator's recent tips and totals
	// GET /api/creators/:walletAddress/dashboard
	GetDashboard(c *gin.Context)

	// GetWalletInfo returns every tip addressed to a creator's wallet
	// GET /api/creators/:walletAddress/wallet-info
	GetWalletInfo(c *gin.Context)

	// CleanupSelfTips removes self-payment tips (requires authentication)
	// POST /api/creators/:walletAddress/cleanup
	CleanupSelfTips(c *gin.Context)

	// CreateTip records a tip
	// POST /api/tips
	CreateTip(c *gin.Context)

	// ListTipsByCreator returns completed tips received by a wallet
	// GET /api/tips/creator/:walletAddress
	ListTipsByCreator(c *gin.Context)

	// ListTipsByFan returns completed tips sent by a wallet
	// GET /api/tips/fan/:walletAddress
	ListTipsByFan(c *gin.Context)

	// GetTransaction looks up a transaction on chain
	// GET /api/transactions/:signature
	GetTransaction(c *gin.Context)

	// UploadAvatar stores an avatar image from the multipart field "avatar"
	// POST /api/upload/avatar
	UploadAvatar(c *gin.Context)

	// ReconcileTotals repairs drifted creator totals (requires authentication)
	// POST /api/admin/reconcile
	ReconcileTotals(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	debug    bool
	executor executor.Executor
	clock    adapter.Clock
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(debug bool, exec executor.Executor, clock adapter.Clock) Handler {
	return &handler{
		debug:    debug,
		executor: exec,
		clock:    clock,
	}
}

// walletParam reads and trims the walletAddress path parameter
func walletParam(c *gin.Context) (string, bool) {
	wallet := strings.TrimSpace(c.Param("walletAddress"))
	if wallet == "" {
		respondBadRequest(c, "Wallet address is required")
		return "", false
	}
	return wallet, true
}

func (h *handler) ListCreators(c *gin.Context) {
	creators, err := h.executor.ListCreators(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, creators)
}

func (h *handler) GetCreatorByUsername(c *gin.Context) {
	creator, err := h.executor.GetCreatorByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	if creator == nil {
		respondNotFound(c, "Creator not found")
		return
	}

	c.JSON(http.StatusOK, creator)
}

func (h *handler) GetCreatorByWallet(c *gin.Context) {
	wallet, ok := walletParam(c)
	if !ok {
		return
	}

	creator, err := h.executor.GetCreatorByWallet(c.Request.Context(), wallet)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if creator == nil {
		respondNotFound(c, "Creator not found")
		return
	}

	c.JSON(http.StatusOK, creator)
}

func (h *handler) UpsertCreator(c *gin.Context) {
	var req dto.UpsertCreatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "invalid request body")
		return
	}

	creator, err := h.executor.UpsertCreator(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, creator)
}

func (h *handler) GetDashboard(c *gin.Context) {
	wallet, ok := walletParam(c)
	if !ok {
		return
	}

	dashboard, err := h.executor.GetDashboard(c.Request.Context(), wallet)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if dashboard == nil {
		respondNotFound(c, "Creator not found")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

func (h *handler) GetWalletInfo(c *gin.Context) {
	wallet, ok := walletParam(c)
	if !ok {
		return
	}

	info, err := h.executor.GetWalletInfo(c.Request.Context(), wallet)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if info == nil {
		respondNotFound(c, "Creator not found")
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *handler) CleanupSelfTips(c *gin.Context) {
	wallet, ok := walletParam(c)
	if !ok {
		return
	}

	result, err := h.executor.CleanupSelfTips(c.Request.Context(), wallet)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *handler) CreateTip(c *gin.Context) {
	var req dto.CreateTipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "invalid request body")
		return
	}

	tip, created, err := h.executor.RecordTip(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	c.JSON(status, tip)
}

func (h *handler) ListTipsByCreator(c *gin.Context) {
	wallet, ok := walletParam(c)
	if !ok {
		return
	}

	tips, err := h.executor.ListTipsByCreator(c.Request.Context(), wallet)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, tips)
}

func (h *handler) ListTipsByFan(c *gin.Context) {
	wallet, ok := walletParam(c)
	if !ok {
		return
	}

	tips, err := h.executor.ListTipsByFan(c.Request.Context(), wallet)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, tips)
}

func (h *handler) GetTransaction(c *gin.Context) {
	signature := strings.TrimSpace(c.Param("signature"))
	if signature == "" {
		respondBadRequest(c, "Transaction signature is required")
		return
	}

	tx, err := h.executor.GetTransaction(c.Request.Context(), signature)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if tx == nil {
		respondNotFound(c, "Transaction not found")
		return
	}

	c.JSON(http.StatusOK, tx)
}

func (h *handler) UploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile(constants.AVATAR_FORM_FIELD)
	if err != nil {
		respondBadRequest(c, "No file uploaded", "multipart field \"avatar\" is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WarnCtx(c.Request.Context(), "Failed to close uploaded file", zap.Error(err))
		}
	}()

	result, err := h.executor.UploadAvatar(c.Request.Context(), file)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *handler) ReconcileTotals(c *gin.Context) {
	result, err := h.executor.ReconcileTotals(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    "ok",
		Timestamp: h.clock.Now().UTC(),
	})
}
