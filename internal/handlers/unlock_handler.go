package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hwllojeena/bucket-list/internal/models"
	"github.com/hwllojeena/bucket-list/internal/repositories"
	"github.com/hwllojeena/bucket-list/internal/services"
)

// UnlockHandler はパスコードによる解錠を処理します。
// 照合は平文比較のみで、成功するとスラッグに紐付く解錠トークンを発行します。
type UnlockHandler struct {
	listService  *services.ListService
	tokenService *services.TokenService
	// defaultPasscode はローカル版（テナントなし）の期待パスコードです。
	defaultPasscode string
}

// NewUnlockHandler は新しいUnlockHandlerを作成します。
func NewUnlockHandler(listService *services.ListService, tokenService *services.TokenService, defaultPasscode string) *UnlockHandler {
	return &UnlockHandler{
		listService:     listService,
		tokenService:    tokenService,
		defaultPasscode: defaultPasscode,
	}
}

// UnlockListHandler はパスコードを照合し、解錠トークンを返します。
func (h *UnlockHandler) UnlockListHandler(c *gin.Context) {
	slug := c.Param("slug")

	var req models.UnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	tenant, err := h.listService.Tenant(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, repositories.ErrTenantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "The journey you're looking for doesn't exist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tenant"})
		return
	}

	expected := h.defaultPasscode
	if tenant != nil {
		expected = tenant.Passcode
	}
	if req.Passcode != expected {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong combination"})
		return
	}

	token, err := h.tokenService.GenerateToken(slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "slug": slug, "redirect": "/" + slug + "/bucket-list"})
}
