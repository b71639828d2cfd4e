// Package handlersはginのHTTPハンドラーを提供します。
package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hwllojeena/bucket-list/internal/photos"
	"github.com/hwllojeena/bucket-list/internal/repositories"
	"github.com/hwllojeena/bucket-list/internal/services"
)

// ListHandler はバケットリスト関連のハンドラーを管理します。
type ListHandler struct {
	listService  *services.ListService
	photoService *services.PhotoService
}

// NewListHandler は新しいListHandlerを作成します。
func NewListHandler(listService *services.ListService, photoService *services.PhotoService) *ListHandler {
	return &ListHandler{listService: listService, photoService: photoService}
}

// GetListHandler は現在のリスト状態を返します。
func (h *ListHandler) GetListHandler(c *gin.Context) {
	state, err := h.listService.State(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repositories.ErrTenantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "The journey you're looking for doesn't exist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load bucket list"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// CompleteTaskHandler は写真付きでタスクを達成します。
// 写真の取り込みが失敗した場合、タスクの状態は一切変化しません。
func (h *ListHandler) CompleteTaskHandler(c *gin.Context) {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	file, _, err := c.Request.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Photo file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read photo file"})
		return
	}

	photoURL, err := h.photoService.Ingest(c.Request.Context(), taskID, data)
	if err != nil {
		switch {
		case errors.Is(err, photos.ErrEmptyFile), errors.Is(err, photos.ErrDecodeFailed):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid photo file", "details": err.Error()})
		case errors.Is(err, services.ErrUploadInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": "Another upload is in progress"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload photo", "details": err.Error()})
		}
		return
	}

	state, err := h.listService.CompleteTask(c.Request.Context(), c.Param("slug"), taskID, photoURL)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrTenantNotFound), errors.Is(err, repositories.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		case errors.Is(err, services.ErrTaskLocked):
			c.JSON(http.StatusForbidden, gin.H{"error": "Task is still locked"})
		case errors.Is(err, services.ErrTaskAlreadyCompleted):
			c.JSON(http.StatusConflict, gin.H{"error": "Task is already completed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete task"})
		}
		return
	}
	c.JSON(http.StatusOK, state)
}

// ClaimVoucherHandler はバウチャーを獲得済みにします。
func (h *ListHandler) ClaimVoucherHandler(c *gin.Context) {
	voucherID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	state, err := h.listService.ClaimVoucher(c.Request.Context(), c.Param("slug"), voucherID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrTenantNotFound), errors.Is(err, services.ErrUnknownVoucher):
			c.JSON(http.StatusNotFound, gin.H{"error": "Voucher not found"})
		case errors.Is(err, services.ErrVoucherLocked):
			c.JSON(http.StatusForbidden, gin.H{"error": "Complete the next 5 adventures to unlock this gift"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to claim voucher"})
		}
		return
	}
	c.JSON(http.StatusOK, state)
}
