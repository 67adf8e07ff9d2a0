package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/likesync/internal/handler/http/dto"
	"github.com/mikiasgoitom/likesync/internal/infrastructure/validator"
	usecasecontract "github.com/mikiasgoitom/likesync/internal/usecase/contract"
)

// LikeHandler exposes the sync engine to local feed/UI clients.
type LikeHandler struct {
	likeSync  usecasecontract.ILikeSyncUseCase
	validator *validator.AppValidator
}

// NewLikeHandler creates a new LikeHandler.
func NewLikeHandler(likeSync usecasecontract.ILikeSyncUseCase) *LikeHandler {
	return &LikeHandler{
		likeSync:  likeSync,
		validator: validator.NewValidator(),
	}
}

// ToggleHandler flips the like state of an item and waits for the commit or
// rollback before responding.
func (h *LikeHandler) ToggleHandler(c *gin.Context) {
	itemID := c.Param("itemID")
	if err := h.validator.ValidateItemID(itemID); err != nil {
		ErrorHandler(c, http.StatusBadRequest, "Invalid item ID")
		return
	}
	var req dto.ToggleRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	summary, err := h.likeSync.Toggle(c.Request.Context(), itemID, req.CurrentlyLiked)
	if err != nil {
		SyncErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToLikeSummaryResponse(*summary))
}

// RefreshHandler overwrites an item's cached state from an authoritative read.
func (h *LikeHandler) RefreshHandler(c *gin.Context) {
	itemID := c.Param("itemID")
	if err := h.validator.ValidateItemID(itemID); err != nil {
		ErrorHandler(c, http.StatusBadRequest, "Invalid item ID")
		return
	}
	summary, err := h.likeSync.Refresh(c.Request.Context(), itemID)
	if err != nil {
		SyncErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToLikeSummaryResponse(*summary))
}

// GetStateHandler returns the current cached state of an item.
func (h *LikeHandler) GetStateHandler(c *gin.Context) {
	itemID := c.Param("itemID")
	if err := h.validator.ValidateItemID(itemID); err != nil {
		ErrorHandler(c, http.StatusBadRequest, "Invalid item ID")
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToLikeStateResponse(itemID, h.likeSync.Get(itemID)))
}

// PreloadHandler seeds cache entries from an already fetched feed page.
func (h *LikeHandler) PreloadHandler(c *gin.Context) {
	var req dto.PreloadRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	h.likeSync.Preload(dto.ToPreloadItems(req.Items))
	MessageHandler(c, http.StatusOK, "Preloaded")
}

// ClearErrorHandler removes the error annotation from an item.
func (h *LikeHandler) ClearErrorHandler(c *gin.Context) {
	itemID := c.Param("itemID")
	if err := h.validator.ValidateItemID(itemID); err != nil {
		ErrorHandler(c, http.StatusBadRequest, "Invalid item ID")
		return
	}
	h.likeSync.ClearError(itemID)
	MessageHandler(c, http.StatusOK, "Error cleared")
}

// SubscribeHandler streams an item's state over server-sent events until the
// client disconnects. The latest state is replayed immediately.
func (h *LikeHandler) SubscribeHandler(c *gin.Context) {
	itemID := c.Param("itemID")
	if err := h.validator.ValidateItemID(itemID); err != nil {
		ErrorHandler(c, http.StatusBadRequest, "Invalid item ID")
		return
	}
	states := h.likeSync.Subscribe(c.Request.Context(), itemID)
	c.Stream(func(w io.Writer) bool {
		st, ok := <-states
		if !ok {
			return false
		}
		c.SSEvent("state", dto.ToLikeStateResponse(itemID, st))
		return true
	})
}
