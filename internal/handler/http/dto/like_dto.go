package dto

import (
	"github.com/mikiasgoitom/likesync/internal/domain/entity"
)

// ToggleRequest carries the caller's view of the current like state; the
// engine flips it optimistically.
type ToggleRequest struct {
	CurrentlyLiked bool `json:"currently_liked"`
}

// PreloadItemRequest is one externally supplied like value.
type PreloadItemRequest struct {
	ID    string `json:"id" binding:"required,max=128,itemid"`
	Liked bool   `json:"liked"`
	Count int    `json:"count" binding:"min=0"`
}

// PreloadRequest seeds cache entries from an already fetched feed page.
type PreloadRequest struct {
	Items []PreloadItemRequest `json:"items" binding:"required,min=1,dive"`
}

// LikeSummaryResponse is the DTO for a committed liked/count pair.
type LikeSummaryResponse struct {
	Liked bool `json:"liked"`
	Count int  `json:"count"`
}

// LikeStateResponse is the DTO for a cached like state.
type LikeStateResponse struct {
	ItemID    string `json:"item_id"`
	Liked     bool   `json:"liked"`
	Count     int    `json:"count"`
	IsLoading bool   `json:"is_loading"`
	Error     string `json:"error,omitempty"`
}

// ToLikeSummaryResponse converts an entity.LikeSummary to its DTO.
func ToLikeSummaryResponse(summary entity.LikeSummary) LikeSummaryResponse {
	return LikeSummaryResponse{Liked: summary.Liked, Count: summary.Count}
}

// ToLikeStateResponse converts an entity.LikeState to its DTO.
func ToLikeStateResponse(itemID string, st entity.LikeState) LikeStateResponse {
	return LikeStateResponse{
		ItemID:    itemID,
		Liked:     st.Liked,
		Count:     st.Count,
		IsLoading: st.IsLoading,
		Error:     st.Error,
	}
}

// ToPreloadItems converts the request items to entity values.
func ToPreloadItems(items []PreloadItemRequest) []entity.PreloadItem {
	out := make([]entity.PreloadItem, 0, len(items))
	for _, item := range items {
		out = append(out, entity.PreloadItem{ID: item.ID, Liked: item.Liked, Count: item.Count})
	}
	return out
}

// MessageResponse is a generic response for success/error messages.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is a response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
}
