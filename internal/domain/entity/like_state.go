package entity

// LikeState is the cached like state of a single item as seen by the UI.
type LikeState struct {
	Liked     bool   `json:"liked"`
	Count     int    `json:"count"`
	IsLoading bool   `json:"is_loading"`
	Error     string `json:"error,omitempty"`
}

// DefaultLikeState returns the state an item has before anything is known
// about it. Entries are created lazily with this value on first access.
func DefaultLikeState() LikeState {
	return LikeState{}
}

// LikeSummary is the authoritative liked/count pair reported by the server.
type LikeSummary struct {
	Liked bool `json:"liked"`
	Count int  `json:"count"`
}

// PreloadItem carries externally supplied like values used to seed the cache
// without a network call, typically from an already fetched feed page.
type PreloadItem struct {
	ID    string `json:"id"`
	Liked bool   `json:"liked"`
	Count int    `json:"count"`
}
