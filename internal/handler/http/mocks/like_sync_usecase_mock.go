package mocks

import (
	"context"

	"github.com/mikiasgoitom/likesync/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/likesync/internal/usecase/contract"
)

// MockLikeSyncUsecase is a mock implementation of the ILikeSyncUseCase interface
type MockLikeSyncUsecase struct {
	// Control mock behavior
	ToggleErr  error
	RefreshErr error

	// Return values
	MockSummary entity.LikeSummary
	MockState   entity.LikeState

	// Captured calls
	PreloadedItems []entity.PreloadItem
	ClearedItems   []string
}

// Ensure MockLikeSyncUsecase implements the usecase contract
var _ usecasecontract.ILikeSyncUseCase = (*MockLikeSyncUsecase)(nil)

func NewMockLikeSyncUsecase() *MockLikeSyncUsecase {
	return &MockLikeSyncUsecase{
		MockSummary: entity.LikeSummary{Liked: true, Count: 5},
		MockState:   entity.LikeState{Liked: true, Count: 5},
	}
}

func (m *MockLikeSyncUsecase) Toggle(ctx context.Context, itemID string, currentlyLiked bool) (*entity.LikeSummary, error) {
	if m.ToggleErr != nil {
		return nil, m.ToggleErr
	}
	summary := m.MockSummary
	return &summary, nil
}

func (m *MockLikeSyncUsecase) Refresh(ctx context.Context, itemID string) (*entity.LikeSummary, error) {
	if m.RefreshErr != nil {
		return nil, m.RefreshErr
	}
	summary := m.MockSummary
	return &summary, nil
}

func (m *MockLikeSyncUsecase) Preload(items []entity.PreloadItem) {
	m.PreloadedItems = append(m.PreloadedItems, items...)
}

func (m *MockLikeSyncUsecase) Subscribe(ctx context.Context, itemID string) <-chan entity.LikeState {
	ch := make(chan entity.LikeState, 1)
	ch <- m.MockState
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch
}

func (m *MockLikeSyncUsecase) Get(itemID string) entity.LikeState {
	return m.MockState
}

func (m *MockLikeSyncUsecase) Snapshot() map[string]entity.LikeState {
	return map[string]entity.LikeState{"mock-item": m.MockState}
}

func (m *MockLikeSyncUsecase) ClearError(itemID string) {
	m.ClearedItems = append(m.ClearedItems, itemID)
}
