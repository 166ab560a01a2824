package app

import (
	"context"

	"github.com/alexanderramin/trax/internal/domain"
)

type StatusUseCase interface {
	GetStatus(ctx context.Context, user string) (*domain.Status, error)
}

type TrackUseCase interface {
	Track(ctx context.Context, user string, req domain.TrackRequest) (*TrackResult, error)
}

type ListRowsUseCase interface {
	ListRows(ctx context.Context, user string) ([]domain.Row, error)
}

type AddUserUseCase interface {
	AddUser(ctx context.Context, user string) error
}
