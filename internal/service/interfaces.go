package service

import (
	"context"

	"github.com/alexanderramin/trax/internal/app"
	"github.com/alexanderramin/trax/internal/domain"
)

type StatusService interface {
	GetStatus(ctx context.Context, user string) (*domain.Status, error)
}

type TrackService interface {
	Track(ctx context.Context, user string, req domain.TrackRequest) (*app.TrackResult, error)
}

type RowService interface {
	ListRows(ctx context.Context, user string) ([]domain.Row, error)
}

type UserService interface {
	AddUser(ctx context.Context, user string) error
}
