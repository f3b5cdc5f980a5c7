package ports

import (
	"context"

	"github.com/Gunvolt24/semfilms/internal/domain"
)

type WarmUpValidator interface {
	Validate(ctx context.Context, req *domain.WarmUpRequest) error
}
