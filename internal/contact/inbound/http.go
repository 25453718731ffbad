package inbound

import (
	"context"

	"github.com/VenkataSiriPriya/Backend-acg/internal/contact/usecase"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/router"
)

type uc interface {
	Send(ctx context.Context, in usecase.SendInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/contact", end.Send)
}
