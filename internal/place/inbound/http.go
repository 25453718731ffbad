package inbound

import (
	"context"

	"github.com/casbin/casbin/v3"

	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/router"
	"github.com/VenkataSiriPriya/Backend-acg/internal/place/usecase"
)

type uc interface {
	Submit(ctx context.Context, in usecase.SubmitInput) (*usecase.SubmitOutput, error)
	List(ctx context.Context) (*usecase.ListOutput, error)
	Moderate(ctx context.Context, in usecase.ModerateInput) (*usecase.ModerateOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc, enforcer *casbin.Enforcer) {
	end := &HTTPEndpoint{uc: uc}

	// Submissions
	r.POST("/api/v1/places", end.Submit)
	r.GET("/api/v1/places", end.List)

	// Moderation (need authenticated & authorization)
	r.PATCH("/api/v1/places/:id/status", end.Moderate, router.Authorization(enforcer))
}
