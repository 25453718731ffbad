package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/goerror"
	"github.com/VenkataSiriPriya/Backend-acg/internal/place/entity"
)

type PlaceWithImage struct {
	entity.Place
	ImageURL string
}

type ListOutput struct {
	Places []PlaceWithImage
}

// List returns every submission, newest first, with presigned image links.
func (s *Usecase) List(ctx context.Context) (*ListOutput, error) {
	ctx, span := s.startSpan(ctx, "List")
	defer span.End()

	places, err := s.repoDB.GetPlaceList(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get place list", "error", err)
		return nil, goerror.NewServer(err)
	}

	bucket := s.cfg.GetString("modules.place.image_bucket")
	expiry := s.cfg.GetMinute("modules.place.image_url_ttl_minutes")
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}

	out := make([]PlaceWithImage, 0, len(places))
	for _, place := range places {
		item := PlaceWithImage{Place: place}
		if place.ImageKey != "" {
			url, err := s.storage.PresignGet(ctx, bucket, place.ImageKey, expiry)
			if err != nil {
				// A broken link should not hide the listing.
				slog.WarnContext(ctx, "failed to presign place image", "place_id", place.ID, "error", err)
			} else {
				item.ImageURL = url
			}
		}
		out = append(out, item)
	}

	return &ListOutput{Places: out}, nil
}
