package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/goerror"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/storage"
	"github.com/VenkataSiriPriya/Backend-acg/internal/place/entity"
)

//nolint:gochecknoglobals // global for fast reuse
var imageContentTypeExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

var errImageTooLarge = errors.New("image exceeds max size")

type SubmitInput struct {
	Name     string   `validate:"required,min=2,max=150"`
	Type     string   `validate:"required,max=100"`
	Address  string   `validate:"required,max=255"`
	City     string   `validate:"required,max=100"`
	Features []string `validate:"max=30,dive,max=100"`
	Comments string   `validate:"max=2000"`

	Image            io.Reader
	ImageContentType string

	IdempotencyKey string
}

type SubmitOutput struct {
	PlaceID int64
	Status  entity.Status
}

// Submit stores the image, persists the place as pending, and announces the
// submission to the moderation inbox.
func (s *Usecase) Submit(ctx context.Context, in SubmitInput) (*SubmitOutput, error) {
	ctx, span := s.startSpan(ctx, "Submit")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	out := &SubmitOutput{}
	run := func(ctx context.Context) error {
		place, err := s.submit(ctx, in)
		if err != nil {
			return err
		}
		out.PlaceID = place.ID
		out.Status = place.Status
		return nil
	}

	if key := strings.TrimSpace(in.IdempotencyKey); key != "" {
		if err := s.idempotency.Exec(ctx, "place:submit:"+key, run); err != nil {
			return nil, err
		}
		return out, nil
	}

	if err := run(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Usecase) submit(ctx context.Context, in SubmitInput) (*entity.NewPlace, error) {
	imageKey, err := s.uploadImage(ctx, in)
	if err != nil {
		return nil, err
	}

	place := entity.NewPlace{
		ID:       s.uid.Generate(),
		Name:     strings.TrimSpace(in.Name),
		Type:     strings.TrimSpace(in.Type),
		Address:  strings.TrimSpace(in.Address),
		City:     strings.TrimSpace(in.City),
		Features: in.Features,
		Comments: strings.TrimSpace(in.Comments),
		ImageKey: imageKey,
		Status:   entity.StatusPending,
	}

	if err := s.repoDB.CreatePlace(ctx, place); err != nil {
		slog.ErrorContext(ctx, "failed to repo create place", "name", place.Name, "error", err)
		return nil, goerror.NewServer(err)
	}

	// Detached so the publish survives the request context.
	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishPlaceSubmitted(ctx, PlaceSubmittedEvent{
			PlaceID:   place.ID,
			PlaceName: place.Name,
			PlaceType: place.Type,
			City:      place.City,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to publish place submitted", "place_id", place.ID, "error", err)
		}
		return nil
	})

	return &place, nil
}

func (s *Usecase) uploadImage(ctx context.Context, in SubmitInput) (string, error) {
	if in.Image == nil {
		return "", nil
	}

	contentType := strings.ToLower(strings.TrimSpace(in.ImageContentType))
	ext, ok := imageContentTypeExt[contentType]
	if !ok {
		return "", goerror.NewInvalidInput(nil, "image", "unsupported image content type")
	}

	bucket := strings.TrimSpace(s.cfg.GetString("modules.place.image_bucket"))
	key := fmt.Sprintf("places/%s%s", s.uuid.Generate(), ext)

	maxSize := s.cfg.GetInt64("modules.place.image_max_size_bytes")
	if maxSize <= 0 {
		maxSize = 5 << 20
	}

	reader := &maxBytesReader{r: in.Image, max: maxSize}
	if _, err := s.storage.PutObject(ctx, bucket, key, reader, storage.PutOptions{
		Size:        -1,
		ContentType: contentType,
	}); err != nil {
		if errors.Is(err, errImageTooLarge) {
			return "", goerror.NewInvalidInput(errImageTooLarge)
		}
		slog.ErrorContext(ctx, "failed to upload place image", "key", key, "error", err)
		return "", goerror.NewServer(err)
	}

	return key, nil
}

type maxBytesReader struct {
	r     io.Reader
	max   int64
	read  int64
	buf   [1]byte
	ended bool
}

func (m *maxBytesReader) Read(p []byte) (int, error) {
	if m.read >= m.max {
		if m.ended {
			return 0, errImageTooLarge
		}

		n, err := m.r.Read(m.buf[:])
		if n > 0 {
			m.ended = true
			return 0, errImageTooLarge
		}
		if err == nil {
			m.ended = true
			return 0, errImageTooLarge
		}
		return 0, err
	}

	if int64(len(p)) > m.max-m.read {
		p = p[:m.max-m.read]
	}

	n, err := m.r.Read(p)
	m.read += int64(n)
	return n, err
}
