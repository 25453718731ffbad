package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/clock"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/config"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/goerror"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/goroutine"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/idempotency"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/instrument"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/storage"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/validator"
	"github.com/VenkataSiriPriya/Backend-acg/internal/place/entity"
)

type fakeRepoDB struct {
	mu     sync.Mutex
	places map[int64]entity.Place
}

func newFakeRepoDB() *fakeRepoDB {
	return &fakeRepoDB{places: make(map[int64]entity.Place)}
}

func (f *fakeRepoDB) GetPlaceByID(_ context.Context, id int64) (*entity.Place, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.places[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &p, nil
}

func (f *fakeRepoDB) GetPlaceList(_ context.Context) ([]entity.Place, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]entity.Place, 0, len(f.places))
	for _, p := range f.places {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeRepoDB) CreatePlace(_ context.Context, place entity.NewPlace) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.places[place.ID] = entity.Place{
		ID:       place.ID,
		Name:     place.Name,
		Type:     place.Type,
		Address:  place.Address,
		City:     place.City,
		Features: place.Features,
		Comments: place.Comments,
		ImageKey: place.ImageKey,
		Status:   place.Status,
	}
	return nil
}

func (f *fakeRepoDB) UpdatePlaceStatus(_ context.Context, id int64, status entity.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.places[id]
	if !ok {
		return goerror.ErrNotFound
	}
	p.Status = status
	f.places[id] = p
	return nil
}

type fakeMessaging struct {
	mu        sync.Mutex
	submitted []PlaceSubmittedEvent
	moderated []PlaceModeratedEvent
}

func (f *fakeMessaging) PublishPlaceSubmitted(_ context.Context, msg PlaceSubmittedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.submitted = append(f.submitted, msg)
	return nil
}

func (f *fakeMessaging) PublishPlaceModerated(_ context.Context, msg PlaceModeratedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.moderated = append(f.moderated, msg)
	return nil
}

type storedObject struct {
	bucket      string
	contentType string
	data        []byte
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string]storedObject
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string]storedObject)}
}

func (f *fakeStorage) PutObject(_ context.Context, bucket, key string, r io.Reader, opts storage.PutOptions) (storage.ObjectInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return storage.ObjectInfo{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.objects[key] = storedObject{bucket: bucket, contentType: opts.ContentType, data: data}
	return storage.ObjectInfo{Bucket: bucket, Key: key, Size: int64(len(data))}, nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, _, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) PresignGet(_ context.Context, bucket, key string, _ time.Duration) (string, error) {
	return "https://cdn.test/" + bucket + "/" + key, nil
}

func (f *fakeStorage) Close() error { return nil }

type fakeIdempotency struct {
	mu   sync.Mutex
	done map[string]struct{}
}

func (f *fakeIdempotency) Acquire(context.Context, string, time.Duration) (idempotency.State, error) {
	return idempotency.StateNone, nil
}

func (f *fakeIdempotency) MarkCompleted(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdempotency) MarkFailed(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdempotency) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	f.mu.Lock()
	if f.done == nil {
		f.done = make(map[string]struct{})
	}
	if _, ok := f.done[key]; ok {
		f.mu.Unlock()
		return nil
	}
	f.mu.Unlock()

	if err := fn(ctx); err != nil {
		return err
	}

	f.mu.Lock()
	f.done[key] = struct{}{}
	f.mu.Unlock()
	return nil
}

type fakeConfig struct {
	config.Config
	strings map[string]string
	int64s  map[string]int64
	minutes map[string]time.Duration
}

func (f *fakeConfig) GetString(key string) string { return f.strings[key] }

func (f *fakeConfig) GetInt64(key string) int64 { return f.int64s[key] }

func (f *fakeConfig) GetMinute(key string) time.Duration { return f.minutes[key] }

type fakeNumberID struct {
	mu   sync.Mutex
	next int64
}

func (f *fakeNumberID) Generate() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.next++
	return f.next
}

type fakeStringID struct {
	mu   sync.Mutex
	next int
}

func (f *fakeStringID) Generate() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.next++
	return "img-" + strconv.Itoa(f.next)
}

type fixture struct {
	uc        *Usecase
	repoDB    *fakeRepoDB
	messaging *fakeMessaging
	storage   *fakeStorage
	idem      *fakeIdempotency
	cfg       *fakeConfig
	goroutine *goroutine.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	repoDB := newFakeRepoDB()
	messaging := &fakeMessaging{}
	store := newFakeStorage()
	idem := &fakeIdempotency{}
	gm := goroutine.NewManager(10)
	cfg := &fakeConfig{
		strings: map[string]string{"modules.place.image_bucket": "places"},
		int64s:  map[string]int64{"modules.place.image_max_size_bytes": 1 << 20},
		minutes: map[string]time.Duration{"modules.place.image_url_ttl_minutes": 15 * time.Minute},
	}

	uc := New(Dependency{
		RepoDB:        repoDB,
		RepoMessaging: messaging,
		Validator:     v10,
		Config:        cfg,
		Storage:       store,
		Idempotency:   idem,
		UID:           &fakeNumberID{},
		UUID:          &fakeStringID{},
		Clock:         clock.New(),
		Instrument:    instrument.NewNoop(),
		Goroutine:     gm,
	})

	return &fixture{
		uc:        uc,
		repoDB:    repoDB,
		messaging: messaging,
		storage:   store,
		idem:      idem,
		cfg:       cfg,
		goroutine: gm,
	}
}

func assertCode(t *testing.T, err error, want goerror.Code) {
	t.Helper()

	var ge *goerror.Error
	if !errors.As(err, &ge) {
		t.Fatalf("expected *goerror.Error, got %T: %v", err, err)
	}
	if ge.Code() != want {
		t.Fatalf("error code = %s, want %s", ge.Code(), want)
	}
}

func TestSubmit(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Submit(context.Background(), SubmitInput{
		Name:             "Central Library",
		Type:             "library",
		Address:          "1 Main St",
		City:             "Springfield",
		Features:         []string{"ramp", "elevator"},
		Comments:         "Wide entrance",
		Image:            bytes.NewReader([]byte("fake-png-bytes")),
		ImageContentType: "image/png",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if out.Status != entity.StatusPending {
		t.Fatalf("status = %q, want %q", out.Status, entity.StatusPending)
	}

	place, err := f.repoDB.GetPlaceByID(context.Background(), out.PlaceID)
	if err != nil {
		t.Fatalf("place not persisted: %v", err)
	}
	if place.ImageKey == "" {
		t.Fatal("expected an image key on the stored place")
	}

	obj, ok := f.storage.objects[place.ImageKey]
	if !ok {
		t.Fatalf("image %q not uploaded", place.ImageKey)
	}
	if obj.contentType != "image/png" {
		t.Fatalf("content type = %q, want image/png", obj.contentType)
	}

	if err := f.goroutine.Wait(); err != nil {
		t.Fatalf("background tasks failed: %v", err)
	}
	if len(f.messaging.submitted) != 1 {
		t.Fatalf("submitted events = %d, want 1", len(f.messaging.submitted))
	}
	if f.messaging.submitted[0].PlaceName != "Central Library" {
		t.Fatalf("event name = %q", f.messaging.submitted[0].PlaceName)
	}
}

func TestSubmitWithoutImage(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Submit(context.Background(), SubmitInput{
		Name:    "Open Park",
		Type:    "park",
		Address: "2 Side St",
		City:    "Springfield",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	place, err := f.repoDB.GetPlaceByID(context.Background(), out.PlaceID)
	if err != nil {
		t.Fatalf("place not persisted: %v", err)
	}
	if place.ImageKey != "" {
		t.Fatalf("image key = %q, want empty", place.ImageKey)
	}
}

func TestSubmitUnsupportedImageType(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Submit(context.Background(), SubmitInput{
		Name:             "Central Library",
		Type:             "library",
		Address:          "1 Main St",
		City:             "Springfield",
		Image:            bytes.NewReader([]byte("%PDF-1.4")),
		ImageContentType: "application/pdf",
	})

	assertCode(t, err, goerror.CodeInvalidInput)
}

func TestSubmitImageTooLarge(t *testing.T) {
	f := newFixture(t)
	f.cfg.int64s["modules.place.image_max_size_bytes"] = 4

	_, err := f.uc.Submit(context.Background(), SubmitInput{
		Name:             "Central Library",
		Type:             "library",
		Address:          "1 Main St",
		City:             "Springfield",
		Image:            bytes.NewReader([]byte("way more than four bytes")),
		ImageContentType: "image/png",
	})

	assertCode(t, err, goerror.CodeInvalidInput)
}

func TestSubmitMissingRequiredFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Submit(context.Background(), SubmitInput{Name: "x"})

	assertCode(t, err, goerror.CodeInvalidInput)
}

func TestSubmitIdempotencyKeyRunsOnce(t *testing.T) {
	f := newFixture(t)

	in := SubmitInput{
		Name:           "Central Library",
		Type:           "library",
		Address:        "1 Main St",
		City:           "Springfield",
		IdempotencyKey: "req-1",
	}

	if _, err := f.uc.Submit(context.Background(), in); err != nil {
		t.Fatalf("first Submit() error = %v", err)
	}
	if _, err := f.uc.Submit(context.Background(), in); err != nil {
		t.Fatalf("second Submit() error = %v", err)
	}

	places, err := f.repoDB.GetPlaceList(context.Background())
	if err != nil {
		t.Fatalf("GetPlaceList() error = %v", err)
	}
	if len(places) != 1 {
		t.Fatalf("places = %d, want 1", len(places))
	}
}

func TestList(t *testing.T) {
	f := newFixture(t)
	f.repoDB.places[1] = entity.Place{ID: 1, Name: "Central Library", ImageKey: "places/img-1.png", Status: entity.StatusApproved}
	f.repoDB.places[2] = entity.Place{ID: 2, Name: "Open Park", Status: entity.StatusPending}

	out, err := f.uc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(out.Places) != 2 {
		t.Fatalf("places = %d, want 2", len(out.Places))
	}

	for _, p := range out.Places {
		if p.ImageKey != "" && p.ImageURL == "" {
			t.Fatalf("place %d has an image key but no presigned url", p.ID)
		}
		if p.ImageKey == "" && p.ImageURL != "" {
			t.Fatalf("place %d has a presigned url without an image", p.ID)
		}
	}
}

func TestModerate(t *testing.T) {
	f := newFixture(t)
	f.repoDB.places[1] = entity.Place{ID: 1, Name: "Central Library", Status: entity.StatusPending}

	out, err := f.uc.Moderate(context.Background(), ModerateInput{ID: 1, Status: "approved"})
	if err != nil {
		t.Fatalf("Moderate() error = %v", err)
	}
	if out.Place.Status != entity.StatusApproved {
		t.Fatalf("status = %q, want %q", out.Place.Status, entity.StatusApproved)
	}

	place, err := f.repoDB.GetPlaceByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetPlaceByID() error = %v", err)
	}
	if place.Status != entity.StatusApproved {
		t.Fatalf("stored status = %q, want %q", place.Status, entity.StatusApproved)
	}

	if err := f.goroutine.Wait(); err != nil {
		t.Fatalf("background tasks failed: %v", err)
	}
	if len(f.messaging.moderated) != 1 {
		t.Fatalf("moderated events = %d, want 1", len(f.messaging.moderated))
	}
	if f.messaging.moderated[0].Status != entity.StatusApproved {
		t.Fatalf("event status = %q", f.messaging.moderated[0].Status)
	}
}

func TestModerateUnknownPlace(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Moderate(context.Background(), ModerateInput{ID: 42, Status: "rejected"})

	assertCode(t, err, goerror.CodeNotFound)
}

func TestModerateInvalidStatus(t *testing.T) {
	f := newFixture(t)
	f.repoDB.places[1] = entity.Place{ID: 1, Name: "Central Library", Status: entity.StatusPending}

	_, err := f.uc.Moderate(context.Background(), ModerateInput{ID: 1, Status: "maybe"})

	assertCode(t, err, goerror.CodeInvalidInput)
}
