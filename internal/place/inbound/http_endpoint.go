package inbound

import (
	"errors"
	"io"
	"net/http"

	"github.com/samber/lo"

	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/goerror"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/router"
	"github.com/VenkataSiriPriya/Backend-acg/internal/place/usecase"
)

// maxMultipartMemory caps how much of the upload is buffered in memory; the
// rest spills to temp files.
const maxMultipartMemory int64 = 8 << 20

// HTTPEndpoint exposes HTTP handlers for place submissions and moderation.
type HTTPEndpoint struct {
	uc uc
}

// Submit accepts a new place submission with an optional image.
// @Summary Submit place
// @Description Accepts a multipart place submission. The image is stored in object storage and the place starts as pending.
// @Tags Place
// @Accept mpfd
// @Produce json
// @Param place_name formData string true "Place name"
// @Param place_type formData string true "Place type"
// @Param address formData string true "Address"
// @Param city formData string true "City"
// @Param features formData []string false "Accessibility features"
// @Param comments formData string false "Comments"
// @Param image formData file false "Place image (jpeg, png, webp)"
// @Param Idempotency-Key header string false "Idempotency key"
// @Success 201 {object} router.successResponse{data=SubmitResponse} "Place created"
// @Failure 400 {object} router.errorResponse "Invalid form"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/places [post]
func (h *HTTPEndpoint) Submit(r *router.Request) (any, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, goerror.NewInvalidFormat("Invalid multipart form")
	}

	var image io.Reader
	var imageContentType string
	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		image = file
		imageContentType = header.Header.Get("Content-Type")
	case errors.Is(err, http.ErrMissingFile):
		// image is optional
	default:
		return nil, goerror.NewInvalidFormat("Invalid form file image")
	}

	resp, err := h.uc.Submit(r.Context(), usecase.SubmitInput{
		Name:             r.FormValue("place_name"),
		Type:             r.FormValue("place_type"),
		Address:          r.FormValue("address"),
		City:             r.FormValue("city"),
		Features:         r.PostForm["features"],
		Comments:         r.FormValue("comments"),
		Image:            image,
		ImageContentType: imageContentType,
		IdempotencyKey:   r.Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return nil, err
	}

	return SubmitResponse{
		PlaceID: resp.PlaceID,
		Status:  resp.Status.String(),
	}, nil
}

// List returns every submitted place, newest first.
// @Summary List places
// @Description Returns all submissions with presigned image links.
// @Tags Place
// @Produce json
// @Success 200 {object} router.successResponse{data=ListResponse} "Places"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/places [get]
func (h *HTTPEndpoint) List(r *router.Request) (any, error) {
	resp, err := h.uc.List(r.Context())
	if err != nil {
		return nil, err
	}

	return ListResponse(lo.Map(resp.Places, func(p usecase.PlaceWithImage, _ int) PlaceResponse {
		return PlaceResponse{
			ID:        p.ID,
			Name:      p.Name,
			Type:      p.Type,
			Address:   p.Address,
			City:      p.City,
			Features:  p.Features,
			Comments:  p.Comments,
			ImageURL:  p.ImageURL,
			Status:    p.Status.String(),
			CreatedAt: p.CreatedAt,
		}
	})), nil
}

// Moderate applies an approve or reject decision.
// @Summary Moderate place
// @Description Sets the place status to approved or rejected. Requires the admin role.
// @Tags Place
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Place ID"
// @Param request body ModerateRequest true "Moderation decision"
// @Success 200 {object} router.successResponse{data=ModerateResponse} "Status updated"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Place not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/places/{id}/status [patch]
func (h *HTTPEndpoint) Moderate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req ModerateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Moderate(r.Context(), usecase.ModerateInput{
		ID:     id,
		Status: req.Status,
	})
	if err != nil {
		return nil, err
	}

	return ModerateResponse{
		PlaceID: resp.Place.ID,
		Status:  resp.Place.Status.String(),
	}, nil
}
