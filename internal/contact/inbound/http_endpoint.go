package inbound

import (
	"github.com/VenkataSiriPriya/Backend-acg/internal/contact/usecase"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/router"
)

// HTTPEndpoint exposes the contact form handler.
type HTTPEndpoint struct {
	uc uc
}

// Send relays a contact form message to the site inbox.
// @Summary Send contact message
// @Description Validates the form and relays it to the configured inbox over SMTP.
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body SendRequest true "Contact form payload"
// @Success 200 {object} router.successResponse{data=SendResponse} "Message sent"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 502 {object} router.errorResponse "Failed to send message"
// @Router /api/v1/contact [post]
func (h *HTTPEndpoint) Send(r *router.Request) (any, error) {
	var req SendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	err := h.uc.Send(r.Context(), usecase.SendInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		return nil, err
	}

	return SendResponse{}, nil
}
