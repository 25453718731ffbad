package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/VenkataSiriPriya/Backend-acg/internal/notification/usecase"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/instrument"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/messaging"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/uid"
	"github.com/VenkataSiriPriya/Backend-acg/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) UserRegisteredNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "UserRegisteredNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: user registered notification", "msg_body", string(body))

	var payload event.UserRegisteredMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of user registered notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeUserRegistered(ctx, usecase.ConsumeUserRegisteredInput{
		UserID:   payload.UserID,
		Email:    payload.Email,
		Username: payload.Username,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume user registered", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) PlaceSubmittedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "PlaceSubmittedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: place submitted notification", "msg_body", string(body))

	var payload event.PlaceSubmittedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of place submitted notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumePlaceSubmitted(ctx, usecase.ConsumePlaceSubmittedInput{
		PlaceID:   payload.PlaceID,
		PlaceName: payload.PlaceName,
		PlaceType: payload.PlaceType,
		City:      payload.City,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume place submitted", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) PlaceModeratedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "PlaceModeratedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: place moderated notification", "msg_body", string(body))

	var payload event.PlaceModeratedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of place moderated notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumePlaceModerated(ctx, usecase.ConsumePlaceModeratedInput{
		PlaceID:   payload.PlaceID,
		PlaceName: payload.PlaceName,
		Status:    payload.Status,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume place moderated", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
