package mq

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel/codes"

	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/instrument"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/messaging"
	"github.com/VenkataSiriPriya/Backend-acg/internal/place/usecase"
	"github.com/VenkataSiriPriya/Backend-acg/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishPlaceSubmitted(ctx context.Context, msg usecase.PlaceSubmittedEvent) error {
	ctx, span := m.ins.Tracer("place.outbound.mq").Start(ctx, "PublishPlaceSubmitted")
	defer span.End()

	body, err := json.Marshal(event.PlaceSubmittedMessage{
		PlaceID:   msg.PlaceID,
		PlaceName: msg.PlaceName,
		PlaceType: msg.PlaceType,
		City:      msg.City,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.PlaceSubmittedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (m *Messaging) PublishPlaceModerated(ctx context.Context, msg usecase.PlaceModeratedEvent) error {
	ctx, span := m.ins.Tracer("place.outbound.mq").Start(ctx, "PublishPlaceModerated")
	defer span.End()

	body, err := json.Marshal(event.PlaceModeratedMessage{
		PlaceID:   msg.PlaceID,
		PlaceName: msg.PlaceName,
		Status:    msg.Status.String(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.PlaceModeratedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
