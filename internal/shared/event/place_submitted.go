package event

const PlaceSubmittedDestination string = "place_submitted"
const PlaceSubmittedConsumerNotification string = "place_submitted_notification"

type PlaceSubmittedMessage struct {
	PlaceID   int64  `json:"place_id"`
	PlaceName string `json:"place_name"`
	PlaceType string `json:"place_type"`
	City      string `json:"city"`
}
