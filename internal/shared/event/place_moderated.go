package event

const PlaceModeratedDestination string = "place_moderated"
const PlaceModeratedConsumerNotification string = "place_moderated_notification"

type PlaceModeratedMessage struct {
	PlaceID   int64  `json:"place_id"`
	PlaceName string `json:"place_name"`
	Status    string `json:"status"`
}
