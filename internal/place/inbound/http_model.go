package inbound

import (
	"net/http"
	"time"
)

type SubmitResponse struct {
	PlaceID int64  `json:"place_id,string"`
	Status  string `json:"status"`
}

func (SubmitResponse) Message() string { return "Place submitted successfully" }

func (SubmitResponse) StatusCode() int { return http.StatusCreated }

type PlaceResponse struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"place_name"`
	Type      string    `json:"place_type"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Features  []string  `json:"features"`
	Comments  string    `json:"comments,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type ListResponse []PlaceResponse

func (ListResponse) Message() string { return "Places retrieved successfully" }

type ModerateRequest struct {
	Status string `json:"status"`
}

type ModerateResponse struct {
	PlaceID int64  `json:"place_id,string"`
	Status  string `json:"status"`
}

func (ModerateResponse) Message() string { return "Place status updated successfully" }
