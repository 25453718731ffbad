package db

import (
	"context"

	"github.com/VenkataSiriPriya/Backend-acg/internal/place/entity"
)

func (s *DB) GetPlaceByID(ctx context.Context, id int64) (_ *entity.Place, err error) {
	ctx, span := s.startSpan(ctx, "GetPlaceByID")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT id, place_name, place_type, address, city, features, comments, image_key, status, created_at
		FROM places
		WHERE id = $1
	`

	var place entity.Place
	err = s.conn.QueryRow(ctx, query, id).Scan(
		&place.ID,
		&place.Name,
		&place.Type,
		&place.Address,
		&place.City,
		&place.Features,
		&place.Comments,
		&place.ImageKey,
		&place.Status,
		&place.CreatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &place, nil
}

func (s *DB) GetPlaceList(ctx context.Context) (_ []entity.Place, err error) {
	ctx, span := s.startSpan(ctx, "GetPlaceList")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT id, place_name, place_type, address, city, features, comments, image_key, status, created_at
		FROM places
		ORDER BY created_at DESC
	`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var places []entity.Place
	for rows.Next() {
		var place entity.Place
		if err = rows.Scan(
			&place.ID,
			&place.Name,
			&place.Type,
			&place.Address,
			&place.City,
			&place.Features,
			&place.Comments,
			&place.ImageKey,
			&place.Status,
			&place.CreatedAt,
		); err != nil {
			return nil, s.mapError(err)
		}
		places = append(places, place)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return places, nil
}

func (s *DB) CreatePlace(ctx context.Context, place entity.NewPlace) (err error) {
	ctx, span := s.startSpan(ctx, "CreatePlace")
	defer func() { s.endSpan(span, err) }()

	query := `
		INSERT INTO places (id, place_name, place_type, address, city, features, comments, image_key, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = s.conn.Exec(ctx, query,
		place.ID,
		place.Name,
		place.Type,
		place.Address,
		place.City,
		place.Features,
		place.Comments,
		place.ImageKey,
		place.Status,
	)
	return s.mapError(err)
}

func (s *DB) UpdatePlaceStatus(ctx context.Context, id int64, status entity.Status) (err error) {
	ctx, span := s.startSpan(ctx, "UpdatePlaceStatus")
	defer func() { s.endSpan(span, err) }()

	query := `
		UPDATE places
		SET status = $2, updated_at = now()
		WHERE id = $1
	`

	_, err = s.conn.Exec(ctx, query, id, status)
	return s.mapError(err)
}
