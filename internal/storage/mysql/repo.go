package mysql

import (
	"context"
	"database/sql"

	"roomradar/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertRoom(ctx context.Context, rm domain.Room) error {
	_, err := r.db.ExecContext(ctx, upsertRoomSQL,
		rm.ID,
		rm.Title,
		rm.Price,
		rm.Location,
		valF64(rm.Lat),
		valF64(rm.Lon),
		rm.Facilities.Wifi,
		rm.Facilities.Bathroom,
		rm.Facilities.Gender,
		rm.Facilities.RoomType,
		rm.Facilities.Cooling,
		rm.Facilities.Food,
		rm.Available,
		rm.Top,
	)
	return err
}

func (r *Repo) UpsertHotspot(ctx context.Context, h domain.Hotspot) error {
	_, err := r.db.ExecContext(ctx, upsertHotspotSQL,
		h.ID, h.Name, h.Lat, h.Lon, valStr(h.City),
	)
	return err
}

func (r *Repo) SetTop(ctx context.Context, roomID string, top bool) error {
	res, err := r.db.ExecContext(ctx, setTopSQL, top, roomID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// RowsAffected is 0 both for a missing row and a no-op update, so
		// confirm the room actually exists before reporting not found.
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM rooms WHERE id = ?`, roomID).Scan(&one); err == sql.ErrNoRows {
			return domain.ErrNotFound
		}
	}
	return nil
}

func (r *Repo) ListRooms(ctx context.Context) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx, listRoomsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Room
	for rows.Next() {
		var rm domain.Room
		var lat, lon sql.NullFloat64
		if err := rows.Scan(
			&rm.ID, &rm.Title, &rm.Price, &rm.Location, &lat, &lon,
			&rm.Facilities.Wifi, &rm.Facilities.Bathroom,
			&rm.Facilities.Gender, &rm.Facilities.RoomType,
			&rm.Facilities.Cooling, &rm.Facilities.Food,
			&rm.Available, &rm.Top,
		); err != nil {
			return nil, err
		}
		if lat.Valid && lon.Valid {
			la, lo := lat.Float64, lon.Float64
			rm.Lat, rm.Lon = &la, &lo
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

func (r *Repo) ListHotspots(ctx context.Context) ([]domain.Hotspot, error) {
	rows, err := r.db.QueryContext(ctx, listHotspotsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Hotspot
	for rows.Next() {
		var h domain.Hotspot
		var city sql.NullString
		if err := rows.Scan(&h.ID, &h.Name, &h.Lat, &h.Lon, &city); err != nil {
			return nil, err
		}
		if city.Valid {
			c := city.String
			h.City = &c
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) ListTopRoomIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, listTopRoomIDsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
