package mysql

const upsertRoomSQL = `
INSERT INTO rooms
  (id, title, price, location, lat, lon, wifi, bathroom, gender, room_type, cooling, food, available, top_room)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  title      = VALUES(title),
  price      = VALUES(price),
  location   = VALUES(location),
  lat        = VALUES(lat),
  lon        = VALUES(lon),
  wifi       = VALUES(wifi),
  bathroom   = VALUES(bathroom),
  gender     = VALUES(gender),
  room_type  = VALUES(room_type),
  cooling    = VALUES(cooling),
  food       = VALUES(food),
  available  = VALUES(available),
  top_room   = VALUES(top_room),
  updated_at = CURRENT_TIMESTAMP
`

const upsertHotspotSQL = `
INSERT INTO hotspots
  (id, name, lat, lon, city)
VALUES
  (?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name = VALUES(name),
  lat  = VALUES(lat),
  lon  = VALUES(lon),
  city = VALUES(city)
`

const setTopSQL = `UPDATE rooms SET top_room = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const listRoomsSQL = `
SELECT
  id, title, price, location, lat, lon,
  wifi, bathroom, gender, room_type, cooling, food,
  available, top_room
FROM rooms
ORDER BY id
`

const listHotspotsSQL = `
SELECT id, name, lat, lon, city
FROM hotspots
ORDER BY name
`

const listTopRoomIDsSQL = `SELECT id FROM rooms WHERE top_room = 1 ORDER BY id`
