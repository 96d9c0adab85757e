package utils

import (
	"github.com/mmcloughlin/geohash"
	"github.com/sagarsaathi/saathi/internal/pkg/models"
)

// DefaultGeohashPrecision is roughly a 150m cell
const DefaultGeohashPrecision uint = 7

// EncodeCoordinates converts a position to a geohash string
func EncodeCoordinates(c models.Coordinates, precision uint) string {
	if precision == 0 || precision > 12 {
		precision = DefaultGeohashPrecision
	}
	return geohash.EncodeWithPrecision(c.Lat, c.Lng, precision)
}

// DecodeGeohash returns the centre of the geohash cell
func DecodeGeohash(hash string) models.Coordinates {
	lat, lng := geohash.DecodeCenter(hash)
	return models.Coordinates{Lat: lat, Lng: lng}
}
