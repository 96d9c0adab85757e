package utils

import (
	"testing"

	"github.com/sagarsaathi/saathi/internal/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestEncodeCoordinates(t *testing.T) {
	bengaluru := models.Coordinates{Lat: 12.9716, Lng: 77.5946}

	hash := EncodeCoordinates(bengaluru, 7)
	assert.Len(t, hash, 7)
	assert.Equal(t, EncodeCoordinates(bengaluru, 4), hash[:4])

	assert.Len(t, EncodeCoordinates(bengaluru, 0), int(DefaultGeohashPrecision))
	assert.Len(t, EncodeCoordinates(bengaluru, 40), int(DefaultGeohashPrecision))
}

func TestDecodeGeohash_RoundTrip(t *testing.T) {
	in := models.Coordinates{Lat: 12.9, Lng: 77.6}

	out := DecodeGeohash(EncodeCoordinates(in, 9))
	assert.InDelta(t, in.Lat, out.Lat, 0.001)
	assert.InDelta(t, in.Lng, out.Lng, 0.001)
}
