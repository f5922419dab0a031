package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRoomType() RoomType {
	return RoomType{
		Name:          "Deluxe",
		PricePerNight: 120,
		TotalRooms:    4,
		Amenities:     json.RawMessage(`["wifi","minibar"]`),
		Img:           json.RawMessage(`["https://img.example.com/1.jpg"]`),
	}
}

func TestRoomTypeValidate(t *testing.T) {
	roomType := validRoomType()
	assert.NoError(t, roomType.Validate())

	roomType = validRoomType()
	roomType.Name = ""
	assert.Error(t, roomType.Validate())

	roomType = validRoomType()
	roomType.PricePerNight = 0
	assert.Error(t, roomType.Validate())

	roomType = validRoomType()
	roomType.TotalRooms = -1
	assert.Error(t, roomType.Validate())
}

func TestRoomTypeValidateRejectsEmptySets(t *testing.T) {
	roomType := validRoomType()
	roomType.Amenities = json.RawMessage(`[]`)
	assert.Error(t, roomType.Validate())

	roomType = validRoomType()
	roomType.Img = json.RawMessage(`[]`)
	assert.Error(t, roomType.Validate())

	roomType = validRoomType()
	roomType.Amenities = nil
	assert.Error(t, roomType.Validate())

	roomType = validRoomType()
	roomType.Img = json.RawMessage(`"not-an-array"`)
	assert.Error(t, roomType.Validate())
}
