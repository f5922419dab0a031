package dto

// RoomTypeAvailability là một dòng của báo cáo tình trạng phòng
type RoomTypeAvailability struct {
	RoomTypeID     uint    `json:"roomTypeId"`
	RoomType       string  `json:"roomType"`
	PricePerNight  float64 `json:"pricePerNight"`
	TotalRooms     int     `json:"totalRooms"`
	BookedRooms    int     `json:"bookedRooms"`
	AvailableRooms int     `json:"availableRooms"`
}

// UpdateCapacityRequest là DTO cho request cập nhật tổng số phòng
type UpdateCapacityRequest struct {
	RoomTypeID    uint `json:"roomTypeId" binding:"required"`
	NewTotalRooms int  `json:"newTotalRooms" binding:"required,gt=0"`
}
