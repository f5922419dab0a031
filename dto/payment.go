package dto

// CheckoutRequest là DTO cho request thanh toán booking
type CheckoutRequest struct {
	BookingID      uint   `json:"bookingId" binding:"required"`
	CardholderName string `json:"cardholderName" binding:"required"`
	CardNumber     string `json:"cardNumber" binding:"required"`
	ExpiryDate     string `json:"expiryDate" binding:"required,cardexpiry"`
}

// PaymentInfoResponse là DTO cho response thanh toán, chỉ chứa last four
type PaymentInfoResponse struct {
	BookingID      uint   `json:"bookingId"`
	CardholderName string `json:"cardholderName"`
	CardLastFour   string `json:"cardLastFour"`
	ExpiryDate     string `json:"expiryDate"`
}
