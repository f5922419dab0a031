package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"stayr/errors"
	"stayr/validator"
)

// Passenger là thông tin hành khách gửi sang AFS
type Passenger struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	PassportNumber string `json:"passportNumber"`
}

// FlightBookingResult là kết quả đặt vé từ AFS
type FlightBookingResult struct {
	BookingReference string  `json:"bookingReference"`
	TicketNumber     string  `json:"ticketNumber"`
	Price            float64 `json:"price"`
}

// FlightBroker là contract với hệ thống đặt vé máy bay bên ngoài.
// BookingService nhận interface này để test có thể fake broker.
type FlightBroker interface {
	BookFlights(ctx context.Context, flightIDs []string, passenger Passenger) (*FlightBookingResult, error)
	CancelFlight(ctx context.Context, lastName, bookingReference string) (json.RawMessage, error)
	SearchFlights(ctx context.Context, origin, destination, date string) (json.RawMessage, error)
}

type afsBookingResponse struct {
	BookingReference string   `json:"bookingReference"`
	TicketNumber     string   `json:"ticketNumber"`
	Price            *float64 `json:"price"`
	Flights          []struct {
		ID    string  `json:"id"`
		Price float64 `json:"price"`
	} `json:"flights"`
}

type afsErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// AFSClient gọi Advanced Flight System qua HTTP
type AFSClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewAFSClient tạo client AFS với timeout cứng; một broker treo phải
// trả về BROKER_UNAVAILABLE chứ không giữ request mãi mãi.
func NewAFSClient(baseURL, apiKey string, timeout time.Duration) *AFSClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &AFSClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BookFlights đặt vé cho danh sách chuyến bay qua AFS
func (a *AFSClient) BookFlights(ctx context.Context, flightIDs []string, passenger Passenger) (*FlightBookingResult, error) {
	if err := validator.ValidatePassport(passenger.PassportNumber); err != nil {
		return nil, err
	}
	if len(flightIDs) == 0 {
		return nil, errors.NewAppError(errors.ErrCodeRequiredField, "At least one flight id is required", nil)
	}

	payload := map[string]interface{}{
		"firstName":      passenger.FirstName,
		"lastName":       passenger.LastName,
		"email":          passenger.Email,
		"passportNumber": passenger.PassportNumber,
		"flightIds":      flightIDs,
	}

	body, err := a.doRequest(ctx, http.MethodPost, "/api/bookings", payload)
	if err != nil {
		return nil, err
	}

	var booking afsBookingResponse
	if err := json.Unmarshal(body, &booking); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeBrokerUnavailable, "Cannot parse flight broker response", err)
	}

	if booking.BookingReference == "" && booking.TicketNumber == "" {
		return nil, errors.NewAppError(errors.ErrCodeInvalidBrokerResponse, "Flight broker returned no booking reference", nil)
	}

	price := 0.0
	if booking.Price != nil {
		price = *booking.Price
	} else {
		// Fallback: cộng giá từng chặng, không phải giá chính thức
		for _, f := range booking.Flights {
			price += f.Price
		}
	}

	return &FlightBookingResult{
		BookingReference: booking.BookingReference,
		TicketNumber:     booking.TicketNumber,
		Price:            price,
	}, nil
}

// CancelFlight hủy một booking vé máy bay qua AFS
func (a *AFSClient) CancelFlight(ctx context.Context, lastName, bookingReference string) (json.RawMessage, error) {
	payload := map[string]interface{}{
		"lastName":         lastName,
		"bookingReference": bookingReference,
	}

	body, err := a.doRequest(ctx, http.MethodPost, "/api/bookings/cancel", payload)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// SearchFlights proxy tìm chuyến bay qua AFS
func (a *AFSClient) SearchFlights(ctx context.Context, origin, destination, date string) (json.RawMessage, error) {
	path := fmt.Sprintf("/api/flights?origin=%s&destination=%s&date=%s",
		url.QueryEscape(origin), url.QueryEscape(destination), url.QueryEscape(date))

	body, err := a.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

func (a *AFSClient) doRequest(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrCodeBrokerUnavailable, "Cannot encode flight broker request", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reqBody)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeBrokerUnavailable, "Cannot build flight broker request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.apiKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeBrokerUnavailable, "Flight broker unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeBrokerUnavailable, "Cannot read flight broker response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := fmt.Sprintf("Flight broker returned status %d", resp.StatusCode)
		var afsErr afsErrorResponse
		if err := json.Unmarshal(body, &afsErr); err == nil {
			if afsErr.Error != "" {
				message = afsErr.Error
			} else if afsErr.Message != "" {
				message = afsErr.Message
			}
		}
		return nil, errors.NewAppError(errors.ErrCodeBrokerRejected, message, nil)
	}

	return body, nil
}
