package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "stayr/errors"
)

var testPassenger = Passenger{
	FirstName:      "Test",
	LastName:       "Nguyen",
	Email:          "test@example.com",
	PassportNumber: "C12345678",
}

func TestBookFlightsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/bookings", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "C12345678", payload["passportNumber"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"bookingReference":"AFS-1","ticketNumber":"TK-1","price":420.5}`))
	}))
	defer server.Close()

	client := NewAFSClient(server.URL, "secret", time.Second)

	result, err := client.BookFlights(context.Background(), []string{"VN-100"}, testPassenger)
	require.NoError(t, err)

	assert.Equal(t, "AFS-1", result.BookingReference)
	assert.Equal(t, "TK-1", result.TicketNumber)
	assert.Equal(t, 420.5, result.Price)
}

func TestBookFlightsPriceFallbackSumsSegments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"bookingReference":"AFS-2","flights":[{"id":"VN-100","price":100},{"id":"VN-101","price":150}]}`))
	}))
	defer server.Close()

	client := NewAFSClient(server.URL, "secret", time.Second)

	result, err := client.BookFlights(context.Background(), []string{"VN-100", "VN-101"}, testPassenger)
	require.NoError(t, err)
	assert.Equal(t, 250.0, result.Price)
}

func TestBookFlightsRejectedSurfacesUpstreamMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Flight VN-100 is fully booked"}`))
	}))
	defer server.Close()

	client := NewAFSClient(server.URL, "secret", time.Second)

	_, err := client.BookFlights(context.Background(), []string{"VN-100"}, testPassenger)
	require.True(t, apperrors.HasCode(err, apperrors.ErrCodeBrokerRejected))
	assert.Equal(t, "Flight VN-100 is fully booked", apperrors.GetAppError(err).Message)
}

func TestBookFlightsMissingReferencesIsInvalid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"flights":[]}`))
	}))
	defer server.Close()

	client := NewAFSClient(server.URL, "secret", time.Second)

	_, err := client.BookFlights(context.Background(), []string{"VN-100"}, testPassenger)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidBrokerResponse))
}

func TestBookFlightsShortPassportNeverCallsBroker(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewAFSClient(server.URL, "secret", time.Second)

	passenger := testPassenger
	passenger.PassportNumber = "short"
	_, err := client.BookFlights(context.Background(), []string{"VN-100"}, passenger)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidPassport))
	assert.False(t, called)
}

func TestBookFlightsRequiresFlightIDs(t *testing.T) {
	client := NewAFSClient("http://127.0.0.1:0", "secret", time.Second)

	_, err := client.BookFlights(context.Background(), nil, testPassenger)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeRequiredField))
}

func TestBookFlightsUnreachableBroker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewAFSClient(server.URL, "secret", time.Second)

	_, err := client.BookFlights(context.Background(), []string{"VN-100"}, testPassenger)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeBrokerUnavailable))
}

func TestCancelFlightPassesThroughResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/bookings/cancel", r.URL.Path)
		w.Write([]byte(`{"status":"CANCELLED","refund":120}`))
	}))
	defer server.Close()

	client := NewAFSClient(server.URL, "secret", time.Second)

	result, err := client.CancelFlight(context.Background(), "Nguyen", "AFS-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"CANCELLED","refund":120}`, string(result))
}

func TestSearchFlightsBuildsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/flights", r.URL.Path)
		assert.Equal(t, "SGN", r.URL.Query().Get("origin"))
		assert.Equal(t, "HAN", r.URL.Query().Get("destination"))
		assert.Equal(t, "2026-09-01", r.URL.Query().Get("date"))
		w.Write([]byte(`{"results":[{"id":"VN-100"}]}`))
	}))
	defer server.Close()

	client := NewAFSClient(server.URL, "secret", time.Second)

	result, err := client.SearchFlights(context.Background(), "SGN", "HAN", "2026-09-01")
	require.NoError(t, err)
	assert.JSONEq(t, `{"results":[{"id":"VN-100"}]}`, string(result))
}
