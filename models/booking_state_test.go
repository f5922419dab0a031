package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayr/constants"
)

func TestPendingStateTransitions(t *testing.T) {
	booking := &Booking{Status: constants.BookingStatusPending}
	state := GetBookingState(booking.Status)

	require.NoError(t, state.Confirm(booking))
	assert.Equal(t, constants.BookingStatusConfirmed, booking.Status)

	booking = &Booking{Status: constants.BookingStatusPending}
	require.NoError(t, GetBookingState(booking.Status).Cancel(booking))
	assert.Equal(t, constants.BookingStatusCancelled, booking.Status)
}

func TestConfirmedStateTransitions(t *testing.T) {
	booking := &Booking{Status: constants.BookingStatusConfirmed}
	state := GetBookingState(booking.Status)

	assert.Error(t, state.Confirm(booking))

	require.NoError(t, state.Cancel(booking))
	assert.Equal(t, constants.BookingStatusCancelled, booking.Status)
}

func TestCancelledStateIsTerminal(t *testing.T) {
	booking := &Booking{Status: constants.BookingStatusCancelled}
	state := GetBookingState(booking.Status)

	assert.Error(t, state.Confirm(booking))
	assert.Error(t, state.Cancel(booking))
	assert.Equal(t, constants.BookingStatusCancelled, booking.Status)
}
