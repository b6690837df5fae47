package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{InvalidStatus("bad status"), http.StatusBadRequest},
		{Conflict("taken"), http.StatusBadRequest},
		{NotFound("missing"), http.StatusNotFound},
		{Auth("nope"), http.StatusUnauthorized},
		{Unavailable("db down", errors.New("dial tcp")), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusOf(tc.err), tc.err.Error())
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("submit booking: %w", Conflict("That time and date has already been booked"))
	assert.True(t, Is(err, KindConflict))
	assert.Equal(t, "That time and date has already been booked", Message(err))
}

func TestMessageHidesUnclassifiedErrors(t *testing.T) {
	assert.Equal(t, "Internal server error", Message(errors.New("mongo: secret detail")))
	assert.Equal(t, "failed to list bookings", Message(Internal("failed to list bookings", errors.New("x"))))
}
