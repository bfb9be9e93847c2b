package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/staynest/rental-service/pkg/util/errorutil"
)

func TestUpdatePropertyRequestPresence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		wantNulls []string
		check     func(t *testing.T, r UpdatePropertyRequest)
	}{
		{
			name: "absent fields stay unset",
			body: `{"title":"Loft"}`,
			check: func(t *testing.T, r UpdatePropertyRequest) {
				p, err := r.ToPatch()
				require.NoError(t, err)
				require.NotNil(t, p.Title)
				assert.Equal(t, "Loft", *p.Title)
				assert.Nil(t, p.Rating)
				assert.Nil(t, p.AmenityIDs)
			},
		},
		{
			name: "zero values are present",
			body: `{"rating":0,"description":"","amenityIds":[]}`,
			check: func(t *testing.T, r UpdatePropertyRequest) {
				p, err := r.ToPatch()
				require.NoError(t, err)
				require.NotNil(t, p.Rating)
				assert.Equal(t, 0, *p.Rating)
				require.NotNil(t, p.Description)
				assert.Equal(t, "", *p.Description)
				require.NotNil(t, p.AmenityIDs)
				assert.Empty(t, *p.AmenityIDs)
				assert.False(t, p.IsEmpty())
			},
		},
		{
			name:      "explicit nulls are rejected",
			body:      `{"rating":null,"title":"Loft","hostId":null}`,
			wantNulls: []string{"hostId", "rating"},
		},
		{
			name: "empty object is an empty patch",
			body: `{}`,
			check: func(t *testing.T, r UpdatePropertyRequest) {
				p, err := r.ToPatch()
				require.NoError(t, err)
				assert.True(t, p.IsEmpty())
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var req UpdatePropertyRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			if tt.wantNulls != nil {
				_, err := req.ToPatch()
				de := apperrors.ToDomainError(err)
				require.NotNil(t, de)
				assert.Equal(t, apperrors.CodeValidation, de.Code)
				assert.Equal(t, tt.wantNulls, de.Details["null"])
				return
			}
			tt.check(t, req)
		})
	}
}

func TestUpdateBookingRequestDates(t *testing.T) {
	t.Parallel()

	var req UpdateBookingRequest
	require.NoError(t, json.Unmarshal([]byte(`{"checkoutDate":"2025-07-04T00:00:00Z","bookingStatus":"confirmed"}`), &req))
	p, err := req.ToPatch()
	require.NoError(t, err)
	assert.Nil(t, p.CheckinDate)
	require.NotNil(t, p.CheckoutDate)
	assert.Equal(t, 2025, p.CheckoutDate.Year())
	require.NotNil(t, p.BookingStatus)
	assert.EqualValues(t, "confirmed", *p.BookingStatus)
}
