package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
	getAvailableSlots "github.com/TruongDHiep/Booking-Service-System/internal/usecase/get_available_slots"
	"github.com/TruongDHiep/Booking-Service-System/pkg/logger"
)

type fakeUseCase struct {
	got *getAvailableSlots.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	loc, _ := time.LoadLocation("Asia/Ho_Chi_Minh")
	start := time.Date(2030, 6, 1, 3, 0, 0, 0, time.UTC)
	return &getAvailableSlots.Response{
		Date: req.Date, ServiceID: req.ServiceID, ServiceName: "Massage", DurationHours: 1, Timezone: loc.String(),
		Slots: []domain.AvailabilitySlot{
			{Start: start, End: start.Add(time.Hour), Local: start.In(loc), IsFull: true, CurrentBookings: 1, MaxCapacity: 1},
		},
	}, nil
}

func serve(uc GetAvailableSlotsUseCase, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/services/{serviceId}/available-slots", NewHandler(uc, logger.NewNop()).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandle_SlotFields(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/services/3/available-slots?date=2030-06-01&timezone=Asia/Ho_Chi_Minh")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Asia/Ho_Chi_Minh", uc.got.Timezone)

	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Slots, 1)
	slot := resp.Slots[0]
	assert.Equal(t, "10:00", slot.Time)
	assert.Equal(t, "10:00 AM", slot.Display)
	assert.Equal(t, "2030-06-01T03:00:00Z", slot.Datetime)
	assert.False(t, slot.Available)
	assert.True(t, slot.IsFull)
	assert.Equal(t, "Massage", resp.ServiceName)
	assert.Equal(t, float64(1), resp.Duration)
}

func TestHandle_BadRequests(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeUseCase{}, "/services/x/available-slots?date=2030-06-01").Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeUseCase{}, "/services/3/available-slots").Code)
	assert.Equal(t, http.StatusNotFound,
		serve(&fakeUseCase{err: getAvailableSlots.ErrServiceNotFound}, "/services/3/available-slots?date=2030-06-01").Code)
	assert.Equal(t, http.StatusBadRequest,
		serve(&fakeUseCase{err: getAvailableSlots.ErrInvalidTimezone}, "/services/3/available-slots?date=2030-06-01").Code)
}
