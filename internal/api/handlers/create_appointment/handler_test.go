package create_appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/TruongDHiep/Booking-Service-System/internal/api/handlers"
	"github.com/TruongDHiep/Booking-Service-System/internal/service/availability"
	createAppointment "github.com/TruongDHiep/Booking-Service-System/internal/usecase/create_appointment"
	"github.com/TruongDHiep/Booking-Service-System/pkg/logger"
)

type useCaseMock struct {
	mock.Mock
}

func (m *useCaseMock) Execute(ctx context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*createAppointment.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

const body = `{"serviceId":3,"customerName":"Jane","customerEmail":"jane@example.com","customerPhone":"+84 901234567","bookingDate":"2030-06-01T10:00","timezone":"Asia/Ho_Chi_Minh"}`

func serve(uc CreateAppointmentUseCase, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &useCaseMock{}
	start := time.Date(2030, 6, 1, 3, 0, 0, 0, time.UTC)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createAppointment.Request) bool {
		return r.ServiceID == 3 && r.Timezone == "Asia/Ho_Chi_Minh" && r.BookingDate == "2030-06-01T10:00"
	})).Return(&createAppointment.Response{
		ID: 1, Reference: "APT/00001", ServiceID: 3, ServiceName: "Massage",
		Start: start, End: start.Add(time.Hour), State: "draft", CreatedAt: start,
	}, nil)

	rec := serve(uc, body)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "APT/00001", resp.Reference)
	assert.Equal(t, "2030-06-01T03:00:00Z", resp.Start)
	uc.AssertExpectations(t)
}

func TestHandle_ConflictCarriesExplanation(t *testing.T) {
	uc := &useCaseMock{}
	conflict := &availability.ConflictError{Explanation: "Time slot conflicts with existing booking APT/00007"}
	uc.On("Execute", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: %w", createAppointment.ErrSlotNotAvailable, conflict))

	rec := serve(uc, body)

	require.Equal(t, http.StatusConflict, rec.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, msgSlotNotAvailable, resp.Message)
	assert.Contains(t, resp.Details, "APT/00007")
}

func TestHandle_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid input", fmt.Errorf("%w: customer name is required", createAppointment.ErrInvalidInput), http.StatusBadRequest},
		{"invalid date", createAppointment.ErrInvalidDate, http.StatusBadRequest},
		{"past", createAppointment.ErrStartInPast, http.StatusBadRequest},
		{"service", createAppointment.ErrServiceNotFound, http.StatusNotFound},
		{"serialization", createAppointment.ErrSlotNotAvailable, http.StatusConflict},
		{"internal", createAppointment.ErrInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &useCaseMock{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tc.err)
			assert.Equal(t, tc.status, serve(uc, body).Code)
		})
	}
}

func TestHandle_RejectsUnknownFields(t *testing.T) {
	uc := &useCaseMock{}
	rec := serve(uc, `{"serviceId":3,"state":"done"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
