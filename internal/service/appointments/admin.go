package appointments

import (
	"context"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
	"github.com/TruongDHiep/Booking-Service-System/internal/service/appointments/models"
)

// AdminService административные операции с записями.
// Выделен отдельно: сброс в черновик доступен из любого состояния, включая завершённые
type AdminService struct {
	t *transitioner
}

// NewAdminService создает административный сервис
func NewAdminService(
	repo AppointmentRepository,
	sink EventSink,
	txManager TransactionManager,
	recorder Recorder,
	logger Logger,
) *AdminService {
	return &AdminService{t: newTransitioner(repo, sink, txManager, recorder, logger, nil)}
}

// ResetToDraft возвращает запись в черновик
// Флаги отправленных уведомлений не сбрасываются
func (s *AdminService) ResetToDraft(ctx context.Context, id int64) (*models.TransitionResponse, error) {
	return s.t.apply(ctx, id, domain.TransitionResetToDraft)
}
