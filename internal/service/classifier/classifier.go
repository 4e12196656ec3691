package classifier

import (
	"fmt"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// Classify определяет, является ли услуга разовым визитом или курсом лечения.
// Признак курса берется из записи каталога, а не из количества сессий:
// курс может номинально состоять из одной сессии.
// Количество сессий нормализуется к max(1, указанное); у разового визита всегда 1.
// Курс длиннее domain.MaxSessionCount сессий отклоняется.
func Classify(service *domain.Service) (domain.ClassifiedService, error) {
	if service == nil {
		return domain.ClassifiedService{}, fmt.Errorf("%w: service is missing", ErrInvalidService)
	}
	if service.ID <= 0 {
		return domain.ClassifiedService{}, fmt.Errorf("%w: service id must be positive, got %d", ErrInvalidService, service.ID)
	}
	if service.Price.IsNegative() {
		return domain.ClassifiedService{}, fmt.Errorf("%w: service id=%d has negative price", ErrInvalidService, service.ID)
	}

	if !service.IsTreatment {
		return domain.NewSingleVisit(*service), nil
	}

	sessions := domain.DefaultSessionCount
	if service.EstimatedSessions != nil && *service.EstimatedSessions > sessions {
		sessions = *service.EstimatedSessions
	}
	if sessions > domain.MaxSessionCount {
		return domain.ClassifiedService{}, fmt.Errorf("%w: service id=%d estimates %d sessions, max %d",
			ErrInvalidService, service.ID, sessions, domain.MaxSessionCount)
	}
	return domain.NewTreatment(*service, sessions), nil
}
