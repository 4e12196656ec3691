package models

import (
	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// RuleRequest правило расписания на один день недели
type RuleRequest struct {
	Weekday             string `json:"weekday"`   // "monday"
	StartTime           string `json:"startTime"` // "09:00"
	EndTime             string `json:"endTime"`   // "18:00" или "24:00"
	SlotDurationMinutes int    `json:"slotDurationMinutes"`
}

// ReplaceScheduleRequest запрос на замену недельного расписания врача
type ReplaceScheduleRequest struct {
	Rules []RuleRequest `json:"rules"`
}

// RuleResponse правило расписания в ответе
type RuleResponse struct {
	ID                  int64  `json:"id"`
	Weekday             string `json:"weekday"`
	StartTime           string `json:"startTime"`
	EndTime             string `json:"endTime"`
	SlotDurationMinutes int    `json:"slotDurationMinutes"`
}

// ScheduleResponse недельное расписание врача
type ScheduleResponse struct {
	PractitionerID int64             `json:"practitionerId"`
	WorkDays       domain.WeekdaySet `json:"workDays"`
	Rules          []RuleResponse    `json:"rules"`
}

// FromDomainRules конвертирует правила в DTO
func FromDomainRules(practitionerID int64, rules []*domain.ScheduleRule) *ScheduleResponse {
	resp := &ScheduleResponse{
		PractitionerID: practitionerID,
		WorkDays:       domain.WorkDaysOf(rules),
		Rules:          make([]RuleResponse, 0, len(rules)),
	}

	for _, r := range rules {
		resp.Rules = append(resp.Rules, RuleResponse{
			ID:                  r.ID,
			Weekday:             domain.WeekdayName(r.Weekday),
			StartTime:           r.StartTime.String(),
			EndTime:             r.EndTime.String(),
			SlotDurationMinutes: r.SlotDurationMinutes,
		})
	}

	return resp
}
