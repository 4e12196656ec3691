package draft

import (
	"encoding/json"
	"fmt"
)

// Step шаг мастера записи; шаги проходятся строго по порядку
type Step int

const (
	StepPatientSelection Step = iota + 1
	StepServiceSelection
	StepScheduling
	StepConfirmation
)

var stepNames = map[Step]string{
	StepPatientSelection: "patient_selection",
	StepServiceSelection: "service_selection",
	StepScheduling:       "scheduling",
	StepConfirmation:     "confirmation",
}

// String возвращает имя шага
func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// MarshalJSON кодирует шаг по имени
func (s Step) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s Step) next() Step {
	if s >= StepConfirmation {
		return s
	}
	return s + 1
}

func (s Step) prev() Step {
	if s <= StepPatientSelection {
		return s
	}
	return s - 1
}

// PatientMode режим выбора пациента
type PatientMode string

const (
	PatientModeNone     PatientMode = ""
	PatientModeExisting PatientMode = "existing"
	PatientModeNew      PatientMode = "new"
)
