// Package slots содержит чистые функции расчёта временных слотов.
// Никакого состояния и побочных эффектов: одинаковые входы дают одинаковые выходы.
package slots

import (
	"errors"
	"fmt"
	"time"

	"github.com/lumea-app/SBM-ClientCore/pkg/types"
)

// GenerateCandidateSlots генерирует кандидатов времени начала записи
// от openTime включительно до closeTime (не включая), с шагом stepMinutes.
func GenerateCandidateSlots(openTime, closeTime types.TimeString, stepMinutes int) ([]types.TimeString, error) {
	if stepMinutes <= 0 {
		return nil, fmt.Errorf("%w: stepMinutes must be positive, got %d", ErrInvalidInput, stepMinutes)
	}
	if err := openTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: openTime: %v", ErrInvalidInput, err)
	}
	if err := closeTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: closeTime: %v", ErrInvalidInput, err)
	}
	if !openTime.IsBefore(closeTime) {
		return nil, fmt.Errorf("%w: [%s, %s)", ErrEmptyRange, openTime, closeTime)
	}

	result := make([]types.TimeString, 0)
	current := openTime

	for current.IsBefore(closeTime) {
		result = append(result, current)

		next, err := current.AddMinutes(stepMinutes)
		if err != nil {
			if errors.Is(err, types.ErrCrossesMidnight) {
				// следующий шаг за границей суток, дальше слотов нет
				break
			}
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		current = next
	}

	return result, nil
}

// ComputeEndTime вычисляет время окончания записи.
// Перенос через границу часа выполняется корректно; перенос через границу суток
// не выполняется молча - возвращается ErrEndsAfterMidnight.
func ComputeEndTime(startTime types.TimeString, durationMinutes int) (types.TimeString, error) {
	if durationMinutes <= 0 {
		return "", fmt.Errorf("%w: durationMinutes must be positive, got %d", ErrInvalidInput, durationMinutes)
	}
	if err := startTime.Validate(); err != nil {
		return "", fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	end, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		if errors.Is(err, types.ErrCrossesMidnight) {
			return "", fmt.Errorf("%w: %s + %d min", ErrEndsAfterMidnight, startTime, durationMinutes)
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return end, nil
}

// GenerateCandidateDates возвращает count последовательных календарных дат,
// начиная с fromDate включительно. Время суток обнуляется.
func GenerateCandidateDates(fromDate time.Time, count int) ([]time.Time, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive, got %d", ErrInvalidInput, count)
	}
	if fromDate.IsZero() {
		return nil, fmt.Errorf("%w: fromDate is required", ErrInvalidInput)
	}

	start := time.Date(fromDate.Year(), fromDate.Month(), fromDate.Day(), 0, 0, 0, 0, fromDate.Location())

	result := make([]time.Time, count)
	for i := 0; i < count; i++ {
		result[i] = start.AddDate(0, 0, i)
	}

	return result, nil
}
