package types

import (
	"errors"
	"fmt"
	"time"
)

// TimeFormat формат времени HH:MM
const TimeFormat = "15:04"

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidTimeString возвращается при некорректном формате строки времени
	ErrInvalidTimeString = errors.New("invalid time string format, expected HH:MM")

	// ErrCrossesMidnight возвращается, когда результат арифметики выходит за границу суток.
	// Молчаливый перенос через полночь запрещён - вызывающий код обязан обработать этот случай явно.
	ErrCrossesMidnight = errors.New("time arithmetic crosses midnight boundary")

	// ErrNegativeMinutes возвращается при отрицательном количестве минут
	ErrNegativeMinutes = errors.New("minutes must not be negative")
)

// TimeString время суток в формате "HH:MM".
// Единственный тип для работы со временем суток в проекте,
// прямой разбор строк времени вне этого пакета не допускается.
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет, что значение соответствует формату HH:MM
func (t TimeString) Validate() error {
	parsed, err := time.Parse(TimeFormat, string(t))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	// time.Parse принимает "9:05", нормализуем к строгому виду "09:05"
	if parsed.Format(TimeFormat) != string(t) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// MinutesOfDay возвращает количество минут от начала суток
func (t TimeString) MinutesOfDay() (int, error) {
	parsed, err := time.Parse(TimeFormat, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes прибавляет minutes минут и возвращает новое время суток.
// Если результат выходит за границу суток (>= 24:00), возвращает ErrCrossesMidnight.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	if minutes < 0 {
		return "", ErrNegativeMinutes
	}

	current, err := t.MinutesOfDay()
	if err != nil {
		return "", err
	}

	total := current + minutes
	if total >= MinutesPerDay {
		return "", fmt.Errorf("%w: %s + %d min", ErrCrossesMidnight, t, minutes)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}
