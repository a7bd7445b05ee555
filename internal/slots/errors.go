package slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrEmptyRange возвращается, когда время открытия не раньше времени закрытия
	ErrEmptyRange = errors.New("open time must be before close time")

	// ErrEndsAfterMidnight возвращается, когда вычисленное время окончания
	// выходит за границу суток. Услуга, заканчивающаяся после полуночи -
	// ситуация, которую вызывающий код обязан обработать явно.
	ErrEndsAfterMidnight = errors.New("computed end time crosses midnight")
)
