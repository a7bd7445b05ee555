package slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumea-app/SBM-ClientCore/pkg/types"
)

func TestGenerateCandidateSlots(t *testing.T) {
	result, err := GenerateCandidateSlots("09:00", "18:00", 30)
	require.NoError(t, err)

	// [09:00, 18:00) с шагом 30 минут = 18 слотов
	require.Len(t, result, 18)
	assert.Equal(t, types.TimeString("09:00"), result[0])
	assert.Equal(t, types.TimeString("17:30"), result[len(result)-1])

	// шаг между соседними слотами ровно 30 минут, ни один слот не >= close
	for i, slot := range result {
		assert.True(t, slot.IsBefore("18:00"), "slot %s must be before close", slot)
		if i > 0 {
			prev, err := result[i-1].MinutesOfDay()
			require.NoError(t, err)
			cur, err := slot.MinutesOfDay()
			require.NoError(t, err)
			assert.Equal(t, 30, cur-prev)
		}
	}
}

func TestGenerateCandidateSlots_StepNotDividingRange(t *testing.T) {
	result, err := GenerateCandidateSlots("09:00", "10:00", 45)
	require.NoError(t, err)

	// 09:00 и 09:45 оба строго раньше 10:00
	assert.Equal(t, []types.TimeString{"09:00", "09:45"}, result)
}

func TestGenerateCandidateSlots_LateRange(t *testing.T) {
	// шаг уходит за полночь - генерация останавливается, а не падает
	result, err := GenerateCandidateSlots("23:00", "23:59", 40)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"23:00", "23:40"}, result)
}

func TestGenerateCandidateSlots_InvalidInput(t *testing.T) {
	_, err := GenerateCandidateSlots("09:00", "18:00", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = GenerateCandidateSlots("09:00", "18:00", -15)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = GenerateCandidateSlots("18:00", "09:00", 30)
	assert.ErrorIs(t, err, ErrEmptyRange)

	_, err = GenerateCandidateSlots("18:00", "18:00", 30)
	assert.ErrorIs(t, err, ErrEmptyRange)

	_, err = GenerateCandidateSlots("9am", "18:00", 30)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestComputeEndTime(t *testing.T) {
	end, err := ComputeEndTime("09:45", 30)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:15"), end)

	end, err = ComputeEndTime("14:00", 30)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("14:30"), end)
}

func TestComputeEndTime_CrossesMidnight(t *testing.T) {
	// "23:50" + 30 мин - это не "00:20", а явная ошибка границы суток
	_, err := ComputeEndTime("23:50", 30)
	assert.ErrorIs(t, err, ErrEndsAfterMidnight)
}

func TestComputeEndTime_InvalidInput(t *testing.T) {
	_, err := ComputeEndTime("09:45", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ComputeEndTime("09:45", -30)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ComputeEndTime("9:45", 30)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGenerateCandidateDates(t *testing.T) {
	from := time.Date(2025, 10, 15, 13, 45, 0, 0, time.UTC)

	dates, err := GenerateCandidateDates(from, 30)
	require.NoError(t, err)
	require.Len(t, dates, 30)

	assert.Equal(t, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), dates[0])

	seen := make(map[string]bool)
	for i, d := range dates {
		assert.Equal(t, 0, d.Hour())
		assert.False(t, seen[d.Format("2006-01-02")], "dates must be distinct")
		seen[d.Format("2006-01-02")] = true
		if i > 0 {
			assert.Equal(t, dates[i-1].AddDate(0, 0, 1), d, "dates must be consecutive")
		}
	}
}

func TestGenerateCandidateDates_CrossesMonthBoundary(t *testing.T) {
	from := time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC)

	dates, err := GenerateCandidateDates(from, 5)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), dates[4])
}

func TestGenerateCandidateDates_InvalidInput(t *testing.T) {
	_, err := GenerateCandidateDates(time.Now(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = GenerateCandidateDates(time.Time{}, 10)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
