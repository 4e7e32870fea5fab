package services

import (
	"errors"

	"barber_flow_app_go/models"

	"gorm.io/gorm"
)

// GetWorkDay resolves a barber's working window for one weekday, creating the
// row lazily from shop settings when the schedule editor never touched it
func GetWorkDay(database *gorm.DB, settings *models.BarbershopSettings, barberID, weekday string) (*models.WorkDay, error) {
	if !models.IsValidWeekday(weekday) {
		return nil, NewCodedError(CodeValidationError, "invalid weekday %q", weekday)
	}

	var workDay models.WorkDay
	err := database.Where("barber_id = ? AND weekday = ?", barberID, weekday).First(&workDay).Error
	if err == nil {
		return &workDay, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Default: the barber works the shop hours on every shop open day
	start, end := settings.StartTime, settings.EndTime
	workDay = models.WorkDay{
		BarberID:  barberID,
		Weekday:   weekday,
		IsWorking: settings.IsOpenOn(weekday),
		StartTime: &start,
		EndTime:   &end,
	}
	if !workDay.IsWorking {
		workDay.StartTime = nil
		workDay.EndTime = nil
	}
	if err := database.Create(&workDay).Error; err != nil {
		// Lost the lazy-create race to a concurrent reader; theirs wins
		if isUniqueViolation(err) {
			var existing models.WorkDay
			if readErr := database.Where("barber_id = ? AND weekday = ?", barberID, weekday).
				First(&existing).Error; readErr == nil {
				return &existing, nil
			}
		}
		return nil, err
	}
	return &workDay, nil
}

// GetWeekSchedule returns the barber's full week, lazily filling gaps
func GetWeekSchedule(database *gorm.DB, settings *models.BarbershopSettings, barberID string) ([]models.WorkDay, error) {
	week := make([]models.WorkDay, 0, len(models.ValidWeekdays))
	for _, day := range models.ValidWeekdays {
		wd, err := GetWorkDay(database, settings, barberID, day)
		if err != nil {
			return nil, err
		}
		week = append(week, *wd)
	}
	return week, nil
}

// UpdateWorkDay persists schedule-editor changes for one weekday. Barber
// hours must stay inside the shop's global window; shop hours are the floor
// and ceiling.
func UpdateWorkDay(database *gorm.DB, settings *models.BarbershopSettings, barberID, weekday string, isWorking bool, startTime, endTime *string) (*models.WorkDay, error) {
	workDay, err := GetWorkDay(database, settings, barberID, weekday)
	if err != nil {
		return nil, err
	}

	if isWorking {
		if startTime == nil || endTime == nil {
			return nil, NewCodedError(CodeValidationError, "working day requires start and end times")
		}
		if _, _, err := ParseHHMM(*startTime); err != nil {
			return nil, NewCodedError(CodeValidationError, "invalid start time: %v", err)
		}
		if _, _, err := ParseHHMM(*endTime); err != nil {
			return nil, NewCodedError(CodeValidationError, "invalid end time: %v", err)
		}
		if *startTime >= *endTime {
			return nil, NewCodedError(CodeInvalidTimeRange, "start time must precede end time")
		}
		if *startTime < settings.StartTime || *endTime > settings.EndTime {
			return nil, NewCodedError(CodeInvalidTimeRange,
				"barber hours must stay within shop hours %s-%s", settings.StartTime, settings.EndTime)
		}
		workDay.IsWorking = true
		workDay.StartTime = startTime
		workDay.EndTime = endTime
	} else {
		workDay.IsWorking = false
		workDay.StartTime = nil
		workDay.EndTime = nil
	}

	if err := database.Save(workDay).Error; err != nil {
		return nil, err
	}
	return workDay, nil
}
