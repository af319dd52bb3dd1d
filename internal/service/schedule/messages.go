package schedule

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

const (
	msgDateRequiredInQuery = "`date` is required in the query"
	msgBothRequired        = "`date` and `time` are required in the body"
	msgDateRequired        = "`date` is required in the body"
	msgTimeRequired        = "`time` is required in the body"
	msgDateFormat          = "`date` must be in the format YYYY-MM-DD with valid month and day"
	msgBookInPast          = "Appointments cannot be booked in the past"
	msgCancelInPast        = "Can't cancel past appointments"
	msgOutsideHoursFmt     = "`time` must be within operational hours: %s to %s"
	msgOffGrid             = "`time` must be in the valid format based on the configured slot duration"
	msgWeekend             = "Appointments cannot be booked on weekends."
	msgDayOff              = "Appointments cannot be booked on this day as it is a day off."
	msgUnavailableHour     = "Appointments cannot be booked at this time as it is unavailable."
	msgCapacityReached     = "This time slot has reached the maximum number of bookings"
	msgNothingToCancel     = "There is no available appointment to be cancelled"
)

// gateCodes коды ошибок для общих проверок записи и отмены
type gateCodes struct {
	missingBoth  string
	missingDate  string
	missingTime  string
	dateFormat   string
	inPast       string
	outsideHours string
	offGrid      string
	pastMessage  string
}

var bookingCodes = gateCodes{
	missingBoth:  domain.CodeBookMissingBoth,
	missingDate:  domain.CodeBookMissingDate,
	missingTime:  domain.CodeBookMissingTime,
	dateFormat:   domain.CodeBookDateFormat,
	inPast:       domain.CodeBookInPast,
	outsideHours: domain.CodeBookOutsideHours,
	offGrid:      domain.CodeBookOffGrid,
	pastMessage:  msgBookInPast,
}

var cancellationCodes = gateCodes{
	missingBoth:  domain.CodeCancelMissingBoth,
	missingDate:  domain.CodeCancelMissingDate,
	missingTime:  domain.CodeCancelMissingTime,
	dateFormat:   domain.CodeCancelDateFormat,
	inPast:       domain.CodeCancelInPast,
	outsideHours: domain.CodeCancelOutsideHours,
	offGrid:      domain.CodeCancelOffGrid,
	pastMessage:  msgCancelInPast,
}
