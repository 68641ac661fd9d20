package libcal

// tokenResponse ответ OAuth endpoint'а (grant_type=client_credentials)
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// locationHours элемент ответа Hours API: часы одной локации по датам
type locationHours struct {
	LID   int64               `json:"lid"`
	Name  string              `json:"name"`
	Dates map[string]dayHours `json:"dates"`
}

// dayHours расписание локации на одну дату.
// Status != "open" означает, что локация закрыта весь день.
type dayHours struct {
	Status string      `json:"status"`
	Hours  []hoursPair `json:"hours"`
}

// hoursPair один непрерывный интервал работы в настенном времени ("9:00am", "11:45pm")
type hoursPair struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// rawBooking сырая запись бронирования из Bookings API.
// Метки времени приходят с непоследовательным UTC-суффиксом и нормализуются
// через domain.NewBookedRange.
type rawBooking struct {
	BookID   string `json:"bookId"`
	FromDate string `json:"fromDate"`
	ToDate   string `json:"toDate"`
	Status   string `json:"status"`
}

// ErrorResponse модель ошибки от LibCal API
type ErrorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
}
