package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes = 180 // 3 hours
	DefaultBufferMinutes       = 15
	DefaultAnalysisWindowWeeks = 13 // ~90 days, Hours API limit is 100 days
	DefaultTimezone            = "America/Toronto"
)

// Business validation constants
const (
	MinSlotDurationMinutes = 15
	MaxSlotDurationMinutes = 720 // 12 hours
	MaxHoursAPIDays        = 100 // Hours API отдаёт не больше 100 дней за запрос
	MaxBufferMinutes       = 120
)

// SlotStepMinutes шаг перебора кандидатов внутри операционного интервала
const SlotStepMinutes = 15

// Time format constants
const (
	DateFormat          = "2006-01-02"       // YYYY-MM-DD
	NextAvailableFormat = "2006-01-02 15:04" // формат next_available_booking в отчётах
)

// NoAvailability сентинел для пространства без единого свободного слота в горизонте
const NoAvailability = "No availability"

// SlotMinuteIncrements допустимые минуты начала слота (гранулярность выравнивания).
// Кандидат, чья минута не входит в набор, не эмитится генератором.
var SlotMinuteIncrements = map[int]struct{}{
	0:  {},
	15: {},
	30: {},
	45: {},
}

// AnalysisPeriods скользящие окна метрик в порядке возрастания.
// Все окна считаются от одного момента начала анализа по одному и тому же
// набору кандидатов, поэтому часы и счётчики монотонно не убывают.
var AnalysisPeriods = []AnalysisPeriod{
	{Name: "1week", Weeks: 1},
	{Name: "2weeks", Weeks: 2},
	{Name: "1month", Weeks: 4},
	{Name: "2months", Weeks: 8},
	{Name: "3months", Weeks: 13},
}
