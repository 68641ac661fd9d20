package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-SpaceAnalytics/internal/domain"
)

const separatorWidth = 79

// periodTotals агрегат метрик группы пространств за одно окно
type periodTotals struct {
	rates          []float64
	hoursAvailable float64
	hoursBooked    float64
	bookingCount   int
}

func (t *periodTotals) add(m domain.PeriodMetrics) {
	t.rates = append(t.rates, m.BookingRatePct)
	t.hoursAvailable += m.HoursAvailable
	t.hoursBooked += m.HoursBooked
	t.bookingCount += m.BookingCount
}

func (t *periodTotals) avgRate() float64 {
	if len(t.rates) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range t.rates {
		sum += r
	}
	return sum / float64(len(t.rates))
}

// WriteSummaryByLocation печатает сводку метрик по локациям и категориям
func WriteSummaryByLocation(w io.Writer, results []domain.SpaceAnalysisResult) {
	byLocation := map[string]map[string]map[string]*periodTotals{}

	for i := range results {
		r := &results[i]
		location := r.Space.LocationName
		category := r.Space.CategoryName

		if byLocation[location] == nil {
			byLocation[location] = map[string]map[string]*periodTotals{}
		}
		if byLocation[location][category] == nil {
			byLocation[location][category] = map[string]*periodTotals{}
		}

		for _, period := range domain.AnalysisPeriods {
			totals := byLocation[location][category][period.Name]
			if totals == nil {
				totals = &periodTotals{}
				byLocation[location][category][period.Name] = totals
			}
			totals.add(r.Periods[period.Name])
		}
	}

	sep := strings.Repeat("=", separatorWidth)
	fmt.Fprintf(w, "\n%s\nSUMMARY BY LOCATION AND CATEGORY\n%s\n", sep, sep)

	for _, location := range sortedKeys(byLocation) {
		fmt.Fprintf(w, "\nLocation: %s\n%s\n", location, sep)

		// Итоги по локации в целом
		locationTotals := map[string]*periodTotals{}
		for _, categoryTotals := range byLocation[location] {
			for periodName, totals := range categoryTotals {
				agg := locationTotals[periodName]
				if agg == nil {
					agg = &periodTotals{}
					locationTotals[periodName] = agg
				}
				agg.rates = append(agg.rates, totals.rates...)
				agg.hoursAvailable += totals.hoursAvailable
				agg.hoursBooked += totals.hoursBooked
				agg.bookingCount += totals.bookingCount
			}
		}

		fmt.Fprintf(w, "\n  LOCATION TOTALS:\n  %s\n", strings.Repeat("-", separatorWidth-2))
		writePeriodLines(w, "  ", locationTotals)

		// Разбивка по категориям
		for _, category := range sortedKeys(byLocation[location]) {
			fmt.Fprintf(w, "\n  Category: %s\n  %s\n", category, strings.Repeat("-", separatorWidth-2))
			writePeriodLines(w, "    ", byLocation[location][category])
		}
	}

	fmt.Fprintf(w, "\n%s\n", sep)
}

func writePeriodLines(w io.Writer, indent string, totals map[string]*periodTotals) {
	for _, period := range domain.AnalysisPeriods {
		t := totals[period.Name]
		if t == nil {
			continue
		}
		fmt.Fprintf(w, "%s%-12s - Avg Booking: %6.2f%% | Available: %8.2fh | Booked: %8.2fh | Count: %4d\n",
			indent, strings.ToUpper(period.Name), t.avgRate(), t.hoursAvailable, t.hoursBooked, t.bookingCount)
	}
}

// WriteLongestLeadTimes печатает top-N пространств с самым дальним свободным слотом
func WriteLongestLeadTimes(w io.Writer, results []domain.SpaceAnalysisResult, topN int) {
	type leadTime struct {
		spaceName    string
		locationName string
		next         time.Time
	}

	var entries []leadTime
	for i := range results {
		r := &results[i]
		if r.NextAvailable == nil {
			continue
		}
		entries = append(entries, leadTime{
			spaceName:    r.Space.SpaceName,
			locationName: r.Space.LocationName,
			next:         *r.NextAvailable,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].next.After(entries[j].next)
	})

	if len(entries) > topN {
		entries = entries[:topN]
	}

	sep := strings.Repeat("=", separatorWidth)
	fmt.Fprintf(w, "\n%s\nTOP %d SPACES WITH LONGEST LEAD TIMES\n%s\n", sep, topN, sep)

	for i, e := range entries {
		location := e.locationName
		if len(location) > 25 {
			location = location[:25]
		}
		fmt.Fprintf(w, "%2d. %-45s (%s)\n", i+1, e.spaceName, location)
		fmt.Fprintf(w, "    Next Available: %s\n", e.next.Format(domain.NextAvailableFormat))
	}

	fmt.Fprintf(w, "%s\n", sep)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
