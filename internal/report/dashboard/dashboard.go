package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/m04kA/SMC-SpaceAnalytics/internal/domain"
	"github.com/m04kA/SMC-SpaceAnalytics/internal/infra/storage/snapshot"
)

// Цвета градиента next-available: от зелёного (сегодня) к красному (14+ дней)
var (
	greenRGB = [3]int{34, 197, 94}
	redRGB   = [3]int{239, 68, 68}
)

// maxDaysForRed дней до полного насыщения красным
const maxDaysForRed = 14

// SeriesSource интерфейс источника временного ряда booking_rate.
// nil-источник допустим: дашборд рендерится без графиков.
type SeriesSource interface {
	MondaySeries(ctx context.Context, period string) ([]snapshot.SeriesPoint, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Generator генерирует статический HTML-дашборд доступности пространств
type Generator struct {
	series SeriesSource
	log    Logger
}

// NewGenerator создает генератор дашборда. series может быть nil.
func NewGenerator(series SeriesSource, log Logger) *Generator {
	return &Generator{series: series, log: log}
}

type spaceView struct {
	SpaceID       string
	SpaceName     string
	CategoryName  string
	NextAvailable string
	DaysUntil     int
	Color         template.CSS
	BookingRate   float64
}

type locationView struct {
	Name   string
	Spaces []spaceView
}

type viewData struct {
	LastUpdated string
	Locations   []locationView
	HasSeries   bool
	SeriesJSON  template.JS
}

// seriesData форма временного ряда для фронтенда: даты запусков и
// booking_rate по каждому пространству
type seriesData struct {
	Dates  []string               `json:"dates"`
	Spaces map[string]seriesSpace `json:"spaces"`
}

type seriesSpace struct {
	SpaceName    string    `json:"space_name"`
	LocationName string    `json:"location_name"`
	Data         []float64 `json:"data"`
}

// Generate рендерит дашборд по результатам последнего запуска
func (g *Generator) Generate(ctx context.Context, results []domain.SpaceAnalysisResult, now time.Time) ([]byte, error) {
	data := viewData{
		LastUpdated: now.Format("January 2, 2006"),
		Locations:   buildLocationViews(results, now),
	}

	if g.series != nil {
		seriesJSON, ok := g.buildSeries(ctx)
		data.HasSeries = ok
		data.SeriesJSON = seriesJSON
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render dashboard: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteFile генерирует дашборд и пишет его в docsDir/index.html
func (g *Generator) WriteFile(ctx context.Context, docsDir string, results []domain.SpaceAnalysisResult, now time.Time) (string, error) {
	html, err := g.Generate(ctx, results, now)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(docsDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create docs directory: %w", err)
	}

	path := filepath.Join(docsDir, "index.html")
	if err := os.WriteFile(path, html, 0o644); err != nil {
		return "", fmt.Errorf("failed to write dashboard: %w", err)
	}

	g.log.Info("Dashboard: written to %s (%d bytes)", path, len(html))
	return path, nil
}

func (g *Generator) buildSeries(ctx context.Context) (template.JS, bool) {
	points, err := g.series.MondaySeries(ctx, "1week")
	if err != nil {
		g.log.Warn("Dashboard: failed to load time series, rendering without charts: %v", err)
		return "", false
	}
	if len(points) == 0 {
		return "", false
	}

	series := seriesData{Spaces: map[string]seriesSpace{}}
	seen := map[string]bool{}
	for _, p := range points {
		date := p.RunDate.Format(domain.DateFormat)
		if !seen[date] {
			seen[date] = true
			series.Dates = append(series.Dates, date)
		}

		sp, ok := series.Spaces[p.SpaceID]
		if !ok {
			sp = seriesSpace{SpaceName: p.SpaceName, LocationName: p.LocationName}
		}
		sp.Data = append(sp.Data, p.BookingRate)
		series.Spaces[p.SpaceID] = sp
	}

	raw, err := json.Marshal(series)
	if err != nil {
		g.log.Warn("Dashboard: failed to marshal time series: %v", err)
		return "", false
	}

	return template.JS(raw), true
}

func buildLocationViews(results []domain.SpaceAnalysisResult, now time.Time) []locationView {
	byLocation := map[string][]spaceView{}

	for i := range results {
		r := &results[i]
		days := daysUntil(r.NextAvailable, now)

		byLocation[r.Space.LocationName] = append(byLocation[r.Space.LocationName], spaceView{
			SpaceID:       r.Space.SpaceID,
			SpaceName:     r.Space.SpaceName,
			CategoryName:  r.Space.CategoryName,
			NextAvailable: r.NextAvailableString(),
			DaysUntil:     days,
			Color:         template.CSS(interpolateColor(days)),
			BookingRate:   r.Periods["1week"].BookingRatePct,
		})
	}

	locations := make([]locationView, 0, len(byLocation))
	for name, spaces := range byLocation {
		sort.Slice(spaces, func(i, j int) bool {
			return spaces[i].SpaceName < spaces[j].SpaceName
		})
		locations = append(locations, locationView{Name: name, Spaces: spaces})
	}

	sort.Slice(locations, func(i, j int) bool {
		return locations[i].Name < locations[j].Name
	})

	return locations
}

// daysUntil считает дни от сегодняшней полуночи до ближайшего свободного слота.
// nil (нет доступности) отображается за красную границу градиента.
func daysUntil(next *time.Time, now time.Time) int {
	if next == nil {
		return maxDaysForRed + 1
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	nextDay := time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, next.Location())

	days := int(nextDay.Sub(today).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// interpolateColor линейно интерполирует цвет от зелёного (0 дней) к красному (14+)
func interpolateColor(days int) string {
	if days <= 0 {
		return fmt.Sprintf("rgb(%d, %d, %d)", greenRGB[0], greenRGB[1], greenRGB[2])
	}
	if days >= maxDaysForRed {
		return fmt.Sprintf("rgb(%d, %d, %d)", redRGB[0], redRGB[1], redRGB[2])
	}

	ratio := float64(days) / float64(maxDaysForRed)
	r := greenRGB[0] + int(float64(redRGB[0]-greenRGB[0])*ratio)
	g := greenRGB[1] + int(float64(redRGB[1]-greenRGB[1])*ratio)
	b := greenRGB[2] + int(float64(redRGB[2]-greenRGB[2])*ratio)

	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}
