package dashboard

import "html/template"

var pageTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Space Availability Dashboard</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; background: #f3f4f6; color: #111827; }
  header { background: #1f2937; color: #fff; padding: 20px 32px; }
  header h1 { margin: 0; font-size: 22px; }
  header p { margin: 4px 0 0; color: #9ca3af; font-size: 13px; }
  main { padding: 24px 32px; max-width: 1200px; margin: 0 auto; }
  h2 { font-size: 18px; margin: 28px 0 12px; }
  .grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(260px, 1fr)); gap: 12px; }
  .card { background: #fff; border-radius: 8px; padding: 14px 16px; box-shadow: 0 1px 2px rgba(0,0,0,.08); border-left: 6px solid #e5e7eb; }
  .card .name { font-weight: 600; font-size: 15px; }
  .card .category { color: #6b7280; font-size: 12px; margin-top: 2px; }
  .card .next { margin-top: 10px; font-size: 13px; }
  .card .rate { color: #6b7280; font-size: 12px; margin-top: 4px; }
  .chart-wrap { background: #fff; border-radius: 8px; padding: 16px; box-shadow: 0 1px 2px rgba(0,0,0,.08); }
  canvas { max-height: 380px; }
</style>
{{if .HasSeries}}<script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.1/dist/chart.umd.min.js"></script>{{end}}
</head>
<body>
<header>
  <h1>Space Availability Dashboard</h1>
  <p>Last updated: {{.LastUpdated}}</p>
</header>
<main>
{{range .Locations}}
  <h2>{{.Name}}</h2>
  <div class="grid">
  {{range .Spaces}}
    <div class="card" style="border-left-color: {{.Color}};">
      <div class="name">{{.SpaceName}}</div>
      <div class="category">{{.CategoryName}}</div>
      <div class="next">Next available: <strong>{{.NextAvailable}}</strong></div>
      <div class="rate">1-week booking rate: {{printf "%.1f" .BookingRate}}%</div>
    </div>
  {{end}}
  </div>
{{end}}
{{if .HasSeries}}
  <h2>Booking Rate Trend (1 week)</h2>
  <div class="chart-wrap"><canvas id="rateChart"></canvas></div>
  <script>
    const series = {{.SeriesJSON}};
    const datasets = Object.values(series.spaces).map(function (s) {
      return { label: s.space_name + " (" + s.location_name + ")", data: s.data, tension: 0.2 };
    });
    new Chart(document.getElementById("rateChart"), {
      type: "line",
      data: { labels: series.dates, datasets: datasets },
      options: {
        responsive: true,
        scales: { y: { min: 0, max: 100, title: { display: true, text: "Booking rate, %" } } }
      }
    });
  </script>
{{end}}
</main>
</body>
</html>
`))
