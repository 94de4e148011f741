package chart

import (
	"fmt"
	"html/template"
	"io"

	"delivery-report/internal/report/model"
)

var page = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Dashboard Summary Reporting</title>
<script src="https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"></script>
<script src="https://go-echarts.github.io/go-echarts-assets/assets/themes/westeros.js"></script>
</head>
<body>
<h1>Dashboard Summary Reporting</h1>
{{if .Range}}<p>{{.Range}}</p>{{end}}
<div class="kpi-grid">
{{range .Cards}}<div class="kpi-card"><div class="kpi-label">{{.Label}}</div><div class="kpi-value">{{.Value}}</div></div>
{{end}}</div>
{{if .Message}}<p class="info">{{.Message}}</p>{{else}}
<div class="charts-grid">
{{range .Charts}}<div class="chart-box" id="box-{{.Key}}">{{.HTML}}</div>
{{end}}</div>
{{if .Stats}}<table class="stats">
<tr><th>Column</th><th>Count</th><th>Unique</th><th>Top</th><th>Freq</th><th>Min</th><th>Max</th><th>Mean</th></tr>
{{range .Stats}}<tr><td>{{.Column}}</td><td>{{.Count}}</td><td>{{.Unique}}</td><td>{{.Top}}</td><td>{{.Freq}}</td><td>{{.Min}}</td><td>{{.Max}}</td><td>{{.Mean}}</td></tr>
{{end}}</table>{{end}}{{end}}
</body>
</html>
`))

type card struct {
	Label string
	Value string
}

// statRow is one line of the column statistics table, preformatted.
type statRow struct {
	Column, Top, Min, Max, Mean string
	Count, Unique, Freq         int
}

type pageView struct {
	Range   string
	Cards   []card
	Charts  []Snippet
	Stats   []statRow
	Message string
}

// cards formats the KPI summary in display order.
func cards(s model.Summary) []card {
	return []card{
		{"Total Area", fmt.Sprintf("%d", s.TotalArea)},
		{"Total Plant", fmt.Sprintf("%d", s.TotalPlant)},
		{"Total Volume", fmt.Sprintf("%.2f", s.TotalVolume)},
		{"Total Truck", fmt.Sprintf("%d", s.TotalTruck)},
		{"Total Trip", fmt.Sprintf("%d", s.TotalTrip)},
		{"Avg Volume / Day", fmt.Sprintf("%.2f", s.AvgVolumePerDay)},
		{"Avg Load / Trip", fmt.Sprintf("%.2f", s.AvgLoadPerTrip)},
	}
}

func statRows(stats []model.ColumnStats) []statRow {
	num := func(v *float64) string {
		if v == nil {
			return ""
		}
		return fmt.Sprintf("%.2f", *v)
	}
	out := make([]statRow, len(stats))
	for i, st := range stats {
		row := statRow{
			Column: st.Role.Label(),
			Top:    st.Top,
			Count:  st.Count,
			Unique: st.Unique,
			Freq:   st.TopFreq,
			Min:    num(st.Min),
			Max:    num(st.Max),
			Mean:   num(st.Mean),
		}
		if st.FirstDate != nil && st.LastDate != nil {
			row.Min = st.FirstDate.Format("2006-01-02")
			row.Max = st.LastDate.Format("2006-01-02")
		}
		out[i] = row
	}
	return out
}

// RenderDashboard writes the KPI cards and charts of rep as one HTML page.
// An empty report shows its message instead of charts.
func RenderDashboard(w io.Writer, rep model.Report) error {
	v := pageView{Cards: cards(rep.Summary), Message: rep.Message}
	if rep.Start != nil && rep.End != nil {
		v.Range = rep.Start.Format("2006-01-02") + " to " + rep.End.Format("2006-01-02")
	}
	if !rep.Empty {
		v.Charts = Snippets(rep)
		v.Stats = statRows(rep.Stats)
	}
	return page.Execute(w, v)
}
