package chart

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"delivery-report/internal/report/model"
)

func sampleReport() model.Report {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)
	target := 90.0
	return model.Report{
		Start:   &start,
		End:     &end,
		Summary: model.Summary{TotalArea: 2, TotalVolume: 150, TotalTrip: 2, DaySpan: 2, AvgVolumePerDay: 75, AvgLoadPerTrip: 75},
		Daily:   []model.GroupValue{{Key: "2025-01-01", Value: 150}},
		Breakdowns: []model.Breakdown{
			{Key: "volume_by_area", Title: "Volume by Area", Group: model.RoleArea, Agg: model.AggSum, Chart: model.ChartBar,
				Values: []model.GroupValue{{Key: "A", Value: 100}, {Key: "B", Value: 50}}},
			{Key: "volume_share_by_area", Title: "Volume Share by Area", Group: model.RoleArea, Agg: model.AggSum, Chart: model.ChartPie,
				Values: []model.GroupValue{{Key: "A", Value: 100}, {Key: "B", Value: 50}}},
			{Key: "volume_by_plant", Title: "Volume by Plant", Group: model.RolePlant, Agg: model.AggSum, Chart: model.ChartBar,
				Values: []model.GroupValue{}},
		},
		Target: &model.TargetComparison{Group: model.RolePlant, Rows: []model.TargetRow{
			{Key: "PlantY", Actual: 200},
			{Key: "PlantX", Actual: 100, Target: &target},
		}},
	}
}

func TestSnippets_SkipsEmptyBreakdowns(t *testing.T) {
	got := Snippets(sampleReport())
	keys := make([]string, len(got))
	for i, s := range got {
		keys[i] = s.Key
		require.NotEmpty(t, s.HTML)
	}
	require.Equal(t, []string{"daily_volume", "volume_by_area", "volume_share_by_area", "target"}, keys)
}

func TestBreakdown_ContainsIDAndTitle(t *testing.T) {
	s := Breakdown(sampleReport().Breakdowns[0])
	html := string(s.HTML)
	require.Contains(t, html, "volume_by_area")
	require.Contains(t, html, "Volume by Area")
}

func TestTarget_MissingTargetIsGap(t *testing.T) {
	s := Target(*sampleReport().Target)
	html := string(s.HTML)
	require.Contains(t, html, "Actual vs Target by Plant Name")
	require.Contains(t, html, `"-"`)
}

func TestRenderDashboard(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderDashboard(&buf, sampleReport()))
	out := buf.String()
	require.Contains(t, out, "Total Volume")
	require.Contains(t, out, "150.00")
	require.Contains(t, out, "2025-01-01 to 2025-01-02")
	require.Equal(t, 4, strings.Count(out, `class="chart-box"`))
}

func TestRenderDashboard_Empty(t *testing.T) {
	rep := sampleReport()
	rep.Empty = true
	rep.Message = "no data for the selected filters"
	var buf bytes.Buffer
	require.NoError(t, RenderDashboard(&buf, rep))
	out := buf.String()
	require.Contains(t, out, "no data for the selected filters")
	require.NotContains(t, out, `class="chart-box"`)
}

func TestRenderDashboard_StatsTable(t *testing.T) {
	rep := sampleReport()
	first := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 0, 1)
	mean := 75.0
	rep.Stats = []model.ColumnStats{
		{Role: model.RoleDate, Column: "dp date", Count: 2, Unique: 2, Top: "2025-01-01", TopFreq: 1, FirstDate: &first, LastDate: &last},
		{Role: model.RoleQuantity, Column: "qty", Count: 2, Unique: 2, Top: "100", TopFreq: 1, Mean: &mean},
		{Role: model.RoleCreator, Column: "create by", Count: 2, Unique: 1, Top: "admin", TopFreq: 2},
	}
	var buf bytes.Buffer
	require.NoError(t, RenderDashboard(&buf, rep))
	out := buf.String()
	require.Contains(t, out, `class="stats"`)
	require.Contains(t, out, "<td>Create By</td><td>2</td><td>1</td><td>admin</td><td>2</td>")
	require.Contains(t, out, "<td>2025-01-01</td><td>2025-01-02</td>")
	require.Contains(t, out, "<td>75.00</td>")
}
