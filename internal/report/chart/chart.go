package chart

import (
	"html/template"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"
	"github.com/go-echarts/go-echarts/v2/types"

	"delivery-report/internal/report/model"
)

const chartHeight = "380px"

// snippetRenderer matches the RenderSnippet method shared by every go-echarts chart.
type snippetRenderer interface {
	RenderSnippet() render.ChartSnippet
}

// Snippet is one rendered chart: a div plus its init script.
type Snippet struct {
	Key   string
	Title string
	HTML  template.HTML
}

func boolPtr(b bool) *bool { return &b }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func initOpts(id string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		Theme:   types.ThemeWesteros,
		Height:  chartHeight,
		ChartID: id,
	})
}

func toSnippet(key, title string, c snippetRenderer) Snippet {
	s := c.RenderSnippet()
	return Snippet{Key: key, Title: title, HTML: template.HTML(s.Element + "\n" + s.Script)}
}

// Breakdown renders a grouped breakdown as bar, pie or line depending on its chart kind.
func Breakdown(b model.Breakdown) Snippet {
	keys := make([]string, len(b.Values))
	for i, v := range b.Values {
		keys[i] = v.Key
	}
	title := charts.WithTitleOpts(opts.Title{Title: b.Title})
	tooltip := charts.WithTooltipOpts(opts.Tooltip{Show: boolPtr(true)})

	switch b.Chart {
	case model.ChartPie:
		pie := charts.NewPie()
		pie.SetGlobalOptions(title, tooltip, initOpts(b.Key))
		items := make([]opts.PieData, len(b.Values))
		for i, v := range b.Values {
			items[i] = opts.PieData{Name: v.Key, Value: round2(v.Value)}
		}
		pie.AddSeries(b.Group.Label(), items)
		return toSnippet(b.Key, b.Title, pie)
	case model.ChartLine:
		line := charts.NewLine()
		line.SetGlobalOptions(title, tooltip, initOpts(b.Key))
		items := make([]opts.LineData, len(b.Values))
		for i, v := range b.Values {
			items[i] = opts.LineData{Value: round2(v.Value)}
		}
		line.SetXAxis(keys).AddSeries(b.Title, items)
		return toSnippet(b.Key, b.Title, line)
	default:
		bar := charts.NewBar()
		bar.SetGlobalOptions(title, tooltip, initOpts(b.Key),
			charts.WithLegendOpts(opts.Legend{Show: boolPtr(false)}))
		items := make([]opts.BarData, len(b.Values))
		for i, v := range b.Values {
			items[i] = opts.BarData{Value: round2(v.Value)}
		}
		bar.SetXAxis(keys).AddSeries(b.Title, items)
		return toSnippet(b.Key, b.Title, bar)
	}
}

// Daily renders the volume trend as a line chart.
func Daily(values []model.GroupValue) Snippet {
	return Breakdown(model.Breakdown{
		Key:    "daily_volume",
		Title:  "Daily Volume",
		Group:  model.RoleDate,
		Agg:    model.AggSum,
		Chart:  model.ChartLine,
		Values: values,
	})
}

// Target renders actual vs target bars. Groups without a target show a gap, not a zero bar.
func Target(cmp model.TargetComparison) Snippet {
	title := "Actual vs Target by " + cmp.Group.Label()
	keys := make([]string, len(cmp.Rows))
	actual := make([]opts.BarData, len(cmp.Rows))
	target := make([]opts.BarData, len(cmp.Rows))
	for i, r := range cmp.Rows {
		keys[i] = r.Key
		actual[i] = opts.BarData{Value: round2(r.Actual)}
		if r.Target == nil {
			target[i] = opts.BarData{Value: "-"}
		} else {
			target[i] = opts.BarData{Value: round2(*r.Target)}
		}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: boolPtr(true)}),
		initOpts("target_"+string(cmp.Group)),
	)
	bar.SetXAxis(keys).
		AddSeries("Actual", actual).
		AddSeries("Target", target)
	return toSnippet("target", title, bar)
}

// Snippets renders every chart of a report in display order.
func Snippets(rep model.Report) []Snippet {
	out := make([]Snippet, 0, len(rep.Breakdowns)+2)
	if len(rep.Daily) > 0 {
		out = append(out, Daily(rep.Daily))
	}
	for _, b := range rep.Breakdowns {
		if len(b.Values) == 0 {
			continue
		}
		out = append(out, Breakdown(b))
	}
	if rep.Target != nil && len(rep.Target.Rows) > 0 {
		out = append(out, Target(*rep.Target))
	}
	return out
}
