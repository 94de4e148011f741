package service

import (
	"sort"
	"time"

	"delivery-report/internal/report/model"
	"delivery-report/internal/utils"
)

// DaySpan is the inclusive number of calendar days in [start, end], never below 1.
func DaySpan(start, end time.Time) int {
	n := int(day(end).Sub(day(start)).Hours()/24) + 1
	if n < 1 {
		return 1
	}
	return n
}

// Summarize computes the KPI cards for a filtered view over the selected range.
func Summarize(ds model.Dataset, schema model.Schema, start, end time.Time) model.Summary {
	s := model.Summary{
		TotalArea:  countDistinct(ds, schema, model.RoleArea),
		TotalPlant: countDistinct(ds, schema, model.RolePlant),
		TotalTruck: countDistinct(ds, schema, model.RoleTruck),
		TotalTrip:  countDistinct(ds, schema, model.RoleTripID),
		DaySpan:    DaySpan(start, end),
	}
	for _, rec := range ds.Records {
		s.TotalVolume += rec.Qty
	}
	s.AvgVolumePerDay = s.TotalVolume / float64(s.DaySpan)
	if s.TotalTrip > 0 {
		s.AvgLoadPerTrip = s.TotalVolume / float64(s.TotalTrip)
	}
	return s
}

// countDistinct counts non-blank distinct values; 0 when the role is unresolved.
func countDistinct(ds model.Dataset, schema model.Schema, r model.Role) int {
	if !schema.Has(r) {
		return 0
	}
	seen := map[string]struct{}{}
	for i := range ds.Records {
		if v := ds.Value(schema, i, r); v != "" {
			seen[v] = struct{}{}
		}
	}
	return len(seen)
}

type groupAcc struct {
	key   string
	sum   float64
	n     int
	uniq  map[string]struct{}
	valid int
}

// Aggregate groups the view by the group role and aggregates the measure role.
// Blank group keys are skipped. Result is sorted by value descending; ties keep the
// order in which groups first appear. mean skips cells that are not numbers and
// omits groups with no numeric cell.
func Aggregate(ds model.Dataset, schema model.Schema, group, measure model.Role, agg model.Agg) []model.GroupValue {
	if !schema.Has(group) || (agg != model.AggCount && !schema.Has(measure)) {
		return nil
	}
	order := make([]*groupAcc, 0)
	byKey := map[string]*groupAcc{}
	for i, rec := range ds.Records {
		k := ds.Value(schema, i, group)
		if k == "" {
			continue
		}
		g, ok := byKey[k]
		if !ok {
			g = &groupAcc{key: k, uniq: map[string]struct{}{}}
			byKey[k] = g
			order = append(order, g)
		}
		g.n++
		switch agg {
		case model.AggSum, model.AggMean:
			v, ok := measureValue(ds, schema, i, rec, measure)
			if ok {
				g.sum += v
				g.valid++
			}
		case model.AggNUnique:
			if v := ds.Value(schema, i, measure); v != "" {
				g.uniq[v] = struct{}{}
			}
		}
	}

	out := make([]model.GroupValue, 0, len(order))
	for _, g := range order {
		gv := model.GroupValue{Key: g.key}
		switch agg {
		case model.AggSum:
			gv.Value = g.sum
		case model.AggMean:
			if g.valid == 0 {
				continue
			}
			gv.Value = g.sum / float64(g.valid)
		case model.AggNUnique:
			gv.Value = float64(len(g.uniq))
		case model.AggCount:
			gv.Value = float64(g.n)
		}
		out = append(out, gv)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

// measureValue reads a numeric measure; quantity comes pre-coerced on the record.
func measureValue(ds model.Dataset, schema model.Schema, i int, rec model.Record, r model.Role) (float64, bool) {
	if r == model.RoleQuantity {
		return rec.Qty, true
	}
	return utils.ParseNumber(ds.Value(schema, i, r))
}

// DailyVolume sums quantity per calendar day in chronological order.
func DailyVolume(ds model.Dataset) []model.GroupValue {
	sums := map[time.Time]float64{}
	for _, rec := range ds.Records {
		sums[day(rec.Date)] += rec.Qty
	}
	days := make([]time.Time, 0, len(sums))
	for d := range sums {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	out := make([]model.GroupValue, len(days))
	for i, d := range days {
		out[i] = model.GroupValue{Key: d.Format("2006-01-02"), Value: sums[d]}
	}
	return out
}

// DefaultBreakdowns is the chart list of the dashboard.
var DefaultBreakdowns = []model.BreakdownSpec{
	{Key: "volume_by_area", Title: "Volume by Area", Group: model.RoleArea, Measure: model.RoleQuantity, Agg: model.AggSum, Chart: model.ChartBar},
	{Key: "volume_share_by_area", Title: "Volume Share by Area", Group: model.RoleArea, Measure: model.RoleQuantity, Agg: model.AggSum, Chart: model.ChartPie},
	{Key: "volume_by_plant", Title: "Volume by Plant", Group: model.RolePlant, Measure: model.RoleQuantity, Agg: model.AggSum, Chart: model.ChartBar},
	{Key: "volume_by_salesman", Title: "Volume by Sales Man", Group: model.RoleSalesman, Measure: model.RoleQuantity, Agg: model.AggSum, Chart: model.ChartBar},
	{Key: "volume_by_customer", Title: "Volume by End Customer", Group: model.RoleCustomer, Measure: model.RoleQuantity, Agg: model.AggSum, Chart: model.ChartBar},
	{Key: "volume_by_truck", Title: "Volume by Truck", Group: model.RoleTruck, Measure: model.RoleQuantity, Agg: model.AggSum, Chart: model.ChartBar},
	{Key: "distance_by_area", Title: "Average Distance by Area", Group: model.RoleArea, Measure: model.RoleDistance, Agg: model.AggMean, Chart: model.ChartBar},
	{Key: "distance_by_plant", Title: "Average Distance by Plant", Group: model.RolePlant, Measure: model.RoleDistance, Agg: model.AggMean, Chart: model.ChartBar},
	{Key: "distance_by_truck", Title: "Average Distance by Truck", Group: model.RoleTruck, Measure: model.RoleDistance, Agg: model.AggMean, Chart: model.ChartBar},
	{Key: "trips_by_truck", Title: "Trips by Truck", Group: model.RoleTruck, Measure: model.RoleTripID, Agg: model.AggNUnique, Chart: model.ChartBar},
}

// Breakdowns evaluates specs, skipping those whose group or measure role is unresolved.
func Breakdowns(ds model.Dataset, schema model.Schema, specs []model.BreakdownSpec) []model.Breakdown {
	out := make([]model.Breakdown, 0, len(specs))
	for _, sp := range specs {
		if !schema.Has(sp.Group) || (sp.Agg != model.AggCount && !schema.Has(sp.Measure)) {
			continue
		}
		vals := Aggregate(ds, schema, sp.Group, sp.Measure, sp.Agg)
		if vals == nil {
			vals = []model.GroupValue{}
		}
		out = append(out, model.Breakdown{
			Key:    sp.Key,
			Title:  sp.Title,
			Group:  sp.Group,
			Agg:    sp.Agg,
			Chart:  sp.Chart,
			Values: vals,
		})
	}
	return out
}
