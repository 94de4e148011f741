package service

import (
	"delivery-report/internal/report/model"
)

// numericRoles get min/max/mean in Describe.
var numericRoles = map[model.Role]bool{
	model.RoleQuantity: true,
	model.RoleDistance: true,
}

// Describe summarizes every resolved column of the view in role order: non-blank count,
// distinct values with the most frequent one, and min/max/mean for numeric columns.
// Ties for the most frequent value go to the value seen first.
func Describe(ds model.Dataset, schema model.Schema) []model.ColumnStats {
	out := make([]model.ColumnStats, 0, len(model.Roles))
	for _, r := range model.Roles {
		col, ok := schema.Column(r)
		if !ok {
			continue
		}
		st := model.ColumnStats{Role: r, Column: col}
		if r == model.RoleDate {
			describeDates(ds, &st)
			out = append(out, st)
			continue
		}

		freq := map[string]int{}
		var sum float64
		var n int
		for i, rec := range ds.Records {
			v := ds.Value(schema, i, r)
			if v == "" {
				continue
			}
			st.Count++
			freq[v]++
			if freq[v] > st.TopFreq {
				st.Top, st.TopFreq = v, freq[v]
			}
			if !numericRoles[r] {
				continue
			}
			x, ok := measureValue(ds, schema, i, rec, r)
			if !ok {
				continue
			}
			if n == 0 || x < *st.Min {
				st.Min = &x
			}
			if n == 0 || x > *st.Max {
				st.Max = &x
			}
			sum += x
			n++
		}
		st.Unique = len(freq)
		if n > 0 {
			mean := sum / float64(n)
			st.Mean = &mean
		}
		out = append(out, st)
	}
	return out
}

func describeDates(ds model.Dataset, st *model.ColumnStats) {
	freq := map[string]int{}
	for _, rec := range ds.Records {
		k := day(rec.Date).Format("2006-01-02")
		freq[k]++
		if freq[k] > st.TopFreq {
			st.Top, st.TopFreq = k, freq[k]
		}
	}
	st.Count = ds.Len()
	st.Unique = len(freq)
	if first, last, ok := bounds(ds); ok {
		st.FirstDate, st.LastDate = &first, &last
	}
}
