package service

import (
	"delivery-report/internal/fileio"
	"delivery-report/internal/report/model"
)

// EmptyMessage is shown when the filters leave no rows.
const EmptyMessage = "no data for the selected filters"

// Prepared is an upload after header resolution, validation and coercion.
type Prepared struct {
	Columns     []string // header text as uploaded
	Schema      model.Schema
	Data        model.Dataset
	RowsRead    int
	RowsDropped int
}

// Prepare normalizes headers, resolves roles, validates required roles and coerces types.
func Prepare(tbl fileio.Table, aliases model.Aliases) (Prepared, error) {
	headers := NormalizeHeaders(tbl.Headers)
	schema := Resolve(headers, aliases)
	if err := Validate(schema, headers, aliases); err != nil {
		return Prepared{}, err
	}
	ds, dropped := Coerce(tbl, headers, schema)
	return Prepared{
		Columns:     tbl.Headers,
		Schema:      schema,
		Data:        ds,
		RowsRead:    len(tbl.Rows),
		RowsDropped: dropped,
	}, nil
}

// TargetInput is the optional second upload.
type TargetInput struct {
	Table fileio.Table
	Key   model.Role
}

// Run filters the prepared data and computes KPIs, breakdowns, column statistics and
// the optional target comparison. It also returns the filtered view for export.
func Run(p Prepared, q model.Query, target *TargetInput) (model.Report, model.Dataset, error) {
	rep := model.Report{
		Schema:      p.Schema.Map(),
		RowsRead:    p.RowsRead,
		RowsDropped: p.RowsDropped,
		Options:     FilterOptions(p.Data, p.Schema, q.Areas),
	}

	view := Filter(p.Data, p.Schema, q)
	rep.RowsMatched = view.Len()
	start, end, ok := DateRange(p.Data, q)
	if ok {
		rep.Start, rep.End = &start, &end
	}
	rep.Summary = Summarize(view, p.Schema, start, end)
	rep.Daily = DailyVolume(view)
	rep.Breakdowns = Breakdowns(view, p.Schema, DefaultBreakdowns)
	rep.Stats = Describe(view, p.Schema)

	if target != nil {
		t, err := ReadTargets(target.Table, p.Schema, target.Key)
		if err != nil {
			return rep, view, err
		}
		actual := Aggregate(view, p.Schema, t.Group, model.RoleQuantity, model.AggSum)
		cmp := MergeTargets(actual, t)
		rep.Target = &cmp
	}

	if view.Len() == 0 {
		rep.Empty = true
		rep.Message = EmptyMessage
	}
	return rep, view, nil
}
