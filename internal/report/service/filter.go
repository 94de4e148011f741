package service

import (
	"sort"
	"strings"
	"time"

	"delivery-report/internal/report/model"
)

// AllSentinel in a selection disables that filter.
const AllSentinel = "All"

type selection map[string]struct{}

// newSelection returns nil (no filtering) for an empty selection or one containing "All".
func newSelection(values []string) selection {
	var sel selection
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if strings.EqualFold(v, AllSentinel) {
			return nil
		}
		if sel == nil {
			sel = selection{}
		}
		sel[v] = struct{}{}
	}
	return sel
}

func (s selection) allows(v string) bool {
	if s == nil {
		return true
	}
	_, ok := s[v]
	return ok
}

type roleFilter struct {
	role model.Role
	sel  selection
}

// DateRange returns the effective inclusive range: the query bounds, falling back to the
// dataset's min/max date. ok is false when the dataset is empty and no bound was given.
func DateRange(ds model.Dataset, q model.Query) (start, end time.Time, ok bool) {
	minD, maxD, has := bounds(ds)
	switch {
	case q.Start != nil:
		start = day(*q.Start)
	case has:
		start = minD
	case q.End != nil:
		start = day(*q.End)
	default:
		return start, end, false
	}
	switch {
	case q.End != nil:
		end = day(*q.End)
	case has:
		end = maxD
	default:
		end = start
	}
	return start, end, true
}

// Filter keeps records inside [start, end] (whole days, inclusive) that pass every
// active membership filter. Filters on unresolved roles are ignored.
func Filter(ds model.Dataset, schema model.Schema, q model.Query) model.Dataset {
	start, end, ok := DateRange(ds, q)
	if !ok {
		return ds.WithRecords(nil)
	}
	var active []roleFilter
	for _, f := range []roleFilter{
		{model.RoleArea, newSelection(q.Areas)},
		{model.RolePlant, newSelection(q.Plants)},
		{model.RoleCustomer, newSelection(q.Customers)},
		{model.RoleTruck, newSelection(q.Trucks)},
		{model.RoleSalesman, newSelection(q.Salesmen)},
		{model.RoleCreator, newSelection(q.Creators)},
	} {
		if f.sel != nil && schema.Has(f.role) {
			active = append(active, f)
		}
	}

	out := make([]model.Record, 0, ds.Len())
	for i, rec := range ds.Records {
		if d := day(rec.Date); d.Before(start) || d.After(end) {
			continue
		}
		keep := true
		for _, f := range active {
			if !f.sel.allows(ds.Value(schema, i, f.role)) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, rec)
		}
	}
	return ds.WithRecords(out)
}

// FilterOptions lists selectable values over the unfiltered dataset. Plants cascade
// from the area selection: only plants seen in the selected areas are offered.
func FilterOptions(ds model.Dataset, schema model.Schema, areas []string) model.Options {
	var opt model.Options
	if minD, maxD, ok := bounds(ds); ok {
		opt.MinDate, opt.MaxDate = &minD, &maxD
	}
	areaSel := newSelection(areas)
	if !schema.Has(model.RoleArea) {
		areaSel = nil
	}
	opt.Areas = distinctSorted(ds, schema, model.RoleArea, nil)
	opt.Plants = distinctSorted(ds, schema, model.RolePlant, func(i int) bool {
		return areaSel.allows(ds.Value(schema, i, model.RoleArea))
	})
	opt.Customers = distinctSorted(ds, schema, model.RoleCustomer, nil)
	opt.Trucks = distinctSorted(ds, schema, model.RoleTruck, nil)
	opt.Salesmen = distinctSorted(ds, schema, model.RoleSalesman, nil)
	opt.Creators = distinctSorted(ds, schema, model.RoleCreator, nil)
	return opt
}

func distinctSorted(ds model.Dataset, schema model.Schema, r model.Role, keep func(int) bool) []string {
	out := []string{}
	if !schema.Has(r) {
		return out
	}
	seen := map[string]struct{}{}
	for i := range ds.Records {
		if keep != nil && !keep(i) {
			continue
		}
		v := ds.Value(schema, i, r)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func bounds(ds model.Dataset) (minD, maxD time.Time, ok bool) {
	for i, rec := range ds.Records {
		d := day(rec.Date)
		if i == 0 || d.Before(minD) {
			minD = d
		}
		if i == 0 || d.After(maxD) {
			maxD = d
		}
	}
	return minD, maxD, ds.Len() > 0
}
