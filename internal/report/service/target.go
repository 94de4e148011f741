package service

import (
	"strings"

	"delivery-report/internal/fileio"
	"delivery-report/internal/report/model"
	"delivery-report/internal/utils"
)

// targetKeys are tried in order when the caller does not pick the target group.
var targetKeys = []model.Role{model.RolePlant, model.RoleArea}

// Targets holds per-group target values read from the target file.
type Targets struct {
	Group  model.Role
	Values map[string]float64
}

// ReadTargets resolves the group column ("plant" or "area") and the "target" column of
// the target table. Duplicate keys are summed; rows whose target is not a number are
// skipped so their group stays without a target.
// With key == "" the first of plant/area present in both schema and target file is used.
func ReadTargets(tbl fileio.Table, schema model.Schema, key model.Role) (Targets, error) {
	headers := NormalizeHeaders(tbl.Headers)
	keys := targetKeys
	if key != "" {
		keys = []model.Role{key}
	}

	var keyCol string
	for _, k := range keys {
		if !schema.Has(k) {
			continue
		}
		if col, ok := MatchColumn(headers, []string{string(k)}); ok {
			key, keyCol = k, col
			break
		}
	}
	valCol, hasVal := MatchColumn(headers, []string{"target"})

	var missing []model.MissingColumn
	if keyCol == "" {
		label := "Plant / Area"
		if len(keys) == 1 {
			label = keys[0].Label()
		}
		missing = append(missing, model.MissingColumn{Role: keys[0], Label: label})
	}
	if !hasVal {
		missing = append(missing, model.MissingColumn{Role: "target", Label: "Target"})
	}
	if len(missing) > 0 {
		return Targets{}, &model.MissingColumnsError{Missing: missing}
	}

	ds := model.NewDataset(headers, nil)
	ki, vi := ds.ColumnIndex(keyCol), ds.ColumnIndex(valCol)
	t := Targets{Group: key, Values: map[string]float64{}}
	for _, row := range tbl.Rows {
		k := strings.TrimSpace(row[ki])
		if k == "" {
			continue
		}
		v, ok := utils.ParseNumber(row[vi])
		if !ok {
			continue
		}
		t.Values[k] += v
	}
	return t, nil
}

// MergeTargets left-joins targets onto actual values, keeping the actual order.
// Groups without a target get a nil Target, never 0.
func MergeTargets(actual []model.GroupValue, t Targets) model.TargetComparison {
	rows := make([]model.TargetRow, 0, len(actual))
	for _, a := range actual {
		row := model.TargetRow{Key: a.Key, Actual: a.Value}
		if v, ok := t.Values[a.Key]; ok {
			tv := v
			row.Target = &tv
			if v > 0 {
				pct := a.Value / v * 100
				row.Achievement = &pct
			}
		}
		rows = append(rows, row)
	}
	return model.TargetComparison{Group: t.Group, Rows: rows}
}
