package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"delivery-report/internal/report/model"
)

func TestDescribe(t *testing.T) {
	p := prepare(t, []string{"DP Date", "Qty", "Sales Man", "Trip No", "Distance", "Create By"}, [][]string{
		{"2025-01-01", "10", "S1", "T1", "4", "admin"},
		{"2025-01-01", "20", "S2", "T2", "n/a", "admin"},
		{"2025-01-03", "30", "S1", "T3", "8", ""},
	})
	stats := Describe(p.Data, p.Schema)

	byRole := map[model.Role]model.ColumnStats{}
	roles := make([]model.Role, len(stats))
	for i, st := range stats {
		byRole[st.Role] = st
		roles[i] = st.Role
	}
	require.Equal(t, []model.Role{
		model.RoleDate, model.RoleQuantity, model.RoleSalesman, model.RoleTripID, model.RoleDistance, model.RoleCreator,
	}, roles)

	d := byRole[model.RoleDate]
	require.Equal(t, 3, d.Count)
	require.Equal(t, 2, d.Unique)
	require.Equal(t, "2025-01-01", d.Top)
	require.Equal(t, 2, d.TopFreq)
	require.Equal(t, date(2025, 1, 1), *d.FirstDate)
	require.Equal(t, date(2025, 1, 3), *d.LastDate)

	q := byRole[model.RoleQuantity]
	require.Equal(t, 3, q.Count)
	require.Equal(t, 10.0, *q.Min)
	require.Equal(t, 30.0, *q.Max)
	require.Equal(t, 20.0, *q.Mean)

	dist := byRole[model.RoleDistance]
	require.Equal(t, 3, dist.Count)
	require.Equal(t, 4.0, *dist.Min)
	require.Equal(t, 8.0, *dist.Max)
	require.Equal(t, 6.0, *dist.Mean)

	s := byRole[model.RoleSalesman]
	require.Equal(t, 2, s.Unique)
	require.Equal(t, "S1", s.Top)
	require.Nil(t, s.Mean)

	c := byRole[model.RoleCreator]
	require.Equal(t, 2, c.Count)
	require.Equal(t, 1, c.Unique)
	require.Equal(t, "admin", c.Top)
}

func TestDescribe_EmptyView(t *testing.T) {
	p := prepare(t, []string{"DP Date", "Qty", "Sales Man", "Trip No"}, nil)
	for _, st := range Describe(p.Data, p.Schema) {
		require.Zero(t, st.Count)
		require.Nil(t, st.Mean)
		require.Nil(t, st.FirstDate)
	}
}
