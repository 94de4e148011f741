package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"delivery-report/internal/report/model"
)

func filterFixture(t *testing.T) Prepared {
	return prepare(t, fullHeaders, [][]string{
		{"2025-01-01", "10", "S1", "T1", "North", "P1", "4", "K1", "C1"},
		{"2025-01-02 17:30:00", "20", "S2", "T2", "North", "P2", "5", "K2", "C2"},
		{"2025-01-03", "30", "S1", "T3", "South", "P3", "6", "K1", "C1"},
		{"2025-01-04", "40", "S2", "T4", "South", "P1", "7", "K3", "C3"},
	})
}

func TestFilter_InclusiveDateRange(t *testing.T) {
	p := filterFixture(t)
	start, end := date(2025, 1, 2), date(2025, 1, 3)
	view := Filter(p.Data, p.Schema, model.Query{Start: &start, End: &end})
	require.Equal(t, 2, view.Len())
	require.Equal(t, 20.0, view.Records[0].Qty)
	require.Equal(t, 30.0, view.Records[1].Qty)
}

func TestFilter_AreaPlantAndAllSentinel(t *testing.T) {
	p := filterFixture(t)

	view := Filter(p.Data, p.Schema, model.Query{Areas: []string{"South"}})
	require.Equal(t, 2, view.Len())

	view = Filter(p.Data, p.Schema, model.Query{Areas: []string{"South"}, Plants: []string{"P1"}})
	require.Equal(t, 1, view.Len())
	require.Equal(t, 40.0, view.Records[0].Qty)

	view = Filter(p.Data, p.Schema, model.Query{Areas: []string{"all"}, Plants: []string{"All"}})
	require.Equal(t, 4, view.Len())

	view = Filter(p.Data, p.Schema, model.Query{Areas: []string{"North", "South"}, Customers: []string{"C1"}})
	require.Equal(t, 2, view.Len())

	view = Filter(p.Data, p.Schema, model.Query{Trucks: []string{"K1"}, Salesmen: []string{"S1"}})
	require.Equal(t, 2, view.Len())

	view = Filter(p.Data, p.Schema, model.Query{Areas: []string{"West"}})
	require.Zero(t, view.Len())
}

func TestFilter_IgnoresUnresolvedRole(t *testing.T) {
	p := prepare(t, []string{"DP Date", "Qty", "Sales Man", "Trip No"}, [][]string{
		{"2025-01-01", "10", "S1", "T1"},
	})
	view := Filter(p.Data, p.Schema, model.Query{Areas: []string{"North"}})
	require.Equal(t, 1, view.Len())
}

func TestFilterOptions_PlantsCascadeFromArea(t *testing.T) {
	p := filterFixture(t)

	opt := FilterOptions(p.Data, p.Schema, nil)
	require.Equal(t, []string{"North", "South"}, opt.Areas)
	require.Equal(t, []string{"P1", "P2", "P3"}, opt.Plants)
	require.Equal(t, []string{"K1", "K2", "K3"}, opt.Trucks)
	require.True(t, date(2025, 1, 1).Equal(*opt.MinDate))
	require.True(t, date(2025, 1, 4).Equal(*opt.MaxDate))

	opt = FilterOptions(p.Data, p.Schema, []string{"North"})
	require.Equal(t, []string{"North", "South"}, opt.Areas)
	require.Equal(t, []string{"P1", "P2"}, opt.Plants)

	opt = FilterOptions(p.Data, p.Schema, []string{"All"})
	require.Equal(t, []string{"P1", "P2", "P3"}, opt.Plants)
}

func TestFilter_OffsetTimestampStaysOnItsDay(t *testing.T) {
	p := prepare(t, []string{"DP Date", "Qty", "Sales Man", "Trip No"}, [][]string{
		{"2025-01-01T23:00:00-05:00", "100", "S", "T1"},
	})
	rep, view, err := Run(p, model.Query{}, nil)
	require.NoError(t, err)
	require.Equal(t, 1, view.Len())
	require.False(t, rep.Empty)
	require.Equal(t, date(2025, 1, 1), *rep.Start)
	require.Equal(t, date(2025, 1, 1), *rep.End)
	require.Equal(t, []model.GroupValue{{Key: "2025-01-01", Value: 100}}, rep.Daily)

	start := date(2025, 1, 1)
	view = Filter(p.Data, p.Schema, model.Query{Start: &start, End: &start})
	require.Equal(t, 1, view.Len())
}

func TestFilter_CreatedBy(t *testing.T) {
	p := prepare(t, []string{"DP Date", "Qty", "Sales Man", "Trip No", "Create By"}, [][]string{
		{"2025-01-01", "10", "S1", "T1", "admin"},
		{"2025-01-01", "20", "S1", "T2", "budi"},
		{"2025-01-02", "30", "S2", "T3", "admin"},
	})
	view := Filter(p.Data, p.Schema, model.Query{Creators: []string{"admin"}})
	require.Equal(t, 2, view.Len())
	require.Equal(t, 30.0, view.Records[1].Qty)

	opt := FilterOptions(p.Data, p.Schema, nil)
	require.Equal(t, []string{"admin", "budi"}, opt.Creators)
}
