package model

import (
	"strings"
	"time"
)

// Role is a semantic column the dashboard understands, independent of the header text.
type Role string

const (
	RoleDate     Role = "date"
	RoleQuantity Role = "quantity"
	RoleSalesman Role = "salesman"
	RoleTripID   Role = "trip_id"
	RoleArea     Role = "area"
	RolePlant    Role = "plant"
	RoleDistance Role = "distance"
	RoleTruck    Role = "truck"
	RoleCustomer Role = "customer"
	RoleCreator  Role = "created_by"
)

// Roles lists every role in resolution order.
var Roles = []Role{
	RoleDate, RoleQuantity, RoleSalesman, RoleTripID,
	RoleArea, RolePlant, RoleDistance, RoleTruck, RoleCustomer, RoleCreator,
}

// Required roles must resolve to a real column or the upload is rejected.
var Required = []Role{RoleDate, RoleQuantity, RoleSalesman, RoleTripID}

var labels = map[Role]string{
	RoleDate:     "DP Date",
	RoleQuantity: "Qty",
	RoleSalesman: "Sales Man",
	RoleTripID:   "Trip No",
	RoleArea:     "Area",
	RolePlant:    "Plant Name",
	RoleDistance: "Distance",
	RoleTruck:    "Truck No",
	RoleCustomer: "End Customer Name",
	RoleCreator:  "Create By",
}

// Label is the human-readable name used in messages and chart titles.
func (r Role) Label() string {
	if l, ok := labels[r]; ok {
		return l
	}
	return string(r)
}

// Aliases maps a role to its ordered header candidates (lowercase, whitespace-normalized).
// Earlier entries win.
type Aliases map[Role][]string

// DefaultAliases returns a fresh copy of the built-in alias lists.
func DefaultAliases() Aliases {
	return Aliases{
		RoleDate:     {"dp date", "delivery date", "dp_date", "tanggal dp", "date"},
		RoleQuantity: {"qty", "quantity", "volume", "vol"},
		RoleSalesman: {"sales man", "salesman", "sales name", "sales"},
		RoleTripID:   {"trip no", "trip id", "trip number", "no trip", "trip"},
		RoleArea:     {"area", "region"},
		RolePlant:    {"plant name", "plant"},
		RoleDistance: {"distance", "jarak"},
		RoleTruck:    {"truck no", "truck", "vehicle no", "nopol"},
		RoleCustomer: {"end customer name", "end customer", "customer name", "customer"},
		RoleCreator:  {"create by", "created by", "creator"},
	}
}

// WithOverrides replaces alias lists for the roles named in m; unknown roles are ignored.
func (a Aliases) WithOverrides(m map[string][]string) Aliases {
	out := make(Aliases, len(a))
	for k, v := range a {
		out[k] = v
	}
	for _, r := range Roles {
		if v, ok := m[string(r)]; ok && len(v) > 0 {
			out[r] = v
		}
	}
	return out
}

// Schema is the resolved column map: role -> normalized header. Immutable once built.
type Schema struct {
	cols map[Role]string
}

func NewSchema(cols map[Role]string) Schema {
	c := make(map[Role]string, len(cols))
	for k, v := range cols {
		c[k] = v
	}
	return Schema{cols: c}
}

// Column returns the header resolved for role.
func (s Schema) Column(r Role) (string, bool) {
	c, ok := s.cols[r]
	return c, ok
}

func (s Schema) Has(r Role) bool {
	_, ok := s.cols[r]
	return ok
}

// Map returns a copy suitable for JSON output.
func (s Schema) Map() map[Role]string {
	out := make(map[Role]string, len(s.cols))
	for k, v := range s.cols {
		out[k] = v
	}
	return out
}

// Record is one coerced row: parsed date and quantity plus the original cells.
type Record struct {
	Date  time.Time
	Qty   float64
	Cells []string
}

// Dataset is a coerced table addressed by normalized header.
type Dataset struct {
	Headers []string
	Records []Record
	index   map[string]int
}

func NewDataset(headers []string, records []Record) Dataset {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	return Dataset{Headers: headers, Records: records, index: idx}
}

// WithRecords returns a dataset sharing headers with d.
func (d Dataset) WithRecords(records []Record) Dataset {
	return Dataset{Headers: d.Headers, Records: records, index: d.index}
}

func (d Dataset) Len() int { return len(d.Records) }

// ColumnIndex returns the position of a normalized header, or -1.
func (d Dataset) ColumnIndex(header string) int {
	if i, ok := d.index[header]; ok {
		return i
	}
	return -1
}

// Value returns the trimmed cell of record i for role, or "" when the role is unresolved.
func (d Dataset) Value(s Schema, i int, r Role) string {
	col, ok := s.Column(r)
	if !ok {
		return ""
	}
	c := d.ColumnIndex(col)
	if c < 0 || c >= len(d.Records[i].Cells) {
		return ""
	}
	return strings.TrimSpace(d.Records[i].Cells[c])
}

// Query is the active filter selection. Empty slices and the "All" sentinel disable a filter.
type Query struct {
	Start     *time.Time
	End       *time.Time
	Areas     []string
	Plants    []string
	Customers []string
	Trucks    []string
	Salesmen  []string
	Creators  []string
}

// Options lists the selectable filter values for the current dataset.
type Options struct {
	MinDate   *time.Time `json:"minDate,omitempty"`
	MaxDate   *time.Time `json:"maxDate,omitempty"`
	Areas     []string   `json:"areas"`
	Plants    []string   `json:"plants"`
	Customers []string   `json:"customers"`
	Trucks    []string   `json:"trucks"`
	Salesmen  []string   `json:"salesmen"`
	Creators  []string   `json:"creators"`
}

// Summary holds the KPI cards of the current filtered view.
type Summary struct {
	TotalArea       int     `json:"totalArea"`
	TotalPlant      int     `json:"totalPlant"`
	TotalVolume     float64 `json:"totalVolume"`
	TotalTruck      int     `json:"totalTruck"`
	TotalTrip       int     `json:"totalTrip"`
	DaySpan         int     `json:"daySpan"`
	AvgVolumePerDay float64 `json:"avgVolumePerDay"`
	AvgLoadPerTrip  float64 `json:"avgLoadPerTrip"`
}

type Agg string

const (
	AggSum     Agg = "sum"
	AggMean    Agg = "mean"
	AggNUnique Agg = "nunique"
	AggCount   Agg = "count"
)

type ChartKind string

const (
	ChartBar  ChartKind = "bar"
	ChartLine ChartKind = "line"
	ChartPie  ChartKind = "pie"
)

// BreakdownSpec declares one grouped chart: aggregate Measure with Agg per Group value.
type BreakdownSpec struct {
	Key     string
	Title   string
	Group   Role
	Measure Role
	Agg     Agg
	Chart   ChartKind
}

type GroupValue struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

type Breakdown struct {
	Key    string       `json:"key"`
	Title  string       `json:"title"`
	Group  Role         `json:"group"`
	Agg    Agg          `json:"agg"`
	Chart  ChartKind    `json:"chart"`
	Values []GroupValue `json:"values"`
}

// TargetRow is one actual-vs-target line; Target is nil when the target file has no entry.
type TargetRow struct {
	Key         string   `json:"key"`
	Actual      float64  `json:"actual"`
	Target      *float64 `json:"target"`
	Achievement *float64 `json:"achievement,omitempty"`
}

type TargetComparison struct {
	Group Role        `json:"group"`
	Rows  []TargetRow `json:"rows"`
}

// Report is everything the dashboard renders for one upload + filter selection.
type Report struct {
	Schema      map[Role]string   `json:"schema"`
	RowsRead    int               `json:"rowsRead"`
	RowsDropped int               `json:"rowsDropped"`
	RowsMatched int               `json:"rowsMatched"`
	Start       *time.Time        `json:"start,omitempty"`
	End         *time.Time        `json:"end,omitempty"`
	Options     Options           `json:"options"`
	Summary     Summary           `json:"summary"`
	Daily       []GroupValue      `json:"daily"`
	Breakdowns  []Breakdown       `json:"breakdowns"`
	Stats       []ColumnStats     `json:"stats"`
	Target      *TargetComparison `json:"target,omitempty"`
	Empty       bool              `json:"empty"`
	Message     string            `json:"message,omitempty"`
}

// ColumnStats describes one resolved column of the filtered view. Count and Unique
// ignore blank cells. Min, Max and Mean are set for numeric columns only, and
// FirstDate/LastDate for the date column.
type ColumnStats struct {
	Role      Role       `json:"role"`
	Column    string     `json:"column"`
	Count     int        `json:"count"`
	Unique    int        `json:"unique"`
	Top       string     `json:"top,omitempty"`
	TopFreq   int        `json:"topFreq,omitempty"`
	Min       *float64   `json:"min,omitempty"`
	Max       *float64   `json:"max,omitempty"`
	Mean      *float64   `json:"mean,omitempty"`
	FirstDate *time.Time `json:"firstDate,omitempty"`
	LastDate  *time.Time `json:"lastDate,omitempty"`
}
