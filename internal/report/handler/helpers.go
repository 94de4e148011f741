package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"delivery-report/internal/config"
	"delivery-report/internal/fileio"
	"delivery-report/internal/report/model"
)

var validate = validator.New()

// reportForm holds the non-file form fields shared by every report endpoint.
type reportForm struct {
	HeaderRow       int    `validate:"gte=1,lte=1000"`
	TargetHeaderRow int    `validate:"gte=1,lte=1000"`
	Start           string `validate:"omitempty,datetime=2006-01-02"`
	End             string `validate:"omitempty,datetime=2006-01-02"`
	TargetKey       string `validate:"omitempty,oneof=plant area"`
	Areas           []string
	Plants          []string
	Customers       []string
	Trucks          []string
	Salesmen        []string
	Creators        []string
}

func parseForm(r *http.Request) reportForm {
	return reportForm{
		HeaderRow:       atoi(r.FormValue("header_row"), 1),
		TargetHeaderRow: atoi(r.FormValue("target_header_row"), 1),
		Start:           strings.TrimSpace(r.FormValue("start")),
		End:             strings.TrimSpace(r.FormValue("end")),
		TargetKey:       strings.ToLower(strings.TrimSpace(r.FormValue("target_key"))),
		Areas:           formValues(r, "area"),
		Plants:          formValues(r, "plant"),
		Customers:       formValues(r, "customer"),
		Trucks:          formValues(r, "truck"),
		Salesmen:        formValues(r, "salesman"),
		Creators:        formValues(r, "create_by"),
	}
}

// formValues collects repeated fields; a single comma-separated value is split too.
func formValues(r *http.Request, key string) []string {
	var out []string
	for _, v := range r.Form[key] {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// validationError is a bad form field; surfaced as 400 VALIDATION.
type validationError struct{ msg string }

func (e *validationError) Error() string { return e.msg }

// query validates the form and converts it into a filter query.
func (f reportForm) query() (model.Query, error) {
	if err := validate.Struct(f); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			fe := ve[0]
			return model.Query{}, &validationError{fmt.Sprintf("invalid %s: %s=%s", strings.ToLower(fe.Field()), fe.Tag(), fe.Param())}
		}
		return model.Query{}, &validationError{err.Error()}
	}
	q := model.Query{
		Areas:     f.Areas,
		Plants:    f.Plants,
		Customers: f.Customers,
		Trucks:    f.Trucks,
		Salesmen:  f.Salesmen,
		Creators:  f.Creators,
	}
	if f.Start != "" {
		t, _ := time.Parse("2006-01-02", f.Start)
		q.Start = &t
	}
	if f.End != "" {
		t, _ := time.Parse("2006-01-02", f.End)
		q.End = &t
	}
	if q.Start != nil && q.End != nil && q.End.Before(*q.Start) {
		return model.Query{}, &validationError{"invalid range: end is before start"}
	}
	return q, nil
}

// sizeBounds is the accepted upload size range in bytes.
type sizeBounds struct{ min, max int64 }

func dataBounds(cfg config.Config) sizeBounds {
	return sizeBounds{cfg.MinUploadBytes(), cfg.MaxUploadBytes()}
}

func targetBounds(cfg config.Config) sizeBounds {
	return sizeBounds{cfg.TargetMinUploadBytes(), cfg.TargetMaxUploadBytes()}
}

// readUpload applies the size gate and parses the first sheet of an uploaded file.
func readUpload(b sizeBounds, file multipart.File, hdr *multipart.FileHeader, headerRow int) (fileio.Table, error) {
	if hdr.Size < b.min || hdr.Size > b.max {
		return fileio.Table{}, &model.FileSizeError{File: hdr.Filename, Size: hdr.Size, Min: b.min, Max: b.max}
	}
	tbl, err := fileio.ReadTable(file, hdr.Filename, headerRow)
	if err != nil {
		return fileio.Table{}, &model.FileReadError{File: hdr.Filename, Err: err}
	}
	return tbl, nil
}

type errorBody struct {
	Code    string                `json:"code"`
	Error   string                `json:"error"`
	Missing []model.MissingColumn `json:"missing,omitempty"`
}

// writeError maps the error taxonomy onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	body := errorBody{Error: err.Error()}
	status := http.StatusInternalServerError

	var (
		readErr    *model.FileReadError
		sizeErr    *model.FileSizeError
		missingErr *model.MissingColumnsError
		valErr     *validationError
		maxErr     *http.MaxBytesError
	)
	switch {
	case errors.As(err, &sizeErr):
		status, body.Code = http.StatusRequestEntityTooLarge, model.CodeFileSize
	case errors.As(err, &maxErr):
		status, body.Code = http.StatusRequestEntityTooLarge, model.CodeFileSize
	case errors.As(err, &readErr):
		status, body.Code = http.StatusBadRequest, model.CodeFileRead
	case errors.As(err, &missingErr):
		status, body.Code = http.StatusUnprocessableEntity, model.CodeMissingColumn
		body.Missing = missingErr.Missing
	case errors.As(err, &valErr):
		status, body.Code = http.StatusBadRequest, model.CodeValidation
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
