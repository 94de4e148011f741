package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"delivery-report/internal/config"
	"delivery-report/internal/fileio"
	"delivery-report/internal/middleware"
	"delivery-report/internal/report/chart"
	"delivery-report/internal/report/model"
	"delivery-report/internal/report/service"
)

// multipartMemory is kept in RAM while parsing; larger parts spill to temp files.
const multipartMemory = 32 << 20

type result struct {
	prepared service.Prepared
	report   model.Report
	view     model.Dataset
}

// process runs one upload through the whole pipeline: size gate, read, resolve,
// validate, coerce, filter, aggregate and the optional target merge.
func process(cfg config.Config, log zerolog.Logger, r *http.Request) (result, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return result{}, err
		}
		return result{}, &validationError{"bad multipart form: " + err.Error()}
	}
	form := parseForm(r)
	q, err := form.query()
	if err != nil {
		return result{}, err
	}

	file, hdr, err := r.FormFile("file")
	if err != nil {
		return result{}, &validationError{"missing file: " + err.Error()}
	}
	defer file.Close()

	tbl, err := readUpload(dataBounds(cfg), file, hdr, form.HeaderRow)
	if err != nil {
		return result{}, err
	}

	aliases := model.DefaultAliases().WithOverrides(cfg.Aliases)
	p, err := service.Prepare(tbl, aliases)
	if err != nil {
		var mce *model.MissingColumnsError
		if errors.As(err, &mce) {
			mce.File = hdr.Filename
		}
		return result{}, err
	}
	log.Debug().
		Str("file", hdr.Filename).
		Interface("schema", p.Schema.Map()).
		Int("rows", p.RowsRead).
		Int("dropped_invalid_date", p.RowsDropped).
		Msg("upload resolved")

	var target *service.TargetInput
	tf, thdr, err := r.FormFile("target")
	switch {
	case err == nil:
		defer tf.Close()
		ttbl, err := readUpload(targetBounds(cfg), tf, thdr, form.TargetHeaderRow)
		if err != nil {
			return result{}, err
		}
		target = &service.TargetInput{Table: ttbl, Key: model.Role(form.TargetKey)}
	case !errors.Is(err, http.ErrMissingFile):
		return result{}, &validationError{"bad target file: " + err.Error()}
	}

	rep, view, err := service.Run(p, q, target)
	if err != nil {
		var mce *model.MissingColumnsError
		if errors.As(err, &mce) && thdr != nil {
			mce.File = thdr.Filename
		}
		return result{}, err
	}
	return result{prepared: p, report: rep, view: view}, nil
}

func requestLogger(logger zerolog.Logger, r *http.Request) zerolog.Logger {
	if rid := middleware.GetRequestID(r); rid != "" {
		return logger.With().Str("req_id", rid).Logger()
	}
	return logger
}

// Report returns the resolved schema, KPI summary, breakdowns and target comparison as JSON.
func Report(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := requestLogger(logger, r)

		res, err := process(cfg, log, r)
		if err != nil {
			log.Warn().Err(err).Msg("report failed")
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res.report)

		log.Info().
			Int("rows", res.report.RowsRead).
			Int("matched", res.report.RowsMatched).
			Bool("empty", res.report.Empty).
			Bool("target", res.report.Target != nil).
			Dur("elapsed", time.Since(start)).
			Msg("report done")
	}
}

// Dashboard renders the KPI cards and charts as an HTML page.
func Dashboard(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := requestLogger(logger, r)

		res, err := process(cfg, log, r)
		if err != nil {
			log.Warn().Err(err).Msg("dashboard failed")
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		if err := chart.RenderDashboard(w, res.report); err != nil {
			log.Error().Err(err).Msg("render dashboard")
			return
		}
		log.Info().
			Int("matched", res.report.RowsMatched).
			Dur("elapsed", time.Since(start)).
			Msg("dashboard done")
	}
}

// Export streams the filtered rows back as an xlsx workbook.
func Export(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := requestLogger(logger, r)

		res, err := process(cfg, log, r)
		if err != nil {
			log.Warn().Err(err).Msg("export failed")
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="filtered_report.xlsx"`)
		if err := fileio.WriteXLSX(w, "Report", res.prepared.Columns, exportRows(res.prepared, res.view)); err != nil {
			log.Error().Err(err).Msg("write xlsx")
			return
		}
		log.Info().
			Int("rows", res.view.Len()).
			Dur("elapsed", time.Since(start)).
			Msg("export done")
	}
}

// exportRows writes the coerced date and quantity in place of their raw cells.
func exportRows(p service.Prepared, view model.Dataset) [][]any {
	dateCol, _ := p.Schema.Column(model.RoleDate)
	qtyCol, _ := p.Schema.Column(model.RoleQuantity)
	di, qi := view.ColumnIndex(dateCol), view.ColumnIndex(qtyCol)

	rows := make([][]any, len(view.Records))
	for i, rec := range view.Records {
		row := make([]any, len(rec.Cells))
		for c, v := range rec.Cells {
			switch c {
			case di:
				row[c] = rec.Date
			case qi:
				row[c] = rec.Qty
			default:
				row[c] = v
			}
		}
		rows[i] = row
	}
	return rows
}
