package model

import (
	"fmt"
	"strings"
)

// Error codes returned in JSON error bodies.
const (
	CodeFileRead      = "FILE_READ"
	CodeFileSize      = "FILE_SIZE_OUT_OF_RANGE"
	CodeMissingColumn = "MISSING_REQUIRED_COLUMN"
	CodeValidation    = "VALIDATION"
	CodeBusy          = "BUSY"
)

// FileReadError: the upload could not be parsed as a spreadsheet.
type FileReadError struct {
	File string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.File, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// FileSizeError: the upload was rejected by the size gate before parsing.
type FileSizeError struct {
	File string
	Size int64
	Min  int64
	Max  int64
}

func (e *FileSizeError) Error() string {
	return fmt.Sprintf("%s: size %s outside allowed range %s-%s",
		e.File, humanBytes(e.Size), humanBytes(e.Min), humanBytes(e.Max))
}

// MissingColumn describes one unresolved mandatory role.
type MissingColumn struct {
	Role       Role   `json:"role"`
	Label      string `json:"label"`
	Suggestion string `json:"suggestion,omitempty"`
}

// MissingColumnsError lists every mandatory role that has no column.
type MissingColumnsError struct {
	File    string
	Missing []MissingColumn
}

func (e *MissingColumnsError) Error() string {
	names := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		names[i] = m.Label
		if m.Suggestion != "" {
			names[i] += fmt.Sprintf(" (closest header: %q)", m.Suggestion)
		}
	}
	msg := "missing required columns: " + strings.Join(names, ", ")
	if e.File != "" {
		msg = e.File + ": " + msg
	}
	return msg
}

// Labels returns the human-readable labels of the missing roles.
func (e *MissingColumnsError) Labels() []string {
	out := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		out[i] = m.Label
	}
	return out
}

func humanBytes(n int64) string {
	const mb = 1024 * 1024
	if n >= mb {
		return fmt.Sprintf("%.1fMB", float64(n)/mb)
	}
	return fmt.Sprintf("%.1fKB", float64(n)/1024)
}
