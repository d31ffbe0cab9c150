package output

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"schemasync/internal/diff"
	"schemasync/internal/failure"
	"schemasync/internal/schema"
)

// Report is the machine-readable summary of a generate run.
type Report struct {
	GeneratedAt time.Time     `yaml:"generated_at"`
	Source      string        `yaml:"source"`
	Target      string        `yaml:"target"`
	Script      string        `yaml:"script"`
	Tables      []ReportEntry `yaml:"tables"`
	Procedures  []ReportEntry `yaml:"procedures"`
	Totals      ReportTotals  `yaml:"totals"`
	Dependency  *ReportObject `yaml:"dependency,omitempty"`
}

type ReportEntry struct {
	Kind   string `yaml:"kind"`
	Object string `yaml:"object"`
	Column string `yaml:"column,omitempty"`
	Reason string `yaml:"reason,omitempty"`
}

type ReportTotals struct {
	MissingTables        int `yaml:"missing_tables"`
	MissingColumns       int `yaml:"missing_columns"`
	ColumnMismatches     int `yaml:"column_mismatches"`
	MissingProcedures    int `yaml:"missing_procedures"`
	MismatchedProcedures int `yaml:"mismatched_procedures"`
	UnreadableProcedures int `yaml:"unreadable_procedures"`
}

type ReportObject struct {
	Name  string `yaml:"name"`
	Found bool   `yaml:"found"`
	Kind  string `yaml:"kind,omitempty"`
}

// NewReport summarizes the discrepancies of one run.
func NewReport(source, target, scriptPath string, at time.Time, tables []diff.Discrepancy, procs *diff.ProcedureResult, dep *schema.ObjectInfo) *Report {
	r := &Report{
		GeneratedAt: at,
		Source:      source,
		Target:      target,
		Script:      scriptPath,
	}
	for _, d := range tables {
		r.Tables = append(r.Tables, entryOf(d))
		switch d.Kind {
		case diff.MissingTable:
			r.Totals.MissingTables++
		case diff.MissingColumn:
			r.Totals.MissingColumns++
		case diff.ColumnMismatch:
			r.Totals.ColumnMismatches++
		}
	}
	if procs != nil {
		for _, d := range procs.Discrepancies {
			r.Procedures = append(r.Procedures, entryOf(d))
		}
		r.Totals.MissingProcedures = procs.Missing
		r.Totals.MismatchedProcedures = procs.Mismatched
		r.Totals.UnreadableProcedures = procs.Unreadable
	}
	if dep != nil {
		r.Dependency = &ReportObject{Name: dep.Name, Found: dep.Found, Kind: dep.Kind}
	}
	return r
}

func entryOf(d diff.Discrepancy) ReportEntry {
	return ReportEntry{
		Kind:   d.Kind.String(),
		Object: d.Object,
		Column: d.Column,
		Reason: strings.TrimSpace(d.Reason),
	}
}

// WriteReport encodes r as YAML into path.
func WriteReport(path string, r *Report) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return failure.NewFileWrite(fmt.Sprintf("write %s", path), err)
	}
	return nil
}
