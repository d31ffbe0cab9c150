package script

import (
	"time"

	"schemasync/internal/diff"
)

const (
	TableSection     = "SECTION 1: TABLE SYNCHRONIZATION"
	ProcedureSection = "SECTION 2: STORED PROCEDURE SYNCHRONIZATION"
)

// Framing is what the assembler needs from a dialect.
type Framing interface {
	SafetyGuard(expectedHost string) string
	UseDatabase(name string) string
	BatchSeparator() string
}

// Header describes the run for the comment block at the top of the script.
type Header struct {
	Source         string // display label, e.g. "127.0.0.1 [SourceDB]"
	Target         string
	TargetDatabase string
	TargetAddress  string // the only host the script may run on
	GeneratedAt    time.Time
}

// Assemble builds the full script: header comments, the safety guard as
// the first executable statement, USE, then the table and procedure
// sections. Every remedy statement is followed by the batch separator.
func Assemble(f Framing, h Header, tables, procedures []diff.Discrepancy) *Script {
	s := &Script{}
	sep := f.BatchSeparator()

	s.Comment("Full Synchronization Script: Host A -> Host B")
	s.Comment("Source: %s", h.Source)
	s.Comment("Target: %s", h.Target)
	s.Comment("Generated at: %s", h.GeneratedAt.Format(time.RFC3339))

	s.Statement(f.SafetyGuard(h.TargetAddress))
	s.Separator(sep)
	s.Blank()

	if use := f.UseDatabase(h.TargetDatabase); use != "" {
		s.Statement(use)
		s.Separator(sep)
		s.Blank()
	}

	s.Banner(TableSection)
	if len(tables) == 0 {
		s.Comment("No table differences found.")
	}
	for _, d := range tables {
		writeDiscrepancy(s, d, sep)
	}

	s.Blank()
	s.Banner(ProcedureSection)
	if len(procedures) == 0 {
		s.Comment("No stored procedure differences found.")
	}
	for _, d := range procedures {
		writeDiscrepancy(s, d, sep)
		s.Statement(procRule)
	}
	return s
}

func writeDiscrepancy(s *Script, d diff.Discrepancy, sep string) {
	switch d.Kind {
	case diff.MissingTable:
		s.Comment("[%s] Creating %s", d.Kind, d.Object)
	case diff.MissingColumn:
		s.Comment("[%s] Adding %s to %s", d.Kind, d.Column, d.Object)
	case diff.ColumnMismatch:
		s.Comment("[%s] Updating %s in %s Reason:%s", d.Kind, d.Column, d.Object, d.Reason)
	case diff.UnreadableProcedure:
		s.Comment("[%s] Skipping %s: %s", d.Kind, d.Object, d.Reason)
	default:
		s.Comment("Syncing %s (%s)", d.Object, d.Reason)
	}

	if d.Statement == "" {
		return
	}
	s.Statement(d.Statement)
	for _, note := range d.Notes {
		s.Comment("%s", note)
	}
	s.Separator(sep)
}
