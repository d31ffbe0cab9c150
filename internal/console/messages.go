package console

// Messages holds every user-facing line the presenter prints. Format
// verbs are documented next to each field.
type Messages struct {
	Title         string
	Comparing     string
	SourceLine    string // host label
	TargetLine    string // host label
	GuardLine     string // address
	Rule          string
	Loaded        string // columns, procedures, host
	TableStart    string
	MissingTable  string // table
	MissingColumn string // table.column
	Mismatch      string // table.column, reason
	TablesInSync  string
	ProcStart     string
	MissingProc   string // procedure
	ProcMismatch  string // procedure
	ProcSkipped   string // procedure
	ProcsInSync   string
	ProcTotals    string // missing, mismatched
	ProcDetails   string
	ProcUnread    string // count
	DiffFiles     string // directory
	DepStart      string // object
	DepFound      string // object, kind
	DepMissing    string // object
	DepMissingTip string
	DoneRule      string
	Generated     string // absolute path
	Review        string
	Failed        string // error
}

// DefaultMessages is the English text set.
var DefaultMessages = Messages{
	Title:         "=== Database Schema Comparer (A -> B) ===",
	Comparing:     "Comparing:",
	SourceLine:    "  Source (A): %s",
	TargetLine:    "  Target (B): %s",
	GuardLine:     "  Target Server IP for Script Safety: %s",
	Rule:          "-------------------------------------------",
	Loaded:        "Loaded %d columns and %d procedures from %s.",
	TableStart:    "--- Table Schema Comparison ---",
	MissingTable:  "[Missing Table] %s exists in A but NOT in B. (Generating CREATE TABLE)",
	MissingColumn: "[Missing Column] %s exists in A but NOT in B. (Generating ADD COLUMN)",
	Mismatch:      "[Mismatch]       %s ->%s (Generating ALTER COLUMN)",
	TablesInSync:  "No Table Schema discrepancies found! Host B matches Host A.",
	ProcStart:     "--- Stored Procedure Comparison ---",
	MissingProc:   "[Missing SP] %s exists in A but NOT in B.",
	ProcMismatch:  "[Content Mismatch] %s content is different.",
	ProcSkipped:   "[Unreadable SP] %s has no readable definition in A (encrypted or no permission). Skipped.",
	ProcsInSync:   "No Stored Procedure discrepancies found! Everything is in sync.",
	ProcTotals:    "Found %d missing and %d mismatched procedures.",
	ProcDetails:   "Details and sync SQL have been generated.",
	ProcUnread:    "%d procedures could not be read from Host A and must be synced by hand.",
	DiffFiles:     "Mismatched definitions saved in %s as <schema>.<procedure>_A.sql (Host A) and _B.sql (Host B):",
	DepStart:      "--- Deep Check for dependency '%s' in Host A ---",
	DepFound:      "Found '%s' in Host A! It is a: %s",
	DepMissing:    "'%s' does NOT exist in Host A either.",
	DepMissingTip: "This means the source code in A is also referencing a missing object.",
	DoneRule:      "==================================================",
	Generated:     "FULL SYNC SCRIPT GENERATED: %s",
	Review:        "Please review the script carefully before running it on Host B!",
	Failed:        "An error occurred: %v",
}
