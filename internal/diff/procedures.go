package diff

import (
	"strings"

	"schemasync/internal/procsql"
	"schemasync/internal/schema"
)

const (
	ReasonMissing  = "Missing in Target"
	ReasonMismatch = "Content Mismatch"

	// The catalog returned no text: an encrypted module, or a login that
	// may not read the definition.
	ReasonUnreadable = "Source definition is not readable; sync it manually"
)

// Sink receives both raw definitions of a procedure whose content differs,
// for manual inspection.
type Sink interface {
	WriteProcedurePair(source, target schema.Procedure) error
}

// ProcedureResult is the outcome of CompareProcedures.
type ProcedureResult struct {
	Discrepancies []Discrepancy
	Missing       int
	Mismatched    int
	Unreadable    int
}

type procKey struct {
	schema string
	name   string
}

// CompareProcedures diffs source procedures against target procedures
// using their normalized text. Only mismatches are handed to sink; a
// procedure missing from the target has nothing to compare against.
// Procedures that exist only in the target are ignored. A source procedure
// without readable text gets no statement at all, since recreating it from
// an empty body would drop or blank the target's copy.
func CompareProcedures(source, target []schema.Procedure, gen Generator, sink Sink) (*ProcedureResult, error) {
	targetProcs := make(map[procKey]schema.Procedure, len(target))
	for _, p := range target {
		targetProcs[procKey{p.Schema, p.Name}] = p
	}

	res := &ProcedureResult{}
	for _, src := range source {
		d := Discrepancy{
			Schema: src.Schema,
			Table:  src.Name,
			Object: gen.QualifiedName(src.Schema, src.Name),
		}

		tgt, ok := targetProcs[procKey{src.Schema, src.Name}]
		switch {
		case strings.TrimSpace(src.Definition) == "":
			d.Kind = UnreadableProcedure
			d.Reason = ReasonUnreadable
			res.Unreadable++
			res.Discrepancies = append(res.Discrepancies, d)
			continue
		case !ok:
			d.Kind = MissingProcedure
			d.Reason = ReasonMissing
			res.Missing++
		case !procsql.Equal(src.Definition, tgt.Definition):
			d.Kind = ProcedureMismatch
			d.Reason = ReasonMismatch
			res.Mismatched++
			if sink != nil {
				if err := sink.WriteProcedurePair(src, tgt); err != nil {
					return nil, err
				}
			}
		default:
			continue
		}

		d.Statement = gen.IdempotentProcedure(src)
		res.Discrepancies = append(res.Discrepancies, d)
	}
	return res, nil
}
