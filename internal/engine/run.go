package engine

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"

	"schemasync/internal/conn"
	"schemasync/internal/dialect"
	"schemasync/internal/diff"
	"schemasync/internal/output"
	"schemasync/internal/schema"
	"schemasync/internal/script"
)

// Phase is one step of a generate run, reported through Runner.OnPhase.
type Phase int

const (
	ReadSource Phase = iota + 1
	ReadTarget
	CompareTables
	CompareProcedures
	WriteScript
	CheckDependency
)

// PhaseCount is the number of phases a full run reports.
const PhaseCount = int(CheckDependency)

func (p Phase) String() string {
	switch p {
	case ReadSource:
		return "reading source"
	case ReadTarget:
		return "reading target"
	case CompareTables:
		return "comparing tables"
	case CompareProcedures:
		return "comparing procedures"
	case WriteScript:
		return "writing script"
	case CheckDependency:
		return "checking dependency"
	default:
		return "unknown"
	}
}

type Options struct {
	Source conn.Target
	Target conn.Target

	TargetAddress string // host the generated script is allowed to run on
	CheckObject   string // spot-checked in the source when non-empty
	OutputPath    string
	DiffDir       string

	Now func() time.Time
}

// Loaded counts what was read from one instance.
type Loaded struct {
	Columns    int
	Procedures int
}

type Result struct {
	ScriptPath  string
	GeneratedAt time.Time

	Source Loaded
	Target Loaded

	Tables     []diff.Discrepancy
	Procedures *diff.ProcedureResult
	DiffFiles  []string
	Dependency *schema.ObjectInfo
}

// Runner executes the generate cycle. Connections are opened one at a
// time and closed before the next phase starts.
type Runner struct {
	Open    conn.Opener
	Log     *zap.Logger
	OnPhase func(Phase)
}

func NewRunner(log *zap.Logger) *Runner {
	return &Runner{Open: conn.Open, Log: log}
}

func (r *Runner) phase(p Phase) {
	r.Log.Debug("phase done", zap.Stringer("phase", p))
	if r.OnPhase != nil {
		r.OnPhase(p)
	}
}

// Dialect resolves the dialect shared by source and target. Mixing
// database products is rejected.
func Dialect(source, target conn.Target) (dialect.Dialect, error) {
	src, err := source.DriverName()
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	tgt, err := target.DriverName()
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	if src != tgt {
		return nil, fmt.Errorf("source driver %q and target driver %q differ", src, tgt)
	}
	return dialect.GetDialect(src)
}

func (opts Options) validate() error {
	if opts.TargetAddress == "" {
		return fmt.Errorf("target address is required for the safety guard")
	}
	if opts.OutputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if opts.DiffDir == "" {
		return fmt.Errorf("diff directory is required")
	}
	return nil
}

// hostnameGuard is implemented by dialects whose safety guard can only
// compare the server's host name, not its address.
type hostnameGuard interface {
	GuardUsesHostname() bool
}

// checkGuardAddress rejects an IP address for a guard that compares host
// names: the generated script would abort on the intended server too.
func checkGuardAddress(d dialect.Dialect, address string) error {
	g, ok := d.(hostnameGuard)
	if !ok || !g.GuardUsesHostname() {
		return nil
	}
	if net.ParseIP(address) != nil {
		return fmt.Errorf("target address %q is an IP address, but the %s guard compares @@hostname: set settings.target_address to the target server's host name", address, d.Name())
	}
	return nil
}

// Run reads both instances, diffs them, writes the sync script and
// optionally spot-checks one object in the source.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	d, err := Dialect(opts.Source, opts.Target)
	if err != nil {
		return nil, err
	}
	if err := checkGuardAddress(d, opts.TargetAddress); err != nil {
		return nil, err
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	log := r.Log.With(zap.String("dialect", d.Name()))
	res := &Result{}

	log.Info("reading schema", zap.String("instance", "source"), zap.Stringer("host", opts.Source))
	source, err := r.read(ctx, opts.Source, d)
	if err != nil {
		return nil, err
	}
	res.Source = Loaded{Columns: len(source.Columns), Procedures: len(source.Procedures)}
	r.phase(ReadSource)

	log.Info("reading schema", zap.String("instance", "target"), zap.Stringer("host", opts.Target))
	target, err := r.read(ctx, opts.Target, d)
	if err != nil {
		return nil, err
	}
	res.Target = Loaded{Columns: len(target.Columns), Procedures: len(target.Procedures)}
	r.phase(ReadTarget)

	res.Tables = diff.CompareTables(source.Columns, target.Columns, d)
	log.Info("tables compared", zap.Int("discrepancies", len(res.Tables)))
	r.phase(CompareTables)

	sink := &output.DirSink{Dir: opts.DiffDir}
	res.Procedures, err = diff.CompareProcedures(source.Procedures, target.Procedures, d, sink)
	if err != nil {
		return nil, err
	}
	res.DiffFiles = sink.Written()
	log.Info("procedures compared",
		zap.Int("missing", res.Procedures.Missing),
		zap.Int("mismatched", res.Procedures.Mismatched),
		zap.Int("diff_files", len(res.DiffFiles)),
	)
	r.phase(CompareProcedures)

	res.GeneratedAt = now()
	s := script.Assemble(d, script.Header{
		Source:         opts.Source.String(),
		Target:         opts.Target.String(),
		TargetDatabase: opts.Target.Database,
		TargetAddress:  opts.TargetAddress,
		GeneratedAt:    res.GeneratedAt,
	}, res.Tables, res.Procedures.Discrepancies)

	res.ScriptPath, err = output.WriteScript(opts.OutputPath, s.String())
	if err != nil {
		return nil, err
	}
	log.Info("script written", zap.String("path", res.ScriptPath))
	r.phase(WriteScript)

	if opts.CheckObject != "" {
		info, err := r.Check(ctx, opts.Source, opts.CheckObject)
		if err != nil {
			return nil, err
		}
		res.Dependency = &info
	}
	r.phase(CheckDependency)

	return res, nil
}

// Check looks up one object by name in t.
func (r *Runner) Check(ctx context.Context, t conn.Target, name string) (schema.ObjectInfo, error) {
	d, err := Dialect(t, t)
	if err != nil {
		return schema.ObjectInfo{}, err
	}

	var info schema.ObjectInfo
	err = conn.With(ctx, r.Open, t, func(db *sql.DB) error {
		var err error
		info, err = schema.LookupObject(ctx, db, d, name)
		return err
	})
	if err != nil {
		return schema.ObjectInfo{}, err
	}
	r.Log.Info("dependency checked", zap.String("object", name), zap.Bool("found", info.Found), zap.String("kind", info.Kind))
	return info, nil
}

func (r *Runner) read(ctx context.Context, t conn.Target, d dialect.Dialect) (*schema.Snapshot, error) {
	var snap *schema.Snapshot
	err := conn.With(ctx, r.Open, t, func(db *sql.DB) error {
		var err error
		snap, err = schema.Read(ctx, db, d)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.Log.Debug("snapshot loaded",
		zap.Stringer("host", t),
		zap.Int("columns", len(snap.Columns)),
		zap.Int("procedures", len(snap.Procedures)),
	)
	return snap, nil
}
