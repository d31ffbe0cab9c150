package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"schemasync/internal/diff"
	"schemasync/internal/schema"
)

var (
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
)

// Presenter prints the run summary to a terminal.
type Presenter struct {
	Out   io.Writer
	Msg   Messages
	Quote func(ident string) string // column quoting; identity when nil
}

func New(out io.Writer, quote func(string) string) *Presenter {
	return &Presenter{Out: out, Msg: DefaultMessages, Quote: quote}
}

func (p *Presenter) line(text string) {
	fmt.Fprintln(p.Out, text)
}

func (p *Presenter) colored(c *color.Color, text string) {
	c.Fprintln(p.Out, text)
}

func (p *Presenter) quote(s string) string {
	if p.Quote == nil {
		return s
	}
	return p.Quote(s)
}

// Banner lists both instances and the guarded address before any work.
func (p *Presenter) Banner(source, target, address string) {
	p.line(p.Msg.Title)
	p.line(p.Msg.Comparing)
	p.line(fmt.Sprintf(p.Msg.SourceLine, source))
	p.line(fmt.Sprintf(p.Msg.TargetLine, target))
	p.line(fmt.Sprintf(p.Msg.GuardLine, address))
	p.line(p.Msg.Rule)
}

func (p *Presenter) Loaded(host string, columns, procedures int) {
	p.line(fmt.Sprintf(p.Msg.Loaded, columns, procedures, host))
}

func (p *Presenter) Tables(ds []diff.Discrepancy) {
	p.line("\n" + p.Msg.TableStart + "\n")
	if len(ds) == 0 {
		p.colored(green, p.Msg.TablesInSync)
		return
	}
	for _, d := range ds {
		switch d.Kind {
		case diff.MissingTable:
			p.colored(red, fmt.Sprintf(p.Msg.MissingTable, d.Object))
		case diff.MissingColumn:
			p.colored(yellow, fmt.Sprintf(p.Msg.MissingColumn, d.Object+"."+p.quote(d.Column)))
		case diff.ColumnMismatch:
			p.colored(cyan, fmt.Sprintf(p.Msg.Mismatch, d.Object+"."+p.quote(d.Column), d.Reason))
		}
	}
}

func (p *Presenter) Procedures(res *diff.ProcedureResult) {
	p.line("\n" + p.Msg.ProcStart + "\n")
	if res == nil || len(res.Discrepancies) == 0 {
		p.colored(green, p.Msg.ProcsInSync)
		return
	}
	for _, d := range res.Discrepancies {
		switch d.Kind {
		case diff.MissingProcedure:
			p.colored(red, fmt.Sprintf(p.Msg.MissingProc, d.Object))
		case diff.ProcedureMismatch:
			p.colored(yellow, fmt.Sprintf(p.Msg.ProcMismatch, d.Object))
		case diff.UnreadableProcedure:
			p.colored(yellow, fmt.Sprintf(p.Msg.ProcSkipped, d.Object))
		}
	}
	p.colored(cyan, fmt.Sprintf(p.Msg.ProcTotals, res.Missing, res.Mismatched))
	if res.Unreadable > 0 {
		p.colored(yellow, fmt.Sprintf(p.Msg.ProcUnread, res.Unreadable))
	}
	p.colored(cyan, p.Msg.ProcDetails)
}

// DiffFiles lists the side files written for mismatched procedures.
func (p *Presenter) DiffFiles(dir string, files []string) {
	if len(files) == 0 {
		return
	}
	p.line(fmt.Sprintf(p.Msg.DiffFiles, dir))
	for _, f := range files {
		p.line("  " + f)
	}
}

// Dependency prints the spot-check outcome for one object name.
func (p *Presenter) Dependency(info schema.ObjectInfo) {
	p.line(fmt.Sprintf("\n"+p.Msg.DepStart, info.Name))
	if info.Found {
		p.colored(green, fmt.Sprintf(p.Msg.DepFound, info.Name, info.Kind))
		return
	}
	p.colored(red, fmt.Sprintf(p.Msg.DepMissing, info.Name))
	p.colored(red, p.Msg.DepMissingTip)
}

func (p *Presenter) Done(scriptPath string) {
	p.line("\n" + p.Msg.DoneRule)
	p.line(fmt.Sprintf(p.Msg.Generated, scriptPath))
	p.line(p.Msg.Review)
	p.line(p.Msg.DoneRule)
}

func (p *Presenter) Failed(err error) {
	p.colored(red, fmt.Sprintf(p.Msg.Failed, err))
}
