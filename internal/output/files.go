package output

import (
	"fmt"
	"os"
	"path/filepath"

	"schemasync/internal/failure"
	"schemasync/internal/procsql"
	"schemasync/internal/schema"
)

// WriteScript writes text to path, replacing any existing file, and
// returns the absolute path.
func WriteScript(path, text string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", failure.NewFileWrite("resolve script path", err)
	}
	if err := os.WriteFile(abs, []byte(text), 0o644); err != nil {
		return "", failure.NewFileWrite(fmt.Sprintf("write %s", abs), err)
	}
	return abs, nil
}

// DirSink stores both definitions of a mismatched procedure under Dir as
// <name>_A.sql (source) and <name>_B.sql (target).
type DirSink struct {
	Dir string

	written []string
}

func (s *DirSink) WriteProcedurePair(source, target schema.Procedure) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return failure.NewFileWrite(fmt.Sprintf("create %s", s.Dir), err)
	}

	base := procsql.SafeFileName(qualifiedFileName(source))
	files := []struct {
		name string
		text string
	}{
		{base + "_A.sql", source.Definition},
		{base + "_B.sql", target.Definition},
	}
	for _, f := range files {
		p := filepath.Join(s.Dir, f.name)
		if err := os.WriteFile(p, []byte(f.text), 0o644); err != nil {
			return failure.NewFileWrite(fmt.Sprintf("write %s", p), err)
		}
		s.written = append(s.written, p)
	}
	return nil
}

// Written lists the files created so far, in order.
func (s *DirSink) Written() []string {
	return s.written
}

func qualifiedFileName(p schema.Procedure) string {
	if p.Schema == "" {
		return p.Name
	}
	return p.Schema + "." + p.Name
}
