package script

import (
	"fmt"
	"strings"
)

const (
	bannerRule = "-- ============================================="
	procRule   = "--------------------------------------------------"
)

// Script is the generated migration, kept as an ordered list of text
// fragments (comments, statements, separators) until it is written.
type Script struct {
	fragments []string
}

// Comment adds a "-- " line.
func (s *Script) Comment(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	s.fragments = append(s.fragments, "-- "+strings.NewReplacer("\r", " ", "\n", " ").Replace(text)+"\n")
}

// Statement adds text verbatim, terminated by a newline.
func (s *Script) Statement(text string) {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	s.fragments = append(s.fragments, text)
}

// Separator ends a batch. Dialects without batch separators pass "".
func (s *Script) Separator(sep string) {
	if sep == "" {
		return
	}
	s.fragments = append(s.fragments, sep+"\n")
}

func (s *Script) Blank() {
	s.fragments = append(s.fragments, "\n")
}

// Banner adds a section title a reviewer can spot when scrolling.
func (s *Script) Banner(title string) {
	s.fragments = append(s.fragments, bannerRule+"\n", "-- "+title+"\n", bannerRule+"\n")
}

func (s *Script) Fragments() []string {
	return s.fragments
}

func (s *Script) String() string {
	return strings.Join(s.fragments, "")
}
