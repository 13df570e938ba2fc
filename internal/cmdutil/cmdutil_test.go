package cmdutil

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLoggerLevels(t *testing.T) {
	cases := []struct {
		verbose, quiet bool
		want           []string
	}{
		{false, false, []string{"WARN w", "ERROR e"}},
		{true, false, []string{"INFO i", "WARN w", "ERROR e"}},
		{false, true, []string{"ERROR e"}},
		{true, true, []string{"ERROR e"}},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		log := NewLogger(&buf, c.verbose, c.quiet)
		log.Info("i")
		log.Warn("w")
		log.Error("e")
		got := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if strings.Join(got, "|") != strings.Join(c.want, "|") {
			t.Fatalf("verbose=%v quiet=%v: got %q want %q", c.verbose, c.quiet, got, c.want)
		}
	}
}

func TestProgressDisabledOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, true, 10, "align")
	p.Add()
	p.Finish()
	if buf.Len() != 0 {
		t.Fatalf("unexpected progress output %q", buf.String())
	}
	if IsTerminal(&buf) {
		t.Fatal("buffer reported as terminal")
	}
}
