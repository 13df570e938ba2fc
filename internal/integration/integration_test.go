// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"refseek/internal/app"
	"refseek/internal/output"
)

func TestEndToEndSingle(t *testing.T) {
	f := newFixture(t)
	q := f.genome(t, "q1.fna")
	mashOut(t, [3]string{"B", q, "0.02"}, [3]string{"A", q, "0.011"})

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"single", f.db, q}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}
	want := output.TSVHeader + "\n" +
		"A\t0.01100\t100.00\t100.00\t100.00\t562\tcomplete\tEscherichia coli A\n"
	if out.String() != want {
		t.Fatalf("report:\n got: %q\nwant: %q", out.String(), want)
	}
}

func TestEndToEndUnfilteredKeepsLowIdentity(t *testing.T) {
	f := newFixture(t)
	q := f.genome(t, "q1.fna")
	mashOut(t, [3]string{"B", q, "0.02"}, [3]string{"A", q, "0.011"})

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"single", "--unfiltered", "--no-header", f.db, q}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "A\t") || !strings.HasPrefix(lines[1], "B\t0.02000\t92.07\t100.00\t") {
		t.Fatalf("unexpected report:\n%s", out.String())
	}
}

func TestEndToEndCohortConsensus(t *testing.T) {
	f := newFixture(t)
	q1, q2 := f.genome(t, "q1.fna"), f.genome(t, "q2.fna")
	mashOut(t,
		[3]string{"A", q1, "0.011"}, [3]string{"B", q1, "0.02"},
		[3]string{"A", q2, "0.013"}, [3]string{"B", q2, "0.021"},
	)

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"cohort", "-b", f.db, q1, q2}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "A\t0.01100\t") {
		t.Fatalf("want only A (first query distance), got:\n%s", out.String())
	}
}

func TestEmptyConsensusIsHeaderOnly(t *testing.T) {
	f := newFixture(t)
	q1, q2 := f.genome(t, "q1.fna"), f.genome(t, "q2.fna")
	mashOut(t, [3]string{"A", q1, "0.011"})

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"cohort", f.db, q1, q2}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}
	if out.String() != output.TSVHeader+"\n" {
		t.Fatalf("want header only, got %q", out.String())
	}
}

func TestParallelMatchesEqualSerial(t *testing.T) {
	f := newFixture(t)
	q1, q2 := f.genome(t, "q1.fna"), f.genome(t, "q2.fna")
	mashOut(t,
		[3]string{"A", q1, "0.011"}, [3]string{"B", q1, "0.02"},
		[3]string{"A", q2, "0.013"}, [3]string{"B", q2, "0.021"},
	)

	run := func(threads int) string {
		var out, errB bytes.Buffer
		code := app.Run([]string{
			"cohort", "--unfiltered", "--bidirectional",
			"--threads", fmt.Sprint(threads),
			"--output", "jsonl",
			f.db, q1, q2,
		}, &out, &errB)
		if code != 0 {
			t.Fatalf("exit %d err %s", code, errB.String())
		}
		return out.String()
	}

	serial := run(1)
	parallel := run(4)

	if serial != parallel {
		t.Fatalf("parallel output differs from serial\nserial: %s\nparallel:%s", serial, parallel)
	}
	if strings.Count(serial, "\n") != 2 {
		t.Fatalf("want two rows, got %s", serial)
	}
}

func TestAlignerFailureIsFatal(t *testing.T) {
	f := newFixture(t)
	q := f.genome(t, "q1.fna")
	mashOut(t, [3]string{"A", q, "0.011"}, [3]string{"C", q, "0.03"})

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"single", f.db, q}, &out, &errBuf)
	if code != 3 {
		t.Fatalf("want exit 3, got %d (stderr %s)", code, errBuf.String())
	}
	if out.Len() != 0 {
		t.Fatalf("no partial report expected, got %q", out.String())
	}
	if !strings.Contains(errBuf.String(), "could not parse") {
		t.Fatalf("diagnostic should carry the tool error: %s", errBuf.String())
	}
}

func TestMalformedDistanceOutput(t *testing.T) {
	f := newFixture(t)
	q := f.genome(t, "q1.fna")
	mashOut(t, [3]string{"A", q, "far"})

	var out, errBuf bytes.Buffer
	if code := app.Run([]string{"single", f.db, q}, &out, &errBuf); code != 3 {
		t.Fatalf("want exit 3, got %d", code)
	}
	if !strings.Contains(errBuf.String(), "malformed distance output") {
		t.Fatalf("unexpected diagnostic: %s", errBuf.String())
	}
}

func TestMissingBinary(t *testing.T) {
	f := newFixture(t, "delta-filter")
	q := f.genome(t, "q1.fna")
	mashOut(t)
	t.Setenv("PATH", f.bin)

	var out, errBuf bytes.Buffer
	if code := app.Run([]string{"single", f.db, q}, &out, &errBuf); code != 3 {
		t.Fatalf("want exit 3, got %d", code)
	}
	if !strings.Contains(errBuf.String(), "'delta-filter' was not found") {
		t.Fatalf("unexpected diagnostic: %s", errBuf.String())
	}
}

func TestInputErrors(t *testing.T) {
	f := newFixture(t)
	q := f.genome(t, "q1.fna")

	cases := map[string][]string{
		"missing genome":   {"single", f.db, f.genomes + "/nope.fna"},
		"missing database": {"single", f.db + "-nope", q},
		"usage":            {"single", f.db},
		"bad strategy":     {"cohort", "--strategy", "median", f.db, q},
	}
	for name, argv := range cases {
		t.Run(name, func(t *testing.T) {
			var out, errBuf bytes.Buffer
			if code := app.Run(argv, &out, &errBuf); code != 2 {
				t.Fatalf("want exit 2, got %d (%s)", code, errBuf.String())
			}
			if out.Len() != 0 {
				t.Fatalf("unexpected stdout %q", out.String())
			}
		})
	}
}

func TestVersion(t *testing.T) {
	var out, errBuf bytes.Buffer
	if code := app.Run([]string{"version"}, &out, &errBuf); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.HasPrefix(out.String(), "refseek version ") {
		t.Fatalf("got %q", out.String())
	}
}

func TestRelativePathsFromAnotherDirectory(t *testing.T) {
	f := newFixture(t)
	q := f.genome(t, "q1.fna")
	mashOut(t, [3]string{"A", q, "0.011"}, [3]string{"B", q, "0.02"})

	// run from the common parent of database and genomes
	parent := filepath.Dir(f.db)
	if filepath.Dir(f.genomes) != parent {
		t.Skip("database and genomes do not share a parent")
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(parent); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	relDB := filepath.Base(f.db)
	relQ := filepath.Join(filepath.Base(f.genomes), "q1.fna")
	var out, errBuf bytes.Buffer
	code := app.Run([]string{"single", "--tmp-dir", ".", relDB, relQ}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}
	if !strings.HasPrefix(out.String(), output.TSVHeader+"\nA\t0.01100\t100.00\t") {
		t.Fatalf("unexpected report:\n%s", out.String())
	}
}
