// Package vectors loads ALU test vectors from YAML and checks them against
// the ALU.
//
// A vector file looks like:
//
//	cases:
//	  - name: 8-bit carry stays in lane 0
//	    op: add
//	    width: 8
//	    a: "FF_FF_..._FF"
//	    b: "1"
//	    expected: "FF_FF_..._00"
package vectors

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"go.yaml.in/yaml/v3"

	"github.com/sarchlab/lanealu/alu"
	"github.com/sarchlab/lanealu/batch"
)

// ErrMalformedCase is returned when a case in a vector file cannot be
// turned into an ALU request.
var ErrMalformedCase = errors.New("malformed test vector")

// Case is one parsed test vector.
type Case struct {
	Name     string
	Op       alu.Operation
	Width    alu.LaneWidth
	A, B     alu.Word
	Expected alu.Word
}

type rawCase struct {
	Name     string `yaml:"name"`
	Op       string `yaml:"op"`
	Width    int    `yaml:"width"`
	A        string `yaml:"a"`
	B        string `yaml:"b"`
	Expected string `yaml:"expected"`
}

type rawFile struct {
	Cases []rawCase `yaml:"cases"`
}

// Load reads and parses a vector file.
func Load(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vector file: %w", err)
	}

	cases, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cases, nil
}

// Parse parses vector file contents. Errors name the 0-based case index.
func Parse(data []byte) ([]Case, error) {
	var file rawFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse vector file: %w", err)
	}

	cases := make([]Case, 0, len(file.Cases))
	for i, raw := range file.Cases {
		c, err := raw.parse()
		if err != nil {
			return nil, fmt.Errorf("case %d (%s): %w: %w", i, raw.Name, ErrMalformedCase, err)
		}
		cases = append(cases, c)
	}

	return cases, nil
}

func (r rawCase) parse() (Case, error) {
	c := Case{Name: r.Name}

	var err error
	if c.Op, err = alu.ParseOperation(r.Op); err != nil {
		return c, err
	}
	if c.Width, err = alu.ParseLaneWidth(r.Width); err != nil {
		return c, err
	}
	if c.A, err = alu.ParseWord(r.A); err != nil {
		return c, fmt.Errorf("a: %w", err)
	}
	if c.B, err = alu.ParseWord(r.B); err != nil {
		return c, fmt.Errorf("b: %w", err)
	}
	if c.Expected, err = alu.ParseWord(r.Expected); err != nil {
		return c, fmt.Errorf("expected: %w", err)
	}

	return c, nil
}

// Failure records a case whose result did not match.
type Failure struct {
	Case Case
	Got  alu.Word
	Err  error
}

// String renders the failure with every word in the hex convention.
func (f Failure) String() string {
	if f.Err != nil {
		return fmt.Sprintf("WRONG: %s: %v", f.Case.Name, f.Err)
	}
	return fmt.Sprintf("WRONG: %s\n  a        = %s\n  b        = %s\n  op       = %v\n  got      = %s\n  expected = %s\n  width    = %v",
		f.Case.Name, f.Case.A, f.Case.B, f.Case.Op, f.Got, f.Case.Expected, f.Case.Width)
}

// Report summarises a run.
type Report struct {
	Passed   int
	Failed   int
	Failures []Failure
}

// OK reports whether every case passed.
func (r Report) OK() bool {
	return r.Failed == 0
}

// Options configures Run.
type Options struct {
	// Workers bounds parallel evaluation; <= 0 means GOMAXPROCS.
	Workers int
	// Log receives one entry per failure. Defaults to logr.Discard().
	Log logr.Logger
}

// Run evaluates every case and compares the results. The error is non-nil
// only if ctx ends the run early.
func Run(ctx context.Context, cases []Case, opts Options) (Report, error) {
	log := opts.Log
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	reqs := make([]batch.Request, len(cases))
	for i, c := range cases {
		reqs[i] = batch.NewRequest(c.Op, c.Width, c.A, c.B)
	}

	results, err := batch.Evaluate(ctx, reqs, opts.Workers)
	if err != nil {
		return Report{}, err
	}

	var report Report
	for i, res := range results {
		c := cases[i]
		if res.Err == nil && res.Value == c.Expected {
			report.Passed++
			continue
		}

		report.Failed++
		f := Failure{Case: c, Got: res.Value, Err: res.Err}
		report.Failures = append(report.Failures, f)
		log.Info("vector failed", "name", c.Name, "op", c.Op.String(),
			"width", c.Width.String(), "got", res.Value.String(),
			"expected", c.Expected.String())
	}

	log.V(1).Info("vectors checked", "passed", report.Passed, "failed", report.Failed)
	return report, nil
}
