// Command validate re-parses raw HURDAT2 files and checks the invariants the
// normalized output must hold: event id structure, declared point counts,
// chronological ordering, hemisphere signs, and the point-vs-line geometry
// split.
//
// Usage:
//
//	go run ./cmd/validate -input data/hurdat2-atl.txt -input data/hurdat2-nepac.txt
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/good-kiwi/hurdat2-etl/internal/domain"
)

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

type pathList []string

func (p *pathList) String() string     { return strings.Join(*p, ",") }
func (p *pathList) Set(v string) error { *p = append(*p, v); return nil }

func main() {
	var inputs pathList
	flag.Var(&inputs, "input", "raw HURDAT2 file to validate (repeatable)")
	flag.Parse()

	if len(inputs) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	code := 0
	for _, path := range inputs {
		if !validateFile(path) {
			code = 1
		}
	}
	os.Exit(code)
}

func validateFile(path string) bool {
	fmt.Printf("== %s\n", path)

	f, err := os.Open(path)
	if err != nil {
		fmt.Printf("FAIL open: %v\n", err)
		return false
	}
	defer f.Close()

	headers, raws, err := domain.Extract(f)
	if err != nil {
		fmt.Printf("FAIL extract: %v\n", err)
		return false
	}
	storms, observations, err := domain.Normalize(headers, raws)
	if err != nil {
		fmt.Printf("FAIL normalize: %v\n", err)
		return false
	}

	phases := []*phase{
		checkStructure(headers),
		checkCounts(headers, storms, observations),
		checkOrdering(storms, observations),
		checkGeometry(headers, storms),
	}

	ok := true
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS %s\n", p.name)
			continue
		}
		ok = false
		fmt.Printf("FAIL %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("  - %s\n", e)
		}
	}
	return ok
}

// checkStructure verifies event id shape: 8 characters with basin, storm
// number, and year as exact substrings.
func checkStructure(headers []domain.Header) *phase {
	p := &phase{name: "structure"}
	for _, h := range headers {
		if len(h.EventID) != 8 {
			p.errorf("event id %q is %d characters, want 8", h.EventID, len(h.EventID))
			continue
		}
		if h.Basin != h.EventID[0:2] || h.StormNum != h.EventID[2:4] || h.Year != h.EventID[4:8] {
			p.errorf("event id %q does not decompose into basin/number/year", h.EventID)
		}
	}
	return p
}

// checkCounts verifies one storm per header, declared counts, and that every
// observation belongs to a known storm.
func checkCounts(headers []domain.Header, storms []domain.Storm, observations []domain.Observation) *phase {
	p := &phase{name: "counts"}
	if len(storms) != len(headers) {
		p.errorf("%d headers produced %d storms", len(headers), len(storms))
	}

	perStorm := make(map[string]int, len(storms))
	for _, o := range observations {
		perStorm[o.EventID]++
	}
	for _, h := range headers {
		if got := perStorm[h.EventID]; got != h.DeclaredPointCount {
			p.errorf("storm %s declares %d observations, found %d", h.EventID, h.DeclaredPointCount, got)
		}
	}

	known := make(map[string]bool, len(storms))
	for _, s := range storms {
		if known[s.EventID] {
			p.errorf("duplicate event id %s", s.EventID)
		}
		known[s.EventID] = true
	}
	for _, o := range observations {
		if !known[o.EventID] {
			p.errorf("observation references unknown storm %s", o.EventID)
		}
	}
	return p
}

// checkOrdering verifies chronological observation order per storm and that
// each storm's start time is its first observation's point time.
func checkOrdering(storms []domain.Storm, observations []domain.Observation) *phase {
	p := &phase{name: "ordering"}

	firstSeen := make(map[string]domain.Observation, len(storms))
	lastSeen := make(map[string]domain.Observation, len(storms))
	for _, o := range observations {
		if prev, ok := lastSeen[o.EventID]; ok && o.PointTime.Before(prev.PointTime) {
			p.errorf("storm %s observations out of order: %s before %s", o.EventID, o.PointTime, prev.PointTime)
		}
		if _, ok := firstSeen[o.EventID]; !ok {
			firstSeen[o.EventID] = o
		}
		lastSeen[o.EventID] = o
	}

	for _, s := range storms {
		if first, ok := firstSeen[s.EventID]; ok && !s.StartTime.Equal(first.PointTime) {
			p.errorf("storm %s start time %s != first observation %s", s.EventID, s.StartTime, first.PointTime)
		}
	}
	return p
}

// checkGeometry verifies the two-way geometry split: single-observation
// storms are points, everything else a line with one vertex per observation.
func checkGeometry(headers []domain.Header, storms []domain.Storm) *phase {
	p := &phase{name: "geometry"}

	declared := make(map[string]int, len(headers))
	for _, h := range headers {
		declared[h.EventID] = h.DeclaredPointCount
	}

	for _, s := range storms {
		switch path := s.Path.(type) {
		case domain.PathPoint:
			if declared[s.EventID] != 1 {
				p.errorf("storm %s has point geometry but %d observations", s.EventID, declared[s.EventID])
			}
		case domain.PathLine:
			if len(path.Vertices) != declared[s.EventID] {
				p.errorf("storm %s path has %d vertices, want %d", s.EventID, len(path.Vertices), declared[s.EventID])
			}
			if len(path.Vertices) < 2 {
				p.errorf("storm %s has line geometry with %d vertices", s.EventID, len(path.Vertices))
			}
		default:
			p.errorf("storm %s has unknown geometry %T", s.EventID, s.Path)
		}
	}
	return p
}
