package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/tools/txtar"

	"github.com/decleq/decleq/internal/ast"
	"github.com/decleq/decleq/internal/equiv"
	"github.com/decleq/decleq/internal/matcher"
	"github.com/decleq/decleq/internal/parser"
	"github.com/decleq/decleq/internal/report"
)

// Runner orchestrates parser/matcher/engine/report layers. Run reports
// whether every query came back equivalent.
type Runner interface {
	Run(cfg *Config) (bool, error)
}

type runnerImpl struct {
	parser   parser.Parser
	first    matcher.DeclMatcher
	last     matcher.DeclMatcher
	renderer report.Renderer
	out      io.Writer
}

// NewRunner creates a default runner implementation.
func NewRunner(
	p parser.Parser,
	first matcher.DeclMatcher,
	last matcher.DeclMatcher,
	r report.Renderer,
	out io.Writer,
) Runner {
	return &runnerImpl{
		parser:   p,
		first:    first,
		last:     last,
		renderer: r,
		out:      out,
	}
}

// query is one comparison request against a pair of trees.
type query struct {
	kind           ast.DeclKind
	name           string
	definitionOnly bool
	last           bool
}

func (r *runnerImpl) Run(cfg *Config) (bool, error) {
	policyCfg, err := LoadPolicy(cfg.PolicyPath)
	if err != nil {
		return false, err
	}

	var (
		nameA, nameB string
		srcA, srcB   []byte
		queries      []query
	)
	if cfg.Batch != "" {
		nameA, srcA, nameB, srcB, queries, err = loadBatch(cfg.Batch)
	} else {
		nameA, srcA, nameB, srcB, queries, err = loadSingle(cfg)
	}
	if err != nil {
		return false, err
	}

	treeA, err := r.parser.Parse(nameA, srcA)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", nameA, err)
	}
	treeB, err := r.parser.Parse(nameB, srcB)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", nameB, err)
	}

	// One session per tree pair: the negative memo is shared by every
	// query in the batch.
	ctx := equiv.NewContext(treeA, treeB, policyCfg.Policy())

	results := make([]report.Result, 0, len(queries))
	allEquivalent := true
	for _, q := range queries {
		m := r.first
		if q.last {
			m = r.last
		}
		mq := matcher.Query{Kind: q.kind, Name: q.name, DefinitionOnly: q.definitionOnly}

		d0, err := m.Match(treeA, mq)
		if err != nil {
			return false, err
		}
		d1, err := m.Match(treeB, mq)
		if err != nil {
			return false, err
		}

		eq := ctx.DeclsEquivalent(d0, d1)
		if !eq {
			allEquivalent = false
		}
		results = append(results, report.Result{
			Kind:       q.kind.String(),
			Name:       q.name,
			Equivalent: eq,
		})
	}

	if err := r.renderer.Render(r.out, results); err != nil {
		return false, err
	}
	return allEquivalent, nil
}

func loadSingle(cfg *Config) (nameA string, srcA []byte, nameB string, srcB []byte, queries []query, err error) {
	kind, err := ast.ParseDeclKind(cfg.Kind)
	if err != nil {
		return "", nil, "", nil, nil, err
	}
	srcA, err = os.ReadFile(cfg.FileA)
	if err != nil {
		return "", nil, "", nil, nil, fmt.Errorf("read: %w", err)
	}
	srcB, err = os.ReadFile(cfg.FileB)
	if err != nil {
		return "", nil, "", nil, nil, fmt.Errorf("read: %w", err)
	}
	q := query{kind: kind, name: cfg.Name, definitionOnly: cfg.Definition, last: cfg.Last}
	return cfg.FileA, srcA, cfg.FileB, srcB, []query{q}, nil
}

// loadBatch reads a txtar archive with exactly two translation units plus
// a "queries" manifest. Manifest lines look like:
//
//	record foo
//	method f definition
//	constructor
//
// The first word is the kind, an optional second word the name, and the
// trailing words "definition" and "last" tweak matching.
func loadBatch(path string) (nameA string, srcA []byte, nameB string, srcB []byte, queries []query, err error) {
	archive, err := txtar.ParseFile(path)
	if err != nil {
		return "", nil, "", nil, nil, fmt.Errorf("batch: %w", err)
	}

	var units []txtar.File
	var manifest []byte
	seenManifest := false
	for _, f := range archive.Files {
		if f.Name == "queries" {
			manifest = f.Data
			seenManifest = true
			continue
		}
		units = append(units, f)
	}
	if !seenManifest {
		return "", nil, "", nil, nil, fmt.Errorf("batch: %s has no queries file", path)
	}
	if len(units) != 2 {
		return "", nil, "", nil, nil, fmt.Errorf("batch: %s must hold exactly two translation units, found %d", path, len(units))
	}

	queries, err = parseQueries(manifest)
	if err != nil {
		return "", nil, "", nil, nil, fmt.Errorf("batch: %s: %w", path, err)
	}
	return units[0].Name, units[0].Data, units[1].Name, units[1].Data, queries, nil
}

func parseQueries(manifest []byte) ([]query, error) {
	var queries []query
	for lineNo, line := range strings.Split(string(manifest), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words := strings.Fields(line)

		kind, err := ast.ParseDeclKind(words[0])
		if err != nil {
			return nil, fmt.Errorf("queries line %d: %w", lineNo+1, err)
		}
		q := query{kind: kind}
		for _, w := range words[1:] {
			switch w {
			case "definition":
				q.definitionOnly = true
			case "last":
				q.last = true
			default:
				if q.name != "" {
					return nil, fmt.Errorf("queries line %d: unexpected word %q", lineNo+1, w)
				}
				q.name = w
			}
		}
		queries = append(queries, q)
	}
	if len(queries) == 0 {
		return nil, fmt.Errorf("queries file is empty")
	}
	return queries, nil
}
