// Package report renders equivalence verdicts. The engine itself stays a
// pure predicate; everything presentational lives here.
package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Result is one query verdict.
type Result struct {
	Kind       string `yaml:"kind"`
	Name       string `yaml:"name,omitempty"`
	Equivalent bool   `yaml:"equivalent"`
}

// Renderer writes a batch of results to a stream.
type Renderer interface {
	Render(w io.Writer, results []Result) error
}

type textRendererImpl struct{}

type yamlRendererImpl struct{}

// NewTextRenderer returns the plain line-per-verdict renderer.
func NewTextRenderer() Renderer {
	return &textRendererImpl{}
}

// NewYAMLRenderer returns a renderer emitting a YAML document.
func NewYAMLRenderer() Renderer {
	return &yamlRendererImpl{}
}

func (r *textRendererImpl) Render(w io.Writer, results []Result) error {
	for _, res := range results {
		verdict := "equivalent"
		if !res.Equivalent {
			verdict = "not equivalent"
		}
		subject := res.Kind
		if res.Name != "" {
			subject = fmt.Sprintf("%s %s", res.Kind, res.Name)
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", subject, verdict); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}
	return nil
}

func (r *yamlRendererImpl) Render(w io.Writer, results []Result) error {
	doc := struct {
		Results []Result `yaml:"results"`
	}{Results: results}

	enc := yaml.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("render yaml: %w", err)
	}
	return enc.Close()
}
