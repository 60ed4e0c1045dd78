package diagfmt

import (
	"encoding/json"
	"io"
	"path/filepath"
	"slices"

	"codex/internal/diag"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules"`
}

type sarifText struct {
	Text string `json:"text"`
}

type sarifRule struct {
	ID                   string          `json:"id"`
	ShortDescription     sarifText       `json:"shortDescription"`
	DefaultConfiguration sarifRuleConfig `json:"defaultConfiguration"`
	Properties           map[string]any  `json:"properties,omitempty"`
}

type sarifRuleConfig struct {
	Level string `json:"level"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   sarifText       `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32     `json:"startLine"`
	StartColumn uint32     `json:"startColumn"`
	Snippet     *sarifText `json:"snippet,omitempty"`
}

// Sarif formats diagnostics as SARIF 2.1.0. Rules list only the codes
// that occur, in code order.
func Sarif(w io.Writer, items []diag.Diagnostic, meta RunMeta, opts Opts) error {
	items = items[:opts.limit(len(items))]

	seen := make(map[diag.Code]bool)
	var codes []diag.Code
	for _, d := range items {
		if !seen[d.Code] {
			seen[d.Code] = true
			codes = append(codes, d.Code)
		}
	}
	slices.Sort(codes)
	index := make(map[diag.Code]int, len(codes))
	rules := make([]sarifRule, 0, len(codes))
	for i, c := range codes {
		index[c] = i
		rules = append(rules, sarifRule{
			ID:                   c.ID(),
			ShortDescription:     sarifText{Text: c.Title()},
			DefaultConfiguration: sarifRuleConfig{Level: c.Category().Level()},
			Properties:           map[string]any{"category": c.Category().String()},
		})
	}

	results := make([]sarifResult, 0, len(items))
	for _, d := range items {
		region := sarifRegion{StartLine: d.Line, StartColumn: d.Column}
		if d.Excerpt != "" {
			region.Snippet = &sarifText{Text: d.Excerpt}
		}
		results = append(results, sarifResult{
			RuleID:    d.Code.ID(),
			RuleIndex: index[d.Code],
			Level:     d.Category.Level(),
			Message:   sarifText{Text: d.Message},
			Locations: []sarifLocation{{PhysicalLocation: sarifPhysical{
				ArtifactLocation: sarifArtifact{URI: filepath.ToSlash(opts.PathMode.apply(d.File, opts.BaseDir))},
				Region:           region,
			}}},
		})
	}

	name := meta.ToolName
	if name == "" {
		name = "codex"
	}
	run := sarifRun{
		Tool:    sarifTool{Driver: sarifDriver{Name: name, Version: meta.ToolVersion, Rules: rules}},
		Results: results,
	}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []sarifInvocation{{Arguments: meta.InvocationArgs, ExecutionSuccessful: true}}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(sarifLog{Version: sarifVersion, Schema: sarifSchema, Runs: []sarifRun{run}})
}
