// Package scan evaluates accessibility rules over a parsed DOCX body.
// Rules are independent and run concurrently; results come back ordered by
// document position so the issue list reads top to bottom.
package scan

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"docremedy/internal/docx"
	"docremedy/internal/model"
)

// WCAG clauses the built-in rules report against.
const (
	ClauseContrast  = "WCAG 2.1 AA 1.4.3"
	ClauseStructure = "WCAG 2.1 A 1.3.1"
	ClauseAltText   = "WCAG 2.1 A 1.1.1"
	ClauseLinkText  = "WCAG 2.1 A 2.4.4"
	ClauseFontSize  = "WCAG 2.1 AA 1.4.4"
)

// Finding is one rule violation located in the document.
type Finding struct {
	Clause       string
	Description  string
	WCAGLevel    string
	ElementXPath string
	Details      model.IssueDetails

	// position for deterministic ordering across rules
	block int
	run   int
}

// Rule detects one class of accessibility problem.
type Rule interface {
	Name() string
	Apply(d *docx.Document, cfg *Config) ([]Finding, error)
}

// DefaultRules returns the built-in rule set in no particular order.
func DefaultRules() []Rule {
	return []Rule{
		contrastRule{},
		fakeHeadingRule{},
		headingHierarchyRule{},
		altTextRule{},
		tableHeaderRule{},
		linkTextRule{},
		fontSizeRule{},
	}
}

// Scan runs every rule over the document and merges the findings in
// document order.
func Scan(ctx context.Context, d *docx.Document, cfg *Config) ([]Finding, error) {
	rules := DefaultRules()
	results := make([][]Finding, len(rules))

	g, ctx := errgroup.WithContext(ctx)
	for i, rule := range rules {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			fs, err := rule.Apply(d, cfg)
			if err != nil {
				return err
			}
			results[i] = fs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var findings []Finding
	for _, fs := range results {
		findings = append(findings, fs...)
	}
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].block != findings[j].block {
			return findings[i].block < findings[j].block
		}
		return findings[i].run < findings[j].run
	})
	return findings, nil
}

// blockInfo pairs a body block with its position and its 1-based
// paragraph/table ordinal (locator numbering).
type blockInfo struct {
	index    int
	para     *docx.Paragraph
	paraNum  int
	table    *docx.Table
	tableNum int
}

func blocks(d *docx.Document) []blockInfo {
	var out []blockInfo
	paraNum, tableNum := 0, 0
	for i, it := range d.Body.Items {
		switch {
		case it.Para != nil:
			paraNum++
			out = append(out, blockInfo{index: i, para: it.Para, paraNum: paraNum})
		case it.Table != nil:
			tableNum++
			out = append(out, blockInfo{index: i, table: it.Table, tableNum: tableNum})
		}
	}
	return out
}
