package signature

import "fmt"

// DiffResult separates hard regressions (errors) from tolerated drift
// (warnings). OK is true iff there are no errors; warnings alone never fail
// a regression check.
type DiffResult struct {
	OK       bool     `json:"ok"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Diff compares a current parse signature against a stored baseline.
// Documents are compared positionally over the canonical sort order, not by
// id: ids are regenerated per run, while the sorted structural shape is
// stable.
func Diff(baseline, current ParseSignature) DiffResult {
	var res DiffResult

	if len(baseline.Docs) != len(current.Docs) {
		res.Errors = append(res.Errors, fmt.Sprintf("document count changed: baseline %d, current %d", len(baseline.Docs), len(current.Docs)))
	}

	n := len(baseline.Docs)
	if len(current.Docs) < n {
		n = len(current.Docs)
	}
	for i := 0; i < n; i++ {
		b, c := baseline.Docs[i], current.Docs[i]

		if c.DocID == "" {
			// A correctness bug in the parser, not drift.
			res.Errors = append(res.Errors, fmt.Sprintf("doc %d: empty document id in current output", i))
		}
		if b.Type != c.Type {
			res.Errors = append(res.Errors, fmt.Sprintf("doc %d: type changed: %s -> %s", i, b.Type, c.Type))
		}
		if !pageEq(b.PageStart, c.PageStart) || !pageEq(b.PageEnd, c.PageEnd) {
			// Page order can legitimately shift across pipeline tweaks.
			res.Warnings = append(res.Warnings, fmt.Sprintf("doc %d: page range changed: %s -> %s", i, pageRange(b), pageRange(c)))
		}
		if b.LineCount != c.LineCount {
			res.Warnings = append(res.Warnings, fmt.Sprintf("doc %d: line count changed: %d -> %d", i, b.LineCount, c.LineCount))
		}
	}

	res.OK = len(res.Errors) == 0
	return res
}

func pageEq(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func pageRange(d DocSignature) string {
	if d.PageStart == nil || d.PageEnd == nil {
		return "?-?"
	}
	return fmt.Sprintf("%d-%d", *d.PageStart, *d.PageEnd)
}
