package document

import (
	"fmt"
	"strings"

	"docs2mcp/internal/gdocs"
	"docs2mcp/internal/model"
)

// notFoundError names the target text and requested instance so the failure
// is actionable for the caller.
func notFoundError(target string, instance int) error {
	return model.NewError(model.CodeAnchorNotFound,
		fmt.Sprintf("occurrence %d of %q not found in document", instance, target))
}

// ResolveText locates the instance-th occurrence of target across the
// fragments, counting in document order, and returns its exact half-open
// character range. Occurrences are counted with a full intra-fragment scan:
// a fragment containing the target twice contributes two distinct positions,
// so instance=k always lands on the true k-th occurrence.
func ResolveText(frags []Fragment, target string, instance int) (gdocs.Range, error) {
	if target == "" {
		return gdocs.Range{}, model.NewError(model.CodeAnchorNotFound, "target text is empty")
	}
	if instance < 1 {
		return gdocs.Range{}, notFoundError(target, instance)
	}
	seen := 0
	for _, f := range frags {
		local := 0
		for {
			i := strings.Index(f.Text[local:], target)
			if i < 0 {
				break
			}
			local += i
			seen++
			if seen == instance {
				start := f.StartIndex + int64(local)
				return gdocs.Range{StartIndex: start, EndIndex: start + int64(len(target))}, nil
			}
			local += len(target)
		}
	}
	return gdocs.Range{}, notFoundError(target, instance)
}

// ResolveParagraph locates the instance-th paragraph containing target and
// returns that paragraph's full [start,end) range regardless of where within
// the paragraph the text occurs. A paragraph counts once no matter how many
// of its runs match or how many occurrences it holds.
func ResolveParagraph(frags []Fragment, target string, instance int) (gdocs.Range, error) {
	if target == "" {
		return gdocs.Range{}, model.NewError(model.CodeAnchorNotFound, "target text is empty")
	}
	if instance < 1 {
		return gdocs.Range{}, notFoundError(target, instance)
	}
	seen := 0
	var lastPara gdocs.Range
	matched := false
	for _, f := range frags {
		para := gdocs.Range{StartIndex: f.ParaStart, EndIndex: f.ParaEnd}
		if para != lastPara {
			lastPara = para
			matched = false
		}
		if matched || !strings.Contains(f.Text, target) {
			continue
		}
		matched = true
		seen++
		if seen == instance {
			return para, nil
		}
	}
	return gdocs.Range{}, notFoundError(target, instance)
}
