package planner

import (
	"fmt"
	"strings"

	"docs2mcp/internal/gdocs"
	"docs2mcp/internal/model"
)

// indentPerLevelPT is the indentation added per list nesting level.
const indentPerLevelPT = 36.0

// TextStyleOp builds the single character-style request for the resolved
// range. The returned field names are the exact mask entries the store
// expects; they also feed the user-facing confirmation.
func TextStyleOp(in TextStyleIntent, r gdocs.Range) (gdocs.Request, []string, error) {
	if in.Empty() {
		return gdocs.Request{}, nil, model.NewError(model.CodeInvalidIntent, "no text style attribute supplied")
	}

	var style gdocs.TextStyle
	var fields []string
	if in.Bold != nil {
		style.Bold = in.Bold
		fields = append(fields, "bold")
	}
	if in.Italic != nil {
		style.Italic = in.Italic
		fields = append(fields, "italic")
	}
	if in.Underline != nil {
		style.Underline = in.Underline
		fields = append(fields, "underline")
	}
	if in.Strikethrough != nil {
		style.Strikethrough = in.Strikethrough
		fields = append(fields, "strikethrough")
	}
	if in.FontSize != nil {
		if *in.FontSize <= 0 {
			return gdocs.Request{}, nil, model.NewError(model.CodeInvalidIntent, "font size must be positive")
		}
		style.FontSize = gdocs.PT(*in.FontSize)
		fields = append(fields, "fontSize")
	}
	if in.FontFamily != nil {
		style.WeightedFontFamily = &gdocs.WeightedFontFamily{FontFamily: *in.FontFamily}
		fields = append(fields, "weightedFontFamily")
	}
	if in.ForegroundColor != nil {
		c, err := ParseHexColor(*in.ForegroundColor)
		if err != nil {
			return gdocs.Request{}, nil, err
		}
		style.ForegroundColor = c
		fields = append(fields, "foregroundColor")
	}
	if in.BackgroundColor != nil {
		c, err := ParseHexColor(*in.BackgroundColor)
		if err != nil {
			return gdocs.Request{}, nil, err
		}
		style.BackgroundColor = c
		fields = append(fields, "backgroundColor")
	}
	if in.LinkURL != nil {
		style.Link = &gdocs.Link{URL: *in.LinkURL}
		fields = append(fields, "link")
	}

	req := gdocs.Request{UpdateTextStyle: &gdocs.UpdateTextStyleRequest{
		Range:     r,
		TextStyle: style,
		Fields:    joinFields(fields),
	}}
	return req, fields, nil
}

// ParagraphStyleOp builds the single paragraph-style request for the
// resolved paragraph range.
func ParagraphStyleOp(in ParagraphStyleIntent, r gdocs.Range) (gdocs.Request, []string, error) {
	if in.Empty() {
		return gdocs.Request{}, nil, model.NewError(model.CodeInvalidIntent, "no paragraph style attribute supplied")
	}

	var style gdocs.ParagraphStyle
	var fields []string
	if in.NamedStyle != nil {
		if !namedStyles[*in.NamedStyle] {
			return gdocs.Request{}, nil, model.NewError(model.CodeInvalidIntent,
				fmt.Sprintf("unknown named style %q", *in.NamedStyle))
		}
		style.NamedStyleType = *in.NamedStyle
		fields = append(fields, "namedStyleType")
	}
	if in.Alignment != nil {
		if !alignments[*in.Alignment] {
			return gdocs.Request{}, nil, model.NewError(model.CodeInvalidIntent,
				fmt.Sprintf("unknown alignment %q (want LEFT, CENTER, RIGHT or JUSTIFIED)", *in.Alignment))
		}
		style.Alignment = *in.Alignment
		fields = append(fields, "alignment")
	}
	if in.IndentStart != nil {
		style.IndentStart = gdocs.PT(*in.IndentStart)
		fields = append(fields, "indentStart")
	}
	if in.IndentEnd != nil {
		style.IndentEnd = gdocs.PT(*in.IndentEnd)
		fields = append(fields, "indentEnd")
	}
	if in.SpaceAbove != nil {
		style.SpaceAbove = gdocs.PT(*in.SpaceAbove)
		fields = append(fields, "spaceAbove")
	}
	if in.SpaceBelow != nil {
		style.SpaceBelow = gdocs.PT(*in.SpaceBelow)
		fields = append(fields, "spaceBelow")
	}
	if in.KeepWithNext != nil {
		style.KeepWithNext = in.KeepWithNext
		fields = append(fields, "keepWithNext")
	}

	req := gdocs.Request{UpdateParagraphStyle: &gdocs.UpdateParagraphStyleRequest{
		Range:          r,
		ParagraphStyle: style,
		Fields:         joinFields(fields),
	}}
	return req, fields, nil
}

// ListOps builds the two-request list conversion: indentation first, bullet
// preset second. The order is fixed; creating the bullet before the indent
// update would have the indent clobber the list's own indentation.
func ListOps(in ListIntent, r gdocs.Range) ([]gdocs.Request, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	indent := gdocs.Request{UpdateParagraphStyle: &gdocs.UpdateParagraphStyleRequest{
		Range: r,
		ParagraphStyle: gdocs.ParagraphStyle{
			IndentStart:     gdocs.PT(indentPerLevelPT * float64(in.IndentLevel+1)),
			IndentFirstLine: gdocs.PT(0),
		},
		Fields: "indentStart,indentFirstLine",
	}}
	bullets := gdocs.Request{CreateParagraphBullets: &gdocs.CreateParagraphBulletsRequest{
		Range:        r,
		BulletPreset: bulletPresets[in.Kind],
	}}
	return []gdocs.Request{indent, bullets}, nil
}

// ReplaceAllOps deletes the whole body then inserts the new text at the
// first addressable offset. docLength must come from a fetch made for this
// call; the store's trailing newline is never deleted, so an effectively
// empty document gets an insert-only batch.
func ReplaceAllOps(text string, docLength int64) []gdocs.Request {
	insert := gdocs.Request{InsertText: &gdocs.InsertTextRequest{
		Location: gdocs.Location{Index: 1},
		Text:     text,
	}}
	if docLength <= 1 {
		return []gdocs.Request{insert}
	}
	del := gdocs.Request{DeleteContentRange: &gdocs.DeleteContentRangeRequest{
		Range: gdocs.Range{StartIndex: 1, EndIndex: docLength},
	}}
	return []gdocs.Request{del, insert}
}

// AppendOp inserts text at the live end offset (just before the final
// newline). docLength must be recomputed from a fresh fetch.
func AppendOp(text string, docLength int64) gdocs.Request {
	at := docLength
	if at < 1 {
		at = 1
	}
	return gdocs.Request{InsertText: &gdocs.InsertTextRequest{
		Location: gdocs.Location{Index: at},
		Text:     text,
	}}
}

// DeleteRangeOp validates and builds a content-range delete. An inverted or
// degenerate range fails before any store call is made.
func DeleteRangeOp(start, end int64) (gdocs.Request, error) {
	if start < 1 || end <= start {
		return gdocs.Request{}, model.NewError(model.CodeInvalidRange,
			fmt.Sprintf("invalid range [%d,%d): need 1 <= start < end", start, end))
	}
	return gdocs.Request{DeleteContentRange: &gdocs.DeleteContentRangeRequest{
		Range: gdocs.Range{StartIndex: start, EndIndex: end},
	}}, nil
}

func joinFields(fields []string) string {
	return strings.Join(fields, ",")
}
