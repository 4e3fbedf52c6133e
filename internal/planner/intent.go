// Package planner translates caller-supplied style and content intents into
// ordered batchUpdate requests. Intents use pointer fields so "absent" and
// "explicitly set to the zero value" stay distinct: only supplied attributes
// enter the request and its field mask, which is what makes partial updates
// safe against unrelated attributes.
package planner

import (
	"fmt"

	"docs2mcp/internal/model"
)

// TextStyleIntent carries the character-level attributes a caller asked for.
type TextStyleIntent struct {
	Bold            *bool
	Italic          *bool
	Underline       *bool
	Strikethrough   *bool
	FontSize        *float64
	FontFamily      *string
	ForegroundColor *string
	BackgroundColor *string
	LinkURL         *string
}

// Empty reports whether no attribute was supplied. Callers must check this
// before fetching or resolving anything.
func (in TextStyleIntent) Empty() bool {
	return in.Bold == nil && in.Italic == nil && in.Underline == nil &&
		in.Strikethrough == nil && in.FontSize == nil && in.FontFamily == nil &&
		in.ForegroundColor == nil && in.BackgroundColor == nil && in.LinkURL == nil
}

// ParagraphStyleIntent carries the paragraph-level attributes.
type ParagraphStyleIntent struct {
	NamedStyle   *string
	Alignment    *string
	IndentStart  *float64
	IndentEnd    *float64
	SpaceAbove   *float64
	SpaceBelow   *float64
	KeepWithNext *bool
}

func (in ParagraphStyleIntent) Empty() bool {
	return in.NamedStyle == nil && in.Alignment == nil && in.IndentStart == nil &&
		in.IndentEnd == nil && in.SpaceAbove == nil && in.SpaceBelow == nil &&
		in.KeepWithNext == nil
}

// ListKind is the closed enumeration of list conversions.
type ListKind string

const (
	ListBullet   ListKind = "BULLET"
	ListNumbered ListKind = "NUMBERED"
	ListAlpha    ListKind = "ALPHA"
	ListRoman    ListKind = "ROMAN"
)

// bulletPresets maps each list kind to the store's preset identifier.
var bulletPresets = map[ListKind]string{
	ListBullet:   "BULLET_DISC_CIRCLE_SQUARE",
	ListNumbered: "NUMBERED_DECIMAL_ALPHA_ROMAN",
	ListAlpha:    "NUMBERED_UPPERALPHA_ALPHA_ROMAN",
	ListRoman:    "NUMBERED_UPPERROMAN_UPPERALPHA_DECIMAL",
}

// ListIntent asks for a paragraph-to-list conversion. StartAt other than
// unset/1 is not supported by the range-based batch (it would need the
// list's object id, which only exists after the bullet is created) and is
// rejected rather than silently ignored.
type ListIntent struct {
	Kind        ListKind
	IndentLevel int
	StartAt     *int
}

// Validate rejects unknown kinds, negative indents and unsupported start
// values. Callers run this before any fetch so rejection carries no
// half-applied work.
func (in ListIntent) Validate() error {
	if _, ok := bulletPresets[in.Kind]; !ok {
		return model.NewError(model.CodeInvalidIntent,
			fmt.Sprintf("unknown list type %q (want BULLET, NUMBERED, ALPHA or ROMAN)", in.Kind))
	}
	if in.IndentLevel < 0 {
		return model.NewError(model.CodeInvalidIntent, "indent level must not be negative")
	}
	if in.StartAt != nil && *in.StartAt != 1 {
		return model.NewError(model.CodeUnsupportedFeature,
			fmt.Sprintf("custom list start value %d is not supported; only the default start is available", *in.StartAt))
	}
	return nil
}

// namedStyles is the store's closed enumeration of named paragraph styles.
var namedStyles = map[string]bool{
	"NORMAL_TEXT": true, "TITLE": true, "SUBTITLE": true,
	"HEADING_1": true, "HEADING_2": true, "HEADING_3": true,
	"HEADING_4": true, "HEADING_5": true, "HEADING_6": true,
}

// alignments is the store's closed enumeration of paragraph alignments.
var alignments = map[string]bool{
	"LEFT": true, "CENTER": true, "RIGHT": true, "JUSTIFIED": true,
}
