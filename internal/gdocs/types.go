// Package gdocs speaks the document store's REST wire format: the nested
// structural tree returned by a document fetch and the batchUpdate request
// vocabulary used to mutate it. Field names must match the store exactly;
// they double as field-mask entries for partial style updates.
package gdocs

// Document is the tree returned by a fetch. Offsets within it are 1-based;
// offset 0 is reserved by the store for the document's leading segment.
type Document struct {
	DocumentID string `json:"documentId"`
	Title      string `json:"title,omitempty"`
	Body       *Body  `json:"body,omitempty"`
}

type Body struct {
	Content []StructuralElement `json:"content,omitempty"`
}

// StructuralElement is a tagged variant: exactly one of the element pointers
// is set. Elements this adapter does not operate on (tables, section breaks)
// are carried opaquely so traversal stays exhaustive without interpreting
// them.
type StructuralElement struct {
	StartIndex      int64      `json:"startIndex,omitempty"`
	EndIndex        int64      `json:"endIndex,omitempty"`
	Paragraph       *Paragraph `json:"paragraph,omitempty"`
	Table           *Opaque    `json:"table,omitempty"`
	SectionBreak    *Opaque    `json:"sectionBreak,omitempty"`
	TableOfContents *Opaque    `json:"tableOfContents,omitempty"`
}

// Opaque marks a structural variant that is acknowledged but not traversed.
type Opaque struct{}

type Paragraph struct {
	Elements       []ParagraphElement `json:"elements,omitempty"`
	ParagraphStyle *ParagraphStyle    `json:"paragraphStyle,omitempty"`
	Bullet         *Bullet            `json:"bullet,omitempty"`
}

// ParagraphElement is a tagged variant: a text run or something else
// (inline image, footnote reference, ...) that contributes no searchable
// text.
type ParagraphElement struct {
	StartIndex int64    `json:"startIndex,omitempty"`
	EndIndex   int64    `json:"endIndex,omitempty"`
	TextRun    *TextRun `json:"textRun,omitempty"`
}

type TextRun struct {
	Content   string     `json:"content,omitempty"`
	TextStyle *TextStyle `json:"textStyle,omitempty"`
}

type Bullet struct {
	ListID       string `json:"listId,omitempty"`
	NestingLevel int64  `json:"nestingLevel,omitempty"`
}

// TextStyle carries character-level attributes. Pointer fields distinguish
// "not supplied" from zero values; only supplied fields may appear in the
// accompanying field mask.
type TextStyle struct {
	Bold               *bool               `json:"bold,omitempty"`
	Italic             *bool               `json:"italic,omitempty"`
	Underline          *bool               `json:"underline,omitempty"`
	Strikethrough      *bool               `json:"strikethrough,omitempty"`
	FontSize           *Dimension          `json:"fontSize,omitempty"`
	WeightedFontFamily *WeightedFontFamily `json:"weightedFontFamily,omitempty"`
	ForegroundColor    *OptionalColor      `json:"foregroundColor,omitempty"`
	BackgroundColor    *OptionalColor      `json:"backgroundColor,omitempty"`
	Link               *Link               `json:"link,omitempty"`
}

type ParagraphStyle struct {
	NamedStyleType  string     `json:"namedStyleType,omitempty"`
	Alignment       string     `json:"alignment,omitempty"`
	IndentStart     *Dimension `json:"indentStart,omitempty"`
	IndentEnd       *Dimension `json:"indentEnd,omitempty"`
	IndentFirstLine *Dimension `json:"indentFirstLine,omitempty"`
	SpaceAbove      *Dimension `json:"spaceAbove,omitempty"`
	SpaceBelow      *Dimension `json:"spaceBelow,omitempty"`
	KeepWithNext    *bool      `json:"keepWithNext,omitempty"`
}

type Dimension struct {
	Magnitude float64 `json:"magnitude"`
	Unit      string  `json:"unit"`
}

// PT builds a point-unit dimension, the only unit the store accepts for the
// attributes this adapter writes.
func PT(magnitude float64) *Dimension {
	return &Dimension{Magnitude: magnitude, Unit: "PT"}
}

type WeightedFontFamily struct {
	FontFamily string `json:"fontFamily"`
}

type OptionalColor struct {
	Color *Color `json:"color,omitempty"`
}

type Color struct {
	RGBColor *RGBColor `json:"rgbColor,omitempty"`
}

// RGBColor holds normalized [0,1] channel fractions.
type RGBColor struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}

type Link struct {
	URL string `json:"url"`
}

type Range struct {
	StartIndex int64 `json:"startIndex"`
	EndIndex   int64 `json:"endIndex"`
}

type Location struct {
	Index int64 `json:"index"`
}

// Request is the batchUpdate union: exactly one member is set per request.
// A batch is applied atomically by the store; partial application is never
// observable.
type Request struct {
	InsertText             *InsertTextRequest             `json:"insertText,omitempty"`
	DeleteContentRange     *DeleteContentRangeRequest     `json:"deleteContentRange,omitempty"`
	UpdateTextStyle        *UpdateTextStyleRequest        `json:"updateTextStyle,omitempty"`
	UpdateParagraphStyle   *UpdateParagraphStyleRequest   `json:"updateParagraphStyle,omitempty"`
	CreateParagraphBullets *CreateParagraphBulletsRequest `json:"createParagraphBullets,omitempty"`
}

type InsertTextRequest struct {
	Location Location `json:"location"`
	Text     string   `json:"text"`
}

type DeleteContentRangeRequest struct {
	Range Range `json:"range"`
}

type UpdateTextStyleRequest struct {
	Range     Range     `json:"range"`
	TextStyle TextStyle `json:"textStyle"`
	Fields    string    `json:"fields"`
}

type UpdateParagraphStyleRequest struct {
	Range          Range          `json:"range"`
	ParagraphStyle ParagraphStyle `json:"paragraphStyle"`
	Fields         string         `json:"fields"`
}

type CreateParagraphBulletsRequest struct {
	Range        Range  `json:"range"`
	BulletPreset string `json:"bulletPreset"`
}

type batchUpdateBody struct {
	Requests []Request `json:"requests"`
}

type createDocumentBody struct {
	Title string `json:"title,omitempty"`
}

// apiError mirrors the store's error envelope.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
