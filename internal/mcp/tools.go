package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"docs2mcp/internal/document"
	"docs2mcp/internal/gdocs"
	"docs2mcp/internal/journal"
	"docs2mcp/internal/model"
	"docs2mcp/internal/planner"
)

const (
	toolNameReadDocument        = "docs2mcp.read_document"
	toolNameCreateDocument      = "docs2mcp.create_document"
	toolNameInsertText          = "docs2mcp.insert_text"
	toolNameApplyTextStyle      = "docs2mcp.apply_text_style"
	toolNameApplyParagraphStyle = "docs2mcp.apply_paragraph_style"
	toolNameConvertToList       = "docs2mcp.convert_to_list"
	toolNameDeleteRange         = "docs2mcp.delete_range"
)

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool(toolNameReadDocument,
		mcp.WithDescription("Read a document's title and full text content."),
		mcp.WithString("document_id", mcp.Required(), mcp.Description("Document identifier.")),
	), s.handleReadDocument)

	s.mcp.AddTool(mcp.NewTool(toolNameCreateDocument,
		mcp.WithDescription("Create a new document, optionally with initial body text."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Title for the new document.")),
		mcp.WithString("body", mcp.Description("Initial text content.")),
	), s.handleCreateDocument)

	s.mcp.AddTool(mcp.NewTool(toolNameInsertText,
		mcp.WithDescription("Append text to a document, or replace the entire document content."),
		mcp.WithString("document_id", mcp.Required(), mcp.Description("Document identifier.")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to write.")),
		mcp.WithString("mode", mcp.Description("append (default) or replace."),
			mcp.Enum("append", "replace")),
	), s.handleInsertText)

	s.mcp.AddTool(mcp.NewTool(toolNameApplyTextStyle,
		mcp.WithDescription("Apply character styling to an occurrence of target text. Only supplied attributes are changed."),
		mcp.WithString("document_id", mcp.Required(), mcp.Description("Document identifier.")),
		mcp.WithString("target", mcp.Required(), mcp.Description("Exact text to style.")),
		mcp.WithNumber("instance", mcp.Description("1-based occurrence of target (default 1).")),
		mcp.WithBoolean("bold", mcp.Description("Set or clear bold.")),
		mcp.WithBoolean("italic", mcp.Description("Set or clear italic.")),
		mcp.WithBoolean("underline", mcp.Description("Set or clear underline.")),
		mcp.WithBoolean("strikethrough", mcp.Description("Set or clear strikethrough.")),
		mcp.WithNumber("font_size", mcp.Description("Font size in points.")),
		mcp.WithString("font_family", mcp.Description("Font family name, e.g. Arial.")),
		mcp.WithString("foreground_color", mcp.Description("Text color as #RRGGBB.")),
		mcp.WithString("background_color", mcp.Description("Highlight color as #RRGGBB.")),
		mcp.WithString("link_url", mcp.Description("Turn the target into a hyperlink to this URL.")),
	), s.handleApplyTextStyle)

	s.mcp.AddTool(mcp.NewTool(toolNameApplyParagraphStyle,
		mcp.WithDescription("Apply paragraph styling to the paragraph containing target text. Only supplied attributes are changed."),
		mcp.WithString("document_id", mcp.Required(), mcp.Description("Document identifier.")),
		mcp.WithString("target", mcp.Required(), mcp.Description("Text inside the paragraph to style.")),
		mcp.WithNumber("instance", mcp.Description("1-based index among paragraphs containing target (default 1).")),
		mcp.WithString("named_style", mcp.Description("NORMAL_TEXT, TITLE, SUBTITLE or HEADING_1..HEADING_6."),
			mcp.Enum("NORMAL_TEXT", "TITLE", "SUBTITLE", "HEADING_1", "HEADING_2", "HEADING_3", "HEADING_4", "HEADING_5", "HEADING_6")),
		mcp.WithString("alignment", mcp.Description("LEFT, CENTER, RIGHT or JUSTIFIED."),
			mcp.Enum("LEFT", "CENTER", "RIGHT", "JUSTIFIED")),
		mcp.WithNumber("indent_start", mcp.Description("Leading indent in points.")),
		mcp.WithNumber("indent_end", mcp.Description("Trailing indent in points.")),
		mcp.WithNumber("space_above", mcp.Description("Space above the paragraph in points.")),
		mcp.WithNumber("space_below", mcp.Description("Space below the paragraph in points.")),
		mcp.WithBoolean("keep_with_next", mcp.Description("Keep the paragraph on the same page as the next one.")),
	), s.handleApplyParagraphStyle)

	s.mcp.AddTool(mcp.NewTool(toolNameConvertToList,
		mcp.WithDescription("Convert the paragraph containing target text into a list item."),
		mcp.WithString("document_id", mcp.Required(), mcp.Description("Document identifier.")),
		mcp.WithString("target", mcp.Required(), mcp.Description("Text inside the paragraph to convert.")),
		mcp.WithNumber("instance", mcp.Description("1-based index among paragraphs containing target (default 1).")),
		mcp.WithString("list_type", mcp.Required(), mcp.Description("BULLET, NUMBERED, ALPHA or ROMAN."),
			mcp.Enum("BULLET", "NUMBERED", "ALPHA", "ROMAN")),
		mcp.WithNumber("indent_level", mcp.Description("Nesting level, 0 for top level (default 0).")),
		mcp.WithNumber("start_at", mcp.Description("Starting number for numbered lists. Only the default 1 is supported.")),
	), s.handleConvertToList)

	s.mcp.AddTool(mcp.NewTool(toolNameDeleteRange,
		mcp.WithDescription("Delete a half-open character range [start_index, end_index) from a document."),
		mcp.WithString("document_id", mcp.Required(), mcp.Description("Document identifier.")),
		mcp.WithNumber("start_index", mcp.Required(), mcp.Description("First offset to delete (1-based).")),
		mcp.WithNumber("end_index", mcp.Required(), mcp.Description("Offset past the last character to delete.")),
	), s.handleDeleteRange)
}

func (s *Server) handleReadDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docID, err := req.RequireString("document_id")
	if err != nil {
		return mcp.NewToolResultError("document_id is required"), nil
	}
	doc, err := s.store.Get(ctx, docID)
	if err != nil {
		return s.failure(ctx, toolNameReadDocument, docID, err), nil
	}
	return jsonResult(map[string]any{
		"documentId": doc.DocumentID,
		"title":      doc.Title,
		"length":     document.Length(doc),
		"content":    document.PlainText(doc),
	})
}

func (s *Server) handleCreateDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title is required"), nil
	}
	doc, err := s.store.Create(ctx, title)
	if err != nil {
		return s.failure(ctx, toolNameCreateDocument, "", err), nil
	}
	if body := req.GetString("body", ""); body != "" {
		ops := []gdocs.Request{planner.AppendOp(body, 1)}
		if err := s.store.BatchUpdate(ctx, doc.DocumentID, ops); err != nil {
			return s.failure(ctx, toolNameCreateDocument, doc.DocumentID, err), nil
		}
	}
	s.record(ctx, toolNameCreateDocument, doc.DocumentID, 1, "", nil)
	return jsonResult(map[string]any{
		"documentId": doc.DocumentID,
		"title":      doc.Title,
	})
}

func (s *Server) handleInsertText(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docID, err := req.RequireString("document_id")
	if err != nil {
		return mcp.NewToolResultError("document_id is required"), nil
	}
	text, err := req.RequireString("text")
	if err != nil || text == "" {
		return mcp.NewToolResultError("text is required"), nil
	}
	mode := req.GetString("mode", "append")
	if mode != "append" && mode != "replace" {
		return mcp.NewToolResultError(fmt.Sprintf("invalid mode %q: want append or replace", mode)), nil
	}

	// Length reflects live store state and is recomputed from a fresh
	// fetch on every call.
	doc, err := s.store.Get(ctx, docID)
	if err != nil {
		return s.failure(ctx, toolNameInsertText, docID, err), nil
	}
	length := document.Length(doc)

	var ops []gdocs.Request
	if mode == "replace" {
		ops = planner.ReplaceAllOps(text, length)
	} else {
		ops = []gdocs.Request{planner.AppendOp(text, length)}
	}
	if err := s.store.BatchUpdate(ctx, docID, ops); err != nil {
		return s.failure(ctx, toolNameInsertText, docID, err), nil
	}
	s.record(ctx, toolNameInsertText, docID, len(ops), "", nil)
	return jsonResult(map[string]any{
		"documentId": docID,
		"mode":       mode,
		"operations": len(ops),
		"inserted":   len(text),
	})
}

func (s *Server) handleApplyTextStyle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docID, err := req.RequireString("document_id")
	if err != nil {
		return mcp.NewToolResultError("document_id is required"), nil
	}
	target, err := req.RequireString("target")
	if err != nil || target == "" {
		return mcp.NewToolResultError("target is required"), nil
	}
	instance := req.GetInt("instance", 1)

	intent := planner.TextStyleIntent{
		Bold:            optBool(req, "bold"),
		Italic:          optBool(req, "italic"),
		Underline:       optBool(req, "underline"),
		Strikethrough:   optBool(req, "strikethrough"),
		FontSize:        optFloat(req, "font_size"),
		FontFamily:      optString(req, "font_family"),
		ForegroundColor: optString(req, "foreground_color"),
		BackgroundColor: optString(req, "background_color"),
		LinkURL:         optString(req, "link_url"),
	}
	// Fail fast: an empty intent never reaches the network.
	if intent.Empty() {
		return s.failure(ctx, toolNameApplyTextStyle, docID,
			model.NewError(model.CodeInvalidIntent, "no style attribute supplied")), nil
	}

	doc, err := s.store.Get(ctx, docID)
	if err != nil {
		return s.failure(ctx, toolNameApplyTextStyle, docID, err), nil
	}
	r, err := document.ResolveText(document.Flatten(doc), target, instance)
	if err != nil {
		return s.failure(ctx, toolNameApplyTextStyle, docID, err), nil
	}
	op, fields, err := planner.TextStyleOp(intent, r)
	if err != nil {
		return s.failure(ctx, toolNameApplyTextStyle, docID, err), nil
	}
	if err := s.store.BatchUpdate(ctx, docID, []gdocs.Request{op}); err != nil {
		return s.failure(ctx, toolNameApplyTextStyle, docID, err), nil
	}
	s.record(ctx, toolNameApplyTextStyle, docID, 1, strings.Join(fields, ","), nil)
	return jsonResult(map[string]any{
		"documentId": docID,
		"target":     target,
		"instance":   instance,
		"startIndex": r.StartIndex,
		"endIndex":   r.EndIndex,
		"fields":     fields,
	})
}

func (s *Server) handleApplyParagraphStyle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docID, err := req.RequireString("document_id")
	if err != nil {
		return mcp.NewToolResultError("document_id is required"), nil
	}
	target, err := req.RequireString("target")
	if err != nil || target == "" {
		return mcp.NewToolResultError("target is required"), nil
	}
	instance := req.GetInt("instance", 1)

	intent := planner.ParagraphStyleIntent{
		NamedStyle:   optString(req, "named_style"),
		Alignment:    optString(req, "alignment"),
		IndentStart:  optFloat(req, "indent_start"),
		IndentEnd:    optFloat(req, "indent_end"),
		SpaceAbove:   optFloat(req, "space_above"),
		SpaceBelow:   optFloat(req, "space_below"),
		KeepWithNext: optBool(req, "keep_with_next"),
	}
	if intent.Empty() {
		return s.failure(ctx, toolNameApplyParagraphStyle, docID,
			model.NewError(model.CodeInvalidIntent, "no style attribute supplied")), nil
	}

	doc, err := s.store.Get(ctx, docID)
	if err != nil {
		return s.failure(ctx, toolNameApplyParagraphStyle, docID, err), nil
	}
	r, err := document.ResolveParagraph(document.Flatten(doc), target, instance)
	if err != nil {
		return s.failure(ctx, toolNameApplyParagraphStyle, docID, err), nil
	}
	op, fields, err := planner.ParagraphStyleOp(intent, r)
	if err != nil {
		return s.failure(ctx, toolNameApplyParagraphStyle, docID, err), nil
	}
	if err := s.store.BatchUpdate(ctx, docID, []gdocs.Request{op}); err != nil {
		return s.failure(ctx, toolNameApplyParagraphStyle, docID, err), nil
	}
	s.record(ctx, toolNameApplyParagraphStyle, docID, 1, strings.Join(fields, ","), nil)
	return jsonResult(map[string]any{
		"documentId": docID,
		"target":     target,
		"instance":   instance,
		"startIndex": r.StartIndex,
		"endIndex":   r.EndIndex,
		"fields":     fields,
	})
}

func (s *Server) handleConvertToList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docID, err := req.RequireString("document_id")
	if err != nil {
		return mcp.NewToolResultError("document_id is required"), nil
	}
	target, err := req.RequireString("target")
	if err != nil || target == "" {
		return mcp.NewToolResultError("target is required"), nil
	}
	listType, err := req.RequireString("list_type")
	if err != nil {
		return mcp.NewToolResultError("list_type is required"), nil
	}
	instance := req.GetInt("instance", 1)

	intent := planner.ListIntent{
		Kind:        planner.ListKind(listType),
		IndentLevel: req.GetInt("indent_level", 0),
		StartAt:     optInt(req, "start_at"),
	}
	// Validate before fetching so unsupported start values are rejected
	// without touching the store.
	if err := intent.Validate(); err != nil {
		return s.failure(ctx, toolNameConvertToList, docID, err), nil
	}

	doc, err := s.store.Get(ctx, docID)
	if err != nil {
		return s.failure(ctx, toolNameConvertToList, docID, err), nil
	}
	r, err := document.ResolveParagraph(document.Flatten(doc), target, instance)
	if err != nil {
		return s.failure(ctx, toolNameConvertToList, docID, err), nil
	}
	ops, err := planner.ListOps(intent, r)
	if err != nil {
		return s.failure(ctx, toolNameConvertToList, docID, err), nil
	}
	if err := s.store.BatchUpdate(ctx, docID, ops); err != nil {
		return s.failure(ctx, toolNameConvertToList, docID, err), nil
	}
	s.record(ctx, toolNameConvertToList, docID, len(ops), "indentStart,indentFirstLine", nil)
	return jsonResult(map[string]any{
		"documentId": docID,
		"target":     target,
		"instance":   instance,
		"listType":   listType,
		"startIndex": r.StartIndex,
		"endIndex":   r.EndIndex,
		"operations": len(ops),
	})
}

func (s *Server) handleDeleteRange(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docID, err := req.RequireString("document_id")
	if err != nil {
		return mcp.NewToolResultError("document_id is required"), nil
	}
	start, err := req.RequireInt("start_index")
	if err != nil {
		return mcp.NewToolResultError("start_index is required"), nil
	}
	end, err := req.RequireInt("end_index")
	if err != nil {
		return mcp.NewToolResultError("end_index is required"), nil
	}

	op, err := planner.DeleteRangeOp(int64(start), int64(end))
	if err != nil {
		// Range validation happens before any store call.
		return s.failure(ctx, toolNameDeleteRange, docID, err), nil
	}
	if err := s.store.BatchUpdate(ctx, docID, []gdocs.Request{op}); err != nil {
		return s.failure(ctx, toolNameDeleteRange, docID, err), nil
	}
	s.record(ctx, toolNameDeleteRange, docID, 1, "", nil)
	return jsonResult(map[string]any{
		"documentId": docID,
		"startIndex": start,
		"endIndex":   end,
	})
}

// failure journals and converts a typed error into a tool error result. The
// error code prefixes the message so clients can branch without parsing
// prose.
func (s *Server) failure(ctx context.Context, tool, docID string, err error) *mcp.CallToolResult {
	s.record(ctx, tool, docID, 0, "", err)
	s.log.Warn("tool call failed", "tool", tool, "document_id", docID, "error", err)
	return mcp.NewToolResultError(err.Error())
}

// record writes a journal entry when journaling is enabled. Journal failures
// are logged and never fail the tool call.
func (s *Server) record(ctx context.Context, tool, docID string, opCount int, fields string, callErr error) {
	if s.journal == nil {
		return
	}
	outcome := "ok"
	detail := ""
	if callErr != nil {
		outcome = model.CodeOf(callErr)
		if outcome == "" {
			outcome = "error"
		}
		detail = callErr.Error()
	}
	e := journal.Entry{
		Tool:       tool,
		DocumentID: docID,
		OpCount:    opCount,
		Fields:     fields,
		Outcome:    outcome,
		Detail:     detail,
	}
	if err := s.journal.Record(ctx, e); err != nil {
		s.log.Warn("journal write failed", "tool", tool, "error", err)
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("encoding result: " + err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// optString and friends distinguish "absent" from "zero value"; absence
// means leave-unchanged for style attributes.
func optString(req mcp.CallToolRequest, key string) *string {
	v, ok := req.GetArguments()[key]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

func optBool(req mcp.CallToolRequest, key string) *bool {
	v, ok := req.GetArguments()[key]
	if !ok {
		return nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil
	}
	return &b
}

func optFloat(req mcp.CallToolRequest, key string) *float64 {
	v, ok := req.GetArguments()[key]
	if !ok {
		return nil
	}
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	return &f
}

func optInt(req mcp.CallToolRequest, key string) *int {
	f := optFloat(req, key)
	if f == nil {
		return nil
	}
	i := int(*f)
	return &i
}
