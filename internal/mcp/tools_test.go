package mcp

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"docs2mcp/internal/config"
	"docs2mcp/internal/gdocs"
	"docs2mcp/internal/model"
)

// fakeStore records traffic so tests can assert what reached the store and,
// just as important, what never did.
type fakeStore struct {
	doc *gdocs.Document

	getCalls  int
	getErr    error
	created   []string
	createErr error
	batches   [][]gdocs.Request
	batchErr  error
}

func (f *fakeStore) Get(_ context.Context, documentID string) (*gdocs.Document, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.doc, nil
}

func (f *fakeStore) Create(_ context.Context, title string) (*gdocs.Document, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, title)
	return &gdocs.Document{DocumentID: "new-doc", Title: title}, nil
}

func (f *fakeStore) BatchUpdate(_ context.Context, _ string, requests []gdocs.Request) error {
	if f.batchErr != nil {
		return f.batchErr
	}
	f.batches = append(f.batches, requests)
	return nil
}

func para(start int64, text string) gdocs.StructuralElement {
	end := start + int64(len(text))
	return gdocs.StructuralElement{
		StartIndex: start,
		EndIndex:   end,
		Paragraph: &gdocs.Paragraph{
			Elements: []gdocs.ParagraphElement{{
				StartIndex: start,
				EndIndex:   end,
				TextRun:    &gdocs.TextRun{Content: text},
			}},
		},
	}
}

func newTestServer(store *fakeStore) *Server {
	cfg := config.Default()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(cfg, store, nil, logger)
}

func callReq(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("result has no content")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T want TextContent", res.Content[0])
	}
	return tc.Text
}

func TestApplyTextStyleHappyPath(t *testing.T) {
	store := &fakeStore{doc: &gdocs.Document{
		DocumentID: "d1",
		Body:       &gdocs.Body{Content: []gdocs.StructuralElement{para(1, "Hello World. Hello Moon.\n")}},
	}}
	s := newTestServer(store)

	res, err := s.handleApplyTextStyle(context.Background(), callReq(map[string]any{
		"document_id":      "d1",
		"target":           "Hello",
		"instance":         float64(2),
		"foreground_color": "#00FF00",
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool failed: %s", resultText(t, res))
	}
	if len(store.batches) != 1 || len(store.batches[0]) != 1 {
		t.Fatalf("batches=%v want one single-op batch", store.batches)
	}
	op := store.batches[0][0].UpdateTextStyle
	if op == nil {
		t.Fatal("expected updateTextStyle")
	}
	if op.Range.StartIndex != 14 || op.Range.EndIndex != 19 {
		t.Fatalf("range=[%d,%d) want [14,19)", op.Range.StartIndex, op.Range.EndIndex)
	}
	if op.Fields != "foregroundColor" {
		t.Fatalf("mask=%q", op.Fields)
	}
	rgb := op.TextStyle.ForegroundColor.Color.RGBColor
	if rgb.Red != 0 || rgb.Green != 1 || rgb.Blue != 0 {
		t.Fatalf("rgb=(%v,%v,%v) want (0,1,0)", rgb.Red, rgb.Green, rgb.Blue)
	}
	out := resultText(t, res)
	if !strings.Contains(out, `"foregroundColor"`) {
		t.Fatalf("result does not name touched fields: %s", out)
	}
}

func TestApplyTextStyleEmptyIntentSkipsNetwork(t *testing.T) {
	store := &fakeStore{}
	s := newTestServer(store)

	res, err := s.handleApplyTextStyle(context.Background(), callReq(map[string]any{
		"document_id": "d1",
		"target":      "Hello",
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected tool error")
	}
	if !strings.Contains(resultText(t, res), model.CodeInvalidIntent) {
		t.Fatalf("result=%s want %s", resultText(t, res), model.CodeInvalidIntent)
	}
	if store.getCalls != 0 || len(store.batches) != 0 {
		t.Fatal("empty intent must fail before any store access")
	}
}

func TestApplyTextStyleAnchorNotFoundNeverMutates(t *testing.T) {
	store := &fakeStore{doc: &gdocs.Document{
		DocumentID: "d1",
		Body:       &gdocs.Body{Content: []gdocs.StructuralElement{para(1, "nothing here\n")}},
	}}
	s := newTestServer(store)

	res, err := s.handleApplyTextStyle(context.Background(), callReq(map[string]any{
		"document_id": "d1",
		"target":      "absent",
		"bold":        true,
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !res.IsError || !strings.Contains(resultText(t, res), model.CodeAnchorNotFound) {
		t.Fatalf("result=%s want %s", resultText(t, res), model.CodeAnchorNotFound)
	}
	// The failure names the target and instance.
	if !strings.Contains(resultText(t, res), `"absent"`) || !strings.Contains(resultText(t, res), "occurrence 1") {
		t.Fatalf("failure not actionable: %s", resultText(t, res))
	}
	if len(store.batches) != 0 {
		t.Fatal("resolution failure must not reach the store")
	}
}

func TestApplyParagraphStyleUsesParagraphRange(t *testing.T) {
	store := &fakeStore{doc: &gdocs.Document{
		DocumentID: "d1",
		Body: &gdocs.Body{Content: []gdocs.StructuralElement{
			para(1, "Alpha one\n"),
			para(11, "Beta target two\n"),
			para(27, "Gamma three\n"),
		}},
	}}
	s := newTestServer(store)

	res, err := s.handleApplyParagraphStyle(context.Background(), callReq(map[string]any{
		"document_id": "d1",
		"target":      "target",
		"named_style": "HEADING_1",
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool failed: %s", resultText(t, res))
	}
	op := store.batches[0][0].UpdateParagraphStyle
	if op == nil {
		t.Fatal("expected updateParagraphStyle")
	}
	if op.Range.StartIndex != 11 || op.Range.EndIndex != 27 {
		t.Fatalf("range=[%d,%d) want full paragraph [11,27)", op.Range.StartIndex, op.Range.EndIndex)
	}
	if op.Fields != "namedStyleType" {
		t.Fatalf("mask=%q", op.Fields)
	}
}

func TestConvertToListEmitsTwoOpsInOrder(t *testing.T) {
	store := &fakeStore{doc: &gdocs.Document{
		DocumentID: "d1",
		Body:       &gdocs.Body{Content: []gdocs.StructuralElement{para(1, "item text\n")}},
	}}
	s := newTestServer(store)

	res, err := s.handleConvertToList(context.Background(), callReq(map[string]any{
		"document_id": "d1",
		"target":      "item",
		"list_type":   "NUMBERED",
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool failed: %s", resultText(t, res))
	}
	batch := store.batches[0]
	if len(batch) != 2 {
		t.Fatalf("batch has %d ops want 2", len(batch))
	}
	if batch[0].UpdateParagraphStyle == nil || batch[1].CreateParagraphBullets == nil {
		t.Fatalf("op order wrong: %+v", batch)
	}
	if batch[1].CreateParagraphBullets.BulletPreset != "NUMBERED_DECIMAL_ALPHA_ROMAN" {
		t.Fatalf("preset=%q", batch[1].CreateParagraphBullets.BulletPreset)
	}
}

func TestConvertToListCustomStartRejectedBeforeFetch(t *testing.T) {
	store := &fakeStore{}
	s := newTestServer(store)

	res, err := s.handleConvertToList(context.Background(), callReq(map[string]any{
		"document_id": "d1",
		"target":      "item",
		"list_type":   "NUMBERED",
		"start_at":    float64(4),
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !res.IsError || !strings.Contains(resultText(t, res), model.CodeUnsupportedFeature) {
		t.Fatalf("result=%s want %s", resultText(t, res), model.CodeUnsupportedFeature)
	}
	if store.getCalls != 0 {
		t.Fatal("unsupported start value must be rejected before fetching")
	}
}

func TestInsertTextReplace(t *testing.T) {
	store := &fakeStore{doc: &gdocs.Document{
		DocumentID: "d1",
		Body:       &gdocs.Body{Content: []gdocs.StructuralElement{para(1, "old content here\n")}},
	}}
	s := newTestServer(store)

	res, err := s.handleInsertText(context.Background(), callReq(map[string]any{
		"document_id": "d1",
		"text":        "brand new",
		"mode":        "replace",
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool failed: %s", resultText(t, res))
	}
	batch := store.batches[0]
	if len(batch) != 2 {
		t.Fatalf("batch has %d ops want 2", len(batch))
	}
	del := batch[0].DeleteContentRange
	if del == nil || del.Range.StartIndex != 1 || del.Range.EndIndex != 17 {
		t.Fatalf("first op=%+v want delete [1,17)", batch[0])
	}
	ins := batch[1].InsertText
	if ins == nil || ins.Location.Index != 1 || ins.Text != "brand new" {
		t.Fatalf("second op=%+v", batch[1])
	}
}

func TestInsertTextAppend(t *testing.T) {
	store := &fakeStore{doc: &gdocs.Document{
		DocumentID: "d1",
		Body:       &gdocs.Body{Content: []gdocs.StructuralElement{para(1, "existing\n")}},
	}}
	s := newTestServer(store)

	res, err := s.handleInsertText(context.Background(), callReq(map[string]any{
		"document_id": "d1",
		"text":        " more",
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool failed: %s", resultText(t, res))
	}
	batch := store.batches[0]
	if len(batch) != 1 {
		t.Fatalf("batch has %d ops want 1", len(batch))
	}
	if batch[0].InsertText.Location.Index != 9 {
		t.Fatalf("append at %d want 9", batch[0].InsertText.Location.Index)
	}
}

func TestDeleteRangeInvalidSkipsStore(t *testing.T) {
	store := &fakeStore{}
	s := newTestServer(store)

	res, err := s.handleDeleteRange(context.Background(), callReq(map[string]any{
		"document_id": "d1",
		"start_index": float64(10),
		"end_index":   float64(5),
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !res.IsError || !strings.Contains(resultText(t, res), model.CodeInvalidRange) {
		t.Fatalf("result=%s want %s", resultText(t, res), model.CodeInvalidRange)
	}
	if store.getCalls != 0 || len(store.batches) != 0 {
		t.Fatal("invalid range must not reach the store")
	}
}

func TestStoreRejectionPropagates(t *testing.T) {
	store := &fakeStore{
		doc: &gdocs.Document{
			DocumentID: "d1",
			Body:       &gdocs.Body{Content: []gdocs.StructuralElement{para(1, "text\n")}},
		},
		batchErr: model.NewError(model.CodeStoreRejected, "Invalid requests[0]"),
	}
	s := newTestServer(store)

	res, err := s.handleInsertText(context.Background(), callReq(map[string]any{
		"document_id": "d1",
		"text":        "x",
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected tool error")
	}
	out := resultText(t, res)
	if !strings.Contains(out, model.CodeStoreRejected) || !strings.Contains(out, "Invalid requests[0]") {
		t.Fatalf("store message swallowed: %s", out)
	}
}

func TestCreateDocumentWithBody(t *testing.T) {
	store := &fakeStore{}
	s := newTestServer(store)

	res, err := s.handleCreateDocument(context.Background(), callReq(map[string]any{
		"title": "Report",
		"body":  "Opening line.",
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool failed: %s", resultText(t, res))
	}
	if len(store.created) != 1 || store.created[0] != "Report" {
		t.Fatalf("created=%v", store.created)
	}
	if len(store.batches) != 1 || store.batches[0][0].InsertText == nil {
		t.Fatalf("initial body not inserted: %v", store.batches)
	}
	if !strings.Contains(resultText(t, res), "new-doc") {
		t.Fatalf("result=%s", resultText(t, res))
	}
}

func TestReadDocument(t *testing.T) {
	store := &fakeStore{doc: &gdocs.Document{
		DocumentID: "d1",
		Title:      "Notes",
		Body:       &gdocs.Body{Content: []gdocs.StructuralElement{para(1, "line one\n"), para(10, "line two\n")}},
	}}
	s := newTestServer(store)

	res, err := s.handleReadDocument(context.Background(), callReq(map[string]any{
		"document_id": "d1",
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool failed: %s", resultText(t, res))
	}
	out := resultText(t, res)
	for _, want := range []string{"Notes", "line one", "line two"} {
		if !strings.Contains(out, want) {
			t.Fatalf("result missing %q: %s", want, out)
		}
	}
}
