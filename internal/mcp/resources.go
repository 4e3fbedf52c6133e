package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"docs2mcp/internal/document"
	"docs2mcp/internal/model"
)

const resourceScheme = "gdocs://"

func (s *Server) registerResources() {
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(
			resourceScheme+"{document_id}",
			"Document",
			mcp.WithTemplateDescription("Plain text content of a document by id"),
			mcp.WithTemplateMIMEType("text/plain"),
		),
		s.readDocumentResource,
	)
}

func (s *Server) readDocumentResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	docID := strings.TrimPrefix(req.Params.URI, resourceScheme)
	if docID == "" || docID == req.Params.URI {
		return nil, model.NewError(model.CodeDocNotFound, "malformed resource URI: "+req.Params.URI)
	}
	doc, err := s.store.Get(ctx, docID)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     document.PlainText(doc),
		},
	}, nil
}
