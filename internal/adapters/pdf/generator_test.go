package pdf_test

import (
	"bytes"
	"testing"

	"github.com/johnmikes100/concierge/internal/adapters/pdf"
)

func TestGenerateSummary(t *testing.T) {
	var buf bytes.Buffer
	fields := []pdf.Field{
		{Label: "Full name", Value: "Jane Doe"},
		{Label: `What "Vibe" are you looking for?`, Value: "Cozy café, lively"},
		{Label: `Any "Must-Have" amenities?`, Value: "None selected"},
	}
	if err := pdf.GenerateSummary("New Event Request", fields, &buf); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF (%d bytes)", buf.Len())
	}
}
