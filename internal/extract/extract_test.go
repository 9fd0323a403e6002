package extract

import "testing"

func TestText_PlainFallback(t *testing.T) {
	tests := []struct {
		name   string
		fileId string
		data   string
	}{
		{name: "Txt_Extension", fileId: "uploads/a.txt", data: "hello world"},
		{name: "No_Extension", fileId: "uploads/raw", data: "raw bytes"},
		{name: "Markdown", fileId: "uploads/readme.md", data: "# title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Text(tt.fileId, []byte(tt.data))
			if err != nil {
				t.Fatalf("Text failed: %v", err)
			}
			if got != tt.data {
				t.Errorf("got %q, want %q", got, tt.data)
			}
		})
	}
}

func TestText_BadPDFFails(t *testing.T) {
	if _, err := Text("uploads/broken.pdf", []byte("not a pdf at all")); err == nil {
		t.Error("expected an error for a malformed pdf")
	}
}
