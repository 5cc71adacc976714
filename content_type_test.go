package formrec

import (
	"testing"
)

func TestDetectContentType(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    ContentType
		wantErr bool
	}{
		{
			name: "pdf magic number",
			data: []byte("%PDF-1.7\n1 0 obj\n<<>>\nendobj\n"),
			want: ContentTypePDF,
		},
		{
			name: "png magic number",
			data: []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 13, 'I', 'H', 'D', 'R'},
			want: ContentTypePNG,
		},
		{
			name: "jpeg magic number",
			data: []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00},
			want: ContentTypeJPEG,
		},
		{
			name: "tiff little endian",
			data: []byte{'I', 'I', 0x2a, 0x00, 0x08, 0x00, 0x00, 0x00},
			want: ContentTypeTIFF,
		},
		{
			name: "tiff big endian",
			data: []byte{'M', 'M', 0x00, 0x2a, 0x00, 0x00, 0x00, 0x08},
			want: ContentTypeTIFF,
		},
		{
			name:    "plain text",
			data:    []byte("just some text, not a document"),
			wantErr: true,
		},
		{
			name:    "empty",
			data:    []byte{},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := detectContentType(tt.data)
			if (err != nil) != tt.wantErr {
				t.Errorf("detectContentType() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("detectContentType() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveContentType(t *testing.T) {
	pngData := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

	tests := []struct {
		name     string
		explicit ContentType
		data     []byte
		want     ContentType
		wantErr  bool
	}{
		{
			name:     "explicit wins over sniffing",
			explicit: ContentTypePDF,
			data:     pngData,
			want:     ContentTypePDF,
		},
		{
			name: "sniffed when not explicit",
			data: pngData,
			want: ContentTypePNG,
		},
		{
			name:     "explicit wins even for unsniffable data",
			explicit: ContentTypeJPEG,
			data:     []byte("not an image"),
			want:     ContentTypeJPEG,
		},
		{
			name:    "unsupported without explicit",
			data:    []byte("not an image"),
			wantErr: true,
		},
		{
			name:     "explicit outside the supported set",
			explicit: ContentType("text/csv"),
			data:     pngData,
			wantErr:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveContentType(tt.explicit, tt.data)
			if (err != nil) != tt.wantErr {
				t.Errorf("resolveContentType() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("resolveContentType() = %v, want %v", got, tt.want)
			}
		})
	}
}
