package formrec

import (
	"github.com/gabriel-vasile/mimetype"
)

// ContentType identifies the format of a document submitted for analysis.
// The service supports a fixed set of formats; anything else is rejected
// before the request is sent.
type ContentType string

const (
	ContentTypePDF  ContentType = "application/pdf"
	ContentTypeJPEG ContentType = "image/jpeg"
	ContentTypePNG  ContentType = "image/png"
	ContentTypeTIFF ContentType = "image/tiff"
)

// supportedContentTypes maps detected MIME types onto the formats the
// service accepts.
var supportedContentTypes = map[string]ContentType{
	"application/pdf": ContentTypePDF,
	"image/jpeg":      ContentTypeJPEG,
	"image/png":       ContentTypePNG,
	"image/tiff":      ContentTypeTIFF,
}

// detectContentType sniffs the leading bytes of a document and returns the
// matching supported format.
func detectContentType(data []byte) (ContentType, error) {
	mime := mimetype.Detect(data)
	for m := mime; m != nil; m = m.Parent() {
		if ct, ok := supportedContentTypes[m.String()]; ok {
			return ct, nil
		}
	}
	return "", ErrInvalidOperation{
		Message: "unsupported document format (" + mime.String() + "): expected pdf, jpeg, png or tiff",
	}
}

// resolveContentType applies the precedence order for the submitted format:
// an explicit option always wins over sniffing, but it must still name one
// of the supported formats; otherwise the document bytes are sniffed.
func resolveContentType(explicit ContentType, data []byte) (ContentType, error) {
	if explicit != "" {
		if _, ok := supportedContentTypes[string(explicit)]; !ok {
			return "", ErrInvalidOperation{
				Message: "unsupported content type (" + string(explicit) + "): expected pdf, jpeg, png or tiff",
			}
		}
		return explicit, nil
	}
	return detectContentType(data)
}
