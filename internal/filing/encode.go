package filing

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// Encoding selects the character encoding of the emitted document.
// Legacy regulator endpoints still accept ISO-8859-2 uploads.
type Encoding string

const (
	EncodingUTF8 Encoding = "utf-8"
	EncodingISO2 Encoding = "iso-8859-2"
)

// render marshals doc with a declaration matching the requested
// encoding. The document structs carry fixed element order, so output
// is byte-stable for equal input.
func render(doc any, enc Encoding) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("<?xml version=\"1.0\" encoding=\"%s\"?>\n", declaredCharset(enc)))

	e := xml.NewEncoder(&buf)
	e.Indent("", "  ")
	if err := e.Encode(doc); err != nil {
		return "", err
	}
	if err := e.Close(); err != nil {
		return "", err
	}
	buf.WriteByte('\n')

	if enc == EncodingISO2 {
		out, err := charmap.ISO8859_2.NewEncoder().String(buf.String())
		if err != nil {
			return "", err
		}
		return out, nil
	}
	return buf.String(), nil
}

func declaredCharset(enc Encoding) string {
	if enc == EncodingISO2 {
		return "ISO-8859-2"
	}
	return "UTF-8"
}

// ParseEncoding maps a request parameter onto a supported Encoding.
// Empty input defaults to UTF-8.
func ParseEncoding(s string) (Encoding, error) {
	switch s {
	case "", "utf-8", "UTF-8":
		return EncodingUTF8, nil
	case "iso-8859-2", "ISO-8859-2":
		return EncodingISO2, nil
	}
	return "", fmt.Errorf("filing: unsupported encoding %q", s)
}
