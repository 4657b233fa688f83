package client

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"sort"

	"github.com/rumsan/docsctl/internal/metrics"
)

// UploadMetadata describes the file part of an upload.
type UploadMetadata struct {
	FileName    string
	ContentType string
	// Fields are sent as additional form fields, in key order.
	Fields map[string]string
}

// Upload streams file to POST /documents/upload as multipart/form-data.
// The service creates the document; callers refetch to observe it.
func (c *Client) Upload(ctx context.Context, file io.Reader, meta UploadMetadata) error {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeMultipart(mw, file, meta))
	}()

	_, err := c.do(ctx, metrics.OpUpload, http.MethodPost, "/documents/upload", pr, mw.FormDataContentType())
	// Unblock the writer goroutine if the request ended before the body was consumed.
	_ = pr.CloseWithError(io.ErrClosedPipe)
	return err
}

func writeMultipart(mw *multipart.Writer, file io.Reader, meta UploadMetadata) error {
	keys := make([]string, 0, len(meta.Fields))
	for k := range meta.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := mw.WriteField(k, meta.Fields[k]); err != nil {
			return fmt.Errorf("write field %s: %w", k, err)
		}
	}

	contentType := meta.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filepath.Base(meta.FileName))))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	return mw.Close()
}

func escapeQuotes(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '"' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
