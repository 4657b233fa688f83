package models

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MaxFileNameLength bounds the stored file name.
const MaxFileNameLength = 255

// DefaultMaxUploadBytes is used when no explicit limit is configured.
const DefaultMaxUploadBytes int64 = 25 << 20

// UploadRequest describes a local file to send to the document service.
type UploadRequest struct {
	Path        string
	FileName    string
	Size        int64
	ContentType string
	Metadata    map[string]string

	// MaxBytes is the largest accepted Size. Zero means DefaultMaxUploadBytes.
	MaxBytes int64
}

// Validate checks the request before any bytes leave the machine.
func (r UploadRequest) Validate() error {
	maxBytes := r.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Path, validation.Required),
		validation.Field(&r.FileName,
			validation.Required,
			validation.Length(1, MaxFileNameLength),
		),
		validation.Field(&r.Size,
			validation.Required.Error("file is empty"),
			validation.By(func(value interface{}) error {
				if value.(int64) > maxBytes {
					return errors.New("file exceeds the upload size limit")
				}
				return nil
			}),
		),
	)
}
