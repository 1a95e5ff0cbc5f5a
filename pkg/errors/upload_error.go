package errors

import (
	stderrors "errors"
	"fmt"
)

const (
	CodeValidation       = "validation_failed"
	CodeUnsupportedMedia = "unsupported_media_kind"
	CodeTranscode        = "transcode_failed"
	CodePublish          = "publish_failed"
	CodeRemoteRejected   = "remote_rejected"
	CodeServiceBusy      = "service_busy"
	CodeNotFound         = "not_found"
	CodeInternal         = "internal_error"
)

type UploadError struct {
	Code    string
	Message string
	Err     error
}

func (e *UploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

var (
	ErrValidation = func(err error) *UploadError {
		return &UploadError{Code: CodeValidation, Message: "Invalid upload", Err: err}
	}
	ErrUnsupportedMedia = func(err error) *UploadError {
		return &UploadError{Code: CodeUnsupportedMedia, Message: "Unsupported media type", Err: err}
	}
	ErrTranscode = func(err error) *UploadError {
		return &UploadError{Code: CodeTranscode, Message: "Media could not be processed", Err: err}
	}
	ErrPublish = func(err error) *UploadError {
		return &UploadError{Code: CodePublish, Message: "Upload to storage failed", Err: err}
	}
	ErrRemoteRejected = func(err error) *UploadError {
		return &UploadError{Code: CodeRemoteRejected, Message: "Storage rejected the upload", Err: err}
	}
	ErrServiceBusy = func(err error) *UploadError {
		return &UploadError{Code: CodeServiceBusy, Message: "Service is busy, try again later", Err: err}
	}
	ErrInternal = func(err error) *UploadError {
		return &UploadError{Code: CodeInternal, Message: "Internal server error", Err: err}
	}
)

// CodeOf returns the code of the outermost UploadError in err's chain,
// or CodeInternal when there is none.
func CodeOf(err error) string {
	var ue *UploadError
	if stderrors.As(err, &ue) {
		return ue.Code
	}
	return CodeInternal
}

// IsCode reports whether any UploadError in err's chain carries code.
func IsCode(err error, code string) bool {
	for err != nil {
		var ue *UploadError
		if !stderrors.As(err, &ue) {
			return false
		}
		if ue.Code == code {
			return true
		}
		err = ue.Err
	}
	return false
}
