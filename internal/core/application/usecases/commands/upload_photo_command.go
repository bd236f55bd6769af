package commands

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"textile/internal/pkg/errs"
	"textile/internal/pkg/guard"
)

var ErrUploadPhotoCommandIsNotConstructed = errors.New(
	"UploadPhotoCommand must be created via NewUploadPhotoCommand constructor",
)

// UploadPhotoCommand carries one image to be stored by the photo store.
type UploadPhotoCommand struct { //nolint:recvcheck //using for validation
	fileName    string
	contentType string
	content     io.Reader

	guard guard.ConstructorGuard
}

// NewUploadPhotoCommand accepts image content types only. The file name is reduced
// to its base name.
func NewUploadPhotoCommand(fileName, contentType string, content io.Reader) (UploadPhotoCommand, error) {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(fileName), `\`, "/"))
	if name == "." || name == "/" || name == "" {
		return UploadPhotoCommand{}, errs.NewValueIsRequiredError("file_name")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return UploadPhotoCommand{}, errs.NewValueIsInvalidErrorWithCause("content_type",
			fmt.Errorf("%q is not an image", contentType))
	}
	if content == nil {
		return UploadPhotoCommand{}, errs.NewValueIsRequiredError("content")
	}

	return UploadPhotoCommand{
		fileName:    name,
		contentType: contentType,
		content:     content,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UploadPhotoCommand) Validate() error {
	return c.guard.Validate(ErrUploadPhotoCommandIsNotConstructed)
}

func (c UploadPhotoCommand) FileName() string    { return c.fileName }
func (c UploadPhotoCommand) ContentType() string { return c.contentType }
func (c UploadPhotoCommand) Content() io.Reader  { return c.content }
