package commands_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"textile/internal/core/application/usecases/commands"
	"textile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPhotoStore struct{ mock.Mock }

func (m *MockPhotoStore) Upload(ctx context.Context, fileName, contentType string, content io.Reader) (string, error) {
	args := m.Called(ctx, fileName, contentType, content)
	return args.String(0), args.Error(1)
}

func TestNewUploadPhotoCommand(t *testing.T) {
	t.Run("keeps only the base name", func(t *testing.T) {
		cmd, err := commands.NewUploadPhotoCommand(`C:\photos\sheet.jpg`, "image/jpeg", strings.NewReader("x"))
		require.NoError(t, err)
		assert.Equal(t, "sheet.jpg", cmd.FileName())
	})

	t.Run("rejects non-image content", func(t *testing.T) {
		_, err := commands.NewUploadPhotoCommand("notes.pdf", "application/pdf", strings.NewReader("x"))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("requires a file name", func(t *testing.T) {
		_, err := commands.NewUploadPhotoCommand(" ", "image/png", strings.NewReader("x"))
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestUploadPhotoCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	content := strings.NewReader("jpeg bytes")
	cmd, err := commands.NewUploadPhotoCommand("sheet.jpg", "image/jpeg", content)
	require.NoError(t, err)

	store := new(MockPhotoStore)
	store.On("Upload", ctx, "sheet.jpg", "image/jpeg", content).
		Return("https://cdn/photos/abc-sheet.jpg", nil).Once()

	ref, err := commands.NewUploadPhotoCommandHandler(store).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "https://cdn/photos/abc-sheet.jpg", ref)
	store.AssertExpectations(t)
}
