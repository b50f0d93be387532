package galleryservice

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type MockAssetHost struct {
	mock.Mock
}

func (m *MockAssetHost) Upload(ctx context.Context, folder, filename, contentType string, r io.Reader, size int64) (string, error) {
	if r != nil {
		io.Copy(io.Discard, r)
	}
	args := m.Called(folder, filename, contentType, size)
	return args.String(0), args.Error(1)
}

func (m *MockAssetHost) Destroy(ctx context.Context, folder, publicID string) error {
	args := m.Called(folder, publicID)
	return args.Error(0)
}
