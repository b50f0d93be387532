package assistservice

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	args := m.Called(prompt, cfg)
	return args.String(0), args.Error(1)
}
