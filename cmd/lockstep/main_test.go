package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lockstep/internal/app"
	"go.trai.ch/lockstep/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func TestRun(t *testing.T) {
	t.Run("provider failure prints the error and exits 1", func(t *testing.T) {
		var stderr bytes.Buffer
		code := run(context.Background(), nil, &stderr, func(context.Context) (*app.Components, error) {
			return nil, zerr.New("wiring failed")
		})

		assert.Equal(t, 1, code)
		assert.Contains(t, stderr.String(), "Error: wiring failed")
	})

	t.Run("command failure logs through the component logger", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		logger := mocks.NewMockLogger(ctrl)
		logger.EXPECT().Error(gomock.Any())

		components := &app.Components{
			App:    app.New(nil, nil, nil, logger, nil),
			Logger: logger,
		}

		var stderr bytes.Buffer
		code := run(context.Background(), []string{"version", "--type", "bogus"}, &stderr, func(context.Context) (*app.Components, error) {
			return components, nil
		})

		assert.Equal(t, 1, code)
	})

	t.Run("version flag succeeds without touching the app", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		logger := mocks.NewMockLogger(ctrl)

		components := &app.Components{
			App:    app.New(nil, nil, nil, logger, nil),
			Logger: logger,
		}

		var stderr bytes.Buffer
		code := run(context.Background(), []string{"--version"}, &stderr, func(context.Context) (*app.Components, error) {
			return components, nil
		})

		require.Equal(t, 0, code)
	})
}
