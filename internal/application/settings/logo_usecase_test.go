package settings_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/factuurr/internal/application/editor"
	"github.com/jhoicas/factuurr/internal/application/settings"
	"github.com/jhoicas/factuurr/internal/domain"
	"github.com/jhoicas/factuurr/pkg/logger"
)

type fakeEncoder struct {
	url string
	err error
}

func (e fakeEncoder) Encode([]byte) (string, error) { return e.url, e.err }

func TestUpload_GuardaLogo(t *testing.T) {
	ctrl := editor.New(editor.Options{})
	uc := settings.NewLogoUseCase(ctrl, fakeEncoder{url: "data:image/png;base64,AQID"}, 1024, logger.Nop())

	url, err := uc.Upload(bytes.NewReader([]byte{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AQID", url)
	assert.Equal(t, url, ctrl.Active().Sender.LogoURL)
}

func TestUpload_DemasiadoGrande(t *testing.T) {
	ctrl := editor.New(editor.Options{})
	uc := settings.NewLogoUseCase(ctrl, fakeEncoder{url: "x"}, 4, logger.Nop())

	_, err := uc.Upload(bytes.NewReader(make([]byte, 5)))
	assert.True(t, errors.Is(err, domain.ErrUnsupportedImage))
	assert.Empty(t, ctrl.Active().Sender.LogoURL)
}

func TestUpload_ImagenInvalida(t *testing.T) {
	ctrl := editor.New(editor.Options{})
	uc := settings.NewLogoUseCase(ctrl, fakeEncoder{err: domain.ErrUnsupportedImage}, 1024, logger.Nop())

	_, err := uc.Upload(bytes.NewReader([]byte("no es imagen")))
	assert.True(t, errors.Is(err, domain.ErrUnsupportedImage))
	assert.Empty(t, ctrl.Active().Sender.LogoURL)
}
