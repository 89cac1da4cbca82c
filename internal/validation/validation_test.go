package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pireader/provision/internal/validation"
)

func TestValidatePackageName_Valid(t *testing.T) {
	t.Parallel()

	for _, name := range []string{
		"tesseract-ocr",
		"python3-rpi-lgpio",
		"pyspellchecker",
		"libstdc++6",
		"python3.11",
	} {
		assert.NoError(t, validation.ValidatePackageName(name), name)
	}
}

func TestValidatePackageName_Invalid(t *testing.T) {
	t.Parallel()

	for _, name := range []string{
		"",
		"pkg; rm -rf /",
		"pkg`id`",
		"pkg$(whoami)",
		"-leading-dash",
		"pkg name",
	} {
		assert.Error(t, validation.ValidatePackageName(name), name)
	}
}

func TestValidatePath(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validation.ValidatePath("/home/pi/reader/sounds"))
	assert.NoError(t, validation.ValidatePath("corrections/training_data"))

	assert.Error(t, validation.ValidatePath(""))
	assert.Error(t, validation.ValidatePath("../../etc/passwd"))
	assert.Error(t, validation.ValidatePath("bad\x00path"))
}

func TestValidateURL(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validation.ValidateURL("https://github.com/rhasspy/piper/releases/download/v1/piper.tar.gz"))
	assert.NoError(t, validation.ValidateURL("http://example.com/model.onnx"))

	assert.Error(t, validation.ValidateURL(""))
	assert.Error(t, validation.ValidateURL("ftp://example.com/file"))
	assert.Error(t, validation.ValidateURL("file:///etc/passwd"))
	assert.Error(t, validation.ValidateURL("https://"))
}

func TestValidateAlsaDevice(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validation.ValidateAlsaDevice("plughw:CARD=UACDemoV10,DEV=0"))
	assert.NoError(t, validation.ValidateAlsaDevice("default"))

	assert.Error(t, validation.ValidateAlsaDevice(""))
	assert.Error(t, validation.ValidateAlsaDevice("hw:0; reboot"))
}
