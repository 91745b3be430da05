package validators

import (
	"encoding/base64"
	"errors"
	"strings"

	"bitwise74/files-api/internal/model"
)

var (
	ErrNameEmpty   = errors.New("Missing name")
	ErrTypeInvalid = errors.New("Missing type")
	ErrDataEmpty   = errors.New("Missing data")
	ErrDataInvalid = errors.New("Invalid data")
)

// FileValidator checks the fields of a new file record in the order clients
// expect the errors. Data is only required for non folders.
func FileValidator(name string, t model.FileType, data *string) error {
	if name == "" {
		return ErrNameEmpty
	}

	if !t.Valid() {
		return ErrTypeInvalid
	}

	if t != model.TypeFolder && (data == nil || *data == "") {
		return ErrDataEmpty
	}

	return nil
}

// DecodeData decodes standard base64 file content, padded or not
func DecodeData(data string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(data)
	if err == nil {
		return b, nil
	}

	b, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(data, "="))
	if err != nil {
		return nil, ErrDataInvalid
	}

	return b, nil
}
