package webutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go_gpa_keep/internal/model"
)

// maxJSONBodyBytes はJSONリクエストボディの上限です（画像アップロードは別経路）。
const maxJSONBodyBytes = 1 << 20

// DecodeJSONBody はリクエストボディをデコードします
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return model.ErrInvalidInput
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxJSONBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errors.Join(model.ErrInvalidInput, err)
	}
	// 2つ目のJSON値が続く場合は不正とする
	if decoder.More() {
		return model.ErrInvalidInput
	}
	return nil
}
