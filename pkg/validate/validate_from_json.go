package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/semfilms/internal/domain"
	"github.com/Gunvolt24/semfilms/internal/ports"
)

// WarmUpFromJSON — строгий разбор и валидация запроса на прогрев из JSON.
// Любая ошибка оборачивает ErrInvalidWarmUp.
func WarmUpFromJSON(ctx context.Context, validator ports.WarmUpValidator, raw []byte) (*domain.WarmUpRequest, error) {
	var req domain.WarmUpRequest
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", ErrInvalidWarmUp, err)
	}
	// гарантируем отсутствие данных после объекта
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("%w: invalid json: trailing data", ErrInvalidWarmUp)
	}
	if err := validator.Validate(ctx, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
