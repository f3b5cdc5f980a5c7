package validate

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/Gunvolt24/semfilms/internal/domain"
	"github.com/Gunvolt24/semfilms/internal/ports"
)

// Проверка, что WarmUpValidator удовлетворяет интерфейсу WarmUpValidator.
var _ ports.WarmUpValidator = (*WarmUpValidator)(nil)

// ErrInvalidWarmUp — базовая (sentinel error) ошибка валидации запроса на прогрев.
var ErrInvalidWarmUp = errors.New("warm-up request validation failed")

// MaxRequestURILen — предельная длина request_uri.
const MaxRequestURILen = 4096

// WarmUpValidator — структура для валидации запроса на прогрев кэша.
type WarmUpValidator struct{}

// NewWarmUpValidator — конструктор WarmUpValidator.
// Возвращает ErrInvalidWarmUp (с обёрнутой причиной) при любой проблеме.
func NewWarmUpValidator() *WarmUpValidator { return &WarmUpValidator{} }

// Validate — request_uri должен быть относительным URI ресурса каталога (/films или /genres).
func (v *WarmUpValidator) Validate(_ context.Context, req *domain.WarmUpRequest) error {
	if req == nil {
		return fmt.Errorf("%w: запрос не может быть nil", ErrInvalidWarmUp)
	}
	if req.RequestURI == "" {
		return fmt.Errorf("%w: request_uri обязателен", ErrInvalidWarmUp)
	}
	if len(req.RequestURI) > MaxRequestURILen {
		return fmt.Errorf("%w: request_uri длиннее %d байт", ErrInvalidWarmUp, MaxRequestURILen)
	}

	u, err := url.ParseRequestURI(req.RequestURI)
	if err != nil {
		return fmt.Errorf("%w: request_uri некорректен: %v", ErrInvalidWarmUp, err)
	}
	if u.Scheme != "" || u.Host != "" {
		return fmt.Errorf("%w: request_uri должен быть относительным", ErrInvalidWarmUp)
	}
	if _, ok := domain.ShapeFromPath(u.Path); !ok {
		return fmt.Errorf("%w: неизвестный ресурс %q", ErrInvalidWarmUp, u.Path)
	}
	if _, err := url.ParseQuery(u.RawQuery); err != nil {
		return fmt.Errorf("%w: query некорректен: %v", ErrInvalidWarmUp, err)
	}
	return nil
}
