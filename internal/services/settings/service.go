// Package settings persists user preferences.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	validator "github.com/go-playground/validator/v10"

	"github.com/j-veylop/focus-tui/internal/logger"
	"github.com/j-veylop/focus-tui/internal/models"
	"github.com/j-veylop/focus-tui/internal/storage"
)

// Service reads and writes the settings record through a Store.
type Service struct {
	store    storage.Store
	validate *validator.Validate
}

// New creates a settings service.
func New(store storage.Store) *Service {
	return &Service{
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Load returns the stored settings merged over the defaults. Keys absent
// from the stored record keep their default value. Unreadable data yields
// the defaults.
func (s *Service) Load(ctx context.Context) models.AppSettings {
	settings := models.DefaultSettings()

	data, err := s.store.Get(ctx, storage.KeySettings)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("failed to read settings, using defaults", "error", err)
		}
		return settings
	}

	if err := json.Unmarshal(data, &settings); err != nil {
		logger.Warn("stored settings are corrupt, using defaults", "error", err)
		return models.DefaultSettings()
	}

	return settings
}

// Save persists settings verbatim.
func (s *Service) Save(ctx context.Context, settings models.AppSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := s.store.Put(ctx, storage.KeySettings, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Validate checks user-entered values against the allowed ranges.
func (s *Service) Validate(settings models.AppSettings) error {
	err := s.validate.Struct(settings)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate settings: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

// Watch emits freshly loaded settings whenever the record is changed outside
// this process. Stores without change notification return a nil channel,
// which never delivers.
func (s *Service) Watch(ctx context.Context) (<-chan models.AppSettings, error) {
	watcher, ok := s.store.(storage.Watcher)
	if !ok {
		return nil, nil
	}

	keys, err := watcher.Watch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to watch settings: %w", err)
	}

	out := make(chan models.AppSettings, 1)
	go func() {
		defer close(out)
		for key := range keys {
			if key != storage.KeySettings {
				continue
			}
			logger.Info("settings changed on disk, reloading")
			select {
			case out <- s.Load(ctx):
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
