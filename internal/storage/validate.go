package storage

import (
	"encoding/json"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/InQaaaaGit/subd_redirect.git/internal/models"
)

// rawShorthand запись в том виде, в каком она пришла из JSON.
// Поля-указатели позволяют отличить отсутствующее поле от пустой строки.
type rawShorthand struct {
	Short *string `json:"short"`
	Long  *string `json:"long"`
}

// decodeShorthands разбирает JSON документ с массивом записей.
// Пустые значения допустимы и возвращаются как есть, ошибкой считаются только
// отсутствующие поля и неверные типы.
func decodeShorthands(data []byte) ([]models.Shorthand, error) {
	var raw []rawShorthand
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	// null декодируется без ошибки, но массивом не является
	if raw == nil {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrParse)
	}

	if err := validation.Validate(raw, validation.Each(validation.By(validateRawShorthand))); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	entries := make([]models.Shorthand, 0, len(raw))
	for _, r := range raw {
		entries = append(entries, models.Shorthand{Short: *r.Short, Long: *r.Long})
	}

	if err := checkReservedName(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func validateRawShorthand(value interface{}) error {
	entry, ok := value.(rawShorthand)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a shorthand entry")
	}

	return validation.ValidateStruct(&entry,
		validation.Field(&entry.Short, validation.NotNil),
		validation.Field(&entry.Long, validation.NotNil),
	)
}

// checkReservedName проверяет, что ни одна запись не занимает зарезервированное имя
func checkReservedName(entries []models.Shorthand) error {
	for i, entry := range entries {
		if entry.Short == models.ReservedName {
			return fmt.Errorf("%w: entry %d uses %q", ErrReservedName, i, models.ReservedName)
		}
	}
	return nil
}
