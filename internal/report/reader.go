package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/m04kA/SMC-SpaceAnalytics/internal/domain"
)

// requiredColumns обязательные колонки входного CSV со списком пространств
var requiredColumns = []string{
	"category_id",
	"category_name",
	"space_id",
	"space_name",
	"location_id",
	"location_name",
}

// LoadSpaces читает список пространств для анализа из CSV-файла.
//
// Каждая строка обязана содержать непустые значения всех колонок; ошибка
// валидации указывает номер строки (нумерация с учётом заголовка). Пустой
// файл или файл без единой строки данных — ошибка.
func LoadSpaces(path string) ([]domain.Space, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: file is empty or has no header", ErrInvalidData)
	}

	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.TrimSpace(name)] = i
	}

	for _, col := range requiredColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("%w: missing required column %q", ErrInvalidData, col)
		}
	}

	var spaces []domain.Space
	rowNum := 1
	for {
		record, err := reader.Read()
		if err != nil {
			break
		}
		rowNum++

		values := make(map[string]string, len(requiredColumns))
		for _, col := range requiredColumns {
			idx := colIdx[col]
			if idx >= len(record) || strings.TrimSpace(record[idx]) == "" {
				return nil, fmt.Errorf("%w: row %d: missing or empty value for %q", ErrInvalidData, rowNum, col)
			}
			values[col] = strings.TrimSpace(record[idx])
		}

		spaces = append(spaces, domain.Space{
			SpaceID:      values["space_id"],
			SpaceName:    values["space_name"],
			CategoryID:   values["category_id"],
			CategoryName: values["category_name"],
			LocationID:   values["location_id"],
			LocationName: values["location_name"],
		})
	}

	if len(spaces) == 0 {
		return nil, fmt.Errorf("%w: no valid space data found", ErrInvalidData)
	}

	return spaces, nil
}
