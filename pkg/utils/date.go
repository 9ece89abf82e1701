package utils

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("start date must not be after end date")

// ParseDate devolve nil para string vazia
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// ParseDateRange exige as duas datas ou nenhuma
func ParseDateRange(startStr, endStr string) (*time.Time, *time.Time, error) {
	start, err := ParseDate(startStr)
	if err != nil {
		return nil, nil, err
	}

	end, err := ParseDate(endStr)
	if err != nil {
		return nil, nil, err
	}

	if (start == nil) != (end == nil) {
		return nil, nil, errors.New("start_date and end_date must be informed together")
	}

	if start != nil && start.After(*end) {
		return nil, nil, ErrInvalidRange
	}

	return start, end, nil
}
