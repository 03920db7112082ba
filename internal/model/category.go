package model

import (
	"errors"
	"strings"
)

var (
	ErrEmptyCategoryName = errors.New("model: category name is required")
	ErrUnknownCategory   = errors.New("model: unknown category")
)

// DefaultCategoryColor is used when a category is created without a color.
const DefaultCategoryColor = "#9b87f5"

type Category struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

type CategoryInput struct {
	Name  string
	Color string
}

func (in CategoryInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrEmptyCategoryName
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("model: category id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCategoryName
	}
	return nil
}
