package room

import (
	"errors"
	"strings"
)

var ErrInvalidSize = errors.New("invalid room size")

type Size string

const (
	SizeSmall  Size = "SMALL"
	SizeMedium Size = "MEDIUM"
	SizeLarge  Size = "LARGE"
)

var sizeAliases = map[string]Size{
	"SMALL":   SizeSmall,
	"PEQUEÑA": SizeSmall,
	"PEQUENA": SizeSmall,
	"MEDIUM":  SizeMedium,
	"MEDIANA": SizeMedium,
	"LARGE":   SizeLarge,
	"GRANDE":  SizeLarge,
}

func (s Size) String() string {
	return string(s)
}

func (s Size) IsValid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	default:
		return false
	}
}

func ParseSize(s string) (Size, error) {
	size, ok := sizeAliases[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return "", ErrInvalidSize
	}
	return size, nil
}
