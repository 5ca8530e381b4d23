package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedValue reports a stored value that could not be decoded. Typed getters
// return it together with the caller's default so callers can fail soft.
var ErrMalformedValue = errors.New("malformed stored value")

// GetString returns the stored string or def when the key is missing.
func GetString(ctx context.Context, s Store, key, def string) (string, error) {
	v, ok, err := s.Get(ctx, key)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

// GetFloat parses a numeric string. Empty, missing or non-numeric values yield def;
// the non-numeric case also returns ErrMalformedValue.
func GetFloat(ctx context.Context, s Store, key string, def float64) (float64, error) {
	v, ok, err := s.Get(ctx, key)
	if err != nil {
		return def, err
	}
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, ErrMalformedValue)
	}
	return f, nil
}

// GetJSON decodes a JSON value into T. A missing key or a JSON null yields def.
func GetJSON[T any](ctx context.Context, s Store, key string, def T) (T, error) {
	v, ok, err := s.Get(ctx, key)
	if err != nil {
		return def, err
	}
	if !ok || strings.TrimSpace(v) == "" || strings.TrimSpace(v) == "null" {
		return def, nil
	}
	var out T
	if err := json.Unmarshal([]byte(v), &out); err != nil {
		return def, fmt.Errorf("%s: %w: %v", key, ErrMalformedValue, err)
	}
	return out, nil
}

// EncodeJSON marshals v for storage.
func EncodeJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal: %w", err)
	}
	return string(data), nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	enc, err := EncodeJSON(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return s.Set(ctx, key, enc)
}

// FormatFloat renders a number the way it is stored: shortest representation.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
