// Package settings is the typed contract over the key/value settings table.
// Every value is written as a versioned envelope {"v":1,"data":...}; reads also
// accept bare JSON (and raw strings for string targets) written by older builds.
package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	KeyDonationGoal = "donation_goal"
	KeyAutoSummary  = "auto_summary"
	KeyThankYou     = "thankyou_settings"
	KeyMinAlert     = "min_alert"
)

const currentVersion = 1

var ErrUnsupportedVersion = errors.New("unsupported settings version")

// Backend is the raw storage. *store.Store implements it.
type Backend interface {
	GetSetting(ctx context.Context, key string) ([]byte, bool, error)
	PutSetting(ctx context.Context, key string, value []byte) error
	DeleteSetting(ctx context.Context, key string) error
}

type envelope struct {
	V    int             `json:"v"`
	Data json.RawMessage `json:"data"`
}

// Encode wraps v in the current envelope.
func Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode setting: %w", err)
	}
	return json.Marshal(envelope{V: currentVersion, Data: data})
}

// Decode reads raw into dst, unwrapping the envelope when present.
func Decode(raw []byte, dst any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err == nil {
			v, hasV := fields["v"]
			data, hasData := fields["data"]
			if hasV && hasData && len(fields) == 2 {
				var version int
				if err := json.Unmarshal(v, &version); err != nil {
					return fmt.Errorf("decode setting version: %w", err)
				}
				if version != currentVersion {
					return fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
				}
				return json.Unmarshal(data, dst)
			}
		}
	}

	// legacy: bare JSON value
	err := json.Unmarshal(trimmed, dst)
	if err == nil {
		return nil
	}
	if s, ok := dst.(*string); ok {
		*s = string(raw)
		return nil
	}
	return fmt.Errorf("decode setting: %w", err)
}

// Load decodes key into dst. ok is false when the key is absent and dst is untouched.
func Load[T any](ctx context.Context, b Backend, key string, dst *T) (ok bool, err error) {
	raw, found, err := b.GetSetting(ctx, key)
	if err != nil || !found {
		return false, err
	}
	if err := Decode(raw, dst); err != nil {
		return false, fmt.Errorf("setting %s: %w", key, err)
	}
	return true, nil
}

// Save replaces key with v.
func Save[T any](ctx context.Context, b Backend, key string, v T) error {
	raw, err := Encode(v)
	if err != nil {
		return err
	}
	return b.PutSetting(ctx, key, raw)
}

// Delete removes key; absence is a meaningful state for most keys.
func Delete(ctx context.Context, b Backend, key string) error {
	return b.DeleteSetting(ctx, key)
}
