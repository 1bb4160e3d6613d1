package store

import (
	"context"
	"fmt"

	"github.com/website1975/vatly12CTST/ent"
	"github.com/website1975/vatly12CTST/ent/setting"
)

type settingsRepo struct {
	client *ent.Client
}

func (r *settingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	s, err := r.client.Setting.Query().
		Where(setting.Key(key)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get setting %q: %w", key, err)
	}
	return s.Value, true, nil
}

func (r *settingsRepo) Set(ctx context.Context, key, value string) error {
	n, err := r.client.Setting.Update().
		Where(setting.Key(key)).
		SetValue(value).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("update setting %q: %w", key, err)
	}
	if n > 0 {
		return nil
	}

	_, err = r.client.Setting.Create().
		SetKey(key).
		SetValue(value).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("create setting %q: %w", key, err)
	}
	return nil
}

func (r *settingsRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.client.Setting.Delete().Where(setting.Key(key)).Exec(ctx); err != nil {
		return fmt.Errorf("delete setting %q: %w", key, err)
	}
	return nil
}
