package usecase

import (
	"context"

	"github.com/gametheory-pro/gtpro/pkg/domain/interfaces"
	"github.com/gametheory-pro/gtpro/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

const dismissedPrefix = "dismissed:"

// FeatureUseCase remembers which feature tips a user has dismissed
type FeatureUseCase struct {
	kv interfaces.KVStore
}

func dismissedKey(feature string) string {
	return dismissedPrefix + feature
}

// IsDismissed reports false when the store cannot be read
func (f *FeatureUseCase) IsDismissed(ctx context.Context, userID, feature string) bool {
	_, ok, err := f.kv.Get(ctx, userID, dismissedKey(feature))
	if err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to read dismissed feature", goerr.V(UserIDKey, userID), goerr.V("feature", feature)), "feature store read failed")
		return false
	}
	return ok
}

func (f *FeatureUseCase) Dismiss(ctx context.Context, userID, feature string) error {
	if feature == "" {
		return goerr.New("feature name is required")
	}
	if err := f.kv.Set(ctx, userID, dismissedKey(feature), "true"); err != nil {
		return goerr.Wrap(err, "failed to dismiss feature", goerr.V(UserIDKey, userID), goerr.V("feature", feature))
	}
	return nil
}

// Restore makes a dismissed feature visible again
func (f *FeatureUseCase) Restore(ctx context.Context, userID, feature string) error {
	if err := f.kv.Delete(ctx, userID, dismissedKey(feature)); err != nil {
		return goerr.Wrap(err, "failed to restore feature", goerr.V(UserIDKey, userID), goerr.V("feature", feature))
	}
	return nil
}
