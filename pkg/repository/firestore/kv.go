package firestore

import (
	"context"
	"errors"
	"net/url"

	"github.com/gametheory-pro/gtpro/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

type kvDocument struct {
	UserID string `firestore:"user_id"`
	Key    string `firestore:"key"`
	Value  string `firestore:"value"`
}

type kvStore struct {
	store *store
}

func kvDocID(userID, key string) string {
	return url.PathEscape(userID) + ":" + url.PathEscape(key)
}

func (s *kvStore) Get(ctx context.Context, userID, key string) (string, bool, error) {
	doc, err := getDoc[kvDocument](ctx, s.store.collection(CollectionKV).Doc(kvDocID(userID, key)))
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return doc.Value, true, nil
}

func (s *kvStore) Set(ctx context.Context, userID, key, value string) error {
	ref := s.store.collection(CollectionKV).Doc(kvDocID(userID, key))
	if _, err := ref.Set(ctx, &kvDocument{UserID: userID, Key: key, Value: value}); err != nil {
		return goerr.Wrap(err, "failed to set value", goerr.V("user_id", userID), goerr.V("key", key))
	}
	return nil
}

func (s *kvStore) Delete(ctx context.Context, userID, key string) error {
	if _, err := s.store.collection(CollectionKV).Doc(kvDocID(userID, key)).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete value", goerr.V("user_id", userID), goerr.V("key", key))
	}
	return nil
}
