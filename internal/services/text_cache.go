package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/pkg/errors"
)

var ErrTextNotCached = errors.New("document text not cached")

// CachedText is the decoded form of a stored document.
type CachedText struct {
	Text   string `json:"text"`
	Format Format `json:"format"`
}

// TextCache keeps decoded document text keyed by a digest of the stored
// bytes. It only saves the decode step: callers still fetch the document from
// storage, so a deleted document is never served from here.
type TextCache interface {
	Get(ctx context.Context, key string) (CachedText, error)
	Set(ctx context.Context, key string, text CachedText) error
}

type textECache struct {
	ec         ecache.Cache
	expiration time.Duration
}

func NewTextCache(ec ecache.Cache, expiration time.Duration) TextCache {
	return &textECache{
		ec: &ecache.NamespaceCache{
			C:         ec,
			Namespace: "ats:text:",
		},
		expiration: expiration,
	}
}

func (c *textECache) Get(ctx context.Context, key string) (CachedText, error) {
	val := c.ec.Get(ctx, key)
	if val.KeyNotFound() {
		return CachedText{}, ErrTextNotCached
	}
	if val.Err != nil {
		return CachedText{}, errors.Wrap(val.Err, "reading text cache")
	}

	raw, ok := val.Val.(string)
	if !ok {
		return CachedText{}, errors.Errorf("unexpected cached value type %T", val.Val)
	}

	var text CachedText
	if err := json.Unmarshal([]byte(raw), &text); err != nil {
		return CachedText{}, errors.Wrap(err, "decoding cached text")
	}
	return text, nil
}

func (c *textECache) Set(ctx context.Context, key string, text CachedText) error {
	raw, err := json.Marshal(text)
	if err != nil {
		return errors.Wrap(err, "encoding cached text")
	}
	return errors.Wrap(c.ec.Set(ctx, key, string(raw), c.expiration), "writing text cache")
}
