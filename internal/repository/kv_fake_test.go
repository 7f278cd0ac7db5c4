package repository

import (
	"context"
	"sync"
	"time"

	"relief-dispatch/internal/store"
)

// fakeKV in-memory KV with TTL, for unit tests only
type fakeKV struct {
	mu     sync.Mutex
	data   map[string]fakeKVItem
	getErr error
	sets   int
}

type fakeKVItem struct {
	value   string
	expires time.Time // zero = no ttl
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]fakeKVItem)}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return "", f.getErr
	}
	item, ok := f.data[key]
	if !ok {
		return "", store.ErrMiss
	}
	if !item.expires.IsZero() && time.Now().After(item.expires) {
		delete(f.data, key)
		return "", store.ErrMiss
	}
	return item.value, nil
}

func (f *fakeKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	f.data[key] = fakeKVItem{value: value, expires: exp}
	f.sets++
	return nil
}

func (f *fakeKV) Delete(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}
