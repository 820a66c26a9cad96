package bootstrap

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"notekeeper/internal/app/client/credential"
)

var errDisk = errors.New("disk I/O error")

// fakeStore позволяет подменить поведение каждого шага и считает вызовы
type fakeStore struct {
	mu        sync.Mutex
	initCalls int
	getCalls  int

	initFn func(ctx context.Context, call int) error
	getFn  func(ctx context.Context) (*credential.Credential, error)
}

func (f *fakeStore) InitializeSchema(ctx context.Context) error {
	f.mu.Lock()
	f.initCalls++
	call := f.initCalls
	f.mu.Unlock()

	if f.initFn == nil {
		return nil
	}
	return f.initFn(ctx, call)
}

func (f *fakeStore) GetCredential(ctx context.Context) (*credential.Credential, error) {
	f.mu.Lock()
	f.getCalls++
	f.mu.Unlock()

	if f.getFn == nil {
		return nil, nil
	}
	return f.getFn(ctx)
}

func fastOptions() Options {
	return Options{
		StepTimeout:   200 * time.Millisecond,
		InitRetries:   3,
		RetryInterval: time.Millisecond,
	}
}

func hang(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestBootstrapper_StartsPending(t *testing.T) {
	b := New(&fakeStore{}, fastOptions(), slog.Default())

	assert.Equal(t, Pending, b.State())
	assert.Equal(t, Unresolved, b.EntryPoint())
}

func TestBootstrapper_FailSafeRouting(t *testing.T) {
	tests := []struct {
		name  string
		store *fakeStore
	}{
		{
			name: "init always fails, read fails",
			store: &fakeStore{
				initFn: func(context.Context, int) error { return errDisk },
				getFn:  func(context.Context) (*credential.Credential, error) { return nil, errDisk },
			},
		},
		{
			name: "read fails",
			store: &fakeStore{
				getFn: func(context.Context) (*credential.Credential, error) {
					return nil, credential.ErrStorageUnavailable
				},
			},
		},
		{
			name: "read hangs",
			store: &fakeStore{
				getFn: func(ctx context.Context) (*credential.Credential, error) { return nil, hang(ctx) },
			},
		},
		{
			name: "init hangs, read fails",
			store: &fakeStore{
				initFn: func(ctx context.Context, _ int) error { return hang(ctx) },
				getFn:  func(context.Context) (*credential.Credential, error) { return nil, errDisk },
			},
		},
		{
			name: "read panics",
			store: &fakeStore{
				getFn: func(context.Context) (*credential.Credential, error) { panic("driver bug") },
			},
		},
		{
			name: "init panics",
			store: &fakeStore{
				initFn: func(context.Context, int) error { panic("driver bug") },
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.store, fastOptions(), slog.Default())

			assert.Equal(t, LoginPage, b.Resolve(context.Background()))
			assert.Equal(t, ResolvedLogin, b.State())
			assert.Empty(t, b.Email())
		})
	}
}

func TestBootstrapper_InitFailureSkipsRead(t *testing.T) {
	store := &fakeStore{
		initFn: func(context.Context, int) error { return credential.ErrStorageUnavailable },
		getFn: func(context.Context) (*credential.Credential, error) {
			return &credential.Credential{ID: 1, Email: "a@b.com", Password: "pw1"}, nil
		},
	}
	b := New(store, fastOptions(), slog.Default())

	assert.Equal(t, LoginPage, b.Resolve(context.Background()))
	assert.Equal(t, ResolvedLogin, b.State())
	assert.Empty(t, b.Email())
	assert.Equal(t, 3, store.initCalls)
	assert.Equal(t, 0, store.getCalls)
}

func TestBootstrapper_RetriesInitUntilSuccess(t *testing.T) {
	store := &fakeStore{
		initFn: func(_ context.Context, call int) error {
			if call < 2 {
				return errDisk
			}
			return nil
		},
	}
	b := New(store, fastOptions(), slog.Default())

	assert.Equal(t, LoginPage, b.Resolve(context.Background()))
	assert.Equal(t, 2, store.initCalls)
}

func TestBootstrapper_ResolvesOnce(t *testing.T) {
	store := &fakeStore{
		getFn: func(context.Context) (*credential.Credential, error) {
			return &credential.Credential{ID: 1, Email: "a@b.com", Password: "pw1"}, nil
		},
	}
	b := New(store, fastOptions(), slog.Default())

	var wg sync.WaitGroup
	results := make([]EntryPoint, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = b.Resolve(context.Background())
		}(i)
	}
	wg.Wait()

	for _, ep := range results {
		assert.Equal(t, MainPage, ep)
	}
	assert.Equal(t, 1, store.initCalls)
	assert.Equal(t, 1, store.getCalls)

	// хранилище поменялось, но решение уже принято
	store.getFn = func(context.Context) (*credential.Credential, error) { return nil, nil }
	assert.Equal(t, MainPage, b.Resolve(context.Background()))
	assert.Equal(t, "a@b.com", b.Email())
}

func TestBootstrapper_StepsOrdered(t *testing.T) {
	var order []string
	store := &fakeStore{
		initFn: func(context.Context, int) error {
			order = append(order, "init")
			return nil
		},
		getFn: func(context.Context) (*credential.Credential, error) {
			order = append(order, "get")
			return nil, nil
		},
	}

	New(store, fastOptions(), slog.Default()).Resolve(context.Background())
	assert.Equal(t, []string{"init", "get"}, order)
}

func newRealStore(t *testing.T) *credential.Store {
	t.Helper()
	return credential.New(filepath.Join(t.TempDir(), "credentials.db"), nil, time.Second, slog.Default())
}

func TestScenario_EmptyStoreRoutesToLogin(t *testing.T) {
	b := New(newRealStore(t), fastOptions(), slog.Default())
	assert.Equal(t, LoginPage, b.Resolve(context.Background()))
}

func TestScenario_SavedCredentialRoutesToMain(t *testing.T) {
	ctx := context.Background()
	store := newRealStore(t)
	require.NoError(t, store.InitializeSchema(ctx))
	require.NoError(t, store.SaveCredential(ctx, "a@b.com", "pw1"))

	b := New(store, fastOptions(), slog.Default())
	assert.Equal(t, MainPage, b.Resolve(ctx))

	c, err := store.GetCredential(ctx)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "a@b.com", c.Email)
	assert.Equal(t, "pw1", c.Password)
}

func TestScenario_ClearedStoreRoutesToLogin(t *testing.T) {
	ctx := context.Background()
	store := newRealStore(t)
	require.NoError(t, store.InitializeSchema(ctx))
	require.NoError(t, store.SaveCredential(ctx, "a@b.com", "pw1"))
	require.NoError(t, store.ClearCredentials(ctx))

	b := New(store, fastOptions(), slog.Default())
	assert.Equal(t, LoginPage, b.Resolve(ctx))
}
