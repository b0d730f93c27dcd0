package registry

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/userregistry/internal/cryptox"
	"github.com/dmitrijs2005/userregistry/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// --- helpers ---

type fakeHasher struct {
	hashErr error
}

func (f *fakeHasher) Hash(password []byte) ([]byte, []byte, error) {
	if f.hashErr != nil {
		return nil, nil, f.hashErr
	}
	salt := []byte("salt")
	sum := sha256.Sum256(append(salt, password...))
	return salt, sum[:], nil
}

func (f *fakeHasher) Verify(password, salt, key []byte) bool {
	sum := sha256.Sum256(append(append([]byte{}, salt...), password...))
	return bytes.Equal(sum[:], key)
}

func newTestLogger(t *testing.T) (logging.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return logging.NewSlogLogger(slog.New(h)), &buf
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	log, _ := newTestLogger(t)
	return New(&fakeHasher{}, log)
}

// --- tests ---

func TestCreateUser_AppendsOne(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	before := r.Len()
	u, err := r.CreateUser(ctx, "a@b.com", "pw")
	require.NoError(t, err)

	assert.Equal(t, before+1, r.Len())
	assert.Equal(t, "a@b.com", u.Email)
	assert.NotEmpty(t, u.ID)

	last := r.Users()[r.Len()-1]
	assert.Same(t, u, last)
	assert.Equal(t, "a@b.com", last.Email)
}

func TestCreateUser_NoValidation(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	_, err := r.CreateUser(ctx, "not-an-email", "")
	require.NoError(t, err)
	_, err = r.CreateUser(ctx, "not-an-email", "")
	require.NoError(t, err)

	assert.Equal(t, 2, r.Len())
}

func TestCreateUser_StampsCreatedAt(t *testing.T) {
	r := newTestRegistry(t)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	u, err := r.CreateUser(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, fixed, u.CreatedAt)
}

func TestCreateUser_HashError(t *testing.T) {
	log, _ := newTestLogger(t)
	r := New(&fakeHasher{hashErr: errors.New("boom")}, log)

	u, err := r.CreateUser(context.Background(), "a@b.com", "pw")
	require.Error(t, err)
	assert.Nil(t, u)
	assert.Contains(t, err.Error(), "error hashing password: boom")
	assert.Equal(t, 0, r.Len())
}

func TestCreateUser_NeverKeepsOrLogsRawPassword(t *testing.T) {
	log, buf := newTestLogger(t)
	h, err := cryptox.NewPasswordHasher(cryptox.Params{Time: 1, MemoryKiB: 64, Threads: 1, KeyLen: 32, SaltSize: 16})
	require.NoError(t, err)
	r := New(h, log)

	const secret = "hunter2-very-secret"
	u, err := r.CreateUser(context.Background(), "a@b.com", secret)
	require.NoError(t, err)

	assert.NotContains(t, fmt.Sprintf("%+v", *u), secret)
	assert.NotContains(t, string(u.PasswordHash), secret)
	assert.NotContains(t, buf.String(), secret)
	assert.Contains(t, buf.String(), "user created")

	assert.True(t, r.VerifyPassword(context.Background(), u.ID, secret))
	assert.False(t, r.VerifyPassword(context.Background(), u.ID, "hunter3"))
}

func TestGetUserByID(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	a, err := r.CreateUser(ctx, "a@b.com", "pw")
	require.NoError(t, err)
	b, err := r.CreateUser(ctx, "c@d.com", "pw")
	require.NoError(t, err)

	got, ok := r.GetUserByID(b.ID)
	require.True(t, ok)
	assert.Same(t, b, got)

	got, ok = r.GetUserByID(a.ID)
	require.True(t, ok)
	assert.Same(t, a, got)

	got, ok = r.GetUserByID("missing")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestGetUserByID_EmptyRegistry(t *testing.T) {
	r := newTestRegistry(t)

	got, ok := r.GetUserByID("")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestGetUserByID_FirstMatchWins(t *testing.T) {
	r := newTestRegistry(t)
	first := &User{ID: "dup", Email: "first@x"}
	second := &User{ID: "dup", Email: "second@x"}
	r.users = []*User{first, second}

	got, ok := r.GetUserByID("dup")
	require.True(t, ok)
	assert.Same(t, first, got)
}

func TestGetUserByEmail_FirstMatchWins(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	first, err := r.CreateUser(ctx, "same@x", "one")
	require.NoError(t, err)
	_, err = r.CreateUser(ctx, "same@x", "two")
	require.NoError(t, err)

	got, ok := r.GetUserByEmail("same@x")
	require.True(t, ok)
	assert.Same(t, first, got)

	_, ok = r.GetUserByEmail("other@x")
	assert.False(t, ok)
}

func TestVerifyPassword_UnknownUser(t *testing.T) {
	r := newTestRegistry(t)
	assert.False(t, r.VerifyPassword(context.Background(), "ghost", "pw"))
}

func TestUsers_ReturnsCopyInInsertionOrder(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	emails := []string{"1@x", "2@x", "3@x"}
	for _, e := range emails {
		_, err := r.CreateUser(ctx, e, "pw")
		require.NoError(t, err)
	}

	users := r.Users()
	require.Len(t, users, 3)
	for i, u := range users {
		assert.Equal(t, emails[i], u.Email)
	}

	users[0] = nil
	assert.NotNil(t, r.Users()[0])
}

func TestRegistry_ConcurrentUse(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	const workers = 8
	const perWorker = 25

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				u, err := r.CreateUser(ctx, fmt.Sprintf("%d-%d@x", w, i), "pw")
				if err != nil {
					t.Errorf("CreateUser: %v", err)
					return
				}
				if _, ok := r.GetUserByID(u.ID); !ok {
					t.Errorf("user %s not found right after creation", u.ID)
				}
				_ = r.Users()
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, workers*perWorker, r.Len())
}

// TestRegistry_LookupProperty checks that for any sequence of created users
// every created id resolves to its own record and unknown ids resolve to nothing.
func TestRegistry_LookupProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		log, _ := newTestLogger(t)
		r := New(&fakeHasher{}, log)
		ctx := context.Background()

		n := rapid.IntRange(0, 30).Draw(rt, "n")
		created := make([]*User, 0, n)
		for i := 0; i < n; i++ {
			email := rapid.StringMatching(`[a-z]{1,8}@[a-z]{1,5}\.com`).Draw(rt, "email")
			password := rapid.String().Draw(rt, "password")

			before := r.Len()
			u, err := r.CreateUser(ctx, email, password)
			if err != nil {
				rt.Fatalf("CreateUser: %v", err)
			}
			if r.Len() != before+1 {
				rt.Fatalf("len %d after create, want %d", r.Len(), before+1)
			}
			if u.Email != email {
				rt.Fatalf("email %q, want %q", u.Email, email)
			}
			created = append(created, u)
		}

		for _, u := range created {
			got, ok := r.GetUserByID(u.ID)
			if !ok || got != u {
				rt.Fatalf("GetUserByID(%q) = %v, %v", u.ID, got, ok)
			}
		}

		missing := rapid.StringMatching(`missing-[a-z0-9]{4,12}`).Draw(rt, "missing")
		if got, ok := r.GetUserByID(missing); ok || got != nil {
			rt.Fatalf("GetUserByID(%q) found %v", missing, got)
		}
	})
}
