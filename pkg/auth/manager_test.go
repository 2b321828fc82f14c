package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/basekit/pkg/auth"
	"github.com/dmitrymomot/basekit/pkg/storage"
)

// fakeAPI implements auth.API with overridable behavior per test.
type fakeAPI struct {
	signUpFn     func(ctx context.Context, creds auth.Credentials) (*auth.Session, error)
	signInFn     func(ctx context.Context, creds auth.Credentials) (*auth.Session, error)
	refreshFn    func(ctx context.Context, refreshToken string) (*auth.Session, error)
	updateUserFn func(ctx context.Context, attrs auth.UserAttributes) (*auth.User, error)
}

func (f *fakeAPI) SignUp(ctx context.Context, creds auth.Credentials) (*auth.Session, error) {
	return f.signUpFn(ctx, creds)
}

func (f *fakeAPI) SignIn(ctx context.Context, creds auth.Credentials) (*auth.Session, error) {
	return f.signInFn(ctx, creds)
}

func (f *fakeAPI) Refresh(ctx context.Context, refreshToken string) (*auth.Session, error) {
	return f.refreshFn(ctx, refreshToken)
}

func (f *fakeAPI) UpdateUser(ctx context.Context, attrs auth.UserAttributes) (*auth.User, error) {
	return f.updateUserFn(ctx, attrs)
}

func testSession(token string) *auth.Session {
	return &auth.Session{
		AccessToken:  token,
		RefreshToken: "refresh-" + token,
		TokenType:    "bearer",
		ExpiresIn:    3600,
		User:         &auth.User{ID: "user-1", Email: "user@example.com"},
	}
}

func TestSignInWithPassword(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("installs session and notifies listener", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{
			signInFn: func(ctx context.Context, creds auth.Credentials) (*auth.Session, error) {
				assert.Equal(t, "user@example.com", creds.Email)
				return testSession("tok-1"), nil
			},
		}
		manager := auth.New(auth.WithAPI(api))

		var gotEvent auth.Event
		var gotSession *auth.Session
		manager.OnAuthStateChange(auth.NewListenerFunc(func(event auth.Event, session *auth.Session) {
			gotEvent = event
			gotSession = session
		}))

		session, err := manager.SignInWithPassword(ctx, auth.Credentials{
			Email:    "user@example.com",
			Password: "secret",
		})
		require.NoError(t, err)
		require.NotNil(t, session)

		assert.Equal(t, "tok-1", manager.AccessToken())
		assert.Equal(t, session, manager.Session())
		assert.Equal(t, session.User, manager.User())
		assert.Equal(t, auth.EventSignedIn, gotEvent)
		assert.Equal(t, session, gotSession)
	})

	t.Run("backend failure leaves state untouched", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{
			signInFn: func(ctx context.Context, creds auth.Credentials) (*auth.Session, error) {
				return nil, errors.New("invalid credentials")
			},
		}
		manager := auth.New(auth.WithAPI(api))

		_, err := manager.SignInWithPassword(ctx, auth.Credentials{})
		require.Error(t, err)
		assert.Nil(t, manager.Session())
		assert.Empty(t, manager.AccessToken())
	})

	t.Run("no api configured", func(t *testing.T) {
		t.Parallel()

		manager := auth.New()
		_, err := manager.SignInWithPassword(ctx, auth.Credentials{})
		assert.ErrorIs(t, err, auth.ErrNoAPI)
	})

	t.Run("persists session record", func(t *testing.T) {
		t.Parallel()

		store := storage.NewMemoryStore()
		api := &fakeAPI{
			signInFn: func(ctx context.Context, creds auth.Credentials) (*auth.Session, error) {
				return testSession("tok-persist"), nil
			},
		}
		manager := auth.New(auth.WithAPI(api), auth.WithStore(store), auth.WithStorageKey("test.session"))

		_, err := manager.SignInWithPassword(ctx, auth.Credentials{})
		require.NoError(t, err)

		raw, err := store.Get(ctx, "test.session")
		require.NoError(t, err)

		var persisted auth.Session
		require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
		assert.Equal(t, "tok-persist", persisted.AccessToken)
		assert.Equal(t, "user-1", persisted.User.ID)
	})
}

func TestSignUp(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{
		signUpFn: func(ctx context.Context, creds auth.Credentials) (*auth.Session, error) {
			return testSession("tok-new"), nil
		},
	}
	manager := auth.New(auth.WithAPI(api))

	session, err := manager.SignUp(context.Background(), auth.Credentials{Email: "new@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "tok-new", session.AccessToken)
	assert.Equal(t, "tok-new", manager.AccessToken())
}

func TestSignOut(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("clears session and removes record", func(t *testing.T) {
		t.Parallel()

		store := storage.NewMemoryStore()
		api := &fakeAPI{
			signInFn: func(ctx context.Context, creds auth.Credentials) (*auth.Session, error) {
				return testSession("tok-out"), nil
			},
		}
		manager := auth.New(auth.WithAPI(api), auth.WithStore(store), auth.WithStorageKey("test.session"))

		_, err := manager.SignInWithPassword(ctx, auth.Credentials{})
		require.NoError(t, err)

		var gotEvent auth.Event
		unsubscribe := manager.OnAuthStateChange(auth.NewListenerFunc(func(event auth.Event, session *auth.Session) {
			gotEvent = event
		}))
		defer unsubscribe()

		require.NoError(t, manager.SignOut(ctx))
		assert.Nil(t, manager.Session())
		assert.Nil(t, manager.User())
		assert.Empty(t, manager.AccessToken())
		assert.Equal(t, auth.EventSignedOut, gotEvent)

		_, err = store.Get(ctx, "test.session")
		assert.ErrorIs(t, err, storage.ErrKeyNotFound)
	})

	t.Run("storage removal failure is reported but state is cleared", func(t *testing.T) {
		t.Parallel()

		store := &failingStore{removeErr: errors.New("disk gone")}
		api := &fakeAPI{
			signInFn: func(ctx context.Context, creds auth.Credentials) (*auth.Session, error) {
				return testSession("tok-fail"), nil
			},
		}
		manager := auth.New(auth.WithAPI(api), auth.WithStore(store))

		_, err := manager.SignInWithPassword(ctx, auth.Credentials{})
		require.NoError(t, err)

		err = manager.SignOut(ctx)
		assert.ErrorIs(t, err, auth.ErrSignOut)
		assert.Nil(t, manager.Session())
	})

	t.Run("sign out without session is a no-op", func(t *testing.T) {
		t.Parallel()

		manager := auth.New()
		assert.NoError(t, manager.SignOut(ctx))
	})
}

func TestUpdateUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("merges into current session and re-persists", func(t *testing.T) {
		t.Parallel()

		store := storage.NewMemoryStore()
		api := &fakeAPI{
			signInFn: func(ctx context.Context, creds auth.Credentials) (*auth.Session, error) {
				return testSession("tok-upd"), nil
			},
			updateUserFn: func(ctx context.Context, attrs auth.UserAttributes) (*auth.User, error) {
				return &auth.User{ID: "user-1", Email: attrs.Email}, nil
			},
		}
		manager := auth.New(auth.WithAPI(api), auth.WithStore(store), auth.WithStorageKey("test.session"))

		_, err := manager.SignInWithPassword(ctx, auth.Credentials{})
		require.NoError(t, err)

		var gotEvent auth.Event
		unsubscribe := manager.OnAuthStateChange(auth.NewListenerFunc(func(event auth.Event, session *auth.Session) {
			gotEvent = event
		}))
		defer unsubscribe()

		user, err := manager.UpdateUser(ctx, auth.UserAttributes{Email: "renamed@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "renamed@example.com", user.Email)
		assert.Equal(t, "renamed@example.com", manager.User().Email)
		assert.Equal(t, auth.EventUserUpdated, gotEvent)

		raw, err := store.Get(ctx, "test.session")
		require.NoError(t, err)
		var persisted auth.Session
		require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
		assert.Equal(t, "renamed@example.com", persisted.User.Email)
	})

	t.Run("backend failure surfaces error", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{
			updateUserFn: func(ctx context.Context, attrs auth.UserAttributes) (*auth.User, error) {
				return nil, errors.New("forbidden")
			},
		}
		manager := auth.New(auth.WithAPI(api))

		_, err := manager.UpdateUser(ctx, auth.UserAttributes{})
		assert.Error(t, err)
	})
}

func TestRestore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("valid record installs session and emits INITIAL_SESSION", func(t *testing.T) {
		t.Parallel()

		store := storage.NewMemoryStore()
		record, err := json.Marshal(testSession("tok-restored"))
		require.NoError(t, err)
		require.NoError(t, store.Set(ctx, "test.session", string(record)))

		manager := auth.New(auth.WithStore(store), auth.WithStorageKey("test.session"), auth.WithAutoRefresh(false))

		var events []auth.Event
		manager.OnAuthStateChange(auth.NewListenerFunc(func(event auth.Event, session *auth.Session) {
			events = append(events, event)
		}))

		manager.Restore(ctx)
		assert.Equal(t, "tok-restored", manager.AccessToken())
		assert.Contains(t, events, auth.EventInitialSession)
	})

	t.Run("missing record is silently ignored", func(t *testing.T) {
		t.Parallel()

		manager := auth.New()
		manager.Restore(ctx)
		assert.Nil(t, manager.Session())
	})

	t.Run("corrupt record is treated as no session", func(t *testing.T) {
		t.Parallel()

		store := storage.NewMemoryStore()
		require.NoError(t, store.Set(ctx, "test.session", "{not json"))

		manager := auth.New(auth.WithStore(store), auth.WithStorageKey("test.session"))
		manager.Restore(ctx)
		assert.Nil(t, manager.Session())
	})

	t.Run("record without user is treated as no session", func(t *testing.T) {
		t.Parallel()

		store := storage.NewMemoryStore()
		require.NoError(t, store.Set(ctx, "test.session", `{"access_token":"tok","token_type":"bearer"}`))

		manager := auth.New(auth.WithStore(store), auth.WithStorageKey("test.session"))
		manager.Restore(ctx)
		assert.Nil(t, manager.Session())
	})
}

func TestRefreshSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("success replaces session and emits TOKEN_REFRESHED", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{
			signInFn: func(ctx context.Context, creds auth.Credentials) (*auth.Session, error) {
				return testSession("tok-old"), nil
			},
			refreshFn: func(ctx context.Context, refreshToken string) (*auth.Session, error) {
				assert.Equal(t, "refresh-tok-old", refreshToken)
				return testSession("tok-fresh"), nil
			},
		}
		manager := auth.New(auth.WithAPI(api), auth.WithAutoRefresh(false))

		_, err := manager.SignInWithPassword(ctx, auth.Credentials{})
		require.NoError(t, err)

		var gotEvent auth.Event
		unsubscribe := manager.OnAuthStateChange(auth.NewListenerFunc(func(event auth.Event, session *auth.Session) {
			gotEvent = event
		}))
		defer unsubscribe()

		session, err := manager.RefreshSession(ctx)
		require.NoError(t, err)
		assert.Equal(t, "tok-fresh", session.AccessToken)
		assert.Equal(t, "tok-fresh", manager.AccessToken())
		assert.Equal(t, auth.EventTokenRefreshed, gotEvent)
	})

	t.Run("failure signs out (fail-closed)", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{
			signInFn: func(ctx context.Context, creds auth.Credentials) (*auth.Session, error) {
				return testSession("tok-doomed"), nil
			},
			refreshFn: func(ctx context.Context, refreshToken string) (*auth.Session, error) {
				return nil, errors.New("token revoked")
			},
		}
		manager := auth.New(auth.WithAPI(api), auth.WithAutoRefresh(false))

		_, err := manager.SignInWithPassword(ctx, auth.Credentials{})
		require.NoError(t, err)

		var gotEvent auth.Event
		unsubscribe := manager.OnAuthStateChange(auth.NewListenerFunc(func(event auth.Event, session *auth.Session) {
			gotEvent = event
		}))
		defer unsubscribe()

		_, err = manager.RefreshSession(ctx)
		require.Error(t, err)
		assert.Nil(t, manager.Session())
		assert.Equal(t, auth.EventSignedOut, gotEvent)
	})

	t.Run("no session", func(t *testing.T) {
		t.Parallel()

		manager := auth.New(auth.WithAPI(&fakeAPI{}))
		_, err := manager.RefreshSession(ctx)
		assert.ErrorIs(t, err, auth.ErrNoSession)
	})

	t.Run("no refresh token", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{
			signInFn: func(ctx context.Context, creds auth.Credentials) (*auth.Session, error) {
				session := testSession("tok-short")
				session.RefreshToken = ""
				return session, nil
			},
		}
		manager := auth.New(auth.WithAPI(api))

		_, err := manager.SignInWithPassword(ctx, auth.Credentials{})
		require.NoError(t, err)

		_, err = manager.RefreshSession(ctx)
		assert.ErrorIs(t, err, auth.ErrNoRefreshToken)
	})
}

func TestSilentRefresh(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("near-expiry session refreshes immediately", func(t *testing.T) {
		t.Parallel()

		// expires_in below the refresh margin clamps the delay to zero.
		refreshed := make(chan string, 1)
		api := &fakeAPI{
			refreshFn: func(ctx context.Context, refreshToken string) (*auth.Session, error) {
				refreshed <- refreshToken
				return testSession("tok-renewed"), nil
			},
		}

		store := storage.NewMemoryStore()
		near := testSession("tok-stale")
		near.ExpiresIn = 30
		record, err := json.Marshal(near)
		require.NoError(t, err)
		require.NoError(t, store.Set(ctx, "test.session", string(record)))

		manager := auth.New(auth.WithAPI(api), auth.WithStore(store), auth.WithStorageKey("test.session"))
		manager.Restore(ctx)

		select {
		case token := <-refreshed:
			assert.Equal(t, "refresh-tok-stale", token)
		case <-time.After(2 * time.Second):
			t.Fatal("refresh timer did not fire")
		}

		assert.Eventually(t, func() bool {
			return manager.AccessToken() == "tok-renewed"
		}, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("timer refresh failure signs out", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{
			signInFn: func(ctx context.Context, creds auth.Credentials) (*auth.Session, error) {
				session := testSession("tok-dying")
				session.ExpiresIn = 1
				return session, nil
			},
			refreshFn: func(ctx context.Context, refreshToken string) (*auth.Session, error) {
				return nil, errors.New("revoked")
			},
		}
		manager := auth.New(auth.WithAPI(api))

		signedOut := make(chan struct{}, 1)
		manager.OnAuthStateChange(auth.NewListenerFunc(func(event auth.Event, session *auth.Session) {
			if event == auth.EventSignedOut {
				select {
				case signedOut <- struct{}{}:
				default:
				}
			}
		}))

		_, err := manager.SignInWithPassword(ctx, auth.Credentials{})
		require.NoError(t, err)

		select {
		case <-signedOut:
		case <-time.After(2 * time.Second):
			t.Fatal("fail-closed sign-out did not happen")
		}
		assert.Nil(t, manager.Session())
	})

	t.Run("no timer without refresh token", func(t *testing.T) {
		t.Parallel()

		var refreshCalls int
		api := &fakeAPI{
			signInFn: func(ctx context.Context, creds auth.Credentials) (*auth.Session, error) {
				session := testSession("tok-basic")
				session.RefreshToken = ""
				session.ExpiresIn = 1
				return session, nil
			},
			refreshFn: func(ctx context.Context, refreshToken string) (*auth.Session, error) {
				refreshCalls++
				return nil, errors.New("should not be called")
			},
		}
		manager := auth.New(auth.WithAPI(api))

		_, err := manager.SignInWithPassword(ctx, auth.Credentials{})
		require.NoError(t, err)

		time.Sleep(100 * time.Millisecond)
		assert.Zero(t, refreshCalls)
		assert.Equal(t, "tok-basic", manager.AccessToken())
	})
}

// failingStore fails selected operations to exercise storage error paths.
type failingStore struct {
	removeErr error
	setErr    error
}

func (f *failingStore) Get(ctx context.Context, key string) (string, error) {
	return "", storage.ErrKeyNotFound
}

func (f *failingStore) Set(ctx context.Context, key, value string) error {
	return f.setErr
}

func (f *failingStore) Remove(ctx context.Context, key string) error {
	return f.removeErr
}
