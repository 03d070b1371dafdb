// Package store is the persistent credential store of the RootShare client.
//
// It keeps the access token, the refresh token and the cached user profile
// in the local SQLite database and publishes every committed change to
// subscribers through an observable.Value.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/rootshare/internal/client/models"
	"github.com/dmitrijs2005/rootshare/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/rootshare/internal/dbx"
	"github.com/dmitrijs2005/rootshare/internal/logging"
	"github.com/dmitrijs2005/rootshare/internal/observable"
)

// Namespace and keys of the persisted credential entries.
const (
	Namespace       = "rootshare_auth"
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
)

// Record is one snapshot of the stored credentials. Empty strings and a nil
// User mean the entry is absent.
type Record struct {
	AccessToken  string
	RefreshToken string
	User         *models.User
}

// LoggedIn reports whether an access token is present.
func (r Record) LoggedIn() bool {
	return r.AccessToken != ""
}

// Patch selects the entries a Write replaces; nil fields are left as they are.
type Patch struct {
	AccessToken  *string
	RefreshToken *string
	User         *models.User
}

type Store struct {
	db  *sql.DB
	log logging.Logger

	mu    sync.Mutex // serializes writes together with their publish
	value *observable.Value[Record]
}

// New loads the persisted credentials from db, which must already be
// migrated.
func New(ctx context.Context, db *sql.DB, log logging.Logger) (*Store, error) {
	if log == nil {
		log = logging.Discard()
	}
	s := &Store{db: db, log: log.With("component", "credentials")}

	rec, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}
	s.value = observable.New(rec)
	return s, nil
}

// Write applies p in a single transaction and publishes the resulting
// record once the transaction has committed.
func (s *Store) Write(ctx context.Context, p Patch) error {
	return s.apply(ctx, func(ctx context.Context, repo credentials.Repository) error {
		if p.AccessToken != nil {
			if err := repo.Set(ctx, KeyAccessToken, []byte(*p.AccessToken)); err != nil {
				return err
			}
		}
		if p.RefreshToken != nil {
			if err := repo.Set(ctx, KeyRefreshToken, []byte(*p.RefreshToken)); err != nil {
				return err
			}
		}
		if p.User != nil {
			b, err := json.Marshal(p.User)
			if err != nil {
				return fmt.Errorf("encode user: %w", err)
			}
			if err := repo.Set(ctx, KeyUser, b); err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveAuth stores a fresh session: both tokens and the user.
func (s *Store) SaveAuth(ctx context.Context, user models.User, tokens models.AuthTokens) error {
	return s.Write(ctx, Patch{
		AccessToken:  &tokens.AccessToken,
		RefreshToken: &tokens.RefreshToken,
		User:         &user,
	})
}

// UpdateTokens replaces the token pair and keeps the cached user.
func (s *Store) UpdateTokens(ctx context.Context, tokens models.AuthTokens) error {
	return s.Write(ctx, Patch{AccessToken: &tokens.AccessToken, RefreshToken: &tokens.RefreshToken})
}

func (s *Store) SaveUser(ctx context.Context, user models.User) error {
	return s.Write(ctx, Patch{User: &user})
}

// Clear removes all three entries at once.
func (s *Store) Clear(ctx context.Context) error {
	return s.apply(ctx, func(ctx context.Context, repo credentials.Repository) error {
		return repo.Delete(ctx, KeyAccessToken, KeyRefreshToken, KeyUser)
	})
}

func (s *Store) apply(ctx context.Context, fn func(ctx context.Context, repo credentials.Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next Record
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := credentials.NewSQLiteRepository(tx, Namespace)
		if err := fn(ctx, repo); err != nil {
			return err
		}
		var err error
		next, err = s.load(ctx, repo)
		return err
	})
	if err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}

	s.value.Set(next)
	return nil
}

// Read returns what is currently persisted, read in one query.
func (s *Store) Read(ctx context.Context) (Record, error) {
	rec, err := s.load(ctx, credentials.NewSQLiteRepository(s.db, Namespace))
	if err != nil {
		return Record{}, fmt.Errorf("read credentials: %w", err)
	}
	return rec, nil
}

func (s *Store) load(ctx context.Context, repo credentials.Repository) (Record, error) {
	entries, err := repo.List(ctx)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		AccessToken:  string(entries[KeyAccessToken]),
		RefreshToken: string(entries[KeyRefreshToken]),
	}
	if raw, ok := entries[KeyUser]; ok && len(raw) > 0 {
		var u *models.User
		if err := json.Unmarshal(raw, &u); err != nil {
			s.log.Warn(ctx, "cached user is unreadable, ignoring it", "error", err)
		} else {
			rec.User = u
		}
	}
	return rec, nil
}

// Current returns the last published record without touching the database.
func (s *Store) Current() Record {
	return s.value.Get()
}

// Subscribe calls fn with the current record and then after every committed
// write. fn runs synchronously and must not write to the store.
func (s *Store) Subscribe(fn func(Record)) (cancel func()) {
	return s.value.Subscribe(fn)
}

// SubscribeLoggedIn delivers Record.LoggedIn for every emission.
func (s *Store) SubscribeLoggedIn(fn func(bool)) (cancel func()) {
	return s.value.Subscribe(func(r Record) { fn(r.LoggedIn()) })
}

// SubscribeUser delivers the cached user (nil when absent) for every emission.
func (s *Store) SubscribeUser(fn func(*models.User)) (cancel func()) {
	return s.value.Subscribe(func(r Record) { fn(r.User) })
}
