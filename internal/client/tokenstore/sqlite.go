package tokenstore

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/dmitrijs2005/vibejournal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/vibejournal/internal/common"
	"github.com/dmitrijs2005/vibejournal/internal/cryptox"
	"github.com/dmitrijs2005/vibejournal/internal/dbx"
	"github.com/dmitrijs2005/vibejournal/internal/filex"
)

const (
	keyToken = "session_token"
	keySalt  = "session_token_salt"

	deviceSecretSize = 32
	saltSize         = 16
)

// SQLiteStore keeps the token in the metadata table. The value is sealed
// with a key derived from a per-install device secret file and a salt that
// is rotated on every Save.
//
// Key derivation is argon2id, so the derived key is cached for the salt it
// belongs to; Load runs on every request and derives at most once per Save.
type SQLiteStore struct {
	db         *sql.DB
	secretPath string

	mu   sync.Mutex
	salt []byte
	key  []byte
}

func NewSQLiteStore(db *sql.DB, secretPath string) *SQLiteStore {
	return &SQLiteStore{db: db, secretPath: secretPath}
}

func (s *SQLiteStore) Save(ctx context.Context, token string) error {
	secret, err := s.deviceSecret(true)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secret)

	salt := common.GenerateRandByteArray(saltSize)
	key := cryptox.DeriveKey(secret, salt)

	sealed, err := cryptox.Seal([]byte(token), key)
	if err != nil {
		common.WipeByteArray(key)
		return fmt.Errorf("seal token: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keySalt, salt); err != nil {
			return err
		}
		return repo.Set(ctx, keyToken, sealed)
	})
	if err != nil {
		common.WipeByteArray(key)
		return err
	}

	s.remember(salt, key)
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (string, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	sealed, err := repo.Get(ctx, keyToken)
	if errors.Is(err, metadata.ErrNotFound) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}

	salt, err := repo.Get(ctx, keySalt)
	if errors.Is(err, metadata.ErrNotFound) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}

	key, err := s.keyFor(salt)
	if errors.Is(err, os.ErrNotExist) {
		// token sealed by another install; unusable
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(key)

	plain, err := cryptox.Open(sealed, key)
	if err != nil {
		return "", fmt.Errorf("open token: %w", err)
	}

	return string(plain), nil
}

func (s *SQLiteStore) Delete(ctx context.Context) error {
	s.forget()
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, keyToken); err != nil {
			return err
		}
		return repo.Delete(ctx, keySalt)
	})
}

// keyFor returns a copy of the cached key when salt matches, deriving and
// caching it otherwise. The caller wipes the copy.
func (s *SQLiteStore) keyFor(salt []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key != nil && bytes.Equal(s.salt, salt) {
		return bytes.Clone(s.key), nil
	}

	secret, err := s.deviceSecret(false)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(secret)

	s.setKeyLocked(salt, cryptox.DeriveKey(secret, salt))
	return bytes.Clone(s.key), nil
}

func (s *SQLiteStore) remember(salt, key []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setKeyLocked(salt, key)
}

func (s *SQLiteStore) forget() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setKeyLocked(nil, nil)
}

func (s *SQLiteStore) setKeyLocked(salt, key []byte) {
	common.WipeByteArray(s.key)
	s.salt = append([]byte(nil), salt...)
	s.key = key
}

// deviceSecret reads the device secret, creating it first when create is set.
func (s *SQLiteStore) deviceSecret(create bool) ([]byte, error) {
	secret, err := os.ReadFile(s.secretPath)
	if err == nil {
		return secret, nil
	}
	if !errors.Is(err, os.ErrNotExist) || !create {
		return nil, err
	}

	secret = common.GenerateRandByteArray(deviceSecretSize)
	if err := filex.WritePrivate(s.secretPath, secret); err != nil {
		return nil, fmt.Errorf("write device secret: %w", err)
	}
	return secret, nil
}
