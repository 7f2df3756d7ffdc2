package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/threadline/storefront-api/internal/core/domain"
)

// SessionStore holds the live Credential per session id. The key TTL is the
// session lifetime; expiry of the key is the session ending, distinct from
// the access token expiring inside a live session.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Get(ctx context.Context, sid string) (*domain.Credential, error) {
	raw, err := s.client.Get(ctx, s.key(sid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return decodeCredential(raw)
}

func (s *SessionStore) Set(ctx context.Context, sid string, cred *domain.Credential) error {
	payload, err := encodeCredential(cred)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(sid), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

// Swap installs cred only while the stored generation still equals
// expectedGen. The check-and-set runs under WATCH so a concurrent install
// between read and write also surfaces as ErrStaleGeneration.
func (s *SessionStore) Swap(ctx context.Context, sid string, expectedGen uint64, cred *domain.Credential) error {
	key := s.key(sid)

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return domain.ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}

		cur, err := decodeCredential(raw)
		if err != nil {
			return err
		}
		if cur.Generation != expectedGen {
			return domain.ErrStaleGeneration
		}

		payload, err := encodeCredential(cred)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, s.ttl)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return domain.ErrStaleGeneration
	}
	return err
}

func (s *SessionStore) Delete(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, s.key(sid)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(sid string) string {
	return "session:" + sid
}

// storedCredential is the persistence shape. Credential hides its proof
// material from API responses, so the store writes every field explicitly.
type storedCredential struct {
	UserID             string    `json:"userId"`
	Name               string    `json:"name"`
	FirstName          string    `json:"firstName"`
	LastName           string    `json:"lastName"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone,omitempty"`
	Avatar             string    `json:"avatar,omitempty"`
	Address            string    `json:"address,omitempty"`
	DateOfBirth        string    `json:"dateOfBirth,omitempty"`
	IsVerified         bool      `json:"isVerified"`
	Role               string    `json:"role"`
	AccessToken        string    `json:"accessToken"`
	RefreshToken       string    `json:"refreshToken"`
	AccessTokenExpires time.Time `json:"accessTokenExpires"`
	Error              string    `json:"error,omitempty"`
	Generation         uint64    `json:"generation"`
}

func encodeCredential(cred *domain.Credential) ([]byte, error) {
	payload, err := json.Marshal(storedCredential{
		UserID:             cred.UserID,
		Name:               cred.Name,
		FirstName:          cred.FirstName,
		LastName:           cred.LastName,
		Email:              cred.Email,
		Phone:              cred.Phone,
		Avatar:             cred.Avatar,
		Address:            cred.Address,
		DateOfBirth:        cred.DateOfBirth,
		IsVerified:         cred.IsVerified,
		Role:               string(cred.Role),
		AccessToken:        cred.AccessToken,
		RefreshToken:       cred.RefreshToken,
		AccessTokenExpires: cred.AccessTokenExpires,
		Error:              cred.Error,
		Generation:         cred.Generation,
	})
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return payload, nil
}

func decodeCredential(raw []byte) (*domain.Credential, error) {
	var sc storedCredential
	if err := json.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &domain.Credential{
		UserID:             sc.UserID,
		Name:               sc.Name,
		FirstName:          sc.FirstName,
		LastName:           sc.LastName,
		Email:              sc.Email,
		Phone:              sc.Phone,
		Avatar:             sc.Avatar,
		Address:            sc.Address,
		DateOfBirth:        sc.DateOfBirth,
		IsVerified:         sc.IsVerified,
		Role:               domain.Role(sc.Role),
		AccessToken:        sc.AccessToken,
		RefreshToken:       sc.RefreshToken,
		AccessTokenExpires: sc.AccessTokenExpires,
		Error:              sc.Error,
		Generation:         sc.Generation,
	}, nil
}
