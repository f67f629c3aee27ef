/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package authz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goerrors "github.com/go-errors/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Store persists authorizations.
type Store interface {
	// Create stores the authorization. The authorization code is only valid after Create returned.
	Create(ctx context.Context, authorization Authorization) error
	// Consume atomically marks the code with the given hash as used, and returns its authorization.
	// It returns ErrCodeNotRedeemable if the code is unknown, expired at the given time or already consumed.
	Consume(ctx context.Context, codeHash string, now time.Time) (*Authorization, error)
	// Prune deletes authorizations with codes that expired before the given time, and returns how many were deleted.
	Prune(ctx context.Context, expiredBefore time.Time) (int, error)
}

var _ schema.Tabler = (*authorizationRecord)(nil)

// authorizationRecord is the gorm representation of the oauth_authorization table.
// Timestamps are stored as unix seconds.
type authorizationRecord struct {
	ID            string `gorm:"primaryKey"`
	ClientID      string
	PrincipalHash string
	Scopes        string
	GrantType     string
	CodeHash      string
	CodeIssuedAt  int64
	CodeExpiresAt int64
	ConsumedAt    *int64
	Attributes    string
}

func (a authorizationRecord) TableName() string {
	return "oauth_authorization"
}

func (a authorizationRecord) toAuthorization() (*Authorization, error) {
	result := &Authorization{
		ID:            a.ID,
		ClientID:      a.ClientID,
		PrincipalHash: a.PrincipalHash,
		GrantType:     a.GrantType,
		CodeHash:      a.CodeHash,
		IssuedAt:      time.Unix(a.CodeIssuedAt, 0),
		ExpiresAt:     time.Unix(a.CodeExpiresAt, 0),
	}
	if a.ConsumedAt != nil {
		consumedAt := time.Unix(*a.ConsumedAt, 0)
		result.ConsumedAt = &consumedAt
	}
	if err := json.Unmarshal([]byte(a.Scopes), &result.Scopes); err != nil {
		return nil, fmt.Errorf("invalid authorization record (id=%s): %w", a.ID, err)
	}
	if err := json.Unmarshal([]byte(a.Attributes), &result.Attributes); err != nil {
		return nil, fmt.Errorf("invalid authorization record (id=%s): %w", a.ID, err)
	}
	return result, nil
}

func fromAuthorization(authorization Authorization) (*authorizationRecord, error) {
	scopes := authorization.Scopes
	if scopes == nil {
		scopes = []string{}
	}
	scopesJSON, err := json.Marshal(scopes)
	if err != nil {
		return nil, err
	}
	attributesJSON, err := json.Marshal(authorization.Attributes)
	if err != nil {
		return nil, err
	}
	result := &authorizationRecord{
		ID:            authorization.ID,
		ClientID:      authorization.ClientID,
		PrincipalHash: authorization.PrincipalHash,
		Scopes:        string(scopesJSON),
		GrantType:     authorization.GrantType,
		CodeHash:      authorization.CodeHash,
		CodeIssuedAt:  authorization.IssuedAt.Unix(),
		CodeExpiresAt: authorization.ExpiresAt.Unix(),
		Attributes:    string(attributesJSON),
	}
	if authorization.ConsumedAt != nil {
		consumedAt := authorization.ConsumedAt.Unix()
		result.ConsumedAt = &consumedAt
	}
	return result, nil
}

// NewSQLStore creates a Store on the SQL database.
func NewSQLStore(db *gorm.DB) Store {
	return &sqlStore{db: db}
}

type sqlStore struct {
	db *gorm.DB
}

func (s sqlStore) Create(ctx context.Context, authorization Authorization) error {
	record, err := fromAuthorization(authorization)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(record).Error
	})
	if err != nil {
		return goerrors.Wrap(err, 1)
	}
	return nil
}

func (s sqlStore) Consume(ctx context.Context, codeHash string, now time.Time) (*Authorization, error) {
	var record authorizationRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Conditional update, so concurrent exchanges of the same code can't both succeed.
		result := tx.Model(&authorizationRecord{}).
			Where("code_hash = ? AND consumed_at IS NULL AND code_expires_at > ?", codeHash, now.Unix()).
			Update("consumed_at", now.Unix())
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != 1 {
			return ErrCodeNotRedeemable
		}
		return tx.Where("code_hash = ?", codeHash).First(&record).Error
	})
	if errors.Is(err, ErrCodeNotRedeemable) {
		return nil, err
	} else if err != nil {
		return nil, goerrors.Wrap(err, 1)
	}
	return record.toAuthorization()
}

func (s sqlStore) Prune(ctx context.Context, expiredBefore time.Time) (int, error) {
	result := s.db.WithContext(ctx).
		Where("code_expires_at < ?", expiredBefore.Unix()).
		Delete(&authorizationRecord{})
	return int(result.RowsAffected), result.Error
}
