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

package users

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// Repository resolves local users.
type Repository interface {
	// FindByHash returns the user with the given identity hash.
	// It returns ErrPrincipalNotFound if no such user exists.
	FindByHash(ctx context.Context, hash string) (*Principal, error)
	// Save stores the user, replacing an existing user with the same identity hash.
	Save(ctx context.Context, principal Principal) error
}

var _ schema.Tabler = (*userRecord)(nil)

type userRecord struct {
	Hash             string `gorm:"primaryKey"`
	Role             string
	GivenName        string
	FamilyName       string
	Issuer           string
	IssuingAuthority string
}

func (u userRecord) TableName() string {
	return "app_user"
}

// NewSQLRepository creates a Repository that reads users from the SQL database.
func NewSQLRepository(db *gorm.DB) Repository {
	return &sqlRepository{db: db}
}

type sqlRepository struct {
	db *gorm.DB
}

func (s sqlRepository) FindByHash(ctx context.Context, hash string) (*Principal, error) {
	var record userRecord
	err := s.db.WithContext(ctx).Where("hash = ?", hash).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPrincipalNotFound
	} else if err != nil {
		return nil, err
	}
	return &Principal{
		Hash:             record.Hash,
		Role:             record.Role,
		GivenName:        record.GivenName,
		FamilyName:       record.FamilyName,
		Issuer:           record.Issuer,
		IssuingAuthority: record.IssuingAuthority,
	}, nil
}

func (s sqlRepository) Save(ctx context.Context, principal Principal) error {
	record := userRecord(principal)
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "hash"}},
		UpdateAll: true,
	}).Create(&record).Error
}
