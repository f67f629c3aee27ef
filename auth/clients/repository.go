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

package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// Repository provides access to the registered clients.
type Repository interface {
	// FindByID returns the client with the given ID.
	// It returns ErrClientNotFound if the client is not registered.
	FindByID(ctx context.Context, clientID string) (*RegisteredClient, error)
	// List returns all registered clients, ordered by ID.
	List(ctx context.Context) ([]RegisteredClient, error)
	// Save registers the client, replacing an existing registration with the same ID.
	Save(ctx context.Context, client RegisteredClient) error
}

var _ schema.Tabler = (*clientRecord)(nil)

// clientRecord is the gorm representation of the oauth_client table.
// List values are stored as JSON arrays, TTLs in seconds.
type clientRecord struct {
	ClientID         string `gorm:"primaryKey"`
	ClientSecretHash string
	GrantTypes       string
	Scopes           string
	RedirectURIs     string `gorm:"column:redirect_uris"`
	CodeTTL          int    `gorm:"column:code_ttl"`
	TokenTTL         int    `gorm:"column:token_ttl"`
}

func (c clientRecord) TableName() string {
	return "oauth_client"
}

func (c clientRecord) toClient() (*RegisteredClient, error) {
	result := &RegisteredClient{
		ID:                   c.ClientID,
		SecretHash:           c.ClientSecretHash,
		AuthorizationCodeTTL: time.Duration(c.CodeTTL) * time.Second,
		AccessTokenTTL:       time.Duration(c.TokenTTL) * time.Second,
	}
	for target, data := range map[*[]string]string{
		&result.GrantTypes:   c.GrantTypes,
		&result.Scopes:       c.Scopes,
		&result.RedirectURIs: c.RedirectURIs,
	} {
		if err := json.Unmarshal([]byte(data), target); err != nil {
			return nil, fmt.Errorf("invalid client record (id=%s): %w", c.ClientID, err)
		}
	}
	return result, nil
}

func fromClient(client RegisteredClient) clientRecord {
	return clientRecord{
		ClientID:         client.ID,
		ClientSecretHash: client.SecretHash,
		GrantTypes:       marshalList(client.GrantTypes),
		Scopes:           marshalList(client.Scopes),
		RedirectURIs:     marshalList(client.RedirectURIs),
		CodeTTL:          int(client.AuthorizationCodeTTL / time.Second),
		TokenTTL:         int(client.AccessTokenTTL / time.Second),
	}
}

func marshalList(values []string) string {
	if values == nil {
		values = []string{}
	}
	data, _ := json.Marshal(values)
	return string(data)
}

// NewSQLRepository creates a Repository that stores clients in the SQL database.
func NewSQLRepository(db *gorm.DB) Repository {
	return &sqlRepository{db: db}
}

type sqlRepository struct {
	db *gorm.DB
}

func (s sqlRepository) FindByID(ctx context.Context, clientID string) (*RegisteredClient, error) {
	var record clientRecord
	err := s.db.WithContext(ctx).Where("client_id = ?", clientID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClientNotFound
	} else if err != nil {
		return nil, err
	}
	return record.toClient()
}

func (s sqlRepository) List(ctx context.Context) ([]RegisteredClient, error) {
	var records []clientRecord
	if err := s.db.WithContext(ctx).Order("client_id").Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]RegisteredClient, 0, len(records))
	for _, record := range records {
		client, err := record.toClient()
		if err != nil {
			return nil, err
		}
		result = append(result, *client)
	}
	return result, nil
}

func (s sqlRepository) Save(ctx context.Context, client RegisteredClient) error {
	record := fromClient(client)
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "client_id"}},
		UpdateAll: true,
	}).Create(&record).Error
}
