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

// Package audit writes security events to a dedicated audit log, which shares the formatter and output of the standard logger.
package audit

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	// AuthorizationCodeIssuedEvent occurs when an authorization code is issued to a client.
	AuthorizationCodeIssuedEvent = "AuthorizationCodeIssued"
	// WalletAuthenticationStartedEvent occurs when the user is sent to the wallet to authenticate.
	WalletAuthenticationStartedEvent = "WalletAuthenticationStarted"
	// AccessTokenIssuedEvent occurs when an authorization code is exchanged for an access token.
	AccessTokenIssuedEvent = "AccessTokenIssued"
	// AccessTokenRequestRejectedEvent occurs when a token request is refused.
	AccessTokenRequestRejectedEvent = "AccessTokenRequestRejected"
)

// auditLevelName is reported as level of audit entries. logrus has no custom levels, so entries are
// logged on info and the level is replaced by the formatter.
const auditLevelName = "audit"

type auditContextKey struct{}

// Info contains the audit information of the operation that is being performed.
type Info struct {
	// Actor is the party that invoked the operation, e.g. the client IP address.
	Actor string
	// Operation is the module and operation ID, separated by a dot.
	Operation string
}

// Context returns a child context of the given context, containing the audit information.
func Context(ctx context.Context, actor, moduleName, operationID string) context.Context {
	return context.WithValue(ctx, auditContextKey{}, Info{
		Actor:     actor,
		Operation: moduleName + "." + operationID,
	})
}

// InfoFromContext returns the audit information of the given context, or nil if there is none.
func InfoFromContext(ctx context.Context) *Info {
	info, ok := ctx.Value(auditContextKey{}).(Info)
	if !ok {
		return nil
	}
	return &info
}

// Log returns a logger for an audit event. The module field of the given logger is retained.
// It panics if the context contains no audit information or the event name is empty,
// since that's a programming error.
func Log(ctx context.Context, logger *logrus.Entry, eventName string) *logrus.Entry {
	info := InfoFromContext(ctx)
	if info == nil || info.Actor == "" {
		panic("audit: no actor in context")
	}
	if eventName == "" {
		panic("audit: no event name")
	}
	entry := auditLogger().WithFields(logrus.Fields{
		"log":       auditLevelName,
		"actor":     info.Actor,
		"operation": info.Operation,
		"event":     eventName,
	})
	if module, ok := logger.Data["module"]; ok {
		entry = entry.WithField("module", module)
	}
	return entry
}

var auditLoggerInstance *logrus.Logger
var initAuditLoggerOnce = &sync.Once{}

// auditLogger returns the logger audit events are written to.
// It's created lazily, so it picks up the formatter and output the standard logger was configured with.
func auditLogger() *logrus.Logger {
	initAuditLoggerOnce.Do(func() {
		standard := logrus.StandardLogger()
		auditLoggerInstance = &logrus.Logger{
			Out:       standard.Out,
			Hooks:     make(logrus.LevelHooks),
			Formatter: &auditFormatter{formatter: standard.Formatter},
			Level:     logrus.InfoLevel,
		}
	})
	return auditLoggerInstance
}

// auditFormatter formats entries with the underlying formatter, reporting the level as 'audit'.
type auditFormatter struct {
	formatter logrus.Formatter
}

func (a auditFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	data, err := a.formatter.Format(entry)
	if err != nil {
		return nil, err
	}
	return replaceLevel(data, entry.Level.String()), nil
}
