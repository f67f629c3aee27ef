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

package audit

import (
	"context"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestActor is the actor of audit events logged with TestContext.
const TestActor = "192.0.2.1"

// TestContext returns a context carrying audit info, for tests that log audit events outside an HTTP request.
func TestContext() context.Context {
	return Context(context.Background(), TestActor, "TestModule", "TestOperation")
}

// AssertAuditInfo asserts the request context of the echo context carries the given audit info.
func AssertAuditInfo(t *testing.T, ctx echo.Context, actor, module, operation string) {
	t.Helper()
	info := InfoFromContext(ctx.Request().Context())
	require.NotNil(t, info)
	assert.Equal(t, actor, info.Actor)
	assert.Equal(t, module+"."+operation, info.Operation)
}

// CapturedLog holds the audit events logged during a test.
type CapturedLog struct {
	hook *test.Hook
}

// Events returns the captured entries of the given event, in the order they were logged.
func (c *CapturedLog) Events(eventName string) []*logrus.Entry {
	var result []*logrus.Entry
	for _, entry := range c.hook.AllEntries() {
		if entry.Data["event"] == eventName {
			result = append(result, entry)
		}
	}
	return result
}

// AssertEvent asserts the event was logged on audit level with (at least) the given fields, and returns the last matching entry.
func (c *CapturedLog) AssertEvent(t *testing.T, eventName string, fields logrus.Fields) *logrus.Entry {
	t.Helper()
	entries := c.Events(eventName)
	for i := len(entries) - 1; i >= 0; i-- {
		if hasFields(entries[i], fields) {
			formatted, err := entries[i].Logger.Formatter.Format(entries[i])
			require.NoError(t, err)
			if !strings.Contains(string(formatted), "level="+auditLevelName) && !strings.Contains(string(formatted), strings.ToUpper(auditLevelName)) {
				t.Errorf("audit event %s is not logged on '%s' level: %s", eventName, auditLevelName, formatted)
			}
			return entries[i]
		}
	}
	var logged []string
	for _, entry := range c.hook.AllEntries() {
		line, _ := (&logrus.TextFormatter{DisableTimestamp: true}).Format(entry)
		logged = append(logged, strings.TrimSpace(string(line)))
	}
	t.Errorf("audit event %s with fields %v not logged, captured:\n%s", eventName, fields, strings.Join(logged, "\n"))
	return nil
}

func hasFields(entry *logrus.Entry, fields logrus.Fields) bool {
	for key, value := range fields {
		if entry.Data[key] != value {
			return false
		}
	}
	return true
}

// CaptureLogs captures audit events until the test ends.
func CaptureLogs(t *testing.T) *CapturedLog {
	previous := make(logrus.LevelHooks)
	for level, hooks := range auditLogger().Hooks {
		previous[level] = append([]logrus.Hook(nil), hooks...)
	}
	t.Cleanup(func() {
		auditLogger().ReplaceHooks(previous)
	})
	hook := &test.Hook{}
	auditLogger().AddHook(hook)
	return &CapturedLog{hook: hook}
}
