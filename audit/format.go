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
	"bytes"
	"strings"
)

// replaceLevel replaces the level of a formatted log entry by 'audit', for the text and JSON formatter.
func replaceLevel(data []byte, level string) []byte {
	for _, pattern := range [][2]string{
		{"level=" + level, "level=" + auditLevelName},
		{`"level":"` + level + `"`, `"level":"` + auditLevelName + `"`},
		{strings.ToUpper(level)[:4], strings.ToUpper(auditLevelName)},
	} {
		if bytes.Contains(data, []byte(pattern[0])) {
			return bytes.Replace(data, []byte(pattern[0]), []byte(pattern[1]), 1)
		}
	}
	return data
}
