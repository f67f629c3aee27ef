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

package assets

import (
	_ "embed"

	"github.com/cbroglie/mustache"
)

//go:embed error.mustache
var errorTemplateSource string

var errorTemplate *mustache.Template

func init() {
	var err error
	errorTemplate, err = mustache.ParseString(errorTemplateSource)
	if err != nil {
		panic(err)
	}
}

// ErrorPage holds the values of the error page.
type ErrorPage struct {
	Title   string
	Message string
}

// RenderError renders the generic error page. Values are HTML escaped.
func RenderError(page ErrorPage) (string, error) {
	return errorTemplate.Render(page)
}
