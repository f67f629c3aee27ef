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

package oauth

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/wallet-authz/auth/log"
	"github.com/nuts-foundation/wallet-authz/core"
)

// ErrorCode specifies error codes as defined by the OAuth2 specifications.
type ErrorCode string

const (
	// InvalidRequest is returned when the request is missing a required parameter, includes an invalid parameter value,
	// includes a parameter more than once, or is otherwise malformed.
	InvalidRequest ErrorCode = "invalid_request"
	// InvalidClient is returned when client authentication failed (e.g., unknown client, no client authentication included,
	// or unsupported authentication method).
	InvalidClient ErrorCode = "invalid_client"
	// InvalidGrant is returned when the provided authorization code is invalid, expired, already used,
	// does not match the redirection URI used in the authorization request, or was issued to another client.
	InvalidGrant ErrorCode = "invalid_grant"
	// InvalidScope is returned when the requested scope is invalid, unknown, or malformed.
	InvalidScope ErrorCode = "invalid_scope"
	// UnauthorizedClient is returned when the client is not authorized to request an authorization code using this method.
	UnauthorizedClient ErrorCode = "unauthorized_client"
	// UnsupportedGrantType is returned when the authorization grant type is not supported by the authorization server.
	UnsupportedGrantType ErrorCode = "unsupported_grant_type"
	// UnsupportedResponseType is returned when the authorization server does not support obtaining an authorization code using this method.
	UnsupportedResponseType ErrorCode = "unsupported_response_type"
	// AccessDenied is returned when the resource owner or authorization server denied the request.
	AccessDenied ErrorCode = "access_denied"
	// ServerError is returned when the authorization server encounters an unexpected condition that prevents it from fulfilling the request.
	ServerError ErrorCode = "server_error"
)

var _ core.HTTPStatusCodeError = OAuth2Error{}

// OAuth2Error is an OAuth2 error that signals the error was (probably) caused by the client (e.g. bad request).
// It's rendered as JSON body by the Oauth2ErrorWriter.
type OAuth2Error struct {
	// Code is the error code as defined by the OAuth2 specification.
	Code ErrorCode `json:"error"`
	// Description is a human-readable description of the error, which is returned to the client.
	Description string `json:"error_description,omitempty"`
	// InternalError is the underlying error, may be omitted. It is not returned to the client.
	InternalError error `json:"-"`
}

// Error returns the error message: the code, followed by the description and underlying error if set.
func (e OAuth2Error) Error() string {
	result := string(e.Code)
	if e.Description != "" {
		result += " - " + e.Description
	}
	if e.InternalError != nil {
		result += " - " + e.InternalError.Error()
	}
	return result
}

// Unwrap returns the underlying error.
func (e OAuth2Error) Unwrap() error {
	return e.InternalError
}

// StatusCode returns the HTTP status code for the error:
// 401 for invalid_client, 500 for server_error and 400 for all other errors (RFC6749, section 5.2).
func (e OAuth2Error) StatusCode() int {
	switch e.Code {
	case InvalidClient:
		return http.StatusUnauthorized
	case ServerError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

var _ core.ErrorWriter = (*Oauth2ErrorWriter)(nil)

// Oauth2ErrorWriter writes errors as OAuth2 error response (JSON body). Errors are never returned through a redirect,
// since the redirect URI might not be trusted when the error occurs.
type Oauth2ErrorWriter struct{}

func (p Oauth2ErrorWriter) Write(echoContext echo.Context, _ int, _ string, err error) error {
	// If not already an OAuth2 error, make it one (code=server_error) without leaking the cause.
	var oauthErr OAuth2Error
	if !errors.As(err, &oauthErr) {
		oauthErr = OAuth2Error{
			Code:          ServerError,
			InternalError: err,
		}
	}
	statusCode := oauthErr.StatusCode()
	if oauthErr.InternalError != nil {
		log.Logger().WithError(oauthErr.InternalError).Warnf("OAuth2 error occurred (status %d): %s", statusCode, oauthErr.Code)
	}
	headers := echoContext.Response().Header()
	headers.Set("Cache-Control", "no-store")
	headers.Set("Pragma", "no-cache")
	if statusCode == http.StatusUnauthorized && echoContext.Request().Header.Get("Authorization") != "" {
		headers.Set("WWW-Authenticate", `Basic realm="oauth2"`)
	}
	return echoContext.JSON(statusCode, OAuth2Error{
		Code:        oauthErr.Code,
		Description: oauthErr.Description,
	})
}
