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

package verifier

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/nuts-foundation/wallet-authz/auth/log"
	"github.com/nuts-foundation/wallet-authz/core"
	"github.com/santhosh-tekuri/jsonschema"
)

// DefaultTimeout is the default timeout for calls to the verifier.
const DefaultTimeout = 10 * time.Second

// maxResponseSize limits how much of a verifier response is read.
const maxResponseSize = 1024 * 1024

const presentationsPath = "/ui/presentations"

//go:embed *.json
var jsonSchemaFiles embed.FS

var transactionSchema *jsonschema.Schema
var resultSchema *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	transactionSchema = compileSchema(compiler, "transaction-schema.json")
	resultSchema = compileSchema(compiler, "result-schema.json")
}

func compileSchema(compiler *jsonschema.Compiler, file string) *jsonschema.Schema {
	data, err := jsonSchemaFiles.ReadFile(file)
	if err != nil {
		panic(err)
	}
	schemaURL := "http://nuts.nl/schemas/verifier/" + file
	if err := compiler.AddResource(schemaURL, bytes.NewReader(data)); err != nil {
		panic(err)
	}
	return compiler.MustCompile(schemaURL)
}

var _ Client = (*HTTPClient)(nil)

// HTTPClient is a Client that calls the verifier's HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	timeout    time.Duration
	httpClient core.HTTPRequestDoer
}

// NewHTTPClient creates a verifier client for the verifier at the given base URL.
// In strict mode, the verifier must be called over HTTPS.
func NewHTTPClient(baseURL string, strictMode bool, timeout time.Duration) (*HTTPClient, error) {
	parsed, err := parseBaseURL(baseURL, strictMode)
	if err != nil {
		return nil, fmt.Errorf("invalid verifier URL: %w", err)
	}
	return &HTTPClient{
		baseURL:    parsed,
		timeout:    timeout,
		httpClient: core.NewStrictHTTPClient(strictMode, timeout, nil),
	}, nil
}

// parseBaseURL parses the verifier URL. In strict mode, it must be a public HTTPS URL.
func parseBaseURL(baseURL string, strictMode bool) (*url.URL, error) {
	if strictMode {
		parsed, err := core.ParsePublicURL(baseURL)
		if err != nil {
			return nil, err
		}
		if parsed.Scheme != "https" {
			return nil, errors.New("scheme must be https")
		}
		return parsed, nil
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return nil, errors.New("must be an absolute URL")
	}
	return parsed, nil
}

func (h HTTPClient) InitTransaction(ctx context.Context, sessionID string, callbackURI string) (*Transaction, error) {
	body, _ := json.Marshal(map[string]string{
		"session_id":   sessionID,
		"callback_uri": callbackURI,
	})
	var result Transaction
	err := h.call(ctx, http.MethodPost, h.baseURL.JoinPath(presentationsPath), bytes.NewReader(body), transactionSchema, &result)
	if err != nil {
		return nil, fmt.Errorf("unable to create presentation transaction: %w", err)
	}
	return &result, nil
}

func (h HTTPClient) FetchResult(ctx context.Context, presentationID string, nonce string, responseCode string) (*Result, error) {
	requestURL := h.baseURL.JoinPath(presentationsPath, presentationID)
	query := url.Values{}
	query.Set("nonce", nonce)
	if responseCode != "" {
		query.Set("response_code", responseCode)
	}
	requestURL.RawQuery = query.Encode()
	var result Result
	if err := h.call(ctx, http.MethodGet, requestURL, nil, resultSchema, &result); err != nil {
		return nil, fmt.Errorf("unable to fetch presentation result: %w", err)
	}
	return &result, nil
}

func (h HTTPClient) call(ctx context.Context, method string, requestURL *url.URL, body io.Reader, schema *jsonschema.Schema, target interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	request, err := http.NewRequestWithContext(ctx, method, requestURL.String(), body)
	if err != nil {
		return err
	}
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	response, err := h.httpClient.Do(request)
	if err != nil {
		return core.WrapError(ErrUnavailable, err)
	}
	defer response.Body.Close()
	if err = core.TestResponseCodeWithLog(http.StatusOK, response, log.Logger()); err != nil {
		if response.StatusCode >= http.StatusInternalServerError {
			return core.WrapError(ErrUnavailable, err)
		}
		return core.WrapError(ErrInvalidResponse, err)
	}
	data, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: unable to read response: %w", ErrUnavailable, err)
	}
	if err = schema.Validate(bytes.NewReader(data)); err != nil {
		return core.WrapError(ErrInvalidResponse, err)
	}
	if err = json.Unmarshal(data, target); err != nil {
		return core.WrapError(ErrInvalidResponse, err)
	}
	return nil
}
