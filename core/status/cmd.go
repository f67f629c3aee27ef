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

package status

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nuts-foundation/wallet-authz/core"
	"github.com/spf13/cobra"
)

const addressFlag = "address"

// Cmd returns the command that prints the diagnostics of a running server.
func Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Shows the diagnostics of a running server.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			address, _ := cmd.Flags().GetString(addressFlag)
			if !strings.HasPrefix(address, "http") {
				address = "http://" + address
			}
			targetURL := core.JoinURLPaths(address, diagnosticsEndpoint)
			request, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, targetURL, nil)
			if err != nil {
				return err
			}
			response, err := http.DefaultClient.Do(request)
			if err != nil {
				return err
			}
			defer response.Body.Close()
			if err = core.TestResponseCode(http.StatusOK, response); err != nil {
				return fmt.Errorf("unable to retrieve diagnostics (url=%s): %w", targetURL, err)
			}
			data, err := io.ReadAll(response.Body)
			if err != nil {
				return err
			}
			cmd.Println(string(data))
			return nil
		},
	}
	cmd.Flags().String(addressFlag, "localhost:8080", "Address of the server. The URL scheme may be omitted, in which case 'http://' is prepended.")
	return cmd
}
