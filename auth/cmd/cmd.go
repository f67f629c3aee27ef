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

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/nuts-foundation/wallet-authz/auth"
	"github.com/nuts-foundation/wallet-authz/auth/clients"
	"github.com/nuts-foundation/wallet-authz/core"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ConfDefinitionsFile is the config key for the YAML file that contains the registered clients and users
const ConfDefinitionsFile = "auth.definitionsfile"

// ConfFlowTimeout is the config key for the maximum duration of a wallet authentication
const ConfFlowTimeout = "auth.flowtimeout"

// ConfSessionTimeout is the config key for the maximum lifetime of a browser session
const ConfSessionTimeout = "auth.sessiontimeout"

// ConfPruneInterval is the config key for the interval at which expired authorizations are deleted
const ConfPruneInterval = "auth.pruneinterval"

// ConfClientCacheTTL is the config key for how long registered clients are cached
const ConfClientCacheTTL = "auth.clientcachettl"

// ConfSigningKeyFile is the config key for the PEM file containing the access token signing key
const ConfSigningKeyFile = "auth.signingkeyfile"

// ConfVerifierURL is the config key for the base URL of the verifier
const ConfVerifierURL = "auth.verifier.url"

// ConfVerifierTimeout is the config key for the timeout of calls to the verifier
const ConfVerifierTimeout = "auth.verifier.timeout"

// ConfClaimsPrefix is the prefix of the config keys for the JSONPath expressions that select claims from the presentation result
const ConfClaimsPrefix = "auth.claims."

// FlagSet returns the configuration flags supported by this module.
func FlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("auth", pflag.ContinueOnError)

	defs := auth.DefaultConfig()
	flags.String(ConfDefinitionsFile, defs.DefinitionsFile, "YAML file that contains the registered clients ('clients') and users ('users'). They're loaded into the database at startup.")
	flags.Duration(ConfFlowTimeout, defs.FlowTimeout, "Maximum duration of a wallet authentication, from the redirect to the wallet until the callback.")
	flags.Duration(ConfSessionTimeout, defs.SessionTimeout, "Maximum lifetime of a browser session.")
	flags.Duration(ConfPruneInterval, defs.PruneInterval, "Interval at which expired authorizations are deleted from the database.")
	flags.Duration(ConfClientCacheTTL, defs.ClientCacheTTL, "Duration registered clients are cached. Set to 0 to cache without expiry.")
	flags.String(ConfSigningKeyFile, defs.SigningKeyFile, "PEM file containing the EC P-256 private key access tokens are signed with. "+
		"If not set, a key is generated in the data directory. Required in strict mode.")
	flags.String(ConfVerifierURL, defs.Verifier.URL, "Base URL of the verifier that performs the wallet presentation exchange (required).")
	flags.Duration(ConfVerifierTimeout, defs.Verifier.Timeout, "Timeout of calls to the verifier.")
	flags.String(ConfClaimsPrefix+"hash", defs.Claims.Hash, "JSONPath expression that selects the identity hash from the verified claims.")
	flags.String(ConfClaimsPrefix+"givenname", defs.Claims.GivenName, "JSONPath expression that selects the given name from the verified claims.")
	flags.String(ConfClaimsPrefix+"familyname", defs.Claims.FamilyName, "JSONPath expression that selects the family name from the verified claims.")
	flags.String(ConfClaimsPrefix+"issuingcountry", defs.Claims.IssuingCountry, "JSONPath expression that selects the issuing country from the verified claims.")
	flags.String(ConfClaimsPrefix+"issuingauthority", defs.Claims.IssuingAuthority, "JSONPath expression that selects the issuing authority from the verified claims.")

	return flags
}

// Cmd contains sub-commands for managing registered clients.
func Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Registered client commands",
	}
	cmd.PersistentFlags().AddFlagSet(core.FlagSet())
	cmd.PersistentFlags().AddFlagSet(FlagSet())
	cmd.AddCommand(listCommand())
	cmd.AddCommand(hashSecretCommand())
	return cmd
}

func listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lists the clients registered in the definitions file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			serverConfig := core.NewServerConfig()
			if err := serverConfig.Load(cmd.Flags()); err != nil {
				return err
			}
			instance := auth.NewAuthInstance(auth.DefaultConfig(), nil)
			if err := serverConfig.InjectIntoEngine(instance); err != nil {
				return err
			}
			file := instance.Config().(*auth.Config).DefinitionsFile
			if file == "" {
				return errors.New(ConfDefinitionsFile + " must be configured")
			}
			registered, err := clients.LoadDefinitions(file, serverConfig.Strictmode)
			if err != nil {
				return err
			}
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(writer, "CLIENT ID\tTYPE\tSCOPES\tREDIRECT URIS")
			for _, client := range registered {
				clientType := "confidential"
				if client.IsPublic() {
					clientType = "public"
				}
				_, _ = fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", client.ID, clientType, strings.Join(client.Scopes, " "), strings.Join(client.RedirectURIs, " "))
			}
			return writer.Flush()
		},
	}
}

func hashSecretCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-secret",
		Short: "Reads a client secret from stdin and prints the hash to register as secret_hash in the definitions file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			secret = strings.TrimRight(secret, "\r\n")
			if secret == "" {
				if err != nil {
					return fmt.Errorf("unable to read secret: %w", err)
				}
				return errors.New("secret must not be empty")
			}
			hash, err := clients.HashSecret(secret)
			if err != nil {
				return err
			}
			cmd.Println(hash)
			return nil
		},
	}
}
