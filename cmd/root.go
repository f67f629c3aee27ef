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
	"context"
	"errors"
	"io"
	"os"

	"github.com/nuts-foundation/wallet-authz/auth"
	"github.com/nuts-foundation/wallet-authz/auth/api/iam"
	authCmd "github.com/nuts-foundation/wallet-authz/auth/cmd"
	"github.com/nuts-foundation/wallet-authz/core"
	"github.com/nuts-foundation/wallet-authz/core/status"
	httpEngine "github.com/nuts-foundation/wallet-authz/http"
	httpCmd "github.com/nuts-foundation/wallet-authz/http/cmd"
	"github.com/nuts-foundation/wallet-authz/storage"
	storageCmd "github.com/nuts-foundation/wallet-authz/storage/cmd"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var stdOutWriter io.Writer = os.Stdout

func createRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "authz",
		Short: "OAuth2 authorization server that authenticates users with their identity wallet.",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
		SilenceUsage: true,
	}
}

func createPrintConfigCommand(system *core.System) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Prints the current config",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := system.Load(cmd.Flags()); err != nil {
				return err
			}
			cmd.Println("Current system config")
			cmd.Println(system.Config.PrintConfig())
			return nil
		},
	}
	cmd.Flags().AddFlagSet(serverConfigFlags())
	return cmd
}

func createServerCommand(system *core.System) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Starts the authorization server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := system.Load(cmd.Flags()); err != nil {
				return err
			}
			return startServer(cmd.Context(), system)
		},
	}
	cmd.Flags().AddFlagSet(serverConfigFlags())
	return cmd
}

func startServer(ctx context.Context, system *core.System) error {
	logrus.Info("Starting server with config:")
	logrus.Info(system.Config.PrintConfig())

	// check config on all engines
	if err := system.Configure(); err != nil {
		return err
	}

	// register HTTP routes, the router is available after the HTTP engine has been configured
	router, err := resolveRouter(system)
	if err != nil {
		return err
	}
	system.VisitEngines(func(engine core.Engine) {
		if r, ok := engine.(core.Routable); ok {
			r.Routes(router)
		}
	})
	for _, r := range system.Routers {
		r.Routes(router)
	}

	// start engines
	if err := system.Start(); err != nil {
		return err
	}

	// wait until instructed to shut down
	<-ctx.Done()
	logrus.Info("Shutting down...")
	if err := system.Shutdown(); err != nil {
		logrus.WithError(err).Error("Error shutting down system")
		return err
	}
	logrus.Info("Shutdown complete. Goodbye!")
	return nil
}

func resolveRouter(system *core.System) (core.EchoRouter, error) {
	var router core.EchoRouter
	system.VisitEngines(func(engine core.Engine) {
		if h, ok := engine.(*httpEngine.Engine); ok {
			router = h.Router()
		}
	})
	if router == nil {
		return nil, errors.New("HTTP engine not registered")
	}
	return router, nil
}

// CreateCommand creates the command with all subcommands to run the system.
func CreateCommand(system *core.System) *cobra.Command {
	command := createRootCommand()
	command.SetOut(stdOutWriter)
	command.AddCommand(createServerCommand(system))
	command.AddCommand(createPrintConfigCommand(system))
	command.AddCommand(authCmd.Cmd())
	command.AddCommand(status.Cmd())
	return command
}

// CreateSystem creates the system and registers all default engines.
// The shutdown callback is called when the HTTP interface stops unexpectedly.
func CreateSystem(shutdownCallback context.CancelFunc) *core.System {
	system := core.NewSystem()

	// Create instances
	storageInstance := storage.New()
	httpServerInstance := httpEngine.New(shutdownCallback)
	authInstance := auth.NewAuthInstance(auth.DefaultConfig(), storageInstance)

	// Register HTTP routes
	system.RegisterRoutes(iam.New(authInstance))

	// Register engines, storage before the engines that use it
	system.RegisterEngine(status.NewStatusEngine(system))
	system.RegisterEngine(core.NewMetricsEngine())
	system.RegisterEngine(storageInstance)
	system.RegisterEngine(httpServerInstance)
	system.RegisterEngine(authInstance)
	return system
}

// Execute executes the root command with the given system. It blocks until the command completes,
// which for the server command means until the context is cancelled.
func Execute(ctx context.Context, system *core.System) error {
	command := CreateCommand(system)
	command.SetOut(stdOutWriter)
	return command.ExecuteContext(ctx)
}

func serverConfigFlags() *pflag.FlagSet {
	set := pflag.NewFlagSet("server", pflag.ContinueOnError)
	set.AddFlagSet(core.FlagSet())
	set.AddFlagSet(storageCmd.FlagSet())
	set.AddFlagSet(httpCmd.FlagSet())
	set.AddFlagSet(authCmd.FlagSet())
	return set
}
