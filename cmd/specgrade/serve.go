// Copyright 2025 The specgrade Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/specgrade/specgrade/model"
	"github.com/specgrade/specgrade/server"
	"github.com/specgrade/specgrade/storage"
)

type serveFlags struct {
	port      int
	modelName string
	storePath string
	storeKind string
}

var srvFlags serveFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the evaluation API over HTTP.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&srvFlags.port, "port", "p", 8080, "listen port")
	serveCmd.Flags().StringVarP(&srvFlags.modelName, "model", "m", "gemini-2.0-flash",
		"Gemini model for the LLM-backed tiers; empty disables them")
	serveCmd.Flags().StringVar(&srvFlags.storeKind, "store", "memory",
		"run store: memory, file or sqlite")
	serveCmd.Flags().StringVar(&srvFlags.storePath, "store-path", "specgrade-runs",
		"base path for the file store or database file for sqlite")
}

func runServe(cmd *cobra.Command) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	var completer model.Completer
	if srvFlags.modelName != "" {
		gemini, err := model.NewGeminiCompleter(cmd.Context(), srvFlags.modelName, nil)
		if err != nil {
			return fmt.Errorf("failed to initialize model: %w", err)
		}
		completer = gemini
	}

	srv := server.New(server.Config{
		Store:     store,
		Completer: completer,
	})
	defer srv.Close()

	addr := fmt.Sprintf(":%d", srvFlags.port)
	log.Printf("specgrade listening on %s", addr)
	return http.ListenAndServe(addr, srv.Handler())
}

func openStore() (storage.Store, error) {
	switch srvFlags.storeKind {
	case "memory":
		return storage.NewMemoryStore(), nil
	case "file":
		return storage.NewFileStore(srvFlags.storePath)
	case "sqlite":
		return storage.NewSQLiteStore(srvFlags.storePath)
	default:
		return nil, fmt.Errorf("unknown store %q", srvFlags.storeKind)
	}
}
