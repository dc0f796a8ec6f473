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

// Package server exposes the evaluation engine over HTTP.
package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"github.com/specgrade/specgrade/criteria"
	"github.com/specgrade/specgrade/evaluation"
	"github.com/specgrade/specgrade/model"
	"github.com/specgrade/specgrade/storage"
)

// Config assembles the server's collaborators.
type Config struct {
	// Store persists runs. Required.
	Store storage.Store

	// Completer enables the LLM-backed tiers. Optional; without it the
	// layered and descriptive tiers are skipped.
	Completer model.Completer

	// Criteria is the criteria set to evaluate. Defaults to the
	// built-in registry.
	Criteria []criteria.Criterion
}

// Server routes evaluation requests.
type Server struct {
	store     storage.Store
	completer model.Completer
	criteria  []criteria.Criterion
	router    *evaluation.Router

	// background tracks detached follow-up passes so Close can drain
	// them.
	background errgroup.Group
}

// New creates a server from config.
func New(config Config) *Server {
	set := config.Criteria
	if set == nil {
		set = criteria.Default()
	}
	return &Server{
		store:     config.Store,
		completer: config.Completer,
		criteria:  set,
		router:    evaluation.NewRouter(config.Completer),
	}
}

// Handler returns the HTTP handler for the evaluation API.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/v1/evaluate", s.Evaluate).Methods(http.MethodPost)
	router.HandleFunc("/v1/quickcheck", s.QuickCheck).Methods(http.MethodPost)
	router.HandleFunc("/v1/runs", s.ListRuns).Methods(http.MethodGet)
	router.HandleFunc("/v1/runs/{run_id}", s.GetRun).Methods(http.MethodGet)
	router.HandleFunc("/v1/runs/{run_id}", s.DeleteRun).Methods(http.MethodDelete)
	return router
}

// Close waits for in-flight background follow-up passes to finish.
func (s *Server) Close() error {
	return s.background.Wait()
}
