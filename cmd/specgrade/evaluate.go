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
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/specgrade/specgrade/criteria"
	"github.com/specgrade/specgrade/evaluation"
	"github.com/specgrade/specgrade/model"
	"github.com/specgrade/specgrade/storage"
)

type evaluateFlags struct {
	modelName    string
	criteriaPath string
	storeDir     string
	jsonOutput   bool
}

var evalFlags evaluateFlags

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <description.json>",
	Short: "Run the full three-tier evaluation on a description file.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEvaluate(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVarP(&evalFlags.modelName, "model", "m", "gemini-2.0-flash",
		"Gemini model for the LLM-backed tiers; empty disables them")
	evaluateCmd.Flags().StringVarP(&evalFlags.criteriaPath, "criteria", "c", "",
		"YAML criteria set overriding the built-in registry")
	evaluateCmd.Flags().StringVarP(&evalFlags.storeDir, "store", "s", "",
		"directory to persist the run to (file store)")
	evaluateCmd.Flags().BoolVar(&evalFlags.jsonOutput, "json", false,
		"print results as JSON")
}

func runEvaluate(cmd *cobra.Command, path string) error {
	value, err := loadValue(path)
	if err != nil {
		return err
	}

	set, err := loadCriteria()
	if err != nil {
		return err
	}

	var completer model.Completer
	if evalFlags.modelName != "" {
		gemini, err := model.NewGeminiCompleter(cmd.Context(), evalFlags.modelName, nil)
		if err != nil {
			return fmt.Errorf("failed to initialize model: %w", err)
		}
		completer = gemini
	}

	router := evaluation.NewRouter(completer)
	results := router.EvaluateAll(cmd.Context(), value, set)

	if evalFlags.storeDir != "" {
		store, err := storage.NewFileStore(evalFlags.storeDir)
		if err != nil {
			return err
		}
		run := &storage.Run{
			ID:        uuid.New().String(),
			Name:      path,
			Passed:    passedAll(results),
			CreatedAt: time.Now(),
			Results:   results,
		}
		if err := store.SaveRun(cmd.Context(), run); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "run %s saved to %s\n", run.ID, evalFlags.storeDir)
	}

	return printResults(cmd, results, evalFlags.jsonOutput)
}

func loadValue(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return value, nil
}

func loadCriteria() ([]criteria.Criterion, error) {
	if evalFlags.criteriaPath == "" {
		return criteria.Default(), nil
	}
	return criteria.Load(evalFlags.criteriaPath)
}

func passedAll(results []evaluation.Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}

func printResults(cmd *cobra.Command, results []evaluation.Result, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	}

	failed := 0
	for _, result := range results {
		mark := "PASS"
		if !result.Passed {
			mark = "FAIL"
			failed++
		}
		fmt.Fprintf(out, "%-4s %-28s (%s, %v)\n", mark, result.CriterionID, result.Strategy, result.Elapsed.Round(time.Millisecond))
	}
	fmt.Fprintf(out, "%d/%d criteria passed\n", len(results)-failed, len(results))
	if failed > 0 {
		return fmt.Errorf("%d criteria failed", failed)
	}
	return nil
}
