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

	"github.com/spf13/cobra"

	"github.com/specgrade/specgrade/evaluation"
)

var checkJSON bool

var checkCmd = &cobra.Command{
	Use:   "check <description.json>",
	Short: "Run only the measurable fast path; no model calls.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := loadValue(args[0])
		if err != nil {
			return err
		}

		report := evaluation.QuickCheck(value)
		if err := printResults(cmd, report.Details, checkJSON); err != nil && report.Passed {
			return err
		}
		if !report.Passed {
			return fmt.Errorf("quick check failed: %v", report.FailedIDs)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "print results as JSON")
}
