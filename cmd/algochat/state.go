// AlgoChat - Algorand end-to-end encrypted messaging
// Copyright (C) 2025 CorvidLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CorvidLabs/algochat-web/counterstate"
)

// loadOrNewState reads a counter-state blob from path, or returns a fresh
// State if path does not exist yet - the first message to or from a peer
// has no prior state to load.
func loadOrNewState(path string) (*counterstate.State, error) {
	blob, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return counterstate.New(), nil
	}
	if err != nil {
		return nil, err
	}
	return counterstate.Deserialize(blob)
}

// saveState persists s back to path in its wire JSON form.
func saveState(path string, s *counterstate.State) error {
	blob, err := s.Serialize()
	if err != nil {
		return err
	}
	return os.WriteFile(path, blob, 0o600)
}

var stateNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Print a freshly initialised counter state, serialised to JSON",
	RunE:  runStateNew,
}

var stateInspectFile string

var stateInspectCmd = &cobra.Command{
	Use:     "inspect",
	Short:   "Pretty-print a serialised counter state blob as YAML",
	Example: `  algochat state inspect --file peer-bob.json`,
	RunE:    runStateInspect,
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect and create per-peer counter state",
}

func init() {
	rootCmd.AddCommand(stateCmd)
	stateCmd.AddCommand(stateNewCmd)
	stateCmd.AddCommand(stateInspectCmd)

	stateInspectCmd.Flags().StringVar(&stateInspectFile, "file", "", "path to a JSON counter state blob")
	_ = stateInspectCmd.MarkFlagRequired("file")
}

func runStateNew(cmd *cobra.Command, args []string) error {
	s := counterstate.New()
	blob, err := s.Serialize()
	if err != nil {
		return fmt.Errorf("serialize failed: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(blob))
	return nil
}

func runStateInspect(cmd *cobra.Command, args []string) error {
	blob, err := os.ReadFile(stateInspectFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", stateInspectFile, err)
	}

	s, err := counterstate.Deserialize(blob)
	if err != nil {
		return fmt.Errorf("failed to parse counter state: %w", err)
	}

	yamlOut, err := s.DebugYAML()
	if err != nil {
		return fmt.Errorf("failed to render counter state: %w", err)
	}
	fmt.Fprint(os.Stdout, string(yamlOut))
	return nil
}
