// Copyright 2026 The Oneseismic-Go Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	taskSize int
	outDir   string
)

var rootCmd = &cobra.Command{
	Use:   "oneseismic [command] (flags)",
	Short: "oneseismic query planning/introspection tool",
	Long:  ``,
}

func main() {
	log.SetFlags(0)

	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(
		planCmd,
		describeCmd,
	)

	planCmd.Flags().IntVarP(
		&taskSize, "task-size", "t", 10, "number of fragments per task bundle")
	planCmd.Flags().StringVarP(
		&outDir, "out", "o", ".", "directory to write tasksets to, or - for stdout")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
