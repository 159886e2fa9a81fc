// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/beevik/gbcpu/host"
	"github.com/beevik/term"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	trace    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gbcpu [script ...]",
		Short: "Game Boy CPU monitor and debugger",
		Long: "Run the commands contained in each script file, then accept" +
			" commands interactively if standard input is a terminal.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := newHost()
			if err != nil {
				return err
			}

			// Run commands contained in command-line files.
			for _, filename := range args {
				file, err := os.Open(filename)
				if err != nil {
					return err
				}
				err = h.RunCommands(file, os.Stdout, false)
				file.Close()
				if errors.Is(err, host.ErrQuit) {
					return nil
				}
				if err != nil {
					return err
				}
			}

			if !term.IsTerminal(int(os.Stdin.Fd())) && len(args) > 0 {
				return nil
			}

			// Break on Ctrl-C.
			handleInterrupt(h)

			// Run commands interactively.
			err = h.RunCommands(os.Stdin, os.Stdout, term.IsTerminal(int(os.Stdin.Fd())))
			if errors.Is(err, host.ErrQuit) {
				return nil
			}
			return err
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warning", "Log level (trace, debug, info, warning, error)")
	rootCmd.PersistentFlags().BoolVar(&trace, "trace", false, "Log every executed instruction at debug level")

	// run command
	var origin uint16
	var maxCycles int

	runCmd := &cobra.Command{
		Use:   "run <binary>",
		Short: "Load a raw binary and run it until the CPU halts",
		Long: "Load a raw binary file at the origin address and execute it" +
			" until the CPU halts, an illegal opcode is fetched or the cycle" +
			" budget is spent. The final register contents are printed.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := newHost()
			if err != nil {
				return err
			}
			if _, err := h.Load(args[0], origin); err != nil {
				return err
			}

			handleInterrupt(h)

			err = h.Run(maxCycles)
			fmt.Println(h.RegisterString())
			return err
		},
	}
	runCmd.Flags().Uint16Var(&origin, "origin", 0x0100, "Address to load the binary at")
	runCmd.Flags().IntVar(&maxCycles, "max-cycles", 0, "Machine cycle budget (0 = no limit)")

	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newHost() (*host.Host, error) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
	})

	h := host.New(log)
	h.SetTrace(trace)
	return h, nil
}

func handleInterrupt(h *host.Host) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		for range c {
			h.Break()
		}
	}()
}
