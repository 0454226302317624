package main

import (
	"bytes"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/comalice/microstepc/internal/cache"
)

// newWatchCommand is an additive subcommand for local iteration, not part of
// the stable `compile` contract: it recompiles on every save and prints
// either the program or the error list, never exiting.
func newWatchCommand() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "watch INPUT",
		Short: "Recompile INPUT on every save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]
			logger := newLogger(debug)
			opts := compileOptions{debug: debug, encoding: "json"}
			compileCache := cache.New()

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}
			defer watcher.Close()
			if err := watcher.Add(inputPath); err != nil {
				return fmt.Errorf("watch %s: %w", inputPath, err)
			}

			recompile := func() {
				result, err := runCompile(logger, inputPath, opts, compileCache)
				if err != nil {
					logger.Error("compile failed", "error", err)
					return
				}
				if len(result.errs) > 0 {
					for _, e := range result.errs {
						logger.Error("conversion error", "message", e.Message, "source", e.Source)
					}
					return
				}
				var buf bytes.Buffer
				if err := encodeProgram(&buf, opts.encoding, result.program); err != nil {
					logger.Error("encode failed", "error", err)
					return
				}
				cmd.OutOrStdout().Write(buf.Bytes())
			}

			recompile()
			for {
				select {
				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
						recompile()
					}
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					logger.Error("watcher error", "error", err)
				case <-cmd.Context().Done():
					return nil
				}
			}
		},
	}

	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "verbose logging and Core Graph debug artifacts")
	return cmd
}
