package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comalice/microstepc/internal/cache"
	"github.com/comalice/microstepc/internal/normalize"
)

func newCompileCommand() *cobra.Command {
	var opts compileOptions

	cmd := &cobra.Command{
		Use:   "compile INPUT",
		Short: "Normalize and synthesize a Statechart Tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(opts.debug)

			var compileCache *cache.Cache
			if opts.cacheDir != "" {
				compileCache = cache.New()
			}

			result, err := runCompile(logger, args[0], opts, compileCache)
			if err != nil {
				return err
			}

			if len(result.errs) > 0 {
				return reportConversionErrors(cmd, result.errs)
			}

			var buf bytes.Buffer
			if err := encodeProgram(&buf, opts.encoding, result.program); err != nil {
				return fmt.Errorf("encode program: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(buf.Bytes())
			return err
		},
	}

	cmd.Flags().BoolVarP(&opts.debug, "debug", "d", false, "verbose logging and Core Graph debug artifacts")
	cmd.Flags().StringVar(&opts.schemaPath, "schema", "", "JSON Schema file to pre-validate the input against")
	cmd.Flags().StringVar(&opts.encoding, "encoding", "json", "output encoding: json or cbor")
	cmd.Flags().StringVar(&opts.cacheDir, "cache", "", "enable the in-memory content-addressed compile cache (any non-empty value enables it; the directory itself is not read)")

	return cmd
}

// reportConversionErrors writes one JSON object per line to stderr and
// returns a plain error so the command exits non-zero without cobra also
// printing the (already-reported) error text a second time.
func reportConversionErrors(cmd *cobra.Command, errs []normalize.ConversionError) error {
	enc := json.NewEncoder(cmd.ErrOrStderr())
	for _, e := range errs {
		if err := enc.Encode(e); err != nil {
			return err
		}
	}
	return fmt.Errorf("normalization failed with %d error(s)", len(errs))
}
