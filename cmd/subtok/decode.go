package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func newDecodeCmd() *cobra.Command {
	var corpusPath string

	cmd := &cobra.Command{
		Use:   "decode [id ...]",
		Short: "Train on a corpus and decode token ids back into text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			ids := make([]int, len(args))
			for i, arg := range args {
				id, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid token id %q: %w", arg, err)
				}
				ids[i] = id
			}

			tok, err := trainedTokenizer(cfg, corpusPath)
			if err != nil {
				return err
			}

			text, err := tok.Decode(ids)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(os.Stdout, text)
			return err
		},
	}

	cmd.Flags().StringVar(&corpusPath, "corpus", "", "Training corpus path (overrides config)")

	return cmd
}
