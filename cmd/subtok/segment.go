package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newSegmentCmd() *cobra.Command {
	var text string
	var corpusPath string

	cmd := &cobra.Command{
		Use:   "segment",
		Short: "Train on a corpus and segment text into tokens",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			input, err := readInputText(text, os.Stdin)
			if err != nil {
				return err
			}

			tok, err := trainedTokenizer(cfg, corpusPath)
			if err != nil {
				return err
			}

			tokens, err := tok.Segment(input)
			if err != nil {
				return err
			}

			for _, t := range tokens {
				if _, err := fmt.Fprintf(os.Stdout, "%q\n", t); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to segment (if empty, read from stdin)")
	cmd.Flags().StringVar(&corpusPath, "corpus", "", "Training corpus path (overrides config)")

	return cmd
}
