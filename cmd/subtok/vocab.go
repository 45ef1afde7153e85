package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newVocabCmd() *cobra.Command {
	var corpusPath string

	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Train on a corpus and print the resulting vocabulary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			tok, err := trainedTokenizer(cfg, corpusPath)
			if err != nil {
				return err
			}

			v := tok.Vocab()
			for id, token := range v.Tokens() {
				if _, err := fmt.Fprintf(os.Stdout, "%d\t%q\n", id, token); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&corpusPath, "corpus", "", "Training corpus path (overrides config)")

	return cmd
}
