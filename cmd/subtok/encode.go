package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newEncodeCmd() *cobra.Command {
	var text string
	var corpusPath string

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Train on a corpus and encode text into token ids",
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

			ids, err := tok.Encode(input)
			if err != nil {
				return err
			}

			out := make([]string, len(ids))
			for i, id := range ids {
				out[i] = strconv.Itoa(id)
			}

			_, err = fmt.Fprintln(os.Stdout, strings.Join(out, " "))
			return err
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to encode (if empty, read from stdin)")
	cmd.Flags().StringVar(&corpusPath, "corpus", "", "Training corpus path (overrides config)")

	return cmd
}
