package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dna-group/puzzled/pkg/state"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Inspect and build state tokens",
		Long: `Token works with the URL-safe state tokens carried in share links. The
decode subcommand unpacks a token into readable JSON; encode does the
reverse, reading a JSON state document from a file or stdin.`,
	}
	cmd.AddCommand(newTokenDecodeCmd())
	cmd.AddCommand(newTokenEncodeCmd())
	return cmd
}

func newTokenDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <token>",
		Short: "Decode a state token into JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := state.Decode(args[0])
			if st == nil {
				printError("token is not decodable")
				return fmt.Errorf("invalid token")
			}

			out, err := json.MarshalIndent(st, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			printInfo("%d edges", len(st.Edges))
			return nil
		},
	}
}

func newTokenEncodeCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a JSON state document into a token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				raw []byte
				err error
			)
			if input == "-" {
				raw, err = io.ReadAll(cmd.InOrStdin())
			} else {
				raw, err = os.ReadFile(input)
			}
			if err != nil {
				return fmt.Errorf("read state document: %w", err)
			}

			var st state.State
			if err := json.Unmarshal(raw, &st); err != nil {
				return fmt.Errorf("parse state document: %w", err)
			}

			tok, err := state.Encode(st)
			if err != nil {
				return fmt.Errorf("encode state: %w", err)
			}
			fmt.Println(tok)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "JSON state file (- for stdin)")
	return cmd
}
