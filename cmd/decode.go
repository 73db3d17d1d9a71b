package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/simon-fu/cin-rms/internal/hexdump"
	"github.com/simon-fu/cin-rms/internal/vnwire"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Decode a hex dump into a pretty-printed packet",
	Long: `Decode reads hex dump text from a file or stdin, assembles the raw bytes
and prints the parsed packet with its typed message body.

Reading from stdin, enter the dump text and press ctrl+D when completed.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			text []byte
			err  error
		)
		if len(args) == 1 {
			text, err = os.ReadFile(args[0])
			if err != nil {
				exitWithError("failed to read input file", err)
			}
		} else {
			fmt.Fprintln(os.Stderr, "enter text and press ctrl+D when completed")
			text, err = io.ReadAll(os.Stdin)
			if err != nil {
				exitWithError("failed to read stdin", err)
			}
		}

		data, err := hexdump.DecodeText(string(text))
		if err != nil {
			exitWithError("failed to parse hex dump", err)
		}
		fmt.Printf("parsed length [%d]\n", len(data))

		pkt, err := vnwire.ParsePacket(data)
		if err != nil {
			exitWithError("invalid packet", err)
		}
		fmt.Println(vnwire.RenderPacket(pkt))
	},
}
