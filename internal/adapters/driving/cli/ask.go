package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askShowPrompt bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the resume",
	Long: `Embeds the question, retrieves the closest chunks from the index and asks
the chat model to answer from them. Words after "ask" are joined into one
question, so quoting is optional.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askShowPrompt, "show-prompt", false, "print the prompt sent to the chat model")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := requireServices(); err != nil {
		return err
	}

	chat, err := services.Chat()
	if err != nil {
		return err
	}

	answer, err := chat.Ask(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askShowPrompt {
		cmd.Println("--- Prompt ---")
		cmd.Println(answer.Prompt)
		cmd.Println("--- Response ---")
	}
	cmd.Println(answer.Response)
	return nil
}
