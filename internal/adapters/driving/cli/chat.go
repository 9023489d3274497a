package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/journalkit/journalkit/internal/core/domain"
	"github.com/journalkit/journalkit/internal/core/ports/driven"
)

var chatShowCitations bool

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Chat with your journal",
	Long: `Ask questions about your own journal. The assistant retrieves
relevant entries as context and answers grounded in them.

With a message argument, sends a single question and prints the reply.
Without arguments, starts an interactive conversation; exit with
Ctrl+D or by typing /quit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&chatShowCitations, "citations", true, "show journal citations under replies")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if llmService == nil {
		return errChatUnavailable
	}

	if len(args) == 1 {
		return chatOnce(cmd, args[0])
	}
	return chatLoop(cmd)
}

func chatOnce(cmd *cobra.Command, message string) error {
	reply, err := chatService.Reply(cmd.Context(), []driven.ChatMessage{
		{Role: "user", Content: message},
	})
	if err != nil {
		return chatError(err)
	}

	printReply(cmd, reply.Content, reply.Citations)
	return nil
}

func chatLoop(cmd *cobra.Command) error {
	cmd.Printf("Chatting with your journal (%s). Ctrl+D or /quit to exit.\n\n", llmService.ModelName())

	reader := bufio.NewReader(cmd.InOrStdin())
	var history []driven.ChatMessage

	for {
		cmd.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				cmd.Println()
				return nil
			}
			return err
		}

		message := strings.TrimSpace(line)
		switch message {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		}

		history = append(history, driven.ChatMessage{Role: "user", Content: message})

		reply, err := chatService.Reply(cmd.Context(), history)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", chatError(err))
			// Drop the failed turn so a transient error does not poison
			// the conversation history
			history = history[:len(history)-1]
			continue
		}

		history = append(history, driven.ChatMessage{Role: "assistant", Content: reply.Content})
		printReply(cmd, reply.Content, reply.Citations)
	}
}

func printReply(cmd *cobra.Command, content string, citations []string) {
	cmd.Println(content)
	if chatShowCitations && len(citations) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, c := range citations {
			cmd.Printf("  - %s\n", c)
		}
	}
	cmd.Println()
}

func chatError(err error) error {
	if errors.Is(err, domain.ErrLLMUnavailable) {
		return errChatUnavailable
	}
	return err
}
