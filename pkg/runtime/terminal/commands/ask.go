package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NeurArk/mcp-data-assistant/pkg/services/agent"
)

type AskCmd struct {
	interactive bool
	assistant   *agent.Assistant
	output      io.Writer
}

func NewAskCmd(assistant *agent.Assistant, output io.Writer) *cobra.Command {
	ac := &AskCmd{assistant: assistant, output: output}
	cmd := &cobra.Command{
		Use:   "ask [prompt]",
		Short: "Ask the assistant a question",
		Args:  cobra.MaximumNArgs(1),
		RunE:  ac.run,
	}

	cmd.Flags().BoolVarP(&ac.interactive, "interactive", "i", false,
		"Keep the session open and read prompts from stdin")

	return cmd
}

func (ac *AskCmd) run(cmd *cobra.Command, args []string) error {
	if ac.assistant == nil {
		return fmt.Errorf("assistant is not configured, set OPENAI_API_KEY")
	}

	sessionID := ""
	if len(args) == 1 {
		reply, id, err := ac.assistant.Answer(cmd.Context(), sessionID, args[0])
		if err != nil {
			return err
		}
		sessionID = id
		fmt.Fprintln(ac.output, reply)
	}

	if !ac.interactive {
		if len(args) == 0 {
			return fmt.Errorf("prompt required unless --interactive is set")
		}
		return nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(ac.output, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		prompt := strings.TrimSpace(scanner.Text())
		if prompt == "" {
			continue
		}
		if prompt == "exit" || prompt == "quit" {
			return nil
		}

		reply, id, err := ac.assistant.Answer(cmd.Context(), sessionID, prompt)
		if err != nil {
			fmt.Fprintf(ac.output, "error: %v\n", err)
			continue
		}
		sessionID = id
		fmt.Fprintln(ac.output, reply)
	}
}
