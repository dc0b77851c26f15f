package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var chatLanguage string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the medical assistant from the terminal",
	Args:  cobra.NoArgs,
	RunE:  runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatLanguage, "language", "", "reply language (default English)")
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	application, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer application.Close()

	svc := application.Services.Chat
	sess, err := svc.CreateSession(ctx, chatLanguage)
	if err != nil {
		return err
	}
	defer func() { _ = svc.DeleteSession(ctx, sess.ID()) }()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Session %s (%s). Empty line or /quit to exit.\n", sess.ID(), sess.Language())

	sc := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || line == "/quit" {
			break
		}
		reply, err := svc.SendMessage(ctx, sess.ID(), line, nil)
		if err != nil {
			return err
		}
		if reply.Degraded {
			fmt.Fprintln(out, "[degraded]", reply.Text)
			continue
		}
		fmt.Fprintln(out, reply.Text)
	}
	return sc.Err()
}
