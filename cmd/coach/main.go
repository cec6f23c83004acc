package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pennyplan/coach-go/internal/api"
	"github.com/pennyplan/coach-go/internal/archive"
	"github.com/pennyplan/coach-go/internal/chat"
	"github.com/pennyplan/coach-go/internal/config"
	"github.com/pennyplan/coach-go/internal/identity"
	"github.com/pennyplan/coach-go/internal/logger"
	"github.com/pennyplan/coach-go/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.L.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.Log.Level)

	user := identity.FromConfig(cfg.Identity)
	client := api.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)

	var arc *archive.Archive
	if cfg.Archive.Path != "" {
		arc = archive.New(cfg.Archive.Path)
		defer arc.Close()
	}

	store := chat.NewStore()
	pane := session.NewPane()
	manager := session.NewManager(store, client, pane, arc, user.UserID())
	loader := session.NewLoader(store, client, pane)

	fmt.Printf("Welcome to the Financial Coach, %s! Type 'exit' to quit, '/help' for commands.\n", user.DisplayName())

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "exit" || line == "quit":
			fmt.Println("Goodbye!")
			return
		case line == "/help":
			printHelp()
		case line == "/new":
			loader.NewChat()
			fmt.Println("Started a new chat.")
		case line == "/history":
			printHistory(ctx, loader, user.UserID())
		case strings.HasPrefix(line, "/open "):
			openConversation(ctx, loader, store, user.UserID(), strings.TrimPrefix(line, "/open "))
		case line == "":
			// ignore blank lines, same as the send guard would
		default:
			send(ctx, manager, store, line)
		}
	}
}

func printHelp() {
	fmt.Println(`Commands:
  /new        start a fresh conversation
  /history    list your prior conversations
  /open <n>   open the n-th conversation from the last /history listing
  exit        quit`)
}

func send(ctx context.Context, manager *session.Manager, store *chat.Store, text string) {
	before := len(store.Messages())
	manager.SendMessage(ctx, text)

	// Everything past the echoed user message is coach output (the reply, or
	// an error bubble).
	msgs := store.Messages()
	for _, msg := range msgs[before:] {
		if msg.Author == chat.AuthorAssistant {
			fmt.Printf("Coach: %s\n", msg.Content)
		}
	}
}

func printHistory(ctx context.Context, loader *session.Loader, userID string) {
	loader.LoadConversations(ctx, userID)
	convos := loader.Conversations()
	if len(convos) == 0 {
		fmt.Println("No prior conversations.")
		return
	}
	for i, c := range convos {
		started := time.UnixMilli(c.StartedAt).Format("2006-01-02 15:04")
		fmt.Printf("%3d. %s  (%s)\n", i+1, c.Title, started)
	}
}

func openConversation(ctx context.Context, loader *session.Loader, store *chat.Store, userID, arg string) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	convos := loader.Conversations()
	if err != nil || n < 1 || n > len(convos) {
		fmt.Println("Usage: /open <n> (run /history first)")
		return
	}
	convo := convos[n-1]
	loader.SelectConversation(ctx, convo.ConvoID, userID)
	if store.ConversationID() != convo.ConvoID {
		fmt.Println("Could not load that conversation.")
		return
	}
	fmt.Printf("Opened %q.\n", convo.Title)
	for _, msg := range store.Messages() {
		speaker := "You"
		if msg.Author == chat.AuthorAssistant {
			speaker = "Coach"
		}
		fmt.Printf("%s: %s\n", speaker, msg.Content)
	}
}
