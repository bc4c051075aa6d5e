package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context, status string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, ref string) error
	SetStatus(ctx context.Context, ref, status string) error
	Delete(ctx context.Context, ref string) error
}

const (
	helpLoggedOut = "Available commands: register, login, help, exit"
	helpLoggedIn  = "Available commands: list, pending, completed, add, edit <id|#>, done <id|#>, undo <id|#>, delete <id|#>, logout, help, exit"
)

// runREPL reads one command per line and dispatches it until EOF or
// "exit"/"quit". Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "tk %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpLoggedIn)
			} else {
				fmt.Fprintln(w, helpLoggedOut)
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "l", "list":
			cmdErr = a.List(ctx, "")

		case "pending":
			cmdErr = a.List(ctx, models.StatusPending)

		case "completed":
			cmdErr = a.List(ctx, models.StatusCompleted)

		case "add":
			cmdErr = a.Add(ctx)

		case "edit", "done", "undo", "delete":
			if len(args) != 1 {
				fmt.Fprintf(w, "Usage: %s <id|#>\n", cmd)
				continue
			}
			switch cmd {
			case "edit":
				cmdErr = a.Edit(ctx, args[0])
			case "done":
				cmdErr = a.SetStatus(ctx, args[0], models.StatusCompleted)
			case "undo":
				cmdErr = a.SetStatus(ctx, args[0], models.StatusPending)
			case "delete":
				cmdErr = a.Delete(ctx, args[0])
			}

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(w, "Error:", cmdErr)
		}
	}
}
