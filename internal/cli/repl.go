package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/userregistry/internal/common"
)

// execIface is the command surface the REPL dispatches to.
// App implements it; tests use a recording stub.
type execIface interface {
	Create(ctx context.Context) error
	Get(ctx context.Context, args []string) error
	Find(ctx context.Context, args []string) error
	Verify(ctx context.Context, args []string) error
	Count(ctx context.Context) error
	List(ctx context.Context) error
	Total(ctx context.Context, args []string) error
	Token(ctx context.Context) error
}

const helpText = "Available commands: create, get <id>, find <email>, verify <id>, count, list, total <price>..., token, exit"

// runREPL reads commands from reader until EOF, exit/quit, or ctx is done.
// Command errors are printed and the loop carries on.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprint(w, "registry> ")
		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			fmt.Fprintln(w, helpText)
			continue
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, args); err != nil {
			if errors.Is(err, common.ErrorUnknownCommand) {
				fmt.Fprintln(w, "Unknown command:", cmd)
				continue
			}
			fmt.Fprintln(w, "Error:", err)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "create":
		return a.Create(ctx)
	case "get":
		return a.Get(ctx, args)
	case "find":
		return a.Find(ctx, args)
	case "verify":
		return a.Verify(ctx, args)
	case "count":
		return a.Count(ctx)
	case "l", "list":
		return a.List(ctx)
	case "total":
		return a.Total(ctx, args)
	case "token":
		return a.Token(ctx)
	default:
		return common.ErrorUnknownCommand
	}
}
