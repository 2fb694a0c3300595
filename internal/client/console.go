package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const consoleHelp = `Type a task and press Enter to add it.
Start it with // to add a task that begins with /.
  /t N   toggle task N
  /d N   delete task N
  /r     reload the list
  /h     show this help
  /q     quit`

// Console drives a Store from line-based input and re-renders the view on
// every state change.
type Console struct {
	store *Store
}

func NewConsole(store *Store) *Console {
	return &Console{store: store}
}

// Run loads the list, then processes input until EOF, /q or ctx is done.
func (c *Console) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	var (
		last     State
		rendered bool
	)
	unsubscribe := c.store.Subscribe(func(s State) {
		// the draft is not part of the rendered view
		if rendered && sameView(last, s) {
			return
		}
		last, rendered = s, true
		Render(out, s)
	})
	defer unsubscribe()

	fmt.Fprintln(out, consoleHelp)
	c.store.Load(ctx)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if quit := c.handle(ctx, scanner.Text(), out); quit {
			return nil
		}
	}
	return scanner.Err()
}

func (c *Console) handle(ctx context.Context, line string, out io.Writer) (quit bool) {
	trimmed := strings.TrimLeft(line, " \t")
	switch {
	case strings.HasPrefix(trimmed, "//"):
		c.submit(ctx, trimmed[1:])
		return false
	case !strings.HasPrefix(trimmed, "/"):
		// Enter submits whatever was typed; blank lines are a no-op in Submit
		c.submit(ctx, line)
		return false
	}

	fields := strings.Fields(trimmed)
	switch fields[0] {
	case "/q", "/quit":
		return true
	case "/h", "/help":
		fmt.Fprintln(out, consoleHelp)
	case "/r", "/reload":
		c.store.Load(ctx)
	case "/t", "/toggle", "/d", "/delete":
		id, err := c.taskID(fields)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			return false
		}
		if fields[0] == "/t" || fields[0] == "/toggle" {
			c.store.Toggle(ctx, id)
		} else {
			c.store.Remove(ctx, id)
		}
	default:
		fmt.Fprintf(out, "error: unknown command: %s\n", fields[0])
	}
	return false
}

func (c *Console) submit(ctx context.Context, text string) {
	c.store.SetDraft(text)
	c.store.Submit(ctx)
}

func sameView(a, b State) bool {
	if a.Loading != b.Loading || a.Err != b.Err || len(a.Tasks) != len(b.Tasks) {
		return false
	}
	for i := range a.Tasks {
		if a.Tasks[i] != b.Tasks[i] {
			return false
		}
	}
	return true
}

// taskID resolves the 1-based number in fields[1] against the current list.
func (c *Console) taskID(fields []string) (string, error) {
	if len(fields) != 2 {
		return "", fmt.Errorf("%s needs a task number", fields[0])
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return "", fmt.Errorf("invalid task number: %s", fields[1])
	}

	tasks := c.store.State().Tasks
	if n < 1 || n > len(tasks) {
		return "", fmt.Errorf("no task %d", n)
	}
	return tasks[n-1].ID, nil
}
