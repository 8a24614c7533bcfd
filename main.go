package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"focusctl/internal/cli"
	"focusctl/internal/commands"
	"focusctl/internal/focuserr"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := &commands.App{
		Ctx:       ctx,
		Env:       os.Environ(),
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		StdoutTTY: cli.IsTerminal(os.Stdout),
		StderrTTY: cli.IsTerminal(os.Stderr),
	}

	err := app.Root().Execute(os.Args[1:])
	stop()
	if err == nil {
		return
	}

	if code, ok := commands.ExitCode(err); ok {
		os.Exit(code)
	}
	fmt.Fprintf(os.Stderr, "%s%s\n", cli.Prefix, focuserr.Describe(err))
	os.Exit(1)
}
