package service

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"commentsapi/app/middleware"
)

// HandleCommand runs a CLI subcommand and returns its exit code.
func HandleCommand(args []string) int {
	if len(args) < 1 {
		printHelp()
		return 1
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "serve":
		return serve(rest)
	case "init":
		return initDb(rest)
	case "clean":
		return clean(rest)
	case "backup":
		return backup(rest)
	case "restore":
		return restore(rest)
	case "token":
		return token(rest)
	case "version":
		fmt.Printf("commentsapi %s\n", Version)
		return 0
	case "help", "-h", "--help":
		printHelp()
		return 0
	default:
		fmt.Printf("Unknown command: %s\n\n", cmd)
		printHelp()
		return 1
	}
}

func printHelp() {
	helpText := `Usage: commentsapi <command> [--env-file <file>] [args]

Commands:
  serve                 Run the comments API until interrupted
  init                  Create a new empty badger database
  clean                 Delete the badger database (asks for confirmation)
  backup [dir]          Back up the badger database (default dir: data/backups)
  restore <file>        Restore a backup into an empty badger database
  token <user-id>       Print a signed token for user-id
  version               Print the version
  help                  Display this help message

Configuration is read from the environment (COMMENTS_*, LOG_*), after
loading the optional --env-file (default .env).
`
	fmt.Println(helpText)
}

func serve(args []string) int {
	cfg, log, _, err := setup("serve", args)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		log.WithError(err).WithField("addr", cfg.Addr).Error("listen failed")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Serve(ctx, ln, cfg, log); err != nil {
		log.WithError(err).Error("server stopped with error")
		return 1
	}
	return 0
}

func token(args []string) int {
	cfg, _, rest, err := setup("token", args)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	if len(rest) < 1 {
		fmt.Println("Error: user id required for token")
		return 1
	}

	signed, err := middleware.IssueToken([]byte(cfg.JWTSecret), rest[0], cfg.TokenTTL)
	if err != nil {
		fmt.Printf("Failed to issue token: %v\n", err)
		return 1
	}
	fmt.Println(signed)
	return 0
}
