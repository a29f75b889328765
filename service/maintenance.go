package service

import (
	"errors"
	"fmt"
	"os"

	"commentsapi/app/config"
	"commentsapi/app/database"
)

// badgerPath returns the on-disk badger directory the maintenance commands
// operate on.
func badgerPath(cfg *config.Config) (string, error) {
	if cfg.Store != config.StoreBadger {
		return "", fmt.Errorf("only supported for the %s store", config.StoreBadger)
	}
	if cfg.BadgerPath == "" {
		return "", errors.New("COMMENTS_BADGER_PATH is empty; the in-memory store has nothing on disk")
	}
	return cfg.BadgerPath, nil
}

// initDb creates a new empty database.
func initDb(args []string) int {
	cfg, log, _, err := setup("init", args)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	path, err := badgerPath(cfg)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Println("Database already exists. Use 'clean' first if you want to reinitialize.")
		return 0
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		fmt.Printf("Failed to create database directory: %v\n", err)
		return 1
	}

	db, err := database.OpenBadgerDB(path, log)
	if err != nil {
		fmt.Printf("Failed to initialize database: %v\n", err)
		return 1
	}
	if err := db.Close(); err != nil {
		fmt.Printf("Failed to close database: %v\n", err)
		return 1
	}

	fmt.Printf("Database initialized successfully at %s\n", path)
	return 0
}

// clean removes the database after confirmation on stdin.
func clean(args []string) int {
	cfg, _, _, err := setup("clean", args)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	path, err := badgerPath(cfg)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("Database is already clean (does not exist)")
		return 0
	}

	fmt.Printf("Are you sure you want to delete %s? This cannot be undone. [y/N] ", path)
	var response string
	fmt.Scanln(&response)
	if response != "y" && response != "Y" {
		fmt.Println("Operation cancelled")
		return 1
	}

	if err := os.RemoveAll(path); err != nil {
		fmt.Printf("Failed to clean database: %v\n", err)
		return 1
	}
	fmt.Println("Database cleaned successfully")
	return 0
}
