package service

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"commentsapi/app/database"

	"github.com/dgraph-io/badger/v4"
	"golang.org/x/crypto/sha3"
)

const (
	defaultBackupDir = "data/backups"
	digestSuffix     = ".sha3"
	// maxPendingWrites bounds badger's Load batching.
	maxPendingWrites = 256
)

// backup writes a full badger backup and a SHA3-256 digest next to it.
func backup(args []string) int {
	cfg, log, rest, err := setup("backup", args)
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
		fmt.Println("No database exists to backup")
		return 1
	}

	backupDir := defaultBackupDir
	if len(rest) > 0 {
		backupDir = rest[0]
	}
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		fmt.Printf("Failed to create backup directory: %v\n", err)
		return 1
	}

	db, err := database.OpenBadgerDB(path, log)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer db.Close()

	backupFile := filepath.Join(backupDir, fmt.Sprintf("backup_%d.db", time.Now().Unix()))
	digest, err := writeBackup(db, backupFile)
	if err != nil {
		fmt.Printf("Failed to backup database: %v\n", err)
		return 1
	}

	fmt.Printf("Database backed up successfully to %s (sha3-256 %s)\n", backupFile, digest)
	return 0
}

// backupSource is the part of *badger.DB a backup needs.
type backupSource interface {
	Backup(w io.Writer, since uint64) (uint64, error)
}

// writeBackup streams db into backupFile and writes the digest sidecar. A
// failed backup leaves no file behind.
func writeBackup(db backupSource, backupFile string) (digest string, err error) {
	f, err := os.Create(backupFile)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(backupFile)
			os.Remove(backupFile + digestSuffix)
		}
	}()

	h := sha3.New256()
	w := bufio.NewWriter(io.MultiWriter(f, h))
	if _, err := db.Backup(w, 0); err != nil {
		return "", err
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	if err := f.Sync(); err != nil {
		return "", err
	}

	digest = hex.EncodeToString(h.Sum(nil))
	line := fmt.Sprintf("%s  %s\n", digest, filepath.Base(backupFile))
	if err := os.WriteFile(backupFile+digestSuffix, []byte(line), 0644); err != nil {
		return "", err
	}
	return digest, nil
}

// restore loads a backup into the configured badger path. The target must be
// empty; the digest is checked first when a sidecar file exists.
func restore(args []string) int {
	cfg, log, rest, err := setup("restore", args)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	if len(rest) < 1 {
		fmt.Println("Error: backup file path required for restore")
		return 1
	}
	backupFile := rest[0]

	path, err := badgerPath(cfg)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}

	fi, err := os.Stat(backupFile)
	if os.IsNotExist(err) {
		fmt.Printf("Backup file does not exist: %s\n", backupFile)
		return 1
	}
	if err != nil {
		fmt.Printf("Failed to stat backup file: %v\n", err)
		return 1
	}
	if fi.Size() == 0 {
		fmt.Printf("Backup file is empty: %s\n", backupFile)
		return 1
	}

	if err := verifyDigest(backupFile); err != nil {
		fmt.Printf("Backup verification failed: %v\n", err)
		return 1
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		fmt.Printf("Failed to create database directory: %v\n", err)
		return 1
	}
	db, err := database.OpenBadgerDB(path, log)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer db.Close()

	empty, err := isEmpty(db)
	if err != nil {
		fmt.Printf("Failed to inspect database: %v\n", err)
		return 1
	}
	if !empty {
		fmt.Printf("Database at %s is not empty; restore into a fresh path\n", path)
		return 1
	}

	f, err := os.Open(backupFile)
	if err != nil {
		fmt.Printf("Failed to open backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if err := db.Load(bufio.NewReader(f), maxPendingWrites); err != nil {
		fmt.Printf("Failed to restore database: %v\n", err)
		return 1
	}

	fmt.Println("Database restored successfully")
	return 0
}

var errDigestMismatch = errors.New("sha3-256 digest mismatch")

// verifyDigest compares backupFile against its sidecar digest. A missing
// sidecar is not an error.
func verifyDigest(backupFile string) error {
	raw, err := os.ReadFile(backupFile + digestSuffix)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	fields := strings.Fields(string(raw))
	if len(fields) == 0 {
		return fmt.Errorf("empty digest file %s%s", backupFile, digestSuffix)
	}

	f, err := os.Open(backupFile)
	if err != nil {
		return err
	}
	defer f.Close()

	h := sha3.New256()
	if _, err := io.Copy(h, f); err != nil {
		return err
	}
	if hex.EncodeToString(h.Sum(nil)) != strings.ToLower(fields[0]) {
		return errDigestMismatch
	}
	return nil
}

func isEmpty(db *badger.DB) (bool, error) {
	empty := true
	err := db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		it.Rewind()
		empty = !it.Valid()
		return nil
	})
	return empty, err
}
