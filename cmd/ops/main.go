package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/arurana24/The-Third-Angle/internal/ops"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "backup":
		if err := cmdBackup(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "backup failed:", err)
			os.Exit(1)
		}
	case "restore":
		if err := cmdRestore(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "restore failed:", err)
			os.Exit(1)
		}
	case "drill":
		if err := cmdDrill(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "drill failed:", err)
			os.Exit(1)
		}
	default:
		printUsage()
		os.Exit(2)
	}
}

func cmdBackup(args []string) error {
	fs := pflag.NewFlagSet("backup", pflag.ContinueOnError)
	dataDir := fs.String("data-dir", "data", "path to data directory")
	out := fs.String("out", "", "output archive path (.tar.gz)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		*out = filepath.Join("backups",
			fmt.Sprintf("thirdangle-%s.tar.gz", time.Now().UTC().Format("20060102-150405")))
	}

	man, err := ops.Backup(*dataDir, *out)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d store files)\n", *out, len(man.Checksums))
	return nil
}

func cmdRestore(args []string) error {
	fs := pflag.NewFlagSet("restore", pflag.ContinueOnError)
	archive := fs.String("archive", "", "backup archive path")
	dataDir := fs.String("data-dir", "data", "target data directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *archive == "" {
		return fmt.Errorf("--archive is required")
	}

	man, err := ops.Restore(*archive, *dataDir)
	if err != nil {
		return err
	}
	fmt.Printf("restored %d store files from backup created %s\n",
		len(man.Checksums), man.CreatedAt.Format(time.RFC3339))
	return nil
}

func cmdDrill(args []string) error {
	fs := pflag.NewFlagSet("drill", pflag.ContinueOnError)
	archive := fs.String("archive", "", "backup archive path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *archive == "" {
		return fmt.Errorf("--archive is required")
	}

	man, err := ops.Drill(*archive)
	if err != nil {
		return err
	}
	fmt.Printf("archive ok: %d store files, created %s\n",
		len(man.Checksums), man.CreatedAt.Format(time.RFC3339))
	return nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage: ops <backup|restore|drill> [flags]

  backup  --data-dir data --out backups/thirdangle-<ts>.tar.gz
  restore --archive <path> --data-dir data
  drill   --archive <path>`)
}
