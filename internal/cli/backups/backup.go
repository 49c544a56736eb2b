package backups

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/dharmalog/dharmalog/internal/backup"
	"github.com/dharmalog/dharmalog/internal/cli"
	"github.com/dharmalog/dharmalog/internal/constants"
	"github.com/dharmalog/dharmalog/internal/keyring"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
	List    BackupListCmd    `cmd:"" help:"List available backups."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	Export  BackupExportCmd  `cmd:"" help:"Export a portable JSON backup."`
	Import  BackupImportCmd  `cmd:"" help:"Import a portable JSON backup."`
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		fmt.Printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	fmt.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		timestamp := b.Timestamp.Format("2006-01-02 15:04:05")
		fmt.Printf("  %s  %s  (%.1f KB)\n", timestamp, filepath.Base(b.Path), sizeKB)
	}
	fmt.Printf("\nBackup directory: %s\n", mgr.GetBackupDir())

	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())

	backupPath := c.BackupFile
	if !filepath.IsAbs(backupPath) {
		if _, err := os.Stat(backupPath); err == nil {
			abs, err := filepath.Abs(backupPath)
			if err != nil {
				return fmt.Errorf("failed to resolve backup path: %w", err)
			}
			backupPath = abs
		} else {
			possible := filepath.Join(mgr.GetBackupDir(), c.BackupFile)
			if _, err := os.Stat(possible); err != nil {
				return fmt.Errorf("backup file not found: tried current directory and %s", mgr.GetBackupDir())
			}
			backupPath = possible
		}
	} else if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file not found: %s", backupPath)
	}

	if !c.Yes && !ctx.Yes {
		fmt.Println("This replaces your current store with the backup.")
		fmt.Println("A backup of the current store is created first.")
		fmt.Printf("\nRestore from: %s\n", backupPath)

		confirmed := false
		if err := huh.NewConfirm().Title("Continue?").Value(&confirmed).Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Restore cancelled.")
			return nil
		}
	}

	if err := ctx.Store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close store: %v\n", err)
	}

	if err := mgr.RestoreBackup(backupPath); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Println("✓ Store restored successfully!")
	return nil
}

type BackupExportCmd struct {
	Output  string `help:"Destination file. Defaults to a timestamped file in the exports directory." short:"o"`
	Encrypt bool   `help:"Seal the export with the passphrase from the OS keyring."`
}

func (c *BackupExportCmd) Run(ctx *cli.Context) error {
	passphrase := ""
	if c.Encrypt {
		var err error
		passphrase, err = keyring.GetBackupPassphrase()
		if err == keyring.ErrNotFound {
			// First encrypted export, ask for a passphrase and remember it.
			if err := huh.NewInput().
				Title("Backup passphrase").
				EchoMode(huh.EchoModePassword).
				Value(&passphrase).
				Run(); err != nil {
				return err
			}
			if err := keyring.SetBackupPassphrase(passphrase); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	path := c.Output
	if path == "" {
		dir := filepath.Join(filepath.Dir(ctx.Store.GetConfigPath()), constants.ExportDirName)
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
		ext := ".json"
		if c.Encrypt {
			ext = ".sealed"
		}
		path = filepath.Join(dir, fmt.Sprintf("%sexport-%s%s", constants.BackupFilePrefix, time.Now().Format("20060102-150405"), ext))
	}

	if err := backup.WritePortable(ctx.Store, path, passphrase); err != nil {
		return err
	}

	fmt.Printf("✓ Exported to %s\n", path)
	return nil
}

type BackupImportCmd struct {
	BackupFile string `arg:"" help:"Portable backup file to import."`
	Yes        bool   `help:"Skip the confirmation prompt."`
}

func (c *BackupImportCmd) Run(ctx *cli.Context) error {
	if !c.Yes && !ctx.Yes {
		fmt.Println("This replaces all current data with the backup's contents.")

		confirmed := false
		if err := huh.NewConfirm().Title("Continue?").Value(&confirmed).Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Import cancelled.")
			return nil
		}
	}

	// A missing keyring entry is fine for unencrypted files; sealed files
	// without a stored passphrase fail validation with a clear message.
	passphrase, err := keyring.GetBackupPassphrase()
	if err != nil {
		passphrase = ""
	}

	ctx.PerformAutomaticBackup()

	data, err := backup.ImportPortable(ctx.Store, c.BackupFile, passphrase)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Imported %d practices, %d records, %d reminders, %d teachings.\n",
		len(data.Practices), len(data.Records), len(data.Reminders), len(data.Teachings))
	return nil
}
