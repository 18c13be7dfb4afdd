package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// watch: rebuild on change until interrupted
var WatchCmd = &cobra.Command{
	Use:   "watch [file.sprig]",
	Short: "Rebuild a source file whenever it changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		path := filepath.Clean(args[0])
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer watcher.Close()

		// Watch directories: editors often replace files instead of writing
		// them in place.
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
		}
		cfgPath := ""
		if s.cfg.Path != "" {
			cfgPath = filepath.Clean(s.cfg.Path)
			if filepath.Dir(cfgPath) != filepath.Dir(path) {
				if err := watcher.Add(filepath.Dir(cfgPath)); err != nil {
					return fmt.Errorf("watch %s: %w", filepath.Dir(cfgPath), err)
				}
			}
		}

		rebuild := func() {
			outFile, err := s.buildFile(path)
			switch {
			case errors.Is(err, ErrReported):
			case err != nil:
				s.logger.Error("build failed", "file", path, "err", err)
			case outFile != "":
				fmt.Fprintf(s.stdout, "↪ wrote %s\n", outFile)
			}
		}

		rebuild()
		s.logger.Info("watching", "file", path)

		ctx := cmd.Context()
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				switch filepath.Clean(ev.Name) {
				case path:
					s.logger.Debug("change detected", "op", ev.Op.String())
					rebuild()
				case cfgPath:
					if err := s.reloadConfig(cmd); err != nil {
						s.logger.Error("config reload failed, keeping previous settings", "err", err)
						continue
					}
					rebuild()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				s.logger.Error("watch error", "err", err)
			}
		}
	},
}
