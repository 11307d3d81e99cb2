package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/michaelmcallister/gifing/internal/cliconfig"
	"github.com/michaelmcallister/gifing/pkg/sequence"
)

const watchDebounce = 250 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch [images...]",
	Short: "Rebuild the animation whenever a source image or the config file changes",
	Long: `Build the animation once, then keep rebuilding it whenever one of the
source images, an image in --directory, or the loaded config file changes.
Build errors are logged and watching continues. Stop with Ctrl-C.`,
	RunE: runWatch,
}

var watchFlags *buildFlags

func init() {
	watchFlags = bindBuildFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

// watchSet decides which filesystem events should trigger a rebuild.
type watchSet struct {
	dirs       map[string]bool
	sources    map[string]bool
	sourceDirs map[string]bool
	config     string
	output     string
}

func newWatchSet(cfg cliconfig.Config, configPath string) *watchSet {
	w := &watchSet{
		dirs:       map[string]bool{},
		sources:    map[string]bool{},
		sourceDirs: map[string]bool{},
		output:     absPath(cfg.Output),
	}
	for _, src := range cfg.Sources {
		p := absPath(src)
		w.sources[p] = true
		w.dirs[filepath.Dir(p)] = true
	}
	if cfg.Directory != "" {
		d := absPath(cfg.Directory)
		w.sourceDirs[d] = true
		w.dirs[d] = true
	}
	if configPath != "" {
		w.config = absPath(configPath)
		w.dirs[filepath.Dir(w.config)] = true
	}
	return w
}

// Dirs returns the directories to watch, sorted.
func (w *watchSet) Dirs() []string {
	dirs := make([]string, 0, len(w.dirs))
	for d := range w.dirs {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}

// Relevant reports whether a change to name should trigger a rebuild. The
// output file never does, even when it lives next to the sources.
func (w *watchSet) Relevant(name string) bool {
	p := absPath(name)
	switch {
	case p == w.output:
		return false
	case p == w.config, w.sources[p]:
		return true
	}
	return w.sourceDirs[filepath.Dir(p)] && sequence.IsImageFile(p)
}

func absPath(p string) string {
	if a, err := filepath.Abs(p); err == nil {
		return a
	}
	return filepath.Clean(p)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, loaded, err := watchFlags.resolve(cmd, args)
	if err != nil {
		return err
	}
	if _, err := makeAnimation(cfg); err != nil {
		log.Error().Err(err).Msg("build failed")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	set := newWatchSet(cfg, loaded)
	for _, d := range set.Dirs() {
		if err := watcher.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}
	log.Info().Strs("dirs", set.Dirs()).Msg("watching for changes")

	rebuild := make(chan struct{}, 1)
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("received signal, stopping...")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !set.Relevant(event.Name) {
				continue
			}
			log.Debug().Str("file", event.Name).Stringer("op", event.Op).Msg("change detected")
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case rebuild <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watcher error")

		case <-rebuild:
			next, nextLoaded, err := watchFlags.resolve(cmd, args)
			if err != nil {
				log.Error().Err(err).Msg("reload config")
				continue
			}
			if _, err := makeAnimation(next); err != nil {
				log.Error().Err(err).Msg("build failed")
			}
			nextSet := newWatchSet(next, nextLoaded)
			for _, d := range nextSet.Dirs() {
				if set.dirs[d] {
					continue
				}
				if err := watcher.Add(d); err != nil {
					log.Warn().Err(err).Str("dir", d).Msg("failed to watch directory")
				}
			}
			set = nextSet
		}
	}
}
