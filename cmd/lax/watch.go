package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/scott-cotton/cli"

	"github.com/signadot/lax/schema"
)

const watchDebounce = 100 * time.Millisecond

// watchCheck checks files again each time they are written, until
// interrupted.
func watchCheck(cfg *CheckConfig, cc *cli.Context, sch *schema.Schema, files []string) error {
	watched := make(map[string]string, len(files))
	for _, f := range files {
		if f == "-" {
			return fmt.Errorf("%w: cannot watch standard input", cli.ErrUsage)
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		watched[abs] = f
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()
	// editors often save by renaming, so watch directories rather than
	// the files themselves.
	dirs := map[string]bool{}
	for abs := range watched {
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	theLog.Info("watching", "files", len(files))
	return watchLoop(ctx, w.Events, w.Errors, watched, watchDebounce, func(arg string) {
		d, err := readArg(cc, arg)
		if err != nil {
			theLog.Error("read", "file", arg, "err", err)
			return
		}
		if checkDoc(cfg, sch, cc.Out, arg, d) == 0 {
			fmt.Fprintf(cc.Out, "%s: ok\n", arg)
		}
	})
}

// watchLoop calls run for each watched file written or created, once per
// burst of events no more than debounce apart.  watched maps absolute
// paths to the names passed to run.
func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, watched map[string]string, debounce time.Duration, run func(string)) error {
	var (
		pending = map[string]bool{}
		timer   *time.Timer
		fire    <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			arg, ok := watched[filepath.Clean(ev.Name)]
			if !ok || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			pending[arg] = true
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			args := make([]string, 0, len(pending))
			for arg := range pending {
				args = append(args, arg)
			}
			slices.Sort(args)
			clear(pending)
			for _, arg := range args {
				run(arg)
			}
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			theLog.Error("watch", "err", err)
		}
	}
}
