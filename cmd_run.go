package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/google/subcommands"
)

// runCmd is the secondary "nilan run <file>" entry point, distinct from the
// bare "nilan <file>" contract spec.md §6 requires main() to implement
// directly: this one additionally supports -watch, re-running the file each
// time it changes on disk.
type runCmd struct {
	watch   bool
	dumpAST string
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Execute a Nilan source file" }
func (*runCmd) Usage() string {
	return `run [-watch] <file>:
  Execute Nilan code from a source file, optionally re-running on change.
`
}

func (r *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&r.watch, "watch", false, "re-run the file each time it changes on disk")
	f.StringVar(&r.dumpAST, "dumpAST", "", "write the parsed AST as JSON to the given path")
}

func (r *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "File not provided")
		return subcommands.ExitUsageError
	}
	path := args[0]

	if !r.watch {
		return toExitStatus(runFileWithDump(path, r.dumpAST))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to start watcher:", err)
		return subcommands.ExitFailure
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to watch file:", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stderr, "Watching %s for changes (Ctrl+C to stop)...\n", path)
	runFile(path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return subcommands.ExitSuccess
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				fmt.Fprintf(os.Stderr, "\n--- %s changed, re-running ---\n", path)
				runFile(path)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return subcommands.ExitSuccess
			}
			fmt.Fprintln(os.Stderr, "Watcher error:", err)
		case <-ctx.Done():
			return subcommands.ExitSuccess
		}
	}
}

func toExitStatus(code int) subcommands.ExitStatus {
	if code == exitSuccess {
		return subcommands.ExitSuccess
	}
	return subcommands.ExitStatus(code)
}
