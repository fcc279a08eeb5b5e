package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/peterh/liner"

	"github.com/funvibe/symtab/internal/config"
	"github.com/funvibe/symtab/internal/decls"
	"github.com/funvibe/symtab/internal/prettyprinter"
	"github.com/funvibe/symtab/internal/rpc"
	"github.com/funvibe/symtab/internal/session"
	"github.com/funvibe/symtab/internal/store"
	"github.com/funvibe/symtab/internal/symbols"
	"github.com/funvibe/symtab/internal/utils"
)

const usage = `usage: symtab <command> [args]

commands:
  check PATH...        load declaration files (or directories of them) and print their entries
  save FILE [LABEL]    store a declaration file as a new snapshot
  snapshots            list stored snapshots
  show ID              print a stored snapshot
  export ID [OUT]      write a stored snapshot as a declaration file
  delete ID            remove a stored snapshot
  encode FILE OUT      write a declaration file in protobuf form
  decode IN            print a protobuf-encoded entry list
  serve PATH...        serve the declarations over gRPC
  lookup NAME          ask a running server for NAME
  remote               ask a running server for every entry
  repl                 interactive session`

var project *config.Project

func fail(err error) {
	fmt.Fprintf(os.Stderr, "- %s\n", err)
	os.Exit(1)
}

func requireArgs(args []string, n int, form string) {
	if len(args) < n {
		fmt.Fprintf(os.Stderr, "usage: symtab %s\n", form)
		os.Exit(2)
	}
}

func printEntries(entries symbols.Entries) {
	color := prettyprinter.ColorEnabled(project.Color, os.Stdout)
	fmt.Print(prettyprinter.NewEntryPrinter(color).Print(entries))
}

func loadAll(args []string) symbols.Entries {
	paths, err := utils.CollectDeclFiles(args)
	if err != nil {
		fail(err)
	}

	var all symbols.Entries
	failed := false
	for _, path := range paths {
		entries, err := decls.Load(path)
		if err != nil {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(os.Stderr, "- %s\n", line)
			}
			failed = true
			continue
		}
		all = append(all, entries...)
	}
	if failed {
		os.Exit(1)
	}
	return all
}

func openStore(ctx context.Context) *store.Store {
	s, err := store.Open(ctx, project.StorePath())
	if err != nil {
		fail(err)
	}
	return s
}

func parseID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		fail(fmt.Errorf("invalid snapshot id %q: %w", s, err))
	}
	return id
}

func main() {
	config.InitTestMode()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	project, err = config.LoadProject(config.ProjectPath())
	if err != nil {
		fail(err)
	}

	ctx := context.Background()
	cmd, args := os.Args[1], os.Args[2:]

	switch cmd {
	case "check":
		requireArgs(args, 1, "check PATH...")
		printEntries(loadAll(args))

	case "save":
		requireArgs(args, 1, "save FILE [LABEL]")
		entries := loadAll(args[:1])
		label := args[0]
		if len(args) > 1 {
			label = args[1]
		}
		s := openStore(ctx)
		defer s.Close()
		id, err := s.Save(ctx, label, entries)
		if err != nil {
			fail(err)
		}
		fmt.Println(id)

	case "snapshots":
		s := openStore(ctx)
		defer s.Close()
		snaps, err := s.Snapshots(ctx)
		if err != nil {
			fail(err)
		}
		for _, snap := range snaps {
			fmt.Printf("%s  %s  %d entries  %s\n", snap.ID, snap.CreatedAt.Format(time.RFC3339), snap.Count, snap.Label)
		}

	case "show":
		requireArgs(args, 1, "show ID")
		s := openStore(ctx)
		defer s.Close()
		entries, err := s.Load(ctx, parseID(args[0]))
		if err != nil {
			fail(err)
		}
		printEntries(entries)

	case "export":
		requireArgs(args, 1, "export ID [OUT]")
		s := openStore(ctx)
		defer s.Close()
		entries, err := s.Load(ctx, parseID(args[0]))
		if err != nil {
			fail(err)
		}
		if len(args) > 1 {
			if err := decls.Write(args[1], entries); err != nil {
				fail(err)
			}
			return
		}
		out, err := decls.Encode(entries)
		if err != nil {
			fail(err)
		}
		os.Stdout.Write(out)

	case "delete":
		requireArgs(args, 1, "delete ID")
		s := openStore(ctx)
		defer s.Close()
		if err := s.Delete(ctx, parseID(args[0])); err != nil {
			fail(err)
		}

	case "encode":
		requireArgs(args, 2, "encode FILE OUT")
		data, err := rpc.Marshal(loadAll(args[:1]))
		if err != nil {
			fail(err)
		}
		if err := os.WriteFile(args[1], data, 0644); err != nil {
			fail(err)
		}

	case "decode":
		requireArgs(args, 1, "decode IN")
		data, err := os.ReadFile(args[0])
		if err != nil {
			fail(err)
		}
		entries, err := rpc.Unmarshal(data)
		if err != nil {
			fail(err)
		}
		printEntries(entries)

	case "serve":
		requireArgs(args, 1, "serve PATH...")
		serve(loadAll(args))

	case "lookup":
		requireArgs(args, 1, "lookup NAME")
		client := dial()
		defer client.Close()
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		e, err := client.Lookup(ctx, args[0])
		if err != nil {
			fail(err)
		}
		printEntries(symbols.Entries{e})

	case "remote":
		client := dial()
		defer client.Close()
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		entries, err := client.List(ctx)
		if err != nil {
			fail(err)
		}
		printEntries(entries)

	case "repl":
		os.Exit(repl())

	case "help", "-h", "--help":
		fmt.Println(usage)

	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s\n", cmd, usage)
		os.Exit(2)
	}
}

func dial() *rpc.Client {
	client, err := rpc.Dial(project.Listen)
	if err != nil {
		fail(err)
	}
	return client
}

func serve(entries symbols.Entries) {
	srv, err := rpc.NewServer(entries)
	if err != nil {
		fail(err)
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigc
		srv.GracefulStop()
	}()

	fmt.Fprintf(os.Stderr, "serving %d entries on %s\n", len(entries), project.Listen)
	if err := srv.ListenAndServe(project.Listen); err != nil {
		fail(err)
	}
}

const (
	promptMain = "symtab> "
	banner     = "symtab - type help for commands, :quit to exit"
)

func repl() int {
	fmt.Println(banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := project.HistoryPath()
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	color := prettyprinter.ColorEnabled(project.Color, os.Stdout)
	sess := session.New(color)

	for {
		line, err := ln.Prompt(promptMain)
		if err != nil {
			fmt.Println()
			return 0
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		if line == ":quit" || line == ":q" {
			return 0
		}
		out, err := sess.Exec(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "- %s\n", err)
			continue
		}
		if out != "" {
			fmt.Println(out)
		}
	}
}
