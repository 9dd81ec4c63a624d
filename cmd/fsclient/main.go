// Command fsclient lists, uploads and deletes files on an fsserver.
//
//	fsclient -l
//	fsclient --upload-file ./report.txt
//	fsclient -server http://files:8080 -d report.txt
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/koustreak/filedrop/internal/client"
	"github.com/koustreak/filedrop/internal/config"
	"github.com/koustreak/filedrop/internal/logger"
)

const (
	cmdList   = "list"
	cmdUpload = "upload"
	cmdDelete = "delete"
)

// fileClient is the part of client.Client the dispatcher drives.
type fileClient interface {
	List(ctx context.Context) client.Outcome
	Upload(ctx context.Context, localPath string) client.Outcome
	Delete(ctx context.Context, name string) client.Outcome
	UploadSizeLimit(ctx context.Context) string
}

type command struct {
	name string
	arg  string
}

type options struct {
	configPath string
	serverURL  string
	commands   []command
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr))
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	opts, parseErr := parseArgs(args)

	cfg, err := config.LoadClient(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "fsclient: %v\n", err)
		return 1
	}
	if opts.serverURL != "" {
		cfg.API.RootURL = opts.serverURL
	}
	cfg.Logging.Output = stderr

	log := logger.New(&cfg.Logging)
	log.Debugf("will be contacting fsserver at %s", cfg.API.RootURL)

	c := client.New(&cfg.API, log)
	if parseErr != nil {
		log.Errorf("Error parsing command line input (%v). Please consult the usage guide and try again", parseErr)
		printUsage(ctx, stderr, c)
		return 1
	}
	return dispatch(ctx, opts.commands, c, log, stderr)
}

// parseArgs accepts every command under its short and long name. Repeating
// the same command counts once; different commands are all returned so the
// caller can reject the combination.
func parseArgs(args []string) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("fsclient", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		list           bool
		upload, remove string
	)
	fs.StringVar(&opts.configPath, "config", "", "")
	fs.StringVar(&opts.serverURL, "server", "", "")
	fs.BoolVar(&list, "l", false, "")
	fs.BoolVar(&list, "list-files", false, "")
	fs.StringVar(&upload, "u", "", "")
	fs.StringVar(&upload, "upload-file", "", "")
	fs.StringVar(&remove, "d", "", "")
	fs.StringVar(&remove, "delete-file", "", "")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	seen := map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		var cmd command
		switch f.Name {
		case "l", "list-files":
			cmd = command{name: cmdList}
		case "u", "upload-file":
			cmd = command{name: cmdUpload, arg: upload}
		case "d", "delete-file":
			cmd = command{name: cmdDelete, arg: remove}
		default:
			return
		}
		if !seen[cmd.name] {
			seen[cmd.name] = true
			opts.commands = append(opts.commands, cmd)
		}
	})

	for _, cmd := range opts.commands {
		if cmd.name != cmdList && strings.TrimSpace(cmd.arg) == "" {
			return opts, errors.New("missing file name")
		}
	}
	return opts, nil
}

// dispatch runs exactly one command and returns the process exit status.
func dispatch(ctx context.Context, commands []command, c fileClient, log *logger.Logger, stderr io.Writer) int {
	switch {
	case len(commands) == 0:
		log.Error("No options specified. Please consult the usage guide and try again")
		printUsage(ctx, stderr, c)
		return 1
	case len(commands) > 1:
		log.Error("Only one option may be given at a time. Please consult the usage guide and try again")
		printUsage(ctx, stderr, c)
		return 1
	}

	var out client.Outcome
	switch cmd := commands[0]; cmd.name {
	case cmdList:
		log.Debug("received command to list all uploaded files")
		out = c.List(ctx)
	case cmdUpload:
		log.Debug("received command to upload a file")
		if _, err := os.Stat(cmd.arg); err != nil {
			log.Errorf("File %s doesn't exist. Please select a file which exists", cmd.arg)
			printUsage(ctx, stderr, c)
			return 1
		}
		out = c.Upload(ctx, cmd.arg)
	case cmdDelete:
		log.Debug("received command to delete a file")
		out = c.Delete(ctx, cmd.arg)
	}

	if !out.OK() {
		return 1
	}
	return 0
}

func printUsage(ctx context.Context, w io.Writer, c fileClient) {
	sizeHint := "within bounds allowed by the server"
	if limit := c.UploadSizeLimit(ctx); limit != "" {
		sizeHint = "<= " + limit
	}

	fmt.Fprintln(w, "usage: fsclient [-config FILE] [-server URL] OPTION")
	fmt.Fprintln(w, "To the usage command above, this CLI needs exactly one of the options:")
	fmt.Fprintln(w, "  -l, --list-files           List all uploaded files on the server. No extra arguments needed")
	fmt.Fprintf(w, "  -u, --upload-file <path>   Uploads the file provided as argument. The file must exist locally\n"+
		"                             and must have the size %s or else an error will be thrown\n", sizeHint)
	fmt.Fprintln(w, "  -d, --delete-file <name>   Deletes from the server the file provided as argument. The file must\n"+
		"                             exist on the server or else an error will be thrown")
	fmt.Fprintln(w, "Provide an option above in either the short '-' or long '--' version")
}
