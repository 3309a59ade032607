package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	pflag "github.com/spf13/pflag"

	"ac4y/codec"
	"ac4y/config"
	"ac4y/domain/list"
	"ac4y/errors"
	"ac4y/logging"
	"ac4y/store"
)

// Version is injected at build time via ldflags.
var Version = "dev"

const usage = `ac4ylist - converts, stores and loads ac4y list documents`

type options struct {
	kind       string
	from       string
	to         string
	input      string
	output     string
	configPath string
	load       string
	save       string
	list       bool
	help       bool
	version    bool
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run 执行命令并返回退出码
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options

	fs := pflag.NewFlagSet("ac4ylist", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "%s\n\nUsage:\n", usage)
		fs.PrintDefaults()
	}

	fs.StringVarP(&opts.kind, "kind", "k", "", "Document kind: identification | object (detected from stored record with --load)")
	fs.StringVarP(&opts.from, "from", "f", "", "Input format: xml | json | yaml (detected when empty)")
	fs.StringVarP(&opts.to, "to", "t", "", "Output format (defaults to codec.format from config)")
	fs.StringVarP(&opts.input, "input", "i", "", "Input file (defaults to stdin)")
	fs.StringVarP(&opts.output, "output", "o", "", "Output file (defaults to stdout)")
	fs.StringVarP(&opts.configPath, "config", "c", "", "Config file (defaults to $AC4Y_CONFIG or ./ac4y.yaml)")
	fs.StringVar(&opts.load, "load", "", "Load the document stored under KEY instead of reading input (needs a sqlite or redis store)")
	fs.StringVar(&opts.save, "save", "", "Store the document under KEY, '-' generates a key (needs a sqlite or redis store)")
	fs.BoolVar(&opts.list, "list", false, "List stored document keys (needs a sqlite or redis store)")
	fs.BoolVarP(&opts.help, "help", "h", false, "Show help")
	fs.BoolVar(&opts.version, "version", false, "Show version")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if opts.help {
		fs.Usage()
		return 0
	}
	if opts.version {
		fmt.Fprintf(stdout, "ac4ylist version %s\n", Version)
		return 0
	}

	if err := execute(ctx, opts, stdin, stdout, stderr); err != nil {
		normalized := errors.Normalize(err)
		if appErr, ok := normalized.(errors.IError); ok && appErr.Cause() != nil {
			fmt.Fprintf(stderr, "Error: [%s] %s: %v\n", appErr.Code(), appErr.Message(), appErr.Cause())
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func execute(ctx context.Context, opts options, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger := logging.NewWriterLogger(stderr, cfg.Log.Prefix, level)
	logging.SetLogger(logger)

	needStore := opts.list || opts.load != "" || opts.save != ""
	var docs *store.DocumentStore
	if needStore {
		if cfg.Store.Driver == config.DriverMemory {
			logger.Warn(ctx, "memory store is not persisted; documents are lost when the command exits",
				logging.String("driver", cfg.Store.Driver),
				logging.String("hint", "set store.driver to sqlite or redis in the config file"),
			)
		}
		storeCodec, err := codec.New(cfg.Codec.Format, cfg.Codec.Indent)
		if err != nil {
			return err
		}
		backend, err := store.Open(ctx, cfg.Store, logger)
		if err != nil {
			return err
		}
		docs = store.New(backend, storeCodec, logger)
		defer docs.Close()
	}

	if opts.list {
		keys, err := docs.Keys(ctx)
		if err != nil {
			return err
		}
		for _, k := range keys {
			fmt.Fprintln(stdout, k)
		}
		return nil
	}

	doc, err := readDocument(ctx, opts, docs, stdin)
	if err != nil {
		return err
	}

	if opts.save != "" {
		key := opts.save
		if key == "-" {
			key = store.NewKey()
			fmt.Fprintf(stderr, "saved as %s\n", key)
		}
		if err := docs.Save(ctx, key, doc); err != nil {
			return err
		}
	}

	format := opts.to
	if format == "" {
		format = cfg.Codec.Format
	}
	out, err := codec.New(format, true)
	if err != nil {
		return err
	}
	data, err := out.Encode(doc)
	if err != nil {
		return err
	}
	return writeOutput(opts.output, stdout, data)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		cfg, _, err := config.LoadFromPath(path)
		return cfg, err
	}
	cfg, _, err := config.Load()
	return cfg, err
}

// readDocument 从存储或输入读取文档
func readDocument(ctx context.Context, opts options, docs *store.DocumentStore, stdin io.Reader) (list.IDocument, error) {
	if opts.load != "" {
		if opts.kind == "" {
			return docs.LoadNew(ctx, opts.load)
		}
		doc, err := list.New(opts.kind)
		if err != nil {
			return nil, err
		}
		return doc, docs.Load(ctx, opts.load, doc)
	}

	if opts.kind == "" {
		return nil, fmt.Errorf("%w: --kind is required when reading input (one of %s)",
			list.ErrUnknownKind, strings.Join(list.Kinds(), ", "))
	}
	doc, err := list.New(opts.kind)
	if err != nil {
		return nil, err
	}

	data, err := readInput(opts.input, stdin)
	if err != nil {
		return nil, err
	}

	format := opts.from
	if format == "" {
		format = codec.Detect(data)
	}
	in, err := codec.ForFormat(format)
	if err != nil {
		return nil, err
	}
	if err := in.Decode(data, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
