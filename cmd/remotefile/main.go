// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/remotefile/lib/bridge"
	"github.com/bureau-foundation/remotefile/lib/config"
	"github.com/bureau-foundation/remotefile/lib/process"
	"github.com/bureau-foundation/remotefile/lib/remotefile"
	"github.com/bureau-foundation/remotefile/lib/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		process.Fatal(err)
	}
}

// options holds everything parsed from the command line.
type options struct {
	configPath string
	socketPath string
	tokenPath  string
	outputPath string
	timeout    time.Duration
	raw        bool
	jsonOutput bool
	showVer    bool

	maxSize    uint64
	forceCache bool
	nftID      string
	fileType   string
	dataHash   string
}

func newFlagSet(opts *options, stderr io.Writer) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("remotefile", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "usage: remotefile [flags] <uri>\n\nflags:\n")
		flagSet.PrintDefaults()
	}

	flagSet.StringVar(&opts.configPath, "config", "", "config file (default: $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&opts.socketPath, "socket", "", "host bridge socket (overrides bridge.socket_path)")
	flagSet.StringVar(&opts.tokenPath, "token", "", "bridge token file (overrides bridge.token_path)")
	flagSet.StringVarP(&opts.outputPath, "output", "o", "", "write decoded content to this file")
	flagSet.DurationVar(&opts.timeout, "timeout", 0, "give up after this long (default: bridge.response_timeout, 120s unless configured)")
	flagSet.BoolVar(&opts.raw, "raw", false, "print the payload text without decoding it")
	flagSet.BoolVar(&opts.jsonOutput, "json", false, "print {data, encoding} as JSON")
	flagSet.BoolVar(&opts.showVer, "version", false, "print version and exit")

	flagSet.Uint64Var(&opts.maxSize, "max-size", 0, "largest payload in bytes the host may return")
	flagSet.BoolVar(&opts.forceCache, "force-cache", false, "cache hint passed to the host")
	flagSet.StringVar(&opts.nftID, "nft-id", "", "NFT identifier passed to the host")
	flagSet.StringVar(&opts.fileType, "type", "", "content type hint: binary, video, or image")
	flagSet.StringVar(&opts.dataHash, "data-hash", "", "expected content hash passed to the host")

	return flagSet
}

// buildRequest sets only the optional fields whose flags were given.
func buildRequest(flagSet *pflag.FlagSet, opts *options, uri string) (remotefile.ContentRequest, error) {
	request := remotefile.ContentRequest{URI: uri}

	if flagSet.Changed("max-size") {
		request.MaxSize = &opts.maxSize
	}
	if flagSet.Changed("force-cache") {
		request.ForceCache = &opts.forceCache
	}
	if flagSet.Changed("nft-id") {
		request.NFTID = &opts.nftID
	}
	if flagSet.Changed("type") {
		fileType, err := remotefile.ParseFileType(opts.fileType)
		if err != nil {
			return remotefile.ContentRequest{}, err
		}
		request.Type = &fileType
	}
	if flagSet.Changed("data-hash") {
		request.DataHash = &opts.dataHash
	}
	return request, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var opts options
	flagSet := newFlagSet(&opts, stderr)
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if opts.showVer {
		fmt.Fprintf(stdout, "remotefile %s\n", version.Info())
		return nil
	}

	if flagSet.NArg() != 1 {
		flagSet.Usage()
		return fmt.Errorf("expected exactly one URI, got %d arguments", flagSet.NArg())
	}
	if opts.raw && opts.jsonOutput {
		return errors.New("--raw and --json are mutually exclusive")
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.socketPath != "" {
		cfg.Bridge.SocketPath = opts.socketPath
	}
	if opts.tokenPath != "" {
		cfg.Bridge.TokenPath = opts.tokenPath
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Validate already rejected an unparseable level.
	level, _ := cfg.Log.SlogLevel()
	logger := newLogger(stderr, level)

	request, err := buildRequest(flagSet, &opts, flagSet.Arg(0))
	if err != nil {
		return err
	}

	client, err := newBridgeClient(cfg.Bridge)
	if err != nil {
		return err
	}
	fetcher := remotefile.NewFetcher(remotefile.NewSocketInvoker(client), logger)

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	logger.Debug("fetching content", "uri", request.URI, "socket", client.SocketPath())
	content, err := fetcher.FetchContent(ctx, request)
	if err != nil {
		return err
	}

	return writeContent(stdout, opts, content, logger)
}

// loadConfig reads the file named by path or REMOTEFILE_CONFIG, or
// returns the defaults when neither is set.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	if os.Getenv(config.EnvironmentVariable) != "" {
		return config.Load()
	}
	return config.Default(), nil
}

func newBridgeClient(bridgeConfig config.BridgeConfig) (*bridge.Client, error) {
	var client *bridge.Client
	if bridgeConfig.TokenPath != "" {
		var err error
		client, err = bridge.NewClient(bridgeConfig.SocketPath, bridgeConfig.TokenPath)
		if err != nil {
			return nil, err
		}
	} else {
		client = bridge.NewClientFromToken(bridgeConfig.SocketPath, nil)
	}

	dial, response, err := bridgeConfig.Timeouts()
	if err != nil {
		return nil, err
	}
	client.SetTimeouts(dial, response)
	client.SetMaxResponseSize(bridgeConfig.MaxResponseSize)
	return client, nil
}

func writeContent(stdout io.Writer, opts options, content remotefile.Content, logger *slog.Logger) error {
	switch {
	case opts.jsonOutput:
		encoder := json.NewEncoder(stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(content)
	case opts.raw:
		_, err := fmt.Fprintln(stdout, content.Data)
		return err
	}

	decoded, err := content.Bytes()
	if err != nil {
		return err
	}

	if opts.outputPath != "" {
		if err := os.WriteFile(opts.outputPath, decoded, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", opts.outputPath, err)
		}
		logger.Info("content written", "path", opts.outputPath, "bytes", len(decoded), "encoding", content.Encoding)
		return nil
	}

	if isTerminal(stdout) {
		return errors.New("refusing to write binary content to a terminal; use --output, --raw, or --json")
	}
	_, err = stdout.Write(decoded)
	return err
}

// newLogger uses a text handler when stderr is a terminal and a JSON
// handler otherwise.
func newLogger(stderr io.Writer, level slog.Level) *slog.Logger {
	handlerOptions := &slog.HandlerOptions{Level: level}
	if isTerminal(stderr) {
		return slog.New(slog.NewTextHandler(stderr, handlerOptions))
	}
	return slog.New(slog.NewJSONHandler(stderr, handlerOptions))
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
