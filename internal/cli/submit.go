package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bartekmp/osmosmjerka-sub000/internal/core"
	"github.com/bartekmp/osmosmjerka-sub000/internal/phrase"
)

// maxResponseSize caps the server response read by submit.
const maxResponseSize = 10 << 20

type submitOptions struct {
	separator string
	setID     int64
	server    string
	apiKey    string
	timeout   time.Duration
}

func newSubmitCmd() *cobra.Command {
	opts := submitOptions{}

	cmd := &cobra.Command{
		Use:   "submit [file]",
		Short: "Import a phrase list into a language set",
		Long: `Check a phrase list with the same preview rules as the admin console and,
if the preview is clean, send it to the phrase service import endpoint.

The server URL and API key default to $PHRASECTL_SERVER and
$PHRASECTL_API_KEY.

Examples:
  phrasectl submit --set 1 animals.csv
  phrasectl submit --set 3 --separator "|" --server https://phrases.example.com words.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(cmd, args, opts)
		},
	}

	separatorFlag(cmd, &opts.separator)
	cmd.Flags().Int64Var(&opts.setID, "set", 0, "language set id (required)")
	cmd.Flags().StringVar(&opts.server, "server", envOr("PHRASECTL_SERVER", "http://localhost:8080"), "phrase service base URL")
	cmd.Flags().StringVar(&opts.apiKey, "api-key", os.Getenv("PHRASECTL_API_KEY"), "API key sent as X-API-Key")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 2*time.Minute, "request timeout")
	_ = cmd.MarkFlagRequired("set")

	return cmd
}

func runSubmit(cmd *cobra.Command, args []string, opts submitOptions) error {
	if opts.setID <= 0 {
		return fmt.Errorf("--set must be a positive language set id")
	}
	mode, err := parseMode(opts.separator)
	if err != nil {
		return err
	}
	content, err := readInput(cmd, args)
	if err != nil {
		return userError(err)
	}

	payload, err := phrase.BuildPayload(content, mode)
	if err != nil {
		return userError(err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	res, err := postImport(ctx, opts, payload)
	if err != nil {
		return err
	}
	renderResult(cmd.OutOrStdout(), res)
	return nil
}

// remoteError is the error body returned by the service.
type remoteError struct {
	Message string `json:"message"`
	Action  string `json:"action"`
	Code    string `json:"code"`
}

func postImport(ctx context.Context, opts submitOptions, payload phrase.Payload) (*core.ImportResult, error) {
	endpoint, err := url.JoinPath(opts.server, "api", "language-sets", strconv.FormatInt(opts.setID, 10), "phrases", "import")
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent())
	if opts.apiKey != "" {
		req.Header.Set("X-API-Key", opts.apiKey)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var re remoteError
		if json.Unmarshal(data, &re) == nil && re.Message != "" {
			return nil, fmt.Errorf("import failed: %s (Code: %s). %s", re.Message, re.Code, re.Action)
		}
		return nil, fmt.Errorf("import failed: %s", resp.Status)
	}

	var res core.ImportResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decode import result: %w", err)
	}
	return &res, nil
}

func userAgent() string {
	v, _, _ := strings.Cut(version, " ")
	if v == "" {
		v = "dev"
	}
	return "phrasectl/" + v
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
