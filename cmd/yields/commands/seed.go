package commands

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmtruffa/financial/internal/store"
)

var (
	bondsFile  string
	indexFiles map[string]string
)

func AddSeedCmdFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&bondsFile, "bonds", "", "bonds.json file to load")
	cmd.Flags().StringToStringVar(&indexFiles, "index", nil, "index values as CODE=file.csv or CODE=url, e.g. CER=cer.csv")
}

func NewSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load bonds and index values into the database",
		Args:  cobra.NoArgs,
		RunE:  handleSeed,
	}
	AddSeedCmdFlag(cmd)
	return cmd
}

func handleSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	repo, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	if bondsFile != "" {
		n, err := repo.SeedFromJSON(ctx, bondsFile)
		if err != nil {
			return err
		}
		logger.WithField("path", bondsFile).WithField("bonds", n).Info("bonds loaded")
	}
	for code, path := range indexFiles {
		if err := seedIndex(ctx, repo, strings.ToUpper(code), path); err != nil {
			return err
		}
	}
	return nil
}

func seedIndex(ctx context.Context, repo *store.BondRepository, code, path string) error {
	in, err := openSource(ctx, path)
	if err != nil {
		return err
	}
	defer in.Close()
	_, err = repo.ImportIndexCSV(ctx, code, in)
	return err
}

// openSource opens a local file or downloads it when path is an http(s) URL.
func openSource(ctx context.Context, path string) (io.ReadCloser, error) {
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		return os.Open(path)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	client := http.Client{Timeout: 10 * time.Second}
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download index: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, fmt.Errorf("download index: %s", res.Status)
	}
	return res.Body, nil
}
