package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Lumos-Labs-HQ/knights/cmd/output"
	"github.com/Lumos-Labs-HQ/knights/internal/config"
	"github.com/Lumos-Labs-HQ/knights/internal/session"
	"github.com/Lumos-Labs-HQ/knights/internal/types"
	"github.com/fatih/color"
)

// openSession loads the config and connects. Callers must defer Close.
func openSession(ctx context.Context) (*session.Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	sess, err := session.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func describe(err error) string {
	return output.Describe(err)
}

func printTableResults(results []types.TableResult, created bool) {
	for _, r := range results {
		if r.Changed {
			color.Green("✅ %s", output.TableResult(r, created))
		} else {
			color.Yellow("ℹ️  %s", output.TableResult(r, created))
		}
	}
}

func confirm(question string) bool {
	fmt.Printf("\n%s (yes/no): ", question)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y"
}
