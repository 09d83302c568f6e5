package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bookkeeper-cli",
		Short: "Bookkeeper CLI tool",
		Long:  `A command line interface for interacting with the Bookkeeper API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Bookkeeper API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(balancesCmd(), adminCmd(), healthCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func balancesCmd() *cobra.Command {
	var startDate, endDate string

	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Report account balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if startDate != "" {
				query.Set("startDate", startDate)
			}
			if endDate != "" {
				query.Set("endDate", endDate)
			}

			path := "/api/v1/balances"
			if len(query) > 0 {
				path += "?" + query.Encode()
			}

			return getJSON(path)
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Period start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "Period end date (YYYY-MM-DD)")

	return cmd
}

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative operations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "recalculate",
			Short: "Sweep the journal and report entry counts",
			RunE: func(cmd *cobra.Command, args []string) error {
				return postJSON("/api/v1/admin/recalculate")
			},
		},
		&cobra.Command{
			Use:   "consistency",
			Short: "Check that total debits equal total credits",
			RunE: func(cmd *cobra.Command, args []string) error {
				return getJSON("/api/v1/admin/consistency")
			},
		},
	)

	return cmd
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Report registry and journal sizes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON("/api/v1/admin/health")
		},
	}
}

func getJSON(path string) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func postJSON(path string) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", nil)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse response (status %d): %s", resp.StatusCode, truncate(string(body), 200))
	}

	printJSON(result)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("request returned status %d", resp.StatusCode)
	}

	return nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render response: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
