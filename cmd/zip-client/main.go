// zip-client：命令行版查询客户端；以内存表单模拟 zip/city/state 三个输入框
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"zip-api/internal/client"
	"zip-api/internal/form"
	"zip-api/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	baseURL  string
	city     string
	state    string
	logLevel string
	probe    bool
)

var rootCmd = &cobra.Command{
	Use:   "zip-client <zip>",
	Short: "Fill city and state fields from a zip code",
	Long: `Query the zip lookup service and fill the city and state fields.

Fields given with --city or --state are treated as already filled by the
user and are never overwritten.`,
	Args: cobra.ExactArgs(1),
	RunE: runFill,
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the lookup service answers",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "base", envOr("ZIP_API_BASE", "http://localhost:8080/api"), "lookup service API base URL")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", envOr("LOG_LEVEL", "warn"), "debug, info, warn or error")
	rootCmd.Flags().StringVar(&city, "city", "", "pre-filled city field")
	rootCmd.Flags().StringVar(&state, "state", "", "pre-filled state field")
	rootCmd.Flags().BoolVar(&probe, "probe", false, "check service health before the lookup")
	rootCmd.AddCommand(healthCmd)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func runFill(cmd *cobra.Command, args []string) error {
	logger.SetupWriter(cmd.ErrOrStderr(), logLevel, "")
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if probe {
		if err := checkHealth(ctx, baseURL); err != nil {
			return err
		}
	}
	fs := form.NewMemory(map[string]string{
		client.FieldZip:   args[0],
		client.FieldCity:  city,
		client.FieldState: state,
	})
	if _, ok := client.New(baseURL, nil).FillFromField(ctx, fs); !ok {
		logger.L().Warn("zip_fill_incomplete", "zip", args[0])
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "city:  %q\n", fs.Get(client.FieldCity))
	fmt.Fprintf(out, "state: %q\n", fs.Get(client.FieldState))
	return nil
}

func runHealth(cmd *cobra.Command, args []string) error {
	logger.SetupWriter(cmd.ErrOrStderr(), logLevel, "")
	if err := checkHealth(cmd.Context(), baseURL); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}

func checkHealth(ctx context.Context, base string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check: status %d", resp.StatusCode)
	}
	return nil
}

func main() {
	_ = godotenv.Load(".env")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
