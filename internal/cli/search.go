package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mkarpov/rolefinder/internal/model"
	"github.com/mkarpov/rolefinder/internal/pipeline"
)

var (
	outJSON     string
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	noCache     bool
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <company> <designation>",
	Short: "Search for the person holding a designation at a company",
	Long: `Search queries the enabled web search providers for a company and
designation, extracts person candidates from the results, and prints
the ranked candidate list with confidence scores and source URLs.

Example:
  rolefinder search "Meta" "CEO"
  rolefinder search "Stripe" "CTO" --json result.json
  rolefinder search "Shopify" "Head of Engineering" --llm --llm-provider ollama`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	// Output flags
	searchCmd.Flags().StringVar(&outJSON, "json", "", "write full JSON response to this path ('-' for stdout)")

	// HTTP flags
	searchCmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "overall search timeout")
	searchCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	searchCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read per fetch")
	searchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the provider response cache")

	// LLM flags
	searchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	searchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	searchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

// loadConfig layers viper settings and environment keys over the
// built-in defaults. Shared by the search and serve commands.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Providers.BraveAPIKey == "" {
		cfg.Providers.BraveAPIKey = os.Getenv("BRAVE_API_KEY")
	}
	cfg.Verbose = verbose
	return cfg, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	company, designation := args[0], args[1]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	cfg.HTTP.MaxBodyBytes = maxBytes
	if noCache {
		cfg.Providers.CacheTTL = 0
	}

	// Configure LLM if enabled
	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		switch llmProvider {
		case "openai":
			if cfg.LLM.APIKey == "" {
				cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			}
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Searching: %s / %s\n", company, designation)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Brave API key: %v\n", cfg.Providers.BraveAPIKey != "")
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	resp, err := p.Run(ctx, company, designation)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Collected %d raw results\n", len(resp.RawResults))
		fmt.Fprintf(os.Stderr, "✓ Merged into %d candidates\n", len(resp.Candidates))
		if resp.LLM != nil {
			fmt.Fprintf(os.Stderr, "✓ Generated LLM summary using %s/%s\n", resp.LLM.Provider, resp.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	printResponse(resp, cfg.Scoring.StrongMatch)

	if outJSON != "" {
		if err := writeJSON(resp, outJSON); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
	}
	return nil
}

// printResponse renders the human-readable summary to stdout.
func printResponse(resp *model.SearchResponse, strongMatch float64) {
	fmt.Printf("Company:     %s\n", resp.Company)
	fmt.Printf("Designation: %s (aliases: %v)\n", resp.Designation, resp.NormalizedDesignationAliases)
	fmt.Println()

	if resp.BestMatch == nil {
		fmt.Println(resp.Message)
		return
	}

	best := resp.BestMatch
	marker := "likely"
	if best.Confidence < strongMatch {
		marker = "uncertain"
	}
	fmt.Printf("Best match (%s, confidence %.2f): %s", marker, best.Confidence, best.FullName)
	if best.CurrentTitle != "" {
		fmt.Printf(", %s", best.CurrentTitle)
	}
	fmt.Println()
	fmt.Printf("  Source: %s (%s via %s)\n", best.SourceURL, best.SourceType, best.SearchProvider)
	for _, sig := range best.Signals {
		fmt.Printf("  %+.2f  %s\n", sig.Delta, sig.Description)
	}

	if len(resp.Candidates) > 1 {
		fmt.Println()
		fmt.Println("Other candidates:")
		for _, c := range resp.Candidates[1:] {
			fmt.Printf("  %.2f  %s (%s)\n", c.Confidence, c.FullName, c.SourceURL)
		}
	}

	fmt.Println()
	fmt.Println(resp.Message)
}

func writeJSON(resp *model.SearchResponse, path string) error {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}
