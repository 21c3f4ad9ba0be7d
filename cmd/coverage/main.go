package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"time"
)

// APIResponse matches the API response structure
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ConvertResponse struct {
	Date struct {
		BS      string `json:"bs"`
		AD      string `json:"ad"`
		Weekday string `json:"weekday"`
	} `json:"date"`
}

// TestResult holds the result for a single AD date
type TestResult struct {
	Date    string `json:"date"`
	BS      string `json:"bs,omitempty"`
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Error   string `json:"error,omitempty"`
}

// YearStats tracks statistics for each BS year
type YearStats struct {
	Year        string   `json:"year"`
	TotalDays   int      `json:"total_days"`
	SuccessDays int      `json:"success_days"`
	FailedDays  int      `json:"failed_days"`
	FailedDates []string `json:"failed_dates,omitempty"`
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	startYear := flag.Int("start", 2014, "First AD year to sweep")
	years := flag.Int("years", 4, "Number of AD years to sweep")
	verbose := flag.Bool("v", false, "Verbose output (show each date)")
	outputFile := flag.String("o", "", "Output results to JSON file")
	flag.Parse()

	endYear := *startYear + *years - 1

	fmt.Println("================================================================")
	fmt.Println("Sambat API - Conversion Round Trip Sweep")
	fmt.Println("================================================================")
	fmt.Printf("Base URL:    %s\n", *baseURL)
	fmt.Printf("Date Range:  %d-01-01 to %d-12-31\n", *startYear, endYear)
	fmt.Printf("Total Years: %d\n", *years)
	fmt.Println()

	// Check if server is reachable
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	// Test all dates
	results := testAllDates(client, *baseURL, *startYear, endYear, *verbose)

	// Analyze results
	analysis := analyzeResults(results)

	// Print summary
	printSummary(analysis)

	// Print failures grouped by error code
	printFailuresByCode(analysis)

	// Output to file if requested
	if *outputFile != "" {
		saveResults(*outputFile, analysis)
	}

	// Exit with error code if there were failures
	if analysis.TotalFailed > 0 {
		os.Exit(1)
	}
}

func testAllDates(client *http.Client, baseURL string, startYear, endYear int, verbose bool) []TestResult {
	var results []TestResult

	start := time.Date(startYear, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(endYear, 12, 31, 0, 0, 0, 0, time.UTC)
	totalDays := int(end.Sub(start).Hours()/24) + 1

	fmt.Printf("Testing %d days...\n\n", totalDays)

	tested := 0
	failed := 0
	lastProgress := -1

	for current := start; !current.After(end); current = current.AddDate(0, 0, 1) {
		dateStr := current.Format("2006-01-02")
		result := testDate(client, baseURL, dateStr)
		results = append(results, result)

		tested++
		if !result.Success {
			failed++
		}

		// Show progress
		progress := (tested * 100) / totalDays
		if progress != lastProgress && progress%5 == 0 {
			fmt.Printf("  Progress: %d%% (%d/%d) - Failures: %d\n", progress, tested, totalDays, failed)
			lastProgress = progress
		}

		if verbose {
			status := "✓"
			if !result.Success {
				status = "✗"
			}
			fmt.Printf("  %s %s: BS %s\n", status, dateStr, result.BS)
			if !result.Success {
				fmt.Printf("      Error: %s\n", result.Error)
			}
		}
	}

	fmt.Println()
	return results
}

// testDate converts an AD date to BS and back and checks that the round
// trip returns the original date.
func testDate(client *http.Client, baseURL, dateStr string) TestResult {
	result := TestResult{Date: dateStr}

	toBS, code, err := convert(client, fmt.Sprintf("%s/api/v1/convert/ad/%s", baseURL, dateStr))
	if err != nil {
		result.Code = code
		result.Error = err.Error()
		return result
	}
	result.BS = toBS.Date.BS

	back, code, err := convert(client, fmt.Sprintf("%s/api/v1/convert/bs/%s", baseURL, toBS.Date.BS))
	if err != nil {
		result.Code = code
		result.Error = "reverse: " + err.Error()
		return result
	}

	if back.Date.AD != dateStr {
		result.Code = "MISMATCH"
		result.Error = fmt.Sprintf("BS %s converts back to %s", toBS.Date.BS, back.Date.AD)
		return result
	}
	if back.Date.Weekday != toBS.Date.Weekday {
		result.Code = "MISMATCH"
		result.Error = fmt.Sprintf("weekday %s != %s", back.Date.Weekday, toBS.Date.Weekday)
		return result
	}

	result.Success = true
	return result
}

func convert(client *http.Client, url string) (*ConvertResponse, string, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, "CONNECTION", fmt.Errorf("connection error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "READ", fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, "PARSE", fmt.Errorf("parse error: %w", err)
	}

	if !apiResp.Success {
		if apiResp.Error != nil {
			return nil, apiResp.Error.Code, fmt.Errorf("%s", apiResp.Error.Message)
		}
		return nil, "UNKNOWN", fmt.Errorf("unknown error")
	}

	var data ConvertResponse
	if err := json.Unmarshal(apiResp.Data, &data); err != nil {
		return nil, "PARSE", fmt.Errorf("data parse error: %w", err)
	}
	return &data, "", nil
}

// Analysis holds the analyzed results
type Analysis struct {
	TotalDays    int                     `json:"total_days"`
	TotalSuccess int                     `json:"total_success"`
	TotalFailed  int                     `json:"total_failed"`
	ByBSYear     map[string]*YearStats   `json:"by_bs_year"`
	ByCode       map[string][]TestResult `json:"-"`
	AllFailures  []TestResult            `json:"failures"`
}

func analyzeResults(results []TestResult) *Analysis {
	analysis := &Analysis{
		ByBSYear: make(map[string]*YearStats),
		ByCode:   make(map[string][]TestResult),
	}

	for _, r := range results {
		analysis.TotalDays++

		year := "(unconverted)"
		if len(r.BS) >= 4 {
			year = r.BS[:4]
		}
		if _, ok := analysis.ByBSYear[year]; !ok {
			analysis.ByBSYear[year] = &YearStats{Year: year}
		}
		stats := analysis.ByBSYear[year]
		stats.TotalDays++

		if r.Success {
			analysis.TotalSuccess++
			stats.SuccessDays++
		} else {
			analysis.TotalFailed++
			stats.FailedDays++
			stats.FailedDates = append(stats.FailedDates, r.Date)
			analysis.ByCode[r.Code] = append(analysis.ByCode[r.Code], r)
			analysis.AllFailures = append(analysis.AllFailures, r)
		}
	}

	return analysis
}

func printSummary(analysis *Analysis) {
	fmt.Println("================================================================")
	fmt.Println("SUMMARY")
	fmt.Println("================================================================")
	fmt.Printf("Total Days Tested: %d\n", analysis.TotalDays)
	fmt.Printf("Successful:        %d (%.1f%%)\n", analysis.TotalSuccess,
		float64(analysis.TotalSuccess)/float64(analysis.TotalDays)*100)
	fmt.Printf("Failed:            %d (%.1f%%)\n", analysis.TotalFailed,
		float64(analysis.TotalFailed)/float64(analysis.TotalDays)*100)
	fmt.Println()

	// By BS year
	years := make([]string, 0, len(analysis.ByBSYear))
	for y := range analysis.ByBSYear {
		years = append(years, y)
	}
	sort.Strings(years)

	fmt.Println("By BS Year:")
	for _, y := range years {
		stats := analysis.ByBSYear[y]
		status := "✓"
		if stats.FailedDays > 0 {
			status = "✗"
		}
		fmt.Printf("  %s %s: %d/%d days (%.1f%% success)\n",
			status, y, stats.SuccessDays, stats.TotalDays,
			float64(stats.SuccessDays)/float64(stats.TotalDays)*100)
	}
	fmt.Println()
}

func printFailuresByCode(analysis *Analysis) {
	if analysis.TotalFailed == 0 {
		fmt.Println("No failures! 🎉")
		return
	}

	fmt.Println("================================================================")
	fmt.Println("FAILURES BY ERROR CODE")
	fmt.Println("================================================================")

	codes := make([]string, 0, len(analysis.ByCode))
	for code := range analysis.ByCode {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		return len(analysis.ByCode[codes[i]]) > len(analysis.ByCode[codes[j]])
	})

	for _, code := range codes {
		failures := analysis.ByCode[code]
		fmt.Printf("\n%s: %d failures\n", code, len(failures))
		// Show up to 5 example dates
		for i, f := range failures {
			if i >= 5 {
				fmt.Printf("  ... and %d more\n", len(failures)-5)
				break
			}
			fmt.Printf("  - %s: %s\n", f.Date, f.Error)
		}
	}
	fmt.Println()
}

func saveResults(filename string, analysis *Analysis) {
	output := struct {
		GeneratedAt string `json:"generated_at"`
		SuccessRate string `json:"success_rate"`
		*Analysis
	}{
		GeneratedAt: time.Now().Format(time.RFC3339),
		SuccessRate: fmt.Sprintf("%.2f%%", float64(analysis.TotalSuccess)/float64(analysis.TotalDays)*100),
		Analysis:    analysis,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling results: %v\n", err)
		return
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		fmt.Printf("Error writing file: %v\n", err)
		return
	}

	fmt.Printf("Results saved to: %s\n", filename)
}
