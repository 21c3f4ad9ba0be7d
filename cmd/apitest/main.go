package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// =============================================================================
// Response Types - Match the actual API response structure
// =============================================================================

type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// HealthResponse is the response for /health
type HealthResponse struct {
	Status    string `json:"status"`
	FirstYear int    `json:"first_year"`
	LastYear  int    `json:"last_year"`
	FirstAD   string `json:"first_ad"`
	LastAD    string `json:"last_ad"`
}

// Day is a single converted day
type Day struct {
	BS        string `json:"bs"`
	AD        string `json:"ad"`
	Weekday   string `json:"weekday"`
	Formatted struct {
		English string `json:"english"`
		Nepali  string `json:"nepali"`
	} `json:"formatted"`
}

// ConvertResponse is the response for /convert/{system}/{date}
type ConvertResponse struct {
	System string `json:"system"`
	Date   Day    `json:"date"`
}

// FormatResponse is the response for /format
type FormatResponse struct {
	Formatted string `json:"formatted"`
	Template  string `json:"template"`
	Fallback  bool   `json:"fallback"`
}

// MonthResponse is the response for /month
type MonthResponse struct {
	Header struct {
		Primary        string `json:"primary"`
		SecondaryRange string `json:"secondary_range"`
	} `json:"header"`
	Grid struct {
		Leading int `json:"leading"`
		Days    []struct {
			Day      int    `json:"day"`
			Label    string `json:"label"`
			Selected bool   `json:"selected"`
		} `json:"days"`
	} `json:"grid"`
}

// SelectResponse is the response for /month/select
type SelectResponse struct {
	Selection struct {
		Formatted struct {
			English string `json:"english"`
			Nepali  string `json:"nepali"`
		} `json:"formatted"`
	} `json:"selection"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	client       *http.Client
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Sambat API Test Suite")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)
	fmt.Println()

	// Run test groups
	tr.testHealth()
	tr.testToday()
	tr.testConversions()
	tr.testFormats()
	tr.testMonthHeaders()
	tr.testSelect()
	tr.testEdgeCases()
	tr.testMonthWalk()

	// Print summary
	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	resp, err := tr.get("/health")
	if err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	var health HealthResponse
	if err := json.Unmarshal(resp.Data, &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess(fmt.Sprintf("Health check passed (BS %d-%d, AD %s to %s)",
			health.FirstYear, health.LastYear, health.FirstAD, health.LastAD))
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testToday() {
	tr.printSection("Today")

	for _, lang := range []string{"np", "en"} {
		resp, err := tr.get("/api/v1/today?lang=" + lang)
		if err != nil {
			tr.recordError("Today ("+lang+")", err.Error())
			continue
		}

		var data struct {
			Today Day `json:"today"`
		}
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			tr.recordError("Today ("+lang+")", err.Error())
			continue
		}
		tr.recordSuccess(fmt.Sprintf("Today (%s): BS %s / AD %s, %s",
			lang, data.Today.BS, data.Today.AD, data.Today.Weekday))
		tr.printDayDetail(data.Today)
	}
}

func (tr *TestRunner) testConversions() {
	tr.printSection("Known Conversions")

	testCases := []struct {
		bs          string
		ad          string
		description string
	}{
		{"2070-01-01", "2013-04-14", "First day of the table"},
		{"2080-01-01", "2023-04-14", "New Year 2080"},
		{"2081-01-01", "2024-04-13", "New Year 2081"},
		{"2081-06-01", "2024-09-17", "Asoj 1, 2081"},
		{"2081-09-17", "2025-01-01", "New Year's Day 2025"},
		{"2081-10-01", "2025-01-14", "Magh 1, 2081"},
		{"2081-12-30", "2025-04-13", "Last day of 2081"},
		{"2082-01-01", "2025-04-14", "New Year 2082"},
		{"2080-11-17", "2024-02-29", "AD leap day"},
	}

	for _, tc := range testCases {
		tr.checkConvert("bs", tc.bs, tc.ad, tc.description)
		tr.checkConvert("ad", tc.ad, tc.bs, tc.description)
	}
}

func (tr *TestRunner) checkConvert(system, from, want, description string) {
	resp, err := tr.get(fmt.Sprintf("/api/v1/convert/%s/%s", system, from))
	if err != nil {
		tr.recordError(from, err.Error())
		return
	}

	var data ConvertResponse
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		tr.recordError(from, err.Error())
		return
	}

	got := data.Date.AD
	if system == "ad" {
		got = data.Date.BS
	}
	if got == want {
		tr.recordSuccess(fmt.Sprintf("%s %s -> %s (%s)", strings.ToUpper(system), from, got, description))
	} else {
		tr.recordError(from, fmt.Sprintf("Expected %s, got %s", want, got))
	}

	if tr.verbose {
		tr.printDayDetail(data.Date)
	}
}

func (tr *TestRunner) testFormats() {
	tr.printSection("Formatting")

	testCases := []struct {
		date     string
		lang     string
		template string
		expected string
	}{
		{"2025-01-01", "en", "YYYY-MM-DD", "2025-01-01"},
		{"2025-01-01", "en", "MMMM DDth, YYYY", "January 1st, 2025"},
		{"2025-01-22", "en", "DDth MMMM, YYYY", "22nd January, 2025"},
		{"2025-01-11", "en", "MMMM DDth, YYYY", "January 11th, 2025"},
		{"2081-09-17", "np", "DD MMMM YYYY", "१७ पुस २०८१"},
		{"2081-09-17", "np", "DD/MM/YYYY", "१७/०९/२०८१"},
	}

	for _, tc := range testCases {
		q := url.Values{"date": {tc.date}, "lang": {tc.lang}, "template": {tc.template}}
		resp, err := tr.get("/api/v1/format?" + q.Encode())
		if err != nil {
			tr.recordError(tc.date, err.Error())
			continue
		}

		var data FormatResponse
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			tr.recordError(tc.date, err.Error())
			continue
		}

		if data.Formatted == tc.expected {
			tr.recordSuccess(fmt.Sprintf("%s [%s] %q -> %s", tc.date, tc.lang, tc.template, data.Formatted))
		} else {
			tr.recordError(tc.date, fmt.Sprintf("Expected %q, got %q", tc.expected, data.Formatted))
		}
	}

	// Unknown template falls back to the default
	q := url.Values{"date": {"2025-01-01"}, "lang": {"en"}, "template": {"YY"}}
	resp, err := tr.get("/api/v1/format?" + q.Encode())
	if err != nil {
		tr.recordError("Fallback", err.Error())
		return
	}
	var data FormatResponse
	if err := json.Unmarshal(resp.Data, &data); err == nil && data.Fallback {
		tr.recordSuccess("Unknown template falls back to " + data.Template)
	} else {
		tr.recordError("Fallback", "Expected fallback for unknown template")
	}
}

func (tr *TestRunner) testMonthHeaders() {
	tr.printSection("Month Headers")

	testCases := []struct {
		value     string
		lang      string
		delta     int
		primary   string
		secondary string
	}{
		{"2025-01-01", "en", 0, "January 2025", "Poush/Magh 2081"},
		{"2025-01-01", "en", 3, "April 2025", "Chaitra/Baisakh 2081-2082"},
		{"2081-09-17", "np", 0, "पुस २०८१", "डिसेम्बर/जनवरी २०२४-२०२५"},
		{"2081-09-17", "np", 12, "पुस २०८२", "डिसेम्बर/जनवरी २०२५-२०२६"},
	}

	for _, tc := range testCases {
		q := url.Values{"value": {tc.value}, "lang": {tc.lang}, "delta": {fmt.Sprint(tc.delta)}}
		resp, err := tr.get("/api/v1/month?" + q.Encode())
		if err != nil {
			tr.recordError(tc.value, err.Error())
			continue
		}

		var data MonthResponse
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			tr.recordError(tc.value, err.Error())
			continue
		}

		if data.Header.Primary == tc.primary && data.Header.SecondaryRange == tc.secondary {
			tr.recordSuccess(fmt.Sprintf("%s %+d [%s]: %s | %s",
				tc.value, tc.delta, tc.lang, data.Header.Primary, data.Header.SecondaryRange))
		} else {
			tr.recordError(tc.value, fmt.Sprintf("Expected %q | %q, got %q | %q",
				tc.primary, tc.secondary, data.Header.Primary, data.Header.SecondaryRange))
		}
	}
}

func (tr *TestRunner) testSelect() {
	tr.printSection("Day Selection")

	body := map[string]any{"value": "2081-09-17", "lang": "np", "day": 29, "template": "DD MMMM YYYY"}
	resp, err := tr.post("/api/v1/month/select", body)
	if err != nil {
		tr.recordError("Select", err.Error())
		return
	}

	var data SelectResponse
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		tr.recordError("Select", err.Error())
		return
	}

	f := data.Selection.Formatted
	if f.Nepali == "२९ पुस २०८१" && f.English == "13 January 2025" {
		tr.recordSuccess(fmt.Sprintf("Poush 29, 2081: %s / %s", f.Nepali, f.English))
	} else {
		tr.recordError("Select", fmt.Sprintf("Unexpected formatting %q / %q", f.Nepali, f.English))
	}
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	testCases := []struct {
		path        string
		status      int
		code        string
		description string
	}{
		{"/api/v1/convert/bs/invalid", 400, "INVALID_DATE", "Invalid date format rejected"},
		{"/api/v1/convert/bs/2081-13-01", 400, "INVALID_DATE", "Month 13 rejected"},
		{"/api/v1/convert/bs/2081-09-30", 400, "INVALID_DATE", "Poush 30 rejected"},
		{"/api/v1/convert/ad/2025-02-29", 400, "INVALID_DATE", "Feb 29 in a common year rejected"},
		{"/api/v1/convert/ad/1990-01-01", 422, "UNSUPPORTED_ERA", "Date before the table rejected"},
		{"/api/v1/convert/bs/2100-01-01", 422, "UNSUPPORTED_ERA", "Date after the table rejected"},
		{"/api/v1/convert/xx/2025-01-01", 400, "BAD_REQUEST", "Unknown calendar rejected"},
		{"/api/v1/today?lang=fr", 400, "BAD_REQUEST", "Unknown language rejected"},
	}

	for _, tc := range testCases {
		tr.checkError("GET", tc.path, nil, tc.status, tc.code, tc.description)
	}

	tr.checkError("POST", "/api/v1/month/select",
		map[string]any{"value": "2081-09-17", "lang": "np", "day": 30},
		400, "DAY_OUT_OF_RANGE", "Day 30 of Poush rejected")
}

func (tr *TestRunner) checkError(method, path string, body any, status int, code, description string) {
	resp, err := tr.do(method, path, body)
	if err != nil {
		tr.recordError(description, err.Error())
		return
	}
	defer resp.Body.Close()

	var apiResp APIResponse
	_ = json.NewDecoder(resp.Body).Decode(&apiResp)

	gotCode := ""
	if apiResp.Error != nil {
		gotCode = apiResp.Error.Code
	}
	if resp.StatusCode == status && gotCode == code {
		tr.recordSuccess(description)
	} else {
		tr.recordError(description, fmt.Sprintf("Expected HTTP %d %s, got HTTP %d %s",
			status, code, resp.StatusCode, gotCode))
	}
}

func (tr *TestRunner) testMonthWalk() {
	tr.printSection("Month Walk (2081, np)")

	for delta := 0; delta < 12; delta++ {
		q := url.Values{"value": {"2081-01-01"}, "lang": {"np"}, "delta": {fmt.Sprint(delta)}}
		resp, err := tr.get("/api/v1/month?" + q.Encode())
		if err != nil {
			tr.recordError(fmt.Sprintf("delta %d", delta), err.Error())
			continue
		}

		var data MonthResponse
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			tr.recordError(fmt.Sprintf("delta %d", delta), err.Error())
			continue
		}

		days := len(data.Grid.Days)
		if days < 29 || days > 32 {
			tr.recordError(data.Header.Primary, fmt.Sprintf("Unexpected month length %d", days))
			continue
		}
		tr.recordSuccess(fmt.Sprintf("%s | %s [%d days, starts col %d]",
			data.Header.Primary, data.Header.SecondaryRange, days, data.Grid.Leading))
	}
}

// =============================================================================
// Helper Methods
// =============================================================================

func (tr *TestRunner) get(path string) (*APIResponse, error) {
	return tr.request("GET", path, nil)
}

func (tr *TestRunner) post(path string, body any) (*APIResponse, error) {
	return tr.request("POST", path, body)
}

func (tr *TestRunner) request(method, path string, body any) (*APIResponse, error) {
	resp, err := tr.do(method, path, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(data, &apiResp); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return nil, fmt.Errorf("API error: %s", errMsg)
	}

	return &apiResp, nil
}

func (tr *TestRunner) do(method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, tr.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return tr.client.Do(req)
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) printDayDetail(d Day) {
	fmt.Printf("    English: %s\n", d.Formatted.English)
	fmt.Printf("    Nepali:  %s\n", d.Formatted.Nepali)
	fmt.Println()
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Println("Summary")
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)
	fmt.Println()

	if tr.errorCount > 0 {
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
		fmt.Println()
	}

	if tr.errorCount == 0 {
		fmt.Println("All tests passed! ✓")
	} else {
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
	}
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	verbose := flag.Bool("v", false, "Verbose output (show formatted dates)")
	flag.Parse()

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *verbose)
	runner.Run()

	// Exit with error code if tests failed
	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
