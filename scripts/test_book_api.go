package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Manual smoke walkthrough of the digital book wizard flow.
// Usage: go run scripts/test_book_api.go <jwt> <building-uuid>

func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func sendRequest(method, url, token string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func step(token, label, method, url string, body interface{}) {
	color.Cyan("\n=== %s (%s %s)", label, method, url)
	resp, respBody, err := sendRequest(method, url, token, body)
	if err != nil {
		color.Red("request failed: %v", err)
		return
	}
	if resp.StatusCode >= 400 {
		color.Yellow("status %d", resp.StatusCode)
	} else {
		color.Green("status %d", resp.StatusCode)
	}
	prettyPrint(respBody)
}

func main() {
	if len(os.Args) < 3 {
		fmt.Println("usage: go run scripts/test_book_api.go <jwt> <building-uuid>")
		os.Exit(1)
	}
	token := os.Args[1]
	buildingId := os.Args[2]
	prefix := "/digitalbook/v1/" + buildingId

	step(token, "Initialize wizard", "POST", prefix+"/wizard", map[string]string{"source": "manual"})
	step(token, "Current step", "GET", prefix+"/wizard/step", nil)

	// Fill the five required fields of general_data
	fields := map[string]string{
		"address":             "Calle Mayor 12",
		"cadastral_reference": "9872023VH5797S0001WX",
		"construction_year":   "1987",
		"property_type":       "Residencial",
		"total_area":          "2450",
	}
	for name, value := range fields {
		step(token, "Set "+name, "PUT", prefix+"/wizard/field", map[string]string{"field": name, "value": value})
	}

	step(token, "Next (completes general_data)", "POST", prefix+"/wizard/next", nil)
	step(token, "Save draft on step 1", "POST", prefix+"/wizard/draft", nil)
	step(token, "Back to step 0", "POST", prefix+"/wizard/previous", nil)
	step(token, "Progress", "GET", prefix+"/progress", nil)
	step(token, "Show book", "GET", prefix+"/book", nil)
}
