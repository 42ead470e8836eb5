//go:build ignore

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"time"

	"github.com/fatih/color"
)

var baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper. The cookie jar keeps the user handle between calls.
func sendRequest(client *http.Client, method, url string, body interface{}) (*http.Response, map[string]interface{}, error) {
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

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, err
	}
	var decoded map[string]interface{}
	json.Unmarshal(raw, &decoded)
	return resp, decoded, nil
}

func step(client *http.Client, title, method, url string, body interface{}) map[string]interface{} {
	color.Yellow("\n%s", title)
	resp, decoded, err := sendRequest(client, method, url, body)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	if resp.StatusCode >= 400 {
		color.Red("Status: %s", resp.Status)
	} else {
		color.Green("Status: %s", resp.Status)
	}
	prettyPrint(decoded)
	return decoded
}

func main() {
	if v := os.Getenv("API_BASE_URL"); v != "" {
		baseURL = v
	}
	jar, _ := cookiejar.New(nil)
	client := &http.Client{Jar: jar, Timeout: 2 * time.Minute}

	color.Cyan("🚀 Starting search API smoke test against %s\n", baseURL)

	step(client, "1. Available models", "GET", "/models", nil)
	step(client, "2. Settings (creates the anonymous user)", "GET", "/settings", nil)
	step(client, "3. Greeting (no search)", "POST", "/chat", map[string]interface{}{"message": "안녕하세요"})

	answer := step(client, "4. Realtime question", "POST", "/chat", map[string]interface{}{
		"message":      "오늘 서울 날씨 어때?",
		"search_scope": "news",
	})
	convID, _ := answer["conversation_id"].(string)

	step(client, "5. Current conversation", "GET", "/conversation", nil)
	step(client, "6. Conversation list", "GET", "/conversations/list?page=1&per_page=5", nil)

	if convID == "" {
		color.Red("Skipping favorite/delete: no conversation id returned")
		return
	}
	step(client, "7. Toggle favorite", "POST", "/conversations/"+convID+"/favorite", nil)
	step(client, "8. Delete conversation", "DELETE", "/conversations/"+convID, nil)
	step(client, "9. Empty message is rejected", "POST", "/chat", map[string]interface{}{"message": "   "})

	color.Cyan("\n✅ Smoke test finished")
}
