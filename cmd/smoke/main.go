package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/agenthands/kgquiz/internal/core/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	baseURL := os.Getenv("SMOKE_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	client := &http.Client{Timeout: 2 * time.Minute}

	fmt.Println("Starting smoke test against", baseURL)

	fmt.Println("1. Health check...")
	if _, err := get(client, baseURL+"/healthz"); err != nil {
		fail("health check", err)
	}
	fmt.Println("PASSED: health check")

	fmt.Println("2. Random question...")
	body, err := get(client, baseURL+"/api/random")
	if err != nil {
		fail("random question", err)
	}
	var q model.Question
	if err := json.Unmarshal(body, &q); err != nil {
		fail("random question", err)
	}
	if err := check(q); err != nil {
		fail("random question", err)
	}
	fmt.Printf("PASSED: %s (%s; %v)\n", q.Text, q.CorrectAnswer, q.AlternativeAnswers)

	fmt.Println("3. num=2 still yields one question...")
	body, err = get(client, baseURL+"/api/random?num=2")
	if err != nil {
		fail("num", err)
	}
	q = model.Question{}
	if err := json.Unmarshal(body, &q); err != nil {
		fail("num", err)
	}
	if err := check(q); err != nil {
		fail("num", err)
	}
	fmt.Println("PASSED: num")
}

func get(client *http.Client, url string) ([]byte, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, body)
	}
	return body, nil
}

func check(q model.Question) error {
	if q.Text == "" || q.CorrectAnswer == "" {
		return fmt.Errorf("incomplete question %+v", q)
	}
	if len(q.AlternativeAnswers) != 3 {
		return fmt.Errorf("expected 3 alternative answers, got %d", len(q.AlternativeAnswers))
	}
	return nil
}

func fail(step string, err error) {
	fmt.Printf("FAILED: %s: %v\n", step, err)
	os.Exit(1)
}
