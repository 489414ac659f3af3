package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"folio-gate/domain/chat"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Config defines the client-side environment variables.
type Config struct {
	ServerURL string        `env:"CHAT_SERVER_URL,default=http://localhost:8080"`
	Timeout   time.Duration `env:"CHAT_CLIENT_TIMEOUT,default=45s"`
	LogLevel  string        `env:"LOG_LEVEL,default=WARN"`
}

type replyBody struct {
	Response string `json:"response"`
	Usage    *struct {
		Tokens int `json:"tokens"`
	} `json:"usage"`
	Error      string `json:"error"`
	Code       string `json:"code"`
	RetryAfter *int   `json:"retryAfter"`
}

var (
	you       = color.New(color.FgCyan, color.OpBold)
	assistant = color.New(color.FgGreen)
	rejected  = color.New(color.BgBlack, color.FgRed)
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

// run reads prompts from stdin and keeps the session history until EOF or Ctrl+C.
func run() (int, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := &http.Client{Timeout: config.Timeout}
	endpoint := strings.TrimRight(config.ServerURL, "/") + "/api/chat"
	exchange := chat.NewExchange()

	fmt.Println(color.New(color.BgBlack, color.FgGreen).Render(fmt.Sprintf(" Connected to %s (Ctrl+D to quit) ", endpoint)))
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		fmt.Print(you.Render("you> "))
		var line string
		select {
		case <-ctx.Done():
			fmt.Println()
			printSummary(exchange)
			return exitOK, nil
		case l, ok := <-lines:
			if !ok {
				fmt.Println()
				printSummary(exchange)
				return exitOK, nil
			}
			line = l
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		exchange.Ask(line, time.Now())
		body, err := send(ctx, client, endpoint, line)
		if err != nil {
			if ctx.Err() != nil {
				return exitOK, nil
			}
			log.Error("Request failed", "error", err)
			return exitRuntime, err
		}
		if body.Error != "" {
			msg := fmt.Sprintf(" %s (%s) ", body.Error, body.Code)
			if body.RetryAfter != nil {
				msg += fmt.Sprintf("retry in %s ", time.Duration(*body.RetryAfter)*time.Second)
			}
			fmt.Println(rejected.Render(msg))
			continue
		}

		reply := chat.Reply{Text: body.Response}
		if body.Usage != nil {
			reply.TokenCount = &body.Usage.Tokens
		}
		exchange.Answer(reply, time.Now())
		fmt.Println(assistant.Render(body.Response))
	}
}

func send(ctx context.Context, client *http.Client, endpoint, prompt string) (replyBody, error) {
	payload, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return replyBody{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return replyBody{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return replyBody{}, err
	}
	defer resp.Body.Close()

	var body replyBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return replyBody{}, fmt.Errorf("decoding %d response: %w", resp.StatusCode, err)
	}
	return body, nil
}

func printSummary(exchange *chat.Exchange) {
	fmt.Printf("%d turns, %d tokens\n", exchange.Len(), exchange.TotalTokens())
}
