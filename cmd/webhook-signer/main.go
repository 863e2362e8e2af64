// webhook-signer is a development tool that signs a payload with the shared
// secret and POSTs it to a receiver, the same way the telephony provider
// would.
package main

import (
	"bytes"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/voicelinehq/call-webhooks-api/internal/signature"
)

func main() {
	url := flag.String("url", "http://localhost:8080/webhook", "receiver URL")
	secret := flag.String("secret", os.Getenv("WEBHOOK_SECRET"), "shared signing secret")
	body := flag.String("body", `{"type":"call_initiation_failure","data":{"agent_id":"a1"}}`, "payload to sign and send")
	file := flag.String("file", "", "read the payload from a file instead of -body")
	flag.Parse()

	if *secret == "" {
		log.Fatal("no secret: pass -secret or set WEBHOOK_SECRET")
	}

	payload := []byte(*body)
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			log.Fatalf("failed to read payload file: %v", err)
		}
		payload = data
	}

	header := signature.Header(*secret, time.Now().Unix(), payload)
	log.Printf("signing header: %s", header)

	req, err := http.NewRequest(http.MethodPost, *url, bytes.NewBuffer(payload))
	if err != nil {
		log.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Signature", header)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	log.Printf("%s: %s", resp.Status, respBody)
}
