package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tifye/climateclock/scenario"
)

type webhookBody struct {
	Content string `json:"content"`
}

// notifyWin pings the configured webhook once per win edge.
func notifyWin(ctx context.Context, webhookURL string, difficulty scenario.Difficulty) error {
	body := webhookBody{Content: fmt.Sprintf("Challenge won on %s difficulty", difficulty)}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %s", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", webhookURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook res: %s", err)
	}
	res.Body.Close()
	return nil
}
