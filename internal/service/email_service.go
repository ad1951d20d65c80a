package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// EmailService sends transactional mail through the Resend HTTP API.
type EmailService struct {
	apiKey string
	from   string
}

func NewEmailService(apiKey, from string) *EmailService {
	return &EmailService{apiKey: apiKey, from: from}
}

func (s *EmailService) SendPasswordReset(to, token string) error {
	payload := map[string]interface{}{
		"from":    s.from,
		"to":      []string{to},
		"subject": "FitLogic - Password Reset Code",
		"html":    buildResetEmail(token),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", "https://api.resend.com/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("resend http error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("resend api error %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

func buildResetEmail(token string) string {
	return `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family:Arial,sans-serif;background:#f4f4f4;padding:20px;">
  <div style="max-width:480px;margin:0 auto;background:#fff;border-radius:8px;padding:32px;">
    <h2 style="color:#333;">FitLogic Password Reset</h2>
    <p>Hi,</p>
    <p>Use the 6-digit verification code below to reset your password:</p>
    <div style="text-align:center;margin:24px 0;">
      <span style="font-size:36px;font-weight:bold;letter-spacing:8px;color:#65a30d;">` + token + `</span>
    </div>
    <p>This code is valid for <strong>15 minutes</strong>.</p>
    <p>If you did not request this, you can safely ignore this email.</p>
    <hr style="border:none;border-top:1px solid #eee;margin:24px 0;">
    <p style="color:#999;font-size:12px;">The FitLogic Team</p>
  </div>
</body>
</html>`
}
