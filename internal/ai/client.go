package ai

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	requestTimeout = 10 * time.Second
	maxTokens      = 1024
)

var apiHTTPClient = resty.New().
	SetTimeout(requestTimeout).
	SetHeader("Content-Type", "application/json")

func checkStatus(provider string, resp *resty.Response) error {
	if resp.IsError() {
		return fmt.Errorf("%s api error: %d - %s", provider, resp.StatusCode(), resp.String())
	}
	return nil
}
