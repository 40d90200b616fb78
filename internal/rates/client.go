// Package rates реализует клиент внешнего оракула курсов валют: ежедневный
// JSON снапшот по неаутентифицированному HTTPS GET.
package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

const DefaultBaseURL = "https://www.cbr-xml-daily.ru/daily_json.js"

const defaultTimeout = 10 * time.Second

type Client struct {
	url        string
	currency   string
	httpClient *http.Client
}

func New(url, currency string) *Client {
	return &Client{
		url:        url,
		currency:   currency,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

type snapshot struct {
	Valute map[string]struct {
		Value decimal.Decimal `json:"Value"`
	} `json:"Valute"`
}

// Current возвращает текущий курс настроенной валюты. Любая ошибка (сеть,
// статус, парсинг, отсутствие валюты в снапшоте) возвращается вызывающему -
// решение о сохранении или откате значения принимает он.
//
//nolint:nonamedreturns
func (c *Client) Current(ctx context.Context) (rate decimal.Decimal, err error) {
	req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if reqErr != nil {
		return decimal.Zero, fmt.Errorf("create request: %s", reqErr.Error())
	}

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return decimal.Zero, fmt.Errorf("do request: %s", doErr.Error())
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return decimal.Zero, fmt.Errorf("read response: %s", readErr.Error())
	}

	var snap snapshot
	if jsonErr := json.Unmarshal(body, &snap); jsonErr != nil {
		return decimal.Zero, fmt.Errorf("parse response: %s", jsonErr.Error())
	}

	valute, ok := snap.Valute[c.currency]
	if !ok {
		return decimal.Zero, fmt.Errorf("currency `%s` is missing in snapshot", c.currency)
	}
	return valute.Value, nil
}
