package esim

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	routePackageList  = "/api/v1/open/package/list"
	routeOrderProfile = "/api/v1/open/esim/order"
	routeOrderQuery   = "/api/v1/open/esim/query"
	routeBalance      = "/api/v1/open/balance/query"
)

const defaultAPITimeout = 10 * time.Second

// HTTPClient является реализацией интерфейса Client для одного вендора.
// Каждый запрос подписывается по протоколу вендора: заголовки с кодом доступа,
// меткой времени, id запроса и HMAC-SHA256 подписью.
type HTTPClient struct {
	name       string
	baseURL    string
	accessCode string
	secret     string
	httpClient *http.Client
}

func NewHTTPClient(name, baseURL, accessCode, secret string) *HTTPClient {
	return &HTTPClient{
		name:       name,
		baseURL:    baseURL,
		accessCode: accessCode,
		secret:     secret,
		httpClient: &http.Client{Timeout: defaultAPITimeout},
	}
}

func (c *HTTPClient) Name() string {
	return c.name
}

// vendorEnvelope - общий конверт ответа вендора.
type vendorEnvelope struct {
	Success   bool            `json:"success"`
	ErrorCode string          `json:"errorCode"`
	ErrorMsg  string          `json:"errorMsg"`
	Obj       json.RawMessage `json:"obj"`
}

type vendorPackage struct {
	PackageCode  string `json:"packageCode"`
	Name         string `json:"name"`
	Location     string `json:"location"`
	Volume       int64  `json:"volume"`
	Duration     int32  `json:"duration"`
	Price        int64  `json:"price"`
	CurrencyCode string `json:"currencyCode"`
	DataType     string `json:"dataType"`
}

type vendorProfile struct {
	OrderNo      string `json:"orderNo"`
	ICCID        string `json:"iccid"`
	QRCodeURL    string `json:"qrCodeUrl"`
	ActivationAC string `json:"ac"`
	EsimStatus   string `json:"esimStatus"`
}

func (c *HTTPClient) ListPackages(ctx context.Context, filter ListFilter) ([]Package, error) {
	payload := map[string]any{
		"locationCode": filter.Location,
		"type":         string(filter.Type),
	}

	var obj struct {
		PackageList []vendorPackage `json:"packageList"`
	}
	if err := c.post(ctx, routePackageList, payload, &obj); err != nil {
		return nil, fmt.Errorf("listing packages: %w", err)
	}

	var packages = make([]Package, len(obj.PackageList))
	for i, p := range obj.PackageList {
		packages[i] = Package{
			VendorCode: p.PackageCode,
			Name:       p.Name,
			Location:   p.Location,
			VolumeKB:   p.Volume,
			Days:       p.Duration,
			PriceCents: p.Price,
			Currency:   p.CurrencyCode,
			Unlimited:  p.DataType == string(PackageTypeUnlimited),
		}
	}
	return packages, nil
}

func (c *HTTPClient) Purchase(ctx context.Context, vendorCode string, quantity int32) (*PurchaseResult, error) {
	payload := map[string]any{
		"packageCode":   vendorCode,
		"count":         quantity,
		"transactionId": uuid.NewString(),
	}

	var obj vendorProfile
	if err := c.post(ctx, routeOrderProfile, payload, &obj); err != nil {
		return nil, fmt.Errorf("purchasing package `%s`: %w", vendorCode, err)
	}

	return &PurchaseResult{
		OrderRef:       obj.OrderNo,
		ICCID:          obj.ICCID,
		QRPayload:      obj.QRCodeURL,
		ActivationCode: obj.ActivationAC,
	}, nil
}

func (c *HTTPClient) OrderStatus(ctx context.Context, orderRef string) (OrderState, error) {
	payload := map[string]any{"orderNo": orderRef}

	var obj vendorProfile
	if err := c.post(ctx, routeOrderQuery, payload, &obj); err != nil {
		return "", fmt.Errorf("querying order `%s`: %w", orderRef, err)
	}

	switch obj.EsimStatus {
	case "GOT_RESOURCE", "IN_USE", "INSTALLATION":
		return OrderStateCompleted, nil
	case "CANCEL", "UNAVAILABLE":
		return OrderStateFailed, nil
	default:
		return OrderStateProcessing, nil
	}
}

func (c *HTTPClient) Balance(ctx context.Context) (*Balance, error) {
	var obj struct {
		Balance      int64  `json:"balance"`
		CurrencyCode string `json:"currencyCode"`
	}
	if err := c.post(ctx, routeBalance, map[string]any{}, &obj); err != nil {
		return nil, fmt.Errorf("querying balance: %w", err)
	}

	// Вендор отдает баланс в минорных единицах.
	return &Balance{
		Amount:   decimal.New(obj.Balance, -2), //nolint:mnd
		Currency: obj.CurrencyCode,
	}, nil
}

// Ping проверяет доступность вендора запросом баланса: он дешев и проходит
// полную цепочку аутентификации.
func (c *HTTPClient) Ping(ctx context.Context) error {
	if _, err := c.Balance(ctx); err != nil {
		return fmt.Errorf("pinging vendor %s: %w", c.name, err)
	}
	return nil
}

// post выполняет подписанный запрос и разворачивает конверт вендора в out.
//
//nolint:nonamedreturns
func (c *HTTPClient) post(ctx context.Context, route string, payload any, out any) (err error) {
	body, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		return fmt.Errorf("marshal request: %s", marshalErr.Error())
	}

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+route, bytes.NewReader(body))
	if reqErr != nil {
		return fmt.Errorf("create request: %s", reqErr.Error())
	}

	c.signRequest(req)
	req.Header.Set("Content-Type", "application/json")

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return fmt.Errorf("do request: %s", doErr.Error())
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return NewStatusCodeError(c.name, resp.StatusCode)
	}

	respBody, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return fmt.Errorf("read response: %s", readErr.Error())
	}

	var envelope vendorEnvelope
	if jsonErr := json.Unmarshal(respBody, &envelope); jsonErr != nil {
		return fmt.Errorf("parse response: %s", jsonErr.Error())
	}

	if !envelope.Success {
		return &VendorError{Vendor: c.name, Code: envelope.ErrorCode, Message: envelope.ErrorMsg}
	}

	if len(envelope.Obj) > 0 {
		if jsonErr := json.Unmarshal(envelope.Obj, out); jsonErr != nil {
			return fmt.Errorf("parse response obj: %s", jsonErr.Error())
		}
	}
	return nil
}

// signRequest проставляет заголовки подписи: ключованный хэш по коду доступа,
// id запроса и метке времени.
func (c *HTTPClient) signRequest(req *http.Request) {
	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 10)
	requestID := uuid.NewString()

	mac := hmac.New(sha256.New, []byte(c.secret))
	mac.Write([]byte(timestamp + requestID + c.accessCode))
	signature := hex.EncodeToString(mac.Sum(nil))

	req.Header.Set("RT-AccessCode", c.accessCode)
	req.Header.Set("RT-RequestID", requestID)
	req.Header.Set("RT-Timestamp", timestamp)
	req.Header.Set("RT-Signature", signature)
}
