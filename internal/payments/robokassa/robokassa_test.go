package robokassa

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentURL(t *testing.T) {
	adapter := New("demo", "password_1", "password_2")

	rawURL := adapter.PaymentURL(42, decimal.NewFromInt(1500), "Заказ №7")

	parsed, parseErr := url.Parse(rawURL)
	require.NoError(t, parseErr)

	query := parsed.Query()
	assert.Equal(t, "demo", query.Get("MerchantLogin"))
	assert.Equal(t, "1500.00", query.Get("OutSum"))
	assert.Equal(t, "42", query.Get("InvId"))
	assert.Equal(t, "Заказ №7", query.Get("Description"))
	// MD5("demo:1500.00:42:password_1")
	assert.Equal(t, "6d5c55f19e2bb68d63489c86fc6d31d4", query.Get("SignatureValue"))
	assert.Empty(t, query.Get("IsTest"))
}

func TestPaymentURLDeterministic(t *testing.T) {
	adapter := New("demo", "password_1", "password_2")

	first := adapter.PaymentURL(42, decimal.NewFromInt(1500), "Заказ №7")
	second := adapter.PaymentURL(42, decimal.NewFromInt(1500), "Заказ №7")

	assert.Equal(t, first, second)
}

func TestPaymentURLTestMode(t *testing.T) {
	adapter := New("demo", "password_1", "password_2").SetTestMode(true)

	rawURL := adapter.PaymentURL(42, decimal.NewFromInt(1500), "test")

	parsed, parseErr := url.Parse(rawURL)
	require.NoError(t, parseErr)
	assert.Equal(t, "1", parsed.Query().Get("IsTest"))
}

func TestVerifyResult(t *testing.T) {
	adapter := New("demo", "password_1", "password_2")

	// MD5("1500.00:42:password_2")
	validSignature := "3f8bacb82e781f0cf9673d07726cb809"

	cases := []struct {
		name      string
		signature string
		wantErr   bool
	}{
		{name: "lowercase", signature: validSignature},
		// Провайдер шлет подпись в верхнем регистре.
		{name: "uppercase", signature: strings.ToUpper(validSignature)},
		{name: "wrong signature", signature: "deadbeefdeadbeefdeadbeefdeadbeef", wantErr: true},
		{name: "empty signature", signature: "", wantErr: true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := adapter.VerifyResult(ResultParams{
				OutSum:         "1500.00",
				InvID:          42,
				SignatureValue: c.signature,
			})

			if c.wantErr {
				var sigErr *SignatureError
				require.ErrorAs(t, err, &sigErr)
				assert.Equal(t, int64(42), sigErr.InvID)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestParseResultParams(t *testing.T) {
	cases := []struct {
		name    string
		outSum  string
		invID   string
		wantErr bool
	}{
		{name: "ok", outSum: "1500.00", invID: "42"},
		{name: "bad invoice id", outSum: "1500.00", invID: "abc", wantErr: true},
		{name: "bad out sum", outSum: "15,00", invID: "42", wantErr: true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			params, err := ParseResultParams(c.outSum, c.invID, "sig")

			if c.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.outSum, params.OutSum)
			assert.Equal(t, int64(42), params.InvID)
			assert.True(t, params.Amount().Equal(decimal.NewFromInt(1500)))
		})
	}
}

func TestSuccessResponse(t *testing.T) {
	assert.Equal(t, "OK42", SuccessResponse(42))
}
