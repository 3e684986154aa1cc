package validator

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"orderbot/internal/gateway/exchange"
	"orderbot/internal/gateway/exchange/exchangetest"
	"orderbot/internal/logger"
	"orderbot/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name      string
		info      *exchange.SymbolInfo
		err       error
		want      Status
		transient bool
		logLevel  string
	}{
		{name: "listed", info: &exchange.SymbolInfo{Symbol: "BTCUSDT", Status: "TRADING"}, want: StatusValid, logLevel: "level=INFO"},
		{name: "absent metadata", info: nil, want: StatusNotFound, logLevel: "level=ERROR"},
		{name: "empty metadata", info: &exchange.SymbolInfo{}, want: StatusNotFound, logLevel: "level=ERROR"},
		{name: "api error", err: &exchange.APIError{Code: -1003, Message: "Too many requests."}, want: StatusRejected, logLevel: "level=ERROR"},
		{name: "network error", err: errors.New("dial tcp: i/o timeout"), want: StatusUnreachable, transient: true, logLevel: "level=ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := new(exchangetest.MockClient)
			client.On("SymbolInfo", mock.Anything, "BTCUSDT").Return(tc.info, tc.err).Once()
			var buf bytes.Buffer
			rec := metrics.NewRecorder()
			v := New(client, logger.New(&buf, "debug"), rec)

			out := v.Validate(context.Background(), "BTCUSDT")

			assert.Equal(t, tc.want, out.Status)
			assert.Equal(t, tc.want == StatusValid, out.Valid())
			assert.Equal(t, tc.transient, out.Transient())
			assert.Equal(t, 1, strings.Count(buf.String(), "\n"), "one log entry per call")
			assert.Contains(t, buf.String(), tc.logLevel)
			n, err := testutil.GatherAndCount(rec.Gatherer(), "orderbot_symbol_validations_total")
			assert.NoError(t, err)
			assert.Equal(t, 1, n)
			client.AssertExpectations(t)
		})
	}
}

func TestValidateNeverPanics(t *testing.T) {
	client := new(exchangetest.MockClient)
	client.On("SymbolInfo", mock.Anything, "BTCUSDT").Run(func(mock.Arguments) {
		panic("decoder blew up")
	})
	v := New(client, nil, nil)

	var out Outcome
	assert.NotPanics(t, func() { out = v.Validate(context.Background(), "BTCUSDT") })
	assert.Equal(t, StatusUnreachable, out.Status)
	assert.False(t, out.Valid())

	out = New(nil, logger.Nop(), nil).Validate(context.Background(), "BTCUSDT")
	assert.Equal(t, StatusUnreachable, out.Status)
}

func TestOutcomeError(t *testing.T) {
	assert.Empty(t, Outcome{Status: StatusValid}.Error())
	assert.Equal(t, "symbol FAKEUSD is not listed", Outcome{Symbol: "FAKEUSD", Status: StatusNotFound}.Error())
	msg := Outcome{Symbol: "BTCUSDT", Status: StatusUnreachable, Err: errors.New("timeout")}.Error()
	assert.Contains(t, msg, "unreachable")
	assert.Contains(t, msg, "timeout")
}
