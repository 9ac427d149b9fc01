package usecase

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"trade_analytics/internal/domain"
)

// TradeCalculator computes realized profit/loss in the portfolio base currency using a static
// rate table (base units per one unit of the trade currency).
type TradeCalculator struct {
	baseCurrency string
	rates        map[string]decimal.Decimal
}

func NewTradeCalculator(baseCurrency string, rates map[string]decimal.Decimal) *TradeCalculator {
	normalized := make(map[string]decimal.Decimal, len(rates))
	for currency, rate := range rates {
		normalized[strings.ToUpper(currency)] = rate
	}
	return &TradeCalculator{
		baseCurrency: strings.ToUpper(baseCurrency),
		rates:        normalized,
	}
}

func (c *TradeCalculator) PortfolioBasePL(trade domain.Trade) (decimal.Decimal, error) {
	pl := decimal.Zero
	for _, se := range trade.SplitExecutions {
		value := se.SplitQuantity.Mul(se.Execution.FillPrice)
		switch se.Execution.Action {
		case domain.ActionSell:
			pl = pl.Add(value)
		case domain.ActionBuy:
			pl = pl.Sub(value)
		default:
			return decimal.Zero, fmt.Errorf("execution %d: unknown action %q", se.Execution.ID, se.Execution.Action)
		}
	}

	multiplier := trade.Multiplier
	if multiplier.IsZero() {
		multiplier = decimal.NewFromInt(1)
	}
	pl = pl.Mul(multiplier)

	rate, err := c.rate(trade.Currency)
	if err != nil {
		return decimal.Zero, err
	}
	return pl.Mul(rate), nil
}

func (c *TradeCalculator) rate(currency string) (decimal.Decimal, error) {
	currency = strings.ToUpper(currency)
	if currency == "" || currency == c.baseCurrency {
		return decimal.NewFromInt(1), nil
	}
	rate, ok := c.rates[currency]
	if !ok {
		return decimal.Zero, fmt.Errorf("no exchange rate %s/%s", currency, c.baseCurrency)
	}
	return rate, nil
}
