package domain

import (
	"fmt"
	"strings"
)

// FilterAll is the sentinel filter value meaning "no restriction".
const FilterAll = "ALL"

const maxCodeLength = 16

// StatisticsKey identifies one cached statistics series. Build it with NewStatisticsKey so the
// filter dimensions are normalized and two requests for the same series compare equal.
type StatisticsKey struct {
	ReportID   int64
	Interval   StatisticsInterval
	TradeType  string
	SecType    string
	Currency   string
	Underlying string
}

func NewStatisticsKey(reportID int64, interval StatisticsInterval, tradeType, secType, currency, underlying string) StatisticsKey {
	return StatisticsKey{
		ReportID:   reportID,
		Interval:   interval,
		TradeType:  normalizeCode(tradeType),
		SecType:    normalizeCode(secType),
		Currency:   normalizeCurrency(currency),
		Underlying: normalizeUnderlying(underlying),
	}
}

func (k StatisticsKey) String() string {
	return fmt.Sprintf("%d_%s_%s_%s_%s_%s", k.ReportID, k.Interval, k.TradeType, k.SecType, k.Currency, k.Underlying)
}

// Filter converts the key's dimensions into repository selectors.
func (k StatisticsKey) Filter() TradeFilter {
	return TradeFilter{
		TradeType:  selector(k.TradeType),
		SecType:    selector(k.SecType),
		Currency:   selector(k.Currency),
		Underlying: selector(k.Underlying),
	}
}

func selector(value string) *string {
	if value == "" || value == FilterAll {
		return nil
	}
	v := value
	return &v
}

// normalizeCode upper-cases a broker code such as a trade or security type. Values that cannot
// be a code at all (empty, too long, spaces or punctuation other than . _ -) select ALL.
func normalizeCode(raw string) string {
	value := strings.ToUpper(strings.TrimSpace(raw))
	if value == "" || len(value) > maxCodeLength {
		return FilterAll
	}
	for _, r := range value {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
		default:
			return FilterAll
		}
	}
	return value
}

func normalizeCurrency(raw string) string {
	value := strings.ToUpper(strings.TrimSpace(raw))
	if len(value) != 3 {
		return FilterAll
	}
	for _, r := range value {
		if r < 'A' || r > 'Z' {
			return FilterAll
		}
	}
	return value
}

func normalizeUnderlying(raw string) string {
	value := strings.ToUpper(strings.TrimSpace(raw))
	if value == "" {
		return FilterAll
	}
	return value
}
