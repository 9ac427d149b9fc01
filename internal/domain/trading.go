package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TradeType string

const (
	TradeTypeLong  TradeType = "LONG"
	TradeTypeShort TradeType = "SHORT"
)

type Execution struct {
	ID        int64
	ReportID  int64
	Symbol    string
	Action    OrderAction
	Quantity  decimal.Decimal
	FillDate  time.Time
	FillPrice decimal.Decimal
	Currency  string
}

// SplitExecution is the share of an execution allocated to one trade. The same execution can be
// split across several trades.
type SplitExecution struct {
	ID            int64
	SplitQuantity decimal.Decimal
	FillDate      time.Time
	Execution     Execution
}

type Trade struct {
	ID              int64
	ReportID        int64
	TradeType       TradeType
	SecType         string
	Currency        string
	Underlying      string
	Symbol          string
	Multiplier      decimal.Decimal
	OpenDate        time.Time
	CloseDate       *time.Time
	SplitExecutions []SplitExecution
}

func (t Trade) Closed() bool {
	return t.CloseDate != nil
}

// TradeFilter narrows trade loading. A nil selector means no restriction on that dimension.
type TradeFilter struct {
	TradeType  *string
	SecType    *string
	Currency   *string
	Underlying *string
}

// Statistics is one aggregation row for the period [PeriodDate, interval.Next(PeriodDate)).
type Statistics struct {
	ID              int             `json:"id"`
	PeriodDate      time.Time       `json:"periodDate"`
	NumExecs        int             `json:"numExecs"`
	NumOpened       int             `json:"numOpened"`
	NumClosed       int             `json:"numClosed"`
	NumWinners      int             `json:"numWinners"`
	NumLosers       int             `json:"numLosers"`
	PctWinners      float64         `json:"pctWinners"`
	BigWinner       decimal.Decimal `json:"bigWinner"`
	BigLoser        decimal.Decimal `json:"bigLoser"`
	WinnersProfit   decimal.Decimal `json:"winnersProfit"`
	LosersLoss      decimal.Decimal `json:"losersLoss"`
	ProfitLoss      decimal.Decimal `json:"profitLoss"`
	CumulProfitLoss decimal.Decimal `json:"cumulProfitLoss"`
}

// Notification is published when derived data for a report becomes available.
type Notification struct {
	Topic     string    `json:"topic"`
	ReportID  int64     `json:"reportId"`
	Key       string    `json:"key"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

const TopicReport = "report"
