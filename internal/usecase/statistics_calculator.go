package usecase

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"trade_analytics/internal/domain"
)

// StatisticsCalculator turns a set of trades into one statistics row per calendar period.
type StatisticsCalculator struct {
	pl domain.PLCalculator
}

func NewStatisticsCalculator(pl domain.PLCalculator) (*StatisticsCalculator, error) {
	if pl == nil {
		return nil, errors.New("pl calculator required")
	}
	return &StatisticsCalculator{pl: pl}, nil
}

// Calculate walks every period from the one holding the earliest open to the one holding the
// latest open or close. Trades count as opened in the bucket of their open date and as closed
// in the bucket of their close date.
func (c *StatisticsCalculator) Calculate(trades []domain.Trade, interval domain.StatisticsInterval) ([]domain.Statistics, error) {
	stats := make([]domain.Statistics, 0)
	if len(trades) == 0 {
		return stats, nil
	}

	firstPeriod := domain.BucketStart(firstDate(trades), interval)
	lastPeriod := domain.BucketStart(lastDate(trades), interval)

	cumulProfitLoss := decimal.Zero
	id := 1

	for period := firstPeriod; !period.After(lastPeriod); period = interval.Next(period) {
		opened := tradesOpenedFor(trades, period, interval)
		closed := tradesClosedFor(trades, period, interval)

		var numWinners, numLosers int
		winnersProfit := decimal.Zero
		losersLoss := decimal.Zero
		bigWinner := decimal.Zero
		bigLoser := decimal.Zero

		for _, trade := range closed {
			pl, err := c.pl.PortfolioBasePL(trade)
			if err != nil {
				return nil, fmt.Errorf("trade %d profit/loss: %w", trade.ID, err)
			}

			if !pl.IsNegative() {
				numWinners++
				winnersProfit = winnersProfit.Add(pl)
				if pl.GreaterThan(bigWinner) {
					bigWinner = pl
				}
			} else {
				numLosers++
				losersLoss = losersLoss.Add(pl)
				if pl.LessThan(bigLoser) {
					bigLoser = pl
				}
			}
		}

		pctWinners := 0.0
		if len(closed) != 0 {
			pctWinners = float64(numWinners) / float64(len(closed)) * 100.0
		}
		profitLoss := winnersProfit.Add(losersLoss)
		cumulProfitLoss = cumulProfitLoss.Add(profitLoss)

		stats = append(stats, domain.Statistics{
			ID:              id,
			PeriodDate:      period,
			NumExecs:        executionsFor(trades, period, interval),
			NumOpened:       len(opened),
			NumClosed:       len(closed),
			NumWinners:      numWinners,
			NumLosers:       numLosers,
			PctWinners:      round2(pctWinners),
			BigWinner:       bigWinner,
			BigLoser:        bigLoser,
			WinnersProfit:   winnersProfit,
			LosersLoss:      losersLoss,
			ProfitLoss:      profitLoss,
			CumulProfitLoss: cumulProfitLoss,
		})
		id++
	}

	return stats, nil
}

func firstDate(trades []domain.Trade) time.Time {
	first := trades[0].OpenDate
	for _, t := range trades {
		if t.OpenDate.Before(first) {
			first = t.OpenDate
		}
	}
	return first
}

func lastDate(trades []domain.Trade) time.Time {
	last := trades[0].OpenDate
	for _, t := range trades {
		if t.OpenDate.After(last) {
			last = t.OpenDate
		}
		if t.CloseDate != nil && t.CloseDate.After(last) {
			last = *t.CloseDate
		}
	}
	return last
}

func tradesOpenedFor(trades []domain.Trade, period time.Time, interval domain.StatisticsInterval) []domain.Trade {
	var out []domain.Trade
	for _, t := range trades {
		if domain.BucketStart(t.OpenDate, interval).Equal(period) {
			out = append(out, t)
		}
	}
	return out
}

func tradesClosedFor(trades []domain.Trade, period time.Time, interval domain.StatisticsInterval) []domain.Trade {
	var out []domain.Trade
	for _, t := range trades {
		if t.CloseDate == nil {
			continue
		}
		if domain.BucketStart(*t.CloseDate, interval).Equal(period) {
			out = append(out, t)
		}
	}
	return out
}

// executionsFor counts distinct executions filled in the period across all trades.
func executionsFor(trades []domain.Trade, period time.Time, interval domain.StatisticsInterval) int {
	seen := make(map[int64]struct{})
	for _, t := range trades {
		for _, se := range t.SplitExecutions {
			if domain.BucketStart(se.Execution.FillDate, interval).Equal(period) {
				seen[se.Execution.ID] = struct{}{}
			}
		}
	}
	return len(seen)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
