package oddsapi

import (
	"time"

	"github.com/jmcauliffe/gamepulse/internal/domain/expectation"
)

// pickStrategy nominates a bookmaker for an event, or reports it has no
// candidate. Strategies run in a fixed order and the first hit wins.
type pickStrategy func(event Event, required, preferred []string) (Bookmaker, bool)

var pickStrategies = []pickStrategy{
	pickPreferredComplete,
	pickFirstComplete,
	pickFirstAny,
}

// normalizeEvent flattens one provider event into an expectation record.
// It returns nil when the event carries no usable market data, which is an
// expected outcome rather than an error.
func normalizeEvent(event Event, required, preferred []string, capturedAt time.Time) *expectation.Expectation {
	if len(event.Bookmakers) == 0 {
		return nil
	}

	var chosen Bookmaker
	found := false
	for _, strategy := range pickStrategies {
		if pick, ok := strategy(event, required, preferred); ok {
			chosen = pick
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	usable := requiredMarketsOf(chosen, required)
	if len(usable) == 0 {
		return nil
	}

	out := &expectation.Expectation{
		SportKey:        event.SportKey,
		ExternalEventID: event.ID,
		CommenceTime:    event.CommenceTime,
		HomeTeam:        event.HomeTeam,
		AwayTeam:        event.AwayTeam,
		Bookmaker:       chosen.Key,
		Source:          sourceName,
		CapturedAt:      capturedAt,
	}
	if market, ok := usable[marketSpreads]; ok {
		extractSpreads(out, market, event.HomeTeam)
	}
	if market, ok := usable[marketTotals]; ok {
		extractTotals(out, market)
	}
	return out
}

// pickPreferredComplete scans the preferred bookmaker keys in order for one
// offering every required market.
func pickPreferredComplete(event Event, required, preferred []string) (Bookmaker, bool) {
	for _, key := range preferred {
		for _, bookmaker := range event.Bookmakers {
			if bookmaker.Key == key && offersAll(bookmaker, required) {
				return bookmaker, true
			}
		}
	}
	return Bookmaker{}, false
}

// pickFirstComplete takes the first bookmaker, in provider order, offering
// every required market.
func pickFirstComplete(event Event, required, _ []string) (Bookmaker, bool) {
	for _, bookmaker := range event.Bookmakers {
		if offersAll(bookmaker, required) {
			return bookmaker, true
		}
	}
	return Bookmaker{}, false
}

// pickFirstAny takes the first bookmaker regardless of coverage; partial
// market data is acceptable at this point.
func pickFirstAny(event Event, _, _ []string) (Bookmaker, bool) {
	if len(event.Bookmakers) == 0 {
		return Bookmaker{}, false
	}
	return event.Bookmakers[0], true
}

func offersAll(bookmaker Bookmaker, required []string) bool {
	for _, key := range required {
		if _, ok := findMarket(bookmaker, key); !ok {
			return false
		}
	}
	return true
}

func requiredMarketsOf(bookmaker Bookmaker, required []string) map[string]Market {
	out := make(map[string]Market, len(required))
	for _, key := range required {
		if market, ok := findMarket(bookmaker, key); ok {
			out[key] = market
		}
	}
	return out
}

func findMarket(bookmaker Bookmaker, key string) (Market, bool) {
	for _, market := range bookmaker.Markets {
		if market.Key == key {
			return market, true
		}
	}
	return Market{}, false
}

// The outcome named after the home team carries the home spread; the other
// side is the away spread.
func extractSpreads(out *expectation.Expectation, market Market, homeTeam string) {
	for _, outcome := range market.Outcomes {
		if outcome.Point == nil {
			continue
		}
		point := *outcome.Point
		if outcome.Name == homeTeam {
			out.SpreadHome = &point
		} else {
			out.SpreadAway = &point
		}
	}
}

func extractTotals(out *expectation.Expectation, market Market) {
	for _, outcome := range market.Outcomes {
		price := outcome.Price
		switch outcome.Name {
		case outcomeOver:
			out.TotalOverPrice = &price
			if outcome.Point != nil {
				point := *outcome.Point
				out.TotalValue = &point
			}
		case outcomeUnder:
			out.TotalUnderPrice = &price
			if out.TotalValue == nil && outcome.Point != nil {
				point := *outcome.Point
				out.TotalValue = &point
			}
		}
	}
}
