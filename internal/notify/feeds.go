package notify

// Static feed snapshots shown alongside notifications. These are
// placeholders for external feeds; nothing here fetches live data.

// CalendarEvent is one entry in the calendar feed.
type CalendarEvent struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"` // YYYY-MM-DD
	Time  string `json:"time,omitempty"`
}

// WeatherSnapshot is the current-conditions feed.
type WeatherSnapshot struct {
	Location  string `json:"location"`
	TempC     int    `json:"tempC"`
	HighC     int    `json:"highC"`
	LowC      int    `json:"lowC"`
	Condition string `json:"condition"`
}

// StockQuote is one entry in the stocks feed.
type StockQuote struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Change float64 `json:"change"`
}

// CalendarEvents returns the calendar feed snapshot.
func (s *Store) CalendarEvents() []CalendarEvent {
	return []CalendarEvent{
		{ID: "cal-1", Title: "Design review", Date: "2026-08-31", Time: "10:00"},
		{ID: "cal-2", Title: "Team standup", Date: "2026-09-01", Time: "09:30"},
		{ID: "cal-3", Title: "Release cut", Date: "2026-09-04"},
	}
}

// Weather returns the weather feed snapshot.
func (s *Store) Weather() WeatherSnapshot {
	return WeatherSnapshot{
		Location:  "San Francisco",
		TempC:     18,
		HighC:     21,
		LowC:      13,
		Condition: "Partly cloudy",
	}
}

// Stocks returns the stocks feed snapshot.
func (s *Store) Stocks() []StockQuote {
	return []StockQuote{
		{Symbol: "AAPL", Name: "Apple Inc.", Price: 247.10, Change: 1.32},
		{Symbol: "GOOG", Name: "Alphabet Inc.", Price: 201.55, Change: -0.84},
		{Symbol: "NVDA", Name: "NVIDIA Corp.", Price: 183.72, Change: 2.15},
	}
}
