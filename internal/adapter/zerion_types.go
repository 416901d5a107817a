package adapter

// Wire types for the Zerion API. Only the fields the normalizer reads are
// declared; everything else in the payloads is ignored.

// zerionPortfolioResponse is the /portfolio payload
type zerionPortfolioResponse struct {
	Data struct {
		Attributes zerionPortfolioAttributes `json:"attributes"`
	} `json:"data"`
}

// zerionPortfolioAttributes carries the portfolio total in several shapes
// depending on API version. The extractor tries them in order.
type zerionPortfolioAttributes struct {
	TotalBalance string `json:"total_balance"`
	Total        *struct {
		Quantity string  `json:"quantity"`
		Value    float64 `json:"value"`
	} `json:"total"`
	PositionsDistributionByType *zerionDistribution `json:"positions_distribution_by_type"`
}

// zerionDistribution partitions portfolio value by custody type
type zerionDistribution struct {
	Wallet    float64 `json:"wallet"`
	Staked    float64 `json:"staked"`
	Deposited float64 `json:"deposited"`
	Locked    float64 `json:"locked"`
}

// zerionPositionsResponse is the /positions payload
type zerionPositionsResponse struct {
	Data []zerionPosition `json:"data"`
}

// zerionPosition is a single fungible position
type zerionPosition struct {
	Attributes struct {
		Name         string `json:"name"`
		PositionType string `json:"position_type"`
		Quantity     struct {
			Float float64 `json:"float"`
		} `json:"quantity"`
		Value   *float64 `json:"value"`
		Price   float64  `json:"price"`
		Changes *struct {
			Percent1d float64 `json:"percent_1d"`
		} `json:"changes"`
		FungibleInfo struct {
			Name   string `json:"name"`
			Symbol string `json:"symbol"`
			Icon   *struct {
				URL string `json:"url"`
			} `json:"icon"`
			Flags struct {
				Verified bool `json:"verified"`
			} `json:"flags"`
		} `json:"fungible_info"`
		Flags struct {
			Displayable bool `json:"displayable"`
			IsTrash     bool `json:"is_trash"`
		} `json:"flags"`
	} `json:"attributes"`
}

// zerionPnLResponse is the /pnl payload
type zerionPnLResponse struct {
	Data struct {
		Attributes struct {
			TotalProfit           float64 `json:"total_profit"`
			TotalProfitPercent    float64 `json:"total_profit_percent"`
			TotalRealizedProfit   float64 `json:"total_realized_profit"`
			TotalUnrealizedProfit float64 `json:"total_unrealized_profit"`
		} `json:"attributes"`
	} `json:"data"`
}

// zerionTransactionsResponse is the /transactions payload
type zerionTransactionsResponse struct {
	Data []zerionTransaction `json:"data"`
}

// zerionTransaction is a single wallet transaction
type zerionTransaction struct {
	Attributes struct {
		OperationType string `json:"operation_type"`
		Hash          string `json:"hash"`
		MinedAt       string `json:"mined_at"`
		Status        string `json:"status"`
		Fee           *struct {
			Value float64 `json:"value"`
		} `json:"fee"`
		Transfers []struct {
			FungibleInfo *struct {
				Name   string `json:"name"`
				Symbol string `json:"symbol"`
			} `json:"fungible_info"`
			Quantity *struct {
				Float float64 `json:"float"`
			} `json:"quantity"`
			Value     *float64 `json:"value"`
			Direction string   `json:"direction"`
		} `json:"transfers"`
	} `json:"attributes"`
}

// zerionChartResponse is the /charts/{period} payload. Each point is a
// [timestamp, value] pair.
type zerionChartResponse struct {
	Data struct {
		Attributes struct {
			Points [][2]float64 `json:"points"`
		} `json:"attributes"`
	} `json:"data"`
}
