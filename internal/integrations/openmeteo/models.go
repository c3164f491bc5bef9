package openmeteo

// forecastResponse почасовой прогноз Open-Meteo
type forecastResponse struct {
	Hourly struct {
		Time          []string  `json:"time"`
		Temperature2m []float64 `json:"temperature_2m"`
		WindSpeed10m  []float64 `json:"wind_speed_10m"`
		Precipitation []float64 `json:"precipitation"`
		CloudCover    []int     `json:"cloud_cover"`
	} `json:"hourly"`
}

// errorResponse модель ошибки Open-Meteo
type errorResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}
