package meadowlark

const (
	forecastBase = "http://www.wunderground.com/US/OR/"
	iconBase     = "http://icons-ak.wxug.com/i/c/k/"
)

// A WeatherLocation is the current conditions at a place the storefront sells trips to.
type WeatherLocation struct {
	Name        string
	ForecastURL string
	IconURL     string
	Weather     string
	Temp        string
}

// Weather is the widget data shown alongside every page.
type Weather struct {
	Locations []WeatherLocation
}

// CurrentWeather reports conditions for Portland, Bend and Manzanita.
//
// TODO: replace with a call to a forecast API once one is contracted.
func CurrentWeather() Weather {
	return Weather{Locations: []WeatherLocation{
		newWeatherLocation("Portland", "cloudy", "Overcast", "54.1 F (12.3 C)"),
		newWeatherLocation("Bend", "partlycloudy", "Partly Cloudy", "55.0 F (12.8 C)"),
		newWeatherLocation("Manzanita", "rain", "Light Rain", "55.0 F (12.8 C)"),
	}}
}

func newWeatherLocation(name, icon, weather, temp string) WeatherLocation {
	return WeatherLocation{
		Name:        name,
		ForecastURL: forecastBase + name + ".html",
		IconURL:     iconBase + icon + ".gif",
		Weather:     weather,
		Temp:        temp,
	}
}
