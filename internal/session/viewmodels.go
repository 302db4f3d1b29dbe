package session

import (
	"fmt"
	"math"

	"github.com/skycastapp/skycast/internal/airquality"
	"github.com/skycastapp/skycast/internal/forecast"
	"github.com/skycastapp/skycast/internal/i18n"
	"github.com/skycastapp/skycast/internal/units"
	"github.com/skycastapp/skycast/internal/weather"
)

// WeatherViewModel is the render-ready current conditions card.
type WeatherViewModel struct {
	// CityName is the localized city plus resolved country name, e.g.
	// "서울, 대한민국".
	CityName string `json:"city_name"`

	Description string `json:"description"`
	Icon        string `json:"icon"`
	Glyph       string `json:"glyph"`

	// Temp is the display temperature rounded to the nearest integer.
	Temp int `json:"temp"`

	HumidityPct int `json:"humidity_pct"`

	// WindSpeed is rounded to one decimal; WindUnit is its label.
	WindSpeed float64 `json:"wind_speed"`
	WindUnit  string  `json:"wind_unit"`
}

// AirQualityViewModel is the render-ready air quality card. When the feed is
// unavailable it is an explicit placeholder rather than absent.
type AirQualityViewModel struct {
	Available   bool            `json:"available"`
	Tier        airquality.Tier `json:"tier"`
	Label       string          `json:"label"`
	Description string          `json:"description"`

	// Rounded particulate readings in µg/m³.
	PM10 int `json:"pm10"`
	PM25 int `json:"pm2_5"`
}

// DailyViewModel is one entry of the five-day forecast strip.
type DailyViewModel struct {
	// DateLabel is MM/DD in the city's calendar.
	DateLabel string `json:"date_label"`

	Icon string `json:"icon"`

	// Display-unit temperatures, rounded.
	Min int `json:"min"`
	Max int `json:"max"`
}

// ChartPoint is one point of the hourly temperature chart.
type ChartPoint struct {
	Hour        int    `json:"hour"`
	Glyph       string `json:"glyph"`
	Description string `json:"description"`
	Temp        int    `json:"temp"`
}

// HourlyChartViewModel is the chart series plus its padded Y-axis scale,
// both in display units.
type HourlyChartViewModel struct {
	Points   []ChartPoint `json:"points"`
	ScaleMin int          `json:"scale_min"`
	ScaleMax int          `json:"scale_max"`
}

// WorldCityViewModel is one row of the world weather panel. A failed fetch
// yields a placeholder row instead of dropping the city.
type WorldCityViewModel struct {
	// Name is the canonical English city name used for follow-up loads.
	Name string `json:"name"`

	DisplayName string `json:"display_name"`
	Icon        string `json:"icon"`
	Temp        int    `json:"temp"`
	OK          bool   `json:"ok"`
}

// LoadResult carries all view models produced by one load. Air is always
// present (placeholder on failure); Daily and Chart are nil when the
// forecast feed failed, telling the renderer to keep what it has.
type LoadResult struct {
	Weather WeatherViewModel      `json:"weather"`
	Air     AirQualityViewModel   `json:"air"`
	Daily   []DailyViewModel      `json:"daily,omitempty"`
	Chart   *HourlyChartViewModel `json:"chart,omitempty"`
}

// LoadError is a user-facing failure with a message localized to the
// language active when the load was issued.
type LoadError struct {
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	return e.Message
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func roundTemp(celsius float64, sys units.System) int {
	return int(math.Round(units.DisplayTemp(celsius, sys)))
}

func buildWeatherView(snap *weather.Snapshot, sys units.System, lang i18n.Language) WeatherViewModel {
	cityName := i18n.CityName(snap.Location.Name, lang)
	if country := i18n.CountryName(snap.Location.CountryCode, lang); country != "" {
		cityName = fmt.Sprintf("%s, %s", cityName, country)
	}

	speed, label := units.DisplaySpeed(snap.WindSpeedMS, sys)

	return WeatherViewModel{
		CityName:    cityName,
		Description: snap.Description,
		Icon:        snap.Condition.Icon(),
		Glyph:       snap.Condition.Glyph(),
		Temp:        roundTemp(snap.TempC, sys),
		HumidityPct: snap.HumidityPct,
		WindSpeed:   math.Round(speed*10) / 10,
		WindUnit:    label,
	}
}

func buildAirView(sample *airquality.Sample, lang i18n.Language) AirQualityViewModel {
	if sample == nil {
		return airPlaceholder(lang)
	}

	tier := airquality.Classify(sample.Index)
	return AirQualityViewModel{
		Available:   true,
		Tier:        tier,
		Label:       i18n.MustTranslate(tier.Key(), lang),
		Description: i18n.MustTranslate(tier.DescKey(), lang),
		PM10:        int(math.Round(sample.PM10)),
		PM25:        int(math.Round(sample.PM25)),
	}
}

func airPlaceholder(lang i18n.Language) AirQualityViewModel {
	return AirQualityViewModel{
		Available:   false,
		Tier:        airquality.TierUnknown,
		Label:       i18n.MustTranslate(airquality.TierUnknown.Key(), lang),
		Description: i18n.MustTranslate(airquality.TierUnknown.DescKey(), lang),
	}
}

func buildDailyViews(summaries []forecast.DailySummary, sys units.System) []DailyViewModel {
	views := make([]DailyViewModel, 0, len(summaries))
	for _, day := range summaries {
		views = append(views, DailyViewModel{
			DateLabel: day.Date.Format("01/02"),
			Icon:      day.Condition.Icon(),
			Min:       roundTemp(day.MinC, sys),
			Max:       roundTemp(day.MaxC, sys),
		})
	}
	return views
}

// buildChartView converts the Celsius series to display units and recomputes
// the padded scale on the converted, rounded values so the plot never
// touches its edges in either unit system.
func buildChartView(series forecast.HourlySeries, sys units.System) *HourlyChartViewModel {
	if len(series.Points) == 0 {
		return &HourlyChartViewModel{}
	}

	points := make([]ChartPoint, 0, len(series.Points))
	minT := roundTemp(series.Points[0].TempC, sys)
	maxT := minT
	for _, p := range series.Points {
		temp := roundTemp(p.TempC, sys)
		if temp < minT {
			minT = temp
		}
		if temp > maxT {
			maxT = temp
		}
		points = append(points, ChartPoint{
			Hour:        p.Hour,
			Glyph:       p.Glyph,
			Description: p.Description,
			Temp:        temp,
		})
	}

	return &HourlyChartViewModel{
		Points:   points,
		ScaleMin: minT - 5,
		ScaleMax: maxT + 5,
	}
}
