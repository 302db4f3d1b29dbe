package i18n

// Translation keys. Every key must exist in every language table;
// TestTablesComplete enforces this.
const (
	KeyPlaceholder = "placeholder"
	KeyWorld       = "world"
	KeyHumidity    = "humidity"
	KeyWind        = "wind"
	KeyChart       = "chart"
	KeyAir         = "air"
	KeyForecast    = "forecast"
	KeyPM10        = "pm10"
	KeyPM25        = "pm25"
	KeyLoading     = "loading"
	KeyView        = "view"
	KeyNoResults   = "noResults"

	KeyCityNotFound    = "cityNotFound"
	KeyLocationFailed  = "locationFailed"
	KeyLocationDenied  = "locationDenied"
	KeyLocationTimeout = "locationTimeout"

	KeyAirGood     = "airGood"
	KeyAirFair     = "airFair"
	KeyAirModerate = "airModerate"
	KeyAirPoor     = "airPoor"
	KeyAirVeryPoor = "airVeryPoor"
	KeyAirUnknown  = "airUnknown"

	KeyAirGoodDesc     = "airGoodDesc"
	KeyAirFairDesc     = "airFairDesc"
	KeyAirModerateDesc = "airModerateDesc"
	KeyAirPoorDesc     = "airPoorDesc"
	KeyAirVeryPoorDesc = "airVeryPoorDesc"
	KeyAirUnknownDesc  = "airUnknownDesc"
)

var tables = map[Language]map[string]string{
	Korean: {
		KeyPlaceholder: "도시 검색 (예: Seoul)",
		KeyWorld:       "세계 날씨",
		KeyHumidity:    "습도",
		KeyWind:        "풍속",
		KeyChart:       "시간별 기온",
		KeyAir:         "대기질",
		KeyForecast:    "주간 예보",
		KeyPM10:        "미세먼지 (PM10)",
		KeyPM25:        "초미세먼지 (PM2.5)",
		KeyLoading:     "세계 날씨 로딩 중...",
		KeyView:        "온도",
		KeyNoResults:   "검색 결과가 없습니다. 영어로 검색해보세요.",

		KeyCityNotFound:    "도시를 찾을 수 없습니다.",
		KeyLocationFailed:  "위치 정보를 불러올 수 없습니다.",
		KeyLocationDenied:  "위치 권한이 필요합니다.",
		KeyLocationTimeout: "위치 확인 시간이 초과되었습니다.",

		KeyAirGood:     "좋음",
		KeyAirFair:     "보통",
		KeyAirModerate: "주의",
		KeyAirPoor:     "나쁨",
		KeyAirVeryPoor: "매우 나쁨",
		KeyAirUnknown:  "-",

		KeyAirGoodDesc:     "공기가 맑아요! 산책하기 좋은 날입니다.",
		KeyAirFairDesc:     "무난한 날씨예요.",
		KeyAirModerateDesc: "마스크를 챙기세요.",
		KeyAirPoorDesc:     "외출을 자제하세요.",
		KeyAirVeryPoorDesc: "위험! 나가지 마세요.",
		KeyAirUnknownDesc:  "-",
	},
	English: {
		KeyPlaceholder: "Search City (e.g., Seoul)",
		KeyWorld:       "World Weather",
		KeyHumidity:    "Humidity",
		KeyWind:        "Wind Speed",
		KeyChart:       "Hourly Temperature",
		KeyAir:         "Air Quality",
		KeyForecast:    "Weekly Forecast",
		KeyPM10:        "Fine Dust (PM10)",
		KeyPM25:        "Ultra-fine Dust (PM2.5)",
		KeyLoading:     "Loading...",
		KeyView:        "Temp",
		KeyNoResults:   "No results found. Try searching in English.",

		KeyCityNotFound:    "City not found.",
		KeyLocationFailed:  "Could not determine your location.",
		KeyLocationDenied:  "Location permission is required.",
		KeyLocationTimeout: "Timed out waiting for your location.",

		KeyAirGood:     "Good",
		KeyAirFair:     "Fair",
		KeyAirModerate: "Moderate",
		KeyAirPoor:     "Poor",
		KeyAirVeryPoor: "Very Poor",
		KeyAirUnknown:  "-",

		KeyAirGoodDesc:     "Air is clean! Good for a walk.",
		KeyAirFairDesc:     "It's okay.",
		KeyAirModerateDesc: "Wear a mask.",
		KeyAirPoorDesc:     "Avoid going out.",
		KeyAirVeryPoorDesc: "Danger! Stay inside.",
		KeyAirUnknownDesc:  "-",
	},
}

// koreanCityNames maps canonical English names of the world-panel cities to
// their Korean names.
var koreanCityNames = map[string]string{
	"New York":  "뉴욕",
	"London":    "런던",
	"Tokyo":     "도쿄",
	"Paris":     "파리",
	"Sydney":    "시드니",
	"Dubai":     "두바이",
	"Singapore": "싱가포르",
	"Berlin":    "베를린",
	"Seoul":     "서울",
}
