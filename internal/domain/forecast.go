package domain

// ForecastKind enumerates the supported KMA forecast products.
type ForecastKind int

const (
	ForecastShort ForecastKind = iota
	ForecastUltraShort
	ForecastUltraShortActual

	forecastKindCount
)

// ForecastType describes one forecast product as presented to the user.
type ForecastType struct {
	Kind        ForecastKind `json:"-"`
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
}

// IsZero reports whether no forecast type has been chosen.
func (f ForecastType) IsZero() bool { return f == ForecastType{} }

// Variable is a forecast element with its KMA element code.
type Variable struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

var forecastTypes = [forecastKindCount]ForecastType{
	ForecastShort:            {Kind: ForecastShort, ID: "short", Name: "단기예보", Description: "3일간의 기상 예보 데이터"},
	ForecastUltraShort:       {Kind: ForecastUltraShort, ID: "ultra-short", Name: "초단기예보", Description: "6시간 이내의 상세 예보"},
	ForecastUltraShortActual: {Kind: ForecastUltraShortActual, ID: "ultra-short-actual", Name: "초단기실황", Description: "현재 기상 관측 데이터"},
}

var (
	varTemperature   = Variable{Name: "1시간기온", Code: "TMP"}
	varWindSpeed     = Variable{Name: "풍속", Code: "WSD"}
	varWindDirection = Variable{Name: "풍향", Code: "VEC"}
	varSky           = Variable{Name: "하늘상태", Code: "SKY"}
	varHumidity      = Variable{Name: "습도", Code: "REH"}
	varMaxTemp       = Variable{Name: "일최고기온", Code: "TMX"}
	varMinTemp       = Variable{Name: "일최저기온", Code: "TMN"}
	varPrecipType    = Variable{Name: "강수형태", Code: "PTY"}
	varPrecipProb    = Variable{Name: "강수확률", Code: "POP"}
	varWindU         = Variable{Name: "동서바람성분", Code: "UUU"}
	varWindV         = Variable{Name: "남북바람성분", Code: "VVV"}
	varPrecip        = Variable{Name: "1시간강수량", Code: "PCP"}
	varSnow          = Variable{Name: "1시간적설", Code: "SNO"}
	varLightning     = Variable{Name: "낙뢰", Code: "LGT"}
)

// variableCatalog is indexed by ForecastKind; display order is significant.
var variableCatalog = [forecastKindCount][]Variable{
	ForecastShort: {
		varTemperature, varWindSpeed, varSky, varHumidity, varMaxTemp, varMinTemp,
		varPrecipType, varPrecipProb, varWindU, varWindV, varPrecip, varSnow,
	},
	ForecastUltraShortActual: {
		varTemperature, varWindSpeed, varWindDirection, varSky, varHumidity,
		varPrecipType, varPrecip, varLightning,
	},
	ForecastUltraShort: {
		varTemperature, varWindSpeed, varWindDirection, varSky, varHumidity,
		varPrecipType, varPrecip, varLightning, varWindU, varWindV,
	},
}

// ForecastTypes returns the forecast products in display order.
func ForecastTypes() []ForecastType {
	out := make([]ForecastType, len(forecastTypes))
	copy(out, forecastTypes[:])
	return out
}

// ForecastByID looks up a forecast type by its stable identifier.
func ForecastByID(id string) (ForecastType, bool) {
	for _, f := range forecastTypes {
		if f.ID == id {
			return f, true
		}
	}
	return ForecastType{}, false
}

// ForecastByName looks up a forecast type by its display name.
func ForecastByName(name string) (ForecastType, bool) {
	for _, f := range forecastTypes {
		if f.Name == name {
			return f, true
		}
	}
	return ForecastType{}, false
}

// Variables returns a copy of the variable catalog for kind, or nil for an
// unknown kind.
func Variables(kind ForecastKind) []Variable {
	if kind < 0 || kind >= forecastKindCount {
		return nil
	}
	out := make([]Variable, len(variableCatalog[kind]))
	copy(out, variableCatalog[kind])
	return out
}

// VariableNames returns the catalog names for kind in display order.
func VariableNames(kind ForecastKind) []string {
	vars := Variables(kind)
	if vars == nil {
		return nil
	}
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name
	}
	return names
}

// VariablesByName resolves the catalog through the forecast display name.
// An unrecognised name yields nil rather than an error, so callers keyed by
// name must not assume a non-empty result.
func VariablesByName(name string) []string {
	f, ok := ForecastByName(name)
	if !ok {
		return nil
	}
	return VariableNames(f.Kind)
}
