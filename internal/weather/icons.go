package weather

var iconsByCode = map[string]IconCategory{
	"01d": IconClear,
	"01n": IconClear,
	"02d": IconCloud,
	"02n": IconCloud,
	"03d": IconCloud,
	"03n": IconCloud,
	"04d": IconDrizzle,
	"04n": IconDrizzle,
	"09d": IconRain,
	"09n": IconRain,
	"10d": IconRain,
	"10n": IconRain,
	"13d": IconSnow,
	"13n": IconSnow,
}

// ResolveIcon maps a condition code to its icon category.
// Unknown codes resolve to IconClear.
func ResolveIcon(code string) IconCategory {
	if icon, ok := iconsByCode[code]; ok {
		return icon
	}
	return IconClear
}
