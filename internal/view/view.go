package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"

	"github.com/i474232898/weather-widget/internal/weather"
)

//go:embed templates/*.html
var templateFS embed.FS

var glyphs = map[weather.IconCategory]string{
	weather.IconClear:    "☀️",
	weather.IconCloud:    "☁️",
	weather.IconDrizzle:  "\U0001F326️",
	weather.IconRain:     "\U0001F327️",
	weather.IconSnow:     "❄️",
	weather.IconHumidity: "\U0001F4A7",
	weather.IconWind:     "\U0001F32C️",
}

// Glyph returns the display glyph for an icon category, defaulting to clear.
func Glyph(icon weather.IconCategory) string {
	if g, ok := glyphs[icon]; ok {
		return g
	}
	return glyphs[weather.IconClear]
}

// Page is everything the index template renders.
type Page struct {
	Title    string
	Message  string
	Current  *CurrentCard
	Forecast []ForecastCard
}

type CurrentCard struct {
	Day         string
	Icon        weather.IconCategory
	Temperature int
	Location    string
	Humidity    int
	WindSpeed   float64
}

type ForecastCard struct {
	Day         string
	Icon        weather.IconCategory
	Temperature int
}

// NewPage builds the page model from the display state. Absent slots render nothing.
func NewPage(state weather.DisplayState, message string) Page {
	page := Page{Title: "Weather", Message: message}

	if c := state.Current; c != nil {
		page.Current = &CurrentCard{
			Day:         c.ObservedAt.Format("Mon"),
			Icon:        c.Icon,
			Temperature: c.Temperature,
			Location:    c.Location,
			Humidity:    c.Humidity,
			WindSpeed:   c.WindSpeed,
		}
		if c.Location != "" {
			page.Title = fmt.Sprintf("Weather in %s", c.Location)
		}
	}

	if f := state.Forecast; f != nil {
		for _, d := range f.Days {
			page.Forecast = append(page.Forecast, ForecastCard{
				Day:         DayLabel(d.Date),
				Icon:        d.Icon,
				Temperature: weather.RoundHalfUp(d.AverageTemperature),
			})
		}
	}

	return page
}

// DayLabel formats a "YYYY-MM-DD" date as a short weekday name. Unparseable
// dates are returned unchanged.
func DayLabel(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return t.Format("Mon")
}

// Renderer executes the embedded page template and minifies the output.
type Renderer struct {
	tmpl     *template.Template
	minifier *minify.M
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	funcs := sprig.HtmlFuncMap()
	funcs["glyph"] = Glyph

	tmpl, err := template.New("index.html").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	m := minify.New()
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/css", css.Minify)

	return &Renderer{tmpl: tmpl, minifier: m}, nil
}

// Render writes the minified page to w.
func (r *Renderer) Render(w io.Writer, page Page) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "index.html", page); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}
	if err := r.minifier.Minify("text/html", w, &buf); err != nil {
		return fmt.Errorf("minify page: %w", err)
	}
	return nil
}
