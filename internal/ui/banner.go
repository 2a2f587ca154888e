package ui

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

const bannerText = `
██████╗ ███████╗██╗   ██╗    ███████╗ █████╗ ██╗      █████╗ ██████╗ ██╗   ██╗
██╔══██╗██╔════╝██║   ██║    ██╔════╝██╔══██╗██║     ██╔══██╗██╔══██╗╚██╗ ██╔╝
██║  ██║█████╗  ██║   ██║    ███████╗███████║██║     ███████║██████╔╝ ╚████╔╝
██║  ██║██╔══╝  ╚██╗ ██╔╝    ╚════██║██╔══██║██║     ██╔══██║██╔══██╗  ╚██╔╝
██████╔╝███████╗ ╚████╔╝     ███████║██║  ██║███████╗██║  ██║██║  ██║   ██║
╚═════╝ ╚══════╝  ╚═══╝      ╚══════╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝
 HeadHunter & SuperJob salaries by language
`

// ColorizeText applies a random color fade to the input text
func ColorizeText(text string) string {
	random := rand.New(rand.NewSource(time.Now().UnixNano()))

	startColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))
	firstPoint := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))

	strs := strings.Split(text, "")
	half := len(strs) / 2
	if half == 0 {
		half = 1
	}

	var b strings.Builder
	for i, s := range strs {
		b.WriteString(startColor.Fade(0, float32(len(strs)), float32(i%half), firstPoint).Sprint(s))
	}
	return b.String()
}

// PrintBanner writes the application banner to w unless silenced
func PrintBanner(w io.Writer, silence bool) {
	if silence {
		return
	}
	fmt.Fprintln(w, ColorizeText(bannerText))
}

// ColorizeSalary colors a formatted monthly ruble salary by band
func ColorizeSalary(text string, value float64) string {
	if value <= 0 {
		return pterm.Red(text)
	}

	switch {
	case value >= 250000:
		return pterm.Green(text)
	case value >= 150000:
		return pterm.LightGreen(text)
	case value >= 80000:
		return pterm.Yellow(text)
	default:
		return pterm.Red(text)
	}
}
