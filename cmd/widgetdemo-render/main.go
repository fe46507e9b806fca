package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/goliatone/go-widgetdemo/pkg/calendar"
	"github.com/goliatone/go-widgetdemo/pkg/forms"
	"github.com/goliatone/go-widgetdemo/pkg/page"
	"github.com/goliatone/go-widgetdemo/pkg/router"
	"github.com/goliatone/go-widgetdemo/pkg/stopwatch"
	"github.com/goliatone/go-widgetdemo/pkg/wallclock"
)

// Renders one page to static HTML, without the live event streams.
func main() {
	route := flag.String("route", router.RouteClock, "route to render: clock, timer, calendar, form or clients")
	variant := flag.String("theme", page.VariantLight, "theme variant: light or dark")
	zone := flag.String("location", wallclock.DefaultLocation, "time zone of the clock")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	routes, err := router.New(router.VariantFull)
	if err != nil {
		log.Fatal(err)
	}
	renderer, err := page.New(routes, page.WithTheme(page.ThemeName, *variant))
	if err != nil {
		log.Fatalf("Failed to build renderer: %v", err)
	}

	var buf bytes.Buffer
	switch *route {
	case router.RouteClock:
		loc, lerr := wallclock.LoadLocation(*zone)
		if lerr != nil {
			log.Fatal(lerr)
		}
		err = renderer.Clock(&buf, wallclock.NewReading(time.Now(), loc))
	case router.RouteTimer:
		err = renderer.Timer(&buf, "", stopwatch.Snapshot{})
	case router.RouteCalendar:
		err = renderer.Calendar(&buf, calendar.Selection{}, "")
	case router.RouteForm, router.RouteClients:
		registry, rerr := forms.Default()
		if rerr != nil {
			log.Fatal(rerr)
		}
		rt, _ := routes.Lookup(*route)
		def, rerr := registry.Get(rt.Form)
		if rerr != nil {
			log.Fatal(rerr)
		}
		err = renderer.Form(&buf, *route, forms.NewForm(def))
	default:
		log.Fatalf("unknown route %q", *route)
	}
	if err != nil {
		log.Fatalf("Failed to render page: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, buf.Bytes(), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Page written to %s\n", *output)
		return
	}
	_, _ = os.Stdout.Write(buf.Bytes())
}
