package dcel

import (
	"embed"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/jakoblistabarth/schemapify-sub001/geometry"
)

// This file parses the svg fixtures and outputs rings. This is not a full (or
// even correct) svg parser. It finds the single polygon element in the file
// and converts its points into a CCW ring. If anything goes wrong, it panics.
//
// Fixtures are available by name in the fixtures/ directory, sans extension.

//go:embed fixtures
var fixtures embed.FS

func LoadFixture(name string) geometry.Ring {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}

	defer fixture.Close()
	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}

	polygons := rootEl.FindAll("polygon")
	if len(polygons) != 1 {
		log.Fatalf("Expected exactly one polygon in fixture %q, found %d", name, len(polygons))
	}

	pointStrings := strings.Fields(polygons[0].Attributes["points"])
	ring := make(geometry.Ring, 0, len(pointStrings))
	for _, pointString := range pointStrings {
		coordinates := strings.Split(pointString, ",")
		if len(coordinates) != 2 {
			log.Fatalf("Invalid point string %q", pointString)
		}
		x, err := strconv.ParseFloat(coordinates[0], 64)
		if err != nil {
			log.Fatalf("Invalid x value %q: %v", coordinates[0], err)
		}
		y, err := strconv.ParseFloat(coordinates[1], 64)
		if err != nil {
			log.Fatalf("Invalid y value %q: %v", coordinates[1], err)
		}
		ring = append(ring, geometry.Point{X: x, Y: y})
	}
	return ring.CounterClockwise()
}

// Some ad hoc fixtures

func square(x, y, size float64) geometry.Ring {
	return geometry.Ring{{X: x, Y: y}, {X: x + size, Y: y}, {X: x + size, Y: y + size}, {X: x, Y: y + size}}
}

func star(n int, outerRadius, innerRadius float64) geometry.Ring {
	var ring geometry.Ring
	for i := 0; i < 2*n; i++ {
		radius := outerRadius
		if i%2 == 1 {
			radius = innerRadius
		}
		angle := math.Pi * float64(i) / float64(n)
		ring = append(ring, geometry.Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)})
	}
	return ring
}

func polygonFeature(properties geojson.Properties, rings ...geometry.Ring) *geojson.Feature {
	f := geojson.NewFeature(geometry.Polygon(rings).Orb())
	if properties != nil {
		f.Properties = properties
	}
	return f
}

func collection(features ...*geojson.Feature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range features {
		fc.Append(f)
	}
	return fc
}

func squareWithHole() *geojson.FeatureCollection {
	return collection(polygonFeature(geojson.Properties{"name": "frame"}, square(-5, -5, 10), square(-2, -2, 4).Reverse()))
}

func adjacentSquares() *geojson.FeatureCollection {
	return collection(
		polygonFeature(geojson.Properties{"name": "left"}, square(0, 0, 1)),
		polygonFeature(geojson.Properties{"name": "right"}, square(1, 0, 1)),
	)
}

func pointFeature() *geojson.Feature {
	return geojson.NewFeature(orb.Point{1, 2})
}
