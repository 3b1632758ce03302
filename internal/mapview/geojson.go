package mapview

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GeoJSON renders the view as a FeatureCollection: one Point feature per
// marker, then a LineString feature for the route when it has at least two
// points.
func GeoJSON(v View) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, m := range v.Markers {
		f := geojson.NewFeature(toOrb(m.Position))
		f.Properties["eventId"] = m.EventID
		f.Properties["dayTitle"] = m.DayTitle
		f.Properties["title"] = m.Title
		f.Properties["time"] = m.Time
		f.Properties["type"] = m.Type
		f.Properties["place"] = m.Place
		fc.Append(f)
	}
	if len(v.Route) >= 2 {
		line := make(orb.LineString, len(v.Route))
		for i, p := range v.Route {
			line[i] = toOrb(p)
		}
		f := geojson.NewFeature(line)
		f.Properties["kind"] = "route"
		fc.Append(f)
	}
	return fc
}

// toOrb flips a [lat, lng] view point into orb's [lng, lat] order.
func toOrb(p Point) orb.Point {
	return orb.Point{p[1], p[0]}
}
