// Package marinetraffic builds deep-links into the MarineTraffic web site
// for vessel and port visualization.
package marinetraffic

import (
	"fmt"
	"regexp"
)

const (
	baseURL          = "https://www.marinetraffic.com"
	defaultZoom      = 9
	defaultEmbedZoom = 10
)

// Santos port coordinates, used for the port preset links.
const (
	santosLat = -23.9534
	santosLon = -46.3334
)

// portIDs maps UN/LOCODE-style port codes of common Brazilian ports to
// MarineTraffic internal port ids.
var portIDs = map[string]int{
	"BRSSZ": 189, // Santos
	"BRRIO": 188, // Rio de Janeiro
	"BRPNG": 185, // Paranaguá
	"BRSPB": 190, // São Sebastião
	"BRSJZ": 191, // São Francisco do Sul
}

var (
	nonDigits   = regexp.MustCompile(`\D`)
	nonAlphanum = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// Links holds the generated MarineTraffic URLs. Empty string means the
// input data was insufficient to build that link.
type Links struct {
	Details   string `json:"urlDetails,omitempty"`   // vessel detail page
	MapVessel string `json:"urlMapVessel,omitempty"` // map centered on vessel
	MapCoords string `json:"urlMapCoords,omitempty"` // map centered on coordinates
	Embed     string `json:"urlEmbed,omitempty"`     // embeddable iframe
	Port      string `json:"urlPort,omitempty"`      // port detail page
}

// Params carries the vessel and location data available for link building.
// Identifier preference for the details link is IMO > MMSI > ShipID.
type Params struct {
	IMO      string
	MMSI     string
	ShipID   string
	Lat      *float64
	Lon      *float64
	Zoom     int
	PortCode string
	PortID   int
	Language string
}

// Build generates all links the given data allows.
func Build(p Params) Links {
	lang := p.Language
	if lang == "" {
		lang = "en"
	}
	zoom := p.Zoom
	if zoom == 0 {
		zoom = defaultZoom
	}

	imo := sanitizeIMO(p.IMO)
	mmsi := sanitizeMMSI(p.MMSI)
	shipID := sanitizeShipID(p.ShipID)

	var links Links

	switch {
	case imo != "":
		links.Details = fmt.Sprintf("%s/%s/ais/details/ships/imo:%s", baseURL, lang, imo)
	case mmsi != "":
		links.Details = fmt.Sprintf("%s/%s/ais/details/ships/mmsi:%s", baseURL, lang, mmsi)
	case shipID != "":
		links.Details = fmt.Sprintf("%s/%s/ais/details/ships/shipid:%s", baseURL, lang, shipID)
	}

	if shipID != "" {
		links.MapVessel = fmt.Sprintf("%s/%s/ais/home/shipid:%s", baseURL, lang, shipID)
	}

	if p.Lat != nil && p.Lon != nil {
		links.MapCoords = fmt.Sprintf("%s/%s/ais/home/centerx:%v/centery:%v/zoom:%d",
			baseURL, lang, *p.Lon, *p.Lat, zoom)
	}

	if mmsi != "" {
		links.Embed = fmt.Sprintf("%s/%s/ais/embed/showmenu:false/shownames:false/mmsi:%s/zoom:%d",
			baseURL, lang, mmsi, defaultEmbedZoom)
	}

	portID := p.PortID
	if portID == 0 {
		portID = portIDs[p.PortCode]
	}
	if portID != 0 {
		links.Port = portURL(portID, lang)
	}

	return links
}

// SantosPortLinks returns the Santos port preset: the port detail page and
// a map centered on the harbor.
func SantosPortLinks(language string) Links {
	lat, lon := santosLat, santosLon
	return Build(Params{
		Lat:      &lat,
		Lon:      &lon,
		PortCode: "BRSSZ",
		Zoom:     12,
		Language: language,
	})
}

func portURL(portID int, lang string) string {
	// MarineTraffic needs the country/name pair to resolve Santos.
	if portID == portIDs["BRSSZ"] {
		return fmt.Sprintf("%s/%s/ais/details/ports/%d?country=Brazil&name=SANTOS", baseURL, lang, portID)
	}
	return fmt.Sprintf("%s/%s/ais/details/ports/%d", baseURL, lang, portID)
}

// sanitizeIMO strips non-digits and validates the 7-digit IMO format.
func sanitizeIMO(imo string) string {
	clean := nonDigits.ReplaceAllString(imo, "")
	if len(clean) == 7 {
		return clean
	}
	return ""
}

// sanitizeMMSI strips non-digits and validates the 9-digit MMSI format.
func sanitizeMMSI(mmsi string) string {
	clean := nonDigits.ReplaceAllString(mmsi, "")
	if len(clean) == 9 {
		return clean
	}
	return ""
}

func sanitizeShipID(shipID string) string {
	return nonAlphanum.ReplaceAllString(shipID, "")
}
