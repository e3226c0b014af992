package bgg

import "strconv"

// XML payload shapes of the BGG API. Only the fields the normalizer reads
// are declared; the API returns far more.

// attrValue is BGG's ubiquitous <tag value="..."/> element. Values may be
// "N/A" or empty, so parsing is lenient.
type attrValue struct {
	Value string `xml:"value,attr"`
}

func (a attrValue) intValue() *int {
	v, err := strconv.Atoi(a.Value)
	if err != nil || v == 0 {
		return nil
	}
	return &v
}

func (a attrValue) floatValue() *float64 {
	v, err := strconv.ParseFloat(a.Value, 64)
	if err != nil || v == 0 {
		return nil
	}
	return &v
}

type namedValue struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

type searchItems struct {
	Items []searchItem `xml:"item"`
}

type searchItem struct {
	ID            int64        `xml:"id,attr"`
	Type          string       `xml:"type,attr"`
	Names         []namedValue `xml:"name"`
	YearPublished attrValue    `xml:"yearpublished"`
}

func (i searchItem) primaryName() string {
	for _, n := range i.Names {
		if n.Type == "primary" {
			return n.Value
		}
	}
	if len(i.Names) > 0 {
		return i.Names[0].Value
	}
	return ""
}

type thingItems struct {
	Items []thingItem `xml:"item"`
}

type thingItem struct {
	ID            int64        `xml:"id,attr"`
	Type          string       `xml:"type,attr"`
	Names         []namedValue `xml:"name"`
	Description   string       `xml:"description"`
	Image         string       `xml:"image"`
	YearPublished attrValue    `xml:"yearpublished"`
	MinPlayers    attrValue    `xml:"minplayers"`
	MaxPlayers    attrValue    `xml:"maxplayers"`
	MinPlaytime   attrValue    `xml:"minplaytime"`
	MaxPlaytime   attrValue    `xml:"maxplaytime"`
	MinAge        attrValue    `xml:"minage"`
	Statistics    struct {
		Ratings struct {
			Average       attrValue `xml:"average"`
			AverageWeight attrValue `xml:"averageweight"`
			Ranks         []struct {
				Name  string `xml:"name,attr"`
				Value string `xml:"value,attr"`
			} `xml:"ranks>rank"`
		} `xml:"ratings"`
	} `xml:"statistics"`
}

func (i thingItem) primaryName() string {
	for _, n := range i.Names {
		if n.Type == "primary" {
			return n.Value
		}
	}
	if len(i.Names) > 0 {
		return i.Names[0].Value
	}
	return ""
}

type collectionItems struct {
	Items []collectionItem `xml:"item"`
}

type collectionItem struct {
	ObjectID      int64            `xml:"objectid,attr"`
	Subtype       string           `xml:"subtype,attr"`
	Name          string           `xml:"name"`
	YearPublished string           `xml:"yearpublished"`
	Image         string           `xml:"image"`
	Stats         *collectionStats `xml:"stats"`
}

type collectionStats struct {
	MinPlayers  string `xml:"minplayers,attr"`
	MaxPlayers  string `xml:"maxplayers,attr"`
	MinPlaytime string `xml:"minplaytime,attr"`
	MaxPlaytime string `xml:"maxplaytime,attr"`
	Rating      struct {
		Average attrValue `xml:"average"`
	} `xml:"rating"`
}
