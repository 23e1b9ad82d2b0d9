package models

// InfractionShare is one entry of a cluster infraction profile
type InfractionShare struct {
	Type        string  `json:"tipo"`
	Probability float64 `json:"probabilidad"`
}

// InfractionCount is the number of incidents of one type inside a cell
type InfractionCount struct {
	Type  string `json:"tipo"`
	Count int    `json:"conteo"`
}

// Hotspot is a grid cell ranked by watchlisted incident density
type Hotspot struct {
	Lat          float64           `json:"lat"`
	Lon          float64           `json:"lon"`
	Total        int               `json:"total_incidentes"`
	DominantType string            `json:"tipo_delito"`
	Breakdown    []InfractionCount `json:"desglose"`
}
