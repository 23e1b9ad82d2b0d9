package service

import (
	"sort"
	"strings"

	"github.com/jengzang/risk-heatmap-go/internal/models"
	"github.com/jengzang/risk-heatmap-go/internal/repository"
	"github.com/jengzang/risk-heatmap-go/internal/spatial"
)

// MaxHotspots caps the number of hotspots per zone
const MaxHotspots = 50

// DefaultWatchlist is the set of infraction categories counted for hotspots
var DefaultWatchlist = []string{
	"DELITOS CONTRA EL DERECHO A LA PROPIEDAD",
	"DELITOS CONTRA LA EFICIENCIA DE LA ADMINISTRACIÓN PÚBLICA",
	"DELITOS CONTRA LA SEGURIDAD PÚBLICA",
	"DELITOS POR LA PRODUCCIÓN O TRÁFICO ILÍCITO DE SUSTANCIAS CATALOGADAS SUJETAS A FISCALIZACIÓN",
}

// HotspotService ranks the cells of a zone by watchlisted apprehensions
type HotspotService struct {
	snap      *repository.Snapshot
	watchlist map[string]bool
}

// NewHotspotService creates a hotspot service. An empty watchlist means DefaultWatchlist.
func NewHotspotService(snap *repository.Snapshot, watchlist []string) *HotspotService {
	if len(watchlist) == 0 {
		watchlist = DefaultWatchlist
	}
	w := make(map[string]bool, len(watchlist))
	for _, t := range watchlist {
		w[normalizeType(t)] = true
	}
	return &HotspotService{snap: snap, watchlist: w}
}

func normalizeType(t string) string {
	return strings.ToUpper(strings.TrimSpace(t))
}

// ZoneHotspots counts watchlisted apprehensions per cell inside the zone
// and returns the busiest cells, most incidents first.
func (s *HotspotService) ZoneHotspots(zone models.Zone) []models.Hotspot {
	records := s.snap.Apprehensions.Within(spatial.ZoneBound(zone))

	counts := make(map[models.GridKey]map[string]int)
	for _, r := range records {
		if !s.watchlist[normalizeType(r.Type)] {
			continue
		}
		k := r.Key()
		if counts[k] == nil {
			counts[k] = make(map[string]int)
		}
		counts[k][r.Type]++
	}

	hotspots := make([]models.Hotspot, 0, len(counts))
	for k, byType := range counts {
		h := models.Hotspot{Lat: k.Lat(), Lon: k.Lon()}
		for t, n := range byType {
			h.Total += n
			h.Breakdown = append(h.Breakdown, models.InfractionCount{Type: t, Count: n})
		}
		sort.Slice(h.Breakdown, func(i, j int) bool {
			a, b := h.Breakdown[i], h.Breakdown[j]
			if a.Count != b.Count {
				return a.Count > b.Count
			}
			return a.Type < b.Type
		})
		h.DominantType = h.Breakdown[0].Type
		hotspots = append(hotspots, h)
	}

	sort.Slice(hotspots, func(i, j int) bool {
		a, b := hotspots[i], hotspots[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		if a.Lat != b.Lat {
			return a.Lat < b.Lat
		}
		return a.Lon < b.Lon
	})
	if len(hotspots) > MaxHotspots {
		hotspots = hotspots[:MaxHotspots]
	}
	return hotspots
}
