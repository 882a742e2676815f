package service

import (
	"sort"
	"strings"
	"time"

	"github.com/sefazor/classgather-backend/internal/models"
)

const (
	SortByDate = "date"
	SortByCost = "cost"
)

// ComposeEventList arama + sıralama. Girdi listesi değiştirilmez; eşit
// anahtarlar girdi sırasını korur. Tarih sıralaması upcoming/ended ayrımı
// yapmaz, durum her satır için ayrıca hesaplanır.
func ComposeEventList(events []models.Event, search, sortBy string, now time.Time, loc *time.Location) []models.EventListItem {
	term := strings.ToLower(search)

	items := make([]models.EventListItem, 0, len(events))
	starts := make(map[string]time.Time, len(events))
	for _, e := range events {
		if term != "" &&
			!strings.Contains(strings.ToLower(e.Title), term) &&
			!strings.Contains(strings.ToLower(e.Location), term) {
			continue
		}

		item := models.EventListItem{Event: e}
		if schedule, err := ScheduleOf(&e, loc); err == nil {
			item.Status = schedule.StatusAt(now)
			starts[e.ID] = schedule.StartsAt
		}
		items = append(items, item)
	}

	switch sortBy {
	case SortByCost:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Cost < items[j].Cost
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			a, okA := starts[items[i].ID]
			b, okB := starts[items[j].ID]
			// tarihi okunamayan etkinlikler sona
			if !okA || !okB {
				return okA && !okB
			}
			return a.Before(b)
		})
	}

	return items
}
