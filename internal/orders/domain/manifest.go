package domain

import (
	"fmt"
	"strings"
)

// Line items are stored flattened as a single ", "-delimited string; the
// "×" marker separates stationery entries from file entries when the string
// is parsed back. The tagged variants below keep the structure explicit
// everywhere except at that storage/display boundary.

const (
	ItemFile       = "file"
	ItemStationery = "stationery"
)

type LineItem struct {
	Kind     string
	Name     string
	Pages    int
	Quantity int
}

func FileItem(name string, pages int) LineItem {
	return LineItem{Kind: ItemFile, Name: name, Pages: pages}
}

func StationeryItem(name string, quantity int) LineItem {
	if quantity < 1 {
		quantity = 1
	}
	return LineItem{Kind: ItemStationery, Name: name, Quantity: quantity}
}

// Display renders one entry exactly as it is stored and emailed.
func (i LineItem) Display() string {
	if i.Kind == ItemStationery {
		return fmt.Sprintf("%s × %d", i.Name, i.Quantity)
	}
	return i.Name
}

func RenderManifest(items []LineItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, it.Display())
	}
	return strings.Join(parts, ", ")
}

// TotalPages sums the page counts of file entries; stationery entries
// contribute nothing.
func TotalPages(items []LineItem) int {
	sum := 0
	for _, it := range items {
		sum += it.Pages
	}
	return sum
}

// ParseManifest splits a stored manifest back into entries using the "×"
// marker heuristic. Quantities are not recovered; callers only need the
// file/stationery split and the display text.
func ParseManifest(manifest string) []LineItem {
	parts := strings.Split(manifest, ", ")
	items := make([]LineItem, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		if strings.Contains(p, "×") {
			items = append(items, LineItem{Kind: ItemStationery, Name: p, Quantity: 1})
		} else {
			items = append(items, LineItem{Kind: ItemFile, Name: p})
		}
	}
	return items
}

// SplitManifest partitions a stored manifest into file names and stationery
// display entries, for email rendering.
func SplitManifest(manifest string) (files, stationery []string) {
	for _, it := range ParseManifest(manifest) {
		if it.Kind == ItemStationery {
			stationery = append(stationery, it.Name)
		} else {
			files = append(files, it.Name)
		}
	}
	return files, stationery
}
